// Package ui renders the deployment plan and result summary for terminals.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/sdnfabric/sdnctl/internal/config"
)

var (
	// Colors
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failedStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// IsTerminal reports whether w is an interactive terminal. Styled output is
// only emitted for terminals; pipes get plain text.
func IsTerminal(w io.Writer) bool {
	type fder interface{ Fd() uintptr }
	f, ok := w.(fder)
	return ok && isatty.IsTerminal(f.Fd())
}

// RenderPlan summarizes what a deployment run will do.
func RenderPlan(w io.Writer, cfg *config.Config) {
	styled := IsTerminal(w)
	var b strings.Builder

	writeLine(&b, styled, titleStyle, fmt.Sprintf("Deployment plan for %s", cfg.RestName))
	b.WriteString("\n")

	writeLine(&b, styled, sectionStyle, "Hosts")
	for _, h := range cfg.Hosts {
		b.WriteString("  " + h.Name + "\n")
	}
	b.WriteString("\n")

	writeLine(&b, styled, sectionStyle, "Nodes")
	writeCount(&b, styled, "controllers", len(cfg.Controllers))
	writeCount(&b, styled, "slb muxes", len(cfg.Muxes))
	writeCount(&b, styled, "gateways", len(cfg.Gateways))
	b.WriteString("\n")

	writeLine(&b, styled, sectionStyle, "Image")
	b.WriteString("  " + cfg.ImageSource + "\n")

	fmt.Fprint(w, b.String())
}

// RenderSummary reports the outcome of a completed or failed run.
func RenderSummary(w io.Writer, cfg *config.Config, err error) {
	styled := IsTerminal(w)
	var b strings.Builder

	if err != nil {
		writeLine(&b, styled, failedStyle, fmt.Sprintf("Deployment of %s failed: %v", cfg.RestName, err))
	} else {
		writeLine(&b, styled, okStyle, fmt.Sprintf("Deployment of %s completed", cfg.RestName))
		writeLine(&b, styled, dimStyle, fmt.Sprintf("  %d host(s), %d controller(s), %d mux(es), %d gateway(s)",
			len(cfg.Hosts), len(cfg.Controllers), len(cfg.Muxes), len(cfg.Gateways)))
	}

	fmt.Fprint(w, b.String())
}

func writeLine(b *strings.Builder, styled bool, style lipgloss.Style, s string) {
	if styled {
		s = style.Render(s)
	}
	b.WriteString(s + "\n")
}

func writeCount(b *strings.Builder, styled bool, label string, n int) {
	line := fmt.Sprintf("  %-12s %d", label, n)
	if n == 0 {
		line += "  (skipped)"
		if styled {
			line = dimStyle.Render(line)
		}
	}
	b.WriteString(line + "\n")
}
