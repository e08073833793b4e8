// Package wizard provides an interactive configuration wizard for sdnctl.
//
// This package implements a TUI-based wizard that guides operators through
// creating a deployment configuration file. It uses charmbracelet/huh for
// form-based input collection.
//
// The main entry point is RunWizard, which orchestrates question groups
// and returns a Result. Use BuildConfig to convert results to a Config
// struct, and WriteConfig to generate the YAML output file. Node sections
// (controllers, muxes, gateways) are intentionally left for the operator to
// fill in afterwards; the generated file documents their shape.
package wizard
