package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// TerminalPrompter collects a credential from the operator's terminal.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a prompter backed by the controlling terminal.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// Prompt implements Prompter. A run without a terminal cannot prompt and
// fails immediately rather than hanging.
func (p *TerminalPrompter) Prompt(ctx context.Context, role, defaultUsername string) (Credential, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return Credential{}, fmt.Errorf("no terminal available to prompt for %s credential", role)
	}

	cred := Credential{Username: defaultUsername}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Description(fmt.Sprintf("Account used for %s", role)).
				Value(&cred.Username).
				Validate(validateNotEmpty("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&cred.Password).
				Validate(validateNotEmpty("password")),
		).Title(fmt.Sprintf("Credential: %s", role)),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Credential{}, ErrPromptCancelled
		}
		return Credential{}, err
	}
	return cred, nil
}

func validateNotEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
