package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/sdnfabric/sdnctl/internal/credentials"
)

// sealer seals a password into a configuration-safe blob.
type sealer interface {
	Seal(password string) (string, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	newSealer = func() (sealer, error) {
		return credentials.NewVault()
	}

	promptPassword = defaultPromptPassword
)

// credentialRoles are the config keys a password can be sealed for.
var credentialRoles = map[string]bool{
	"domain_join": true,
	"nc_service":  true,
	"local_admin": true,
}

// SecretsSeal prompts for a password, seals it for the current user and
// machine, and prints the blob to paste into the configuration file.
func SecretsSeal(ctx context.Context, role string) error {
	if !credentialRoles[role] {
		return fmt.Errorf("unknown credential role %q (want domain_join, nc_service or local_admin)", role)
	}

	password, err := promptPassword(ctx, role)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return credentials.ErrPromptCancelled
		}
		return err
	}

	vault, err := newSealer()
	if err != nil {
		return fmt.Errorf("opening vault: %w", err)
	}

	sealed, err := vault.Seal(password)
	if err != nil {
		return fmt.Errorf("sealing password: %w", err)
	}

	fmt.Fprintf(stdout, "Add to your configuration under credentials.%s:\n\n", role)
	fmt.Fprintf(stdout, "  sealed_password: %s\n", sealed)
	return nil
}

func defaultPromptPassword(ctx context.Context, role string) (string, error) {
	var password string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Password for %s", role)).
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	).RunWithContext(ctx)
	return password, err
}
