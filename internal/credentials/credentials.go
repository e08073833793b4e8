// Package credentials resolves the credentials a deployment run needs.
//
// Each credential role (domain join, network controller service account,
// local administrator) resolves independently, in priority order: an explicit
// credential supplied by the caller, a sealed password stored in the
// configuration, and finally an interactive prompt. Resolved passwords are
// held in memory for the duration of the run and never persisted.
package credentials

import (
	"context"
	"errors"
	"fmt"
)

// ErrPromptCancelled is returned when the operator aborts an interactive
// credential prompt. It is fatal for the whole run.
var ErrPromptCancelled = errors.New("credential prompt cancelled")

// Credential is a username/password pair held in memory only.
type Credential struct {
	Username string
	Password string
}

// IsZero reports whether the credential carries no material.
func (c Credential) IsZero() bool {
	return c.Username == "" && c.Password == ""
}

// Source describes the material available for one credential role.
type Source struct {
	// Explicit takes priority over everything else when non-nil.
	Explicit *Credential

	// SealedPassword is a vault-sealed password blob from the configuration.
	// Decryption only succeeds for the user/machine that sealed it.
	SealedPassword string

	// Username accompanies SealedPassword and seeds the prompt default.
	Username string
}

// Prompter asks the operator for a credential interactively.
// Implementations must return ErrPromptCancelled when the operator aborts.
type Prompter interface {
	Prompt(ctx context.Context, role, defaultUsername string) (Credential, error)
}

// Opener opens sealed password blobs. Implemented by *Vault.
type Opener interface {
	Open(sealed string) (string, error)
}

// Resolve produces a usable credential for a role.
//
// A sealed password that fails to open is not fatal: sealing is scoped to the
// user and machine that produced it, so the resolver falls through to the
// prompt. A cancelled prompt aborts the run via ErrPromptCancelled.
func Resolve(ctx context.Context, role string, src Source, vault Opener, prompter Prompter) (Credential, error) {
	if src.Explicit != nil {
		return *src.Explicit, nil
	}

	if src.SealedPassword != "" && vault != nil {
		password, err := vault.Open(src.SealedPassword)
		if err == nil {
			return Credential{Username: src.Username, Password: password}, nil
		}
	}

	cred, err := prompter.Prompt(ctx, role, src.Username)
	if err != nil {
		return Credential{}, fmt.Errorf("resolving %s credential: %w", role, err)
	}
	return cred, nil
}

// Set holds the three resolved credentials a deployment run uses.
type Set struct {
	DomainJoin Credential
	NCService  Credential
	LocalAdmin Credential
}
