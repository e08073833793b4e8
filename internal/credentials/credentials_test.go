package credentials

import (
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePrompter records whether it was invoked and returns a canned result.
type fakePrompter struct {
	called bool
	cred   Credential
	err    error
}

func (f *fakePrompter) Prompt(_ context.Context, _, defaultUsername string) (Credential, error) {
	f.called = true
	if f.err != nil {
		return Credential{}, f.err
	}
	if f.cred.Username == "" {
		f.cred.Username = defaultUsername
	}
	return f.cred, nil
}

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	return NewVaultWithKeyPath(filepath.Join(t.TempDir(), "machine.key"))
}

func TestResolve_ExplicitWinsOverSealed(t *testing.T) {
	t.Parallel()
	vault := newTestVault(t)
	sealed, err := vault.Seal("stored-secret")
	require.NoError(t, err)

	prompter := &fakePrompter{}
	explicit := &Credential{Username: "contoso\\deploy", Password: "explicit-secret"}

	cred, err := Resolve(context.Background(), "domain join", Source{
		Explicit:       explicit,
		SealedPassword: sealed,
		Username:       "contoso\\stored",
	}, vault, prompter)

	require.NoError(t, err)
	assert.Equal(t, "explicit-secret", cred.Password)
	assert.Equal(t, "contoso\\deploy", cred.Username)
	assert.False(t, prompter.called, "prompt must not run when explicit credential exists")
}

func TestResolve_SealedSecretDecrypts(t *testing.T) {
	t.Parallel()
	vault := newTestVault(t)
	sealed, err := vault.Seal("stored-secret")
	require.NoError(t, err)

	prompter := &fakePrompter{}
	cred, err := Resolve(context.Background(), "nc service", Source{
		SealedPassword: sealed,
		Username:       "contoso\\ncsvc",
	}, vault, prompter)

	require.NoError(t, err)
	assert.Equal(t, "stored-secret", cred.Password)
	assert.Equal(t, "contoso\\ncsvc", cred.Username)
	assert.False(t, prompter.called)
}

func TestResolve_DecryptFailureFallsThroughToPrompt(t *testing.T) {
	t.Parallel()
	sealingVault := newTestVault(t)
	sealed, err := sealingVault.Seal("stored-secret")
	require.NoError(t, err)

	// Different machine key: decryption must fail and the prompt must run.
	otherVault := newTestVault(t)
	_, err = otherVault.Seal("prime the key file")
	require.NoError(t, err)

	prompter := &fakePrompter{cred: Credential{Password: "prompted-secret"}}
	cred, err := Resolve(context.Background(), "local admin", Source{
		SealedPassword: sealed,
		Username:       "Administrator",
	}, otherVault, prompter)

	require.NoError(t, err)
	assert.True(t, prompter.called, "decrypt failure must fall through to prompt")
	assert.Equal(t, "prompted-secret", cred.Password)
	assert.Equal(t, "Administrator", cred.Username)
}

func TestResolve_NoMaterialPrompts(t *testing.T) {
	t.Parallel()
	prompter := &fakePrompter{cred: Credential{Username: "admin", Password: "pw"}}

	cred, err := Resolve(context.Background(), "local admin", Source{}, newTestVault(t), prompter)

	require.NoError(t, err)
	assert.True(t, prompter.called)
	assert.Equal(t, "pw", cred.Password)
}

func TestResolve_PromptCancelledIsFatal(t *testing.T) {
	t.Parallel()
	prompter := &fakePrompter{err: ErrPromptCancelled}

	_, err := Resolve(context.Background(), "domain join", Source{}, newTestVault(t), prompter)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPromptCancelled))
}

func TestResolve_EachRoleIndependent(t *testing.T) {
	t.Parallel()
	vault := newTestVault(t)
	sealed, err := vault.Seal("sealed-pw")
	require.NoError(t, err)

	roles := []struct {
		name string
		src  Source
		want string
	}{
		{"domain join", Source{Explicit: &Credential{Username: "a", Password: "explicit"}}, "explicit"},
		{"nc service", Source{SealedPassword: sealed, Username: "svc"}, "sealed-pw"},
		{"local admin", Source{Username: "Administrator"}, "prompted"},
	}

	for _, role := range roles {
		prompter := &fakePrompter{cred: Credential{Password: "prompted"}}
		cred, err := Resolve(context.Background(), role.name, role.src, vault, prompter)
		require.NoError(t, err, role.name)
		assert.Equal(t, role.want, cred.Password, role.name)
	}
}

func TestVault_SealOpenRoundTrip(t *testing.T) {
	t.Parallel()
	vault := newTestVault(t)

	sealed, err := vault.Seal("s3cr3t!")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "s3cr3t!")

	plain, err := vault.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t!", plain)
}

func TestVault_OpenRejectsGarbage(t *testing.T) {
	t.Parallel()
	vault := newTestVault(t)
	_, err := vault.Seal("create key")
	require.NoError(t, err)

	_, err = vault.Open("not base64!!")
	assert.Error(t, err)

	_, err = vault.Open("c2hvcnQ=") // valid base64, too short for salt+nonce
	assert.Error(t, err)
}

func TestVault_TamperedBlobFailsToOpen(t *testing.T) {
	t.Parallel()
	vault := newTestVault(t)

	sealed, err := vault.Seal("payload")
	require.NoError(t, err)

	blob, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	blob[len(blob)-1] ^= 0xff
	_, err = vault.Open(base64.StdEncoding.EncodeToString(blob))
	assert.Error(t, err)
}
