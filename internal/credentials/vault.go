package credentials

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP recommended for key derivation).
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32

	saltLen       = 16
	machineKeyLen = 32
)

// Vault seals and opens password blobs with a key scoped to the current
// user and machine. The scoping key lives in a 0600 file under the user's
// config directory and is generated on first use; a blob sealed on one
// user/machine cannot be opened on another.
type Vault struct {
	keyPath string
}

// NewVault creates a vault using the default per-user key location.
func NewVault() (*Vault, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locating user config dir: %w", err)
	}
	return NewVaultWithKeyPath(filepath.Join(dir, "sdnctl", "machine.key")), nil
}

// NewVaultWithKeyPath creates a vault with an explicit key file location.
func NewVaultWithKeyPath(keyPath string) *Vault {
	return &Vault{keyPath: keyPath}
}

// Seal encrypts a password into a base64 blob suitable for the configuration
// file. Layout: salt | nonce | ciphertext.
func (v *Vault) Seal(password string) (string, error) {
	machineKey, err := v.loadOrCreateKey()
	if err != nil {
		return "", err
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	gcm, err := newGCM(machineKey, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	blob := append(salt, nonce...)
	blob = gcm.Seal(blob, nonce, []byte(password), nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open decrypts a sealed password blob. It fails when the blob was sealed
// under a different machine key or is malformed.
func (v *Vault) Open(sealed string) (string, error) {
	machineKey, err := v.loadKey()
	if err != nil {
		return "", err
	}

	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decoding sealed password: %w", err)
	}

	if len(blob) < saltLen {
		return "", fmt.Errorf("sealed password too short")
	}
	salt, rest := blob[:saltLen], blob[saltLen:]

	gcm, err := newGCM(machineKey, salt)
	if err != nil {
		return "", err
	}

	if len(rest) < gcm.NonceSize() {
		return "", fmt.Errorf("sealed password too short")
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("opening sealed password: %w", err)
	}
	return string(plaintext), nil
}

func newGCM(machineKey, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(machineKey, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return gcm, nil
}

// loadOrCreateKey returns the machine key, generating it on first use.
func (v *Vault) loadOrCreateKey() ([]byte, error) {
	key, err := v.loadKey()
	if err == nil {
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	key = make([]byte, machineKeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating machine key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(v.keyPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating key dir: %w", err)
	}
	if err := os.WriteFile(v.keyPath, key, 0o600); err != nil {
		return nil, fmt.Errorf("writing machine key: %w", err)
	}
	return key, nil
}

func (v *Vault) loadKey() ([]byte, error) {
	key, err := os.ReadFile(v.keyPath)
	if err != nil {
		return nil, err
	}
	if len(key) != machineKeyLen {
		return nil, fmt.Errorf("machine key %s has unexpected length %d", v.keyPath, len(key))
	}
	return key, nil
}
