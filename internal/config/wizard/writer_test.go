package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnfabric/sdnctl/internal/config"
)

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdnctl.yaml")
	cfg := BuildConfig(sampleResult())

	require.NoError(t, WriteConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "# sdnctl deployment configuration"))
	assert.Contains(t, content, "rest_name: contoso-rest")
	assert.Contains(t, content, "version: \"2.1\"")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteConfig_RoundTripsThroughLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdnctl.yaml")
	require.NoError(t, WriteConfig(BuildConfig(sampleResult()), path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "contoso-rest", loaded.RestName)
	assert.Equal(t, "10.127.132.0/25", loaded.Management.Subnet)
}

func TestWriteConfig_RefusesOverwriteWithoutConfirmation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdnctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0600))

	orig := confirmOverwrite
	confirmOverwrite = func(string) (bool, error) { return false, nil }
	defer func() { confirmOverwrite = orig }()

	err := WriteConfig(BuildConfig(sampleResult()), path)
	require.Error(t, err)

	data, _ := os.ReadFile(path)
	assert.Equal(t, "keep me", string(data))
}

func TestWriteConfig_OverwritesWhenConfirmed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdnctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	orig := confirmOverwrite
	confirmOverwrite = func(string) (bool, error) { return true, nil }
	defer func() { confirmOverwrite = orig }()

	require.NoError(t, WriteConfig(BuildConfig(sampleResult()), path))

	data, _ := os.ReadFile(path)
	assert.Contains(t, string(data), "rest_name: contoso-rest")
}
