package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAPIKey_EnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(APIKeyEnvName+"=from-dotenv\n"), 0o644))
	chdir(t, dir)

	t.Setenv(APIKeyEnvName, "from-env")

	assert.Equal(t, "from-env", ResolveAPIKey())
}

func TestResolveAPIKey_DotEnvDiscovery(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(APIKeyEnvName+"=abc123\n"), 0o644))

	sub := filepath.Join(dir, "cmd")
	require.NoError(t, os.Mkdir(sub, 0o755))
	chdir(t, sub)

	// t.Setenv registers cleanup so the key loaded from .env does not
	// leak into other tests.
	t.Setenv(APIKeyEnvName, "")
	os.Unsetenv(APIKeyEnvName)

	assert.Equal(t, "abc123", ResolveAPIKey())
}

func TestResolveAPIKey_NoKeyAnywhere(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv(APIKeyEnvName, "")
	os.Unsetenv(APIKeyEnvName)

	assert.Empty(t, ResolveAPIKey())
}
