package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BUDGET_TEST_VALUE=from-dotenv\n"), 0600))
	t.Setenv("BUDGET_TEST_VALUE", "")
	os.Unsetenv("BUDGET_TEST_VALUE")

	LoadEnvFile(path)
	assert.Equal(t, "from-dotenv", os.Getenv("BUDGET_TEST_VALUE"))

	// Existing variables are not overridden and a missing file is ignored.
	t.Setenv("BUDGET_TEST_VALUE", "from-env")
	LoadEnvFile(path, filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "from-env", os.Getenv("BUDGET_TEST_VALUE"))
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LIST_LIMIT", "10")
	cfg, err := LoadAndValidateConfig("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DataBackend)

	t.Setenv("DATA_BACKEND", "postgres")
	_, err = LoadAndValidateConfig("")
	assert.ErrorContains(t, err, "invalid data backend 'postgres'")
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := SetupLogger("debug", "cli")
	assert.Equal(t, "cli", logger.Component())
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}
