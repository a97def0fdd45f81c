package config_test

import (
	"os"
	"testing"

	"github.com/klox-lang/klox/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.MaxCallDepth)
	assert.False(t, cfg.PrintAST)
	assert.Equal(t, "cpp", cfg.Target)
}

func TestLoadHonorsEnvironment(t *testing.T) {
	t.Setenv("KLOX_MAX_CALL_DEPTH", "64")
	t.Setenv("KLOX_PRINT_AST", "true")
	t.Setenv("KLOX_TARGET", "cpp")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.MaxCallDepth)
	assert.True(t, cfg.PrintAST)

	os.Unsetenv("KLOX_MAX_CALL_DEPTH")
	os.Unsetenv("KLOX_PRINT_AST")
	os.Unsetenv("KLOX_TARGET")
}
