package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clob/internal/config"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, ":4321", cfg.ListenAddr)
	assert.Equal(t, "DDX take-home", cfg.DomainName)
	assert.Equal(t, "0.1.0", cfg.DomainVersion)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := config.Parse([]string{"-listen", ":9000", "-domain-name", "custom", "-domain-version", "2.0.0"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "custom", cfg.DomainName)
	assert.Equal(t, "2.0.0", cfg.DomainVersion)
}

func TestParseInvalidFlag(t *testing.T) {
	_, err := config.Parse([]string{"-not-a-flag"})
	assert.Error(t, err)
}
