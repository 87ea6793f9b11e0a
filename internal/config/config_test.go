package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvAppliesOverridesOnTopOfDefaults(t *testing.T) {
	env := map[string]string{
		"WEBDRIVERD_ADDRESS":   "0.0.0.0:9999",
		"WEBDRIVERD_LOG_LEVEL": "debug",
	}
	cfg, err := FromEnv(env)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9999", cfg.Address)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "unset fields keep their default")
	assert.Equal(t, Default().ArtifactDir, cfg.ArtifactDir)
}

func TestFromEnvWithNoOverridesReturnsDefaults(t *testing.T) {
	cfg, err := FromEnv(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyOnlyOverridesNonZeroFields(t *testing.T) {
	base := Default()
	merged := base.Apply(Config{ScriptTimeout: 2 * time.Second})

	assert.Equal(t, base.Address, merged.Address)
	assert.Equal(t, 2*time.Second, merged.ScriptTimeout)
}
