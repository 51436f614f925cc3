package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvKeepContainers, EnvEngine, EnvLogGrace, EnvReadyTimeout} {
		if v, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `engine: podman
keepContainers: true
logGracePeriod: 250ms
readyTimeout: 2m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "podman", cfg.Engine)
	assert.True(t, cfg.KeepContainers)
	assert.Equal(t, 250*time.Millisecond, cfg.LogGracePeriod)
	assert.Equal(t, 2*time.Minute, cfg.ReadyTimeout)
	assert.Equal(t, DefaultTeardownTimeout, cfg.TeardownTimeout)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("engine: [unclosed"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("engine: podman\n"), 0o644))

	t.Setenv(EnvEngine, "/usr/local/bin/docker")
	t.Setenv(EnvLogGrace, "0s")
	t.Setenv(EnvReadyTimeout, "5s")
	t.Setenv(EnvKeepContainers, "true")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/docker", cfg.Engine)
	assert.True(t, cfg.KeepContainers)
	assert.Equal(t, 5*time.Second, cfg.ReadyTimeout)
	// zero is normalized back to the default
	assert.Equal(t, DefaultLogGracePeriod, cfg.LogGracePeriod)
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvReadyTimeout, "soon")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvReadyTimeout)
}

func TestNormalize_KeepsNegativeGrace(t *testing.T) {
	cfg := Config{LogGracePeriod: -1}.Normalize()
	assert.Equal(t, time.Duration(-1), cfg.LogGracePeriod)
	assert.Equal(t, DefaultEngine, cfg.Engine)
	assert.Equal(t, DefaultReadyTimeout, cfg.ReadyTimeout)
}

func TestKeepContainers(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		set      bool
		fallback bool
		want     bool
	}{
		{name: "unset uses fallback true", fallback: true, want: true},
		{name: "unset uses fallback false", fallback: false, want: false},
		{name: "true", value: "true", set: true, want: true},
		{name: "numeric means remove", value: "1", set: true, fallback: true, want: false},
		{name: "upper case means remove", value: "TRUE", set: true, fallback: true, want: false},
		{name: "short form means remove", value: "t", set: true, fallback: true, want: false},
		{name: "false overrides fallback", value: "false", set: true, fallback: true, want: false},
		{name: "garbage means remove", value: "yes please", set: true, fallback: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.set {
				t.Setenv(EnvKeepContainers, tt.value)
			}
			assert.Equal(t, tt.want, KeepContainers(tt.fallback))
		})
	}
}
