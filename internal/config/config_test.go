package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "streetbites.log", cfg.LogFile)
	assert.True(t, cfg.SeedOnStart)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.False(t, cfg.IsProduction())
}

func TestNew_FromEnv(t *testing.T) {
	t.Setenv("GUIDE_BACKEND_URL", " https://bites.example.com/ ")
	t.Setenv("GUIDE_HTTP_TIMEOUT", "2s")
	t.Setenv("GUIDE_DEBUG", "true")
	t.Setenv("GUIDE_SEED_ON_START", "false")
	t.Setenv("GUIDE_ENVIRONMENT", "production")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "https://bites.example.com", cfg.BackendURL)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.SeedOnStart)
	assert.True(t, cfg.IsProduction())
}

func TestNew_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad url":     {"GUIDE_BACKEND_URL": "localhost"},
		"zero":        {"GUIDE_HTTP_TIMEOUT": "0s"},
		"environment": {"GUIDE_ENVIRONMENT": "staging"},
		"not a bool":  {"GUIDE_DEBUG": "maybe"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := New()
			assert.Error(t, err)
		})
	}
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting("http://127.0.0.1:1234")
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.SeedOnStart)
}
