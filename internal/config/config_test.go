package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every setting so defaults are observable. Viper treats
// empty environment values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	for _, key := range []string{
		"PATLENS_API_BASE_URL",
		"PATLENS_CLIENT_ID",
		"PATLENS_CLIENT_SECRET",
		"PATLENS_TOKEN_LOG",
		"PATLENS_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://connect.patsnap.com", cfg.APIBaseURL)
	assert.Empty(t, cfg.ClientID)
	assert.Empty(t, cfg.ClientSecret)
	assert.Equal(t, filepath.Join(GetConfigDir(), "token-responses.log"), cfg.TokenLogPath)
	assert.False(t, cfg.Debug)
}

func TestLoad_MissingCredentialsIsNotAnError(t *testing.T) {
	clearEnv(t)

	// Credentials are only required once a token is requested.
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PATLENS_API_BASE_URL", "https://api.example.com/")
	t.Setenv("PATLENS_CLIENT_ID", "id-1")
	t.Setenv("PATLENS_CLIENT_SECRET", "secret-1")
	t.Setenv("PATLENS_TOKEN_LOG", "/tmp/patlens-tokens.log")
	t.Setenv("PATLENS_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL, "trailing slash is trimmed")
	assert.Equal(t, "id-1", cfg.ClientID)
	assert.Equal(t, "secret-1", cfg.ClientSecret)
	assert.Equal(t, "/tmp/patlens-tokens.log", cfg.TokenLogPath)
	assert.True(t, cfg.Debug)
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("PATLENS_API_BASE_URL", "connect.patsnap.com")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_base_url")
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "patlens"), GetConfigDir())
}
