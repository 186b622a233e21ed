package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix for every setting, e.g.
// PATLENS_CLIENT_ID, PATLENS_CLIENT_SECRET, PATLENS_API_BASE_URL.
const EnvPrefix = "PATLENS"

const defaultAPIBaseURL = "https://connect.patsnap.com"

type Config struct {
	APIBaseURL   string
	ClientID     string
	ClientSecret string
	TokenLogPath string
	Debug        bool
}

// Load resolves configuration from viper: environment variables, the
// optional config file bound by the CLI layer, then defaults.
// Credentials are deliberately not validated here — a missing client
// id/secret surfaces on the first token request, not at startup.
func Load() (*Config, error) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("api_base_url", defaultAPIBaseURL)
	viper.SetDefault("token_log", filepath.Join(GetConfigDir(), "token-responses.log"))

	cfg := &Config{
		APIBaseURL:   strings.TrimRight(viper.GetString("api_base_url"), "/"),
		ClientID:     viper.GetString("client_id"),
		ClientSecret: viper.GetString("client_secret"),
		TokenLogPath: viper.GetString("token_log"),
		Debug:        viper.GetBool("debug"),
	}

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api_base_url %q: must be an absolute URL", cfg.APIBaseURL)
	}

	return cfg, nil
}

// GetConfigDir returns the XDG config directory for patlens
func GetConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, _ := os.UserHomeDir()
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "patlens")
}
