package main

import (
	"fmt"
	"os"

	"patlens/internal/config"
	"patlens/internal/logging"
	"patlens/internal/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "patlens",
		Short: "PatLens - patent analytics over MCP",
		Long: `PatLens is an MCP server exposing patent analytics tools. Each tool
proxies one insights endpoint of the upstream patent-data API, authenticated
with an OAuth2 client-credentials bearer token.`,
		Version: version.GetVersionString(),
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/patlens/config.yaml)")

	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.GetConfigDir())
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)

	// The config file is optional. Report it on stderr: stdout belongs to
	// the protocol stream in stdio mode.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func initLogging() {
	cfg, err := config.Load()
	if err != nil {
		logging.Initialize(false)
		return
	}
	logging.Initialize(cfg.Debug)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
