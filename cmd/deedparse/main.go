// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the deedparse CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the deedparse CLI.
var rootCmd = &cobra.Command{
	Use:   "deedparse",
	Short: "Extract address, buyer, seller and date from real-estate sentences",
	Long: `deedparse reads a free-form sentence describing a property transfer and
pulls out the property address, buyer, seller and transfer date, with a
confidence score.

Use extract for a single sentence, batch for a file of sentences, and serve
to expose the same engine over HTTP.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deedparse.yaml or ~/.config/deedparse/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")
	rootCmd.PersistentFlags().String("history-path", "", "history database file")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("history.path", rootCmd.PersistentFlags().Lookup("history-path"))

	setDefaults(viper.GetViper())
}

func initConfig() {
	// A missing .env is not an error; existing environment variables win.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deedparse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deedparse"))
		}
	}

	viper.SetEnvPrefix("DEEDPARSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
