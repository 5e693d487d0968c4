// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholardock CLI, the PDF
// acquisition stage of the ScholarDock pipeline: it takes article records
// produced by the discovery phase and retrieves their PDF artifacts.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the scholardock CLI.
var rootCmd = &cobra.Command{
	Use:   "scholardock",
	Short: "Acquire PDF artifacts for scholarly articles",
	Long: `scholardock retrieves PDF files for articles found by the discovery phase.
For each article it generates candidate URLs from known repository
conventions, validates every response against the PDF signature, resolves
interstitial redirect pages, and falls back to browser automation for
publishers that only serve PDFs after script execution.

Batch runs are recorded in a local history database; past runs are
inspected with the history subcommand.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholardock.yaml or ~/.config/scholardock/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholardock")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholardock"))
		}
	}

	viper.SetEnvPrefix("SCHOLARDOCK")
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
