package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wbr-engine/wbr/internal/configio"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a configuration document for structural errors",
	RunE:  runValidateCommand,
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "path to the WBR configuration YAML (required)")
	validateCmd.MarkFlagRequired("config")
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(validateConfigPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	cfg, err := configio.DecodeYAML(data)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "invalid: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		errorColor.Fprintf(os.Stderr, "invalid: %v\n", err)
		os.Exit(1)
	}
	successColor.Printf("%s is valid: %d metrics, %d deck blocks\n", validateConfigPath, len(cfg.Metrics), len(cfg.Deck))
	return nil
}
