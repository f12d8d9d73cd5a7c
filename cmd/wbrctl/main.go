// Command wbrctl is the CLI entry point for computing a WBR deck from a
// configuration document and a daily observations CSV.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wbr-engine/wbr/pkg/logger"
)

var (
	verbose bool
	noColor bool
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgMagenta, color.Bold)
)

var rootCmd = &cobra.Command{
	Use:   "wbrctl",
	Short: "Compute a Weekly Business Review deck from a configuration and daily observations",
	Long: `wbrctl turns a WBR configuration document and a daily observations CSV
into a rendered deck of six-week and twelve-month metric tables and charts.

  wbrctl run --config wbr.yaml --data daily.csv
  wbrctl validate --config wbr.yaml`,
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		}
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *logger.DefaultLogger {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.NewDefaultLogger("wbrctl", level)
}

var (
	buildVersion = "0.1.0"
	buildCommit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wbrctl %s (%s)\n", buildVersion, buildCommit)
	},
}
