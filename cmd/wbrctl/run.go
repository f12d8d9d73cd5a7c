package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/wbr-engine/wbr/internal/configio"
	"github.com/wbr-engine/wbr/internal/ingest"
	"github.com/wbr-engine/wbr/internal/wbrconfig"
	"github.com/wbr-engine/wbr/internal/wbrdeck"
	"github.com/wbr-engine/wbr/internal/wbrengine"
	"github.com/wbr-engine/wbr/internal/wbrtable"
	"github.com/wbr-engine/wbr/internal/wbrvalue"
)

var (
	runConfigPath string
	runDataPath   string
	runOutputJSON bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute the WBR deck and print its box totals",
	RunE:  runRunCommand,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "path to the WBR configuration YAML (required)")
	runCmd.Flags().StringVar(&runDataPath, "data", "", "path to the daily observations CSV (required)")
	runCmd.Flags().BoolVar(&runOutputJSON, "json", false, "print the assembled deck as JSON instead of a table")
	runCmd.MarkFlagRequired("config")
	runCmd.MarkFlagRequired("data")
}

func runRunCommand(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, daily, err := loadInputs(runConfigPath, runDataPath)
	if err != nil {
		return err
	}
	log.Info("configuration and daily observations loaded", "config", runConfigPath, "data", runDataPath)

	res, err := wbrengine.Run(cfg, daily)
	if err != nil {
		return fmt.Errorf("computing wbr: %w", err)
	}
	log.Info("wbr computed", "metrics", len(cfg.Metrics))

	if len(cfg.Deck) == 0 {
		printBoxTotals(cfg, res)
		return nil
	}

	deck, err := wbrdeck.Build(cfg, res)
	if err != nil {
		return fmt.Errorf("assembling deck: %w", err)
	}

	if runOutputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(deck)
	}

	printDeckSummary(deck)
	printBoxTotals(cfg, res)
	return nil
}

func loadInputs(configPath, dataPath string) (*wbrconfig.Config, *wbrtable.Daily, error) {
	cfgBytes, err := os.ReadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := configio.DecodeYAML(cfgBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding config: %w", err)
	}

	dataFile, err := os.Open(dataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening data: %w", err)
	}
	defer dataFile.Close()
	daily, err := ingest.ReadCSV(dataFile)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding data: %w", err)
	}

	return cfg, daily, nil
}

// printBoxTotals renders the current-year box totals as a themed table, one
// row per metric, sorted by metric name.
func printBoxTotals(cfg *wbrconfig.Config, res *wbrengine.Result) {
	fmt.Println()
	headerColor.Println("BOX TOTALS")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(append([]string{"Metric"}, wbrengine.BoxAxisLabels...))
	table.SetBorder(false)
	table.SetRowSeparator("-")
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold},
	)

	for _, name := range sortedMetricNames(cfg) {
		row := make([]string, 0, res.CYBox.Len()+1)
		row = append(row, name)
		for i := 0; i < res.CYBox.Len(); i++ {
			row = append(row, formatValue(res.CYBox.Get(name, i)))
		}
		table.Append(row)
	}
	table.Render()
}

func printDeckSummary(deck *wbrdeck.Deck) {
	headerColor.Printf("%s - %s\n", deck.Title, deck.WeekEnding)
	infoColor.Printf("%d blocks assembled\n", len(deck.Blocks))
}

func sortedMetricNames(cfg *wbrconfig.Config) []string {
	names := make([]string, 0, len(cfg.Metrics))
	for name := range cfg.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatValue(v wbrvalue.Value) string {
	if !v.Valid {
		return "N/A"
	}
	f, _ := v.Float64()
	return fmt.Sprintf("%.2f", f)
}
