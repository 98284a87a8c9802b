package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/pratapsingh123om/wqam-dashboard/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "wqam",
	Short: "WQAM: normalize water-quality documents into evaluated reports",
	Long: `WQAM ingests heterogeneous water-quality documents (CSV, spreadsheets,
scanned/table PDF reports), maps their columns onto a canonical parameter
vocabulary, evaluates safe-range thresholds, and produces a structured
report with alerts, recommendations, and a pollution score.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.wqam/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: defaults still let analysis commands run
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &cfgpkg.Global{HistorySize: 25, ListenAddr: ":8080"}
		return
	}
	cfg = c
}
