package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pratapsingh123om/wqam-dashboard/internal/analyze"
	"github.com/pratapsingh123om/wqam-dashboard/internal/mlmodel"
)

var (
	analyzeUploader string
	analyzeModel    string
	analyzeOut      string
	analyzeCompact  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a water-quality document and print the full report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}

		modelPath := analyzeModel
		if modelPath == "" && cfg != nil {
			modelPath = cfg.ModelPath
		}
		opts := []analyze.Option{analyze.WithModel(mlmodel.NewHandle(modelPath))}
		if cfg != nil {
			opts = append(opts, analyze.WithRegistry(cfg.Registry()))
		}
		pipeline := analyze.NewPipeline(opts...)

		report, err := pipeline.BuildReport(data, filepath.Base(path), analyzeUploader)
		if err != nil {
			return err
		}
		if debug {
			fmt.Fprintln(os.Stderr, "•", report.Describe())
		}

		var out []byte
		if analyzeCompact {
			out, err = json.Marshal(report)
		} else {
			out, err = json.MarshalIndent(report, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if analyzeOut != "" {
			if err := os.WriteFile(analyzeOut, out, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("✓ Report written to %s\n", analyzeOut)
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeUploader, "uploader", "cli", "identity recorded as the report's uploader")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "path to pollution model artifact (overrides config)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeCompact, "compact", false, "emit compact JSON")
	rootCmd.AddCommand(analyzeCmd)
}
