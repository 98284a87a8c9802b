package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pratapsingh123om/wqam-dashboard/internal/table"
)

var extractFormat string

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract the raw table from a document without evaluating it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		t, err := table.Extract(data, filepath.Base(path))
		if err != nil {
			return err
		}
		switch extractFormat {
		case "csv":
			return writeCSV(t)
		case "json":
			return writeJSON(t)
		}
		return fmt.Errorf("unknown format %q (want csv or json)", extractFormat)
	},
}

func writeCSV(t *table.RawTable) error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			if c != nil {
				rec[i] = *c
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(t *table.RawTable) error {
	out, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	extractCmd.Flags().StringVar(&extractFormat, "format", "csv", "output format: csv or json")
	rootCmd.AddCommand(extractCmd)
}
