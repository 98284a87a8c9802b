package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pratapsingh123om/wqam-dashboard/internal/analyze"
)

// runCmd executes the root command with args, resetting flag state that
// sticks across invocations.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	analyzeUploader = "cli"
	analyzeModel = ""
	analyzeOut = ""
	analyzeCompact = false
	extractFormat = "csv"
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func TestCLI_AnalyzeWritesReport(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	docPath := filepath.Join(home, "samples.csv")
	csv := "Timestamp,pH,Turbidity\n" +
		"2025-02-01 08:00:00,7.1,1.2\n" +
		"2025-02-02 08:00:00,7.3,6.5\n"
	if err := os.WriteFile(docPath, []byte(csv), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	outPath := filepath.Join(home, "report.json")

	runCmd(t, "analyze", docPath, "-o", outPath, "--uploader", "fieldtech")

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var report analyze.Report
	if err := json.Unmarshal(b, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.UploadedBy != "fieldtech" {
		t.Errorf("uploaded_by = %q", report.UploadedBy)
	}
	if len(report.Parameters) != 2 {
		t.Errorf("parameters = %d, want 2", len(report.Parameters))
	}
	// 6.5 NTU exceeds the 1.2x critical band over the 5.0 limit.
	if report.MapStatus != analyze.MapStatusPoor {
		t.Errorf("map_status = %s, want poor", report.MapStatus)
	}
	if len(report.Alerts) == 0 {
		t.Error("expected a turbidity alert")
	}
}

func TestCLI_AnalyzeUnreadableFileFails(t *testing.T) {
	rootCmd.SetArgs([]string{"analyze", filepath.Join(t.TempDir(), "absent.csv")})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing file")
	}
}
