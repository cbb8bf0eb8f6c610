package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "defects.csv")
	data := "DEFECT_TYPE,UNIT_INDEX_X,UNIT_INDEX_Y\n" +
		"Nick,1,1\n" +
		"Short,6,1\n" +
		"Short,1,6\n" +
		"Cut,6,6\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeCmdWritesReports(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeTestCSV(t, dir)
	outDir := filepath.Join(dir, "out")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"analyze", "--rows", "5", "--cols", "5", "--gap", "1", "-o", outDir, csvPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("analyze failed: %v\n%s", err, out.String())
	}

	for _, name := range []string{"full_defect_report.xlsx", "defect_report.md"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected report %s: %v", name, err)
		}
	}

	text := out.String()
	if !strings.Contains(text, "Quadrant") {
		t.Errorf("expected summary table in output, got:\n%s", text)
	}
	for _, q := range []string{"Q1", "Q2", "Q3", "Q4"} {
		if !strings.Contains(text, q) {
			t.Errorf("expected %s row in summary output", q)
		}
	}
}

func TestAnalyzeCmdMissingFile(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"analyze", "--rows", "5", "--cols", "5", filepath.Join(t.TempDir(), "nope.csv")})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestAnalyzeCmdRejectsBadGeometry(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeTestCSV(t, dir)

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"analyze", "--rows", "1", "--cols", "5", csvPath})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for degenerate geometry")
	}
}
