package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sheldcoop/aoi-app/adapters/excel"
	"github.com/sheldcoop/aoi-app/domain/analysis"
	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/internal/config"
	"github.com/sheldcoop/aoi-app/internal/errors"
	"github.com/sheldcoop/aoi-app/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <defect-file>",
		Short: "Run a one-shot analysis of a defect file",
		Long: `Analyze reads a defect list (Excel or CSV), classifies every record
into its quadrant, prints the quarterly summary, and writes the full
Excel and Markdown reports into the report directory.

Examples:
  # Analyze with the configured panel geometry
  aoi analyze defects.xlsx

  # Override the geometry for a different panel design
  aoi analyze --rows 10 --cols 10 --gap 2 defects.csv

  # Write reports somewhere specific
  aoi analyze -o ./out defects.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().Int("rows", 0, "Rows per sub-panel (overrides config)")
	cmd.Flags().Int("cols", 0, "Columns per sub-panel (overrides config)")
	cmd.Flags().Int("gap", -1, "Gap between sub-panels in grid units (overrides config)")
	cmd.Flags().StringP("output", "o", "", "Report output directory (default: configured report dir)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	g := cfg.Panel
	if v, _ := cmd.Flags().GetInt("rows"); v > 0 {
		g.Rows = v
	}
	if v, _ := cmd.Flags().GetInt("cols"); v > 0 {
		g.Cols = v
	}
	if v, _ := cmd.Flags().GetInt("gap"); v >= 0 {
		g.Gap = v
	}
	if err := g.Validate(); err != nil {
		return err
	}

	filePath := args[0]
	raw, err := excel.NewDefectReader(filePath).ReadDefects()
	if err != nil {
		return err
	}

	d, err := defect.NewDataset(filepath.Base(filePath), raw, g)
	if err != nil {
		return err
	}

	printSummary(cmd, d)

	outDir, _ := cmd.Flags().GetString("output")
	if outDir == "" {
		outDir = cfg.Paths.ReportDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create report directory %s", outDir)
	}

	xlsxPath := filepath.Join(outDir, "full_defect_report.xlsx")
	data, err := excel.NewReportWriter(d).Generate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", xlsxPath)
	}

	mdPath := filepath.Join(outDir, "defect_report.md")
	mdFile, err := os.Create(mdPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", mdPath)
	}
	defer mdFile.Close()
	if err := report.NewMarkdownWriter(mdFile).Write(d); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nReports written:\n  %s\n  %s\n", xlsxPath, mdPath)
	return nil
}

// printSummary writes the quarterly KPI breakdown to stdout.
func printSummary(cmd *cobra.Command, d *defect.Dataset) {
	out := cmd.OutOrStdout()
	summary := analysis.SummarizePanel(d)

	fmt.Fprintf(out, "Dataset %s: %d records on a %dx%d panel grid (gap %d)\n\n",
		d.Source, d.Len(), d.Geometry.Rows, d.Geometry.Cols, d.Geometry.Gap)

	fmt.Fprintf(out, "%-8s %10s %12s %10s %8s\n", "Quadrant", "Defects", "Def. Cells", "Density", "Yield")
	for _, s := range summary.Quadrants {
		fmt.Fprintf(out, "%-8s %10d %12d %10.4f %7.2f%%\n",
			s.Quadrant, s.TotalDefects, s.DistinctDefectiveCells, s.DefectDensity, s.YieldEstimate*100)
	}
	fmt.Fprintf(out, "%-8s %10d %12d %10.4f %7.2f%%\n",
		"Total", summary.Total.TotalDefects, summary.Total.DistinctDefectiveCells,
		summary.Total.DefectDensity, summary.Total.YieldEstimate*100)

	if summary.Unknown > 0 {
		fmt.Fprintf(out, "\nWarning: %d record(s) fall outside the panel index range\n", summary.Unknown)
	}
	if summary.Flags.NegativeYield {
		fmt.Fprintf(out, "Warning: defective cells exceed the cell count; check for duplicate rows\n")
	}
}
