package excel

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sheldcoop/aoi-app/domain/analysis"
	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/domain/panel"
	"github.com/sheldcoop/aoi-app/internal"
)

// ReportWriter builds the downloadable multi-sheet workbook: the quarterly
// KPI summary with an embedded comparison chart, one top-defects sheet per
// non-empty quadrant, and the full classified record list.
type ReportWriter struct {
	dataset *defect.Dataset
	logger  *internal.Logger
}

// NewReportWriter creates a report writer over a loaded snapshot.
func NewReportWriter(d *defect.Dataset) *ReportWriter {
	return &ReportWriter{
		dataset: d,
		logger:  internal.NewDefaultLogger(),
	}
}

// quadrantSheet is the precomputed content of one per-quadrant sheet.
type quadrantSheet struct {
	quadrant panel.Quadrant
	entries  []analysis.ParetoEntry
}

// Generate renders the workbook to bytes.
func (w *ReportWriter) Generate() ([]byte, error) {
	start := time.Now()
	w.logger.Info("Generating report for snapshot %s (%d records)", w.dataset.ID, w.dataset.Len())

	// Per-quadrant rankings are independent of each other; compute them
	// concurrently, then write sheets in fixed order so the workbook is
	// deterministic.
	sheets := make([]quadrantSheet, len(panel.Quadrants))
	var eg errgroup.Group
	for i, q := range panel.Quadrants {
		i, q := i, q
		eg.Go(func() error {
			sheets[i] = quadrantSheet{
				quadrant: q,
				entries:  analysis.Pareto(w.dataset.Filter(q)),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummarySheet(f); err != nil {
		return nil, err
	}
	for _, sheet := range sheets {
		if len(sheet.entries) == 0 {
			continue
		}
		if err := w.writeTopDefectsSheet(f, sheet); err != nil {
			return nil, err
		}
	}
	if err := w.writeFullListSheet(f); err != nil {
		return nil, err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	w.logger.Info("Report generated in %.2fs (%d bytes)", time.Since(start).Seconds(), buf.Len())
	if w.logger.GetLevel() >= internal.LogLevelDebug {
		for _, sheet := range sheets {
			w.logger.Debug("Quadrant %s: %d defect types ranked", sheet.quadrant, len(sheet.entries))
		}
	}
	return buf.Bytes(), nil
}

func (w *ReportWriter) writeSummarySheet(f *excelize.File) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(SheetSummary, "A1", &[]interface{}{"Quadrant", "Total Defects", "Defect Density", "Yield Estimate"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "D1", header); err != nil {
		return err
	}

	summary := analysis.SummarizePanel(w.dataset)
	row := 2
	for _, s := range summary.Quadrants {
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(SheetSummary, cell, &[]interface{}{
			s.Quadrant.String(), s.TotalDefects, s.DefectDensity, s.YieldEstimate,
		}); err != nil {
			return err
		}
		row++
	}
	if err := f.SetSheetRow(SheetSummary, fmt.Sprintf("A%d", row), &[]interface{}{
		"Total", summary.Total.TotalDefects, summary.Total.DefectDensity, summary.Total.YieldEstimate,
	}); err != nil {
		return err
	}
	if summary.Unknown > 0 {
		row++
		if err := f.SetSheetRow(SheetSummary, fmt.Sprintf("A%d", row), &[]interface{}{
			panel.QuadrantUnknown.String(), summary.Unknown, "", "",
		}); err != nil {
			return err
		}
	}

	// Column chart comparing defect counts across the four quadrants.
	return f.AddChart(SheetSummary, "F2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       "Total Defects by Quadrant",
			Categories: fmt.Sprintf("'%s'!$A$2:$A$5", SheetSummary),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$5", SheetSummary),
		}},
		Title:  []excelize.RichTextRun{{Text: "Defect Count Comparison"}},
		Legend: excelize.ChartLegend{Position: "none"},
	})
}

func (w *ReportWriter) writeTopDefectsSheet(f *excelize.File, sheet quadrantSheet) error {
	name := fmt.Sprintf("%s Top Defects", sheet.quadrant)
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(name, "A1", &[]interface{}{"Defect Type", "Count", "Percentage", "Cumulative %"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", "D1", header); err != nil {
		return err
	}

	for i, e := range sheet.entries {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(name, cell, &[]interface{}{
			e.DefectType, e.Count, e.Percentage, e.CumulativePercentage,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeFullListSheet(f *excelize.File) error {
	if _, err := f.NewSheet(SheetFullList); err != nil {
		return err
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetFullList, "A1", &[]interface{}{
		ColumnUnitX, ColumnUnitY, ColumnDefectType, "QUADRANT",
	}); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetFullList, "A1", "D1", header); err != nil {
		return err
	}

	for i, r := range w.dataset.Records() {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(SheetFullList, cell, &[]interface{}{
			r.UnitX, r.UnitY, r.DefectType, r.Quadrant.String(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D7E4BC"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}
