// Package report renders loaded snapshots as shareable summary documents.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/sheldcoop/aoi-app/domain/analysis"
	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/domain/panel"
)

// MarkdownWriter outputs the analysis summary in Markdown format, for
// pasting into wikis and shift-handover notes where the Excel report is
// too heavy.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders the full summary for a loaded snapshot.
func (w *MarkdownWriter) Write(d *defect.Dataset) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, d)
	w.writeSummary(md, d)
	w.writePareto(md, d)
	w.writeComparison(md, d)

	return md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, d *defect.Dataset) {
	md.H1("Panel Defect Analysis Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + d.Source + "`"},
			{"Loaded", d.LoadedAt.Format("2006-01-02 15:04:05 MST")},
			{"Panel Geometry", fmt.Sprintf("%dx%d, gap %d", d.Geometry.Rows, d.Geometry.Cols, d.Geometry.Gap)},
			{"Records", strconv.Itoa(d.Len())},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, d *defect.Dataset) {
	summary := analysis.SummarizePanel(d)

	md.H2("Quarterly KPI Breakdown")
	md.PlainText("")

	rows := make([][]string, 0, len(summary.Quadrants)+2)
	for _, s := range summary.Quadrants {
		rows = append(rows, []string{
			s.Quadrant.String(),
			strconv.Itoa(s.TotalDefects),
			fmt.Sprintf("%.2f", s.DefectDensity),
			fmt.Sprintf("%.2f%%", s.YieldEstimate*100),
		})
	}
	rows = append(rows, []string{
		"**Total**",
		"**" + strconv.Itoa(summary.Total.TotalDefects) + "**",
		fmt.Sprintf("%.2f", summary.Total.DefectDensity),
		fmt.Sprintf("%.2f%%", summary.Total.YieldEstimate*100),
	})
	md.Table(markdown.TableSet{
		Header: []string{"Quadrant", "Total Defects", "Defect Density", "Yield Estimate"},
		Rows:   rows,
	})
	md.PlainText("")

	if summary.Unknown > 0 {
		md.PlainText(fmt.Sprintf("> %d record(s) fall outside the inspected index range and are bucketed as Unknown.", summary.Unknown))
		md.PlainText("")
	}
	if summary.Flags.NegativeYield {
		md.PlainText("> Negative yield estimate: distinct defective cells exceed the panel cell count. Check the input for duplicated or mis-indexed rows.")
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writePareto(md *markdown.Markdown, d *defect.Dataset) {
	entries := analysis.Pareto(d.Records())

	md.H2("Defect Pareto")
	md.PlainText("")
	if len(entries) == 0 {
		md.PlainText("No defects in this scope.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.DefectType,
			strconv.Itoa(e.Count),
			fmt.Sprintf("%.2f%%", e.Percentage),
			fmt.Sprintf("%.2f%%", e.CumulativePercentage),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Defect Type", "Count", "Percentage", "Cumulative"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeComparison(md *markdown.Markdown, d *defect.Dataset) {
	cmp := analysis.CompareQuadrants(d.Records())

	md.H2("Defect Distribution by Quadrant")
	md.PlainText("")
	if len(cmp.Rows) == 0 {
		md.PlainText("No defects in this scope.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(cmp.Rows))
	for _, r := range cmp.Rows {
		row := []string{r.DefectType}
		for _, q := range panel.Quadrants {
			row = append(row, strconv.Itoa(r.Counts[q]))
		}
		row = append(row, strconv.Itoa(r.Total))
		rows = append(rows, row)
	}
	md.Table(markdown.TableSet{
		Header: []string{"Defect Type", "Q1", "Q2", "Q3", "Q4", "Total"},
		Rows:   rows,
	})
}
