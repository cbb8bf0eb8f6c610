package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/domain/panel"
)

func reportDataset(t *testing.T) *defect.Dataset {
	t.Helper()
	g := panel.Geometry{Rows: 5, Cols: 5, Gap: 1}
	raw := []defect.RawRecord{
		{DefectType: "Nick", UnitX: 1, UnitY: 1},
		{DefectType: "Nick", UnitX: 2, UnitY: 2},
		{DefectType: "Short", UnitX: 6, UnitY: 1},
		{DefectType: "Cut", UnitX: 1, UnitY: 6},
	}
	d, err := defect.NewDataset("lot.xlsx", raw, g)
	require.NoError(t, err)
	return d
}

func TestReportWriter_Generate(t *testing.T) {
	data, err := NewReportWriter(reportDataset(t)).Generate()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, SheetSummary)
	assert.Contains(t, sheets, SheetFullList)
	// Q1, Q2 and Q3 have records; Q4 is empty and gets no sheet.
	assert.Contains(t, sheets, "Q1 Top Defects")
	assert.Contains(t, sheets, "Q2 Top Defects")
	assert.Contains(t, sheets, "Q3 Top Defects")
	assert.NotContains(t, sheets, "Q4 Top Defects")
	assert.NotContains(t, sheets, "Sheet1")

	// Summary rows follow the fixed quadrant order with a Total row.
	q1, err := f.GetCellValue(SheetSummary, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Q1", q1)
	total, err := f.GetCellValue(SheetSummary, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)
	totalCount, err := f.GetCellValue(SheetSummary, "B6")
	require.NoError(t, err)
	assert.Equal(t, "4", totalCount)

	// Full list carries the derived quadrant column.
	quad, err := f.GetCellValue(SheetFullList, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Q1", quad)
}

func TestReportWriter_TopDefectsRanked(t *testing.T) {
	data, err := NewReportWriter(reportDataset(t)).Generate()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// Q1 holds two Nicks; the ranking leads with them at 100% cumulative.
	name, err := f.GetCellValue("Q1 Top Defects", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Nick", name)
	count, err := f.GetCellValue("Q1 Top Defects", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", count)
	cumulative, err := f.GetCellValue("Q1 Top Defects", "D2")
	require.NoError(t, err)
	assert.Equal(t, "100", cumulative)
}
