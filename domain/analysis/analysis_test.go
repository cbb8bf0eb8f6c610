package analysis

import (
	"math"
	"testing"

	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/domain/panel"
)

func testGeometry() panel.Geometry {
	return panel.Geometry{Rows: 5, Cols: 5, Gap: 1}
}

func classified(defectType string, x, y int, g panel.Geometry) defect.Record {
	return defect.Record{
		DefectType: defectType,
		UnitX:      x,
		UnitY:      y,
		Quadrant:   panel.Classify(x, y, g),
	}
}

func exampleRecords(g panel.Geometry) []defect.Record {
	return []defect.Record{
		classified("Nick", 1, 1, g),
		classified("Short", 6, 1, g),
		classified("Cut", 1, 6, g),
		classified("Island", 6, 6, g),
	}
}

func TestSummarize_ExampleScenario(t *testing.T) {
	g := testGeometry()
	s := Summarize(exampleRecords(g), g)

	if s.TotalDefects != 4 {
		t.Errorf("TotalDefects = %d, want 4", s.TotalDefects)
	}
	if s.DistinctDefectiveCells != 4 {
		t.Errorf("DistinctDefectiveCells = %d, want 4", s.DistinctDefectiveCells)
	}
	if s.DefectDensity != 0.16 {
		t.Errorf("DefectDensity = %v, want 0.16", s.DefectDensity)
	}
}

func TestSummarize_EmptyScopeIsValid(t *testing.T) {
	g := testGeometry()
	s := Summarize(nil, g)

	if !s.Empty() {
		t.Error("empty record set should report Empty()")
	}
	if s.DefectDensity != 0 || s.YieldEstimate != 1 {
		t.Errorf("empty scope stats = density %v, yield %v; want 0, 1", s.DefectDensity, s.YieldEstimate)
	}
}

func TestSummarize_DegenerateGeometryYieldsZeroes(t *testing.T) {
	s := Summarize(exampleRecords(testGeometry()), panel.Geometry{Rows: 0, Cols: 0})
	if s.DefectDensity != 0 || s.YieldEstimate != 0 {
		t.Errorf("degenerate geometry stats = density %v, yield %v; want 0, 0", s.DefectDensity, s.YieldEstimate)
	}
	if s.TotalDefects != 4 {
		t.Errorf("TotalDefects = %d, want 4 even with degenerate geometry", s.TotalDefects)
	}
}

// TestSummarize_NegativeYieldSurfaced constructs more distinct defective
// cells than a panel has and asserts the negative value comes out as
// computed, not clamped and not panicking.
func TestSummarize_NegativeYieldSurfaced(t *testing.T) {
	g := panel.Geometry{Rows: 2, Cols: 2, Gap: 1}

	// 5 distinct cells against a 4-cell panel. Only possible with
	// malformed input (indices from a larger panel), which is exactly the
	// data-quality case the negative yield is meant to expose.
	records := []defect.Record{
		classified("Nick", 0, 0, g),
		classified("Nick", 0, 1, g),
		classified("Nick", 1, 0, g),
		classified("Nick", 1, 1, g),
		classified("Nick", 0, 2, g),
	}

	s := Summarize(records, g)
	if s.DefectDensity < 0 {
		t.Errorf("DefectDensity = %v, must never be negative", s.DefectDensity)
	}
	if s.YieldEstimate >= 0 {
		t.Errorf("YieldEstimate = %v, want negative when defective cells exceed cell count", s.YieldEstimate)
	}
	want := float64(4-5) / 4
	if s.YieldEstimate != want {
		t.Errorf("YieldEstimate = %v, want %v", s.YieldEstimate, want)
	}
}

func TestPareto_ExampleScenario(t *testing.T) {
	g := testGeometry()
	entries := Pareto(exampleRecords(g))

	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	wantCumulative := []float64{25, 50, 75, 100}
	for i, e := range entries {
		if e.Count != 1 {
			t.Errorf("entry %d count = %d, want 1", i, e.Count)
		}
		if e.Percentage != 25 {
			t.Errorf("entry %d percentage = %v, want 25", i, e.Percentage)
		}
		if math.Abs(e.CumulativePercentage-wantCumulative[i]) > 1e-6 {
			t.Errorf("entry %d cumulative = %v, want %v", i, e.CumulativePercentage, wantCumulative[i])
		}
	}
}

// TestPareto_Closure checks the closure property on an uneven distribution:
// counts sum to the total and the last cumulative percentage is 100.
func TestPareto_Closure(t *testing.T) {
	g := testGeometry()
	var records []defect.Record
	for i := 0; i < 7; i++ {
		records = append(records, classified("Short", 1, 1, g))
	}
	for i := 0; i < 5; i++ {
		records = append(records, classified("Nick", 2, 2, g))
	}
	records = append(records, classified("Cut", 3, 3, g))

	entries := Pareto(records)
	sum := 0
	for _, e := range entries {
		sum += e.Count
	}
	if sum != len(records) {
		t.Errorf("counts sum to %d, want %d", sum, len(records))
	}
	last := entries[len(entries)-1].CumulativePercentage
	if math.Abs(last-100) > 1e-6 {
		t.Errorf("last cumulative = %v, want 100", last)
	}

	// Descending order.
	for i := 1; i < len(entries); i++ {
		if entries[i].Count > entries[i-1].Count {
			t.Errorf("entries not in descending order at %d", i)
		}
	}
}

func TestPareto_StableTieOrder(t *testing.T) {
	g := testGeometry()
	records := []defect.Record{
		classified("Cut", 1, 1, g),
		classified("Nick", 2, 2, g),
		classified("Cut", 3, 3, g),
		classified("Nick", 4, 4, g),
	}

	entries := Pareto(records)
	if entries[0].DefectType != "Cut" || entries[1].DefectType != "Nick" {
		t.Errorf("tie order = [%s %s], want first-seen [Cut Nick]", entries[0].DefectType, entries[1].DefectType)
	}
}

func TestPareto_EmptyInput(t *testing.T) {
	if entries := Pareto(nil); len(entries) != 0 {
		t.Errorf("Pareto(nil) = %v, want empty", entries)
	}
}

// TestCompareQuadrants_Completeness: all four quadrant columns are present
// and zero-filled even when the input only touches one quadrant.
func TestCompareQuadrants_Completeness(t *testing.T) {
	g := testGeometry()
	records := []defect.Record{
		classified("Nick", 1, 1, g), // Q1 only
		classified("Nick", 2, 2, g),
	}

	cmp := CompareQuadrants(records)
	if len(cmp.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(cmp.Rows))
	}
	row := cmp.Rows[0]
	if len(row.Counts) != 4 {
		t.Fatalf("got %d quadrant columns, want 4", len(row.Counts))
	}
	for _, q := range panel.Quadrants {
		want := 0
		if q == panel.QuadrantQ1 {
			want = 2
		}
		if got, present := row.Counts[q]; !present || got != want {
			t.Errorf("Counts[%s] = %d (present=%v), want %d", q, got, present, want)
		}
	}
}

func TestCompareQuadrants_RowOrderAndUnknown(t *testing.T) {
	g := testGeometry()
	records := []defect.Record{
		classified("Nick", 1, 1, g),
		classified("Short", 6, 1, g),
		classified("Short", 6, 2, g),
		classified("Cut", 99, 99, g), // unknown bucket
	}

	cmp := CompareQuadrants(records)
	if len(cmp.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(cmp.Rows))
	}
	if cmp.Rows[0].DefectType != "Short" {
		t.Errorf("row 0 = %s, want Short (highest total)", cmp.Rows[0].DefectType)
	}
	if cmp.Unknown != 1 {
		t.Errorf("Unknown = %d, want 1", cmp.Unknown)
	}
}

func TestSummarizePanel(t *testing.T) {
	g := testGeometry()
	raw := []defect.RawRecord{
		{DefectType: "Nick", UnitX: 1, UnitY: 1},
		{DefectType: "Short", UnitX: 6, UnitY: 1},
		{DefectType: "Cut", UnitX: 1, UnitY: 6},
		{DefectType: "Island", UnitX: 6, UnitY: 6},
		{DefectType: "Nick", UnitX: 99, UnitY: 99},
	}
	d, err := defect.NewDataset("lot.xlsx", raw, g)
	if err != nil {
		t.Fatalf("NewDataset failed: %v", err)
	}

	ps := SummarizePanel(d)
	if len(ps.Quadrants) != 4 {
		t.Fatalf("got %d quadrant rows, want 4", len(ps.Quadrants))
	}
	for i, q := range panel.Quadrants {
		if ps.Quadrants[i].Quadrant != q {
			t.Errorf("row %d quadrant = %s, want %s", i, ps.Quadrants[i].Quadrant, q)
		}
		if ps.Quadrants[i].TotalDefects != 1 {
			t.Errorf("row %d defects = %d, want 1", i, ps.Quadrants[i].TotalDefects)
		}
	}
	if ps.Total.TotalDefects != 5 {
		t.Errorf("total defects = %d, want 5", ps.Total.TotalDefects)
	}
	if ps.Unknown != 1 || ps.Flags.UnknownQuadrant != 1 {
		t.Errorf("unknown bucket = %d (flag %d), want 1", ps.Unknown, ps.Flags.UnknownQuadrant)
	}
	if ps.Spread.MeanDefects != 1 || ps.Spread.MaxDefects != 1 {
		t.Errorf("spread = %+v, want mean 1, max 1", ps.Spread)
	}
}
