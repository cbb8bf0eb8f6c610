package excel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sheldcoop/aoi-app/internal/errors"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "defects.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestDefectReader_ReadsWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"DEFECT_TYPE", "UNIT_INDEX_X", "UNIT_INDEX_Y"},
		{"Nick", 1, 1},
		{" Short ", 6, 1},
	})

	records, err := NewDefectReader(path).ReadDefects()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Nick", records[0].DefectType)
	assert.Equal(t, 1, records[0].UnitX)
	// Whitespace is trimmed from labels.
	assert.Equal(t, "Short", records[1].DefectType)
	assert.Equal(t, 6, records[1].UnitX)
}

func TestDefectReader_ReadsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defects.csv")
	csv := "DEFECT_TYPE,UNIT_INDEX_X,UNIT_INDEX_Y\nCut,2,3\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	records, err := NewDefectReader(path).ReadDefects()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Cut", records[0].DefectType)
	assert.Equal(t, 2, records[0].UnitX)
	assert.Equal(t, 3, records[0].UnitY)
}

func TestDefectReader_MissingFile(t *testing.T) {
	_, err := NewDefectReader(filepath.Join(t.TempDir(), "nope.xlsx")).ReadDefects()
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

// TestParseRows_MissingColumnsNamed verifies the failure message names
// every missing column so the user can fix the upload in one pass.
func TestParseRows_MissingColumnsNamed(t *testing.T) {
	_, err := ParseRows([][]string{
		{"DEFECT_TYPE"},
		{"Nick"},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeSchemaInvalid, errors.GetCode(err))
	assert.Contains(t, err.Error(), "UNIT_INDEX_X")
	assert.Contains(t, err.Error(), "UNIT_INDEX_Y")
	assert.NotContains(t, err.Error(), "DEFECT_TYPE")
}

func TestParseRows_NonIntegerIndexHalts(t *testing.T) {
	_, err := ParseRows([][]string{
		{"DEFECT_TYPE", "UNIT_INDEX_X", "UNIT_INDEX_Y"},
		{"Nick", "1", "1"},
		{"Short", "oops", "2"},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeSchemaInvalid, errors.GetCode(err))
	assert.Contains(t, err.Error(), "UNIT_INDEX_X")
	assert.Contains(t, err.Error(), "oops")
}

func TestParseRows_HeaderCaseInsensitive(t *testing.T) {
	records, err := ParseRows([][]string{
		{"defect_type", "unit_index_x", "unit_index_y"},
		{"Nick", "1", "2"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestParseRows_SkipsBlankRows(t *testing.T) {
	records, err := ParseRows([][]string{
		{"DEFECT_TYPE", "UNIT_INDEX_X", "UNIT_INDEX_Y"},
		{"Nick", "1", "2"},
		{"", "", ""},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestReadDefectsFrom_CSVUpload(t *testing.T) {
	src := strings.NewReader("DEFECT_TYPE,UNIT_INDEX_X,UNIT_INDEX_Y\nIsland,4,5\n")
	records, err := ReadDefectsFrom(src, "upload.csv")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Island", records[0].DefectType)
}
