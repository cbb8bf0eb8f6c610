package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/internal/errors"
)

// DefectReader reads defect records from Excel and CSV files. It validates
// the schema up front and halts with no partial output on the first
// unparseable cell: an aggregate built from half a file would be worse
// than no aggregate at all.
type DefectReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDefectReader creates a reader for the given file, picking the format
// from the extension.
func NewDefectReader(filePath string) *DefectReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DefectReader{filePath: filePath, fileType: fileType}
}

// ReadDefects reads and validates the full record list.
func (r *DefectReader) ReadDefects() ([]defect.RawRecord, error) {
	log.Printf("[DefectReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath))
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	return ParseRows(rows)
}

func (r *DefectReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	log.Printf("[DefectReader] Sheet %s read (%d rows)", sheet, len(rows))
	return rows, nil
}

func (r *DefectReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()
	return readCSV(file)
}

func readCSV(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV data")
	}
	return rows, nil
}

// ReadDefectsFrom parses defect records from an in-memory upload. The name
// selects the format the same way the file reader does.
func ReadDefectsFrom(src io.Reader, name string) ([]defect.RawRecord, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".csv" {
		rows, err := readCSV(src)
		if err != nil {
			return nil, err
		}
		return ParseRows(rows)
	}

	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	return ParseRows(rows)
}

// ParseRows validates the header and converts data rows into raw records.
// Every missing required column is named in one SchemaError; the first
// non-integer index cell also fails the whole file.
func ParseRows(rows [][]string) ([]defect.RawRecord, error) {
	if len(rows) == 0 {
		return nil, errors.SchemaInvalid(RequiredColumns...)
	}

	index := make(map[string]int)
	for i, header := range rows[0] {
		index[strings.ToUpper(strings.TrimSpace(header))] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.SchemaInvalid(missing...)
	}

	typeCol := index[ColumnDefectType]
	xCol := index[ColumnUnitX]
	yCol := index[ColumnUnitY]

	records := make([]defect.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		// Skip fully blank rows; Excel exports often carry trailing ones.
		if cell(typeCol) == "" && cell(xCol) == "" && cell(yCol) == "" {
			continue
		}

		x, err := strconv.Atoi(cell(xCol))
		if err != nil {
			return nil, errors.New(errors.CodeSchemaInvalid,
				fmt.Sprintf("column %s has non-integer value %q at data row %d", ColumnUnitX, cell(xCol), i+1))
		}
		y, err := strconv.Atoi(cell(yCol))
		if err != nil {
			return nil, errors.New(errors.CodeSchemaInvalid,
				fmt.Sprintf("column %s has non-integer value %q at data row %d", ColumnUnitY, cell(yCol), i+1))
		}
		defectType := cell(typeCol)
		if defectType == "" {
			return nil, errors.New(errors.CodeSchemaInvalid,
				fmt.Sprintf("column %s is empty at data row %d", ColumnDefectType, i+1))
		}

		records = append(records, defect.RawRecord{DefectType: defectType, UnitX: x, UnitY: y})
	}

	log.Printf("[DefectReader] Parsed %d defect records", len(records))
	return records, nil
}
