package excel

// Required input columns for defect records. Header matching is
// case-insensitive; values are whitespace-trimmed.
const (
	ColumnDefectType = "DEFECT_TYPE"
	ColumnUnitX      = "UNIT_INDEX_X"
	ColumnUnitY      = "UNIT_INDEX_Y"
)

// RequiredColumns lists the columns every uploaded file must carry.
var RequiredColumns = []string{ColumnDefectType, ColumnUnitX, ColumnUnitY}

// Report sheet names.
const (
	SheetSummary  = "Quarterly Summary"
	SheetFullList = "Full Defect List"
)
