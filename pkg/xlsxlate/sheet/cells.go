// Package sheet walks worksheet cells and rewrites their text in place.
package sheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/filter"
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/models"
	"github.com/xuri/excelize/v2"
)

// Kind classifies the value held by a cell.
type Kind int

const (
	// KindEmpty is a cell with no value.
	KindEmpty Kind = iota
	// KindFormula is a formula, stored or written as text with the formula marker.
	KindFormula
	// KindRichText is a sequence of styled runs.
	KindRichText
	// KindText is a plain string.
	KindText
	// KindValue is a number, date, boolean or error value.
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindFormula:
		return "formula"
	case KindRichText:
		return "rich-text"
	case KindText:
		return "text"
	case KindValue:
		return "value"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Cell is a classified cell within a sheet.
type Cell struct {
	// Name is the cell reference, e.g. "B3".
	Name string
	// Row is the 1-based row index.
	Row int
	// Col is the 1-based column index.
	Col int
	// Kind is the value classification.
	Kind Kind
	// Value is the raw string value (text and formula-marker cells).
	Value string
	// Runs holds the rich-text runs (KindRichText only).
	Runs []excelize.RichTextRun
}

// Classify inspects a single cell.
func Classify(f *excelize.File, sheetName, cellName string) (Cell, error) {
	col, row, err := excelize.CellNameToCoordinates(cellName)
	if err != nil {
		return Cell{}, err
	}
	c := Cell{Name: cellName, Row: row, Col: col}

	formula, err := f.GetCellFormula(sheetName, cellName)
	if err != nil {
		return c, err
	}
	if formula != "" {
		c.Kind = KindFormula
		c.Value = filter.FormulaMarker + formula
		return c, nil
	}

	cellType, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return c, err
	}

	// Rich text is stored either in the shared string table or inline
	// (<is><r>...</r></is>), the form openpyxl writes.
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		runs, err := f.GetCellRichText(sheetName, cellName)
		if err != nil {
			// A plain inline string has no shared string index.
			if cellType == excelize.CellTypeInlineString {
				break
			}
			return c, err
		}
		if isRichText(runs) {
			c.Kind = KindRichText
			c.Runs = runs
			return c, nil
		}
	}

	value, err := f.GetCellValue(sheetName, cellName, excelize.Options{RawCellValue: true})
	if err != nil {
		return c, err
	}
	c.Value = value

	switch {
	case value == "":
		c.Kind = KindEmpty
	case cellType == excelize.CellTypeSharedString,
		cellType == excelize.CellTypeInlineString,
		cellType == excelize.CellTypeFormula:
		if filter.IsFormula(value) {
			c.Kind = KindFormula
		} else {
			c.Kind = KindText
		}
	default:
		c.Kind = KindValue
	}
	return c, nil
}

// isRichText reports whether runs carry structure beyond a single bare string.
func isRichText(runs []excelize.RichTextRun) bool {
	if len(runs) > 1 {
		return true
	}
	return len(runs) == 1 && runs[0].Font != nil
}

// UsedRange returns the bounds covering every populated cell of a sheet.
// An empty sheet yields the zero Area.
func UsedRange(f *excelize.File, sheetName string) (models.Area, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Area{}, err
	}

	var used models.Area
	for rowIdx, row := range rows {
		for colIdx := len(row) - 1; colIdx >= 0; colIdx-- {
			if row[colIdx] == "" {
				continue
			}
			used = extend(used, rowIdx+1, colIdx+1)
			break
		}
	}

	// The stored dimension also covers formulas without a cached value.
	if dim, err := f.GetSheetDimension(sheetName); err == nil {
		if area := parseRange(dim); area != nil && area.Cells() > 1 {
			used = extend(used, area.R2, area.C2)
		}
	}
	return used, nil
}

func extend(a models.Area, row, col int) models.Area {
	a.R1, a.C1 = 1, 1
	if row > a.R2 {
		a.R2 = row
	}
	if col > a.C2 {
		a.C2 = col
	}
	return a
}

// Walk visits every cell of the used range in row-major order.
// The context is checked once per row.
func Walk(ctx context.Context, f *excelize.File, sheetName string, fn func(Cell) error) (models.Area, error) {
	used, err := UsedRange(f, sheetName)
	if err != nil {
		return used, err
	}

	for row := used.R1; row <= used.R2 && row > 0; row++ {
		if err := ctx.Err(); err != nil {
			return used, err
		}
		for col := used.C1; col <= used.C2; col++ {
			name, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return used, err
			}
			cell, err := Classify(f, sheetName, name)
			if err != nil {
				return used, fmt.Errorf("cell %s: %w", name, err)
			}
			if err := fn(cell); err != nil {
				return used, err
			}
		}
	}
	return used, nil
}

// parseRange parses a range string like $A$1:$D$10 or a single reference
// like B2 into an Area.
func parseRange(rangeStr string) *models.Area {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(strings.TrimSpace(rangeStr), "$", "")
	if rangeStr == "" {
		return nil
	}

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.Area{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}
