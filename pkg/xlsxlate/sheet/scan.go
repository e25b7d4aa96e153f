package sheet

import (
	"context"

	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/filter"
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/models"
	"github.com/xuri/excelize/v2"
)

// Scan counts what a translation of the sheet would send, without calling
// any translation service and without modifying the sheet.
func Scan(f *excelize.File, sheetName string) (models.SheetScan, error) {
	scan := models.SheetScan{Name: sheetName}

	used, err := Walk(context.Background(), f, sheetName, func(c Cell) error {
		switch c.Kind {
		case KindFormula:
			scan.Formulas++
		case KindRichText:
			scan.RichText++
			for _, run := range c.Runs {
				countFragment(&scan, run.Text)
			}
		case KindText:
			countFragment(&scan, c.Value)
		}
		return nil
	})
	if err != nil {
		return scan, err
	}
	scan.Used = used

	merged, err := MergedAreas(f, sheetName)
	if err != nil {
		return scan, err
	}
	scan.Merged = merged
	return scan, nil
}

func countFragment(scan *models.SheetScan, text string) {
	if filter.IsEligible(text) {
		scan.Eligible++
	} else {
		scan.Skipped++
	}
}

// MergedAreas returns the merged regions of a sheet. Only the top-left cell
// of a region holds a value; the other members read as empty.
func MergedAreas(f *excelize.File, sheetName string) ([]models.Area, error) {
	cells, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, err
	}

	var areas []models.Area
	for _, mc := range cells {
		if area := parseRange(mc.GetStartAxis() + ":" + mc.GetEndAxis()); area != nil {
			areas = append(areas, *area)
		}
	}
	return areas, nil
}
