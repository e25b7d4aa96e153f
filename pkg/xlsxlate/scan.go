package xlsxlate

import (
	"fmt"
	"path/filepath"

	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/models"
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/sheet"
	"github.com/xuri/excelize/v2"
)

// Scan reports, per sheet, how many fragments a translation would send.
// It never modifies the workbook.
func Scan(f *excelize.File) (*models.ScanReport, error) {
	report := &models.ScanReport{}
	for _, name := range f.GetSheetList() {
		s, err := sheet.Scan(f, name)
		if err != nil {
			return report, NewSheetError(name, "scan", err)
		}
		report.Sheets = append(report.Sheets, s)
	}
	return report, nil
}

// ScanFile opens the workbook at path and scans it.
func ScanFile(path string) (*models.ScanReport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	report, err := Scan(f)
	if report != nil {
		report.BookName = filepath.Base(path)
	}
	return report, err
}
