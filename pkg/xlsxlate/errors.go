package xlsxlate

import (
	"errors"
	"fmt"

	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/models"
)

// ErrSameLanguage indicates identical source and target languages.
var ErrSameLanguage = errors.New("source and target languages are the same")

// ErrUnsupportedLanguage indicates a language outside the supported set.
var ErrUnsupportedLanguage = models.ErrUnsupportedLanguage

// ErrInvalidFormat indicates the input is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// SheetError represents an error while processing a sheet.
type SheetError struct {
	SheetName string
	Stage     string // "translate", "scan"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s error in sheet %q: %v", e.Stage, e.SheetName, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, stage string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
