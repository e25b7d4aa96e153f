package sheet

import (
	"context"
	"log"

	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/filter"
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/models"
	"github.com/xuri/excelize/v2"
)

// Options configures a sheet traversal.
type Options struct {
	// ForceRTL switches the sheet view to right-to-left. When false the
	// existing layout is left untouched.
	ForceRTL bool
	// Verbose enables per-cell logging.
	Verbose bool
}

// Translate rewrites every eligible text cell of a sheet in place.
// Formula cells and non-text values are never touched, and a cell is only
// rewritten when its translated value differs from the original.
func Translate(ctx context.Context, f *excelize.File, sheetName string, translate TranslateFunc, opts Options) (models.SheetReport, error) {
	report := models.SheetReport{Name: sheetName}

	if opts.ForceRTL {
		rtl := true
		if err := f.SetSheetView(sheetName, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return report, err
		}
	}
	if view, err := f.GetSheetView(sheetName, 0); err == nil && view.RightToLeft != nil {
		report.RightToLeft = *view.RightToLeft
	}

	counted := func(text string) string {
		report.Sent++
		return translate(text)
	}

	_, err := Walk(ctx, f, sheetName, func(c Cell) error {
		report.Cells++
		switch c.Kind {
		case KindFormula:
			report.Formulas++
		case KindRichText:
			report.RichText++
			for _, run := range c.Runs {
				if !filter.IsEligible(run.Text) {
					report.Skipped++
				}
			}
			runs := Reconstruct(c.Runs, counted)
			if runsEqual(c.Runs, runs) {
				return nil
			}
			if opts.Verbose {
				log.Printf("[sheet] %s!%s: rebuilt %d runs", sheetName, c.Name, len(runs))
			}
			return f.SetCellRichText(sheetName, c.Name, runs)
		case KindText:
			if !filter.IsEligible(c.Value) {
				report.Skipped++
				return nil
			}
			out := counted(c.Value)
			if out == c.Value {
				return nil
			}
			if opts.Verbose {
				log.Printf("[sheet] %s!%s: %q -> %q", sheetName, c.Name, c.Value, out)
			}
			return f.SetCellStr(sheetName, c.Name, out)
		}
		return nil
	})
	return report, err
}
