package sheet

import (
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/filter"
	"github.com/xuri/excelize/v2"
)

// TranslateFunc translates a single eligible text fragment.
type TranslateFunc func(text string) string

// Reconstruct builds a new run sequence with each run's text translated.
// Run count and order are preserved; a styled run keeps its Font pointer.
// Runs failing the eligibility filter are copied verbatim.
func Reconstruct(runs []excelize.RichTextRun, translate TranslateFunc) []excelize.RichTextRun {
	out := make([]excelize.RichTextRun, 0, len(runs))
	for _, run := range runs {
		text := run.Text
		if filter.IsEligible(text) {
			text = translate(text)
		}
		out = append(out, excelize.RichTextRun{Font: run.Font, Text: text})
	}
	return out
}

// runsEqual reports whether two run sequences carry identical text and styles.
func runsEqual(a, b []excelize.RichTextRun) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text || a[i].Font != b[i].Font {
			return false
		}
	}
	return true
}
