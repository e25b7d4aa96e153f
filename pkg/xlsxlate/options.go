// Package xlsxlate translates the text content of spreadsheet workbooks while
// preserving sheets, formulas, rich-text styling and layout.
package xlsxlate

import (
	"fmt"

	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/models"
)

// Options configures a workbook translation.
type Options struct {
	// Source is the language of the workbook content.
	Source models.Language
	// Target is the language to translate into.
	Target models.Language
	// ForceRTL switches every sheet to right-to-left layout.
	// When false, sheet layouts are left as they are.
	ForceRTL bool
	// OnProgress is called after each sheet completes.
	OnProgress func(models.SheetProgress)
	// Verbose enables detailed logging.
	Verbose bool
}

// DefaultOptions returns options for a language pair with the layout flag
// defaulted from the target language.
func DefaultOptions(source, target models.Language) Options {
	return Options{
		Source:   source,
		Target:   target,
		ForceRTL: models.DefaultRTL(target),
	}
}

// Validate checks the language pair.
func (o Options) Validate() error {
	for _, l := range []models.Language{o.Source, o.Target} {
		if !l.Supported() {
			return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, l)
		}
	}
	if o.Source == o.Target {
		return fmt.Errorf("%w: %s", ErrSameLanguage, o.Source)
	}
	return nil
}

func (o Options) progress(p models.SheetProgress) {
	if o.OnProgress != nil {
		o.OnProgress(p)
	}
}
