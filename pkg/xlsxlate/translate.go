package xlsxlate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/gateway"
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/models"
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/sheet"
	"github.com/xuri/excelize/v2"
)

// MIMEType is the media type of translated workbooks.
const MIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Translator translates one text fragment. Failures are reported through
// the Result and never abort the workbook.
type Translator interface {
	Translate(ctx context.Context, text string, source, target models.Language) gateway.Result
}

// TranslateWorkbook translates every sheet of f in workbook order, mutating
// it in place. The language pair is validated before any cell is touched.
func TranslateWorkbook(ctx context.Context, f *excelize.File, tr Translator, opts Options) (*models.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return translateWorkbook(ctx, f, tr, opts)
}

// translateWorkbook expects opts to be validated already.
func translateWorkbook(ctx context.Context, f *excelize.File, tr Translator, opts Options) (*models.Report, error) {
	report := &models.Report{
		RunID:  uuid.NewString(),
		Source: opts.Source,
		Target: opts.Target,
	}

	translate := func(text string) string {
		return tr.Translate(ctx, text, opts.Source, opts.Target).Text
	}
	sheetOpts := sheet.Options{ForceRTL: opts.ForceRTL, Verbose: opts.Verbose}

	sheetList := f.GetSheetList()
	for idx, name := range sheetList {
		if opts.Verbose {
			log.Printf("[xlsxlate] %s: translating sheet %q (%d/%d)", report.RunID, name, idx+1, len(sheetList))
		}

		sr, err := sheet.Translate(ctx, f, name, translate, sheetOpts)
		if err != nil {
			return report, NewSheetError(name, "translate", err)
		}
		report.Sheets = append(report.Sheets, sr)

		opts.progress(models.SheetProgress{Index: idx + 1, Total: len(sheetList), Name: name})
	}

	if opts.Verbose {
		log.Printf("[xlsxlate] %s: %d sheets done, %d fragments sent", report.RunID, len(report.Sheets), report.Sent())
	}
	return report, nil
}

// TranslateBytes decodes a workbook from r, translates it and returns the
// serialized result. The language pair is checked before r is read.
func TranslateBytes(ctx context.Context, r io.Reader, tr Translator, opts Options) ([]byte, *models.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	return translateBytes(ctx, r, tr, opts)
}

func translateBytes(ctx context.Context, r io.Reader, tr Translator, opts Options) ([]byte, *models.Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	report, err := translateWorkbook(ctx, f, tr, opts)
	if err != nil {
		return nil, report, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, report, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), report, nil
}

// TranslateFile translates the workbook at inputPath and writes it to
// outputPath. An empty outputPath derives the name with OutputName next to
// the input.
func TranslateFile(ctx context.Context, inputPath, outputPath string, tr Translator, opts Options) (string, *models.Report, error) {
	if err := opts.Validate(); err != nil {
		return "", nil, err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", nil, err
	}

	out, report, err := translateBytes(ctx, bytes.NewReader(data), tr, opts)
	if err != nil {
		return "", report, err
	}

	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(inputPath), OutputName(opts.Target, inputPath))
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return "", report, fmt.Errorf("failed to write output: %w", err)
	}
	return outputPath, report, nil
}

// OutputName derives the delivered file name from the target language and
// the original file name.
func OutputName(target models.Language, filename string) string {
	return fmt.Sprintf("%s_%s", target, filepath.Base(filename))
}
