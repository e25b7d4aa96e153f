package xlsxlate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/gateway"
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/models"
	"github.com/xuri/excelize/v2"
)

type dictTranslator struct {
	dict  map[string]string
	calls int
}

func (d *dictTranslator) Translate(ctx context.Context, text string, source, target models.Language) gateway.Result {
	d.calls++
	if out, ok := d.dict[text]; ok {
		return gateway.Result{Text: out}
	}
	return gateway.Result{Text: text, Err: errors.New("no entry")}
}

func newWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	f.SetSheetName("Sheet1", "订单")
	if _, err := f.NewSheet("库存"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	if _, err := f.NewSheet("Summary"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	f.SetCellValue("订单", "A1", "你好")
	f.SetCellValue("订单", "B1", "PUDO-99")
	f.SetCellValue("库存", "A1", "=SUM(A1:A2)")
	f.SetCellValue("库存", "A2", "仓库")
	f.SetCellValue("Summary", "A1", 12)
	return f
}

func TestTranslateWorkbook(t *testing.T) {
	f := newWorkbook(t)
	before := f.GetSheetList()

	var events []models.SheetProgress
	opts := Options{
		Source:     models.Chinese,
		Target:     models.English,
		OnProgress: func(p models.SheetProgress) { events = append(events, p) },
	}
	tr := &dictTranslator{dict: map[string]string{"你好": "Hello", "仓库": "Warehouse"}}

	report, err := TranslateWorkbook(context.Background(), f, tr, opts)
	if err != nil {
		t.Fatalf("TranslateWorkbook failed: %v", err)
	}

	if after := f.GetSheetList(); !reflect.DeepEqual(before, after) {
		t.Errorf("sheet list changed: %v -> %v", before, after)
	}

	checks := []struct {
		sheet, cell, want string
	}{
		{"订单", "A1", "Hello"},
		{"订单", "B1", "PUDO-99"},
		{"库存", "A1", "=SUM(A1:A2)"},
		{"库存", "A2", "Warehouse"},
		{"Summary", "A1", "12"},
	}
	for _, c := range checks {
		got, _ := f.GetCellValue(c.sheet, c.cell)
		if got != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}

	if tr.calls != 2 {
		t.Errorf("got %d translator calls, want 2", tr.calls)
	}
	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if len(report.Sheets) != 3 || report.Sent() != 2 {
		t.Errorf("report = %+v", report)
	}

	want := []models.SheetProgress{
		{Index: 1, Total: 3, Name: "订单"},
		{Index: 2, Total: 3, Name: "库存"},
		{Index: 3, Total: 3, Name: "Summary"},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("progress = %+v, want %+v", events, want)
	}
}

func TestTranslateWorkbookSameLanguage(t *testing.T) {
	f := newWorkbook(t)
	tr := &dictTranslator{dict: map[string]string{"你好": "Hello"}}
	progressed := false

	_, err := TranslateWorkbook(context.Background(), f, tr, Options{
		Source:     models.Chinese,
		Target:     models.Chinese,
		ForceRTL:   true,
		OnProgress: func(models.SheetProgress) { progressed = true },
	})
	if !errors.Is(err, ErrSameLanguage) {
		t.Fatalf("err = %v, want ErrSameLanguage", err)
	}
	if tr.calls != 0 || progressed {
		t.Errorf("work happened before rejection: calls=%d progressed=%v", tr.calls, progressed)
	}
	if got, _ := f.GetCellValue("订单", "A1"); got != "你好" {
		t.Errorf("cell mutated after rejection: %q", got)
	}
	view, _ := f.GetSheetView("订单", 0)
	if view.RightToLeft != nil && *view.RightToLeft {
		t.Error("layout changed after rejection")
	}
}

func TestTranslateWorkbookUnsupportedLanguage(t *testing.T) {
	f := newWorkbook(t)
	_, err := TranslateWorkbook(context.Background(), f, &dictTranslator{}, Options{Source: "Klingon", Target: models.English})
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("err = %v, want ErrUnsupportedLanguage", err)
	}
}

func TestTranslateWorkbookForceRTL(t *testing.T) {
	f := newWorkbook(t)
	report, err := TranslateWorkbook(context.Background(), f, &dictTranslator{}, DefaultOptions(models.Chinese, models.Arabic))
	if err != nil {
		t.Fatalf("TranslateWorkbook failed: %v", err)
	}
	for _, s := range report.Sheets {
		if !s.RightToLeft {
			t.Errorf("sheet %q not right-to-left", s.Name)
		}
	}
}

func TestTranslateWorkbookCancelled(t *testing.T) {
	f := newWorkbook(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := TranslateWorkbook(ctx, f, &dictTranslator{}, Options{Source: models.Chinese, Target: models.English})
	var sheetErr *SheetError
	if !errors.As(err, &sheetErr) {
		t.Fatalf("err = %v, want *SheetError", err)
	}
	if sheetErr.SheetName != "订单" || !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}

func TestGatewayFailSoftEndToEnd(t *testing.T) {
	f := newWorkbook(t)
	failing := gateway.CapabilityFunc(func(ctx context.Context, req gateway.Request) (string, error) {
		return "", errors.New("rate limited")
	})
	gw := gateway.New(failing, gateway.Options{Pacer: gateway.NewPacer(0)})

	if _, err := TranslateWorkbook(context.Background(), f, gw, Options{Source: models.Chinese, Target: models.English}); err != nil {
		t.Fatalf("TranslateWorkbook failed: %v", err)
	}
	if got, _ := f.GetCellValue("订单", "A1"); got != "你好" {
		t.Errorf("A1 = %q, want original", got)
	}
	if got, _ := f.GetCellValue("库存", "A2"); got != "仓库" {
		t.Errorf("A2 = %q, want original", got)
	}
}

func TestTranslateBytes(t *testing.T) {
	f := newWorkbook(t)
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	tr := &dictTranslator{dict: map[string]string{"你好": "Hello"}}
	out, report, err := TranslateBytes(context.Background(), bytes.NewReader(buf.Bytes()), tr, Options{Source: models.Chinese, Target: models.English})
	if err != nil {
		t.Fatalf("TranslateBytes failed: %v", err)
	}
	if len(report.Sheets) != 3 {
		t.Errorf("got %d sheet reports", len(report.Sheets))
	}

	f2, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f2.Close()
	if got, _ := f2.GetCellValue("订单", "A1"); got != "Hello" {
		t.Errorf("A1 = %q, want Hello", got)
	}
	if got := f2.GetSheetList(); !reflect.DeepEqual(got, []string{"订单", "库存", "Summary"}) {
		t.Errorf("sheets = %v", got)
	}
}

func TestTranslateBytesInvalid(t *testing.T) {
	_, _, err := TranslateBytes(context.Background(), strings.NewReader("not a workbook"), &dictTranslator{}, Options{Source: models.Chinese, Target: models.English})
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("err = %v, want ErrInvalidFormat", err)
	}
}

func TestTranslateBytesSameLanguageBeforeDecode(t *testing.T) {
	_, _, err := TranslateBytes(context.Background(), strings.NewReader("not a workbook"), &dictTranslator{}, Options{Source: models.English, Target: models.English})
	if !errors.Is(err, ErrSameLanguage) {
		t.Fatalf("err = %v, want ErrSameLanguage", err)
	}
}

func TestTranslateFileSameLanguageBeforeRead(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.xlsx")
	_, _, err := TranslateFile(context.Background(), missing, "", &dictTranslator{}, Options{Source: models.Arabic, Target: models.Arabic})
	if !errors.Is(err, ErrSameLanguage) {
		t.Fatalf("err = %v, want ErrSameLanguage", err)
	}
}

func TestTranslateFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.xlsx")
	if err := newWorkbook(t).SaveAs(input); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	tr := &dictTranslator{dict: map[string]string{"你好": "Hello"}}
	output, _, err := TranslateFile(context.Background(), input, "", tr, Options{Source: models.Chinese, Target: models.English})
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}
	if want := filepath.Join(dir, "English_report.xlsx"); output != want {
		t.Errorf("output = %q, want %q", output, want)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		target   models.Language
		filename string
		expected string
	}{
		{models.English, "orders.xlsx", "English_orders.xlsx"},
		{models.Arabic, "/tmp/in/库存.xlsx", "Arabic_库存.xlsx"},
	}

	for _, tt := range tests {
		if got := OutputName(tt.target, tt.filename); got != tt.expected {
			t.Errorf("OutputName(%q, %q) = %q, expected %q", tt.target, tt.filename, got, tt.expected)
		}
	}
}

func TestScan(t *testing.T) {
	f := newWorkbook(t)
	report, err := Scan(f)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(report.Sheets) != 3 {
		t.Fatalf("got %d sheets", len(report.Sheets))
	}
	if report.Eligible() != 2 {
		t.Errorf("Eligible = %d, want 2", report.Eligible())
	}
	if report.Sheets[1].Formulas != 1 {
		t.Errorf("库存 formulas = %d, want 1", report.Sheets[1].Formulas)
	}
}
