package models

// SheetProgress is emitted after each sheet finishes.
type SheetProgress struct {
	// Index is the 1-based position of the finished sheet.
	Index int `json:"index"`
	// Total is the number of sheets in the workbook.
	Total int `json:"total"`
	// Name is the sheet name.
	Name string `json:"name"`
}

// SheetReport summarizes the traversal of one sheet.
type SheetReport struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Cells is the number of cells visited within the used range.
	Cells int `json:"cells"`
	// Sent is the number of text fragments handed to the gateway.
	Sent int `json:"sent"`
	// Skipped is the number of text fragments passed through by the filter.
	Skipped int `json:"skipped"`
	// Formulas is the number of formula cells left untouched.
	Formulas int `json:"formulas"`
	// RichText is the number of rich-text cells rebuilt.
	RichText int `json:"rich_text"`
	// RightToLeft reports whether the sheet view was switched to right-to-left.
	RightToLeft bool `json:"right_to_left"`
}

// Report summarizes a workbook translation run.
type Report struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id"`
	// Source is the source language.
	Source Language `json:"source"`
	// Target is the target language.
	Target Language `json:"target"`
	// Sheets holds one report per sheet in workbook order.
	Sheets []SheetReport `json:"sheets"`
}

// Sent returns the total number of fragments handed to the gateway.
func (r *Report) Sent() int {
	n := 0
	for _, s := range r.Sheets {
		n += s.Sent
	}
	return n
}

// SheetScan describes a sheet without translating it.
type SheetScan struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Used is the used range of the sheet.
	Used Area `json:"used"`
	// Eligible is the number of text fragments that would be sent for translation.
	Eligible int `json:"eligible"`
	// Skipped is the number of text fragments the filter would pass through.
	Skipped int `json:"skipped"`
	// Formulas is the number of formula cells.
	Formulas int `json:"formulas"`
	// RichText is the number of rich-text cells.
	RichText int `json:"rich_text"`
	// Merged contains merged regions of the sheet.
	Merged []Area `json:"merged,omitempty"`
}

// ScanReport is the workbook-level container of sheet scans.
type ScanReport struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets holds one scan per sheet in workbook order.
	Sheets []SheetScan `json:"sheets"`
}

// Eligible returns the total number of fragments that would be sent.
func (r *ScanReport) Eligible() int {
	n := 0
	for _, s := range r.Sheets {
		n += s.Eligible
	}
	return n
}
