package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"finance-rag/internal/models"
)

// ExtractionError marks a file that could not be opened or parsed at all.
// It aborts the whole pipeline run; there is no partial extraction.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extract opens a report file and returns its pages in document order,
// starting at page 1. Page text may be empty (scanned-image pages) but a
// RawPage is emitted for every page. PDF is the primary format; DOCX and TXT
// are treated as a single page, spreadsheets as one page per sheet.
func Extract(filePath string) ([]models.RawPage, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return extractPDF(filePath)
	case ".docx":
		return extractDOCX(filePath)
	case ".xlsx":
		return extractXLSX(filePath)
	case ".ods":
		return extractODS(filePath)
	case ".txt":
		return extractText(filePath)
	default:
		return nil, &ExtractionError{Path: filePath, Err: fmt.Errorf("unsupported file format: %s", ext)}
	}
}

func newPage(number int, text string) models.RawPage {
	return models.RawPage{
		PageNumber: number,
		Text:       text,
		CharCount:  len(text),
		WordCount:  len(strings.Fields(text)),
	}
}

func extractPDF(filePath string) ([]models.RawPage, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, &ExtractionError{Path: filePath, Err: err}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, &ExtractionError{Path: filePath, Err: err}
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, &ExtractionError{Path: filePath, Err: err}
	}

	var pages []models.RawPage
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A page that fails text extraction still occupies its slot;
			// downstream sees it as an empty page, not a missing one.
			pageText = ""
		}
		pages = append(pages, newPage(i, pageText))
	}
	return pages, nil
}

func extractDOCX(filePath string) ([]models.RawPage, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, &ExtractionError{Path: filePath, Err: err}
	}
	defer r.Close()

	doc := r.Editable()
	// DOCX has no page boundaries; the whole document is page 1.
	return []models.RawPage{newPage(1, doc.GetContent())}, nil
}

func extractXLSX(filePath string) ([]models.RawPage, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, &ExtractionError{Path: filePath, Err: err}
	}

	var pages []models.RawPage
	for sheetNum, sheet := range f.Sheets {
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
		pages = append(pages, newPage(sheetNum+1, text.String()))
	}
	return pages, nil
}

func extractODS(filePath string) ([]models.RawPage, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, &ExtractionError{Path: filePath, Err: err}
	}
	defer f.Close()

	var pages []models.RawPage
	for sheetNum, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			pages = append(pages, newPage(sheetNum+1, ""))
			continue
		}
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))
		for _, row := range rows {
			for _, cell := range row {
				text.WriteString(cell + "\t")
			}
			text.WriteString("\n")
		}
		pages = append(pages, newPage(sheetNum+1, text.String()))
	}
	return pages, nil
}

func extractText(filePath string) ([]models.RawPage, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &ExtractionError{Path: filePath, Err: err}
	}
	return []models.RawPage{newPage(1, string(data))}, nil
}
