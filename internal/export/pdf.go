package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/document"
)

const (
	pageMargin   = 20.0
	bodyFontSize = 11.0
	lineHeight   = 6.0
	unicodeFont  = "pakdocs-unicode"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName derives the download name from the document title: whitespace runs
// become "_" and ".pdf" is appended.
func FileName(title string) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(title), "_")
	if name == "" {
		name = "document"
	}
	return name + ".pdf"
}

// ArchiveKey is the object key under which an export is archived.
func ArchiveKey(userID, documentID uint) string {
	return fmt.Sprintf("exports/%d/%d.pdf", userID, documentID)
}

// Renderer turns saved documents into A4 PDFs.
type Renderer struct {
	fontPath string
}

// NewRenderer returns a Renderer. When fontPath is empty the core Helvetica font
// is used and characters outside cp1252 are lost.
func NewRenderer(fontPath string) *Renderer {
	return &Renderer{fontPath: fontPath}
}

func (r *Renderer) Render(d *document.Document) ([]byte, error) {
	fontDir, fontFile := "", ""
	if r.fontPath != "" {
		fontDir, fontFile = filepath.Split(r.fontPath)
	}
	// fpdf resolves font files relative to its font directory
	pdf := fpdf.New("P", "mm", "A4", fontDir)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if r.fontPath != "" {
		pdf.AddUTF8Font(unicodeFont, "", fontFile)
		pdf.AddUTF8Font(unicodeFont, "B", fontFile)
		family = unicodeFont
		tr = func(s string) string { return s }
	}
	pdf.SetTitle(d.Title, true)
	pdf.SetCreator("pakdocs", false)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(family, "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	align := "L"
	if d.Language == document.LanguageUrdu {
		align = "R"
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 14)
	pdf.MultiCell(0, 8, tr(d.Title), "", align, false)
	pdf.Ln(2)

	pdf.SetFont(family, "", 9)
	meta := fmt.Sprintf("%s | %s", d.Type, d.Language)
	if d.Department != nil && *d.Department != "" {
		meta += " | " + *d.Department
	}
	if !d.CreatedAt.IsZero() {
		meta += " | " + d.CreatedAt.Format("02 Jan 2006")
	}
	pdf.MultiCell(0, 5, tr(meta), "", align, false)
	pdf.Ln(4)

	pdf.SetFont(family, "", bodyFontSize)
	pdf.MultiCell(0, lineHeight, tr(d.Content), "", align, false)

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
