// Package document renders study material and progress for download.
package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/permitpal/internal/parser"
)

// Page geometry in points.
const (
	pdfMargin   = 40.0
	pdfLineStep = 15.0
	pdfTop      = 42.0 // first baseline, 800pt above the bottom of an A4 page
	pdfFontSize = 11.0
)

// RenderPDF writes text to w as an A4 PDF, one text line per line, starting
// a new page when the current one is full. A non-empty title is set as the
// document title and printed as a bold heading.
func RenderPDF(w io.Writer, title, text string) error {
	pdf := layoutPDF(title, text)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func layoutPDF(title, text string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	_, pageH := pdf.GetPageSize()
	bottom := pageH - pdfMargin

	pdf.AddPage()
	y := pdfTop

	if title != "" {
		pdf.SetTitle(title, true)
		pdf.SetFont("Helvetica", "B", pdfFontSize+3)
		pdf.Text(pdfMargin, y, tr(title))
		y += 2 * pdfLineStep
	}

	pdf.SetFont("Helvetica", "", pdfFontSize)
	for _, line := range strings.Split(text, "\n") {
		if y > bottom {
			pdf.AddPage()
			y = pdfTop
		}
		pdf.Text(pdfMargin, y, tr(strings.TrimRight(line, "\r")))
		y += pdfLineStep
	}
	return pdf
}

// FlashcardsText lays cards out as numbered "Q1: ..." / "A1: ..." blocks
// separated by blank lines. parser.ParseFlashcards reads it back.
func FlashcardsText(cards []parser.Flashcard) string {
	blocks := make([]string, len(cards))
	for i, c := range cards {
		blocks[i] = fmt.Sprintf("Q%d: %s\nA%d: %s", i+1, c.Question, i+1, c.Answer)
	}
	return strings.Join(blocks, "\n\n")
}
