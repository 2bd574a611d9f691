package document

import (
	"bytes"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/permitpal/internal/parser"
	"github.com/abhisek/permitpal/internal/progress"
)

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, "3-Day Study Plan", "Day 1\n- Road signs\nDay 2"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestLayoutPDFPagination(t *testing.T) {
	lines := func(n int) string {
		return strings.TrimSuffix(strings.Repeat("line\n", n), "\n")
	}

	tests := []struct {
		name  string
		lines int
		pages int
	}{
		{"one line", 1, 1},
		{"full page", 51, 1},
		{"one over", 52, 2},
		{"three pages", 120, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf := layoutPDF("", lines(tt.lines))
			require.NoError(t, pdf.Error())
			assert.Equal(t, tt.pages, pdf.PageCount())
		})
	}
}

func TestRenderPDFNonASCII(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, "Café", "Señal – stop"))
}

func TestFlashcardsTextRoundTrip(t *testing.T) {
	cards := []parser.Flashcard{
		{Question: "What does a red octagon mean?", Answer: "Stop completely."},
		{Question: "Legal BAC limit over 21?", Answer: "0.08%"},
	}
	text := FlashcardsText(cards)
	assert.Equal(t, "Q1: What does a red octagon mean?\nA1: Stop completely.\n\nQ2: Legal BAC limit over 21?\nA2: 0.08%", text)
	assert.Equal(t, cards, parser.ParseFlashcards(text))
}

func TestFlashcardsTextEmpty(t *testing.T) {
	assert.Equal(t, "", FlashcardsText(nil))
}

func TestWriteProgressXLSX(t *testing.T) {
	records := []progress.AttemptRecord{
		{UserID: "u1", Topic: "Road Signs", Correct: 4, Attempted: 5, Date: civil.Date{Year: 2024, Month: 5, Day: 1}},
		{UserID: "u1", Topic: "Speed Limits", Correct: 2, Attempted: 5, Date: civil.Date{Year: 2024, Month: 5, Day: 1}},
		{UserID: "u1", Topic: "General", Correct: 5, Attempted: 5, Date: civil.Date{Year: 2024, Month: 5, Day: 2}},
	}
	days := progress.SummarizeByDay(records)
	overall := progress.SummarizeOverall(records)

	var buf bytes.Buffer
	require.NoError(t, WriteProgressXLSX(&buf, days, overall))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetOverall, SheetDaily, SheetTopics}, f.GetSheetList())

	acc, err := f.GetCellValue(SheetOverall, "B4")
	require.NoError(t, err)
	assert.Equal(t, "73.3%", acc)

	daily, err := f.GetRows(SheetDaily)
	require.NoError(t, err)
	require.Len(t, daily, 3)
	assert.Equal(t, []string{"2024-05-02", "5", "5", "100"}, daily[1])
	assert.Equal(t, []string{"2024-05-01", "6", "10", "60"}, daily[2])

	topics, err := f.GetRows(SheetTopics)
	require.NoError(t, err)
	require.Len(t, topics, 4)
	assert.Equal(t, "Road Signs", topics[2][1])
	assert.Equal(t, "Speed Limits", topics[3][1])
}

func TestWriteProgressXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProgressXLSX(&buf, nil, progress.SummarizeOverall(nil)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	acc, err := f.GetCellValue(SheetOverall, "B4")
	require.NoError(t, err)
	assert.Equal(t, "No attempts yet.", acc)
}
