package document

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/permitpal/internal/progress"
)

// Sheet names in the progress workbook.
const (
	SheetOverall = "Overall"
	SheetDaily   = "Daily"
	SheetTopics  = "Topics"
)

// WriteProgressXLSX writes a workbook with three sheets: the overall
// totals, one row per day, and one row per attempt under its day.
func WriteProgressXLSX(w io.Writer, days []progress.DailySummary, overall progress.OverallSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOverall); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetDaily, SheetTopics} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	overallRows := [][]any{
		{"Quizzes taken", overall.Attempts},
		{"Correct", overall.Correct},
		{"Attempted", overall.Attempted},
		{"Accuracy", progress.FormatAccuracy(overall)},
	}
	if err := writeRows(f, SheetOverall, overallRows); err != nil {
		return err
	}

	daily := [][]any{{"Date", "Correct", "Attempted", "Accuracy (%)"}}
	topics := [][]any{{"Date", "Topic", "Correct", "Attempted", "Accuracy (%)"}}
	for _, d := range days {
		date := d.Date.String()
		daily = append(daily, []any{date, d.Correct, d.Attempted, d.Accuracy})
		for _, t := range d.Topics {
			topics = append(topics, []any{date, t.Topic, t.Correct, t.Attempted, t.Accuracy})
		}
	}
	if err := writeRows(f, SheetDaily, daily); err != nil {
		return err
	}
	if err := writeRows(f, SheetTopics, topics); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
