// Package progress folds a learner's quiz attempts into per-day and overall
// accuracy statistics.
//
// Everything here is a pure function of its input. Summaries are recomputed
// from the full attempt history on every call and never cached.
package progress

import (
	"fmt"
	"math"
	"sort"

	"cloud.google.com/go/civil"
)

// SummarizeByDay groups records by calendar date, newest date first. Within
// a day, topic results keep the order the records were given in.
func SummarizeByDay(records []AttemptRecord) []DailySummary {
	if len(records) == 0 {
		return []DailySummary{}
	}

	index := make(map[civil.Date]int)
	var days []DailySummary
	for _, r := range records {
		i, ok := index[r.Date]
		if !ok {
			i = len(days)
			index[r.Date] = i
			days = append(days, DailySummary{Date: r.Date})
		}
		d := &days[i]
		d.Correct += r.Correct
		d.Attempted += r.Attempted
		d.Topics = append(d.Topics, TopicResult{
			Topic:     r.Topic,
			Correct:   r.Correct,
			Attempted: r.Attempted,
			Accuracy:  accuracy(r.Correct, r.Attempted),
		})
	}

	for i := range days {
		days[i].Accuracy = accuracy(days[i].Correct, days[i].Attempted)
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// SummarizeOverall totals every record. Accuracy is left nil when nothing
// was attempted.
func SummarizeOverall(records []AttemptRecord) OverallSummary {
	s := OverallSummary{Attempts: len(records)}
	for _, r := range records {
		s.Correct += r.Correct
		s.Attempted += r.Attempted
	}
	if s.Attempted > 0 {
		a := accuracy(s.Correct, s.Attempted)
		s.Accuracy = &a
	}
	return s
}

// FormatAccuracy renders an overall summary the way the progress view shows
// it: "No attempts yet." for an empty history, "no data" when attempts exist
// but nothing was attempted, else a one-decimal percentage.
func FormatAccuracy(s OverallSummary) string {
	switch {
	case !s.HasAttempts():
		return "No attempts yet."
	case s.Accuracy == nil:
		return "no data"
	default:
		return fmt.Sprintf("%.1f%%", *s.Accuracy)
	}
}

// FormatDay renders one day line, e.g. "2024-01-02 – 4/10 (40.0%)".
func FormatDay(d DailySummary) string {
	return fmt.Sprintf("%s – %d/%d (%.1f%%)", d.Date, d.Correct, d.Attempted, d.Accuracy)
}

// accuracy returns 100*correct/attempted rounded to one decimal place, or 0
// when attempted is 0.
func accuracy(correct, attempted int) float64 {
	if attempted <= 0 {
		return 0
	}
	return round1(100 * float64(correct) / float64(attempted))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
