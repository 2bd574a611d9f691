// Package studyplan builds the day-by-day study plan, either the fixed
// three-day default or one weighted toward a learner's weak topics.
package studyplan

import (
	"fmt"
	"strings"
)

// Plan is an ordered list of study days.
type Plan struct {
	Title       string   `json:"title"`
	Days        []Day    `json:"days"`
	Personal    bool     `json:"personal"`
	FocusTopics []string `json:"focusTopics,omitempty"`
}

// Day is one day of study.
type Day struct {
	Title string   `json:"title"`
	Tasks []string `json:"tasks"`
}

// DefaultPlan is the plan shown to everyone before any personalization.
func DefaultPlan() Plan {
	return Plan{
		Title: "3-Day Study Plan",
		Days: []Day{
			{
				Title: "Road Signs & Basics",
				Tasks: []string{
					"Flashcards: Road Signs",
					"5-question quiz on Road Signs",
				},
			},
			{
				Title: "Right-of-Way & Speed",
				Tasks: []string{
					"Flashcards: Right of Way + Speed Limits",
					"5-question quiz on Right of Way",
				},
			},
			{
				Title: "Alcohol & Review",
				Tasks: []string{
					"Flashcards: Alcohol Laws + Traffic Signals",
					"10-question General quiz",
				},
			},
		},
	}
}

// Text renders the plan as plain lines, the form used for PDF export.
func (p Plan) Text() string {
	var b strings.Builder
	for i, d := range p.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Day %d - %s\n", i+1, d.Title)
		for _, t := range d.Tasks {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
