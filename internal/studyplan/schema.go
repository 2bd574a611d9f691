package studyplan

import (
	"github.com/abhisek/permitpal/internal/llm"
	"github.com/abhisek/permitpal/internal/tutor"
)

// PlanSchema defines the JSON shape of a personalized plan.
var PlanSchema = &llm.Schema{
	Name:        "study-plan",
	Description: "A three-day permit test study plan weighted toward weak topics",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short plan title (3-6 words)",
			},
			"focus_topics": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string", "enum": topicEnum()},
				"description": "The 1-3 topics the plan spends the most time on",
			},
			"days": map[string]any{
				"type":     "array",
				"minItems": 3,
				"maxItems": 3,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Theme of the day (2-6 words)",
						},
						"tasks": map[string]any{
							"type":        "array",
							"minItems":    1,
							"items":       map[string]any{"type": "string"},
							"description": "2-4 concrete tasks: flashcards or quizzes on named topics",
						},
					},
					"required":             []any{"title", "tasks"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "focus_topics", "days"},
		"additionalProperties": false,
	},
}

func topicEnum() []any {
	out := make([]any, len(tutor.Topics))
	for i, t := range tutor.Topics {
		out[i] = t
	}
	return out
}
