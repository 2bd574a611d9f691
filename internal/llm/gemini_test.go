package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(studyPlanSchema().Definition)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	days := schema.Properties["days"]
	if days == nil || days.Type != genai.TypeArray {
		t.Fatalf("expected ARRAY for days, got %+v", days)
	}
	if days.Items.Properties["day"].Type != genai.TypeInteger {
		t.Fatalf("expected INTEGER for day, got %s", days.Items.Properties["day"].Type)
	}
	if len(days.Items.Required) != 2 {
		t.Fatalf("expected 2 required item fields, got %v", days.Items.Required)
	}
	if len(schema.Properties["difficulty"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %v", schema.Properties["difficulty"].Enum)
	}
}

func TestBuildGeminiSchema_AcceptsStringSlices(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type":     "object",
		"required": []string{"title"},
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
		},
	})
	if len(schema.Required) != 1 || schema.Required[0] != "title" {
		t.Fatalf("unexpected required: %v", schema.Required)
	}
}

func TestBuildGeminiContents_MapsRoles(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	})
	if contents[0].Role != "user" || contents[1].Role != "model" {
		t.Fatalf("unexpected roles: %q %q", contents[0].Role, contents[1].Role)
	}
}
