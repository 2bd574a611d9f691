package parser

import (
	"reflect"
	"testing"
)

func TestParseFlashcards_Basic(t *testing.T) {
	cards := ParseFlashcards("Q: What color means stop?\nA: Red\nQ: What color means go?\nA: Green")

	want := []Flashcard{
		{Question: "What color means stop?", Answer: "Red"},
		{Question: "What color means go?", Answer: "Green"},
	}
	if !reflect.DeepEqual(cards, want) {
		t.Errorf("ParseFlashcards = %+v, want %+v", cards, want)
	}
}

func TestParseFlashcards_DanglingQuestion(t *testing.T) {
	if cards := ParseFlashcards("Q: orphan question"); len(cards) != 0 {
		t.Errorf("expected no cards, got %+v", cards)
	}

	cards := ParseFlashcards("Q: orphan question\nQ: Speed limit in a school zone?\nA: 25 mph unless posted")
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Question != "Speed limit in a school zone?" {
		t.Errorf("Question = %q", cards[0].Question)
	}
}

func TestParseFlashcards_EmptyFieldsDropped(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty answer", "Q: What does a yellow light mean?\nA:   "},
		{"empty question", "Q:\nA: Slow down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cards := ParseFlashcards(tt.input); len(cards) != 0 {
				t.Errorf("expected no cards, got %+v", cards)
			}
		})
	}
}

func TestParseFlashcards_AnswerRunsToNextQuestion(t *testing.T) {
	input := "Here are 2 flashcards:\n\nQ: When can you pass on the right?\nA: When the vehicle ahead turns left\nand there is room.\n\nQ: Hand signal for a left turn?\nA: Arm straight out."

	cards := ParseFlashcards(input)
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if want := "When the vehicle ahead turns left\nand there is room."; cards[0].Answer != want {
		t.Errorf("card 1 Answer = %q, want %q", cards[0].Answer, want)
	}
	if cards[1].Answer != "Arm straight out." {
		t.Errorf("card 2 Answer = %q", cards[1].Answer)
	}
}

func TestParseFlashcards_NumberedAndCaseInsensitive(t *testing.T) {
	input := "Q1: What is the BAC limit for adults?\nA1: 0.08%\n\nq2: Who has the right of way at a four-way stop?\na2: The first vehicle to arrive"

	cards := ParseFlashcards(input)
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].Question != "What is the BAC limit for adults?" || cards[0].Answer != "0.08%" {
		t.Errorf("card 1 = %+v", cards[0])
	}
	if cards[1].Answer != "The first vehicle to arrive" {
		t.Errorf("card 2 Answer = %q", cards[1].Answer)
	}
}

func TestParseFlashcards_AnswerWithoutQuestionIgnored(t *testing.T) {
	cards := ParseFlashcards("A: stray answer\nQ: Real question?\nA: Real answer")
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if want := (Flashcard{Question: "Real question?", Answer: "Real answer"}); cards[0] != want {
		t.Errorf("card = %+v, want %+v", cards[0], want)
	}
}

func TestParseFlashcards_NoMarkers(t *testing.T) {
	for _, in := range []string{"", "Flashcards are unavailable right now."} {
		if cards := ParseFlashcards(in); len(cards) != 0 {
			t.Errorf("ParseFlashcards(%q) = %+v, want none", in, cards)
		}
	}
}

func TestFlashcardRoundTrip(t *testing.T) {
	first := ParseFlashcards("Q: What color means stop?\nA: Red\nQ: Multi\nline?\nA: Yes\nit is")
	if len(first) != 2 {
		t.Fatalf("got %d cards, want 2", len(first))
	}

	second := ParseFlashcards(FormatFlashcards(first))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("format/parse changed cards:\n got %+v\nwant %+v", second, first)
	}
}
