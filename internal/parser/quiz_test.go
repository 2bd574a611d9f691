package parser

import (
	"reflect"
	"strings"
	"testing"
)

const twoQuestions = `Question 1: What does a red octagonal sign mean?
A. Yield
B. Stop
C. Merge
D. No parking
Answer: B

Question 2: When must you use headlights?
A. Only at night
B. From sunset to sunrise and when wipers are on
C. Only in fog
D. Never in town
Answer: B`

// parseOne parses input and fails unless exactly one question comes back.
func parseOne(t *testing.T, input string) QuizQuestion {
	t.Helper()
	qs := ParseQuizQuestions(input)
	if len(qs) != 1 {
		t.Fatalf("parsed %d questions, want 1: %+v", len(qs), qs)
	}
	return qs[0]
}

func TestParseQuizQuestions_TwoClean(t *testing.T) {
	qs := ParseQuizQuestions(twoQuestions)
	if len(qs) != 2 {
		t.Fatalf("parsed %d questions, want 2", len(qs))
	}

	if qs[0].Text != "What does a red octagonal sign mean?" {
		t.Errorf("q1 Text = %q", qs[0].Text)
	}
	if qs[0].Correct != LabelB {
		t.Errorf("q1 Correct = %s, want B", qs[0].Correct)
	}
	wantOpts := map[Label]string{
		LabelA: "Yield",
		LabelB: "Stop",
		LabelC: "Merge",
		LabelD: "No parking",
	}
	if !reflect.DeepEqual(qs[0].Options, wantOpts) {
		t.Errorf("q1 Options = %v, want %v", qs[0].Options, wantOpts)
	}

	if qs[1].Text != "When must you use headlights?" {
		t.Errorf("q2 Text = %q", qs[1].Text)
	}
	if got := qs[1].Option(LabelB); got != "From sunset to sunrise and when wipers are on" {
		t.Errorf("q2 option B = %q", got)
	}
	if qs[1].Correct != LabelB {
		t.Errorf("q2 Correct = %s, want B", qs[1].Correct)
	}
}

func TestParseQuizQuestions_MissingFourthOption(t *testing.T) {
	if qs := ParseQuizQuestions("Question 1: X\nA. a\nB. b\nC. c\nAnswer: A"); len(qs) != 0 {
		t.Errorf("expected no questions, got %+v", qs)
	}
}

func TestParseQuizQuestions_DroppedShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing answer line", "Question 1: X\nA. a\nB. b\nC. c\nD. d"},
		{"duplicate labels", "Question 1: X\nA. a\nB. b\nB. b2\nD. d\nAnswer: A"},
		{"answer not an option", "Question 1: X\nA. a\nB. b\nC. c\nD. d\nAnswer: E"},
		{"fifth option", "Question 1: X\nA. a\nB. b\nC. c\nD. d\nE. e\nAnswer: A"},
		{"sixth option", "Question 1: X\nA. a\nB. b\nC. c\nD. d\nE) e\nF) f\nAnswer: A"},
		{"bare fifth label", "Question 1: X\nA. a\nB. b\nC. c\nD. d\nE:\nAnswer: A"},
		{"labels out of order", "Question 1: X\nB. b\nA. a\nC. c\nD. d\nAnswer: A"},
		{"empty option", "Question 1: X\nA. a\nB.\nC. c\nD. d\nAnswer: A"},
		{"empty prompt", "Question 1:\nA. a\nB. b\nC. c\nD. d\nAnswer: A"},
		{"answer is a word", "Question 1: X\nA. a\nB. b\nC. c\nD. d\nAnswer: Both A and B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if qs := ParseQuizQuestions(tt.input); len(qs) != 0 {
				t.Errorf("expected no questions, got %+v", qs)
			}
		})
	}
}

func TestParseQuizQuestions_AbbreviationsAreContinuations(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOpt Label
		want    string
	}{
		{
			"e.g. after option D",
			"Question 1: When must you stop?\nA. Never\nB. Only at night\nC. Only in fog\nD. At a stop sign\ne.g. at a red light\nAnswer: D",
			LabelD, "At a stop sign\ne.g. at a red light",
		},
		{
			"f.ex. after option C",
			"Question 1: X\nA. a\nB. b\nC. Some signs\nf.ex. yield signs\nD. d\nAnswer: C",
			LabelC, "Some signs\nf.ex. yield signs",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := parseOne(t, tt.input)
			if got := q.Option(tt.wantOpt); got != tt.want {
				t.Errorf("option %s = %q, want %q", tt.wantOpt, got, tt.want)
			}
			if len(q.Options) != 4 {
				t.Errorf("Options = %v, want four", q.Options)
			}
		})
	}
}

func TestParseQuizQuestions_ToleratesCommentary(t *testing.T) {
	input := "Sure! Here are your questions.\n\n\n" +
		twoQuestions +
		"\n\n\nGood luck on your permit test! Answer: C"

	qs := ParseQuizQuestions(input)
	if len(qs) != 2 {
		t.Fatalf("parsed %d questions, want 2", len(qs))
	}
	for i, q := range qs {
		if q.Correct != LabelB {
			t.Errorf("q%d Correct = %s, want B", i+1, q.Correct)
		}
	}
}

func TestParseQuizQuestions_CaseInsensitiveMarkers(t *testing.T) {
	q := parseOne(t, "question 1: Can you turn right on red?\na) Never\nb) Yes, after a full stop unless posted\nc) Only at night\nd) Only with a green arrow\nanswer: b")

	if q.Text != "Can you turn right on red?" {
		t.Errorf("Text = %q", q.Text)
	}
	if got := q.Option(LabelB); got != "Yes, after a full stop unless posted" {
		t.Errorf("option B = %q", got)
	}
	if q.Correct != LabelB {
		t.Errorf("Correct = %s, want B", q.Correct)
	}
}

func TestParseQuizQuestions_TrimsAndKeepsCase(t *testing.T) {
	q := parseOne(t, "Question 1:    BAC Limit for Drivers Under 21?   \nA.   0.02%  \nB. 0.08%\nC. 0.10%\nD. 0.00%\nAnswer:   A  ")

	if q.Text != "BAC Limit for Drivers Under 21?" {
		t.Errorf("Text = %q", q.Text)
	}
	if got := q.Option(LabelA); got != "0.02%" {
		t.Errorf("option A = %q", got)
	}
	if q.Correct != LabelA {
		t.Errorf("Correct = %s, want A", q.Correct)
	}
}

func TestParseQuizQuestions_MultilinePrompt(t *testing.T) {
	q := parseOne(t, "Question 1:\nYou approach a school bus\nwith flashing red lights. You must:\nA. Pass slowly\nB. Stop\nC. Honk\nD. Speed up\nAnswer: B")

	if want := "You approach a school bus\nwith flashing red lights. You must:"; q.Text != want {
		t.Errorf("Text = %q, want %q", q.Text, want)
	}
}

func TestParseQuizQuestions_AnswerVariants(t *testing.T) {
	tests := []struct {
		line string
		want Label
	}{
		{"Answer: C", LabelC},
		{"Answer: (d)", LabelD},
		{"Correct answer: A", LabelA},
		{"Answer - B. Stop", LabelB},
		{"ANSWER:c", LabelC},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			q := parseOne(t, "Question 1: X\nA. a\nB. b\nC. c\nD. d\n"+tt.line)
			if q.Correct != tt.want {
				t.Errorf("Correct = %s, want %s", q.Correct, tt.want)
			}
		})
	}
}

func TestParseQuizQuestions_InterleavedMalformed(t *testing.T) {
	valid := func(n int, answer string) string {
		return "Question 1: valid " + string(rune('0'+n)) + "\nA. a\nB. b\nC. c\nD. d\nAnswer: " + answer + "\n\n"
	}
	malformed := []string{
		"Question 1: no D\nA. a\nB. b\nC. c\nAnswer: A\n\n",
		"Question 1: dup\nA. a\nA. a\nC. c\nD. d\nAnswer: A\n\n",
		"Question 1: no answer\nA. a\nB. b\nC. c\nD. d\n\n",
	}

	input := malformed[0] + valid(1, "A") + malformed[1] + valid(2, "D") + valid(3, "C") + malformed[2]

	qs := ParseQuizQuestions(input)
	if len(qs) != 3 {
		t.Fatalf("parsed %d questions, want 3", len(qs))
	}
	want := []struct {
		text    string
		correct Label
	}{
		{"valid 1", LabelA},
		{"valid 2", LabelD},
		{"valid 3", LabelC},
	}
	for i, w := range want {
		if qs[i].Text != w.text || qs[i].Correct != w.correct {
			t.Errorf("q%d = (%q, %s), want (%q, %s)", i+1, qs[i].Text, qs[i].Correct, w.text, w.correct)
		}
	}
}

func TestParseQuizQuestions_CorrectAlwaysAnOption(t *testing.T) {
	inputs := []string{
		twoQuestions,
		"Question 1: X\nA. a\nB. b\nC. c\nD. d\nAnswer: Z",
		"Question 1: X\nA. a\nB. b\nC. c\nD. d\nAnswer: d\nQuestion 2: Y\nA. a\nAnswer: B",
	}
	for _, in := range inputs {
		for _, q := range ParseQuizQuestions(in) {
			if _, ok := q.Options[q.Correct]; !ok {
				t.Errorf("answer %q missing from options of %q", q.Correct, q.Text)
			}
		}
	}
}

func TestParseQuizQuestions_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "I'm sorry, I can't help with that."} {
		if qs := ParseQuizQuestions(in); len(qs) != 0 {
			t.Errorf("ParseQuizQuestions(%q) = %+v, want none", in, qs)
		}
	}
}

func TestParseQuizQuestions_CRLF(t *testing.T) {
	input := strings.ReplaceAll(twoQuestions, "\n", "\r\n")
	if qs := ParseQuizQuestions(input); len(qs) != 2 {
		t.Errorf("parsed %d questions, want 2", len(qs))
	}
}

func TestExplainQuiz_ReportsRejections(t *testing.T) {
	input := "Intro text\nQuestion 1: X\nA. a\nB. b\nC. c\nAnswer: A\nQuestion 2: Y\nA. a\nB. b\nC. c\nD. d\nAnswer: D"

	results := ExplainQuiz(input)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	if results[0].Line != 2 {
		t.Errorf("block 1 Line = %d, want 2", results[0].Line)
	}
	if results[0].Rejected != "has-four-options" {
		t.Errorf("block 1 Rejected = %q, want has-four-options", results[0].Rejected)
	}
	if results[0].Question != nil {
		t.Errorf("block 1 Question = %+v, want nil", results[0].Question)
	}

	if results[1].Line != 7 {
		t.Errorf("block 2 Line = %d, want 7", results[1].Line)
	}
	if results[1].Rejected != "" {
		t.Errorf("block 2 Rejected = %q, want accepted", results[1].Rejected)
	}
	if results[1].Question == nil || results[1].Question.Text != "Y" {
		t.Errorf("block 2 Question = %+v, want text Y", results[1].Question)
	}
}

func TestQuizRoundTrip(t *testing.T) {
	first := ParseQuizQuestions(twoQuestions)
	if len(first) != 2 {
		t.Fatalf("parsed %d questions, want 2", len(first))
	}

	second := ParseQuizQuestions(FormatQuiz(first))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("format/parse changed questions:\n got %+v\nwant %+v", second, first)
	}

	third := ParseQuizQuestions(FormatQuiz(second))
	if !reflect.DeepEqual(second, third) {
		t.Errorf("second round trip changed questions:\n got %+v\nwant %+v", third, second)
	}
}
