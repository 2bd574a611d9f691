package parser

import (
	"regexp"
	"strings"
)

var (
	// "Q: ...", "Q1: ...", "Question 4: ..."
	cardQuestionLine = regexp.MustCompile(`(?i)^(?:q|question)\s*\d*\s*:\s*(.*)$`)

	// "A: ...", "A1: ...", "Answer 4: ..."
	cardAnswerLine = regexp.MustCompile(`(?i)^(?:a|answer)\s*\d*\s*:\s*(.*)$`)
)

type cardState int

const (
	cardNone cardState = iota
	cardInQuestion
	cardInAnswer
)

// ParseFlashcards returns every question/answer pair in raw, in input order.
// An answer runs until the next question marker or the end of the text.
// A question with no answer marker, or a pair whose question or answer is
// empty, is dropped.
func ParseFlashcards(raw string) []Flashcard {
	var (
		out      []Flashcard
		question []string
		answer   []string
		state    = cardNone
	)

	flush := func() {
		if state != cardInAnswer {
			return
		}
		q, a := joinLines(question), joinLines(answer)
		if q != "" && a != "" {
			out = append(out, Flashcard{Question: q, Answer: a})
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := cardQuestionLine.FindStringSubmatch(line); m != nil {
			flush()
			question = appendNonEmpty(nil, m[1])
			answer = nil
			state = cardInQuestion
			continue
		}

		switch state {
		case cardInQuestion:
			if m := cardAnswerLine.FindStringSubmatch(line); m != nil {
				answer = appendNonEmpty(nil, m[1])
				state = cardInAnswer
				continue
			}
			question = append(question, line)
		case cardInAnswer:
			answer = append(answer, line)
		}
	}
	flush()

	return out
}
