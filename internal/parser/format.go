package parser

import (
	"fmt"
	"strings"
)

// FormatQuiz renders questions in the canonical text form accepted by
// ParseQuizQuestions. Blocks are separated by a blank line.
func FormatQuiz(questions []QuizQuestion) string {
	var b strings.Builder
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Question %d: %s\n", i+1, q.Text)
		for _, l := range Labels {
			fmt.Fprintf(&b, "%s. %s\n", l, q.Options[l])
		}
		fmt.Fprintf(&b, "Answer: %s\n", q.Correct)
	}
	return b.String()
}

// FormatFlashcards renders cards in the canonical "Q:/A:" form accepted by
// ParseFlashcards.
func FormatFlashcards(cards []Flashcard) string {
	var b strings.Builder
	for i, c := range cards {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", c.Question, c.Answer)
	}
	return b.String()
}
