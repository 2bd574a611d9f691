package tutor

import (
	"errors"
	"fmt"

	"github.com/abhisek/permitpal/internal/parser"
)

// ErrIncompleteSubmission means at least one question has no valid answer.
var ErrIncompleteSubmission = errors.New("every question must be answered before submitting")

// Result is a graded quiz.
type Result struct {
	Correct   int            `json:"correct"`
	Attempted int            `json:"attempted"`
	Marks     []bool         `json:"marks"`
	Key       []parser.Label `json:"answerKey"`
}

// Grade scores answers against questions. answers[i] is the label chosen
// for questions[i]; every question must carry one of A-D.
func Grade(questions []parser.QuizQuestion, answers []parser.Label) (Result, error) {
	if len(answers) != len(questions) {
		return Result{}, fmt.Errorf("%w: %d answers for %d questions", ErrIncompleteSubmission, len(answers), len(questions))
	}

	res := Result{
		Attempted: len(questions),
		Marks:     make([]bool, len(questions)),
		Key:       make([]parser.Label, len(questions)),
	}
	for i, q := range questions {
		if !validLabel(answers[i]) {
			return Result{}, fmt.Errorf("%w: question %d", ErrIncompleteSubmission, i+1)
		}
		res.Key[i] = q.Correct
		if answers[i] == q.Correct {
			res.Marks[i] = true
			res.Correct++
		}
	}
	return res, nil
}

func validLabel(l parser.Label) bool {
	for _, v := range parser.Labels {
		if l == v {
			return true
		}
	}
	return false
}
