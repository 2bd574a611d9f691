package parser

// blockCheck is a named predicate a quiz block must satisfy before it is
// turned into a QuizQuestion.
type blockCheck struct {
	name string
	ok   func(b *quizBlock) bool
}

// quizChecks run in order; the first failing check rejects the block.
var quizChecks = []blockCheck{
	{"has-prompt", hasPrompt},
	{"has-four-options", hasFourOptions},
	{"labels-distinct", labelsDistinct},
	{"labels-in-order", labelsInOrder},
	{"options-non-empty", optionsNonEmpty},
	{"has-answer", hasAnswer},
	{"answer-in-options", answerInOptions},
}

// firstFailure returns the name of the first check b fails, or "".
func firstFailure(b *quizBlock) string {
	for _, c := range quizChecks {
		if !c.ok(b) {
			return c.name
		}
	}
	return ""
}

func hasPrompt(b *quizBlock) bool {
	return b.promptText() != ""
}

func hasFourOptions(b *quizBlock) bool {
	return len(b.options) == len(Labels)
}

func labelsDistinct(b *quizBlock) bool {
	seen := make(map[Label]bool, len(b.options))
	for _, o := range b.options {
		if seen[o.label] {
			return false
		}
		seen[o.label] = true
	}
	return true
}

func labelsInOrder(b *quizBlock) bool {
	if len(b.options) != len(Labels) {
		return false
	}
	for i, o := range b.options {
		if o.label != Labels[i] {
			return false
		}
	}
	return true
}

func optionsNonEmpty(b *quizBlock) bool {
	for _, o := range b.options {
		if o.joined() == "" {
			return false
		}
	}
	return true
}

func hasAnswer(b *quizBlock) bool {
	return b.answer != ""
}

func answerInOptions(b *quizBlock) bool {
	for _, o := range b.options {
		if o.label == b.answer {
			return true
		}
	}
	return false
}
