package parser

// Label identifies one choice of a multiple-choice question.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels is the fixed, ordered label set every question must use.
var Labels = []Label{LabelA, LabelB, LabelC, LabelD}

// QuizQuestion is one multiple-choice question extracted from generated text.
type QuizQuestion struct {
	// Text is the question prompt, trimmed, original case.
	Text string `json:"question"`

	// Options maps each of the four labels to its option text.
	Options map[Label]string `json:"options"`

	// Correct is the label of the right option. Always a key of Options.
	Correct Label `json:"answer"`
}

// Option returns the text of the option with the given label.
func (q QuizQuestion) Option(l Label) string {
	return q.Options[l]
}

// Flashcard is one question/answer pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
