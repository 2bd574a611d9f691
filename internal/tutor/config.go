package tutor

// Question-count bounds for one quiz.
const (
	MinQuestions     = 5
	MaxQuestions     = 10
	DefaultQuestions = MinQuestions

	// FlashcardCount is how many cards one generation asks for.
	FlashcardCount = 10
)

// Config holds generation settings.
type Config struct {
	QuizMaxTokens      int
	FlashcardMaxTokens int
	ChatMaxTokens      int
	Temperature        float64
}

// DefaultConfig returns sensible defaults for tutor generation.
func DefaultConfig() Config {
	return Config{
		QuizMaxTokens:      2048,
		FlashcardMaxTokens: 1500,
		ChatMaxTokens:      1024,
		Temperature:        0.7,
	}
}

// ClampQuestions bounds a requested question count to
// [MinQuestions, MaxQuestions]; zero or negative means the default.
func ClampQuestions(n int) int {
	switch {
	case n <= 0:
		return DefaultQuestions
	case n < MinQuestions:
		return MinQuestions
	case n > MaxQuestions:
		return MaxQuestions
	}
	return n
}
