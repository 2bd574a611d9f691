// Package tutor turns the generation service into quizzes, flashcards and
// chat replies for permit-test study.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/permitpal/internal/llm"
	"github.com/abhisek/permitpal/internal/parser"
)

var (
	// ErrNoQuestions means the model replied but no block survived parsing.
	ErrNoQuestions = errors.New("no well-formed questions in generated quiz")

	// ErrNoFlashcards means the model replied but no card survived parsing.
	ErrNoFlashcards = errors.New("no well-formed flashcards in generated text")

	// ErrEmptyConversation means Reply was called without a user turn.
	ErrEmptyConversation = errors.New("conversation must end with a user message")
)

// Quiz is one generated set of questions on a topic.
type Quiz struct {
	Topic     string                `json:"topic"`
	Questions []parser.QuizQuestion `json:"questions"`
}

// Service generates study material through an llm.Provider.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// NewService creates a tutor service.
func NewService(provider llm.Provider, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

// GenerateQuiz asks for n questions on topic (n is clamped to
// [MinQuestions, MaxQuestions]) and keeps the well-formed ones. Fewer than
// n questions is not an error; none at all is ErrNoQuestions.
func (s *Service) GenerateQuiz(ctx context.Context, topic string, n int) (*Quiz, error) {
	topic, err := NormalizeTopic(topic)
	if err != nil {
		return nil, err
	}
	n = ClampQuestions(n)

	text, err := s.generate(llm.WithPurpose(ctx, llm.PurposeQuiz), quizInstruction(topic, n), s.cfg.QuizMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	results := parser.ExplainQuiz(text)
	questions := make([]parser.QuizQuestion, 0, len(results))
	for _, r := range results {
		if r.Question == nil {
			s.logger.Debug("dropped quiz block", slog.Int("line", r.Line), slog.String("reason", r.Rejected))
			continue
		}
		questions = append(questions, *r.Question)
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if len(questions) != n {
		s.logger.Info("quiz question count differs from request",
			slog.String("topic", topic), slog.Int("requested", n), slog.Int("parsed", len(questions)))
	}
	if len(questions) > MaxQuestions {
		questions = questions[:MaxQuestions]
	}

	return &Quiz{Topic: topic, Questions: questions}, nil
}

// GenerateFlashcards asks for FlashcardCount cards on topic and keeps the
// well-formed ones.
func (s *Service) GenerateFlashcards(ctx context.Context, topic string) ([]parser.Flashcard, error) {
	topic, err := NormalizeTopic(topic)
	if err != nil {
		return nil, err
	}

	text, err := s.generate(llm.WithPurpose(ctx, llm.PurposeFlashcards), flashcardInstruction(topic), s.cfg.FlashcardMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("flashcard generation: %w", err)
	}

	cards := parser.ParseFlashcards(text)
	if len(cards) == 0 {
		return nil, ErrNoFlashcards
	}
	return cards, nil
}

// Reply sends the whole conversation with the tutor persona and returns
// the assistant's answer. The conversation must end with a user turn.
func (s *Service) Reply(ctx context.Context, conversation []llm.Message) (string, error) {
	if len(conversation) == 0 || conversation[len(conversation)-1].Role != llm.RoleUser {
		return "", ErrEmptyConversation
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeChat), llm.Request{
		System:      SystemPrompt,
		Messages:    conversation,
		MaxTokens:   s.cfg.ChatMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("tutor reply: %w", err)
	}
	return resp.Text, nil
}

func (s *Service) generate(ctx context.Context, instruction string, maxTokens int) (string, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      SystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: instruction}},
		MaxTokens:   maxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
