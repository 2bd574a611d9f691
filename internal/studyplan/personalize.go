package studyplan

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/permitpal/internal/llm"
	"github.com/abhisek/permitpal/internal/progress"
)

const planSystemPrompt = `You are a South Carolina DMV permit test coach. You write short, practical study plans for a learner preparing for the written permit exam.`

// Config holds plan generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for plan generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   768,
		Temperature: 0.4,
	}
}

// TopicStat is a learner's running total on one topic.
type TopicStat struct {
	Topic     string
	Correct   int
	Attempted int
}

// Accuracy returns the percentage correct, or 0 with nothing attempted.
func (t TopicStat) Accuracy() float64 {
	if t.Attempted == 0 {
		return 0
	}
	return 100 * float64(t.Correct) / float64(t.Attempted)
}

// TopicStats totals every day's topic results, weakest topic first. Ties
// keep first-seen order.
func TopicStats(days []progress.DailySummary) []TopicStat {
	index := make(map[string]int)
	var stats []TopicStat
	for _, d := range days {
		for _, t := range d.Topics {
			i, ok := index[t.Topic]
			if !ok {
				i = len(stats)
				index[t.Topic] = i
				stats = append(stats, TopicStat{Topic: t.Topic})
			}
			stats[i].Correct += t.Correct
			stats[i].Attempted += t.Attempted
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Accuracy() < stats[j].Accuracy()
	})
	return stats
}

// Planner generates personalized plans.
type Planner struct {
	provider llm.Provider
	cfg      Config
}

// NewPlanner creates a Planner.
func NewPlanner(provider llm.Provider, cfg Config) *Planner {
	return &Planner{provider: provider, cfg: cfg}
}

type planOutput struct {
	Title       string   `json:"title"`
	FocusTopics []string `json:"focus_topics"`
	Days        []Day    `json:"days"`
}

// Personalize asks the model for a plan weighted toward the learner's weak
// topics. A learner with no attempts gets the default plan without a model
// call.
func (p *Planner) Personalize(ctx context.Context, overall progress.OverallSummary, days []progress.DailySummary) (Plan, error) {
	if !overall.HasAttempts() {
		return DefaultPlan(), nil
	}

	req := llm.Request{
		System: planSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPlanUserMessage(overall, TopicStats(days))},
		},
		Schema:      PlanSchema,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}

	resp, err := p.provider.Generate(llm.WithPurpose(ctx, llm.PurposeStudyPlan), req)
	if err != nil {
		return Plan{}, fmt.Errorf("study plan generation: %w", err)
	}
	if err := llm.ValidateJSON(PlanSchema, resp.Text); err != nil {
		return Plan{}, err
	}

	var out planOutput
	if err := json.Unmarshal([]byte(resp.Text), &out); err != nil {
		return Plan{}, fmt.Errorf("parse study plan response: %w", err)
	}

	return Plan{
		Title:       out.Title,
		Days:        out.Days,
		Personal:    true,
		FocusTopics: out.FocusTopics,
	}, nil
}

func buildPlanUserMessage(overall progress.OverallSummary, stats []TopicStat) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Quizzes taken: %d\n", overall.Attempts)
	fmt.Fprintf(&b, "Overall: %d/%d correct (%s)\n", overall.Correct, overall.Attempted, progress.FormatAccuracy(overall))

	b.WriteString("\nResults by topic (weakest first):\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "- %s: %d/%d (%.1f%%)\n", s.Topic, s.Correct, s.Attempted, s.Accuracy())
	}

	b.WriteString(`
Instructions:
Write a 3-day plan. Spend most of the time on the weakest topics above and
finish with a 10-question General quiz on day 3. Every task is either a
flashcard set or a 5-10 question quiz on one of: General, Road Signs, Right of
Way, Alcohol Laws, Speed Limits, Traffic Signals.`)

	return b.String()
}
