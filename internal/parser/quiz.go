// Package parser extracts quiz questions and flashcards from free-form text
// returned by a language model.
//
// The model is not trusted to follow formatting instructions. Both parsers
// are best-effort: every fragment that has the expected shape becomes a
// record, every fragment that does not is skipped, and neither parser ever
// returns an error or a partially populated record.
package parser

import (
	"regexp"
	"strings"
)

var (
	// "Question 3: ...", "Question: ...", "question #2) ...", "Q3. ..."
	promptLine = regexp.MustCompile(`(?i)^(?:question\s*#?\s*\d*|q\s*\d+)\s*[:.)]\s*(.*)$`)

	// "A. ...", "b) ...", "C: ...". E and F are recognized so that a fifth
	// option rejects the block instead of leaking into option D; they need
	// whitespace after the mark so "e.g. ..." stays continuation text.
	optionLine = regexp.MustCompile(`(?i)^(?:([a-d])\s*[.):]|([ef])\s*[.):](?:\s|$))\s*(.*)$`)

	// "Answer: B", "Correct answer - (c)", "answer: D. Stop sign"
	answerLine = regexp.MustCompile(`(?i)^(?:correct\s+)?answer\s*[:\-]\s*\(?([a-z])\)?(?:[^a-z]|$)`)
)

type quizOption struct {
	label Label
	text  []string
}

func (o quizOption) joined() string {
	return joinLines(o.text)
}

// quizBlock is the raw field split of one candidate question, before
// validation.
type quizBlock struct {
	line    int // 1-based line of the prompt marker
	prompt  []string
	options []quizOption
	answer  Label
}

func (b *quizBlock) promptText() string {
	return joinLines(b.prompt)
}

func (b *quizBlock) question() QuizQuestion {
	opts := make(map[Label]string, len(b.options))
	for _, o := range b.options {
		opts[o.label] = o.joined()
	}
	return QuizQuestion{
		Text:    b.promptText(),
		Options: opts,
		Correct: b.answer,
	}
}

// ParseQuizQuestions returns every well-formed question block in raw, in
// input order. Malformed blocks are dropped.
func ParseQuizQuestions(raw string) []QuizQuestion {
	var out []QuizQuestion
	for _, b := range splitQuizBlocks(raw) {
		if firstFailure(b) != "" {
			continue
		}
		out = append(out, b.question())
	}
	return out
}

// BlockResult reports the outcome for one candidate question block.
type BlockResult struct {
	// Line is the 1-based line where the block's prompt marker appears.
	Line int

	// Question is set when the block was accepted.
	Question *QuizQuestion

	// Rejected names the first check the block failed, e.g.
	// "has-four-options". Empty when accepted.
	Rejected string
}

// ExplainQuiz runs the same extraction as ParseQuizQuestions but reports
// every candidate block, including rejected ones.
func ExplainQuiz(raw string) []BlockResult {
	blocks := splitQuizBlocks(raw)
	out := make([]BlockResult, 0, len(blocks))
	for _, b := range blocks {
		res := BlockResult{Line: b.line, Rejected: firstFailure(b)}
		if res.Rejected == "" {
			q := b.question()
			res.Question = &q
		}
		out = append(out, res)
	}
	return out
}

// splitQuizBlocks cuts raw into candidate blocks. A block opens at a prompt
// line and closes at its first answer line; anything after the answer line
// up to the next prompt line is commentary. Text before the first prompt
// line is ignored.
func splitQuizBlocks(raw string) []*quizBlock {
	var (
		blocks []*quizBlock
		cur    *quizBlock
		closed bool
	)
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := promptLine.FindStringSubmatch(line); m != nil {
			cur = &quizBlock{line: i + 1}
			cur.prompt = appendNonEmpty(cur.prompt, m[1])
			blocks = append(blocks, cur)
			closed = false
			continue
		}
		if cur == nil || closed {
			continue
		}

		if m := answerLine.FindStringSubmatch(line); m != nil {
			cur.answer = Label(strings.ToUpper(m[1]))
			closed = true
			continue
		}
		if m := optionLine.FindStringSubmatch(line); m != nil {
			cur.options = append(cur.options, quizOption{
				label: Label(strings.ToUpper(m[1] + m[2])),
				text:  appendNonEmpty(nil, m[3]),
			})
			continue
		}

		// Continuation of the last field.
		if n := len(cur.options); n > 0 {
			cur.options[n-1].text = append(cur.options[n-1].text, line)
		} else {
			cur.prompt = append(cur.prompt, line)
		}
	}
	return blocks
}

func appendNonEmpty(lines []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		return append(lines, s)
	}
	return lines
}

func joinLines(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
