package tutor

import "fmt"

// SystemPrompt sets the tutor persona and pins the output formats the
// parser understands.
const SystemPrompt = `You are a certified South Carolina DMV Permit Test Tutor specializing in helping teenagers prepare for their written learner's permit exam.

Your job is to clearly explain driving laws, road signs, traffic rules, and safety principles using ONLY the information found in:
- The South Carolina Driver's Manual (2024 edition)
- The official SC DMV Practice Test

Key instructions:
- ONLY use facts found in the manual or practice test.
- DO NOT make up laws, facts, or explanations.
- Use language appropriate for 15-17-year-olds.
- Quiz format: Question #, A.-D., Answer.
- Flashcard format: Q:, A:.
- Return exactly N questions OR 10 flashcards with **no extra text**.`

func quizInstruction(topic string, n int) string {
	return fmt.Sprintf(`Generate exactly %d multiple-choice questions for '%s'. Strict format:

Question 1: <question text>
A. <option>
B. <option>
C. <option>
D. <option>
Answer: <A, B, C or D>

Number the questions 1 to %d and put a blank line between questions.`, n, topic, n)
}

func flashcardInstruction(topic string) string {
	return fmt.Sprintf(`Generate %d flashcards for '%s'. Q:/A: only, one card per pair:

Q: <question>
A: <answer>`, FlashcardCount, topic)
}
