package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/permitpal/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Run the quiz or flashcard parser over saved model output",
}

var parseQuizCmd = &cobra.Command{
	Use:   "quiz <file>",
	Short: "Parse quiz questions; \"-\" reads stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if explain, _ := cmd.Flags().GetBool("explain"); explain {
			for _, r := range parser.ExplainQuiz(raw) {
				if r.Question != nil {
					fmt.Fprintf(out, "line %d: ok\n", r.Line)
				} else {
					fmt.Fprintf(out, "line %d: dropped (%s)\n", r.Line, r.Rejected)
				}
			}
			return nil
		}
		questions := parser.ParseQuizQuestions(raw)
		return printParsed(cmd, questions, func() string {
			return parser.FormatQuiz(questions)
		})
	},
}

var parseFlashcardsCmd = &cobra.Command{
	Use:   "flashcards <file>",
	Short: "Parse flashcards; \"-\" reads stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		cards := parser.ParseFlashcards(raw)
		return printParsed(cmd, cards, func() string {
			return parser.FormatFlashcards(cards)
		})
	},
}

func init() {
	parseCmd.PersistentFlags().Bool("json", false, "Print records as JSON instead of canonical text")
	parseQuizCmd.Flags().Bool("explain", false, "Report why each candidate block was kept or dropped")

	parseCmd.AddCommand(parseQuizCmd)
	parseCmd.AddCommand(parseFlashcardsCmd)
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func printParsed(cmd *cobra.Command, records any, canonical func() string) error {
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	fmt.Fprint(out, canonical())
	return nil
}
