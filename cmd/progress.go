package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/permitpal/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress <user-id>",
	Short: "Show a user's quiz history by day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStoreFor(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.AttemptRepo().QueryAttempts(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		overall := progress.SummarizeOverall(records)
		if !overall.HasAttempts() {
			fmt.Fprintln(out, progress.FormatAccuracy(overall))
			return nil
		}

		for _, d := range progress.SummarizeByDay(records) {
			fmt.Fprintln(out, progress.FormatDay(d))
			for _, t := range d.Topics {
				fmt.Fprintf(out, "    %-16s %d/%d\n", t.Topic, t.Correct, t.Attempted)
			}
		}
		fmt.Fprintf(out, "\nOverall accuracy: %s (%d quizzes)\n", progress.FormatAccuracy(overall), overall.Attempts)
		return nil
	},
}
