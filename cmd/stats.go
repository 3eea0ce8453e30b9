package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kanadrill/internal/drill"
	"github.com/abhisek/kanadrill/internal/kana"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-kana accuracy, weakest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mode, _ := cmd.Flags().GetString("mode")
		limit, _ := cmd.Flags().GetInt("limit")

		switch drill.Mode(mode) {
		case "", drill.ModeWord, drill.ModeRecall:
		default:
			return fmt.Errorf("unknown mode %q (want %q or %q)", mode, drill.ModeWord, drill.ModeRecall)
		}

		_, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.EventRepo()
		totals, err := repo.Totals(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if totals.Attempts == 0 {
			fmt.Fprintln(out, "No answers recorded yet. Run `kanadrill play` to start.")
			return nil
		}

		stats, err := repo.ItemStats(ctx, mode)
		if err != nil {
			return err
		}
		if limit > 0 && len(stats) > limit {
			stats = stats[:limit]
		}

		readings, err := kana.Groups(string(kana.Hiragana), string(kana.Katakana))
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(stats))
		for _, s := range stats {
			reading := readings.ToRomaji[s.Item]
			if reading == "" {
				// Reverse mode records romaji prompts.
				reading = readings.ToKana[s.Item]
			}
			rows = append(rows, []string{
				s.Item,
				reading,
				fmt.Sprintf("%d", s.Attempts),
				fmt.Sprintf("%d", s.Correct),
				fmt.Sprintf("%.0f%%", s.Accuracy()*100),
			})
		}

		fmt.Fprintln(out, renderTable([]string{"Item", "Reading", "Attempts", "Correct", "Accuracy"}, rows))
		fmt.Fprintf(out, "\n%d answers, %.0f%% correct, over %d sessions\n",
			totals.Attempts, 100*float64(totals.Correct)/float64(totals.Attempts), totals.Sessions)
		return nil
	},
}

func init() {
	statsCmd.Flags().String("mode", "", "Only count answers from one game mode (word or recall)")
	statsCmd.Flags().Int("limit", 0, "Show at most this many items")
}
