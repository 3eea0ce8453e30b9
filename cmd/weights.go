package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/kanadrill/internal/store"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show the saved selection weights, heaviest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo, closeRepo, err := openSnapshotRepo(ctx, cfg, st)
		if err != nil {
			return err
		}
		defer closeRepo()

		out := cmd.OutOrStdout()
		snap, err := repo.Latest(ctx)
		if errors.Is(err, store.ErrSnapshotNotFound) || (err == nil && snap.Data.Selector == nil) {
			fmt.Fprintln(out, "No saved weights. Play with --persist (or KANADRILL_PERSIST=1) to keep them.")
			return nil
		}
		if err != nil {
			return err
		}

		items := snap.Data.Selector.Items
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Weight != items[j].Weight {
				return items[i].Weight > items[j].Weight
			}
			return items[i].ID < items[j].ID
		})

		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{
				it.ID,
				fmt.Sprintf("%.2f", it.Weight),
				fmt.Sprintf("%d", it.Exposures),
			})
		}
		fmt.Fprintln(out, renderTable([]string{"Item", "Weight", "Shown"}, rows))
		fmt.Fprintf(out, "\nsaved %s, round %d\n", snap.Timestamp.Local().Format("2006-01-02 15:04"), snap.Data.Selector.Round)
		return nil
	},
}
