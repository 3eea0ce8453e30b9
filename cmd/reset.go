package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/kanadrill/internal/config"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete recorded answers and saved weights",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes all history; rerun with --yes to confirm")
		}

		cfg, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.EventRepo().DeleteAll(ctx); err != nil {
			return err
		}
		if err := st.SnapshotRepo().DeleteAll(ctx); err != nil {
			return err
		}

		if cfg.Persist.Backend == config.BackendRedis {
			repo, closeRepo, err := openSnapshotRepo(ctx, cfg, st)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Redis snapshots not cleared:", err)
			} else {
				defer closeRepo()
				if err := repo.DeleteAll(ctx); err != nil {
					return err
				}
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
