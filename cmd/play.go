package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/kanadrill/internal/adaptive"
	"github.com/abhisek/kanadrill/internal/app"
	"github.com/abhisek/kanadrill/internal/config"
	"github.com/abhisek/kanadrill/internal/drill"
	"github.com/abhisek/kanadrill/internal/kana"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a drill session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("groups", nil, `Kana groups to drill, e.g. "hiragana" or "katakana/ka,katakana/sa"`)
	cmd.Flags().Int("length", 0, "Letters per word in the word-building game")
	cmd.Flags().Bool("reverse", false, "Show romaji and answer with kana")
	cmd.Flags().Uint64("seed", 0, "Seed the random source for a reproducible session")
	cmd.Flags().Bool("persist", false, "Restore and save letter weights across sessions")
}

// applyPlayFlags overrides cfg with flags given on the command line.
func applyPlayFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("groups") {
		cfg.Drill.Groups, _ = flags.GetStringSlice("groups")
	}
	if flags.Changed("length") {
		cfg.Drill.WordLength, _ = flags.GetInt("length")
	}
	if flags.Changed("reverse") {
		cfg.Drill.Reverse, _ = flags.GetBool("reverse")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("persist") {
		cfg.Persist.Enabled, _ = flags.GetBool("persist")
	}
}

func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	applyPlayFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	set, err := kana.Groups(cfg.Drill.Groups...)
	if err != nil {
		return err
	}

	if err := adaptive.ConfigureGlobal(cfg.Selector, cfg.SelectorOptions()...); err != nil {
		return err
	}
	sel := adaptive.Global()

	// Persistence is best effort: a broken backend never blocks a session.
	var saveAtExit func()
	if cfg.Persist.Enabled {
		repo, closeRepo, err := openSnapshotRepo(ctx, cfg, st)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Snapshot store unavailable:", err)
			fmt.Fprintln(os.Stderr, "Weights will not be saved this session.")
		} else {
			defer closeRepo()
			if _, err := restoreSelector(ctx, repo, sel); err != nil {
				fmt.Fprintln(os.Stderr, "Could not restore saved weights:", err)
			}
			saveAtExit = func() {
				if err := saveSelector(ctx, repo, sel, cfg.Persist.Keep); err != nil {
					fmt.Fprintln(os.Stderr, "Could not save weights:", err)
				}
			}
		}
	}

	opts := app.Options{
		Selector: sel,
		Sink:     drill.RecordingSink{Repo: st.EventRepo()},
		Set:      set,
		Drill:    cfg.Drill,
		Splash:   true,
	}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))
	}

	runErr := app.Run(opts)
	if saveAtExit != nil {
		saveAtExit()
	}
	return runErr
}
