package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/samegame/internal/games/samegame/boards"
	"github.com/vovakirdan/samegame/internal/platform/tui"
	"github.com/vovakirdan/samegame/internal/registry"
	"github.com/vovakirdan/samegame/internal/storage"
)

var (
	flagPlayDir   string
	flagStepDelay int
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Watch the solver replay a board",
	Long: `Replay the greedy solution of a board move by move. Without a board ID
a picker lists every board in the boards directory.

The cluster removed next is highlighted. Finished runs are recorded in
the scores database.

Controls:
  Space/N    - Play one move
  P          - Pause/resume automatic replay
  +/-        - Faster/slower
  R          - Restart
  Esc/B      - Back to the picker
  Q/Ctrl+C   - Quit

Examples:
  samegame play
  samegame play intro
  samegame play intro --step 100
  samegame play intro --preset legacy`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayDir, "dir", "", "Boards directory (overrides config)")
	playCmd.Flags().IntVar(&flagStepDelay, "step", -1, "Milliseconds between moves, 0 for manual stepping (overrides config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg, "samegame")

	if flagStepDelay >= 0 {
		cfg.Replay.StepMillis = flagStepDelay
	}
	dir := cfg.Server.BoardsDir
	if flagPlayDir != "" {
		dir = flagPlayDir
	}

	list, err := loadBoards(cfg, dir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := terminalSize()
	rt := runtimeConfig(cfg, width, height)

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - replay still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if len(args) == 1 {
		board, ok := findBoard(list, args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'samegame list' to see available boards.")
			return
		}
		game, err := registry.Create(variantFor(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating replay: %v\n", err)
			return
		}
		rt.Board = board.Spec()
		if err := tui.Run(game, store, logger, rt); err != nil {
			fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
		}
		return
	}

	// Picker loop
	for {
		res, err := tui.RunMenu(list, store, rt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rt = res.Config

		if res.Quit {
			return
		}

		if res.WantsScoreboard {
			ids := make([]string, len(list))
			for i, b := range list {
				ids[i] = b.ID
			}
			goBack, sbErr := tui.RunScoreboard(store, ids, "", rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(res.Variant)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating replay: %v\n", err)
			continue
		}
		if err := tui.Run(game, store, logger, res.Config); err != nil {
			fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
		}
	}
}

func findBoard(list []boards.Board, id string) (boards.Board, bool) {
	for _, b := range list {
		if b.ID == id {
			return b, true
		}
	}
	return boards.Board{}, false
}
