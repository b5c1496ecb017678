package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/samegame/internal/config"
	"github.com/vovakirdan/samegame/internal/games/samegame/boards"
	"github.com/vovakirdan/samegame/internal/games/samegame/boards/formats"
	"github.com/vovakirdan/samegame/internal/storage"
)

var (
	flagParallel int
	flagSave     bool
	flagJSON     bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Simulate boards in the text format",
	Long: `Read boards in the text format from a file (or stdin), let the greedy
solver play each one, and print every move and the final score.

Input format:
  <number of games>
  <empty line>
  <rows lines of cols characters from R, G, B, top row first>
  <empty line>
  ...

Output, per game:
  Game N:
  Move k at (row,col): removed n balls of color C, got s points.
  Final score: S, with B balls remaining.

Input errors are reported before any board is simulated.

Examples:
  samegame run boards.txt
  samegame run < boards.txt
  samegame run --rows 5 --cols 5 small.txt
  samegame run --parallel 8 --json boards.txt
  samegame run --preset legacy --save boards.txt`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagParallel, "parallel", 1, "Number of boards simulated concurrently")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Record results in the scores database")
	runCmd.Flags().BoolVar(&flagJSON, "json", false, "Print results as JSON")
}

func runRun(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg, "samegame")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := runBatch(ctx, cfg, logger, args, os.Stdin, os.Stdout)
	stop()
	if err == nil {
		return
	}

	var ie *inputError
	if errors.As(err, &ie) {
		fmt.Println(ie.Error())
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

// inputError is a rejected batch. Its bare message is printed on stdout in
// place of the report.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return formats.Message(e.err) }

func (e *inputError) Unwrap() error { return e.err }

// runBatch simulates the batch read from the file named in args, or from
// stdin, and writes the report to out.
func runBatch(ctx context.Context, cfg config.Config, logger *log.Logger, args []string, stdin io.Reader, out io.Writer) error {
	in := stdin
	stem := ""
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
		stem = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}

	list, err := formats.ParseText(in, cfg.Board.Rows, cfg.Board.Cols)
	if err != nil {
		logger.Debug("input rejected", "error", err)
		return &inputError{err: err}
	}
	if stem != "" {
		for i := range list {
			list[i].ID = fmt.Sprintf("%s-%d", stem, i+1)
		}
	}
	logger.Debug("boards parsed", "count", len(list), "rows", cfg.Board.Rows, "cols", cfg.Board.Cols)

	results, err := boards.Simulate(ctx, list, cfg.CoreRules(), flagParallel)
	if err != nil {
		return &inputError{err: err}
	}
	logResults(logger, results)

	if flagSave {
		if err := saveResults(cfg, results); err != nil {
			return err
		}
	}

	return writeResults(out, results)
}

func logResults(logger *log.Logger, results []formats.Result) {
	for _, r := range results {
		for _, m := range r.Moves {
			logger.Debug("move", "game", r.Game, "number", m.Number, "row", m.Row, "col", m.Column,
				"removed", m.Removed, "color", m.Color, "score", m.Score)
		}
		logger.Debug("game finished", "game", r.Game, "score", r.Score, "remaining", r.Remaining, "end", r.End)
	}
}

func writeResults(w io.Writer, results []formats.Result) error {
	bw := bufio.NewWriter(w)
	if flagJSON {
		enc := json.NewEncoder(bw)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else if err := formats.WriteReport(bw, results); err != nil {
		return err
	}
	return bw.Flush()
}

func saveResults(cfg config.Config, results []formats.Result) error {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("could not open scores database: %w", err)
	}
	defer store.Close()

	variant := variantFor(cfg)
	for _, r := range results {
		_, err := store.SaveRun(storage.Run{
			BoardID:   r.BoardID,
			Variant:   variant,
			Score:     r.Score,
			Remaining: r.Remaining,
			End:       r.End,
			Moves:     r.Moves,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
