// samegame simulates the greedy SameGame RGB solver on batches of boards
// and replays its solutions in the terminal, over SSH or over HTTP.
//
// Usage:
//
//	samegame run [file]           - Simulate boards in the text format (stdin by default)
//	samegame list                 - List boards in the boards directory
//	samegame play [board]         - Watch a replay (board picker without an argument)
//	samegame scores [board]       - Show stored results
//	samegame gen                  - Generate random boards in the text format
//	samegame serve                - Start SSH server for remote replays
//	samegame http                 - Start the HTTP/JSON API
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search order)
//	--db <path>         - Scores database (default: ~/.samegame/scores.db)
//	--log-level <level> - debug, info, warn or error
//	--rows, --cols      - Board dimensions for the text format (default: 10x15)
//	--preset <name>     - Rules preset: classic, legacy, strict, nobonus
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/samegame/internal/config"
	"github.com/vovakirdan/samegame/internal/core"
	"github.com/vovakirdan/samegame/internal/games/samegame/boards"
	"github.com/vovakirdan/samegame/internal/logging"

	// Import variants to register them
	_ "github.com/vovakirdan/samegame/internal/games/samegame"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagRows     int
	flagCols     int
	flagPreset   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "samegame",
	Short: "SameGame RGB - greedy board-clearing simulator",
	Long: `SameGame RGB repeatedly removes the largest same-color cluster of balls
from a board, lets the remaining balls fall and slide left, and scores
(n-2)² points per cluster plus a bonus for clearing the board.

Available commands:
  run      - Simulate boards read in the text format
  list     - Show boards in the boards directory
  play     - Watch the solver replay a board
  scores   - View stored results
  gen      - Generate random boards
  serve    - Start SSH server for remote replays
  http     - Start the HTTP/JSON API

Examples:
  samegame run boards.txt
  samegame run --parallel 8 --save < boards.txt
  samegame play intro
  samegame serve --ssh :2222
  samegame scores intro`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRows, "rows", 0, "Board rows for the text format (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagCols, "cols", 0, "Board columns for the text format (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Rules preset: classic, legacy, strict, nobonus")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(httpCmd)
}

// loadConfig reads the configuration and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagRows != 0 {
		cfg.Board.Rows = flagRows
	}
	if flagCols != 0 {
		cfg.Board.Cols = flagCols
	}
	if err := config.ApplyPreset(&cfg, config.RulesPreset(flagPreset)); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// mustLoadConfig is loadConfig for commands that cannot continue without it.
func mustLoadConfig() config.Config {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the command logger from the configuration.
func newLogger(cfg config.Config, prefix string) *log.Logger {
	return logging.New(cfg.Log.Level, prefix)
}

// runtimeConfig converts the configuration into replay settings.
func runtimeConfig(cfg config.Config, width, height int) core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.ScreenW = width
	rt.ScreenH = height
	rt.StepMillis = cfg.Replay.StepMillis
	rt.MinClusterSize = cfg.Rules.MinClusterSize
	rt.ClearBonus = cfg.Rules.ClearBonus
	return rt
}

// variantFor returns the registry variant matching the configured rules.
func variantFor(cfg config.Config) string {
	if cfg.Rules.LegacyEdgeScan {
		return "samegame_legacy"
	}
	return "samegame"
}

// loadBoards reads every board under dir, logging files that fail to parse.
func loadBoards(cfg config.Config, dir string, logger *log.Logger) ([]boards.Board, error) {
	loader := boards.NewLoader(dir, cfg.Board.Rows, cfg.Board.Cols)
	loader.OnSkip = func(path string, err error) {
		logger.Warn("skipping board file", "path", path, "error", err)
	}
	return loader.LoadAll()
}

// terminalSize returns the size of the controlling terminal, 80x24 when
// stdout is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
