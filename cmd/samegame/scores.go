package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/samegame/internal/platform/tui"
	"github.com/vovakirdan/samegame/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show stored results",
	Long: `Display the best recorded runs of a board, or the most recent runs of
every board when no board is given.

Examples:
  samegame scores
  samegame scores intro
  samegame scores intro --limit 20
  samegame scores intro --clear
  samegame scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored runs of the board")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse results in the interactive scoreboard")
}

func runScores(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		browseScores(store, args)
		return
	}

	if len(args) == 0 {
		showRecent(store)
		return
	}

	boardID := args[0]
	if flagScoresClear {
		if err := store.ClearScores(boardID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared results for %s.\n", boardID)
		return
	}

	scores, err := store.TopScores(boardID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("Best Runs - %s\n", boardID)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Watch 'samegame play %s' to record the first run!\n", boardID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-4s  %-16s  %s\n", "Rank", "Score", "Moves", "Left", "Rules", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-4s  %-16s  %s\n", "----", "-----", "-----", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-5d  %-4d  %-16s  %s\n",
			i+1, entry.Score, entry.MoveCount, entry.Remaining, entry.Variant, dateStr)
	}

	high, err := store.HighScore(boardID)
	if err == nil && high > 0 {
		fmt.Println()
		fmt.Printf("Best score: %d\n", high)
	}
}

func showRecent(store *storage.Store) {
	runs, err := store.RecentRuns(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println("Recent Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-8s  %-5s  %-4s  %-6s  %s\n", "Board", "Score", "Moves", "Left", "End", "Date")
	fmt.Printf("  %-16s  %-8s  %-5s  %-4s  %-6s  %s\n", "-----", "-----", "-----", "----", "---", "----")

	for _, entry := range runs {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-16s  %-8d  %-5d  %-4d  %-6s  %s\n",
			entry.BoardID, entry.Score, entry.MoveCount, entry.Remaining, entry.End, dateStr)
	}
}

func browseScores(store *storage.Store, args []string) {
	stats, err := store.GetAllBoardsStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	ids := sortedKeys(stats)
	start := ""
	if len(args) == 1 {
		start = args[0]
	}

	width, height := terminalSize()
	if _, err := tui.RunScoreboard(store, ids, start, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func sortedKeys(stats map[string]*storage.BoardStats) []string {
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
