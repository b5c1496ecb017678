package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/samegame/internal/registry"
)

var (
	flagBoardsDir string
	flagVariants  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards in the boards directory",
	Long: `Shows every board found in the boards directory. YAML files hold one
board each; text files hold a batch, listed as <file>-<n>.

Examples:
  samegame list
  samegame list --dir ./my-boards
  samegame list --variants`,
	Run: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagBoardsDir, "dir", "", "Boards directory (overrides config)")
	listCmd.Flags().BoolVar(&flagVariants, "variants", false, "List rules variants instead of boards")
}

func runList(cmd *cobra.Command, args []string) {
	if flagVariants {
		listVariants()
		return
	}

	cfg := mustLoadConfig()
	logger := newLogger(cfg, "samegame")

	dir := cfg.Server.BoardsDir
	if flagBoardsDir != "" {
		dir = flagBoardsDir
	}

	list, err := loadBoards(cfg, dir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(list) == 0 {
		fmt.Printf("No boards found in %s.\n", dir)
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, b := range list {
		if len(b.ID) > maxIDLen {
			maxIDLen = len(b.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Size", "Balls", "Name")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "----")

	for _, b := range list {
		size := fmt.Sprintf("%dx%d", b.Rows, b.Cols)
		fmt.Printf("  %-*s  %-7s  %-5d  %s\n", maxIDLen, b.ID, size, b.Balls(), b.Name)
	}

	fmt.Println()
	fmt.Println("Run 'samegame play <id>' to watch a replay.")
}

func listVariants() {
	fmt.Println("Rules variants:")
	fmt.Println()
	for _, v := range registry.List() {
		fmt.Printf("  %-16s  %s\n", v.ID, v.Description)
	}
}
