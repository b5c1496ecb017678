package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/samegame/internal/platform/tui"
	"github.com/vovakirdan/samegame/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeDir    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH replay server",
	Long: `Start an SSH server that lets users connect and watch replays.

Each SSH connection gets its own session with a board picker.
Results are stored per-server (all users share the same scoreboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.samegame/host_key

Examples:
  samegame serve                           # Listen on the configured address
  samegame serve --ssh :2222               # Listen on port 2222
  samegame serve --host-key ./my_host_key  # Use specific host key
  samegame serve --dir ./boards            # Serve boards from a directory

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().StringVar(&flagServeDir, "dir", "", "Boards directory (overrides config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", -1, "Idle timeout in minutes, 0 to disable (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg, "ssh")

	if flagSSHAddr != "" {
		cfg.Server.SSHAddr = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flagServeDir != "" {
		cfg.Server.BoardsDir = flagServeDir
	}
	if flagIdleTimeout >= 0 {
		cfg.Server.IdleTimeoutMinutes = flagIdleTimeout
	}

	list, err := loadBoards(cfg, cfg.Server.BoardsDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading boards: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	server, err := tui.NewSSHServer(tui.SSHConfigFrom(cfg, list), store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	if _, port, splitErr := net.SplitHostPort(server.Addr()); splitErr == nil {
		fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
