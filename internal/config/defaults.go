package config

import (
	_ "embed"
)

//go:embed defaults/samegame.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Rows: 10,
			Cols: 15,
		},
		Rules: RulesConfig{
			MinClusterSize: 2,
			ClearBonus:     1000,
			LegacyEdgeScan: false,
		},
		Storage: StorageConfig{
			DBPath: "~/.samegame/scores.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Replay: ReplayConfig{
			StepMillis: 400,
		},
		Server: ServerConfig{
			SSHAddr:            ":2222",
			HTTPAddr:           ":8080",
			BoardsDir:          "./boards",
			HostKeyPath:        ".ssh/samegame_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
