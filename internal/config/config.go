// Package config provides YAML-based configuration loading for the
// SameGame simulator and its front ends.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

// Config contains all configuration for the simulator.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Rules   RulesConfig   `yaml:"rules"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Replay  ReplayConfig  `yaml:"replay"`
	Server  ServerConfig  `yaml:"server"`
}

// BoardConfig defines the dimensions of text-format boards.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// RulesConfig defines scoring and termination rules.
type RulesConfig struct {
	MinClusterSize int  `yaml:"min_cluster_size"`
	ClearBonus     int  `yaml:"clear_bonus"`
	LegacyEdgeScan bool `yaml:"legacy_edge_scan"`
}

// StorageConfig defines where results are persisted.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ReplayConfig defines the pace of interactive replays.
type ReplayConfig struct {
	StepMillis int `yaml:"step_millis"` // Delay between replayed moves
}

// ServerConfig defines the network front ends.
type ServerConfig struct {
	SSHAddr            string `yaml:"ssh_addr"`
	HTTPAddr           string `yaml:"http_addr"`
	BoardsDir          string `yaml:"boards_dir"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// CoreRules converts the rules section into engine rules.
func (c Config) CoreRules() core.Rules {
	return core.Rules{
		MinClusterSize: c.Rules.MinClusterSize,
		ClearBonus:     c.Rules.ClearBonus,
		LegacyEdgeScan: c.Rules.LegacyEdgeScan,
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Board.Rows < 1:
		return fmt.Errorf("%w: board.rows = %d, must be positive", ErrInvalidConfig, c.Board.Rows)
	case c.Board.Cols < 1:
		return fmt.Errorf("%w: board.cols = %d, must be positive", ErrInvalidConfig, c.Board.Cols)
	case c.Rules.MinClusterSize < 1:
		return fmt.Errorf("%w: rules.min_cluster_size = %d, must be positive", ErrInvalidConfig, c.Rules.MinClusterSize)
	case c.Rules.ClearBonus < 0:
		return fmt.Errorf("%w: rules.clear_bonus = %d, must not be negative", ErrInvalidConfig, c.Rules.ClearBonus)
	case c.Replay.StepMillis < 0:
		return fmt.Errorf("%w: replay.step_millis = %d, must not be negative", ErrInvalidConfig, c.Replay.StepMillis)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ParseLevel checks a log level name. An empty name means info.
func ParseLevel(name string) (string, error) {
	switch name {
	case "":
		return "info", nil
	case "debug", "info", "warn", "error":
		return name, nil
	default:
		return "", fmt.Errorf("log.level = %q, must be debug, info, warn or error", name)
	}
}
