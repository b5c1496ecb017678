package config

import "fmt"

// RulesPreset represents a named rules variant.
type RulesPreset string

const (
	PresetClassic RulesPreset = "classic" // Clusters of two, corrected edge scan
	PresetLegacy  RulesPreset = "legacy"  // Clusters of two, historical edge scan
	PresetStrict  RulesPreset = "strict"  // Clusters of three or more
	PresetNoBonus RulesPreset = "nobonus" // No reward for clearing the board
)

// Presets returns every preset name in display order.
func Presets() []RulesPreset {
	return []RulesPreset{PresetClassic, PresetLegacy, PresetStrict, PresetNoBonus}
}

// ApplyPreset overrides the rules section of cfg with a preset.
// An empty preset leaves cfg unchanged.
func ApplyPreset(cfg *Config, preset RulesPreset) error {
	switch preset {
	case "":
		return nil
	case PresetClassic:
		cfg.Rules.MinClusterSize = 2
		cfg.Rules.LegacyEdgeScan = false
	case PresetLegacy:
		cfg.Rules.MinClusterSize = 2
		cfg.Rules.LegacyEdgeScan = true
	case PresetStrict:
		cfg.Rules.MinClusterSize = 3
	case PresetNoBonus:
		cfg.Rules.ClearBonus = 0
	default:
		return fmt.Errorf("unknown rules preset %q", preset)
	}
	return nil
}
