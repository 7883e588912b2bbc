package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyRelaxed DifficultyPreset = "relaxed"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyRelaxed}
}

// ParseDifficultyPreset parses a preset name. The empty string is normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyRelaxed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or relaxed)", s)
	}
}

// Describe returns a short menu description.
func (p DifficultyPreset) Describe() string {
	switch p {
	case DifficultyEasy:
		return "5 hits, longer invulnerability"
	case DifficultyHard:
		return "one hit"
	case DifficultyRelaxed:
		return "hits are not counted"
	default:
		return "configured hit points"
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.HitPoints = 5
		cfg.Player.InvulnerableSeconds = 2.5
	case DifficultyHard:
		cfg.Player.HitPoints = 1
	case DifficultyRelaxed:
		cfg.Player.ConsumeHits = false
	}
}
