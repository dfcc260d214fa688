package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetTuning holds the multipliers a preset applies on top of a loaded config.
type presetTuning struct {
	damage  float64 // Contact damage multiplier
	speed   float64 // Enemy walk/flight speed multiplier
	pickups int     // Pickup count delta
}

var presetTunings = map[DifficultyPreset]presetTuning{
	DifficultyEasy: {damage: 0.5, speed: 0.75, pickups: -2},
	DifficultyHard: {damage: 2, speed: 1.25, pickups: 2},
}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyPlatformerPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	t, ok := presetTunings[preset]
	if !ok {
		return
	}

	cfg.Player.ContactDamage *= t.damage
	for i := range cfg.Enemies {
		cfg.Enemies[i].WalkSpeed *= t.speed
		cfg.Enemies[i].FlightSpeed *= t.speed
	}

	cfg.Pickups.Count += t.pickups
	if cfg.Pickups.Count < 1 {
		cfg.Pickups.Count = 1
	}
}
