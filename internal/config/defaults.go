package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
// It mirrors defaults/platformer.yaml and is used when the embed fails to parse.
func DefaultPlatformerConfig() PlatformerConfig {
	noGravity := 0.0

	return PlatformerConfig{
		World: WorldConfig{
			Width:          750,
			Height:         750,
			FloorY:         745,
			RoamMinX:       65,
			RoamMaxX:       635,
			Background:     "background",
			PlatformSprite: "platform",
			Ground:         RectConfig{X: 0, Y: 712, W: 750, H: 38},
			Platforms: []RectConfig{
				{X: 297, Y: 675, W: 75, H: 37},
				{X: 38, Y: 600, W: 225, H: 38},
				{X: 412, Y: 600, W: 77, H: 38},
				{X: 487, Y: 562, W: 188, H: 38},
				{X: 675, Y: 487, W: 38, H: 113},
				{X: 600, Y: 450, W: 38, H: 63},
				{X: 562, Y: 487, W: 38, H: 26},
				{X: 637, Y: 450, W: 76, H: 37},
				{X: 225, Y: 487, W: 188, H: 38},
				{X: 38, Y: 450, W: 150, H: 38},
				{X: 444, Y: 411, W: 75, H: 39},
				{X: 337, Y: 337, W: 76, H: 38},
				{X: 300, Y: 300, W: 75, H: 38},
				{X: 37, Y: 337, W: 151, H: 38},
				{X: 37, Y: 300, W: 226, H: 38},
				{X: 412, Y: 238, W: 76, H: 25},
				{X: 38, Y: 150, W: 225, H: 38},
				{X: 300, Y: 150, W: 75, H: 38},
				{X: 450, Y: 150, W: 150, H: 38},
				{X: 562, Y: 112, W: 150, H: 38},
			},
		},
		Physics: PhysicsConfig{
			Gravity:     0.3,
			JumpImpulse: -7,
			Landing:     LandingFirstMatch,
		},
		Player: PlayerConfig{
			Sprite:        "player",
			X:             60,
			Y:             672,
			Width:         30,
			Height:        40,
			WalkSpeed:     3,
			RunSpeed:      6,
			MaxHealth:     100,
			ContactDamage: 0.1,
		},
		Enemies: []EnemyConfig{
			{
				Name:      "ghost",
				Sprite:    "ghost",
				Behavior:  BehaviorChase,
				X:         650,
				Y:         672,
				Width:     30,
				Height:    40,
				WalkSpeed: 2,
			},
			{
				Name:             "bat",
				Sprite:           "bat",
				Behavior:         BehaviorFly,
				X:                305,
				Y:                150,
				Width:            30,
				Height:           20,
				FlightSpeed:      2,
				Gravity:          &noGravity,
				IgnoresPlatforms: true,
			},
			{
				Name:        "slime",
				Sprite:      "slime",
				Behavior:    BehaviorPatrol,
				X:           45,
				Y:           575,
				Width:       30,
				Height:      25,
				WalkSpeed:   1.5,
				PatrolRange: 180,
			},
		},
		Pickups: PickupConfig{
			Sprite:        "coin",
			Count:         10,
			MinSeparation: 30,
			Width:         15,
			Height:        15,
			MaxAttempts:   2000,
		},
		Sprites: map[string]SpriteConfig{
			"background": {Glyph: " ", Color: "default"},
			"platform":   {Glyph: "█", Color: "gray"},
			"player":     {Glyph: "@", Color: "bright-cyan"},
			"ghost":      {Glyph: "G", Color: "bright-magenta"},
			"bat":        {Glyph: "V", Color: "red"},
			"slime":      {Glyph: "S", Color: "green"},
			"coin":       {Glyph: "$", Color: "bright-yellow"},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
