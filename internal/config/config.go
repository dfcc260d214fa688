// Package config provides YAML-based configuration loading and difficulty
// presets for the platformer.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every structural validation failure.
var ErrInvalid = errors.New("config: invalid")

// Enemy behavior names accepted in the roster.
const (
	BehaviorPatrol = "patrol"
	BehaviorChase  = "chase"
	BehaviorFly    = "fly"
)

// PlayerName is the entity name of the player. Enemies may not use it.
const PlayerName = "player"

// Landing policies for overlapping platforms.
const (
	LandingFirstMatch       = "first_match"       // First platform in declaration order wins
	LandingLeastPenetration = "least_penetration" // Shallowest qualifying platform wins
)

// PlatformerConfig contains all configuration for a platformer session.
type PlatformerConfig struct {
	World   WorldConfig             `yaml:"world"`
	Physics PhysicsConfig           `yaml:"physics"`
	Player  PlayerConfig            `yaml:"player"`
	Enemies []EnemyConfig           `yaml:"enemies"`
	Pickups PickupConfig            `yaml:"pickups"`
	Sprites map[string]SpriteConfig `yaml:"sprites"`
}

// RectConfig is a literal world-space rectangle.
type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// WorldConfig defines the play field and its static geometry.
type WorldConfig struct {
	Width          float64      `yaml:"width"`
	Height         float64      `yaml:"height"`
	FloorY         float64      `yaml:"floor_y"`    // Nothing falls below this line
	RoamMinX       float64      `yaml:"roam_min_x"` // Left input only applies right of this
	RoamMaxX       float64      `yaml:"roam_max_x"` // Right input only applies left of this
	Background     string       `yaml:"background"`
	PlatformSprite string       `yaml:"platform_sprite"`
	Ground         RectConfig   `yaml:"ground"`
	Platforms      []RectConfig `yaml:"platforms"`
}

// PhysicsConfig defines shared physics parameters.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	Landing     string  `yaml:"landing"`
}

// PlayerConfig defines the controllable character.
type PlayerConfig struct {
	Sprite        string  `yaml:"sprite"`
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WalkSpeed     float64 `yaml:"walk_speed"`
	RunSpeed      float64 `yaml:"run_speed"`
	MaxHealth     float64 `yaml:"max_health"`
	ContactDamage float64 `yaml:"contact_damage"` // Health lost per overlapping enemy per tick
}

// EnemyConfig defines one roster entry.
type EnemyConfig struct {
	Name             string   `yaml:"name"`
	Sprite           string   `yaml:"sprite"`
	Behavior         string   `yaml:"behavior"` // patrol, chase or fly
	X                float64  `yaml:"x"`
	Y                float64  `yaml:"y"`
	Width            float64  `yaml:"width"`
	Height           float64  `yaml:"height"`
	WalkSpeed        float64  `yaml:"walk_speed,omitempty"`
	FlightSpeed      float64  `yaml:"flight_speed,omitempty"`
	PatrolRange      float64  `yaml:"patrol_range,omitempty"`
	Gravity          *float64 `yaml:"gravity,omitempty"` // nil uses physics.gravity
	IgnoresPlatforms bool     `yaml:"ignores_platforms,omitempty"`
}

// PickupConfig defines how collectibles are spawned.
type PickupConfig struct {
	Sprite        string  `yaml:"sprite"`
	Count         int     `yaml:"count"`
	MinSeparation float64 `yaml:"min_separation"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	MaxAttempts   int     `yaml:"max_attempts"`
}

// SpriteConfig maps a sprite handle to its terminal appearance.
type SpriteConfig struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// Validate checks the structural soundness of the configuration.
// Sprite resolution is checked by the game, which owns the catalog.
func (c *PlatformerConfig) Validate() error {
	w := c.World
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%w: world size must be positive, got %vx%v", ErrInvalid, w.Width, w.Height)
	}
	if w.RoamMinX >= w.RoamMaxX {
		return fmt.Errorf("%w: roam_min_x %v must be less than roam_max_x %v", ErrInvalid, w.RoamMinX, w.RoamMaxX)
	}
	if err := validateRect("world.ground", w.Ground); err != nil {
		return err
	}
	for i, p := range w.Platforms {
		if err := validateRect(fmt.Sprintf("world.platforms[%d]", i), p); err != nil {
			return err
		}
	}

	switch c.Physics.Landing {
	case "", LandingFirstMatch, LandingLeastPenetration:
	default:
		return fmt.Errorf("%w: unknown landing policy %q", ErrInvalid, c.Physics.Landing)
	}

	p := c.Player
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: player size must be positive", ErrInvalid)
	}
	if p.MaxHealth <= 0 {
		return fmt.Errorf("%w: player max_health must be positive", ErrInvalid)
	}
	if p.ContactDamage < 0 {
		return fmt.Errorf("%w: player contact_damage must not be negative", ErrInvalid)
	}

	// Names identify entities in logs and snapshots; "player" is taken.
	names := make(map[string]int, len(c.Enemies)+1)
	names[PlayerName] = -1
	for i, e := range c.Enemies {
		if e.Name == "" {
			return fmt.Errorf("%w: enemies[%d] needs a name", ErrInvalid, i)
		}
		if j, dup := names[e.Name]; dup {
			if j < 0 {
				return fmt.Errorf("%w: enemies[%d] name %q is reserved for the player", ErrInvalid, i, e.Name)
			}
			return fmt.Errorf("%w: enemies[%d] name %q already used by enemies[%d]", ErrInvalid, i, e.Name, j)
		}
		names[e.Name] = i

		if e.Width <= 0 || e.Height <= 0 {
			return fmt.Errorf("%w: enemies[%d] %q size must be positive", ErrInvalid, i, e.Name)
		}
		switch e.Behavior {
		case BehaviorPatrol:
			if e.PatrolRange <= 0 {
				return fmt.Errorf("%w: enemies[%d] %q patrol_range must be positive", ErrInvalid, i, e.Name)
			}
		case BehaviorChase:
		case BehaviorFly:
			if e.FlightSpeed <= 0 {
				return fmt.Errorf("%w: enemies[%d] %q flight_speed must be positive", ErrInvalid, i, e.Name)
			}
		default:
			return fmt.Errorf("%w: enemies[%d] %q has unknown behavior %q", ErrInvalid, i, e.Name, e.Behavior)
		}
	}

	pk := c.Pickups
	if pk.Count < 0 {
		return fmt.Errorf("%w: pickups.count must not be negative", ErrInvalid)
	}
	if pk.Count > 0 && (pk.Width <= 0 || pk.Height <= 0) {
		return fmt.Errorf("%w: pickup size must be positive", ErrInvalid)
	}
	if pk.Count > 0 && pk.MaxAttempts <= 0 {
		return fmt.Errorf("%w: pickups.max_attempts must be positive", ErrInvalid)
	}

	for handle, s := range c.Sprites {
		if len([]rune(s.Glyph)) != 1 {
			return fmt.Errorf("%w: sprite %q glyph must be a single character, got %q", ErrInvalid, handle, s.Glyph)
		}
	}

	return nil
}

func validateRect(name string, r RectConfig) error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("%w: %s size must be positive, got %vx%v", ErrInvalid, name, r.W, r.H)
	}
	return nil
}
