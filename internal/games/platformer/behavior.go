package platformer

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Kind identifies a behavior variant.
type Kind int

const (
	KindPlayer Kind = iota
	KindPatrol
	KindChase
	KindFlyer
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPatrol:
		return "patrol"
	case KindChase:
		return "chase"
	case KindFlyer:
		return "flyer"
	default:
		return "unknown"
	}
}

// Behavior sets the desired velocity of a body before physics runs.
type Behavior interface {
	Kind() Kind
	Steer(b *Body, f *Frame)
}

// Player is the input-driven behavior. It also carries the player's health.
type Player struct {
	WalkSpeed     float64
	RunSpeed      float64
	JumpImpulse   float64 // Negative, applied to VY
	RoamMinX      float64
	RoamMaxX      float64
	Health        float64
	MaxHealth     float64
	ContactDamage float64 // Per overlapping enemy per tick
}

// Kind reports KindPlayer.
func (p *Player) Kind() Kind { return KindPlayer }

// Steer maps held keys to velocity. Jump is level-triggered: holding it
// jumps again on every grounded tick.
func (p *Player) Steer(b *Body, f *Frame) {
	in := f.Input
	sprint := in.Has(core.ActionSprint)
	left := in.Has(core.ActionLeft) && b.Rect.X > p.RoamMinX
	right := in.Has(core.ActionRight) && b.Rect.X < p.RoamMaxX

	switch {
	case sprint && left:
		b.VX = -p.RunSpeed
	case sprint && right:
		b.VX = p.RunSpeed
	case left:
		b.VX = -p.WalkSpeed
	case right:
		b.VX = p.WalkSpeed
	default:
		b.VX = 0
	}

	if in.Has(core.ActionJump) && b.OnGround {
		b.VY = p.JumpImpulse
		b.OnGround = false
	}
}

// HealthRatio returns health as a fraction of max health in [0, 1].
func (p *Player) HealthRatio() float64 {
	if p.MaxHealth <= 0 {
		return 0
	}
	return core.ClampF(p.Health/p.MaxHealth, 0, 1)
}

// Dead reports whether health has run out.
func (p *Player) Dead() bool {
	return p.Health <= 0
}

// applyContact subtracts damage for each enemy touching r and returns the
// health actually lost.
func (p *Player) applyContact(r core.RectF, enemies []*Entity) float64 {
	before := p.Health
	for _, e := range enemies {
		if r.Intersects(e.Body.Rect) {
			p.Health -= p.ContactDamage
		}
	}
	if p.Health < 0 {
		p.Health = 0
	}
	return before - p.Health
}

// Patrol walks back and forth over [StartX, StartX+Range].
type Patrol struct {
	WalkSpeed float64
	StartX    float64
	Range     float64
	Dir       float64 // +1 or -1
}

// Kind reports KindPatrol.
func (p *Patrol) Kind() Kind { return KindPatrol }

// Steer flips direction at the bounds and shortens the last step so x
// lands exactly on them.
func (p *Patrol) Steer(b *Body, _ *Frame) {
	disp := b.Rect.X - p.StartX
	if disp >= p.Range {
		p.Dir = -1
	} else if disp <= 0 {
		p.Dir = 1
	}

	vx := p.WalkSpeed * p.Dir
	switch next := disp + vx; {
	case next > p.Range:
		vx = p.Range - disp
	case next < 0:
		vx = -disp
	}
	b.VX = vx
}

// Chase walks toward the target's x.
type Chase struct {
	WalkSpeed float64
}

// Kind reports KindChase.
func (c *Chase) Kind() Kind { return KindChase }

// Steer walks toward the target's x and stops once aligned.
func (c *Chase) Steer(b *Body, f *Frame) {
	switch {
	case b.Rect.X < f.Target.X:
		b.VX = c.WalkSpeed
	case b.Rect.X > f.Target.X:
		b.VX = -c.WalkSpeed
	default:
		b.VX = 0
	}
}

// Flyer moves straight toward the target's center at a fixed speed.
type Flyer struct {
	Speed float64
}

// Kind reports KindFlyer.
func (fl *Flyer) Kind() Kind { return KindFlyer }

// Steer points the velocity at the target's center.
func (fl *Flyer) Steer(b *Body, f *Frame) {
	cx, cy := b.Rect.Center()
	tx, ty := f.Target.Center()
	dx, dy := tx-cx, ty-cy

	dist := math.Hypot(dx, dy)
	if dist == 0 {
		b.VX, b.VY = 0, 0
		return
	}
	b.VX = dx / dist * fl.Speed
	b.VY = dy / dist * fl.Speed
}
