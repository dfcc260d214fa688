package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Landing selects which platform wins when several qualify in one tick.
type Landing int

const (
	LandFirstMatch       Landing = iota // First qualifying platform in set order
	LandLeastPenetration                // Qualifying platform with the shallowest overlap
)

// Body is the physical state shared by every entity.
type Body struct {
	Rect             core.RectF
	VX, VY           float64
	OnGround         bool
	Gravity          float64 // Added to VY each airborne tick
	IgnoresPlatforms bool
}

// Frame carries everything an update needs from the simulation loop.
// Enemies, Pickups and Score are only touched by the player.
type Frame struct {
	Input     core.InputFrame
	Target    core.RectF // Player rect, used by enemy behaviors
	Enemies   []*Entity
	Platforms *PlatformSet
	Pickups   *PickupSet
	Score     *int
	FloorY    float64
	Landing   Landing
}

// Outcome reports what happened to an entity during one update.
type Outcome struct {
	Jumped    bool
	Damage    float64 // Health lost this tick
	Collected int     // Pickups removed this tick
}

// Entity is a dynamic actor: the player or an enemy.
type Entity struct {
	Name     string
	Sprite   string
	Body     Body
	behavior Behavior
}

// NewEntity creates an entity with a fixed behavior.
func NewEntity(name, sprite string, body Body, behavior Behavior) *Entity {
	return &Entity{
		Name:     name,
		Sprite:   sprite,
		Body:     body,
		behavior: behavior,
	}
}

// Kind returns the behavior variant.
func (e *Entity) Kind() Kind {
	return e.behavior.Kind()
}

// Behavior returns the entity's behavior.
func (e *Entity) Behavior() Behavior {
	return e.behavior
}

// Update advances the entity by one tick.
func (e *Entity) Update(f *Frame) Outcome {
	var out Outcome
	b := &e.Body

	// Control
	grounded := b.OnGround
	e.behavior.Steer(b, f)
	out.Jumped = grounded && !b.OnGround

	// Gravity
	if !b.OnGround {
		b.VY += b.Gravity
	} else if b.VY > 0 {
		b.VY = 0
	}

	// Integration
	b.Rect.X += b.VX
	b.Rect.Y += b.VY

	b.OnGround = false

	if !b.IgnoresPlatforms && f.Platforms != nil {
		resolvePlatforms(b, f.Platforms, f.Landing)
	}

	// Floor
	if b.Rect.Bottom() >= f.FloorY {
		b.Rect.SetBottom(f.FloorY)
		b.VY = 0
		b.OnGround = true
	}

	if p, ok := e.behavior.(*Player); ok {
		out.Damage = p.applyContact(b.Rect, f.Enemies)
		if f.Pickups != nil {
			out.Collected = f.Pickups.Collect(b.Rect)
			if f.Score != nil {
				*f.Score += out.Collected
			}
		}
	}

	return out
}

// resolvePlatforms lands the body on at most one platform.
func resolvePlatforms(b *Body, set *PlatformSet, policy Landing) {
	var (
		found     bool
		bestTop   float64
		bestDepth float64
	)

	for _, p := range set.Colliding(b.Rect) {
		if !landsOn(b, p) {
			continue
		}
		if policy == LandFirstMatch {
			land(b, p.Top())
			return
		}
		depth := b.Rect.Bottom() - p.Top()
		if !found || depth < bestDepth {
			found = true
			bestTop = p.Top()
			bestDepth = depth
		}
	}

	if found {
		land(b, bestTop)
	}
}

// landsOn reports whether p stops the body this tick. A resting body
// (VY == 0) touching the top counts as a landing.
func landsOn(b *Body, p core.RectF) bool {
	if b.VY >= 0 && b.Rect.Bottom() <= p.Top()+b.VY {
		return true
	}
	// Falling while overlapping the platform vertically
	return b.VY > 0 && b.Rect.Top() < p.Bottom() && b.Rect.Bottom() > p.Top()
}

func land(b *Body, top float64) {
	b.Rect.SetBottom(top)
	b.VY = 0
	b.OnGround = true
}
