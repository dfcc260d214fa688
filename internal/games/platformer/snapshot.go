package platformer

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// DrawCommand asks the renderer to draw a sprite over a world rectangle.
type DrawCommand struct {
	Sprite string
	Rect   core.RectF
}

// HealthBar describes the player's health bar, anchored above the player.
type HealthBar struct {
	Ratio float64 // In [0, 1]
	Frame core.RectF
}

// Health bar geometry in world units.
const (
	healthBarHeight = 5
	healthBarGap    = 10 // Distance from the bar's top to the player's top
)

// Snapshot is the render state of one tick.
// Commands are ordered back to front.
type Snapshot struct {
	Commands []DrawCommand
	Health   HealthBar
	Score    int
	Total    int
	Tick     uint64
	Paused   bool
	GameOver bool
	Won      bool
}

// Snapshot returns the current render state.
func (g *Game) Snapshot() Snapshot {
	platforms := g.platforms.All()
	pickups := g.pickups.Items()

	cmds := make([]DrawCommand, 0, 2+len(platforms)+len(pickups)+len(g.enemies))
	cmds = append(cmds, DrawCommand{
		Sprite: g.cfg.World.Background,
		Rect:   core.NewRectF(0, 0, g.cfg.World.Width, g.cfg.World.Height),
	})
	for _, p := range platforms {
		cmds = append(cmds, DrawCommand{Sprite: g.cfg.World.PlatformSprite, Rect: p})
	}
	for _, p := range pickups {
		cmds = append(cmds, DrawCommand{Sprite: g.cfg.Pickups.Sprite, Rect: p.Rect})
	}
	cmds = append(cmds, DrawCommand{Sprite: g.player.Sprite, Rect: g.player.Body.Rect})
	for _, e := range g.enemies {
		cmds = append(cmds, DrawCommand{Sprite: e.Sprite, Rect: e.Body.Rect})
	}

	pr := g.player.Body.Rect
	return Snapshot{
		Commands: cmds,
		Health: HealthBar{
			Ratio: g.playerBehavior().HealthRatio(),
			Frame: core.NewRectF(pr.X, pr.Y-healthBarGap, pr.W, healthBarHeight),
		},
		Score:    g.score,
		Total:    g.pickups.Total(),
		Tick:     g.tick,
		Paused:   g.paused,
		GameOver: g.dead,
		Won:      g.won,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Total) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Health.Ratio)

	for _, c := range snap.Commands {
		for i := 0; i < len(c.Sprite); i++ {
			h = h*31 + uint64(c.Sprite[i])
		}
		h = h*31 + math.Float64bits(c.Rect.X)
		h = h*31 + math.Float64bits(c.Rect.Y)
		h = h*31 + math.Float64bits(c.Rect.W)
		h = h*31 + math.Float64bits(c.Rect.H)
	}

	return h
}
