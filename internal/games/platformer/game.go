// Package platformer implements the platformer simulation core: entity
// physics, platform collision, enemy behaviors and pickups.
package platformer

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Game is the frame simulation loop. It is not safe for concurrent use.
type Game struct {
	cfg     config.PlatformerConfig
	catalog Catalog
	landing Landing
	logger  *log.Logger
	runtime core.RuntimeConfig

	platforms *PlatformSet
	pickups   *PickupSet
	player    *Entity
	enemies   []*Entity

	score    int
	tick     uint64
	paused   bool
	dead     bool
	won      bool
	status   core.Status
	exitCode int
}

// New validates cfg, resolves every sprite the session draws and starts a
// session with rt. A nil logger discards output.
func New(cfg config.PlatformerConfig, rt core.RuntimeConfig, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	catalog, err := NewCatalog(cfg.Sprites)
	if err != nil {
		return nil, err
	}
	handles := []string{cfg.World.Background, cfg.World.PlatformSprite, cfg.Player.Sprite, cfg.Pickups.Sprite}
	for _, e := range cfg.Enemies {
		handles = append(handles, e.Sprite)
	}
	if err := catalog.Require(handles...); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		catalog: catalog,
		landing: landingPolicy(cfg.Physics.Landing),
		logger:  logger,
	}
	if err := g.Reset(rt); err != nil {
		return nil, err
	}
	return g, nil
}

// Reconfigure replaces the configuration and starts a new session with the
// current runtime config. On error the running session is left untouched.
func (g *Game) Reconfigure(cfg config.PlatformerConfig) error {
	next, err := New(cfg, g.runtime, g.logger)
	if err != nil {
		return err
	}
	*g = *next
	g.logger.Info("config reloaded", "platforms", len(cfg.World.Platforms), "enemies", len(cfg.Enemies))
	return nil
}

func landingPolicy(name string) Landing {
	if name == config.LandingLeastPenetration {
		return LandLeastPenetration
	}
	return LandFirstMatch
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "platformer"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Platformer"
}

// Catalog returns the sprite catalog.
func (g *Game) Catalog() Catalog {
	return g.catalog
}

// Reset starts a new session. The roster is rebuilt from config and pickups
// are respawned from rt.Seed. On error the previous session is kept.
func (g *Game) Reset(rt core.RuntimeConfig) error {
	w := g.cfg.World
	rects := make([]core.RectF, len(w.Platforms))
	for i, p := range w.Platforms {
		rects[i] = rectOf(p)
	}
	platforms := NewPlatformSet(rects, rectOf(w.Ground))

	rng := rand.New(rand.NewSource(rt.Seed)) //#nosec G404 -- gameplay randomness, seeded for replay
	pk := g.cfg.Pickups
	// Pickups stay within the x band the roam gate lets the player touch.
	pickups, err := SpawnPickups(rng, platforms.All(), SpawnSpec{
		Count:         pk.Count,
		MinSeparation: pk.MinSeparation,
		W:             pk.Width,
		H:             pk.Height,
		MaxAttempts:   pk.MaxAttempts,
		MinX:          w.RoamMinX - pk.Width,
		MaxX:          w.RoamMaxX + g.cfg.Player.Width,
	})
	if err != nil {
		return fmt.Errorf("spawn pickups: %w", err)
	}

	g.runtime = rt
	g.platforms = platforms
	g.pickups = pickups
	g.player = g.newPlayer()
	g.enemies = g.newEnemies()
	g.score = 0
	g.tick = 0
	g.paused = false
	g.dead = false
	g.won = false
	g.status = core.StatusRunning
	g.exitCode = 0

	g.logger.Info("session started",
		"seed", rt.Seed,
		"platforms", platforms.Len(),
		"enemies", len(g.enemies),
		"pickups", pickups.Total(),
	)
	return nil
}

func (g *Game) newPlayer() *Entity {
	p := g.cfg.Player
	return NewEntity(config.PlayerName, p.Sprite, Body{
		Rect:    core.NewRectF(p.X, p.Y, p.Width, p.Height),
		Gravity: g.cfg.Physics.Gravity,
	}, &Player{
		WalkSpeed:     p.WalkSpeed,
		RunSpeed:      p.RunSpeed,
		JumpImpulse:   g.cfg.Physics.JumpImpulse,
		RoamMinX:      g.cfg.World.RoamMinX,
		RoamMaxX:      g.cfg.World.RoamMaxX,
		Health:        p.MaxHealth,
		MaxHealth:     p.MaxHealth,
		ContactDamage: p.ContactDamage,
	})
}

func (g *Game) newEnemies() []*Entity {
	enemies := make([]*Entity, 0, len(g.cfg.Enemies))
	for _, e := range g.cfg.Enemies {
		gravity := g.cfg.Physics.Gravity
		if e.Gravity != nil {
			gravity = *e.Gravity
		}
		body := Body{
			Rect:             core.NewRectF(e.X, e.Y, e.Width, e.Height),
			Gravity:          gravity,
			IgnoresPlatforms: e.IgnoresPlatforms,
		}

		var b Behavior
		switch e.Behavior {
		case config.BehaviorPatrol:
			b = &Patrol{WalkSpeed: e.WalkSpeed, StartX: e.X, Range: e.PatrolRange, Dir: 1}
		case config.BehaviorChase:
			b = &Chase{WalkSpeed: e.WalkSpeed}
		case config.BehaviorFly:
			b = &Flyer{Speed: e.FlightSpeed}
		}
		enemies = append(enemies, NewEntity(e.Name, e.Sprite, body, b))
	}
	return enemies
}

func rectOf(r config.RectConfig) core.RectF {
	return core.NewRectF(r.X, r.Y, r.W, r.H)
}

// Player returns the player entity.
func (g *Game) Player() *Entity {
	return g.player
}

// Enemies returns the enemy roster in update order.
func (g *Game) Enemies() []*Entity {
	return g.enemies
}

// Pickups returns the pickups still in play.
func (g *Game) Pickups() *PickupSet {
	return g.pickups
}

func (g *Game) playerBehavior() *Player {
	return g.player.behavior.(*Player)
}

// Step advances the game by one tick. Quit and cancel are observed before
// any simulation; quit wins when both are set.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.status == core.StatusTerminated {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionQuit):
		return g.terminate(core.ExitQuit)
	case in.Has(core.ActionCancel):
		return g.terminate(core.ExitCancel)
	}

	if in.Has(core.ActionRestart) {
		if err := g.Reset(g.runtime); err != nil {
			g.logger.Error("restart failed", "err", err)
		}
		return core.StepResult{State: g.State()}
	}

	frozen := g.dead || g.won
	if in.Has(core.ActionPause) && !frozen {
		g.paused = !g.paused
		g.logger.Debug("pause toggled", "paused", g.paused, "tick", g.tick)
	}
	if g.paused || frozen {
		return core.StepResult{State: g.State()}
	}

	events := g.simulate(in)
	return core.StepResult{State: g.State(), Events: events}
}

// simulate runs one tick: the player first, then each enemy in roster order.
func (g *Game) simulate(in core.InputFrame) []core.Event {
	g.tick++
	var events []core.Event

	frame := &Frame{
		Input:     in,
		Enemies:   g.enemies,
		Platforms: g.platforms,
		Pickups:   g.pickups,
		Score:     &g.score,
		FloorY:    g.cfg.World.FloorY,
		Landing:   g.landing,
	}
	out := g.player.Update(frame)
	p := g.playerBehavior()

	if out.Jumped {
		events = append(events, g.event(core.EventJump))
		g.logger.Debug("jump", "tick", g.tick, "x", g.player.Body.Rect.X, "y", g.player.Body.Rect.Y)
	}

	for i := out.Collected; i > 0; i-- {
		ev := g.event(core.EventPickup)
		ev.Score = g.score - i + 1
		events = append(events, ev)
	}
	if out.Collected > 0 {
		g.logger.Info("pickup collected", "tick", g.tick, "score", g.score, "remaining", g.pickups.Remaining())
	}

	if !g.dead && p.Dead() {
		g.dead = true
		events = append(events, g.event(core.EventDeath))
		g.logger.Warn("player died", "tick", g.tick, "score", g.score)
	}

	if !g.won && g.pickups.Total() > 0 && g.pickups.Remaining() == 0 {
		g.won = true
		events = append(events, g.event(core.EventAllCollected))
		g.logger.Info("all pickups collected", "tick", g.tick, "score", g.score)
	}

	enemyFrame := &Frame{
		Target:    g.player.Body.Rect,
		Platforms: g.platforms,
		FloorY:    g.cfg.World.FloorY,
		Landing:   g.landing,
	}
	for _, e := range g.enemies {
		e.Update(enemyFrame)
	}

	return events
}

func (g *Game) terminate(code int) core.StepResult {
	g.status = core.StatusTerminated
	g.exitCode = code
	g.logger.Info("session terminated", "code", code, "tick", g.tick, "score", g.score)

	ev := g.event(core.EventTerminated)
	ev.ExitCode = code
	return core.StepResult{State: g.State(), Events: []core.Event{ev}}
}

func (g *Game) event(kind core.EventKind) core.Event {
	return core.Event{
		Kind:   kind,
		Tick:   g.tick,
		Score:  g.score,
		Health: g.playerBehavior().Health,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:       g.score,
		Total:       g.pickups.Total(),
		HealthRatio: g.playerBehavior().HealthRatio(),
		GameOver:    g.dead,
		Won:         g.won,
		Paused:      g.paused,
		Status:      g.status,
		ExitCode:    g.exitCode,
		Tick:        g.tick,
	}
}
