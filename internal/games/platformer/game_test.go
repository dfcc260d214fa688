package platformer

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T, cfg config.PlatformerConfig) *Game {
	t.Helper()
	g, err := New(cfg, testRuntime(12345), nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func countEvents(events []core.Event, kind core.EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestGameDeterminism(t *testing.T) {
	// Walk right, sprint, jump periodically, then walk back
	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		in := core.NewInputFrame()
		switch {
		case i < 200:
			in.Set(core.ActionRight)
		case i < 400:
			in.Set(core.ActionLeft)
			in.Set(core.ActionSprint)
		}
		if i%45 == 0 {
			in.Set(core.ActionJump)
		}
		inputSequence[i] = in
	}

	run := func() Snapshot {
		g := newTestGame(t, config.DefaultPlatformerConfig())
		for _, in := range inputSequence {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score || snap1.Tick != snap2.Tick {
		t.Errorf("Determinism failed: score %d/%d tick %d/%d", snap1.Score, snap2.Score, snap1.Tick, snap2.Tick)
	}
}

func TestGameSeedChangesPickups(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	a, errA := New(cfg, testRuntime(1), nil)
	b, errB := New(cfg, testRuntime(2), nil)
	if errA != nil || errB != nil {
		t.Fatalf("New() failed: %v, %v", errA, errB)
	}

	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.Hash() == sb.Hash() {
		t.Error("different seeds should place pickups differently")
	}
}

func TestGamePickupsWithinReach(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	minX := cfg.World.RoamMinX - cfg.Pickups.Width
	maxX := cfg.World.RoamMaxX + cfg.Player.Width

	for seed := int64(1); seed <= 100; seed++ {
		g, err := New(cfg, testRuntime(seed), nil)
		if err != nil {
			t.Fatalf("seed %d: New() failed: %v", seed, err)
		}
		for _, p := range g.Pickups().Items() {
			if p.Rect.Left() < minX || p.Rect.Right() > maxX {
				t.Errorf("seed %d: pickup %d at x=%v outside reachable band [%v, %v]", seed, p.ID, p.Rect.X, minX, maxX)
			}
		}
	}
}

func TestGameExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		want    int
	}{
		{"quit", []core.Action{core.ActionQuit}, core.ExitQuit},
		{"cancel", []core.Action{core.ActionCancel}, core.ExitCancel},
		{"quit wins over cancel", []core.Action{core.ActionCancel, core.ActionQuit}, core.ExitQuit},
		{"quit while moving", []core.Action{core.ActionRight, core.ActionJump, core.ActionQuit}, core.ExitQuit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, config.DefaultPlatformerConfig())
			g.Step(core.NewInputFrame())
			before := g.Player().Body

			res := g.Step(core.InputOf(tc.actions...))

			if !res.State.Terminated() {
				t.Fatalf("expected terminated state, got %v", res.State.Status)
			}
			if res.State.ExitCode != tc.want {
				t.Errorf("exit code = %d, expected %d", res.State.ExitCode, tc.want)
			}
			if countEvents(res.Events, core.EventTerminated) != 1 || res.Events[0].ExitCode != tc.want {
				t.Errorf("expected one terminated event with code %d, got %+v", tc.want, res.Events)
			}
			// Signals are observed before simulating
			if res.State.Tick != 1 || g.Player().Body != before {
				t.Error("terminating tick should not simulate")
			}

			// Terminal state is sticky
			res = g.Step(core.InputOf(core.ActionCancel))
			if res.State.ExitCode != tc.want || len(res.Events) != 0 || res.State.Tick != 1 {
				t.Errorf("step after termination changed state: %+v", res)
			}
		})
	}
}

func TestGameDeathFiresOnce(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Player.MaxHealth = 1
	cfg.Player.ContactDamage = 0.25
	cfg.Enemies = []config.EnemyConfig{{
		Name:      "ghost",
		Sprite:    "ghost",
		Behavior:  config.BehaviorChase,
		X:         cfg.Player.X,
		Y:         cfg.Player.Y,
		Width:     cfg.Player.Width,
		Height:    cfg.Player.Height,
		WalkSpeed: 2,
	}}
	g := newTestGame(t, cfg)

	deaths := 0
	prevRatio := 1.0
	for i := 0; i < 20; i++ {
		res := g.Step(core.NewInputFrame())
		deaths += countEvents(res.Events, core.EventDeath)

		if res.State.HealthRatio > prevRatio {
			t.Fatalf("tick %d: health increased from %v to %v", i, prevRatio, res.State.HealthRatio)
		}
		prevRatio = res.State.HealthRatio
	}

	if deaths != 1 {
		t.Errorf("death events = %d, expected exactly 1", deaths)
	}
	st := g.State()
	if !st.GameOver || st.HealthRatio != 0 {
		t.Errorf("expected game over at zero health, got %+v", st)
	}
	// 1 / 0.25 ticks of contact, then the world freezes
	if st.Tick != 4 {
		t.Errorf("tick = %d, expected world frozen at 4", st.Tick)
	}
	if st.Terminated() {
		t.Error("death should not terminate the loop")
	}
}

func TestGameHealthDecrement(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Enemies = []config.EnemyConfig{{
		Name:     "ghost",
		Sprite:   "ghost",
		Behavior: config.BehaviorChase,
		X:        cfg.Player.X,
		Y:        cfg.Player.Y,
		Width:    cfg.Player.Width,
		Height:   cfg.Player.Height,
	}}
	g := newTestGame(t, cfg)
	p := g.playerBehavior()

	prev := p.Health
	for i := 0; i < 50; i++ {
		g.Step(core.NewInputFrame())
		if math.Abs(prev-p.Health-0.1) > eps {
			t.Fatalf("tick %d: health %v -> %v, expected a drop of 0.1", i, prev, p.Health)
		}
		prev = p.Health
	}
}

func TestGameAllCollectedOnce(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Enemies = nil
	g := newTestGame(t, cfg)

	// One pickup right next to the player's spawn
	g.pickups = NewPickupSet([]core.RectF{core.NewRectF(70, 697, 15, 15)})

	res := g.Step(core.NewInputFrame())
	if countEvents(res.Events, core.EventPickup) != 1 {
		t.Errorf("expected one pickup event, got %+v", res.Events)
	}
	if countEvents(res.Events, core.EventAllCollected) != 1 {
		t.Errorf("expected one all-collected event, got %+v", res.Events)
	}
	if !res.State.Won || res.State.Score != 1 || res.State.Total != 1 {
		t.Errorf("unexpected state %+v", res.State)
	}

	for _, cmd := range g.Snapshot().Commands {
		if cmd.Sprite == cfg.Pickups.Sprite {
			t.Errorf("collected pickup still in snapshot at %+v", cmd.Rect)
		}
	}

	for i := 0; i < 10; i++ {
		res = g.Step(core.InputOf(core.ActionRight))
		if len(res.Events) != 0 {
			t.Fatalf("events after win: %+v", res.Events)
		}
	}
	if res.State.Tick != 1 {
		t.Errorf("tick = %d, expected world frozen at 1", res.State.Tick)
	}
}

func TestGameScoreMonotonic(t *testing.T) {
	g := newTestGame(t, config.DefaultPlatformerConfig())

	prev := 0
	for i := 0; i < 1200; i++ {
		in := core.NewInputFrame()
		if (i/150)%2 == 0 {
			in.Set(core.ActionRight)
		} else {
			in.Set(core.ActionLeft)
		}
		if i%30 == 0 {
			in.Set(core.ActionJump)
		}

		res := g.Step(in)
		picked := countEvents(res.Events, core.EventPickup)
		if res.State.Score != prev+picked {
			t.Fatalf("tick %d: score %d, expected %d + %d", i, res.State.Score, prev, picked)
		}
		if res.State.Score+g.Pickups().Remaining() != res.State.Total {
			t.Fatalf("tick %d: score %d + remaining %d != total %d", i, res.State.Score, g.Pickups().Remaining(), res.State.Total)
		}
		prev = res.State.Score
	}
}

func TestGameSnapshotOrder(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	g := newTestGame(t, cfg)
	snap := g.Snapshot()

	want := []string{cfg.World.Background}
	for i, n := 0, len(cfg.World.Platforms)+1; i < n; i++ {
		want = append(want, cfg.World.PlatformSprite)
	}
	for i := 0; i < cfg.Pickups.Count; i++ {
		want = append(want, cfg.Pickups.Sprite)
	}
	want = append(want, cfg.Player.Sprite)
	for _, e := range cfg.Enemies {
		want = append(want, e.Sprite)
	}

	if len(snap.Commands) != len(want) {
		t.Fatalf("got %d draw commands, expected %d", len(snap.Commands), len(want))
	}
	for i, cmd := range snap.Commands {
		if cmd.Sprite != want[i] {
			t.Errorf("command %d sprite = %q, expected %q", i, cmd.Sprite, want[i])
		}
	}

	pr := g.Player().Body.Rect
	if snap.Health.Ratio != 1 {
		t.Errorf("health ratio = %v, expected 1", snap.Health.Ratio)
	}
	if snap.Health.Frame.Bottom() > pr.Top() {
		t.Errorf("health bar %+v should sit above the player %+v", snap.Health.Frame, pr)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, config.DefaultPlatformerConfig())

	res := g.Step(core.InputOf(core.ActionPause))
	if !res.State.Paused || res.State.Tick != 0 {
		t.Fatalf("expected paused at tick 0, got %+v", res.State)
	}

	res = g.Step(core.InputOf(core.ActionRight))
	if !res.State.Paused || res.State.Tick != 0 {
		t.Errorf("paused game should not simulate, got %+v", res.State)
	}

	res = g.Step(core.InputOf(core.ActionPause))
	if res.State.Paused || res.State.Tick != 1 {
		t.Errorf("expected resumed at tick 1, got %+v", res.State)
	}

	// Quit still works while paused
	g.Step(core.InputOf(core.ActionPause))
	res = g.Step(core.InputOf(core.ActionQuit))
	if !res.State.Terminated() {
		t.Error("quit should terminate a paused game")
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t, config.DefaultPlatformerConfig())
	for i := 0; i < 100; i++ {
		g.Step(core.InputOf(core.ActionRight))
	}
	first := g.Snapshot()

	res := g.Step(core.InputOf(core.ActionRestart))
	if res.State.Tick != 0 || res.State.Score != 0 || res.State.Terminated() {
		t.Errorf("restart should reset the session, got %+v", res.State)
	}
	if x := g.Player().Body.Rect.X; x != config.DefaultPlatformerConfig().Player.X {
		t.Errorf("player x = %v after restart", x)
	}

	for i := 0; i < 100; i++ {
		g.Step(core.InputOf(core.ActionRight))
	}
	if again := g.Snapshot(); again.Hash() != first.Hash() {
		t.Error("replaying after restart should reproduce the session")
	}
}

func TestGameReconfigure(t *testing.T) {
	g := newTestGame(t, config.DefaultPlatformerConfig())
	for i := 0; i < 30; i++ {
		g.Step(core.InputOf(core.ActionRight))
	}

	cfg := config.DefaultPlatformerConfig()
	cfg.Pickups.Count = 3
	cfg.Enemies = cfg.Enemies[:1]
	if err := g.Reconfigure(cfg); err != nil {
		t.Fatalf("Reconfigure() failed: %v", err)
	}

	state := g.State()
	if state.Tick != 0 || state.Total != 3 || len(g.Enemies()) != 1 {
		t.Errorf("reconfigured session: tick %d total %d enemies %d", state.Tick, state.Total, len(g.Enemies()))
	}

	// A bad config keeps the running session
	g.Step(core.InputOf(core.ActionRight))
	bad := config.DefaultPlatformerConfig()
	bad.World.Width = 0
	if err := g.Reconfigure(bad); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Reconfigure(bad) error = %v, expected ErrConfiguration", err)
	}
	if state := g.State(); state.Tick != 1 || state.Total != 3 {
		t.Errorf("failed reconfigure changed the session: %+v", state)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.PlatformerConfig)
		want   error
	}{
		{"missing enemy sprite", func(c *config.PlatformerConfig) { delete(c.Sprites, "bat") }, ErrAssetMissing},
		{"missing pickup sprite", func(c *config.PlatformerConfig) { c.Pickups.Sprite = "gem" }, ErrAssetMissing},
		{"missing background", func(c *config.PlatformerConfig) { c.World.Background = "sky" }, ErrAssetMissing},
		{"unknown color", func(c *config.PlatformerConfig) {
			c.Sprites["coin"] = config.SpriteConfig{Glyph: "$", Color: "chartreuse"}
		}, ErrConfiguration},
		{"invalid config", func(c *config.PlatformerConfig) { c.Player.MaxHealth = 0 }, ErrConfiguration},
		{"duplicate enemy name", func(c *config.PlatformerConfig) { c.Enemies[1].Name = c.Enemies[0].Name }, ErrConfiguration},
		{"spawn exhausted", func(c *config.PlatformerConfig) {
			c.Pickups.Count = 100
			c.Pickups.MaxAttempts = 50
		}, ErrConfiguration},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultPlatformerConfig()
			tc.mutate(&cfg)

			_, err := New(cfg, testRuntime(1), nil)
			if !errors.Is(err, tc.want) {
				t.Errorf("New() = %v, expected %v", err, tc.want)
			}
		})
	}

	cfg := config.DefaultPlatformerConfig()
	cfg.Physics.Landing = "closest"
	_, err := New(cfg, testRuntime(1), nil)
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("validation error should keep config.ErrInvalid in the chain, got %v", err)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, config.DefaultPlatformerConfig())
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0/10") {
		t.Errorf("HUD row = %q, expected score", screen.Row(0))
	}
	out := screen.String()
	for _, glyph := range []string{"@", "G", "V", "S", "$", "█"} {
		if !strings.Contains(out, glyph) {
			t.Errorf("rendered frame missing %q:\n%s", glyph, out)
		}
	}

	g.Step(core.InputOf(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay not rendered")
	}

	small := core.NewScreen(10, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "too") {
		t.Errorf("expected too-small message, got:\n%s", small.String())
	}
}
