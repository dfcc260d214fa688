package platformer

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

func defaultPlatforms() []core.RectF {
	cfg := config.DefaultPlatformerConfig()
	rects := make([]core.RectF, len(cfg.World.Platforms))
	for i, p := range cfg.World.Platforms {
		rects[i] = rectOf(p)
	}
	return NewPlatformSet(rects, rectOf(cfg.World.Ground)).All()
}

func TestSpawnPickups(t *testing.T) {
	platforms := defaultPlatforms()
	spec := SpawnSpec{Count: 12, MinSeparation: 30, W: 15, H: 15, MaxAttempts: 2000}

	for seed := int64(1); seed <= 20; seed++ {
		set, err := SpawnPickups(rand.New(rand.NewSource(seed)), platforms, spec)
		if err != nil {
			t.Fatalf("seed %d: SpawnPickups failed: %v", seed, err)
		}

		items := set.Items()
		if len(items) != spec.Count || set.Total() != spec.Count {
			t.Fatalf("seed %d: placed %d pickups, expected %d", seed, len(items), spec.Count)
		}

		for i, a := range items {
			for _, b := range items[i+1:] {
				if math.Abs(a.Rect.X-b.Rect.X) < spec.MinSeparation {
					t.Errorf("seed %d: pickups %d and %d are %v apart", seed, a.ID, b.ID, math.Abs(a.Rect.X-b.Rect.X))
				}
			}
			if !restsOnPlatform(a.Rect, platforms) {
				t.Errorf("seed %d: pickup %d at %+v does not rest on a platform", seed, a.ID, a.Rect)
			}
		}
	}
}

func restsOnPlatform(r core.RectF, platforms []core.RectF) bool {
	for _, p := range platforms {
		if r.Bottom() == p.Top() && r.Left() >= p.Left() && r.Right() <= p.Right() {
			return true
		}
	}
	return false
}

func TestSpawnPickupsDeterministic(t *testing.T) {
	platforms := defaultPlatforms()
	spec := SpawnSpec{Count: 8, MinSeparation: 30, W: 15, H: 15, MaxAttempts: 2000}

	a, errA := SpawnPickups(rand.New(rand.NewSource(99)), platforms, spec)
	b, errB := SpawnPickups(rand.New(rand.NewSource(99)), platforms, spec)
	if errA != nil || errB != nil {
		t.Fatalf("SpawnPickups failed: %v, %v", errA, errB)
	}

	ia, ib := a.Items(), b.Items()
	for i := range ia {
		if ia[i] != ib[i] {
			t.Fatalf("pickup %d differs: %+v vs %+v", i, ia[i], ib[i])
		}
	}
}

func TestSpawnPickupsBand(t *testing.T) {
	platforms := []core.RectF{
		core.NewRectF(0, 700, 300, 10),   // Straddles MinX
		core.NewRectF(400, 500, 50, 10),  // Inside
		core.NewRectF(560, 400, 100, 10), // Straddles MaxX, clipped to 40 wide
		core.NewRectF(700, 300, 100, 10), // Beyond MaxX
	}
	spec := SpawnSpec{Count: 6, MinSeparation: 20, W: 15, H: 15, MaxAttempts: 5000, MinX: 100, MaxX: 600}

	for seed := int64(1); seed <= 20; seed++ {
		set, err := SpawnPickups(rand.New(rand.NewSource(seed)), platforms, spec)
		if err != nil {
			t.Fatalf("seed %d: SpawnPickups failed: %v", seed, err)
		}
		for _, p := range set.Items() {
			if p.Rect.Left() < spec.MinX || p.Rect.Right() > spec.MaxX {
				t.Errorf("seed %d: pickup %d at x=%v outside [%v, %v]", seed, p.ID, p.Rect.X, spec.MinX, spec.MaxX)
			}
			if p.Rect.Bottom() == 300 {
				t.Errorf("seed %d: pickup %d placed on a platform beyond the band", seed, p.ID)
			}
			if !restsOnPlatform(p.Rect, platforms) {
				t.Errorf("seed %d: pickup %d at %+v does not rest on a platform", seed, p.ID, p.Rect)
			}
		}
	}

	// A band that misses every platform can place nothing
	_, err := SpawnPickups(rand.New(rand.NewSource(1)), platforms[3:], SpawnSpec{
		Count: 1, W: 15, H: 15, MaxAttempts: 50, MinX: 100, MaxX: 600,
	})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for a band with no platform overlap, got %v", err)
	}
}

func TestSpawnPickupsExhausted(t *testing.T) {
	tests := []struct {
		name      string
		platforms []core.RectF
		spec      SpawnSpec
	}{
		{
			name:      "span too small for separation",
			platforms: []core.RectF{core.NewRectF(0, 100, 50, 10)},
			spec:      SpawnSpec{Count: 3, MinSeparation: 40, W: 10, H: 10, MaxAttempts: 100},
		},
		{
			name:      "platforms narrower than pickup",
			platforms: []core.RectF{core.NewRectF(0, 100, 5, 10)},
			spec:      SpawnSpec{Count: 1, MinSeparation: 0, W: 10, H: 10, MaxAttempts: 50},
		},
		{
			name: "no platforms",
			spec: SpawnSpec{Count: 1, W: 10, H: 10, MaxAttempts: 50},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SpawnPickups(rand.New(rand.NewSource(1)), tc.platforms, tc.spec)
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}

			var spawnErr *SpawnError
			if !errors.As(err, &spawnErr) {
				t.Fatalf("expected *SpawnError, got %T", err)
			}
			if spawnErr.Requested != tc.spec.Count || spawnErr.Placed >= tc.spec.Count {
				t.Errorf("unexpected error fields %+v", spawnErr)
			}
			if spawnErr.Attempts > tc.spec.MaxAttempts {
				t.Errorf("attempts %d exceeded cap %d", spawnErr.Attempts, tc.spec.MaxAttempts)
			}
		})
	}
}

func TestSpawnZeroPickups(t *testing.T) {
	set, err := SpawnPickups(rand.New(rand.NewSource(1)), nil, SpawnSpec{})
	if err != nil {
		t.Fatalf("zero pickups should not fail: %v", err)
	}
	if set.Total() != 0 || set.Remaining() != 0 {
		t.Errorf("expected empty set, got total %d", set.Total())
	}
}

func TestPickupSetCollect(t *testing.T) {
	set := NewPickupSet([]core.RectF{
		core.NewRectF(0, 0, 10, 10),
		core.NewRectF(100, 0, 10, 10),
		core.NewRectF(5, 5, 10, 10),
	})

	if n := set.Collect(core.NewRectF(0, 0, 8, 8)); n != 2 {
		t.Errorf("Collect() = %d, expected 2", n)
	}
	items := set.Items()
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("remaining items = %+v, expected only ID 1", items)
	}
	if set.Total() != 3 {
		t.Errorf("Total() = %d, expected 3 after removal", set.Total())
	}
	if n := set.Collect(core.NewRectF(0, 0, 8, 8)); n != 0 {
		t.Errorf("second Collect() = %d, expected 0", n)
	}
}
