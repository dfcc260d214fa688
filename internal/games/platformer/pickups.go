package platformer

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Pickup is a collectible resting on a platform.
type Pickup struct {
	ID   int
	Rect core.RectF
}

// PickupSet holds the pickups still in play. Removal is permanent.
type PickupSet struct {
	items []Pickup
	total int
}

// NewPickupSet creates a set from explicit rectangles, numbered in order.
func NewPickupSet(rects []core.RectF) *PickupSet {
	items := make([]Pickup, len(rects))
	for i, r := range rects {
		items[i] = Pickup{ID: i, Rect: r}
	}
	return &PickupSet{items: items, total: len(items)}
}

// Collect removes every pickup intersecting r and returns how many were removed.
func (s *PickupSet) Collect(r core.RectF) int {
	kept := s.items[:0]
	removed := 0
	for _, p := range s.items {
		if r.Intersects(p.Rect) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.items = kept
	return removed
}

// Items returns the pickups still in play.
func (s *PickupSet) Items() []Pickup {
	out := make([]Pickup, len(s.items))
	copy(out, s.items)
	return out
}

// Remaining returns the number of pickups still in play.
func (s *PickupSet) Remaining() int {
	return len(s.items)
}

// Total returns the number of pickups the set started with.
func (s *PickupSet) Total() int {
	return s.total
}

// SpawnSpec controls pickup placement.
type SpawnSpec struct {
	Count         int
	MinSeparation float64 // Minimum horizontal distance between pickups
	W, H          float64
	MaxAttempts   int

	// MinX and MaxX bound where a pickup may sit. Platform spans are clipped
	// to the band. MaxX <= MinX leaves spans unclipped.
	MinX, MaxX float64
}

// SpawnPickups places pickups on random platform tops by rejection sampling.
// A candidate is rejected when it is closer than MinSeparation on the x-axis
// to an already placed pickup. Platforms whose clipped span is narrower than
// a pickup are never used. Running out of attempts returns a *SpawnError.
func SpawnPickups(rng *rand.Rand, platforms []core.RectF, spec SpawnSpec) (*PickupSet, error) {
	rects := make([]core.RectF, 0, spec.Count)
	attempts := 0

	for len(rects) < spec.Count {
		if attempts >= spec.MaxAttempts || len(platforms) == 0 {
			return nil, &SpawnError{Placed: len(rects), Requested: spec.Count, Attempts: attempts}
		}
		attempts++

		p := platforms[rng.Intn(len(platforms))]
		left, right := spec.clip(p)
		span := right - left - spec.W
		if span < 0 {
			continue
		}

		x := left + rng.Float64()*span
		if !separated(x, rects, spec.MinSeparation) {
			continue
		}
		rects = append(rects, core.NewRectF(x, p.Top()-spec.H, spec.W, spec.H))
	}

	return NewPickupSet(rects), nil
}

func (s SpawnSpec) clip(p core.RectF) (left, right float64) {
	left, right = p.Left(), p.Right()
	if s.MaxX <= s.MinX {
		return left, right
	}
	return math.Max(left, s.MinX), math.Min(right, s.MaxX)
}

func separated(x float64, placed []core.RectF, minSep float64) bool {
	for _, r := range placed {
		if math.Abs(x-r.X) < minSep {
			return false
		}
	}
	return true
}
