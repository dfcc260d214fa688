package platformer

import "github.com/vovakirdan/tui-platformer/internal/core"

// PlatformSet is the immutable collection of solid rectangles.
// The ground is always enumerated last.
type PlatformSet struct {
	rects  []core.RectF
	ground core.RectF
}

// NewPlatformSet copies the declared platforms and appends the ground.
func NewPlatformSet(platforms []core.RectF, ground core.RectF) *PlatformSet {
	rects := make([]core.RectF, 0, len(platforms)+1)
	rects = append(rects, platforms...)
	rects = append(rects, ground)
	return &PlatformSet{rects: rects, ground: ground}
}

// Colliding returns the platforms intersecting r in declaration order.
func (s *PlatformSet) Colliding(r core.RectF) []core.RectF {
	var hits []core.RectF
	for _, p := range s.rects {
		if r.Intersects(p) {
			hits = append(hits, p)
		}
	}
	return hits
}

// All returns every platform including the ground.
func (s *PlatformSet) All() []core.RectF {
	out := make([]core.RectF, len(s.rects))
	copy(out, s.rects)
	return out
}

// Ground returns the ground rectangle.
func (s *PlatformSet) Ground() core.RectF {
	return s.ground
}

// Len returns the number of platforms including the ground.
func (s *PlatformSet) Len() int {
	return len(s.rects)
}
