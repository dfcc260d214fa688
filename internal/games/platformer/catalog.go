package platformer

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Sprite is the terminal appearance of a sprite handle.
type Sprite struct {
	Glyph rune
	Color core.Color
}

// Catalog resolves sprite handles.
type Catalog map[string]Sprite

// NewCatalog builds a catalog from the configured sprites.
func NewCatalog(sprites map[string]config.SpriteConfig) (Catalog, error) {
	c := make(Catalog, len(sprites))
	for handle, s := range sprites {
		glyph := []rune(s.Glyph)
		if len(glyph) != 1 {
			return nil, fmt.Errorf("%w: sprite %q glyph %q", ErrConfiguration, handle, s.Glyph)
		}
		color, err := core.ParseColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: sprite %q: %w", ErrConfiguration, handle, err)
		}
		c[handle] = Sprite{Glyph: glyph[0], Color: color}
	}
	return c, nil
}

// Resolve returns the sprite for a handle.
func (c Catalog) Resolve(handle string) (Sprite, error) {
	s, ok := c[handle]
	if !ok {
		return Sprite{}, fmt.Errorf("%w: %q", ErrAssetMissing, handle)
	}
	return s, nil
}

// Require checks that every handle resolves.
func (c Catalog) Require(handles ...string) error {
	for _, h := range handles {
		if _, err := c.Resolve(h); err != nil {
			return err
		}
	}
	return nil
}

// Handles returns the known handles in sorted order.
func (c Catalog) Handles() []string {
	out := make([]string, 0, len(c))
	for h := range c {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}
