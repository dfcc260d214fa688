package platformer

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports a session that cannot be set up from its config.
	ErrConfiguration = errors.New("platformer: configuration error")
	// ErrAssetMissing reports a sprite handle the catalog cannot resolve.
	ErrAssetMissing = errors.New("platformer: asset missing")
)

// SpawnError is returned when pickups cannot be placed within the attempt cap.
type SpawnError struct {
	Placed    int // Pickups placed before giving up
	Requested int
	Attempts  int
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("platformer: placed %d of %d pickups after %d attempts", e.Placed, e.Requested, e.Attempts)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *SpawnError) Unwrap() error {
	return ErrConfiguration
}
