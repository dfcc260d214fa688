package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses it to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Status is the session state of the frame loop.
type Status int

const (
	StatusRunning Status = iota
	StatusTerminated
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Exit codes reported when the loop terminates.
const (
	ExitQuit   = 0 // External quit signal
	ExitCancel = 1 // Escape/cancel signal
)

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score       int     // Pickups collected
	Total       int     // Pickups spawned this session
	HealthRatio float64 // Player health in [0, 1]
	GameOver    bool    // Player died
	Won         bool    // Every pickup collected
	Paused      bool    // Whether the game is paused
	Status      Status  // Running or Terminated
	ExitCode    int     // Valid once Status is StatusTerminated
	Tick        uint64  // Simulated ticks since reset
}

// Terminated reports whether the loop has reached a terminal state.
func (s GameState) Terminated() bool {
	return s.Status == StatusTerminated
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
