package core

// EventKind identifies something observable that happened during a tick.
type EventKind int

const (
	EventJump         EventKind = iota // Player left the ground by jumping
	EventPickup                        // Player collected a pickup
	EventDeath                         // Player health reached zero (fires once)
	EventAllCollected                  // Last pickup collected (fires once)
	EventTerminated                    // Loop left the running state
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventPickup:
		return "pickup"
	case EventDeath:
		return "death"
	case EventAllCollected:
		return "all-collected"
	case EventTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Event is emitted by Step for the host layer to react to.
type Event struct {
	Kind     EventKind
	Tick     uint64
	Score    int     // Score after the event
	Health   float64 // Player health after the event
	ExitCode int     // Set for EventTerminated
}
