package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMap defines the key bindings for a platformer session.
// Terminals report shifted letters and shift+arrows as distinct keys,
// so sprinting has its own bindings.
type KeyMap struct {
	Left        key.Binding
	Right       key.Binding
	SprintLeft  key.Binding
	SprintRight key.Binding
	Jump        key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Screenshot  key.Binding
	Quit        key.Binding
	Cancel      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.SprintRight, k.Jump, k.Pause, k.Restart, k.Quit, k.Cancel}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SprintLeft, k.SprintRight, k.Jump},
		{k.Pause, k.Restart, k.Screenshot},
		{k.Quit, k.Cancel},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		SprintLeft: key.NewBinding(
			key.WithKeys("shift+left", "A"),
			key.WithHelp("S-←/A", "sprint left"),
		),
		SprintRight: key.NewBinding(
			key.WithKeys("shift+right", "D"),
			key.WithHelp("S-→/D", "sprint"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/w", "jump"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Actions translates a key message to game actions.
// Returns nil for keys that are not bound to an action.
func (k KeyMap) Actions(msg tea.KeyMsg) []core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return []core.Action{core.ActionQuit}
	case key.Matches(msg, k.Cancel):
		return []core.Action{core.ActionCancel}
	case key.Matches(msg, k.SprintLeft):
		return []core.Action{core.ActionLeft, core.ActionSprint}
	case key.Matches(msg, k.SprintRight):
		return []core.Action{core.ActionRight, core.ActionSprint}
	case key.Matches(msg, k.Left):
		return []core.Action{core.ActionLeft}
	case key.Matches(msg, k.Right):
		return []core.Action{core.ActionRight}
	case key.Matches(msg, k.Jump):
		return []core.Action{core.ActionJump}
	case key.Matches(msg, k.Pause):
		return []core.Action{core.ActionPause}
	case key.Matches(msg, k.Restart):
		return []core.Action{core.ActionRestart}
	}
	return nil
}

// InputState turns discrete key presses into the held-key snapshot the game
// samples each tick. Terminals only report presses, so a movement key counts
// as held for a window of ticks after its last press; auto-repeat keeps it
// alive. Pause, restart, quit and cancel are delivered exactly once.
type InputState struct {
	window  uint64
	tick    uint64
	held    map[core.Action]uint64 // Tick at which the hold expires
	pending core.InputFrame
}

// NewInputState creates an input state with the given hold window in ticks.
func NewInputState(window int) *InputState {
	if window < 1 {
		window = 1
	}
	return &InputState{
		window:  uint64(window), //#nosec G115 -- window is positive
		held:    make(map[core.Action]uint64),
		pending: core.NewInputFrame(),
	}
}

// Press records actions from one key press.
// A direction releases the opposite direction, and a direction pressed
// without sprint releases sprint.
func (s *InputState) Press(actions ...core.Action) {
	direction, sprint := false, false
	for _, a := range actions {
		switch a {
		case core.ActionLeft:
			direction = true
			delete(s.held, core.ActionRight)
			s.hold(a)
		case core.ActionRight:
			direction = true
			delete(s.held, core.ActionLeft)
			s.hold(a)
		case core.ActionSprint:
			sprint = true
			s.hold(a)
		case core.ActionJump:
			s.hold(a)
		case core.ActionNone:
		default:
			s.pending.Set(a)
		}
	}
	if direction && !sprint {
		delete(s.held, core.ActionSprint)
	}
}

func (s *InputState) hold(a core.Action) {
	s.held[a] = s.tick + s.window
}

// Next returns the input frame for the coming tick and advances the clock.
func (s *InputState) Next() core.InputFrame {
	frame := s.pending
	s.pending = core.NewInputFrame()

	for a, until := range s.held {
		if until > s.tick {
			frame.Set(a)
		} else {
			delete(s.held, a)
		}
	}

	s.tick++
	return frame
}

// Reset releases every key.
func (s *InputState) Reset() {
	s.held = make(map[core.Action]uint64)
	s.pending = core.NewInputFrame()
}
