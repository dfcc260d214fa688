package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// footerRows is the number of terminal rows used by the help footer.
const footerRows = 1

// Game is the contract between the terminal host and a game core.
type Game interface {
	ID() string
	Title() string
	Step(core.InputFrame) core.StepResult
	Render(*core.Screen)
	State() core.GameState
}

// Reload connects a source of config change notifications to the session.
// Apply is called on the Bubble Tea goroutine for each path received.
type Reload struct {
	Events <-chan string
	Apply  func(path string) error
}

// ReloadMsg is sent when a watched config file changed.
type ReloadMsg struct {
	Path string
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game     Game
	reload   *Reload
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	input    *InputState
	logger   *log.Logger
	state    core.GameState
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
// The game must already be reset with cfg.
func NewModel(game Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-footerRows)),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  NewInputState(holdWindow(cfg.TickRate)),
		logger: logger,
		state:  game.State(),
	}
}

// holdWindow is how long a key press counts as held: a quarter second.
func holdWindow(tickRate int) int {
	return max(1, tickRate/4)
}

// WithReload returns a copy of the model that applies config reloads.
func (m Model) WithReload(r Reload) Model {
	m.reload = &r
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	if m.reload != nil {
		return tea.Batch(tickCmd(m.config.TickRate), m.waitForReload())
	}
	return tickCmd(m.config.TickRate)
}

// waitForReload blocks on the next change notification.
// A closed channel ends the wait.
func (m Model) waitForReload() tea.Cmd {
	events := m.reload.Events
	return func() tea.Msg {
		path, ok := <-events
		if !ok {
			return nil
		}
		return ReloadMsg{Path: path}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ReloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey records key presses. Quit and cancel reach the game on the
// next tick so the loop reports its own exit code.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	m.input.Press(m.keys.Actions(msg)...)
	return m, nil
}

// handleResize processes window resize events. The world is scaled to the
// screen, so the session carries on.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-footerRows))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.input.Next())
	m.state = result.State

	for _, ev := range result.Events {
		m.logger.Debug("event", "kind", ev.Kind, "tick", ev.Tick, "score", ev.Score, "health", ev.Health)
	}

	if m.state.Terminated() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// handleReload applies a changed config. A config that fails to load is
// logged and the session keeps running.
func (m Model) handleReload(msg ReloadMsg) (tea.Model, tea.Cmd) {
	if m.reload == nil {
		return m, nil
	}
	if err := m.reload.Apply(msg.Path); err != nil {
		m.logger.Warn("config reload failed", "path", msg.Path, "err", err)
	} else {
		m.input.Reset()
		m.state = m.game.State()
		m.logger.Info("reload applied", "path", msg.Path)
	}
	return m, m.waitForReload()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderFrame(m.screen, m.help.View(m.keys))
}

// State returns the last state reported by the game.
func (m Model) State() core.GameState {
	return m.state
}

// Run starts the Bubble Tea program and blocks until the session ends.
// It returns the session's exit code. A nil reload disables config reloads.
func Run(game Game, cfg core.RuntimeConfig, logger *log.Logger, reload *Reload) (int, error) {
	model := NewModel(game, cfg, logger)
	if reload != nil {
		model = model.WithReload(*reload)
	}
	model.logger.Info("starting session", "game", game.Title(), "fps", model.config.TickRate, "seed", cfg.Seed)

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return core.ExitCancel, fmt.Errorf("tui: %w", err)
	}

	m, ok := final.(Model)
	if !ok || !m.state.Terminated() {
		return core.ExitQuit, nil
	}
	return m.state.ExitCode, nil
}
