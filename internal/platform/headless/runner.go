// Package headless drives a game core without a terminal.
// It is used for scripted runs, soak tests and CI replays.
package headless

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Game is the part of the game contract the runner needs.
type Game interface {
	Step(core.InputFrame) core.StepResult
	State() core.GameState
}

// InputSource supplies the input frame for a tick.
type InputSource interface {
	Frame(tick uint64) core.InputFrame
}

// InputFunc adapts a function to an InputSource.
type InputFunc func(tick uint64) core.InputFrame

// Frame calls f(tick).
func (f InputFunc) Frame(tick uint64) core.InputFrame {
	return f(tick)
}

// Idle is an input source that never presses anything.
var Idle InputSource = InputFunc(func(uint64) core.InputFrame {
	return core.NewInputFrame()
})

// Options controls a headless run.
type Options struct {
	MaxTicks  uint64 // Quit is injected once this many ticks ran (0 = no limit)
	TickRate  int    // Ticks per second when Realtime is set (default 60)
	Realtime  bool   // Pace ticks with a wall clock
	StopOnEnd bool   // Quit once the player died or collected everything
}

// Result summarizes a finished run.
type Result struct {
	State  core.GameState
	Ticks  uint64 // Number of Step calls
	Events []core.Event
}

// Runner steps a game until it terminates.
type Runner struct {
	game   Game
	input  InputSource
	opts   Options
	logger *log.Logger
}

// NewRunner creates a runner. A nil input source means Idle.
func NewRunner(game Game, input InputSource, opts Options, logger *log.Logger) *Runner {
	if input == nil {
		input = Idle
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		game:   game,
		input:  input,
		opts:   opts,
		logger: logger,
	}
}

// Run steps the game until it reports termination.
// Cancelling ctx injects a quit signal at the next tick boundary, so the
// session still ends through the game's own loop with exit code 0.
func (r *Runner) Run(ctx context.Context) Result {
	var tick <-chan time.Time
	if r.opts.Realtime {
		ticker := time.NewTicker(time.Second / time.Duration(r.opts.TickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	r.logger.Info("run started",
		"max_ticks", r.opts.MaxTicks,
		"realtime", r.opts.Realtime,
		"fps", r.opts.TickRate,
	)

	var res Result
	state := r.game.State()
	for !state.Terminated() {
		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}

		in := r.input.Frame(res.Ticks).Clone()
		if reason := r.stopReason(ctx, res.Ticks, state); reason != "" {
			r.logger.Debug("injecting quit", "reason", reason, "tick", res.Ticks)
			in.Set(core.ActionQuit)
		}

		step := r.game.Step(in)
		state = step.State
		res.Events = append(res.Events, step.Events...)
		res.Ticks++
	}

	res.State = state
	r.logger.Info("run finished",
		"ticks", res.Ticks,
		"score", state.Score,
		"total", state.Total,
		"game_over", state.GameOver,
		"won", state.Won,
		"exit", state.ExitCode,
	)
	return res
}

// stopReason reports why the runner should end the session, if it should.
func (r *Runner) stopReason(ctx context.Context, ticks uint64, state core.GameState) string {
	switch {
	case ctx.Err() != nil:
		return "context"
	case r.opts.MaxTicks > 0 && ticks >= r.opts.MaxTicks:
		return "max ticks"
	case r.opts.StopOnEnd && (state.GameOver || state.Won):
		return "session over"
	}
	return ""
}
