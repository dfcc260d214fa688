package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platform/headless"
)

var (
	flagTicks     uint64
	flagScript    string
	flagRealtime  bool
	flagDump      bool
	flagStopOnEnd bool
	flagWidth     int
	flagHeight    int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session",
	Long: `Run a session without a terminal UI and print a summary.

Input comes from a YAML script (idle when none is given). The run ends
with a quit after --ticks ticks, on SIGINT, or, with --stop-on-end, once
the player dies or collects every coin.

Script format:
  loop: false
  steps:
    - ticks: 40
      keys: [right]
    - keys: [right, jump]   # ticks defaults to 1
    - ticks: 20             # no keys = idle

Examples:
  platformer sim --seed 7 --ticks 600
  platformer sim --script ./run.yaml --dump
  platformer sim --realtime --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagTicks, "ticks", 600, "Ticks to run before quitting (0 = until interrupted)")
	simCmd.Flags().StringVar(&flagScript, "script", "", "Path to an input script YAML")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks at --fps")
	simCmd.Flags().BoolVar(&flagDump, "dump", false, "Print the final frame as text")
	simCmd.Flags().BoolVar(&flagStopOnEnd, "stop-on-end", true, "Quit once the player dies or wins")
	simCmd.Flags().IntVar(&flagWidth, "width", 80, "Screen width for --dump")
	simCmd.Flags().IntVar(&flagHeight, "height", 24, "Screen height for --dump")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rt := runtimeConfig(flagWidth, flagHeight)
	game, err := newGame(rt, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	var input headless.InputSource = headless.Idle
	if flagScript != "" {
		script, err := headless.LoadScript(flagScript)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			closeLog()
			os.Exit(1)
		}
		input = script
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := headless.NewRunner(game, input, headless.Options{
		MaxTicks:  flagTicks,
		TickRate:  flagFPS,
		Realtime:  flagRealtime,
		StopOnEnd: flagStopOnEnd,
	}, logger)
	res := runner.Run(ctx)

	if flagDump {
		screen := core.NewScreen(rt.ScreenW, rt.ScreenH)
		game.Render(screen)
		fmt.Println(screen.String())
	}

	s := res.State
	fmt.Printf("seed=%d ticks=%d score=%d/%d health=%.0f%% game_over=%t won=%t exit=%d\n",
		rt.Seed, s.Tick, s.Score, s.Total, s.HealthRatio*100, s.GameOver, s.Won, s.ExitCode)

	stop()
	closeLog()
	os.Exit(s.ExitCode)
}
