package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start an interactive session.

Controls:
  ←/→ or A/D             - Walk
  Shift+←/→ or Shift+A/D - Sprint
  Space/Up/W             - Jump
  P                      - Pause
  R                      - Restart
  Ctrl+S                 - Save a screenshot
  Q/Ctrl+C               - Quit (exit code 0)
  Esc                    - Cancel (exit code 1)

Difficulty options:
  easy   - Half contact damage, slower enemies, fewer coins
  normal - The config as loaded
  hard   - Double contact damage, faster enemies, more coins

Examples:
  platformer play
  platformer play --difficulty easy
  platformer play --seed 42 --log-file ./platformer.log --log-level debug
  platformer play --config ./my-level.yaml
  platformer play --config ./my-level.yaml --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config and restart the session when the file changes")
}

func runPlay(_ *cobra.Command, _ []string) {
	// The alt screen owns the terminal, so logs are dropped unless --log-file is set
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rt := runtimeConfig(width, height)

	game, err := newGame(rt, logger)
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var (
		reload  *tui.Reload
		watcher *config.Watcher
	)
	if flagWatch {
		watcher, err = watchConfig(logger)
		if err != nil {
			closeLog()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		reload = &tui.Reload{
			Events: watcher.Events,
			Apply: func(string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return game.Reconfigure(cfg)
			},
		}
	}

	code, runErr := tui.Run(game, rt, logger, reload)
	if watcher != nil {
		_ = watcher.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	os.Exit(code)
}

// watchConfig starts watching the --config file. Watch errors are logged.
func watchConfig(logger *log.Logger) (*config.Watcher, error) {
	if flagConfig == "" {
		return nil, errors.New("--watch needs --config")
	}
	watcher, err := config.NewWatcher(flagConfig)
	if err != nil {
		return nil, err
	}
	go func() {
		for err := range watcher.Errors {
			logger.Warn("config watch", "err", err)
		}
	}()
	logger.Info("watching config", "path", flagConfig)
	return watcher, nil
}
