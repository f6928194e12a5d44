package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/matatu/internal/core"
	"github.com/vovakirdan/matatu/internal/games/matatu"
	"github.com/vovakirdan/matatu/internal/platform/tui"
	"github.com/vovakirdan/matatu/internal/registry"
	"github.com/vovakirdan/matatu/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Watch the bus drive",
	Long: `Start an interactive run.

The autopilot steers on its own. At every zebra crossing the road stops
until you let the bus continue.

Controls:
  Space      - Continue past a crossing
  R          - Restart
  Q/Ctrl+C   - Quit

Logs go to ~/.matatu/matatu.log unless --log-file is given.

Examples:
  matatu play
  matatu play --seed 42 --fps 60
  matatu play --config ./my-road.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(defaultTUILogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game, err := registry.Create(matatu.GameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Runs still work without history
		logger.Warn("could not open run history", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate(cfg),
		Seed:     flagSeed,
	}
	if err := tui.Run(game, store, logger, runtime); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}
