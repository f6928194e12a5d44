package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/matatu/internal/core"
	"github.com/vovakirdan/matatu/internal/games/matatu"
	"github.com/vovakirdan/matatu/internal/platform/headless"
	"github.com/vovakirdan/matatu/internal/registry"
	"github.com/vovakirdan/matatu/internal/storage"
)

var (
	flagTicks       int
	flagResumeAfter int
	flagNoSave      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation without a terminal",
	Long: `Step the simulation as fast as possible and print a summary.

Crossings are answered automatically after --resume-after frozen ticks;
pass -1 to stay stopped at the first one. The same seed and flags always
give the same result.

Examples:
  matatu run --seed 7
  matatu run --ticks 9000 --resume-after 0 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 1800, "Number of ticks to simulate")
	runCmd.Flags().IntVar(&flagResumeAfter, "resume-after", 30, "Frozen ticks before continuing past a crossing (-1 = never)")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in history")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("")
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(matatu.GameID)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: tickRate(cfg),
		Seed:     seed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	state, runErr := headless.Run(ctx, game, runtime, headless.Options{
		Ticks:       flagTicks,
		ResumeAfter: flagResumeAfter,
		Logger:      logger,
	})
	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	if runErr != nil {
		logger.Warn("run interrupted", "ticks", state.Stats.Ticks)
	}

	printSummary(seed, state)

	if !flagNoSave && state.Stats.Ticks > 0 {
		saveRun(logger, game.ID(), seed, state.Stats)
	}
	return nil
}

func printSummary(seed int64, state core.GameState) {
	s := state.Stats
	fmt.Printf("Seed:              %d\n", seed)
	fmt.Printf("Ticks:             %d (%d stopped)\n", s.Ticks, s.PausedTicks)
	fmt.Printf("Crossings stopped: %d\n", s.Pauses)
	fmt.Printf("Lane changes:      %d\n", s.Dodges)
	fmt.Printf("Obstacles spawned: %d\n", s.ObstaclesSpawned)
	fmt.Printf("Crossings spawned: %d\n", s.CrossingsSpawned)
	fmt.Printf("Spawns ignored:    %d\n", s.SpawnsIgnored)
	if state.Paused {
		fmt.Println("Ended stopped at a crossing.")
	}
}

func saveRun(logger *log.Logger, gameID string, seed int64, stats core.RunStats) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		return
	}
	defer store.Close()

	if _, err := store.SaveRun(storage.RunRecord{
		GameID: gameID,
		Mode:   storage.ModeHeadless,
		Seed:   seed,
		Stats:  stats,
	}); err != nil {
		logger.Warn("could not save run", "error", err)
	}
}
