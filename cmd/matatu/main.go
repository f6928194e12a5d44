// matatu drives a self-driving minibus down a four-lane road in the terminal.
//
// Usage:
//
//	matatu play              - Watch the bus, press SPACE at crossings
//	matatu run               - Run a deterministic simulation without a terminal
//	matatu history           - Browse recorded runs
//	matatu config            - Print the effective configuration
//	matatu list              - List registered simulations
//
// Global flags:
//
//	--fps <rate>         - Tick rate (default: the configured rate)
//	--seed <value>       - RNG seed for reproducible runs
//	--config <path>      - Custom configuration YAML
//	--db <path>          - Run history database (default: ~/.matatu/runs.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/matatu/internal/config"
	"github.com/vovakirdan/matatu/internal/games/matatu"
	"github.com/vovakirdan/matatu/internal/logging"
)

// defaultTUILogFile receives logs during play so they never draw over the screen.
const defaultTUILogFile = "~/.matatu/matatu.log"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "matatu",
	Short: "Matatu Simulator - a self-driving minibus in your terminal",
	Long: `Matatu Simulator drives a minibus down a four-lane road. The autopilot
swaps lanes to avoid traffic and stops at every zebra crossing until you
press SPACE.

Available commands:
  play     - Interactive run
  run      - Headless deterministic run
  history  - Recorded runs
  config   - Effective configuration
  list     - Registered simulations

Examples:
  matatu play
  matatu play --seed 42
  matatu run --ticks 3000 --resume-after 30
  matatu history --plain`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = configured world.tick_rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.matatu/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and makes the simulation use it.
func loadConfig() (config.MatatuConfig, error) {
	cfg, err := config.LoadMatatu(flagConfig)
	if err != nil {
		return cfg, err
	}
	matatu.UseConfig(cfg)
	return cfg, nil
}

// tickRate resolves --fps against the configured rate.
func tickRate(cfg config.MatatuConfig) int {
	if flagFPS > 0 {
		return flagFPS
	}
	return cfg.World.TickRate
}

// newLogger builds the logger for a command. fallback is used when
// --log-file is not set; an empty fallback means stderr.
// The returned closer must be called when the command ends.
func newLogger(fallback string) (*log.Logger, func(), error) {
	path := flagLogFile
	if path == "" {
		path = fallback
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	if path != "" {
		f, err := logging.OpenFile(expandHome(path))
		if err != nil {
			return nil, nil, err
		}
		w = f
		closer = func() { f.Close() }
	}

	logger, err := logging.New(w, flagLogLevel)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return logger, closer, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
