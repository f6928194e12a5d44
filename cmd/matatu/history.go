package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/matatu/internal/games/matatu"
	"github.com/vovakirdan/matatu/internal/platform/tui"
	"github.com/vovakirdan/matatu/internal/registry"
	"github.com/vovakirdan/matatu/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [game]",
	Short: "Show recorded runs",
	Long: `Browse the runs recorded by play and run.

In a terminal this opens an interactive browser; with --plain, or when
stdout is not a terminal, the most recent runs are printed.

Examples:
  matatu history
  matatu history --plain --limit 5
  matatu history --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print instead of opening the browser")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Runs to print with --plain")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs")
}

func runHistory(cmd *cobra.Command, args []string) error {
	gameID := matatu.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (see 'matatu list')", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared run history for %s.\n", gameID)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		return tui.RunHistory(store, width, height)
	}

	return printHistory(store, gameID)
}

func printHistory(store *storage.Store, gameID string) error {
	runs, err := store.RecentRuns(gameID, flagLimit)
	if err != nil {
		return err
	}

	info, _ := registry.Lookup(gameID)
	fmt.Printf("Run History - %s\n", info.Title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Start one with 'matatu play' or 'matatu run'.")
		return nil
	}

	fmt.Printf("  %-5s  %-11s  %-20s  %7s  %5s  %6s  %s\n", "#", "Mode", "Seed", "Ticks", "Stops", "Dodges", "Ended")
	fmt.Printf("  %-5s  %-11s  %-20s  %7s  %5s  %6s  %s\n", "-", "----", "----", "-----", "-----", "------", "-----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-11s  %-20d  %7d  %5d  %6d  %s\n",
			r.ID, r.Mode, r.Seed, r.Stats.Ticks, r.Stats.Pauses, r.Stats.Dodges,
			r.EndedAt.Local().Format("2006-01-02 15:04"))
	}

	totals, err := store.RunTotals(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(tui.FormatTotals(totals))
	return nil
}
