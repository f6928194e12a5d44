package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/matatu/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered simulations",
	Long:  `Shows every simulation registered in this binary.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No simulations available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}
}
