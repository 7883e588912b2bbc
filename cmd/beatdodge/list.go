package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beatdodge/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows every built-in level and every level file found in --levels-dir.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	all := registry.List()

	if len(all) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, l := range all {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxTitleLen = max(maxTitleLen, len(l.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Source")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------")

	for _, l := range all {
		title := l.Title
		if !l.Finished {
			title += " *"
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, l.ID, maxTitleLen, title, l.Source)
	}

	fmt.Println()
	fmt.Println("* choreography does not cover the whole track yet")
	fmt.Println("Run 'beatdodge play <id>' to play a level.")
}
