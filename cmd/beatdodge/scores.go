package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beatdodge/internal/registry"
	"github.com/vovakirdan/beatdodge/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show results for a level",
	Long: `Display the best runs of the specified level. Cleared runs rank
first, then hits left, then how far the run got. Without a level, shows a
summary of every level played.

Examples:
  beatdodge scores
  beatdodge scores pulse
  beatdodge scores pulse --limit 20
  beatdodge scores pulse --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all results of the level")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		printSummary(store)
		return
	}

	levelID := args[0]
	level, err := registry.Get(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'beatdodge list' to see available levels.")
		os.Exit(1)
	}

	if flagScoresClear {
		if err := store.ClearResults(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared results for %s.\n", level.Title)
		return
	}

	results, err := store.TopResults(levelID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Results - %s\n", level.Title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'beatdodge play %s' to set the first result!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %-5s  %s\n", "Rank", "Result", "Hits", "Beat", "Speed", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %-5s  %s\n", "----", "------", "----", "----", "-----", "----")

	for i, r := range results {
		outcome := "fail"
		if r.Cleared {
			outcome = "clear"
		}
		fmt.Printf("  %-4d  %-6s  %-5s  %-6.0f  x%-4.1f  %s\n",
			i+1, outcome, fmt.Sprintf("%d/%d", r.HitsLeft, r.MaxHits), r.ReachedBeat, r.Speed,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.LevelStats(levelID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Clears: %d (%.0f%%)  Furthest beat: %.0f\n",
			st.Runs, st.Clears, st.ClearRate()*100, st.FurthestBeat)
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.AllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-12s  %-5s  %-6s  %-9s  %s\n", "Level", "Runs", "Clears", "Best hits", "Last played")
	fmt.Printf("  %-12s  %-5s  %-6s  %-9s  %s\n", "-----", "----", "------", "---------", "-----------")
	for _, l := range registry.List() {
		st, ok := stats[l.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %-5d  %-6d  %-9d  %s\n",
			l.ID, st.Runs, st.Clears, st.BestHitsLeft, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
