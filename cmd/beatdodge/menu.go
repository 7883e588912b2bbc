package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beatdodge/internal/config"
	"github.com/vovakirdan/beatdodge/internal/platform/tui"
	"github.com/vovakirdan/beatdodge/internal/registry"
	"github.com/vovakirdan/beatdodge/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start in interactive menu mode.

After a run ends, press Esc to return to the menu and play again.

Controls:
  Up/Down/j/k   - Pick a level
  Left/Right    - Playback speed
  [ ]           - Start beat
  F             - Difficulty
  Enter/Space   - Play
  Tab           - Results board
  Q             - Quit

Examples:
  beatdodge menu
  beatdodge menu --mute
  beatdodge menu --db ./results.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Play without audio on a silent clock")
}

func runMenu(_ *cobra.Command, _ []string) {
	base, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	width, height := terminalSize()
	last := &tui.Selection{Speed: 1, Difficulty: preset}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, width, height, last)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		width, height = menuResult.Width, menuResult.Height

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, width, height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		sel := menuResult.Selection
		last = sel
		level, err := registry.Get(sel.LevelID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		cfg := base
		config.ApplyPreset(&cfg, sel.Difficulty)
		if err := playLevel(level, cfg, store, *sel, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running level: %v\n", err)
		}

		// Loop back to menu
	}

	if store != nil {
		store.Close()
	}
}
