package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beatdodge/internal/audio"
	"github.com/vovakirdan/beatdodge/internal/config"
	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
	"github.com/vovakirdan/beatdodge/internal/platform/tui"
	"github.com/vovakirdan/beatdodge/internal/registry"
	"github.com/vovakirdan/beatdodge/internal/storage"
)

var (
	flagSpeed          float64
	flagStart          float64
	flagMute           bool
	flagDebugCollision bool
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the specified level.

Controls:
  Arrows/WASD/HJKL  - Move
  Space, Shift+dir  - Dash
  Esc               - Give up the run
  R                 - Restart (after the run)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - 5 hits, longer invulnerability
  normal  - hit points from the config
  hard    - one hit
  relaxed - hits are not counted, for practice

Examples:
  beatdodge play pulse
  beatdodge play drift --speed 0.8 --start 32
  beatdodge play lattice --mute --difficulty relaxed
  beatdodge play pulse --config ./my-game.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().Float64Var(&flagSpeed, "speed", 1, "Playback speed factor")
	playCmd.Flags().Float64Var(&flagStart, "start", 0, "Beat to start from")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Play without audio on a silent clock")
	playCmd.Flags().BoolVar(&flagDebugCollision, "debug-collision", false, "Tint every cell where the player would be hit")
}

func runPlay(_ *cobra.Command, args []string) {
	levelID := args[0]

	level, err := registry.Get(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'beatdodge list' to see available levels.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDebugCollision {
		cfg.Debug.CollisionOverlay = true
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - the level still plays
		store = nil
	}

	width, height := terminalSize()
	runErr := playLevel(level, cfg, store, tui.Selection{
		LevelID: level.ID,
		Title:   level.Title,
		Speed:   flagSpeed,
		Start:   flagStart,
	}, width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running level: %v\n", runErr)
		os.Exit(1)
	}
}

// playLevel runs one level in the terminal. A track that cannot be played
// falls back to the silent metronome.
func playLevel(level registry.Level, cfg config.GameConfig, store *storage.Store, sel tui.Selection, width, height int) error {
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	// Use time-based seed if not specified
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}
	sessionCfg := cfg.Session()
	sessionCfg.Seed = runtime.Seed

	opts := tui.PlayOptions{
		LevelID:     level.ID,
		Title:       level.Title,
		Loader:      level.Loader,
		Start:       sel.Start,
		Speed:       sel.Speed,
		Overlay:     cfg.Debug.CollisionOverlay,
		OverlayStep: cfg.Debug.OverlayStep,
	}

	if !flagMute {
		music := audio.NewMusic(cfg.AudioOptions(), logger)
		defer music.Close()

		game := engine.NewGame(music, sessionCfg, engine.WithLogger(logger))
		err := tui.Run(game, store, runtime, opts, logger)
		if !errors.Is(err, engine.ErrTrackLoad) {
			return err
		}
		logger.Warn("playing without audio", "level", level.ID, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\nPlaying on a silent clock.\n", err)
	}

	game := engine.NewGame(audio.NewMetronome(nil), sessionCfg, engine.WithLogger(logger))
	return tui.Run(game, store, runtime, opts, logger)
}
