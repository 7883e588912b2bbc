// beatdodge is a rhythm bullet-hell game played in the terminal.
//
// Usage:
//
//	beatdodge list                  - List available levels
//	beatdodge play <level>          - Play a level
//	beatdodge menu                  - Pick levels interactively
//	beatdodge serve                 - Start SSH server for remote play
//	beatdodge scores <level>        - Show results for a level
//	beatdodge levels validate <dir> - Check level files
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible hazards
//	--db <path>          - Set database path (default: ~/.beatdodge/results.db)
//	--config <path>      - Game config YAML
//	--difficulty <name>  - easy, normal, hard or relaxed
//	--levels-dir <path>  - Extra YAML levels (default: ./levels)
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/beatdodge/internal/config"
	"github.com/vovakirdan/beatdodge/internal/levels"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogFile    string
	flagLogLevel   string
)

// logger is set up before any command runs.
var logger = log.New(io.Discard)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beatdodge",
	Short: "beatdodge - dodge to the beat in your terminal",
	Long: `beatdodge is a rhythm bullet-hell game: hazards are choreographed to
the music and you survive the song by dodging them.

Available commands:
  list     - Show all available levels
  play     - Play a specific level directly
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View results for a level
  levels   - Work with level files

Examples:
  beatdodge list
  beatdodge play pulse
  beatdodge play drift --mute --speed 0.8
  beatdodge menu
  beatdodge serve --ssh :2222
  beatdodge scores pulse`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.beatdodge/results.db", "Path to results database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, relaxed")
	pf.StringVar(&flagLevelsDir, "levels-dir", "levels", "Directory with extra YAML levels")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}

// setup configures logging and registers level files.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	// The server logs to stderr.
	var w io.Writer = io.Discard
	if cmd == serveCmd {
		w = os.Stderr
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
	}
	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "beatdodge",
		Level:           level,
	})
	log.SetDefault(logger)

	// levels validate reads its own directory
	if cmd.Parent() == levelsCmd {
		return nil
	}
	n, problems, err := levels.RegisterDir(flagLevelsDir)
	if err != nil {
		return fmt.Errorf("cannot read levels: %w", err)
	}
	for _, p := range problems {
		logger.Warn("skipping level file", "path", p.Path, "error", p.Err)
	}
	if n > 0 {
		logger.Info("registered level files", "dir", flagLevelsDir, "count", n)
	}
	return nil
}

// loadConfig loads the game config with the difficulty preset applied.
func loadConfig() (config.GameConfig, error) {
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return config.GameConfig{}, err
	}
	return config.LoadWithPreset(flagConfig, preset)
}

// terminalSize returns the terminal size, or 80x24 if unknown.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
