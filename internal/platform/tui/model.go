package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
	"github.com/vovakirdan/beatdodge/internal/storage"
)

// maxFrameDelta caps the wall-clock step after a stall so the player does
// not teleport.
const maxFrameDelta = 0.1

// PlayOptions selects what a Model plays and how.
type PlayOptions struct {
	LevelID string
	Title   string
	Loader  engine.Loader

	Start float64 // Beat to start from
	Speed float64 // Playback speed factor

	Overlay     bool // Draw the collision overlay
	OverlayStep int
}

// Model is the Bubble Tea model that plays one level.
type Model struct {
	game   *engine.Game
	opts   PlayOptions
	config core.RuntimeConfig
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	keys   *KeyMapper
	input  core.InputFrame
	state  core.GameState

	lastTick    time.Time
	quitting    bool
	backToMenu  bool
	standalone  bool // Back quits the program instead of returning to a menu
	resultSaved bool // Whether the result has been saved for the current run
}

// NewModel loads the level into game and returns a model playing it.
func NewModel(game *engine.Game, store *storage.Store, cfg core.RuntimeConfig, opts PlayOptions, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Title == "" {
		opts.Title = opts.LevelID
	}

	m := Model{
		game:   game,
		opts:   opts,
		config: cfg,
		screen: core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:  store,
		logger: logger,
		keys:   NewKeyMapper(),
		input:  core.NewInputFrame(),
	}
	if err := m.load(); err != nil {
		return m, err
	}
	return m, nil
}

// playHeight reserves the bottom line for the status bar.
func playHeight(h int) int {
	return max(h-1, 1)
}

func (m *Model) load() error {
	if err := m.game.Load(m.opts.Loader, m.opts.Start, m.opts.Speed); err != nil {
		return fmt.Errorf("load level %s: %w", m.opts.LevelID, err)
	}
	if s := m.game.Session(); s != nil {
		m.screen.SetWorld(s.World())
	}
	m.state = core.GameState{}
	m.resultSaved = false
	m.lastTick = time.Time{}
	m.keys.Release()
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.Press(msg, time.Now())
	if isQuit {
		m.game.Stop()
		m.quitting = true
		return m, tea.Quit
	}

	if !m.state.Finished {
		return m, nil
	}

	// After the run: restart or leave
	switch action {
	case core.ActionRestart:
		if err := m.load(); err != nil {
			m.logger.Error("restart failed", "level", m.opts.LevelID, "error", err)
			return m, nil
		}
		return m, tickCmd(m.config.TickRate)
	case core.ActionBack, core.ActionConfirm:
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleTick advances the game by the wall-clock time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.state.Finished {
		return m, nil
	}

	dt := m.config.FrameDelta()
	if !m.lastTick.IsZero() {
		dt = core.ClampF(now.Sub(m.lastTick).Seconds(), 0, maxFrameDelta)
	}
	m.lastTick = now

	m.keys.Frame(now, &m.input)
	res := m.game.Frame(dt, m.input)
	m.state = res.State

	if m.state.Finished {
		m.saveResult()
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the finished run once. Aborted runs are not recorded.
func (m *Model) saveResult() {
	if m.resultSaved || m.state.Aborted {
		return
	}
	m.resultSaved = true
	if m.store == nil {
		return
	}

	run, err := m.game.Result()
	if err != nil {
		return
	}
	if _, err := m.store.SaveResult(storage.NewResult(m.opts.LevelID, run)); err != nil {
		m.logger.Error("could not save result", "level", m.opts.LevelID, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".beatdodge", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.opts.LevelID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
	}
}

func (m *Model) draw() {
	m.game.Draw(m.screen)
	if m.opts.Overlay {
		if s := m.game.Session(); s != nil {
			s.DrawCollisionOverlay(m.screen, m.opts.OverlayStep)
		}
	}
	if m.state.Finished {
		m.drawSummary()
	}
}

func (m *Model) drawSummary() {
	headline := "GAME OVER"
	switch {
	case m.state.Aborted:
		headline = "ABORTED"
	case m.state.Cleared:
		headline = "CLEARED"
	}
	if m.state.GameOver() && !m.state.Aborted {
		headline += fmt.Sprintf(" at beat %.0f", m.state.Beat)
	}
	lines := []string{
		headline,
		fmt.Sprintf("hits left %d/%d  reached beat %.0f", m.state.HitsLeft, m.state.MaxHits, m.state.Beat),
		"",
		"R: Retry  |  Esc: Back  |  Q: Quit",
	}

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	mid := m.screen.Height() / 2
	panel := core.NewRect((m.screen.Width()-width)/2-2, mid-2, width+4, len(lines)+2)
	m.screen.DrawRect(panel, ' ')
	m.screen.DrawBox(panel)
	for i, l := range lines {
		m.screen.DrawTextCentered(panel.Y+1+i, l)
	}
}

// statusLine describes the run below the playfield.
func (m Model) statusLine() string {
	progress := fmt.Sprintf("%.0f", m.state.Beat)
	if m.state.Length > 0 {
		progress = fmt.Sprintf("%.0f/%.0f", m.state.Beat, m.state.Length)
	}
	line := fmt.Sprintf(" %s  beat %s  hits %d/%d  x%.1f", m.opts.Title, progress, m.state.HitsLeft, m.state.MaxHits, m.opts.Speed)
	if m.opts.Overlay {
		line += "  [collision]"
	}
	return line
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

// State returns the latest game state.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one level in the terminal until the player quits or leaves the
// finished run.
func Run(game *engine.Game, store *storage.Store, cfg core.RuntimeConfig, opts PlayOptions, logger *log.Logger) error {
	model, err := NewModel(game, store, cfg, opts, logger)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	game.Stop()
	return err
}
