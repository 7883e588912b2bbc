package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/beatdodge/internal/config"
	"github.com/vovakirdan/beatdodge/internal/registry"
	"github.com/vovakirdan/beatdodge/internal/storage"
)

// Menu adjustment steps and bounds.
const (
	speedStep = 0.1
	minSpeed  = 0.5
	maxSpeed  = 2.0
	startStep = 8.0
)

// Selection is what the player picked in the menu.
type Selection struct {
	LevelID    string
	Title      string
	Speed      float64
	Start      float64
	Difficulty config.DifficultyPreset
}

// MenuModel is the Bubble Tea model for the level picker menu.
type MenuModel struct {
	items          []registry.LevelInfo
	cursor         int
	speed          float64
	start          float64
	difficulty     int
	width          int
	height         int
	store          *storage.Store
	keyMapper      *KeyMapper
	quitting       bool
	selected       *Selection
	openScoreboard bool // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The previous selection, if any,
// restores the cursor and adjustments.
func NewMenuModel(store *storage.Store, width, height int, prev *Selection) MenuModel {
	m := MenuModel{
		items:     registry.List(),
		speed:     1,
		width:     width,
		height:    height,
		store:     store,
		keyMapper: NewKeyMapper(),
	}
	m.difficulty = presetIndex(config.DifficultyNormal)

	if prev != nil {
		m.speed = prev.Speed
		m.start = prev.Start
		if prev.Difficulty != "" {
			m.difficulty = presetIndex(prev.Difficulty)
		}
		for i, it := range m.items {
			if it.ID == prev.LevelID {
				m.cursor = i
			}
		}
	}
	return m
}

func presetIndex(p config.DifficultyPreset) int {
	for i, q := range config.Presets() {
		if q == p {
			return i
		}
	}
	return 0
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.speed = roundTenth(math.Max(minSpeed, m.speed-speedStep))

	case MenuActionRight:
		m.speed = roundTenth(math.Min(maxSpeed, m.speed+speedStep))

	case MenuActionStartBack:
		m.start = math.Max(0, m.start-startStep)

	case MenuActionStartForward:
		m.start += startStep

	case MenuActionDifficulty:
		m.difficulty = (m.difficulty + 1) % len(config.Presets())

	case MenuActionSelect:
		if len(m.items) > 0 {
			item := m.items[m.cursor]
			m.selected = &Selection{
				LevelID:    item.ID,
				Title:      item.Title,
				Speed:      m.speed,
				Start:      m.start,
				Difficulty: config.Presets()[m.difficulty],
			}
			return m, tea.Quit // Exit menu to start level
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff0080"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  B E A T D O D G E  "), m.width, 21))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width, 0))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No levels registered.", m.width, 0))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + item.Title
		if !item.Finished {
			line += " (wip)"
		}
		if best := m.bestLabel(item.ID); best != "" {
			line += "  " + best
		}
		b.WriteString(centerText(line, m.width, 0))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	preset := config.Presets()[m.difficulty]
	settings := fmt.Sprintf("Speed x%.1f  |  Start beat %.0f  |  Difficulty %s (%s)",
		m.speed, m.start, preset, preset.Describe())
	b.WriteString(centerText(settings, m.width, 0))
	b.WriteString("\n\n")

	controls := "Up/Down: Level  |  Left/Right: Speed  |  [ ]: Start  |  F: Difficulty  |  Enter: Play  |  Tab: Results  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width, 0)))
	b.WriteString("\n")

	return b.String()
}

// bestLabel summarises the best stored run of a level.
func (m MenuModel) bestLabel(levelID string) string {
	if m.store == nil {
		return ""
	}
	best, ok, err := m.store.BestResult(levelID)
	if err != nil || !ok {
		return ""
	}
	if best.Cleared {
		return fmt.Sprintf("[cleared %d/%d]", best.HitsLeft, best.MaxHits)
	}
	return fmt.Sprintf("[best beat %.0f]", best.ReachedBeat)
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Size returns the last known terminal size.
func (m MenuModel) Size() (int, int) {
	return m.width, m.height
}

// centerText centers text within given width. Styled text passes its
// visible length; zero means the text is plain.
func centerText(text string, width, visible int) string {
	if visible == 0 {
		visible = len([]rune(text))
	}
	if visible >= width {
		return text
	}
	padding := (width - visible) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       *Selection
	Width, Height   int
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, width, height int, prev *Selection) (MenuResult, error) {
	model := NewMenuModel(store, width, height, prev)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}

	result := MenuResult{}
	result.Width, result.Height = m.Size()

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.Selection = m.Selected()
	}
	return result, nil
}
