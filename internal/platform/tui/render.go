package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/beatdodge/internal/core"
)

// styleKey identifies a run of cells sharing colors.
type styleKey struct {
	fg, bg string
}

// styleCache avoids rebuilding lipgloss styles for colors seen before.
type styleCache map[styleKey]lipgloss.Style

func (c styleCache) get(k styleKey) lipgloss.Style {
	if s, ok := c[k]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(k.fg)).
		Background(lipgloss.Color(k.bg))
	c[k] = s
	return s
}

func cellKey(c core.Cell) styleKey {
	return styleKey{fg: c.FG.Hex(), bg: c.BG.Hex()}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	styles := make(styleCache)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors for efficiency
		x := 0
		for x < s.Width() {
			start := cellKey(s.GetCell(x, y))

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cellKey(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styles.get(start).Render(run.String()))
		}
	}
	return sb.String()
}
