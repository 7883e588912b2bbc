package hazard

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

// LifeRule holds the neighbour counts for birth and survival.
type LifeRule struct {
	Birth   [9]bool
	Survive [9]bool
}

// Conway is the standard B3/S23 rule.
var Conway = LifeRule{
	Birth:   [9]bool{3: true},
	Survive: [9]bool{2: true, 3: true},
}

// ParseLifeRule parses rule strings such as "B3/S23" or "B36/S23".
func ParseLifeRule(s string) (LifeRule, error) {
	var rule LifeRule
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "B") || !strings.HasPrefix(parts[1], "S") {
		return rule, fmt.Errorf("hazard: invalid life rule %q", s)
	}
	for i, part := range parts {
		dst := &rule.Birth
		if i == 1 {
			dst = &rule.Survive
		}
		for _, r := range part[1:] {
			if r < '0' || r > '8' {
				return LifeRule{}, fmt.Errorf("hazard: invalid life rule %q: bad count %q", s, r)
			}
			dst[r-'0'] = true
		}
	}
	return rule, nil
}

// LifeGrid runs a cellular automaton over a grid stretched across the
// playfield. Every tick it advances one generation and spawns a
// RotatableRect for each live cell. It is invisible and harmless itself.
type LifeGrid struct {
	Width  int
	Height int
	Rule   LifeRule

	MaxTicks     int
	Period       float64 // Beats per generation
	Warning      float64 // Rect warning after the first tick
	FirstWarning float64 // Rect warning on the first tick

	cells []bool
	ticks int
	t     float64
}

var _ engine.Obstacle = (*LifeGrid)(nil)

// NewLifeGrid creates an empty grid running Conway's rule for 32 ticks,
// one per beat.
func NewLifeGrid(width, height int) *LifeGrid {
	return &LifeGrid{
		Width:        width,
		Height:       height,
		Rule:         Conway,
		MaxTicks:     32,
		Period:       1,
		FirstWarning: 1,
		cells:        make([]bool, width*height),
	}
}

// ensure sizes the cell buffer to the grid, which a literal or a resize
// leaves out of step.
func (g *LifeGrid) ensure() {
	n := max(g.Width, 0) * max(g.Height, 0)
	if len(g.cells) != n {
		g.cells = make([]bool, n)
	}
}

func (g *LifeGrid) index(x, y int) (int, bool) {
	g.ensure()
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0, false
	}
	return y*g.Width + x, true
}

// Set changes one cell. Out-of-range cells are ignored.
func (g *LifeGrid) Set(x, y int, alive bool) {
	if i, ok := g.index(x, y); ok {
		g.cells[i] = alive
	}
}

// Alive reports whether a cell is live. Cells outside the grid are dead.
func (g *LifeGrid) Alive(x, y int) bool {
	i, ok := g.index(x, y)
	return ok && g.cells[i]
}

// Count returns the number of live cells.
func (g *LifeGrid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Populate sets n random cells alive.
func (g *LifeGrid) Populate(n int, rng *rand.Rand) {
	g.ensure()
	if len(g.cells) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		g.cells[rng.Intn(len(g.cells))] = true
	}
}

func (g *LifeGrid) neighbours(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && g.Alive(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

// Step advances the grid one generation.
func (g *LifeGrid) Step() {
	g.ensure()
	next := make([]bool, len(g.cells))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			n := g.neighbours(x, y)
			if g.Alive(x, y) {
				next[y*g.Width+x] = g.Rule.Survive[n]
			} else {
				next[y*g.Width+x] = g.Rule.Birth[n]
			}
		}
	}
	g.cells = next
}

// Ticks returns the number of generations run so far.
func (g *LifeGrid) Ticks() int {
	return g.ticks
}

// Update implements engine.Obstacle.
func (g *LifeGrid) Update(acc *engine.Accumulator, frameDelta, beatDelta float64) {
	g.t += beatDelta
	first := g.ticks == 0
	if !first && g.t <= g.Period*float64(g.ticks)+g.FirstWarning-g.Warning {
		return
	}
	g.Step()
	g.ticks++

	warning := g.Warning
	if first {
		warning = g.FirstWarning
	}
	cell := acc.World().Div(core.V(float64(g.Width), float64(g.Height)))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.Alive(x, y) {
				continue
			}
			center := core.V(float64(x), float64(y)).Mul(cell).Add(cell.Scale(0.5))
			acc.Spawn(NewRotatableRect(center, cell, 0, warning, g.Period*1.25, g.Period/4))
		}
	}
}

// Draw implements engine.Obstacle.
func (g *LifeGrid) Draw(core.Canvas, core.Color, core.Vec2) {}

// Collides implements engine.Obstacle.
func (g *LifeGrid) Collides(engine.Player) bool { return false }

// ShouldKill implements engine.Obstacle.
func (g *LifeGrid) ShouldKill() bool {
	return g.ticks >= g.MaxTicks
}

// Clone implements engine.Obstacle.
func (g *LifeGrid) Clone() engine.Obstacle {
	c := *g
	c.cells = append([]bool(nil), g.cells...)
	return &c
}
