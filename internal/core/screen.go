package core

import (
	"math"
	"strings"
)

// FillRune is the glyph used for painted shape cells.
const FillRune = '█'

// Cell is one terminal character with its colors.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
}

// Screen is a 2D character buffer for rendering.
// It decouples game rendering from the terminal: the session draws world-space
// shapes through the Canvas methods, the Screen rasterizes them into cells,
// and the platform turns cells into styled text.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
	world  Vec2
}

var _ Canvas = (*Screen)(nil)

// NewScreen creates a new screen buffer with the given dimensions.
// The world size defaults to one unit per cell.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		world:  V(float64(width), float64(height)),
	}
	s.allocate()
	s.Clear(ColorBlack)
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// SetWorld sets the world-space size that maps onto the whole screen.
func (s *Screen) SetWorld(world Vec2) {
	if world.X <= 0 || world.Y <= 0 {
		return
	}
	s.world = world
}

// World returns the world-space size mapped onto the screen.
func (s *Screen) World() Vec2 {
	return s.world
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear(ColorBlack)

	copyW := Min(oldW, width)
	copyH := Min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with spaces on the given background.
func (s *Screen) Clear(bg Color) {
	bg = bg.Over(ColorBlack)
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' ', FG: ColorWhite, BG: bg}
		}
	}
}

// Fill replaces every rune, keeping colors.
func (s *Screen) Fill(r rune) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x].Rune = r
		}
	}
}

// Set places a rune at the given position, keeping colors.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x].Rune = r
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	if !s.inBounds(x, y) {
		return ' '
	}
	return s.cells[y][x].Rune
}

// SetCell replaces a whole cell.
func (s *Screen) SetCell(x, y int, c Cell) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x] = c
}

// GetCell returns the cell at the given position, or a blank cell.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inBounds(x, y) {
		return Cell{Rune: ' ', FG: ColorWhite, BG: ColorBlack}
	}
	return s.cells[y][x]
}

func (s *Screen) inBounds(x, y int) bool {
	return NewRect(0, 0, s.width, s.height).Contains(x, y)
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text)
}

// DrawRect fills a rectangular area with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.Set(x, y, fill)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect) {
	s.Set(r.X, r.Y, '┌')
	s.Set(r.Right()-1, r.Y, '┐')
	s.Set(r.X, r.Bottom()-1, '└')
	s.Set(r.Right()-1, r.Bottom()-1, '┘')

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.Set(x, r.Y, '─')
		s.Set(x, r.Bottom()-1, '─')
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.Set(r.X, y, '│')
		s.Set(r.Right()-1, y, '│')
	}
}

// String converts the screen buffer to plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the runes of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// cellSize returns the world-space size of one cell.
func (s *Screen) cellSize() Vec2 {
	return V(s.world.X/float64(s.width), s.world.Y/float64(s.height))
}

// CellCenter returns the world-space center of cell (x, y).
func (s *Screen) CellCenter(x, y int) Vec2 {
	cs := s.cellSize()
	return V((float64(x)+0.5)*cs.X, (float64(y)+0.5)*cs.Y)
}

// WorldToCell maps a world point to the cell containing it.
func (s *Screen) WorldToCell(p Vec2) (int, int) {
	cs := s.cellSize()
	return int(math.Floor(p.X / cs.X)), int(math.Floor(p.Y / cs.Y))
}

// sampleRadius is the world-space radius of a cell sample. Shapes thinner
// than a cell still light up the cells they pass through.
func (s *Screen) sampleRadius() float64 {
	cs := s.cellSize()
	return 0.35 * math.Min(cs.X, cs.Y)
}

// paint rasterizes a shape given its world bounding box and a hit test.
func (s *Screen) paint(min, max Vec2, c Color, hit func(p Vec2, r float64) bool) {
	if s.width == 0 || s.height == 0 || c.A <= 0 {
		return
	}
	x0, y0 := s.WorldToCell(min)
	x1, y1 := s.WorldToCell(max)
	x0, y0 = Clamp(x0-1, 0, s.width-1), Clamp(y0-1, 0, s.height-1)
	x1, y1 = Clamp(x1+1, 0, s.width-1), Clamp(y1+1, 0, s.height-1)
	r := s.sampleRadius()

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if hit(s.CellCenter(x, y), r) {
				s.fillCell(x, y, c)
			}
		}
	}
}

// fillCell blends c into the cell's visible color.
func (s *Screen) fillCell(x, y int, c Color) {
	if !s.inBounds(x, y) {
		return
	}
	cell := &s.cells[y][x]
	under := cell.BG
	if cell.Rune == FillRune {
		under = cell.FG
	}
	cell.Rune = FillRune
	cell.FG = c.Over(under)
}

// Circle implements Canvas. A circle always lights the cell holding its
// center, however small it is.
func (s *Screen) Circle(center Vec2, rad float64, c Color) {
	if s.width == 0 || s.height == 0 || c.A <= 0 {
		return
	}
	ext := V(rad, rad)
	cx, cy := s.WorldToCell(center)
	s.paint(center.Sub(ext), center.Add(ext), c, func(p Vec2, r float64) bool {
		if x, y := s.WorldToCell(p); x == cx && y == cy {
			return true
		}
		return CollideCC(center, rad, p, r)
	})
}

// Line implements Canvas.
func (s *Screen) Line(start, end Vec2, thickness float64, c Color) {
	center, size, rot := RectifyLine(start, end, thickness)
	ext := V(size.X/2+thickness, size.X/2+thickness)
	s.paint(center.Sub(ext), center.Add(ext), c, func(p Vec2, r float64) bool {
		return CollideCR(center, size, rot, p, r)
	})
}

// RotatedRect implements Canvas.
func (s *Screen) RotatedRect(center, size Vec2, rot float64, c Color) {
	half := size.Len() / 2
	ext := V(half, half)
	s.paint(center.Sub(ext), center.Add(ext), c, func(p Vec2, r float64) bool {
		return CollideCR(center, size, -rot, p, r)
	})
}

// Arc implements Canvas.
func (s *Screen) Arc(center Vec2, outer, inner, a1, a2 float64, c Color) {
	ext := V(outer, outer)
	s.paint(center.Sub(ext), center.Add(ext), c, func(p Vec2, r float64) bool {
		return CollideCircArc(p, r, center, outer, inner, a1, a2)
	})
}

// Text implements Canvas. The text starts at the cell containing pos.
func (s *Screen) Text(pos Vec2, text string, c Color) {
	x, y := s.WorldToCell(pos)
	i := 0
	for _, r := range text {
		if s.inBounds(x+i, y) {
			cell := &s.cells[y][x+i]
			cell.Rune = r
			cell.FG = c.Over(cell.BG)
		}
		i++
	}
}

// Shade tints the cell containing the world point p, used by overlays.
func (s *Screen) Shade(p Vec2, c Color) {
	x, y := s.WorldToCell(p)
	if !s.inBounds(x, y) {
		return
	}
	cell := &s.cells[y][x]
	cell.BG = c.Over(cell.BG)
}
