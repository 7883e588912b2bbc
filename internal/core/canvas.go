package core

// Canvas receives world-space draw calls. Obstacles draw through it and never
// touch terminal cells directly.
type Canvas interface {
	// Clear paints the whole canvas with the background color.
	Clear(bg Color)
	Circle(center Vec2, rad float64, c Color)
	// Line draws a segment of the given thickness.
	Line(start, end Vec2, thickness float64, c Color)
	// RotatedRect draws a rectangle centered at center, rotated by rot using
	// the same convention as Rotate. Collision against it uses -rot.
	RotatedRect(center, size Vec2, rot float64, c Color)
	// Arc draws the part of a ring between angles a1 and a2.
	Arc(center Vec2, outer, inner, a1, a2 float64, c Color)
	Text(pos Vec2, text string, c Color)
}
