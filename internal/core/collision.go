package core

import "math"

// Collision predicates between the player's circle and hazard shapes.
// All functions are total over finite inputs and never take square roots.
//
// Boundary convention: circle-circle overlap is inclusive (touching circles
// collide). The rectangle tests follow the region rules documented on
// CollideCA and are strict.

// CollideCC reports whether two circles overlap.
func CollideCC(p1 Vec2, r1 float64, p2 Vec2, r2 float64) bool {
	return p1.DistSq(p2) <= Sq(r1+r2)
}

// CollideCA reports whether a circle overlaps an axis-aligned rectangle whose
// top-left corner is rpos.
//
// The circle center is classified into one of nine regions around the
// rectangle. Columns: 0 when c.X <= rpos.X, 1 when strictly inside, 2 when
// c.X >= rpos.X+size.X. Rows likewise on Y. Corner regions measure the
// distance to the corner, edge regions use a half-plane test and the interior
// always collides.
func CollideCA(rpos, size, c Vec2, rad float64) bool {
	region := 0
	if c.X > rpos.X {
		region++
	}
	if c.X >= rpos.X+size.X {
		region++
	}
	if c.Y > rpos.Y {
		region += 3
	}
	if c.Y >= rpos.Y+size.Y {
		region += 3
	}

	switch region {
	case 0: // top-left
		return rpos.DistSq(c) < Sq(rad)
	case 1: // top
		return rpos.Y < c.Y+rad
	case 2: // top-right
		return V(rpos.X+size.X, rpos.Y).DistSq(c) < Sq(rad)
	case 3: // left
		return rpos.X < c.X+rad
	case 4: // inside
		return true
	case 5: // right
		return rpos.X+size.X > c.X-rad
	case 6: // bottom-left
		return V(rpos.X, rpos.Y+size.Y).DistSq(c) < Sq(rad)
	case 7: // bottom
		return rpos.Y+size.Y > c.Y-rad
	default: // bottom-right
		return rpos.Add(size).DistSq(c) < Sq(rad)
	}
}

// Rotate applies the clockwise rotation matrix
// (cos θ·x + sin θ·y, -sin θ·x + cos θ·y).
func Rotate(v Vec2, theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{
		X: cos*v.X + sin*v.Y,
		Y: -sin*v.X + cos*v.Y,
	}
}

// RotateAround rotates v around pivot by theta.
func RotateAround(v, pivot Vec2, theta float64) Vec2 {
	return Rotate(v.Sub(pivot), theta).Add(pivot)
}

// CollideCR reports whether a circle overlaps a rectangle of the given size
// centered at center and rotated by rot. The circle is moved into the
// rectangle's unrotated frame around its corner and tested with CollideCA.
func CollideCR(center, size Vec2, rot float64, c Vec2, rad float64) bool {
	corner := Rotate(size.Scale(-0.5), -rot).Add(center)
	local := RotateAround(c, corner, rot)
	return CollideCA(corner, size, local, rad)
}

// RectifyLine converts a thick segment into the rotated rectangle that
// covers it: center at the midpoint, size (length, thickness), rotation the
// segment's angle.
func RectifyLine(start, end Vec2, thickness float64) (center, size Vec2, rot float64) {
	d := end.Sub(start)
	center = start.Add(end).Scale(0.5)
	size = V(d.Len(), thickness)
	rot = math.Atan2(d.Y, d.X)
	return center, size, rot
}

// CollideLine reports whether a circle overlaps a thick segment.
func CollideLine(start, end Vec2, thickness float64, c Vec2, rad float64) bool {
	center, size, rot := RectifyLine(start, end, thickness)
	return CollideCR(center, size, rot, c, rad)
}

// CollideCapsule reports whether a circle overlaps the capsule of radius
// capRad swept along start..end.
func CollideCapsule(start, end Vec2, capRad float64, c Vec2, rad float64) bool {
	center, size, rot := RectifyLine(start, end, 0)
	return CollideCR(center, size, rot, c, rad+capRad)
}

// CollideCHC reports whether a circle overlaps the ring between inner and
// outer radius around hpos. A circle resting entirely inside the hole does
// not collide; when the circle is larger than the hole it cannot rest there.
func CollideCHC(c Vec2, rad float64, hpos Vec2, outer, inner float64) bool {
	if !CollideCC(c, rad, hpos, outer) {
		return false
	}
	if rad > inner {
		return true
	}
	return !CollideCC(c, -rad, hpos, inner)
}

// CollideCircArc reports whether a circle overlaps the part of a ring that
// lies between the two bounding angles a1 and a2.
func CollideCircArc(c Vec2, rad float64, apos Vec2, outer, inner, a1, a2 float64) bool {
	return CollideCHC(c, rad, apos, outer, inner) &&
		RotateAround(c, apos, a1).Y >= apos.Y-rad &&
		RotateAround(c, apos, a2).Y <= apos.Y-rad
}
