// Package debug provides debug visualization utilities.
package debug

import gmath "github.com/Faultbox/terramesh/pkg/math"

// WireframeVertexCount is the number of vertices of a box wireframe (12 edges × 2).
const WireframeVertexCount = 24

// BoundsWireframe returns the edges of a mesh bounding box as a line list,
// two endpoints per edge. bounds is in terrain space; the endpoints are
// relative to offset so they can be drawn with the mesh transform.
func BoundsWireframe(bounds gmath.Box3, offset gmath.Vec3) []gmath.Vec3 {
	lo := bounds.Min.Sub(offset)
	hi := bounds.Max.Sub(offset)
	return boxLines(lo, hi)
}

// Padded returns b grown by padding on all sides. Flat groups get a visible
// box this way.
func Padded(b gmath.Box3, padding float32) gmath.Box3 {
	p := gmath.Vec3{X: padding, Y: padding, Z: padding}
	return gmath.Box3{Min: b.Min.Sub(p), Max: b.Max.Add(p)}
}

func boxLines(lo, hi gmath.Vec3) []gmath.Vec3 {
	corner := func(x, y, z bool) gmath.Vec3 {
		c := lo
		if x {
			c.X = hi.X
		}
		if y {
			c.Y = hi.Y
		}
		if z {
			c.Z = hi.Z
		}
		return c
	}
	return []gmath.Vec3{
		// Bottom face
		corner(false, false, false), corner(true, false, false),
		corner(true, false, false), corner(true, true, false),
		corner(true, true, false), corner(false, true, false),
		corner(false, true, false), corner(false, false, false),
		// Top face
		corner(false, false, true), corner(true, false, true),
		corner(true, false, true), corner(true, true, true),
		corner(true, true, true), corner(false, true, true),
		corner(false, true, true), corner(false, false, true),
		// Vertical edges
		corner(false, false, false), corner(false, false, true),
		corner(true, false, false), corner(true, false, true),
		corner(true, true, false), corner(true, true, true),
		corner(false, true, false), corner(false, true, true),
	}
}
