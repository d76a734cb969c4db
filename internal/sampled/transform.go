package sampled

import (
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// Transform3 maps the unit cube onto itself: output axis i reads input axis
// Perm[i], mirrored when Flip[i] is set. The 48 such maps are the cube's
// rotations and reflections.
type Transform3 struct {
	Perm [3]int
	Flip [3]bool
}

// Identity3 leaves every corner in place.
var Identity3 = Transform3{Perm: [3]int{0, 1, 2}}

// Quarter turns around each axis and the vertical inversion.
var (
	QuarterTurnX = Transform3{Perm: [3]int{0, 2, 1}, Flip: [3]bool{false, true, false}}
	QuarterTurnY = Transform3{Perm: [3]int{2, 1, 0}, Flip: [3]bool{false, false, true}}
	QuarterTurnZ = Transform3{Perm: [3]int{1, 0, 2}, Flip: [3]bool{true, false, false}}
	InvertZ      = Transform3{Perm: [3]int{0, 1, 2}, Flip: [3]bool{false, false, true}}
)

// CubeSymmetries lists all 48 transforms, identity first.
var CubeSymmetries = buildCubeSymmetries()

func buildCubeSymmetries() [48]Transform3 {
	perms := [6][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	var out [48]Transform3
	i := 0
	for _, p := range perms {
		for flips := 0; flips < 8; flips++ {
			out[i] = Transform3{
				Perm: p,
				Flip: [3]bool{flips&1 != 0, flips&2 != 0, flips&4 != 0},
			}
			i++
		}
	}
	return out
}

// Apply maps a point of the unit cube.
func (t Transform3) Apply(p gmath.Vec3) gmath.Vec3 {
	in := [3]float32{p.X, p.Y, p.Z}
	var out [3]float32
	for i := 0; i < 3; i++ {
		v := in[t.Perm[i]]
		if t.Flip[i] {
			v = 1 - v
		}
		out[i] = v
	}
	return gmath.Vec3{X: out[0], Y: out[1], Z: out[2]}
}

// ApplyCorner maps a corner with coordinates in {0,1}.
func (t Transform3) ApplyCorner(c grid.Vec3i) grid.Vec3i {
	in := [3]int{c.X, c.Y, c.Z}
	var out [3]int
	for i := 0; i < 3; i++ {
		v := in[t.Perm[i]]
		if t.Flip[i] {
			v = 1 - v
		}
		out[i] = v
	}
	return grid.Vec3i{X: out[0], Y: out[1], Z: out[2]}
}

// Compose returns the transform applying inner first, then t.
func (t Transform3) Compose(inner Transform3) Transform3 {
	var out Transform3
	for i := 0; i < 3; i++ {
		out.Perm[i] = inner.Perm[t.Perm[i]]
		out.Flip[i] = t.Flip[i] != inner.Flip[t.Perm[i]]
	}
	return out
}

// Inverse returns the transform undoing t.
func (t Transform3) Inverse() Transform3 {
	var out Transform3
	for i := 0; i < 3; i++ {
		out.Perm[t.Perm[i]] = i
		out.Flip[t.Perm[i]] = t.Flip[i]
	}
	return out
}

// IsReflection reports whether t reverses orientation, which flips triangle
// winding.
func (t Transform3) IsReflection() bool {
	odd := false
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if t.Perm[i] > t.Perm[j] {
				odd = !odd
			}
		}
		if t.Flip[i] {
			odd = !odd
		}
	}
	return odd
}
