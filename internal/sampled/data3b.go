package sampled

import (
	"fmt"
	"math/bits"

	"github.com/Faultbox/terramesh/pkg/grid"
)

// Data3b is the occupancy of the eight corners of one voxel cell. Corner
// (x,y,z) is bit x*4+y*2+z.
type Data3b uint8

// Corner returns the bit index of corner (x,y,z).
func Corner(x, y, z int) uint { return uint(x*4 + y*2 + z) }

// At reports whether corner (x,y,z) is filled.
func (d Data3b) At(x, y, z int) bool { return d&(1<<Corner(x, y, z)) != 0 }

// With returns d with corner (x,y,z) set to v.
func (d Data3b) With(x, y, z int, v bool) Data3b {
	if v {
		return d | 1<<Corner(x, y, z)
	}
	return d &^ (1 << Corner(x, y, z))
}

// TrueCount returns the number of filled corners.
func (d Data3b) TrueCount() int { return bits.OnesCount8(uint8(d)) }

// Transformed moves every corner through t.
func (d Data3b) Transformed(t Transform3) Data3b {
	var out Data3b
	for i := 0; i < 8; i++ {
		if d&(1<<uint(i)) == 0 {
			continue
		}
		c := t.ApplyCorner(grid.Vec3i{X: i >> 2 & 1, Y: i >> 1 & 1, Z: i & 1})
		out |= 1 << Corner(c.X, c.Y, c.Z)
	}
	return out
}

// Rotated turns the cell by quarter steps around X, then Y, then Z, and
// finally mirrors it vertically when invert is set.
func (d Data3b) Rotated(steps grid.Vec3i, invert bool) Data3b {
	return d.Transformed(RotationTransform(steps, invert))
}

// RotationTransform builds the transform used by Rotated.
func RotationTransform(steps grid.Vec3i, invert bool) Transform3 {
	t := Identity3
	turn := func(q Transform3, n int) {
		for n = ((n % 4) + 4) % 4; n > 0; n-- {
			t = q.Compose(t)
		}
	}
	turn(QuarterTurnX, steps.X)
	turn(QuarterTurnY, steps.Y)
	turn(QuarterTurnZ, steps.Z)
	if invert {
		t = InvertZ.Compose(t)
	}
	return t
}

// Canonical returns the smallest mask reachable through a cube symmetry and
// the transform that reaches it: d.Transformed(t) == canonical.
func (d Data3b) Canonical() (Data3b, Transform3) {
	best, bestT := d, Identity3
	for _, t := range CubeSymmetries[1:] {
		if c := d.Transformed(t); c < best {
			best, bestT = c, t
		}
	}
	return best, bestT
}

// SymmetricEqual3b reports whether a and b are the same pattern up to
// rotation and reflection.
func SymmetricEqual3b(a, b Data3b) bool {
	ca, _ := a.Canonical()
	cb, _ := b.Canonical()
	return ca == cb
}

func (d Data3b) String() string { return fmt.Sprintf("%08b", uint8(d)) }
