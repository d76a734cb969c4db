// Package sampled holds the corner samples of a single grid cell: four
// heights for heightfields and an 8-bit occupancy mask for voxel fields.
package sampled

import (
	"fmt"
	"math"
)

// Data2f is the four corner heights of one cell.
type Data2f struct {
	X0Y0, X0Y1, X1Y0, X1Y1 float32
}

// ring lists the corners counter-clockwise when viewed from +Z.
func (d Data2f) ring() [4]float32 {
	return [4]float32{d.X0Y0, d.X1Y0, d.X1Y1, d.X0Y1}
}

func fromRing(r [4]float32) Data2f {
	return Data2f{X0Y0: r[0], X1Y0: r[1], X1Y1: r[2], X0Y1: r[3]}
}

// Min returns the lowest corner.
func (d Data2f) Min() float32 {
	return min(d.X0Y0, d.X0Y1, d.X1Y0, d.X1Y1)
}

// Max returns the highest corner.
func (d Data2f) Max() float32 {
	return max(d.X0Y0, d.X0Y1, d.X1Y0, d.X1Y1)
}

// IsFlat reports whether all four corners are equal.
func (d Data2f) IsFlat() bool {
	return d.X0Y0 == d.X0Y1 && d.X0Y0 == d.X1Y0 && d.X0Y0 == d.X1Y1
}

// Add offsets every corner by v.
func (d Data2f) Add(v float32) Data2f {
	return Data2f{d.X0Y0 + v, d.X0Y1 + v, d.X1Y0 + v, d.X1Y1 + v}
}

// Diff returns the sum of absolute corner differences.
func (d Data2f) Diff(o Data2f) float32 {
	abs := func(v float32) float32 { return float32(math.Abs(float64(v))) }
	return abs(d.X0Y0-o.X0Y0) + abs(d.X0Y1-o.X0Y1) + abs(d.X1Y0-o.X1Y0) + abs(d.X1Y1-o.X1Y1)
}

// Rotated turns the cell counter-clockwise by steps quarter turns around its
// centre. Negative steps turn clockwise.
func (d Data2f) Rotated(steps int) Data2f {
	steps = ((steps % 4) + 4) % 4
	src := d.ring()
	var dst [4]float32
	for i := range src {
		dst[(i+steps)%4] = src[i]
	}
	return fromRing(dst)
}

// Mirrored reflects the cell along X.
func (d Data2f) Mirrored() Data2f {
	return Data2f{X0Y0: d.X1Y0, X1Y0: d.X0Y0, X0Y1: d.X1Y1, X1Y1: d.X0Y1}
}

// Symmetries returns the four rotations followed by the four rotations of
// the mirrored cell.
func (d Data2f) Symmetries() [8]Data2f {
	var out [8]Data2f
	m := d.Mirrored()
	for i := 0; i < 4; i++ {
		out[i] = d.Rotated(i)
		out[i+4] = m.Rotated(i)
	}
	return out
}

// NormalizeFromTop expresses the cell in template space: the highest corner
// becomes 1 and the others count steps below it, clamped to -1.
func (d Data2f) NormalizeFromTop(step float32) Data2f {
	top := d.Max()
	norm := func(v float32) float32 {
		n := float32(math.Round(float64((v-top)/step))) + 1
		return max(-1, min(1, n))
	}
	return Data2f{norm(d.X0Y0), norm(d.X0Y1), norm(d.X1Y0), norm(d.X1Y1)}
}

// SymmetricEqual reports whether b is a in some rotation or reflection.
func SymmetricEqual(a, b Data2f) bool {
	for _, s := range a.Symmetries() {
		if s == b {
			return true
		}
	}
	return false
}

func (d Data2f) String() string {
	return fmt.Sprintf("[x0y0=%g x1y0=%g x1y1=%g x0y1=%g]", d.X0Y0, d.X1Y0, d.X1Y1, d.X0Y1)
}
