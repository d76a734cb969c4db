package image

import "github.com/Faultbox/terramesh/pkg/grid"

// Constraint2f enforces a structural rule on a heightfield after an edit.
// FixImage may modify field anywhere and returns the region it touched,
// which is merged into the invalidated region after clamping to the field.
type Constraint2f interface {
	FixImage(field *grid.Matrix2[float32], invalidated grid.Range2i, dir Direction) grid.Range2i
}

// Constraint2fFunc adapts a function to Constraint2f.
type Constraint2fFunc func(field *grid.Matrix2[float32], invalidated grid.Range2i, dir Direction) grid.Range2i

// FixImage calls f.
func (f Constraint2fFunc) FixImage(field *grid.Matrix2[float32], invalidated grid.Range2i, dir Direction) grid.Range2i {
	return f(field, invalidated, dir)
}

// Constraint3b enforces a structural rule on an occupancy field.
type Constraint3b interface {
	FixImage(field *grid.Matrix3[bool], invalidated grid.Range3i, dir Direction) grid.Range3i
}

// Constraint3bFunc adapts a function to Constraint3b.
type Constraint3bFunc func(field *grid.Matrix3[bool], invalidated grid.Range3i, dir Direction) grid.Range3i

// FixImage calls f.
func (f Constraint3bFunc) FixImage(field *grid.Matrix3[bool], invalidated grid.Range3i, dir Direction) grid.Range3i {
	return f(field, invalidated, dir)
}

var unit2 = grid.Vec2i{X: 1, Y: 1}

func pointRange(p grid.Vec2i) grid.Range2i {
	return grid.Range2iFromMinAndSize(p, unit2)
}
