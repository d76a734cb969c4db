package image

import "github.com/Faultbox/terramesh/pkg/grid"

// SupportConstraint fills every empty sample below a filled one, so occupied
// voxels always rest on a column reaching the bottom of the field. Removals
// are left alone.
type SupportConstraint struct{}

// FixImage implements Constraint3b.
func (SupportConstraint) FixImage(field *grid.Matrix3[bool], invalidated grid.Range3i, dir Direction) grid.Range3i {
	if dir == Decreasing {
		return invalidated
	}
	region := invalidated.IntersectWith(field.Range())
	changed := invalidated

	region.XY().ForEach(func(c grid.Vec2i) {
		top := -1
		for z := region.Max.Z - 1; z >= region.Min.Z; z-- {
			if field.At(c.XYZ(z)) {
				top = z
				break
			}
		}
		filled := false
		for z := top - 1; z >= 0; z-- {
			if p := c.XYZ(z); !field.At(p) {
				field.Set(p, true)
				filled = true
			}
		}
		if filled {
			changed = changed.CombineWith(grid.NewRange3i(c.XYZ(0), grid.Vec3i{X: c.X + 1, Y: c.Y + 1, Z: top}))
		}
	})
	return changed
}
