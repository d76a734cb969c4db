package grid

import (
	"fmt"
	"math"
)

// Range2i is a half-open integer box [Min, Max). Every empty range is
// normalized to the zero value, so empty ranges compare equal.
type Range2i struct {
	Min, Max Vec2i
}

// Range2iAll covers every coordinate a field can address.
var Range2iAll = Range2i{
	Min: Vec2i{math.MinInt32 / 2, math.MinInt32 / 2},
	Max: Vec2i{math.MaxInt32 / 2, math.MaxInt32 / 2},
}

// NewRange2i returns [min, max), or the empty range when any size is <= 0.
func NewRange2i(min, max Vec2i) Range2i {
	if max.X <= min.X || max.Y <= min.Y {
		return Range2i{}
	}
	return Range2i{Min: min, Max: max}
}

// Range2iFromMinAndSize returns the range starting at min with the given size.
func Range2iFromMinAndSize(min, size Vec2i) Range2i {
	return NewRange2i(min, min.Add(size))
}

// Size returns the extent of the range.
func (r Range2i) Size() Vec2i { return r.Max.Sub(r.Min) }

// IsEmpty reports whether the range contains no coordinate.
func (r Range2i) IsEmpty() bool { return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y }

// Contains reports whether p lies inside the range.
func (r Range2i) Contains(p Vec2i) bool {
	return p.X >= r.Min.X && p.Y >= r.Min.Y && p.X < r.Max.X && p.Y < r.Max.Y
}

// Overlaps reports whether the ranges share at least one coordinate.
func (r Range2i) Overlaps(o Range2i) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X && r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// CombineWith returns the bounding range of both. Empty is the identity.
func (r Range2i) CombineWith(o Range2i) Range2i {
	if r.IsEmpty() {
		return o.normalized()
	}
	if o.IsEmpty() {
		return r
	}
	return Range2i{Min: r.Min.Min(o.Min), Max: r.Max.Max(o.Max)}
}

// IntersectWith returns the common part. Empty absorbs.
func (r Range2i) IntersectWith(o Range2i) Range2i {
	if r.IsEmpty() || o.IsEmpty() {
		return Range2i{}
	}
	return NewRange2i(r.Min.Max(o.Min), r.Max.Min(o.Max))
}

// ExtendBothDirections grows the range by d on every side.
func (r Range2i) ExtendBothDirections(d int) Range2i {
	if r.IsEmpty() {
		return Range2i{}
	}
	return NewRange2i(r.Min.Sub(Vec2i{d, d}), r.Max.Add(Vec2i{d, d}))
}

// ForEach visits every coordinate in row-major order.
func (r Range2i) ForEach(fn func(p Vec2i)) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			fn(Vec2i{x, y})
		}
	}
}

// ToArea converts to the equivalent inclusive area.
func (r Range2i) ToArea() Area2i {
	if r.IsEmpty() {
		return Area2iEmpty
	}
	return Area2i{Min: r.Min, Max: r.Max.Sub(Vec2i{1, 1})}
}

func (r Range2i) normalized() Range2i {
	if r.IsEmpty() {
		return Range2i{}
	}
	return r
}

func (r Range2i) String() string {
	if r.IsEmpty() {
		return "[empty)"
	}
	return fmt.Sprintf("[%v-%v)", r.Min, r.Max)
}

// Range3i is a half-open integer box [Min, Max).
type Range3i struct {
	Min, Max Vec3i
}

// NewRange3i returns [min, max), or the empty range when any size is <= 0.
func NewRange3i(min, max Vec3i) Range3i {
	if max.X <= min.X || max.Y <= min.Y || max.Z <= min.Z {
		return Range3i{}
	}
	return Range3i{Min: min, Max: max}
}

// Range3iFromMinAndSize returns the range starting at min with the given size.
func Range3iFromMinAndSize(min, size Vec3i) Range3i {
	return NewRange3i(min, min.Add(size))
}

// Size returns the extent of the range.
func (r Range3i) Size() Vec3i { return r.Max.Sub(r.Min) }

// IsEmpty reports whether the range contains no coordinate.
func (r Range3i) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y || r.Max.Z <= r.Min.Z
}

// Contains reports whether p lies inside the range.
func (r Range3i) Contains(p Vec3i) bool {
	return p.X >= r.Min.X && p.Y >= r.Min.Y && p.Z >= r.Min.Z &&
		p.X < r.Max.X && p.Y < r.Max.Y && p.Z < r.Max.Z
}

// Overlaps reports whether the ranges share at least one coordinate.
func (r Range3i) Overlaps(o Range3i) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y &&
		r.Min.Z < o.Max.Z && o.Min.Z < r.Max.Z
}

// CombineWith returns the bounding range of both. Empty is the identity.
func (r Range3i) CombineWith(o Range3i) Range3i {
	if r.IsEmpty() {
		if o.IsEmpty() {
			return Range3i{}
		}
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Range3i{Min: r.Min.Min(o.Min), Max: r.Max.Max(o.Max)}
}

// IntersectWith returns the common part. Empty absorbs.
func (r Range3i) IntersectWith(o Range3i) Range3i {
	if r.IsEmpty() || o.IsEmpty() {
		return Range3i{}
	}
	return NewRange3i(r.Min.Max(o.Min), r.Max.Min(o.Max))
}

// ExtendBothDirections grows the range by d on every side.
func (r Range3i) ExtendBothDirections(d int) Range3i {
	if r.IsEmpty() {
		return Range3i{}
	}
	return NewRange3i(r.Min.Sub(Vec3i{d, d, d}), r.Max.Add(Vec3i{d, d, d}))
}

// ForEach visits every coordinate, X varying fastest.
func (r Range3i) ForEach(fn func(p Vec3i)) {
	for z := r.Min.Z; z < r.Max.Z; z++ {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				fn(Vec3i{x, y, z})
			}
		}
	}
}

// XY projects the range onto the XY plane.
func (r Range3i) XY() Range2i {
	if r.IsEmpty() {
		return Range2i{}
	}
	return Range2i{Min: r.Min.XY(), Max: r.Max.XY()}
}

func (r Range3i) String() string {
	if r.IsEmpty() {
		return "[empty)"
	}
	return fmt.Sprintf("[%v-%v)", r.Min, r.Max)
}
