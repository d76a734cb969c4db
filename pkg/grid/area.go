package grid

import "fmt"

// Area2i is an inclusive integer box [Min, Max].
type Area2i struct {
	Min, Max Vec2i
}

// Area2iEmpty is the canonical empty area.
var Area2iEmpty = Area2i{Min: Vec2i{0, 0}, Max: Vec2i{-1, -1}}

// NewArea2i returns [min, max], or Area2iEmpty when max < min on any axis.
func NewArea2i(min, max Vec2i) Area2i {
	if max.X < min.X || max.Y < min.Y {
		return Area2iEmpty
	}
	return Area2i{Min: min, Max: max}
}

// Size returns the number of coordinates along each axis.
func (a Area2i) Size() Vec2i {
	if a.IsEmpty() {
		return Vec2i{}
	}
	return a.Max.Sub(a.Min).Add(Vec2i{1, 1})
}

// IsEmpty reports whether the area contains no coordinate.
func (a Area2i) IsEmpty() bool { return a.Max.X < a.Min.X || a.Max.Y < a.Min.Y }

// Contains reports whether p lies inside the area.
func (a Area2i) Contains(p Vec2i) bool {
	return p.X >= a.Min.X && p.Y >= a.Min.Y && p.X <= a.Max.X && p.Y <= a.Max.Y
}

// Overlaps reports whether the areas share at least one coordinate.
func (a Area2i) Overlaps(o Area2i) bool {
	if a.IsEmpty() || o.IsEmpty() {
		return false
	}
	return a.Min.X <= o.Max.X && o.Min.X <= a.Max.X && a.Min.Y <= o.Max.Y && o.Min.Y <= a.Max.Y
}

// CombineWith returns the bounding area of both. Empty is the identity.
func (a Area2i) CombineWith(o Area2i) Area2i {
	if a.IsEmpty() {
		return NewArea2i(o.Min, o.Max)
	}
	if o.IsEmpty() {
		return a
	}
	return Area2i{Min: a.Min.Min(o.Min), Max: a.Max.Max(o.Max)}
}

// IntersectWith returns the common part. Empty absorbs.
func (a Area2i) IntersectWith(o Area2i) Area2i {
	if a.IsEmpty() || o.IsEmpty() {
		return Area2iEmpty
	}
	return NewArea2i(a.Min.Max(o.Min), a.Max.Min(o.Max))
}

// ToRange converts to the equivalent half-open range.
func (a Area2i) ToRange() Range2i {
	if a.IsEmpty() {
		return Range2i{}
	}
	return Range2i{Min: a.Min, Max: a.Max.Add(Vec2i{1, 1})}
}

func (a Area2i) String() string {
	if a.IsEmpty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%v-%v]", a.Min, a.Max)
}

// Area1f is an inclusive float interval, used for observed value ranges.
type Area1f struct {
	Min, Max float32
}

// Area1fPoint returns the interval containing only v.
func Area1fPoint(v float32) Area1f { return Area1f{Min: v, Max: v} }

// UnionWith returns the interval widened to contain v.
func (a Area1f) UnionWith(v float32) Area1f {
	return Area1f{Min: min(a.Min, v), Max: max(a.Max, v)}
}

// CombineWith returns the interval containing both.
func (a Area1f) CombineWith(o Area1f) Area1f {
	return Area1f{Min: min(a.Min, o.Min), Max: max(a.Max, o.Max)}
}

// Size returns Max - Min.
func (a Area1f) Size() float32 { return a.Max - a.Min }

func (a Area1f) String() string { return fmt.Sprintf("[%g,%g]", a.Min, a.Max) }
