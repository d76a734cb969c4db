package math

// Plane is the set of points p with Normal·p + D = 0. Points with a positive
// distance are on the inner side.
type Plane struct {
	Normal Vec3
	D      float32
}

// NewPlane builds a normalized plane from the raw coefficients a*x+b*y+c*z+d.
func NewPlane(a, b, c, d float32) Plane {
	n := Vec3{a, b, c}
	l := n.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Scale(1 / l), D: d / l}
}

// Distance returns the signed distance from p to the plane.
func (p Plane) Distance(point Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}

// FrustumPlanes extracts the six clip planes (left, right, bottom, top,
// near, far) from a combined projection*view matrix. Normals point inward.
func FrustumPlanes(m Mat4) [6]Plane {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	combine := func(a, b [4]float32, sign float32) Plane {
		return NewPlane(a[0]+sign*b[0], a[1]+sign*b[1], a[2]+sign*b[2], a[3]+sign*b[3])
	}
	return [6]Plane{
		combine(r3, r0, 1),
		combine(r3, r0, -1),
		combine(r3, r1, 1),
		combine(r3, r1, -1),
		combine(r3, r2, 1),
		combine(r3, r2, -1),
	}
}

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max Vec3
}

// NewBox3FromMinSize returns the box spanning min..min+size.
func NewBox3FromMinSize(min, size Vec3) Box3 {
	return Box3{Min: min, Max: min.Add(size)}
}

// Encapsulate returns the box grown to contain p.
func (b Box3) Encapsulate(p Vec3) Box3 {
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Center returns the middle of the box.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent.
func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// TestPlanesBox reports whether the box is at least partially on the inner
// side of every plane. The test is conservative: boxes near frustum corners
// may pass although they are outside.
func TestPlanesBox(planes []Plane, b Box3) bool {
	for _, p := range planes {
		// Corner furthest along the plane normal.
		v := b.Min
		if p.Normal.X >= 0 {
			v.X = b.Max.X
		}
		if p.Normal.Y >= 0 {
			v.Y = b.Max.Y
		}
		if p.Normal.Z >= 0 {
			v.Z = b.Max.Z
		}
		if p.Distance(v) < 0 {
			return false
		}
	}
	return true
}
