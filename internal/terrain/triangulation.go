package terrain

import (
	"fmt"

	"github.com/Faultbox/terramesh/internal/sampled"
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// triangle is three unit-cube positions in counter-clockwise order seen from
// the empty side.
type triangle [3]gmath.Vec3

// triangulation holds the surface of every canonical occupancy pattern.
// Other patterns are looked up through their canonical form.
var triangulation = buildTriangulation()

func buildTriangulation() map[sampled.Data3b][]triangle {
	table := make(map[sampled.Data3b][]triangle)
	for i := 0; i < 256; i++ {
		d := sampled.Data3b(i)
		if c, _ := d.Canonical(); c == d {
			table[d] = faceTriangles(d)
		}
	}
	return table
}

type cubeFace struct {
	corners [4]grid.Vec3i
	normal  gmath.Vec3
}

var cubeFaces = buildCubeFaces()

func buildCubeFaces() [6]cubeFace {
	var faces [6]cubeFace
	i := 0
	for axis := 0; axis < 3; axis++ {
		for side := 0; side < 2; side++ {
			var f cubeFace
			n := 0
			for c := 0; c < 8; c++ {
				corner := grid.Vec3i{X: c >> 2 & 1, Y: c >> 1 & 1, Z: c & 1}
				if component(corner, axis) == side {
					f.corners[n] = corner
					n++
				}
			}
			sign := float32(2*side - 1)
			switch axis {
			case 0:
				f.normal = gmath.Vec3{X: sign}
			case 1:
				f.normal = gmath.Vec3{Y: sign}
			default:
				f.normal = gmath.Vec3{Z: sign}
			}
			faces[i] = f
			i++
		}
	}
	return faces
}

func component(v grid.Vec3i, axis int) int {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func cornerVec(c grid.Vec3i) gmath.Vec3 {
	return gmath.Vec3{X: float32(c.X), Y: float32(c.Y), Z: float32(c.Z)}
}

func adjacentCorners(a, b grid.Vec3i) bool {
	d := a.Sub(b)
	return d.X*d.X+d.Y*d.Y+d.Z*d.Z == 1
}

// faceTriangles builds the surface of one cell from the segments the
// surface cuts into its faces. Every face edge between a filled and an empty
// corner is crossed at its midpoint. A face with two crossings holds one
// segment; a face with four crossings (filled corners on a diagonal) holds
// one segment around each filled corner. Segments are directed so the
// filled corner lies to their right seen from outside the cube, which chains
// them into loops wound counter-clockwise seen from the empty side. Each loop
// is fanned into triangles.
func faceTriangles(d sampled.Data3b) []triangle {
	filled := func(c grid.Vec3i) bool { return d.At(c.X, c.Y, c.Z) }

	type segment struct{ from, to gmath.Vec3 }
	var segments []segment

	for _, f := range cubeFaces {
		var crossings [][2]grid.Vec3i
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				a, b := f.corners[i], f.corners[j]
				if adjacentCorners(a, b) && filled(a) != filled(b) {
					crossings = append(crossings, [2]grid.Vec3i{a, b})
				}
			}
		}
		if len(crossings) == 0 {
			continue
		}

		mid := func(e [2]grid.Vec3i) gmath.Vec3 {
			return cornerVec(e[0]).Add(cornerVec(e[1])).Scale(0.5)
		}
		add := func(p, q gmath.Vec3, solid grid.Vec3i) {
			if q.Sub(p).Cross(cornerVec(solid).Sub(p)).Dot(f.normal) > 0 {
				p, q = q, p
			}
			segments = append(segments, segment{p, q})
		}

		if len(crossings) == 2 {
			solid := crossings[0][0]
			if !filled(solid) {
				solid = crossings[0][1]
			}
			add(mid(crossings[0]), mid(crossings[1]), solid)
			continue
		}
		for _, c := range f.corners {
			if !filled(c) {
				continue
			}
			var around []gmath.Vec3
			for _, e := range crossings {
				if e[0] == c || e[1] == c {
					around = append(around, mid(e))
				}
			}
			add(around[0], around[1], c)
		}
	}

	next := make(map[gmath.Vec3]gmath.Vec3, len(segments))
	for _, s := range segments {
		next[s.from] = s.to
	}

	var tris []triangle
	used := make(map[gmath.Vec3]bool, len(segments))
	for _, s := range segments {
		if used[s.from] {
			continue
		}
		loop := []gmath.Vec3{s.from}
		used[s.from] = true
		for p := next[s.from]; p != s.from; p = next[p] {
			loop = append(loop, p)
			used[p] = true
		}
		for i := 1; i+1 < len(loop); i++ {
			tris = append(tris, triangle{loop[0], loop[i], loop[i+1]})
		}
	}
	return tris
}

// appendCellTriangles appends the surface of pattern d to dst, mapping the
// canonical triangles back onto d.
func appendCellTriangles(dst []triangle, d sampled.Data3b) ([]triangle, error) {
	canonical, t := d.Canonical()
	tris, ok := triangulation[canonical]
	if !ok {
		return dst, fmt.Errorf("%w: pattern %v", ErrTriangulationLookupMiss, d)
	}
	inv := t.Inverse()
	mirror := t.IsReflection()
	for _, tri := range tris {
		a, b, c := inv.Apply(tri[0]), inv.Apply(tri[1]), inv.Apply(tri[2])
		if mirror {
			b, c = c, b
		}
		dst = append(dst, triangle{a, b, c})
	}
	return dst, nil
}
