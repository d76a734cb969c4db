package paint

import (
	"math"

	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// Ray is a half-line in terrain space.
type Ray struct {
	Origin    gmath.Vec3
	Direction gmath.Vec3 // Normalized direction
}

// Surface is a heightfield that can be sampled at continuous positions.
// Both the editable store and its snapshots are surfaces.
type Surface interface {
	Size() grid.Vec2i
	Height(x, y float32) float32
}

const (
	pickStep       = 0.5
	pickRefinement = 12
)

// Pick marches r over the heightfield and returns the cell under the first
// point where the ray dips below the surface. A ray starting below the
// surface, leaving the field or running past maxDist hits nothing.
func Pick(img Surface, r Ray, maxDist float32) (grid.Vec2i, bool) {
	size := img.Size()
	inside := func(p gmath.Vec3) bool {
		return p.X >= 0 && p.Y >= 0 && p.X <= float32(size.X-1) && p.Y <= float32(size.Y-1)
	}
	below := func(t float32) bool {
		p := r.at(t)
		return p.Z <= img.Height(p.X, p.Y)
	}

	if inside(r.Origin) && below(0) {
		return grid.Vec2i{}, false
	}

	prev := float32(0)
	for t := float32(pickStep); t <= maxDist; t += pickStep {
		p := r.at(t)
		if !inside(p) {
			prev = t
			continue
		}
		if !below(t) {
			prev = t
			continue
		}

		// Bisect between the last point above and the first below.
		lo, hi := prev, t
		for i := 0; i < pickRefinement; i++ {
			mid := (lo + hi) / 2
			if inside(r.at(mid)) && below(mid) {
				hi = mid
			} else {
				lo = mid
			}
		}
		hit := r.at(hi)
		cell := grid.Vec2i{
			X: min(int(math.Floor(float64(hit.X))), size.X-2),
			Y: min(int(math.Floor(float64(hit.Y))), size.Y-2),
		}
		return cell, true
	}
	return grid.Vec2i{}, false
}

func (r Ray) at(t float32) gmath.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
