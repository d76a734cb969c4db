package terrain

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/internal/logger"
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// OccupancyMesher extracts the boundary surface of an occupancy field.
//
// Occupancy cells are dual to samples: cell c spans samples c-1 and c on
// every axis, so cells run from 0 to size inclusive and the field is closed
// at its borders. The surface passes through the midpoints of edges between
// filled and empty samples and faces away from filled space.
type OccupancyMesher struct {
	CellInGroupCount grid.Vec2i

	lookupMisses atomic.Int64
}

// Mesh implements Mesher.
func (o *OccupancyMesher) Mesh(img image.Image, group grid.Vec2i, out *Mesh) error {
	occ, ok := img.(*image.Image3b)
	if !ok {
		return unsupported(img, "occupancy")
	}
	origin, offset := groupOffset(group, o.CellInGroupCount)
	out.Reset(offset)

	size := occ.Size()
	columns := grid.Range2iFromMinAndSize(group.Mul(o.CellInGroupCount), o.CellInGroupCount).
		IntersectWith(grid.NewRange2i(grid.Vec2i{}, size.XY().Add(grid.Vec2i{X: 1, Y: 1})))

	one := grid.Vec3i{X: 1, Y: 1, Z: 1}
	var tris []triangle
	columns.ForEach(func(col grid.Vec2i) {
		for z := 0; z <= size.Z; z++ {
			cell := col.XYZ(z)
			low := cell.Sub(one)
			d := occ.SampleCell(low)
			if d == 0 || d == 0xFF {
				continue
			}

			var err error
			tris, err = appendCellTriangles(tris[:0], d)
			if err != nil {
				o.lookupMisses.Add(1)
				logger.Named("terrain").Warn("TriangulationLookupMiss",
					zap.Stringer("cell", cell),
					zap.Error(err))
				continue
			}

			base := gmath.Vec3{X: float32(low.X - origin.X), Y: float32(low.Y - origin.Y), Z: float32(low.Z)}
			for _, t := range tris {
				out.AddTriangle(t[0].Add(base), t[1].Add(base), t[2].Add(base))
			}
		}
	})
	return nil
}

// LookupMisses returns how many cells were skipped because their pattern was
// missing from the triangulation table.
func (o *OccupancyMesher) LookupMisses() int64 { return o.lookupMisses.Load() }
