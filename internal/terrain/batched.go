package terrain

import (
	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// BatchedMesher merges runs of flat cells at equal height into larger quads.
// Cells that are not flat are emitted one quad each, so the covered surface
// is the same as DirectMesher's.
type BatchedMesher struct {
	CellInGroupCount grid.Vec2i
}

// Mesh implements Mesher.
func (b *BatchedMesher) Mesh(img image.Image, group grid.Vec2i, out *Mesh) error {
	hf, err := heightfield(img)
	if err != nil {
		return err
	}
	origin, offset := groupOffset(group, b.CellInGroupCount)
	out.Reset(offset)

	cells := heightCells(hf, group, b.CellInGroupCount)
	if cells.IsEmpty() {
		return nil
	}
	size := cells.Size()
	visited := grid.NewMatrix2[bool](size)

	flatAt := func(p grid.Vec2i, h float32) bool {
		if !cells.Contains(p) || visited.At(p.Sub(cells.Min)) {
			return false
		}
		s := hf.SampleCell(p)
		return s.IsFlat() && s.X0Y0 == h
	}

	cells.ForEach(func(cell grid.Vec2i) {
		if visited.At(cell.Sub(cells.Min)) {
			return
		}
		s := hf.SampleCell(cell)
		l := cell.Sub(origin)

		if !s.IsFlat() {
			visited.Set(cell.Sub(cells.Min), true)
			out.AddQuad(
				vec3(l.X, l.Y, s.X0Y0),
				vec3(l.X, l.Y+1, s.X0Y1),
				vec3(l.X+1, l.Y, s.X1Y0),
				vec3(l.X+1, l.Y+1, s.X1Y1),
			)
			return
		}

		h := s.X0Y0
		w := 1
		for flatAt(cell.Add(grid.Vec2i{X: w}), h) {
			w++
		}
		rows := 1
	grow:
		for {
			for dx := 0; dx < w; dx++ {
				if !flatAt(cell.Add(grid.Vec2i{X: dx, Y: rows}), h) {
					break grow
				}
			}
			rows++
		}

		grid.Range2iFromMinAndSize(cell.Sub(cells.Min), grid.Vec2i{X: w, Y: rows}).ForEach(func(p grid.Vec2i) {
			visited.Set(p, true)
		})
		out.AddQuad(
			vec3(l.X, l.Y, h),
			vec3(l.X, l.Y+rows, h),
			vec3(l.X+w, l.Y, h),
			vec3(l.X+w, l.Y+rows, h),
		)
	})
	return nil
}
