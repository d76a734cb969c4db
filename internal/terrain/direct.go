package terrain

import (
	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// DirectMesher emits one quad per cell with the corner heights taken
// straight from the field.
type DirectMesher struct {
	CellInGroupCount grid.Vec2i
}

// Mesh implements Mesher.
func (d *DirectMesher) Mesh(img image.Image, group grid.Vec2i, out *Mesh) error {
	hf, err := heightfield(img)
	if err != nil {
		return err
	}
	origin, offset := groupOffset(group, d.CellInGroupCount)
	out.Reset(offset)

	heightCells(hf, group, d.CellInGroupCount).ForEach(func(cell grid.Vec2i) {
		s := hf.SampleCell(cell)
		l := cell.Sub(origin)
		out.AddQuad(
			vec3(l.X, l.Y, s.X0Y0),
			vec3(l.X, l.Y+1, s.X0Y1),
			vec3(l.X+1, l.Y, s.X1Y0),
			vec3(l.X+1, l.Y+1, s.X1Y1),
		)
	})
	return nil
}
