package terrain

import (
	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// BicubicMesher splits every cell into Subdivision x Subdivision quads whose
// heights come from monotone cubic interpolation over the 4x4 samples
// around the cell. Samples beyond the field repeat the border.
type BicubicMesher struct {
	CellInGroupCount grid.Vec2i
	Subdivision      int
}

// Mesh implements Mesher.
func (b *BicubicMesher) Mesh(img image.Image, group grid.Vec2i, out *Mesh) error {
	hf, err := heightfield(img)
	if err != nil {
		return err
	}
	origin, offset := groupOffset(group, b.CellInGroupCount)
	out.Reset(offset)

	s := max(1, b.Subdivision)
	step := 1 / float32(s)
	values := make([]float32, (s+1)*(s+1))

	heightCells(hf, group, b.CellInGroupCount).ForEach(func(cell grid.Vec2i) {
		var ctrl [4][4]float32 // [x][y]
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				ctrl[i][j] = hf.SampleClamped(cell.Add(grid.Vec2i{X: i - 1, Y: j - 1}))
			}
		}

		for ix := 0; ix <= s; ix++ {
			tx := step * float32(ix)
			var col [4]float32
			for j := 0; j < 4; j++ {
				col[j] = interpolate(ctrl[0][j], ctrl[1][j], ctrl[2][j], ctrl[3][j], tx)
			}
			for iy := 0; iy <= s; iy++ {
				values[iy*(s+1)+ix] = interpolate(col[0], col[1], col[2], col[3], step*float32(iy))
			}
		}

		l := cell.Sub(origin)
		at := func(ix, iy int) gmath.Vec3 {
			return gmath.Vec3{
				X: float32(l.X) + step*float32(ix),
				Y: float32(l.Y) + step*float32(iy),
				Z: values[iy*(s+1)+ix],
			}
		}
		for iy := 0; iy < s; iy++ {
			for ix := 0; ix < s; ix++ {
				out.AddQuad(at(ix, iy), at(ix, iy+1), at(ix+1, iy), at(ix+1, iy+1))
			}
		}
	})
	return nil
}

// interpolate evaluates the monotone cubic Hermite spline through y1 and y2
// at t in [0,1]. A slope is forced to zero where the neighbouring secants
// change sign, so the curve never leaves [min(y1,y2), max(y1,y2)] on
// monotone input.
func interpolate(y0, y1, y2, y3, t float32) float32 {
	dys0 := y1 - y0
	dys1 := y2 - y1
	dys2 := y3 - y2

	var c1s1, c1s2 float32
	if dys0*dys1 > 0 {
		c1s1 = 6 / (3/dys0 + 3/dys1)
	}
	if dys1*dys2 > 0 {
		c1s2 = 6 / (3/dys1 + 3/dys2)
	}

	c3 := c1s1 + c1s2 - 2*dys1
	c2 := dys1 - c1s1 - c3
	return y1 + c1s1*t + c2*t*t + c3*t*t*t
}
