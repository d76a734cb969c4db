package image

import (
	"github.com/Faultbox/terramesh/internal/sampled"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// Image2f is a read-only heightfield snapshot.
type Image2f struct {
	buf         *buffer[*grid.Matrix2[float32]]
	pool        *bufferPool[*grid.Matrix2[float32]]
	invalidated grid.Range2i
	rangeZ      grid.Area1f
}

// Size returns the number of samples along each axis.
func (img *Image2f) Size() grid.Vec2i { return img.buf.data.Size }

// InvalidatedArea is the region changed since the previous snapshot.
func (img *Image2f) InvalidatedArea() grid.Range2i { return img.invalidated }

// InvalidatedFootprint implements Image.
func (img *Image2f) InvalidatedFootprint() grid.Range2i { return img.invalidated }

// RangeZ is the observed height range.
func (img *Image2f) RangeZ() grid.Area1f { return img.rangeZ }

// Sample returns the height at p, or 0 outside the field.
func (img *Image2f) Sample(p grid.Vec2i) float32 {
	m := img.buf.data
	if !m.Contains(p) {
		return 0
	}
	return m.At(p)
}

// SampleClamped returns the height at the in-field sample nearest to p.
func (img *Image2f) SampleClamped(p grid.Vec2i) float32 {
	m := img.buf.data
	if m.Size.AnyNonPositive() {
		return 0
	}
	p.X = max(0, min(m.Size.X-1, p.X))
	p.Y = max(0, min(m.Size.Y-1, p.Y))
	return m.At(p)
}

// SampleCell returns the corners of the cell whose lowest corner is cell.
func (img *Image2f) SampleCell(cell grid.Vec2i) sampled.Data2f {
	return sampled.Data2f{
		X0Y0: img.Sample(cell),
		X0Y1: img.Sample(cell.Add(grid.Vec2i{X: 0, Y: 1})),
		X1Y0: img.Sample(cell.Add(grid.Vec2i{X: 1, Y: 0})),
		X1Y1: img.Sample(cell.Add(grid.Vec2i{X: 1, Y: 1})),
	}
}

// Height returns the bilinearly interpolated height at a continuous field
// position, clamped to the field.
func (img *Image2f) Height(x, y float32) float32 {
	return bilinear(img.buf.data, x, y)
}

func bilinear(m *grid.Matrix2[float32], x, y float32) float32 {
	size := m.Size
	if size.X < 2 || size.Y < 2 {
		if size.AnyNonPositive() {
			return 0
		}
		return m.At(grid.Vec2i{})
	}

	cx := max(0, min(size.X-2, int(x)))
	cy := max(0, min(size.Y-2, int(y)))
	fx := clampf(x-float32(cx), 0, 1)
	fy := clampf(y-float32(cy), 0, 1)

	c := grid.Vec2i{X: cx, Y: cy}
	low := m.At(c)*(1-fx) + m.At(c.Add(grid.Vec2i{X: 1}))*fx
	high := m.At(c.Add(grid.Vec2i{Y: 1}))*(1-fx) + m.At(c.Add(grid.Vec2i{X: 1, Y: 1}))*fx
	return low*(1-fy) + high*fy
}

// AnyData reports whether the cells touch the field. Every in-field cell of
// a heightfield carries a surface.
func (img *Image2f) AnyData(cells grid.Range2i) bool {
	return cells.Overlaps(img.buf.data.Range())
}

// Lock keeps the snapshot buffer from being reused until Unlock.
func (img *Image2f) Lock() { img.pool.lock(img.buf) }

// Unlock releases a Lock.
func (img *Image2f) Unlock() { img.pool.unlock(img.buf) }

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
