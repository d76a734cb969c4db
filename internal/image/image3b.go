package image

import (
	"github.com/Faultbox/terramesh/internal/sampled"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// Image3b is a read-only occupancy snapshot.
type Image3b struct {
	buf         *buffer[*grid.Matrix3[bool]]
	pool        *bufferPool[*grid.Matrix3[bool]]
	invalidated grid.Range3i
}

// Size returns the number of samples along each axis.
func (img *Image3b) Size() grid.Vec3i { return img.buf.data.Size }

// InvalidatedArea is the region changed since the previous snapshot.
func (img *Image3b) InvalidatedArea() grid.Range3i { return img.invalidated }

// InvalidatedFootprint implements Image.
func (img *Image3b) InvalidatedFootprint() grid.Range2i { return img.invalidated.XY() }

// RangeZ spans the whole Z extent of the field.
func (img *Image3b) RangeZ() grid.Area1f {
	return grid.Area1f{Min: 0, Max: float32(img.Size().Z)}
}

// Sample returns the occupancy at p, or false outside the field.
func (img *Image3b) Sample(p grid.Vec3i) bool {
	m := img.buf.data
	if !m.Contains(p) {
		return false
	}
	return m.At(p)
}

// SampleCell returns the corners of the cell whose lowest corner is cell.
func (img *Image3b) SampleCell(cell grid.Vec3i) sampled.Data3b {
	var d sampled.Data3b
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				if img.Sample(cell.Add(grid.Vec3i{X: x, Y: y, Z: z})) {
					d = d.With(x, y, z, true)
				}
			}
		}
	}
	return d
}

// AnyData reports whether any sample the cells may read is filled. Cells
// read the samples next to them on either side, and samples outside the
// field count as empty.
func (img *Image3b) AnyData(cells grid.Range2i) bool {
	if cells.IsEmpty() {
		return false
	}
	m := img.buf.data
	one := grid.Vec2i{X: 1, Y: 1}
	probe := grid.NewRange3i(
		cells.Min.Sub(one).XYZ(0),
		cells.Max.Add(one).XYZ(m.Size.Z),
	).IntersectWith(m.Range())

	found := false
	probe.ForEach(func(p grid.Vec3i) {
		if !found && m.At(p) {
			found = true
		}
	})
	return found
}

// Lock keeps the snapshot buffer from being reused until Unlock.
func (img *Image3b) Lock() { img.pool.lock(img.buf) }

// Unlock releases a Lock.
func (img *Image3b) Unlock() { img.pool.unlock(img.buf) }
