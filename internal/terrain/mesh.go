// Package terrain turns field snapshots into triangle meshes, one mesh per
// group of cells.
package terrain

import (
	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/internal/logger"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// Mesh is a triangle soup with per-vertex normals and UVs. Vertices are
// stored relative to Offset so they stay small; Bounds is in terrain space.
//
// A mesh either grows on demand or has a fixed triangle capacity. A fixed
// mesh drops triangles beyond its capacity and pads the unused slots with
// degenerate triangles on Finalize, so its buffers never change size.
type Mesh struct {
	Vertices []gmath.Vec3
	Normals  []gmath.Vec3
	UVs      []gmath.Vec2
	Indices  []uint32

	Offset gmath.Vec3
	Bounds gmath.Box3

	// Optional hooks applied to every vertex and UV as they are added.
	VertexPostProcess func(gmath.Vec3) gmath.Vec3
	UVPostProcess     func(gmath.Vec2) gmath.Vec2

	capacity  int
	triangles int
	overflow  int
}

// NewExpandingMesh returns a mesh that grows as triangles are added.
func NewExpandingMesh() *Mesh {
	return &Mesh{}
}

// NewFixedMesh returns a mesh holding exactly triangles triangles.
func NewFixedMesh(triangles int) *Mesh {
	n := triangles * 3
	return &Mesh{
		Vertices: make([]gmath.Vec3, 0, n),
		Normals:  make([]gmath.Vec3, 0, n),
		UVs:      make([]gmath.Vec2, 0, n),
		Indices:  make([]uint32, 0, n),
		capacity: triangles,
	}
}

// Fixed reports whether the mesh has a fixed capacity.
func (m *Mesh) Fixed() bool { return m.capacity > 0 }

// Capacity returns the fixed triangle capacity, or 0 for expanding meshes.
func (m *Mesh) Capacity() int { return m.capacity }

// TriangleCount returns the number of triangles added since Reset.
// Degenerate padding is not counted.
func (m *Mesh) TriangleCount() int { return m.triangles }

// Overflow returns how many triangles were dropped since Reset.
func (m *Mesh) Overflow() int { return m.overflow }

// Reset clears the mesh for reuse, keeping its buffers.
func (m *Mesh) Reset(offset gmath.Vec3) {
	m.Vertices = m.Vertices[:0]
	m.Normals = m.Normals[:0]
	m.UVs = m.UVs[:0]
	m.Indices = m.Indices[:0]
	m.Offset = offset
	m.Bounds = gmath.Box3{Min: offset, Max: offset}
	m.triangles = 0
	m.overflow = 0
}

// AddTriangle appends a counter-clockwise triangle in mesh-local
// coordinates. The face normal follows the right-hand rule.
func (m *Mesh) AddTriangle(a, b, c gmath.Vec3) {
	if m.capacity > 0 && m.triangles >= m.capacity {
		m.overflow++
		return
	}
	if m.VertexPostProcess != nil {
		a, b, c = m.VertexPostProcess(a), m.VertexPostProcess(b), m.VertexPostProcess(c)
	}
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()

	base := uint32(len(m.Vertices))
	for _, v := range [3]gmath.Vec3{a, b, c} {
		uv := gmath.Vec2{X: v.X, Y: v.Y}
		if m.UVPostProcess != nil {
			uv = m.UVPostProcess(uv)
		}
		m.Vertices = append(m.Vertices, v)
		m.Normals = append(m.Normals, n)
		m.UVs = append(m.UVs, uv)
	}
	m.Indices = append(m.Indices, base, base+1, base+2)
	m.triangles++
}

// AddQuad appends two triangles covering the quad. Corners are named by
// their position in the quad; the split runs from x0y0 to x1y1.
func (m *Mesh) AddQuad(x0y0, x0y1, x1y0, x1y1 gmath.Vec3) {
	m.AddTriangle(x0y0, x1y0, x1y1)
	m.AddTriangle(x0y0, x1y1, x0y1)
}

// Finalize seals the mesh after generation: computes Bounds, reverses the
// winding when flip is set and pads fixed meshes up to capacity.
func (m *Mesh) Finalize(flip bool) {
	if m.overflow > 0 {
		logger.Named("terrain").Warn("fixed mesh overflow",
			zap.Int("capacity", m.capacity),
			zap.Int("dropped", m.overflow))
	}

	if len(m.Vertices) > 0 {
		b := gmath.Box3{Min: m.Vertices[0], Max: m.Vertices[0]}
		for _, v := range m.Vertices[1:] {
			b = b.Encapsulate(v)
		}
		m.Bounds = gmath.Box3{Min: b.Min.Add(m.Offset), Max: b.Max.Add(m.Offset)}
	} else {
		m.Bounds = gmath.Box3{Min: m.Offset, Max: m.Offset}
	}

	if flip {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
		}
		for i := range m.Normals {
			m.Normals[i] = m.Normals[i].Scale(-1)
		}
	}

	for t := m.triangles; t < m.capacity; t++ {
		base := uint32(len(m.Vertices))
		for k := 0; k < 3; k++ {
			m.Vertices = append(m.Vertices, gmath.Vec3{})
			m.Normals = append(m.Normals, gmath.Vec3{Z: 1})
			m.UVs = append(m.UVs, gmath.Vec2{})
		}
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
}

// SmoothNormals averages normals at shared vertex positions. Call it before
// Finalize.
func (m *Mesh) SmoothNormals() {
	const epsilon float32 = 0.001

	posMap := make(map[[3]int32][]int)
	for i, v := range m.Vertices {
		key := [3]int32{int32(v.X / epsilon), int32(v.Y / epsilon), int32(v.Z / epsilon)}
		posMap[key] = append(posMap[key], i)
	}

	for _, indices := range posMap {
		if len(indices) < 2 {
			continue
		}
		var sum gmath.Vec3
		for _, idx := range indices {
			sum = sum.Add(m.Normals[idx])
		}
		avg := sum.Normalize()
		for _, idx := range indices {
			m.Normals[idx] = avg
		}
	}
}
