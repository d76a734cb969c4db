package sim

import (
	"github.com/Faultbox/terramesh/internal/terrain"
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// CountingUpdater stands in for a renderer. It keeps the latest triangle
// count of every live group and counts what it was asked to do.
type CountingUpdater struct {
	Updates      int
	Removes      int
	BoundsDrawn  int
	UploadedTris int

	live map[grid.Vec2i]int
}

// NewCountingUpdater returns an empty updater.
func NewCountingUpdater() *CountingUpdater {
	return &CountingUpdater{live: make(map[grid.Vec2i]int)}
}

// UpdateMesh implements generator.MeshUpdater.
func (u *CountingUpdater) UpdateMesh(g grid.Vec2i, mesh *terrain.Mesh) {
	u.Updates++
	u.UploadedTris += mesh.TriangleCount()
	u.live[g] = mesh.TriangleCount()
}

// RemoveMesh implements generator.MeshUpdater.
func (u *CountingUpdater) RemoveMesh(g grid.Vec2i) {
	u.Removes++
	delete(u.live, g)
}

// DrawBounds implements generator.BoundsDrawer.
func (u *CountingUpdater) DrawBounds(_ grid.Vec2i, _ gmath.Vec3, lines []gmath.Vec3) {
	if len(lines) > 0 {
		u.BoundsDrawn++
	}
}

// LiveGroups returns how many groups currently have a mesh.
func (u *CountingUpdater) LiveGroups() int { return len(u.live) }

// LiveTriangles returns the triangle count over all live meshes.
func (u *CountingUpdater) LiveTriangles() int {
	n := 0
	for _, t := range u.live {
		n += t
	}
	return n
}
