package generator

import (
	"github.com/Faultbox/terramesh/internal/terrain"
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// MeshUpdater is the render adapter. Both methods are called on the driver
// goroutine. The mesh passed to UpdateMesh is not modified until the next
// UpdateMesh or RemoveMesh for the same group, so the adapter may upload it
// lazily within that window.
type MeshUpdater interface {
	UpdateMesh(group grid.Vec2i, mesh *terrain.Mesh)
	RemoveMesh(group grid.Vec2i)
}

// BoundsDrawer receives group bounds as a line list when bounds drawing is
// enabled.
type BoundsDrawer interface {
	DrawBounds(group grid.Vec2i, offset gmath.Vec3, lines []gmath.Vec3)
}
