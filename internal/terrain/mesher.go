package terrain

import (
	"errors"
	"fmt"

	"github.com/Faultbox/terramesh/internal/config"
	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

var (
	// ErrUnsupportedImage is returned when a mesher receives a snapshot of
	// the wrong kind.
	ErrUnsupportedImage = errors.New("terrain: unsupported image")
	// ErrTriangulationLookupMiss reports an occupancy pattern missing from
	// the triangulation table.
	ErrTriangulationLookupMiss = errors.New("terrain: triangulation lookup miss")
	// ErrNoStrategy is returned by NewMesher for settings no mesher handles.
	ErrNoStrategy = errors.New("terrain: no mesher for settings")
)

// Mesher fills out with the triangles of one group. Vertices are local to
// the group origin, which is stored in out.Offset. The caller finalizes the
// mesh.
type Mesher interface {
	Mesh(img image.Image, group grid.Vec2i, out *Mesh) error
}

// NewMesher picks the mesher for the configured image kind and
// interpolation settings.
func NewMesher(cfg *config.Config) (Mesher, error) {
	cells := cfg.Terrain.CellInGroupCount.XY()
	interp := cfg.Interpolation

	switch {
	case cfg.Image.Kind == config.KindOccupancy:
		return &OccupancyMesher{CellInGroupCount: cells}, nil
	case interp.Algorithm == config.AlgorithmCubic && interp.MeshSubdivision > 1:
		return &BicubicMesher{CellInGroupCount: cells, Subdivision: interp.MeshSubdivision}, nil
	case interp.ImageSubdivision > 1 && interp.MeshSubdivision == 1:
		return &BatchedMesher{CellInGroupCount: cells}, nil
	case interp.MeshSubdivision == 1:
		return &DirectMesher{CellInGroupCount: cells}, nil
	}
	return nil, fmt.Errorf("%w: algorithm %s, mesh subdivision %d",
		ErrNoStrategy, interp.Algorithm, interp.MeshSubdivision)
}

// TopologyDistance is how far, in cells, a changed sample can affect the
// generated surface. The bicubic mesher reads a 4x4 neighbourhood.
func TopologyDistance(cfg *config.Config) int {
	if cfg.Image.Kind == config.KindHeightfield &&
		cfg.Interpolation.Algorithm == config.AlgorithmCubic &&
		cfg.Interpolation.MeshSubdivision > 1 {
		return 2
	}
	return 1
}

// TriangleCapacity returns the fixed mesh size for a group, or 0 when meshes
// must grow on demand.
func TriangleCapacity(cfg *config.Config) int {
	if cfg.Interpolation.DynamicMeshes || cfg.Image.Kind == config.KindOccupancy {
		return 0
	}
	s := cfg.Interpolation.MeshSubdivision
	return cfg.Terrain.CellInGroupCount.XY().AreaSum() * 2 * s * s
}

// NewMeshFor allocates a mesh for the given capacity, 0 meaning expanding.
func NewMeshFor(capacity int) *Mesh {
	if capacity <= 0 {
		return NewExpandingMesh()
	}
	return NewFixedMesh(capacity)
}

func heightfield(img image.Image) (*image.Image2f, error) {
	hf, ok := img.(*image.Image2f)
	if !ok {
		return nil, unsupported(img, "heightfield")
	}
	return hf, nil
}

func unsupported(img image.Image, want string) error {
	return fmt.Errorf("%w: %T, want %s", ErrUnsupportedImage, img, want)
}

// heightCells returns the group's cells that have all four corners inside
// the field.
func heightCells(img *image.Image2f, group, cellInGroup grid.Vec2i) grid.Range2i {
	field := grid.NewRange2i(grid.Vec2i{}, img.Size().Sub(grid.Vec2i{X: 1, Y: 1}))
	return grid.Range2iFromMinAndSize(group.Mul(cellInGroup), cellInGroup).IntersectWith(field)
}

func groupOffset(group, cellInGroup grid.Vec2i) (grid.Vec2i, gmath.Vec3) {
	origin := group.Mul(cellInGroup)
	return origin, gmath.Vec3{X: float32(origin.X), Y: float32(origin.Y)}
}

func vec3(x, y int, z float32) gmath.Vec3 {
	return gmath.Vec3{X: float32(x), Y: float32(y), Z: z}
}
