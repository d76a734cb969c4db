package sim

import (
	"fmt"
	"math"

	"github.com/Faultbox/terramesh/internal/config"
	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// Field generators.
const (
	GeneratorFlat   = "flat"
	GeneratorHills  = "hills"
	GeneratorSphere = "sphere"
)

// store is the editable field behind the simulation, one of the two kinds.
type store struct {
	heights *image.EditableImage2f
	voxels  *image.EditableImage3b
}

func (s store) source() image.Source {
	if s.voxels != nil {
		return s.voxels
	}
	return s.heights
}

// newStore builds the initial field described by cfg.Image.
func newStore(cfg config.ImageConfig) (store, error) {
	opts := []image.Option{image.WithMaxConstraintPasses(cfg.MaxConstraintPasses)}
	switch cfg.Constraint {
	case config.ConstraintSlope:
		opts = append(opts, image.WithConstraint2f(image.SlopeConstraint{MaxSlope: cfg.MaxSlope}))
	case config.ConstraintTile:
		opts = append(opts, image.WithConstraint2f(image.NewTileConstraint(cfg.TileStep)))
	case config.ConstraintSupport:
		opts = append(opts, image.WithConstraint3b(image.SupportConstraint{}))
	}

	if cfg.Kind == config.KindOccupancy {
		data, err := voxelField(cfg)
		if err != nil {
			return store{}, err
		}
		return store{voxels: image.NewEditableImage3bFromData(data, opts...)}, nil
	}

	size := cfg.Size.XY()
	switch cfg.Generator {
	case "", GeneratorFlat:
		return store{heights: image.NewEditableImage2f(size, cfg.InitialValue*cfg.Scale, opts...)}, nil
	case GeneratorHills:
		data := grid.NewMatrix2[float32](size)
		data.Range().ForEach(func(p grid.Vec2i) {
			data.Set(p, cfg.InitialValue+hill(p))
		})
		return store{heights: image.NewEditableImage2fFromData(data, cfg.Scale, opts...)}, nil
	}
	return store{}, fmt.Errorf("unknown heightfield generator %q", cfg.Generator)
}

func voxelField(cfg config.ImageConfig) (*grid.Matrix3[bool], error) {
	data := grid.NewMatrix3[bool](cfg.Size)
	size := cfg.Size

	switch cfg.Generator {
	case "", GeneratorFlat:
		ground := max(1, size.Z/2)
		data.Range().ForEach(func(p grid.Vec3i) {
			data.Set(p, p.Z < ground)
		})
	case GeneratorHills:
		data.Range().ForEach(func(p grid.Vec3i) {
			top := float32(size.Z)/3 + hill(p.XY())
			data.Set(p, float32(p.Z) < top)
		})
	case GeneratorSphere:
		c := [3]float64{float64(size.X-1) / 2, float64(size.Y-1) / 2, float64(size.Z-1) / 2}
		r := float64(min(size.X, size.Y, size.Z)) / 3
		data.Range().ForEach(func(p grid.Vec3i) {
			dx, dy, dz := float64(p.X)-c[0], float64(p.Y)-c[1], float64(p.Z)-c[2]
			data.Set(p, dx*dx+dy*dy+dz*dz <= r*r)
		})
	default:
		return nil, fmt.Errorf("unknown occupancy generator %q", cfg.Generator)
	}
	return data, nil
}

// hill is a smooth rolling surface between -2 and 2.
func hill(p grid.Vec2i) float32 {
	x, y := float64(p.X), float64(p.Y)
	return float32(math.Sin(x/7) + math.Cos(y/5))
}
