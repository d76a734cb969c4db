package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks the config for values the pipeline cannot run with and
// returns all problems at once.
func (c *Config) Validate() error {
	var err error
	fail := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	switch c.Image.Kind {
	case KindHeightfield, KindOccupancy:
	default:
		fail("image.kind %q", c.Image.Kind)
	}
	if c.Image.Size.X < 2 || c.Image.Size.Y < 2 {
		fail("image.size %v must be at least 2x2", c.Image.Size)
	}
	if c.Image.Kind == KindOccupancy && c.Image.Size.Z < 2 {
		fail("image.size.z %d must be at least 2 for occupancy", c.Image.Size.Z)
	}
	if c.Image.Scale == 0 {
		fail("image.scale must be non-zero")
	}
	switch c.Image.Constraint {
	case "", ConstraintNone:
	case ConstraintSlope, ConstraintTile:
		if c.Image.Kind != KindHeightfield {
			fail("image.constraint %q needs a heightfield", c.Image.Constraint)
		}
	case ConstraintSupport:
		if c.Image.Kind != KindOccupancy {
			fail("image.constraint %q needs an occupancy image", c.Image.Constraint)
		}
	default:
		fail("image.constraint %q", c.Image.Constraint)
	}
	if c.Image.Constraint == ConstraintSlope && c.Image.MaxSlope <= 0 {
		fail("image.max_slope must be positive")
	}
	if c.Image.Constraint == ConstraintTile && c.Image.TileStep <= 0 {
		fail("image.tile_step must be positive")
	}
	if c.Image.MaxConstraintPasses < 1 {
		fail("image.max_constraint_passes must be at least 1")
	}

	cells := c.Terrain.CellInGroupCount
	if cells.X <= 0 || cells.Y <= 0 {
		fail("terrain.cell_in_group_count %v must be positive", cells)
	}
	if c.Terrain.Async && c.Terrain.Workers < 1 {
		fail("terrain.workers must be at least 1 in async mode")
	}

	switch c.Interpolation.Algorithm {
	case AlgorithmLinear, AlgorithmCubic:
	default:
		fail("interpolation.algorithm %q", c.Interpolation.Algorithm)
	}
	if c.Interpolation.ImageSubdivision < 1 {
		fail("interpolation.image_subdivision must be at least 1")
	}
	if c.Interpolation.MeshSubdivision < 1 {
		fail("interpolation.mesh_subdivision must be at least 1")
	}
	if c.Interpolation.MeshSubdivision > 1 && c.Interpolation.Algorithm != AlgorithmCubic {
		fail("interpolation.mesh_subdivision %d requires the cubic algorithm", c.Interpolation.MeshSubdivision)
	}
	if c.Image.Kind == KindOccupancy && !c.Interpolation.DynamicMeshes {
		fail("occupancy meshes have no fixed capacity, interpolation.dynamic_meshes must be set")
	}

	return err
}
