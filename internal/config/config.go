// Package config handles terrain pipeline configuration loading and management.
package config

import "github.com/Faultbox/terramesh/pkg/grid"

// Image kinds.
const (
	KindHeightfield = "heightfield"
	KindOccupancy   = "occupancy"
)

// Interpolation algorithms.
const (
	AlgorithmLinear = "linear"
	AlgorithmCubic  = "cubic"
)

// Constraint names.
const (
	ConstraintNone    = "none"
	ConstraintSlope   = "slope"
	ConstraintTile    = "tile"
	ConstraintSupport = "support"
)

// Config holds all pipeline settings.
type Config struct {
	Image         ImageConfig         `yaml:"image"`
	Terrain       TerrainConfig       `yaml:"terrain"`
	Interpolation InterpolationConfig `yaml:"interpolation"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ImageConfig describes the editable field and its constraint hook.
type ImageConfig struct {
	Kind                string     `yaml:"kind"`
	Size                grid.Vec3i `yaml:"size"`
	Generator           string     `yaml:"generator"` // flat, hills or sphere
	InitialValue        float32    `yaml:"initial_value"`
	Scale               float32    `yaml:"scale"`
	Constraint          string     `yaml:"constraint"`
	MaxSlope            float32    `yaml:"max_slope"`
	TileStep            float32    `yaml:"tile_step"`
	MaxConstraintPasses int        `yaml:"max_constraint_passes"`
}

// TerrainConfig holds group partitioning and generation settings.
type TerrainConfig struct {
	CellInGroupCount grid.Vec3i `yaml:"cell_in_group_count"`
	FlipTriangles    bool       `yaml:"flip_triangles"`
	DrawBounds       bool       `yaml:"draw_bounds"`
	Async            bool       `yaml:"async"`
	Workers          int        `yaml:"workers"`
	SmoothNormals    bool       `yaml:"smooth_normals"`
}

// InterpolationConfig selects the mesher.
type InterpolationConfig struct {
	Algorithm        string `yaml:"algorithm"`
	ImageSubdivision int    `yaml:"image_subdivision"`
	MeshSubdivision  int    `yaml:"mesh_subdivision"`
	DynamicMeshes    bool   `yaml:"dynamic_meshes"` // growable buffers instead of fixed capacity
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Image: ImageConfig{
			Kind:                KindHeightfield,
			Size:                grid.Vec3i{X: 129, Y: 129, Z: 32},
			Generator:           "hills",
			Scale:               1,
			Constraint:          ConstraintNone,
			MaxSlope:            1,
			TileStep:            1,
			MaxConstraintPasses: 4,
		},
		Terrain: TerrainConfig{
			CellInGroupCount: grid.Vec3i{X: 16, Y: 16, Z: 16},
			Async:            true,
			Workers:          4,
		},
		Interpolation: InterpolationConfig{
			Algorithm:        AlgorithmLinear,
			ImageSubdivision: 1,
			MeshSubdivision:  1,
			DynamicMeshes:    true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// NeedsRebuild reports whether switching from c to next invalidates the
// running terrain. Logging changes never do.
func (c *Config) NeedsRebuild(next *Config) bool {
	return c.Image != next.Image ||
		c.Terrain != next.Terrain ||
		c.Interpolation != next.Interpolation
}
