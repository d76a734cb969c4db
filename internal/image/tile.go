package image

import (
	"math"

	"github.com/Faultbox/terramesh/internal/sampled"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// Base tycoon tiles in template space: the highest corner is 1, lower
// corners count steps below it.
var tycoonTiles = []sampled.Data2f{
	{X0Y0: 1, X0Y1: 1, X1Y0: 1, X1Y1: 1},  // plane
	{X0Y0: 0, X0Y1: 1, X1Y0: 0, X1Y1: 1},  // slope
	{X0Y0: -1, X0Y1: 0, X1Y0: 0, X1Y1: 1}, // diagonal slope
	{X0Y0: 0, X0Y1: 0, X1Y0: 0, X1Y1: 1},  // partial up
	{X0Y0: 0, X0Y1: 1, X1Y0: 1, X1Y1: 1},  // partial down
}

// TileConstraint snaps every edited cell to the closest tycoon-style tile so
// the terrain is made only of flat tiles, slopes and corner pieces.
type TileConstraint struct {
	Step      float32
	templates []sampled.Data2f
}

// NewTileConstraint expands the base tiles through all rotations and
// reflections. step is the height of one terrain level.
func NewTileConstraint(step float32) *TileConstraint {
	c := &TileConstraint{Step: step}
	seen := map[sampled.Data2f]bool{}
	for _, base := range tycoonTiles {
		for _, s := range base.Symmetries() {
			if !seen[s] {
				seen[s] = true
				c.templates = append(c.templates, s)
			}
		}
	}
	return c
}

// IsTile reports whether the cell already is a tile.
func (c *TileConstraint) IsTile(s sampled.Data2f) bool {
	norm := s.NormalizeFromTop(c.Step)
	for _, base := range tycoonTiles {
		if sampled.SymmetricEqual(base, norm) && c.denormalize(norm, s.Max()) == s {
			return true
		}
	}
	return false
}

// Process returns the tile closest to the cell. Ties go to the template
// listed first.
func (c *TileConstraint) Process(s sampled.Data2f) sampled.Data2f {
	norm := s.NormalizeFromTop(c.Step)
	best := c.templates[0]
	bestDiff := float32(math.Inf(1))
	for _, t := range c.templates {
		if d := t.Diff(norm); d < bestDiff {
			best, bestDiff = t, d
		}
	}
	return c.denormalize(best, s.Max())
}

func (c *TileConstraint) denormalize(t sampled.Data2f, top float32) sampled.Data2f {
	f := func(v float32) float32 { return top + (v-1)*c.Step }
	return sampled.Data2f{X0Y0: f(t.X0Y0), X0Y1: f(t.X0Y1), X1Y0: f(t.X1Y0), X1Y1: f(t.X1Y1)}
}

// FixImage implements Constraint2f. Every cell with a corner in the
// invalidated region is snapped; the returned region covers the corners of
// cells that changed.
func (c *TileConstraint) FixImage(field *grid.Matrix2[float32], invalidated grid.Range2i, _ Direction) grid.Range2i {
	cells := grid.NewRange2i(invalidated.Min.Sub(unit2), invalidated.Max).
		IntersectWith(grid.NewRange2i(grid.Vec2i{}, field.Size.Sub(unit2)))

	changed := invalidated
	cells.ForEach(func(cell grid.Vec2i) {
		x1 := cell.Add(grid.Vec2i{X: 1})
		y1 := cell.Add(grid.Vec2i{Y: 1})
		xy := cell.Add(unit2)
		s := sampled.Data2f{X0Y0: field.At(cell), X0Y1: field.At(y1), X1Y0: field.At(x1), X1Y1: field.At(xy)}
		if c.IsTile(s) {
			return
		}
		t := c.Process(s)
		if t == s {
			return
		}
		field.Set(cell, t.X0Y0)
		field.Set(y1, t.X0Y1)
		field.Set(x1, t.X1Y0)
		field.Set(xy, t.X1Y1)
		changed = changed.CombineWith(grid.Range2iFromMinAndSize(cell, grid.Vec2i{X: 2, Y: 2}))
	})
	return changed
}
