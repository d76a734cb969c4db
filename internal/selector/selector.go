// Package selector decides, once per tick, which terrain groups have to be
// regenerated and which can keep their current mesh.
package selector

import (
	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/internal/frame"
	"github.com/Faultbox/terramesh/internal/logger"
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// Actions partitions the visible groups. Both lists are in row-major group
// order and never share a key.
type Actions struct {
	ToRecompute []grid.Vec2i
	ToKeep      []grid.Vec2i
}

// Len returns the number of visible groups.
func (a Actions) Len() int { return len(a.ToRecompute) + len(a.ToKeep) }

// Visible returns every group in a as a set.
func (a Actions) Visible() frame.Groups {
	s := make(frame.Groups, a.Len())
	for _, g := range a.ToRecompute {
		s[g] = struct{}{}
	}
	for _, g := range a.ToKeep {
		s[g] = struct{}{}
	}
	return s
}

// Selector picks groups by visibility. It remembers groups found empty so
// the field is probed only once for them, until an edit touches them again.
type Selector struct {
	empty map[grid.Vec2i]struct{}
	log   *zap.Logger
}

// New returns a selector with an empty memo.
func New() *Selector {
	return &Selector{
		empty: make(map[grid.Vec2i]struct{}),
		log:   logger.Named("selector"),
	}
}

// GroupsToUpdate partitions the groups intersecting d.Visibility. Groups
// active before but missing from the result are no longer visible.
func (s *Selector) GroupsToUpdate(d *frame.Data) Actions {
	var actions Actions
	if d == nil || d.Visibility == nil || d.CellInGroupCount.AnyNonPositive() {
		return actions
	}

	cig := d.CellInGroupCount
	rangeZ := d.Image.RangeZ()
	boxSize := gmath.Vec3{X: float32(cig.X), Y: float32(cig.Y), Z: rangeZ.Size()}

	candidates(d.Visibility, cig).ForEach(func(g grid.Vec2i) {
		origin := g.Mul(cig)
		box := gmath.NewBox3FromMinSize(gmath.Vec3{X: float32(origin.X), Y: float32(origin.Y), Z: rangeZ.Min}, boxSize)
		if !d.Visibility.Intersects(box) {
			return
		}

		cells := grid.Range2iFromMinAndSize(origin, cig)
		switch {
		case cells.Overlaps(d.InvalidatedCells):
			delete(s.empty, g)
			actions.ToRecompute = append(actions.ToRecompute, g)
		case d.ExistingGroups.Contains(g):
			actions.ToKeep = append(actions.ToKeep, g)
		case s.isEmpty(g) || !d.Image.AnyData(cells):
			s.empty[g] = struct{}{}
			actions.ToKeep = append(actions.ToKeep, g)
		default:
			actions.ToRecompute = append(actions.ToRecompute, g)
		}
	})

	s.log.Debug("groups selected",
		zap.Int("recompute", len(actions.ToRecompute)),
		zap.Int("keep", len(actions.ToKeep)),
		zap.Int("memoized_empty", len(s.empty)))
	return actions
}

// EmptyCount returns how many groups are memoized as empty.
func (s *Selector) EmptyCount() int { return len(s.empty) }

func (s *Selector) isEmpty(g grid.Vec2i) bool {
	_, ok := s.empty[g]
	return ok
}

// candidates returns the groups covering the visibility bounds.
func candidates(v frame.Visibility, cig grid.Vec2i) grid.Range2i {
	min, max := v.LocalBounds()
	size := gmath.Vec2{X: float32(cig.X), Y: float32(cig.Y)}
	minX, minY := min.Div(size).Floor()
	maxX, maxY := max.Div(size).Ceil()
	return grid.NewRange2i(grid.Vec2i{X: minX, Y: minY}, grid.Vec2i{X: maxX, Y: maxY})
}
