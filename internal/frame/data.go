// Package frame assembles the per-tick input of group selection and mesh
// generation.
package frame

import (
	"fmt"
	"sync/atomic"

	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/internal/pool"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// Groups is a set of group keys.
type Groups map[grid.Vec2i]struct{}

// Contains reports whether g is in the set.
func (s Groups) Contains(g grid.Vec2i) bool {
	_, ok := s[g]
	return ok
}

// Data is everything one tick knows about the terrain. It is shared by the
// generators that picked it up and reference counted: the first Activate
// locks the snapshot, the last Deactivate unlocks it and recycles the Data.
type Data struct {
	Image            image.Image
	InvalidatedCells grid.Range2i
	Visibility       Visibility
	ExistingGroups   Groups
	CellInGroupCount grid.Vec2i

	refs atomic.Int32
	pool *pool.Pool[*Data]
}

// Activate takes a reference.
func (d *Data) Activate() {
	if d.refs.Add(1) == 1 {
		d.Image.Lock()
	}
}

// Deactivate drops a reference.
func (d *Data) Deactivate() {
	n := d.refs.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		panic(fmt.Sprintf("frame: Deactivate without Activate (refs %d)", n))
	}
	d.Image.Unlock()
	d.Image = nil
	d.Visibility = nil
	d.ExistingGroups = nil
	d.InvalidatedCells = grid.Range2i{}
	if d.pool != nil {
		d.pool.Put(d)
	}
}

// Refs returns the current reference count.
func (d *Data) Refs() int { return int(d.refs.Load()) }
