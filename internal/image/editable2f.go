package image

import (
	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/internal/logger"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// EditableImage2f is a mutable heightfield.
type EditableImage2f struct {
	field      *grid.Matrix2[float32]
	constraint Constraint2f
	maxPasses  int

	pending grid.Range2i
	rangeZ  grid.Area1f

	buffers *bufferPool[*grid.Matrix2[float32]]
	image   *Image2f
	log     *zap.Logger
}

// NewEditableImage2f creates a heightfield of the given size filled with value.
func NewEditableImage2f(size grid.Vec2i, value float32, opts ...Option) *EditableImage2f {
	field := grid.NewMatrix2[float32](size)
	field.Fill(value)
	return newEditableImage2f(field, grid.Area1fPoint(value), opts)
}

// NewEditableImage2fFromData creates a heightfield from a copy of data with
// every value multiplied by scale.
func NewEditableImage2fFromData(data *grid.Matrix2[float32], scale float32, opts ...Option) *EditableImage2f {
	field := grid.NewMatrix2[float32](data.Size)
	rangeZ := grid.Area1f{}
	for i, v := range data.Data {
		v *= scale
		field.Data[i] = v
		if i == 0 {
			rangeZ = grid.Area1fPoint(v)
		}
		rangeZ = rangeZ.UnionWith(v)
	}
	return newEditableImage2f(field, rangeZ, opts)
}

func newEditableImage2f(field *grid.Matrix2[float32], rangeZ grid.Area1f, opts []Option) *EditableImage2f {
	o := buildOptions(opts)
	size := field.Size
	e := &EditableImage2f{
		field:      field,
		constraint: o.constraint2f,
		maxPasses:  o.maxPasses,
		rangeZ:     rangeZ,
		buffers: newBufferPool(func() *grid.Matrix2[float32] {
			return grid.NewMatrix2[float32](size)
		}),
		log: logger.Named("image"),
	}
	// Let the constraint settle the initial field, then publish all of it.
	e.invalidate(field.Range(), Unknown)
	e.pending = field.Range()
	return e
}

// Size returns the field dimensions.
func (e *EditableImage2f) Size() grid.Vec2i { return e.field.Size }

// Height returns the bilinearly interpolated height of the live field at a
// continuous position, clamped to the field. Like edits, it belongs to the
// driver goroutine.
func (e *EditableImage2f) Height(x, y float32) float32 { return bilinear(e.field, x, y) }

// PendingArea returns the region invalidated since the last snapshot.
func (e *EditableImage2f) PendingArea() grid.Range2i { return e.pending }

// BufferStats returns how many snapshot buffers were allocated and how many
// are locked right now.
func (e *EditableImage2f) BufferStats() (allocated, locked int) { return e.buffers.stats() }

// RequestAccess returns an accessor limited to area ∩ field bounds. Close it
// to publish the edit.
func (e *EditableImage2f) RequestAccess(area grid.Range2i) *Accessor2f {
	return &Accessor2f{
		store: e,
		area:  area.IntersectWith(e.field.Range()),
	}
}

// CreateImage publishes the current field. Without pending edits the
// previous snapshot is returned, re-tagged once with an empty invalidated
// region.
func (e *EditableImage2f) CreateImage() *Image2f {
	if e.pending.IsEmpty() && e.image != nil {
		if !e.image.invalidated.IsEmpty() {
			e.image = &Image2f{buf: e.image.buf, pool: e.buffers, rangeZ: e.image.rangeZ}
		}
		return e.image
	}

	buf := e.buffers.acquire()
	e.buffers.write(buf, func(m *grid.Matrix2[float32]) { m.CopyFrom(e.field) })

	e.image = &Image2f{
		buf:         buf,
		pool:        e.buffers,
		invalidated: e.pending,
		rangeZ:      e.rangeZ,
	}
	e.pending = grid.Range2i{}
	return e.image
}

// Snapshot implements Source.
func (e *EditableImage2f) Snapshot() Image { return e.CreateImage() }

func (e *EditableImage2f) commit(a *Accessor2f) {
	e.rangeZ = e.rangeZ.CombineWith(a.rangeZ)
	e.invalidate(a.area, directionOf(a.change))
}

// invalidate merges area into the pending region and runs the constraint.
// A constraint that grows the region is re-run on the grown region, at most
// maxPasses times in total.
func (e *EditableImage2f) invalidate(area grid.Range2i, dir Direction) {
	e.pending = e.pending.CombineWith(area)
	if e.constraint == nil || area.IsEmpty() {
		return
	}

	bounds := e.field.Range()
	region := area
	converged := false
	for pass := 0; pass < e.maxPasses; pass++ {
		extended := e.constraint.FixImage(e.field, region, dir).IntersectWith(bounds)
		e.pending = e.pending.CombineWith(extended)

		grown := region.CombineWith(extended)
		if grown == region {
			converged = true
			break
		}
		region = grown
	}
	if !converged {
		e.log.Warn("constraint propagation hit the pass cap",
			zap.Int("passes", e.maxPasses),
			zap.Stringer("region", region),
			zap.Stringer("direction", dir))
	}

	// The constraint may have moved values outside the observed range.
	region.ForEach(func(p grid.Vec2i) {
		e.rangeZ = e.rangeZ.UnionWith(e.field.At(p))
	})
}

// Accessor2f is a write-scoped view over part of a heightfield.
type Accessor2f struct {
	store  *EditableImage2f
	area   grid.Range2i
	change float64
	writes int
	rangeZ grid.Area1f
	closed bool
}

// Area returns the region this accessor may touch.
func (a *Accessor2f) Area() grid.Range2i { return a.area }

// Get returns the height at p, or 0 outside the accessor area.
func (a *Accessor2f) Get(p grid.Vec2i) float32 {
	if !a.area.Contains(p) {
		return 0
	}
	return a.store.field.At(p)
}

// Set writes the height at p. Writes outside the accessor area are ignored.
func (a *Accessor2f) Set(p grid.Vec2i, v float32) {
	if a.closed || !a.area.Contains(p) {
		return
	}
	field := a.store.field
	a.change += float64(v - field.At(p))
	field.Set(p, v)

	if a.writes == 0 {
		a.rangeZ = grid.Area1fPoint(v)
	}
	a.rangeZ = a.rangeZ.UnionWith(v)
	a.writes++
}

// Direction classifies the edit so far.
func (a *Accessor2f) Direction() Direction { return directionOf(a.change) }

// Close publishes the edit to the store. Accessors that wrote nothing leave
// the pending region untouched. Calling Close twice is a no-op.
func (a *Accessor2f) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.writes > 0 {
		a.store.commit(a)
	}
}
