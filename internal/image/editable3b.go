package image

import (
	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/internal/logger"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// EditableImage3b is a mutable occupancy field.
type EditableImage3b struct {
	field      *grid.Matrix3[bool]
	constraint Constraint3b
	maxPasses  int
	pending    grid.Range3i

	buffers *bufferPool[*grid.Matrix3[bool]]
	image   *Image3b
	log     *zap.Logger
}

// NewEditableImage3b creates an occupancy field of the given size.
func NewEditableImage3b(size grid.Vec3i, value bool, opts ...Option) *EditableImage3b {
	field := grid.NewMatrix3[bool](size)
	field.Fill(value)
	return newEditableImage3b(field, opts)
}

// NewEditableImage3bFromData creates an occupancy field from a copy of data.
func NewEditableImage3bFromData(data *grid.Matrix3[bool], opts ...Option) *EditableImage3b {
	field := grid.NewMatrix3[bool](data.Size)
	field.CopyFrom(data)
	return newEditableImage3b(field, opts)
}

func newEditableImage3b(field *grid.Matrix3[bool], opts []Option) *EditableImage3b {
	o := buildOptions(opts)
	size := field.Size
	e := &EditableImage3b{
		field:      field,
		constraint: o.constraint3b,
		maxPasses:  o.maxPasses,
		buffers: newBufferPool(func() *grid.Matrix3[bool] {
			return grid.NewMatrix3[bool](size)
		}),
		log: logger.Named("image"),
	}
	e.invalidate(field.Range(), Unknown)
	e.pending = field.Range()
	return e
}

// Size returns the field dimensions.
func (e *EditableImage3b) Size() grid.Vec3i { return e.field.Size }

// PendingArea returns the region invalidated since the last snapshot.
func (e *EditableImage3b) PendingArea() grid.Range3i { return e.pending }

// BufferStats returns how many snapshot buffers were allocated and how many
// are locked right now.
func (e *EditableImage3b) BufferStats() (allocated, locked int) { return e.buffers.stats() }

// RequestAccess returns an accessor limited to area ∩ field bounds.
func (e *EditableImage3b) RequestAccess(area grid.Range3i) *Accessor3b {
	return &Accessor3b{
		store: e,
		area:  area.IntersectWith(e.field.Range()),
	}
}

// CreateImage publishes the current field. See EditableImage2f.CreateImage.
func (e *EditableImage3b) CreateImage() *Image3b {
	if e.pending.IsEmpty() && e.image != nil {
		if !e.image.invalidated.IsEmpty() {
			e.image = &Image3b{buf: e.image.buf, pool: e.buffers}
		}
		return e.image
	}

	buf := e.buffers.acquire()
	e.buffers.write(buf, func(m *grid.Matrix3[bool]) { m.CopyFrom(e.field) })

	e.image = &Image3b{buf: buf, pool: e.buffers, invalidated: e.pending}
	e.pending = grid.Range3i{}
	return e.image
}

// Snapshot implements Source.
func (e *EditableImage3b) Snapshot() Image { return e.CreateImage() }

func (e *EditableImage3b) invalidate(area grid.Range3i, dir Direction) {
	e.pending = e.pending.CombineWith(area)
	if e.constraint == nil || area.IsEmpty() {
		return
	}

	bounds := e.field.Range()
	region := area
	for pass := 0; pass < e.maxPasses; pass++ {
		extended := e.constraint.FixImage(e.field, region, dir).IntersectWith(bounds)
		e.pending = e.pending.CombineWith(extended)

		grown := region.CombineWith(extended)
		if grown == region {
			return
		}
		region = grown
	}
	e.log.Warn("constraint propagation hit the pass cap",
		zap.Int("passes", e.maxPasses),
		zap.Stringer("region", region),
		zap.Stringer("direction", dir))
}

// Accessor3b is a write-scoped view over part of an occupancy field.
type Accessor3b struct {
	store   *EditableImage3b
	area    grid.Range3i
	flips   int
	changed bool
	closed  bool
}

// Area returns the region this accessor may touch.
func (a *Accessor3b) Area() grid.Range3i { return a.area }

// Get returns the occupancy at p, or false outside the accessor area.
func (a *Accessor3b) Get(p grid.Vec3i) bool {
	if !a.area.Contains(p) {
		return false
	}
	return a.store.field.At(p)
}

// Set writes the occupancy at p. Writes outside the accessor area are ignored.
func (a *Accessor3b) Set(p grid.Vec3i, v bool) {
	if a.closed || !a.area.Contains(p) {
		return
	}
	field := a.store.field
	if field.At(p) == v {
		return
	}
	if v {
		a.flips++
	} else {
		a.flips--
	}
	field.Set(p, v)
	a.changed = true
}

// Direction classifies the edit so far.
func (a *Accessor3b) Direction() Direction { return directionOf(float64(a.flips)) }

// Close publishes the edit. Accessors that flipped nothing leave the pending
// region untouched.
func (a *Accessor3b) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.changed {
		a.store.invalidate(a.area, a.Direction())
	}
}
