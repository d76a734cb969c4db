// Package image holds the authoritative editable fields and the read-only
// snapshots published from them.
//
// A store is single-writer: edits go through a scoped accessor on the driver
// goroutine. CreateImage copies the field into a pooled buffer and publishes
// it together with the region invalidated since the previous snapshot.
// Consumers Lock a snapshot while they read it, and the pool never hands a
// locked buffer out for rewriting.
package image

import (
	"errors"
	"fmt"

	"github.com/Faultbox/terramesh/pkg/grid"
)

// Image is a published snapshot as seen by group selection and meshing.
type Image interface {
	// RangeZ is the observed value range (heights) or the Z extent (occupancy).
	RangeZ() grid.Area1f
	// InvalidatedFootprint is the XY part of the region changed since the
	// previous snapshot, in field coordinates.
	InvalidatedFootprint() grid.Range2i
	// AnyData reports whether the cells could produce any geometry.
	AnyData(cells grid.Range2i) bool
	Lock()
	Unlock()
}

// Source publishes snapshots of an editable field.
type Source interface {
	Snapshot() Image
}

// Direction classifies an edit by the sign of its accumulated change.
type Direction int

const (
	Unknown Direction = iota
	Increasing
	Decreasing
)

func (d Direction) String() string {
	switch d {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	default:
		return "unknown"
	}
}

func directionOf(change float64) Direction {
	switch {
	case change > 0:
		return Increasing
	case change < 0:
		return Decreasing
	default:
		return Unknown
	}
}

var (
	// ErrBufferLocked is wrapped by BufferLockedError.
	ErrBufferLocked = errors.New("snapshot buffer is locked")
	// ErrNotLocked reports an Unlock without a matching Lock.
	ErrNotLocked = errors.New("snapshot is not locked")
)

// BufferLockedError is raised (as a panic) when a snapshot buffer that a
// consumer still holds is about to be rewritten. It cannot happen unless the
// pool bookkeeping is broken.
type BufferLockedError struct {
	Locks int
}

func (e *BufferLockedError) Error() string {
	return fmt.Sprintf("%v: %d holder(s)", ErrBufferLocked, e.Locks)
}

func (e *BufferLockedError) Unwrap() error { return ErrBufferLocked }
