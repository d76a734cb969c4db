package generator

import (
	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/internal/debug"
	"github.com/Faultbox/terramesh/internal/frame"
	"github.com/Faultbox/terramesh/internal/terrain"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// State is the lifecycle state of a group generator.
type State int

const (
	Idle State = iota
	Queued
	Running
)

func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case Running:
		return "running"
	default:
		return "idle"
	}
}

// executor runs work off the driver goroutine. done is always called, with
// the result of work or false when work was skipped.
type executor interface {
	Go(work func() bool, done func(ok bool))
}

// groupGenerator owns the meshes of one group and runs at most one
// generation at a time. Every run fills a mesh of its own; shown is the
// last delivered mesh and belongs to the updater until the next delivery or
// removal. Every method except generate runs on the driver goroutine;
// generate runs on a worker in async mode.
type groupGenerator struct {
	group grid.Vec2i
	cells grid.Range2i
	token *Token

	shown   *terrain.Mesh
	acquire func() *terrain.Mesh
	release func(*terrain.Mesh)
	mesher  terrain.Mesher
	updater MeshUpdater
	drawer  BoundsDrawer
	queue   *MainQueue
	exec    executor // nil runs inline

	flip   bool
	smooth bool

	running     bool
	pending     *frame.Data
	updatedOnce bool
	disposed    bool

	stats *Stats
	log   *zap.Logger
}

// State returns the current lifecycle state.
func (g *groupGenerator) State() State {
	switch {
	case g.running:
		return Running
	case g.pending != nil:
		return Queued
	default:
		return Idle
	}
}

// Update hands a new frame to the generator. The first frame always runs;
// later frames only when their invalidated cells touch the group. A frame
// arriving while a run is in flight waits, replacing any frame that was
// already waiting.
func (g *groupGenerator) Update(d *frame.Data) bool {
	if g.disposed || g.token.Cancelled() {
		return false
	}
	if g.updatedOnce && !d.InvalidatedCells.Overlaps(g.cells) {
		return false
	}
	g.updatedOnce = true

	d.Activate()
	if g.pending != nil {
		g.pending.Deactivate()
		g.stats.Superseded++
	}
	g.pending = d

	if !g.running {
		g.startPending()
	}
	return true
}

func (g *groupGenerator) startPending() {
	d := g.pending
	g.pending = nil
	g.running = true
	g.stats.Runs++

	out := g.acquire()
	if g.exec == nil {
		g.complete(d, out, g.generate(d, out))
		return
	}
	g.exec.Go(
		func() bool { return g.generate(d, out) },
		func(ok bool) { g.queue.Post(func() { g.complete(d, out, ok) }) },
	)
}

// generate fills out from the frame snapshot. It reports whether the result
// should be handed to the updater.
func (g *groupGenerator) generate(d *frame.Data, out *terrain.Mesh) bool {
	if g.token.Cancelled() {
		return false
	}
	if err := g.mesher.Mesh(d.Image, g.group, out); err != nil {
		g.log.Error("mesh generation failed", zap.Stringer("group", g.group), zap.Error(err))
		return false
	}
	if g.smooth {
		out.SmoothNormals()
	}
	out.Finalize(g.flip)
	return !g.token.Cancelled()
}

func (g *groupGenerator) complete(d *frame.Data, out *terrain.Mesh, ok bool) {
	d.Deactivate()
	g.running = false

	switch {
	case g.disposed:
		g.release(out)
		return
	case ok && !g.token.Cancelled():
		g.deliver(out)
	default:
		g.release(out)
		g.stats.Cancelled++
	}
	if g.pending != nil {
		g.startPending()
	}
}

// deliver hands out to the updater and returns the mesh it replaces.
func (g *groupGenerator) deliver(out *terrain.Mesh) {
	g.updater.UpdateMesh(g.group, out)
	prev := g.shown
	g.shown = out
	if prev != nil {
		g.release(prev)
	}
	g.stats.Delivered++
	if g.drawer != nil {
		g.drawer.DrawBounds(g.group, out.Offset, debug.BoundsWireframe(out.Bounds, out.Offset))
	}
	g.log.Debug("mesh delivered",
		zap.Stringer("group", g.group),
		zap.Int("triangles", out.TriangleCount()))
}

// Dispose cancels the generator. An in-flight run finishes on its own and
// returns its mesh when it completes. The shown mesh is removed from the
// updater and goes back to the pool right away (sync) or on the next drain
// (async).
func (g *groupGenerator) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.token.Cancel()

	if g.pending != nil {
		g.pending.Deactivate()
		g.pending = nil
	}
	if g.shown == nil {
		return
	}
	g.updater.RemoveMesh(g.group)
	if g.exec == nil {
		g.releaseShown()
	} else {
		g.queue.Post(g.releaseShown)
	}
}

func (g *groupGenerator) releaseShown() {
	if g.shown == nil {
		return
	}
	g.release(g.shown)
	g.shown = nil
}
