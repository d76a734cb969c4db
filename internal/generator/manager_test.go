package generator

import (
	"testing"

	"github.com/Faultbox/terramesh/internal/config"
	"github.com/Faultbox/terramesh/internal/frame"
	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/internal/terrain"
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

type recordingUpdater struct {
	updates map[grid.Vec2i]int
	removes map[grid.Vec2i]int
	meshes  map[grid.Vec2i]*terrain.Mesh
}

func newRecordingUpdater() *recordingUpdater {
	return &recordingUpdater{
		updates: make(map[grid.Vec2i]int),
		removes: make(map[grid.Vec2i]int),
		meshes:  make(map[grid.Vec2i]*terrain.Mesh),
	}
}

func (r *recordingUpdater) UpdateMesh(g grid.Vec2i, mesh *terrain.Mesh) {
	r.updates[g]++
	r.meshes[g] = mesh
}

func (r *recordingUpdater) RemoveMesh(g grid.Vec2i) {
	r.removes[g]++
	delete(r.meshes, g)
}

func (r *recordingUpdater) totalUpdates() int {
	n := 0
	for _, c := range r.updates {
		n += c
	}
	return n
}

type recordingDrawer struct {
	lines map[grid.Vec2i]int
}

func (d *recordingDrawer) DrawBounds(g grid.Vec2i, _ gmath.Vec3, lines []gmath.Vec3) {
	d.lines[g] = len(lines)
}

// blockingMesher holds every run until release is closed.
type blockingMesher struct {
	inner   terrain.Mesher
	started chan struct{}
	release chan struct{}
}

func newBlockingMesher() *blockingMesher {
	return &blockingMesher{
		inner:   &terrain.DirectMesher{CellInGroupCount: grid.Vec2i{X: 4, Y: 4}},
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (b *blockingMesher) Mesh(img image.Image, group grid.Vec2i, out *terrain.Mesh) error {
	b.started <- struct{}{}
	<-b.release
	return b.inner.Mesh(img, group, out)
}

func v2(x, y int) grid.Vec2i { return grid.Vec2i{X: x, Y: y} }

func testConfig(async bool) *config.Config {
	cfg := config.Default()
	cfg.Image.Size = grid.Vec3i{X: 16, Y: 16, Z: 1}
	cfg.Terrain.CellInGroupCount = grid.Vec3i{X: 4, Y: 4, Z: 1}
	cfg.Terrain.Async = async
	cfg.Terrain.Workers = 2
	return cfg
}

type harness struct {
	store   *image.EditableImage2f
	vis     frame.RectVisibility
	updater *recordingUpdater
	m       *Manager
}

func newHarness(t *testing.T, cfg *config.Config, vis frame.RectVisibility, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		store:   image.NewEditableImage2f(v2(16, 16), 0),
		vis:     vis,
		updater: newRecordingUpdater(),
	}
	m, err := NewManager(cfg, h.store, frame.SourceFunc(func() frame.Visibility { return h.vis }), h.updater, opts...)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	h.m = m
	return h
}

func (h *harness) raise(p grid.Vec2i) {
	acc := h.store.RequestAccess(grid.Range2iFromMinAndSize(p, v2(1, 1)))
	acc.Set(p, acc.Get(p)+1)
	acc.Close()
}

// settle waits for the workers and drains until nothing is left.
func (h *harness) settle() {
	for {
		h.m.Wait()
		if h.m.Drain() == 0 {
			return
		}
	}
}

func rect(minX, minY, maxX, maxY float32) frame.RectVisibility {
	return frame.RectVisibility{Min: gmath.Vec2{X: minX, Y: minY}, Max: gmath.Vec2{X: maxX, Y: maxY}}
}

func TestSyncManager(t *testing.T) {
	h := newHarness(t, testConfig(false), rect(0, 0, 8, 8))

	res := h.m.Tick()
	if res.Created != 4 || res.Updated != 4 || res.Recompute != 4 {
		t.Fatalf("first Tick() = %+v, want 4 groups created and updated", res)
	}
	for _, g := range []grid.Vec2i{v2(0, 0), v2(1, 0), v2(0, 1), v2(1, 1)} {
		if h.updater.updates[g] != 1 {
			t.Errorf("updates[%v] = %d, want 1", g, h.updater.updates[g])
		}
		if state, ok := h.m.GroupState(g); !ok || state != Idle {
			t.Errorf("GroupState(%v) = %v, %v, want idle and active", g, state, ok)
		}
	}
	if got := h.updater.meshes[v2(0, 0)].TriangleCount(); got != 32 {
		t.Errorf("group (0,0) TriangleCount() = %d, want 32", got)
	}

	res = h.m.Tick()
	if res.Updated != 0 || res.Created != 0 || h.updater.totalUpdates() != 4 {
		t.Errorf("idle Tick() = %+v, updates %d, want nothing regenerated", res, h.updater.totalUpdates())
	}

	h.raise(v2(5, 5))
	res = h.m.Tick()
	if res.Updated != 1 || h.updater.updates[v2(1, 1)] != 2 {
		t.Errorf("Tick() after edit = %+v, updates[(1,1)] = %d, want only (1,1) regenerated",
			res, h.updater.updates[v2(1, 1)])
	}

	h.vis = rect(8, 0, 16, 8)
	res = h.m.Tick()
	if res.Created != 4 || res.Disposed != 4 {
		t.Errorf("Tick() after moving = %+v, want 4 created and 4 disposed", res)
	}
	if h.updater.removes[v2(0, 0)] != 1 {
		t.Errorf("removes[(0,0)] = %d, want 1", h.updater.removes[v2(0, 0)])
	}
	// The edit needed a second mesh for (1,1). Disposed meshes go back to
	// the pool before the new groups take theirs.
	if s := h.m.MeshPoolStats(); s.Active() != 4 || s.Allocated != 5 {
		t.Errorf("MeshPoolStats() = %+v, want 5 meshes allocated and 4 in use", s)
	}
	if s := h.m.FramePoolStats(); s.Active() != 0 {
		t.Errorf("FramePoolStats().Active() = %d, want 0", s.Active())
	}

	h.m.Close()
	if s := h.m.MeshPoolStats(); s.Active() != 0 || s.Puts != 9 {
		t.Errorf("MeshPoolStats() after Close = %+v, want every mesh returned once", s)
	}
	if res := h.m.Tick(); res != (TickResult{}) {
		t.Errorf("Tick() after Close = %+v, want no work", res)
	}
}

func TestMeshesAreReused(t *testing.T) {
	h := newHarness(t, testConfig(false), rect(0, 0, 4, 4))
	h.m.Tick()

	h.vis = rect(12, 12, 16, 16)
	h.m.Tick()
	h.vis = rect(0, 0, 4, 4)
	h.m.Tick()

	if s := h.m.MeshPoolStats(); s.Allocated != 1 {
		t.Errorf("MeshPoolStats().Allocated = %d, want 1", s.Allocated)
	}
	h.m.Close()
}

func TestFixedCapacityAndBounds(t *testing.T) {
	cfg := testConfig(false)
	cfg.Interpolation.DynamicMeshes = false
	cfg.Terrain.DrawBounds = true
	drawer := &recordingDrawer{lines: make(map[grid.Vec2i]int)}

	h := newHarness(t, cfg, rect(12, 12, 16, 16), WithBoundsDrawer(drawer))
	h.m.Tick()

	mesh := h.updater.meshes[v2(3, 3)]
	if mesh == nil {
		t.Fatal("group (3,3) was not delivered")
	}
	if mesh.Capacity() != 32 {
		t.Errorf("Capacity() = %d, want 32", mesh.Capacity())
	}
	// The last row and column of cells lie outside the 16x16 samples.
	if mesh.TriangleCount() != 18 || len(mesh.Indices) != 96 {
		t.Errorf("TriangleCount() = %d, indices %d, want 18 and 96", mesh.TriangleCount(), len(mesh.Indices))
	}
	if drawer.lines[v2(3, 3)] != 24 {
		t.Errorf("bounds lines = %d, want 24", drawer.lines[v2(3, 3)])
	}
	h.m.Close()
}

func TestAsyncDeliversOnDrain(t *testing.T) {
	h := newHarness(t, testConfig(true), rect(0, 0, 8, 8))

	h.m.Tick()
	if n := h.updater.totalUpdates(); n != 0 {
		t.Errorf("updates before drain = %d, want 0", n)
	}

	h.settle()
	if n := h.updater.totalUpdates(); n != 4 {
		t.Errorf("updates after drain = %d, want 4", n)
	}
	for _, g := range h.m.Groups() {
		if state, _ := h.m.GroupState(g); state != Idle {
			t.Errorf("GroupState(%v) = %v, want idle", g, state)
		}
	}
	h.m.Close()
	if s := h.m.MeshPoolStats(); s.Active() != 0 {
		t.Errorf("MeshPoolStats().Active() = %d after Close, want 0", s.Active())
	}
}

func TestAsyncDisposeMidFlight(t *testing.T) {
	mesher := newBlockingMesher()
	h := newHarness(t, testConfig(true), rect(0, 0, 4, 4), WithMesher(mesher))

	h.m.Tick()
	<-mesher.started
	if state, _ := h.m.GroupState(v2(0, 0)); state != Running {
		t.Fatalf("GroupState((0,0)) = %v, want running", state)
	}

	h.vis = rect(100, 100, 104, 104)
	if res := h.m.Tick(); res.Disposed != 1 {
		t.Fatalf("Tick() = %+v, want the running group disposed", res)
	}
	if s := h.m.MeshPoolStats(); s.Puts != 0 {
		t.Errorf("mesh returned while its run is in flight: %+v", s)
	}

	close(mesher.release)
	h.settle()

	if n := h.updater.totalUpdates(); n != 0 {
		t.Errorf("updates = %d, want none for a disposed group", n)
	}
	if s := h.m.MeshPoolStats(); s.Puts != 1 || s.Active() != 0 {
		t.Errorf("MeshPoolStats() = %+v, want the mesh returned exactly once", s)
	}
	if s := h.m.FramePoolStats(); s.Active() != 0 {
		t.Errorf("FramePoolStats().Active() = %d, want 0", s.Active())
	}

	h.m.Close()
	if s := h.m.MeshPoolStats(); s.Puts != 1 {
		t.Errorf("MeshPoolStats().Puts = %d after Close, want 1", s.Puts)
	}
}

func TestPendingFrameIsReplaced(t *testing.T) {
	mesher := newBlockingMesher()
	h := newHarness(t, testConfig(true), rect(0, 0, 4, 4), WithMesher(mesher))

	h.m.Tick()
	<-mesher.started

	h.raise(v2(1, 1))
	h.m.Tick()
	h.raise(v2(2, 2))
	h.m.Tick()

	if state, _ := h.m.GroupState(v2(0, 0)); state != Running {
		t.Errorf("GroupState((0,0)) = %v, want running", state)
	}
	if s := h.m.Stats(); s.Superseded != 1 || s.Runs != 1 {
		t.Errorf("Stats() = %+v, want 1 run and 1 superseded frame", s)
	}

	close(mesher.release)
	h.settle()

	s := h.m.Stats()
	if s.Runs != 2 || s.Delivered != 2 {
		t.Errorf("Stats() = %+v, want the waiting frame run once after the first", s)
	}
	if h.updater.updates[v2(0, 0)] != 2 {
		t.Errorf("updates[(0,0)] = %d, want 2", h.updater.updates[v2(0, 0)])
	}
	if got := h.updater.meshes[v2(0, 0)].Bounds.Max.Z; got != 1 {
		t.Errorf("mesh Bounds.Max.Z = %v, want the latest edit", got)
	}
	if s := h.m.FramePoolStats(); s.Active() != 0 {
		t.Errorf("FramePoolStats().Active() = %d, want 0", s.Active())
	}
	h.m.Close()
}

func TestNewManagerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(false)
	cfg.Interpolation.MeshSubdivision = 3

	store := image.NewEditableImage2f(v2(4, 4), 0)
	vis := frame.SourceFunc(func() frame.Visibility { return rect(0, 0, 4, 4) })
	if _, err := NewManager(cfg, store, vis, newRecordingUpdater()); err == nil {
		t.Error("NewManager() error = nil, want an error for subdivision without cubic")
	}
}

func TestDeliveredMeshIsStableDuringNextRun(t *testing.T) {
	mesher := newBlockingMesher()
	h := newHarness(t, testConfig(true), rect(0, 0, 4, 4), WithMesher(mesher))

	h.m.Tick()
	<-mesher.started
	mesher.release <- struct{}{}
	h.settle()

	shown := h.updater.meshes[v2(0, 0)]
	if shown == nil {
		t.Fatal("group (0,0) was not delivered")
	}
	want := append([]gmath.Vec3(nil), shown.Vertices...)

	h.raise(v2(1, 1))
	h.m.Tick()
	<-mesher.started
	mesher.release <- struct{}{}

	// The adapter may read its mesh while the next run is meshing.
	for i, v := range shown.Vertices {
		if v != want[i] {
			t.Fatalf("shown.Vertices[%d] = %v during the next run, want %v", i, v, want[i])
		}
	}
	h.m.Wait()
	if got := shown.Bounds.Max.Z; got != 0 {
		t.Errorf("shown.Bounds.Max.Z = %v before the next delivery, want 0", got)
	}
	if len(shown.Vertices) != len(want) {
		t.Errorf("len(shown.Vertices) = %d before the next delivery, want %d", len(shown.Vertices), len(want))
	}

	h.settle()
	next := h.updater.meshes[v2(0, 0)]
	if next == shown {
		t.Fatal("second run was delivered in the mesh the adapter still held")
	}
	if got := next.Bounds.Max.Z; got != 1 {
		t.Errorf("next.Bounds.Max.Z = %v, want 1", got)
	}
	if s := h.m.MeshPoolStats(); s.Allocated != 2 || s.Active() != 1 {
		t.Errorf("MeshPoolStats() = %+v, want 2 allocated and only the shown mesh in use", s)
	}

	h.m.Close()
	if s := h.m.MeshPoolStats(); s.Active() != 0 {
		t.Errorf("MeshPoolStats().Active() = %d after Close, want 0", s.Active())
	}
}
