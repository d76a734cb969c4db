// Package generator keeps one mesh generator per visible terrain group and
// drives them from a single driver goroutine, tick by tick.
//
// In async mode meshing runs on worker goroutines bounded by a semaphore;
// results come back through a MainQueue that the driver drains at the start
// of every tick, so the render adapter is only ever called on the driver
// goroutine.
package generator

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/Faultbox/terramesh/internal/config"
	"github.com/Faultbox/terramesh/internal/frame"
	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/internal/logger"
	"github.com/Faultbox/terramesh/internal/pool"
	"github.com/Faultbox/terramesh/internal/selector"
	"github.com/Faultbox/terramesh/internal/terrain"
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// Stats are cumulative generation counters.
type Stats struct {
	Ticks      int
	Created    int
	Disposed   int
	Runs       int
	Delivered  int
	Cancelled  int
	Superseded int
}

// TickResult summarizes one Tick.
type TickResult struct {
	Recompute int
	Keep      int
	Created   int
	Disposed  int
	Updated   int
	Drained   int
}

// Option configures a Manager.
type Option func(*Manager)

// WithBoundsDrawer sets the receiver of group bounds. It is only used when
// bounds drawing is enabled in the config.
func WithBoundsDrawer(d BoundsDrawer) Option {
	return func(m *Manager) { m.drawer = d }
}

// WithVertexPostProcess sets a hook applied to every generated vertex.
func WithVertexPostProcess(fn func(gmath.Vec3) gmath.Vec3) Option {
	return func(m *Manager) { m.vertexPost = fn }
}

// WithUVPostProcess sets a hook applied to every generated UV.
func WithUVPostProcess(fn func(gmath.Vec2) gmath.Vec2) Option {
	return func(m *Manager) { m.uvPost = fn }
}

// WithMesher replaces the mesher chosen from the config.
func WithMesher(ms terrain.Mesher) Option {
	return func(m *Manager) { m.mesher = ms }
}

// Manager owns the group generators.
type Manager struct {
	cfg      *config.Config
	provider *frame.Provider
	selector *selector.Selector
	mesher   terrain.Mesher
	meshes   *pool.Pool[*terrain.Mesh]
	registry *pool.Registry[*terrain.Mesh]
	queue    *MainQueue
	updater  MeshUpdater
	drawer   BoundsDrawer
	token    *Token

	vertexPost func(gmath.Vec3) gmath.Vec3
	uvPost     func(gmath.Vec2) gmath.Vec2

	workers *workerPool // nil in sync mode
	groups  map[grid.Vec2i]*groupGenerator
	stats   Stats
	closed  bool
	log     *zap.Logger
}

// NewManager builds a manager for cfg. source publishes the field
// snapshots and visibility supplies the visible region every tick.
func NewManager(cfg *config.Config, source image.Source, visibility frame.Source, updater MeshUpdater, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	m := &Manager{
		cfg:      cfg,
		selector: selector.New(),
		queue:    &MainQueue{},
		updater:  updater,
		token:    NewToken(nil),
		groups:   make(map[grid.Vec2i]*groupGenerator),
		log:      logger.Named("generator"),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.mesher == nil {
		mesher, err := terrain.NewMesher(cfg)
		if err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
		m.mesher = mesher
	}

	cells := cfg.Terrain.CellInGroupCount.XY()
	m.provider = frame.NewProvider(source, visibility, cells, terrain.TopologyDistance(cfg))
	m.registry = pool.NewRegistry(terrain.NewMeshFor, func(mesh *terrain.Mesh) {
		mesh.Reset(gmath.Vec3{})
		mesh.VertexPostProcess = nil
		mesh.UVPostProcess = nil
	})
	m.meshes = m.registry.For(terrain.TriangleCapacity(cfg))

	if cfg.Terrain.Async {
		m.workers = newWorkerPool(cfg.Terrain.Workers)
	}

	m.log.Info("generator ready",
		zap.String("mesher", fmt.Sprintf("%T", m.mesher)),
		zap.Bool("async", cfg.Terrain.Async),
		zap.Int("workers", cfg.Terrain.Workers),
		zap.Int("mesh_capacity", terrain.TriangleCapacity(cfg)))
	return m, nil
}

// Tick runs one update on the driver goroutine: finishes completed runs,
// snapshots the field, selects groups, creates and disposes generators and
// hands the new frame to every active generator.
func (m *Manager) Tick() TickResult {
	var res TickResult
	if m.closed {
		return res
	}
	m.stats.Ticks++
	res.Drained = m.queue.Drain()

	d := m.provider.FrameData(m.activeGroups())
	d.Activate()
	defer d.Deactivate()

	actions := m.selector.GroupsToUpdate(d)
	res.Recompute = len(actions.ToRecompute)
	res.Keep = len(actions.ToKeep)

	visible := actions.Visible()
	for _, g := range m.Groups() {
		if !visible.Contains(g) {
			m.dispose(g)
			res.Disposed++
		}
	}
	for _, g := range actions.ToRecompute {
		if _, ok := m.groups[g]; !ok {
			m.groups[g] = m.newGroup(g)
			res.Created++
		}
	}

	for _, g := range m.Groups() {
		if m.groups[g].Update(d) {
			res.Updated++
		}
	}

	if res.Created > 0 || res.Disposed > 0 || res.Updated > 0 {
		m.log.Debug("tick",
			zap.Int("recompute", res.Recompute),
			zap.Int("keep", res.Keep),
			zap.Int("created", res.Created),
			zap.Int("disposed", res.Disposed),
			zap.Int("updated", res.Updated))
	}
	return res
}

// Drain runs pending continuations without starting a new tick.
func (m *Manager) Drain() int { return m.queue.Drain() }

// Wait blocks until every worker has finished. Continuations they posted
// still need a Drain.
func (m *Manager) Wait() {
	if m.workers != nil {
		m.workers.Wait()
	}
}

// Close disposes every generator, waits for in-flight runs and returns all
// meshes to the pool. The manager is unusable afterwards.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.token.Cancel()

	for _, g := range m.Groups() {
		m.dispose(g)
	}
	if m.workers != nil {
		m.workers.Close()
	}
	m.queue.Drain()

	s := m.registry.Stats()
	m.log.Info("generator closed",
		zap.Int("ticks", m.stats.Ticks),
		zap.Int("runs", m.stats.Runs),
		zap.Int("delivered", m.stats.Delivered),
		zap.Uint64("meshes_allocated", s.Allocated),
		zap.Int("meshes_active", s.Active()))
}

// Groups returns the active groups in row-major order.
func (m *Manager) Groups() []grid.Vec2i {
	keys := make([]grid.Vec2i, 0, len(m.groups))
	for g := range m.groups {
		keys = append(keys, g)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	return keys
}

// GroupState returns the state of the group's generator and whether the
// group is active.
func (m *Manager) GroupState(g grid.Vec2i) (State, bool) {
	gen, ok := m.groups[g]
	if !ok {
		return Idle, false
	}
	return gen.State(), true
}

// Stats returns the cumulative counters.
func (m *Manager) Stats() Stats { return m.stats }

// MeshPoolStats returns the counters of the mesh pools.
func (m *Manager) MeshPoolStats() pool.Stats { return m.registry.Stats() }

// FramePoolStats returns the counters of the frame data pool.
func (m *Manager) FramePoolStats() pool.Stats { return m.provider.PoolStats() }

func (m *Manager) activeGroups() frame.Groups {
	s := make(frame.Groups, len(m.groups))
	for g := range m.groups {
		s[g] = struct{}{}
	}
	return s
}

// acquireMesh takes a mesh for one generation run.
func (m *Manager) acquireMesh() *terrain.Mesh {
	mesh := m.meshes.Get()
	mesh.VertexPostProcess = m.vertexPost
	mesh.UVPostProcess = m.uvPost
	return mesh
}

func (m *Manager) newGroup(g grid.Vec2i) *groupGenerator {
	cig := m.cfg.Terrain.CellInGroupCount.XY()
	gen := &groupGenerator{
		group:   g,
		cells:   grid.Range2iFromMinAndSize(g.Mul(cig), cig),
		token:   NewToken(m.token),
		acquire: m.acquireMesh,
		release: m.meshes.Put,
		mesher:  m.mesher,
		updater: m.updater,
		queue:   m.queue,
		flip:    m.cfg.Terrain.FlipTriangles,
		smooth:  m.cfg.Terrain.SmoothNormals,
		stats:   &m.stats,
		log:     m.log,
	}
	if m.cfg.Terrain.DrawBounds {
		gen.drawer = m.drawer
	}
	if m.workers != nil {
		gen.exec = m.workers
	}
	m.stats.Created++
	return gen
}

func (m *Manager) dispose(g grid.Vec2i) {
	gen, ok := m.groups[g]
	if !ok {
		return
	}
	delete(m.groups, g)
	gen.Dispose()
	m.stats.Disposed++
}

// workerPool runs generation on goroutines tracked by an errgroup, with at
// most n meshing at once.
type workerPool struct {
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
	sem    *semaphore.Weighted
}

func newWorkerPool(n int) *workerPool {
	if n < 1 {
		n = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &workerPool{
		group:  &errgroup.Group{},
		ctx:    ctx,
		cancel: cancel,
		sem:    semaphore.NewWeighted(int64(n)),
	}
}

// Go implements executor. Work waiting for a slot is skipped once the pool
// is closed.
func (w *workerPool) Go(work func() bool, done func(ok bool)) {
	w.group.Go(func() error {
		ok := false
		if err := w.sem.Acquire(w.ctx, 1); err == nil {
			ok = work()
			w.sem.Release(1)
		}
		done(ok)
		return nil
	})
}

// Wait blocks until every started goroutine has returned.
func (w *workerPool) Wait() {
	_ = w.group.Wait()
}

// Close stops handing out slots and waits for running work.
func (w *workerPool) Close() {
	w.cancel()
	_ = w.group.Wait()
}
