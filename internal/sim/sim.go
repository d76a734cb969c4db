// Package sim drives the terrain pipeline without a window: it edits the
// field, moves the view and ticks the generator like a game loop would.
package sim

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/internal/config"
	"github.com/Faultbox/terramesh/internal/frame"
	"github.com/Faultbox/terramesh/internal/generator"
	"github.com/Faultbox/terramesh/internal/logger"
	"github.com/Faultbox/terramesh/internal/paint"
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// Options tune the simulated session.
type Options struct {
	// Camera selects a perspective camera instead of a rectangle for
	// visibility.
	Camera bool
	// PaintEvery is the number of ticks between two paint strokes; 0
	// disables painting.
	PaintEvery int
	// OrbitTicks is the number of ticks of one full orbit.
	OrbitTicks int
}

// DefaultOptions returns the options used by the terrainsim command.
func DefaultOptions() Options {
	return Options{PaintEvery: 5, OrbitTicks: 120}
}

// Sim is a headless terrain session.
type Sim struct {
	cfg     *config.Config
	opts    Options
	store   store
	manager *generator.Manager
	updater *CountingUpdater

	tick    int
	focus   gmath.Vec2
	eye     gmath.Vec3
	view    frame.Visibility
	strokes []string
	log     *zap.Logger
}

// New builds the field and the generator for cfg.
func New(cfg *config.Config, opts Options) (*Sim, error) {
	log := logger.Named("sim")
	log.Info("initializing simulation",
		zap.String("kind", cfg.Image.Kind),
		zap.Stringer("size", cfg.Image.Size),
		zap.String("generator", cfg.Image.Generator),
		zap.String("constraint", cfg.Image.Constraint))

	s := &Sim{
		cfg:     cfg,
		opts:    opts,
		updater: NewCountingUpdater(),
		strokes: []string{paint.Increase, paint.IncreaseLarge, paint.Flatten, paint.DecreaseLarge, paint.Decrease},
		log:     log,
	}
	if s.opts.OrbitTicks <= 0 {
		s.opts.OrbitTicks = DefaultOptions().OrbitTicks
	}
	if err := s.build(); err != nil {
		return nil, err
	}

	log.Info("simulation initialized")
	return s, nil
}

func (s *Sim) build() error {
	st, err := newStore(s.cfg.Image)
	if err != nil {
		return fmt.Errorf("failed to create field: %w", err)
	}
	s.store = st
	s.moveView()

	s.manager, err = generator.NewManager(s.cfg, st.source(),
		frame.SourceFunc(func() frame.Visibility { return s.view }),
		s.updater,
		generator.WithBoundsDrawer(s.updater))
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}
	return nil
}

// Reconfigure switches the session to next. When the change affects the
// terrain, the field and the generator are rebuilt; the tick and the view
// position carry over.
func (s *Sim) Reconfigure(next *config.Config) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !s.cfg.NeedsRebuild(next) {
		s.cfg = next
		return nil
	}

	s.log.Info("rebuilding terrain",
		zap.Stringer("size", next.Image.Size),
		zap.Stringer("group_size", next.Terrain.CellInGroupCount))
	s.manager.Close()
	s.manager = nil
	s.cfg = next
	return s.build()
}

// Run ticks the simulation n times, then waits for background work to
// finish.
func (s *Sim) Run(ticks int) error {
	start := time.Now()
	tickTimer := time.Now()
	tickCount := 0

	s.log.Info("starting simulation loop", zap.Int("ticks", ticks))

	for i := 0; i < ticks; i++ {
		if err := s.update(); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		s.manager.Tick()

		tickCount++
		if time.Since(tickTimer) >= time.Second {
			s.log.Debug("tps", zap.Int("count", tickCount))
			tickCount = 0
			tickTimer = time.Now()
		}
	}
	s.Settle()

	st := s.manager.Stats()
	s.log.Info("simulation finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("runs", st.Runs),
		zap.Int("delivered", st.Delivered),
		zap.Int("superseded", st.Superseded),
		zap.Int("live_groups", s.updater.LiveGroups()),
		zap.Int("live_triangles", s.updater.LiveTriangles()))
	return nil
}

// Settle waits for in-flight generation and delivers its results.
func (s *Sim) Settle() {
	for {
		s.manager.Wait()
		if s.manager.Drain() == 0 {
			return
		}
	}
}

// Close releases the generator and its meshes.
func (s *Sim) Close() {
	s.log.Info("closing simulation")
	if s.manager != nil {
		s.manager.Close()
	}
}

// Updater returns the render stand-in.
func (s *Sim) Updater() *CountingUpdater { return s.updater }

// Manager returns the generator manager.
func (s *Sim) Manager() *generator.Manager { return s.manager }

// update advances the session by one tick: paints, then moves the view.
func (s *Sim) update() error {
	s.tick++
	if s.opts.PaintEvery > 0 && s.tick%s.opts.PaintEvery == 0 {
		if err := s.paint(); err != nil {
			return err
		}
	}
	s.moveView()
	return nil
}

func (s *Sim) paint() error {
	center := grid.Vec2i{X: int(s.focus.X), Y: int(s.focus.Y)}
	if s.opts.Camera && s.store.heights != nil {
		// Aim the brush where the camera looks.
		target := gmath.Vec3{X: s.focus.X, Y: s.focus.Y}
		ray := paint.Ray{Origin: s.eye, Direction: target.Sub(s.eye).Normalize()}
		if cell, ok := paint.Pick(s.store.heights, ray, 2*s.eye.Distance(target)); ok {
			center = cell
		}
	}
	stroke := s.tick / s.opts.PaintEvery

	if s.store.voxels != nil {
		size := s.cfg.Image.Size
		fill := stroke%2 == 0
		paint.Sculpt(s.store.voxels, center.XYZ(size.Z/2), 1, fill)
		return nil
	}

	cmd, err := paint.Lookup(s.strokes[stroke%len(s.strokes)])
	if err != nil {
		return err
	}
	paint.Paint(s.store.heights, center, cmd, 1)
	return nil
}

// moveView orbits the focus point around the field center.
func (s *Sim) moveView() {
	size := s.cfg.Image.Size
	cx, cy := float64(size.X)/2, float64(size.Y)/2
	radius := math.Min(cx, cy) / 2
	angle := 2 * math.Pi * float64(s.tick) / float64(s.opts.OrbitTicks)
	s.focus = gmath.Vec2{
		X: float32(cx + radius*math.Cos(angle)),
		Y: float32(cy + radius*math.Sin(angle)),
	}

	cig := s.cfg.Terrain.CellInGroupCount
	reach := float32(max(cig.X, cig.Y)) * 1.5
	if !s.opts.Camera {
		half := gmath.Vec2{X: reach, Y: reach}
		s.view = frame.RectVisibility{Min: s.focus.Sub(half), Max: s.focus.Add(half)}
		return
	}

	// Tilted camera south of the focus point.
	height := reach * 2
	target := gmath.Vec3{X: s.focus.X, Y: s.focus.Y}
	s.eye = gmath.Vec3{X: s.focus.X, Y: s.focus.Y - height/2, Z: height}
	fov := float32(math.Pi / 3)
	aspect := float32(16.0 / 9.0)
	far := height * 3

	view := gmath.LookAt(s.eye, target, gmath.Vec3{Z: 1})
	proj := gmath.Perspective(fov, aspect, 0.1, far)
	s.view = frame.NewCameraFrustum(proj.Mul(view), view.Inverse(), gmath.Identity(), frame.FarPlaneCorners(fov, aspect, far))
}
