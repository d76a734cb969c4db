package frame

import (
	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/internal/pool"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// Provider builds the Data of each tick from the field store and the
// current visibility.
type Provider struct {
	source           image.Source
	visibility       Source
	cellInGroupCount grid.Vec2i
	topologyDistance int
	pool             *pool.Pool[*Data]
}

// NewProvider returns a provider. topologyDistance is how many cells around
// a changed sample have to be regenerated.
func NewProvider(source image.Source, visibility Source, cellInGroupCount grid.Vec2i, topologyDistance int) *Provider {
	p := &Provider{
		source:           source,
		visibility:       visibility,
		cellInGroupCount: cellInGroupCount,
		topologyDistance: topologyDistance,
	}
	p.pool = pool.New(func() *Data { return &Data{pool: p.pool} }, nil)
	return p
}

// FrameData snapshots the store. The returned Data holds no reference; the
// caller activates it for as long as it needs the snapshot.
func (p *Provider) FrameData(existing Groups) *Data {
	img := p.source.Snapshot()

	d := p.pool.Get()
	d.Image = img
	d.InvalidatedCells = img.InvalidatedFootprint().ExtendBothDirections(p.topologyDistance)
	d.Visibility = p.visibility.Visibility()
	d.ExistingGroups = existing
	d.CellInGroupCount = p.cellInGroupCount
	return d
}

// PoolStats returns the counters of the Data pool.
func (p *Provider) PoolStats() pool.Stats { return p.pool.Stats() }
