package image

import (
	"container/heap"

	"github.com/Faultbox/terramesh/pkg/grid"
)

var neighbours8 = [8]grid.Vec2i{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// SlopeConstraint keeps the height difference between any two neighbouring
// samples, diagonals included, at most MaxSlope. Raising terrain drags
// neighbours up, lowering it drags them down; edits of unknown direction are
// treated as lowering. A negative MaxSlope counts as zero.
type SlopeConstraint struct {
	MaxSlope float32
}

// FixImage implements Constraint2f.
func (c SlopeConstraint) FixImage(field *grid.Matrix2[float32], invalidated grid.Range2i, dir Direction) grid.Range2i {
	slope := max(0, c.MaxSlope)
	raise := dir == Increasing
	q := &heightQueue{highestFirst: raise}

	invalidated.IntersectWith(field.Range()).ForEach(func(p grid.Vec2i) {
		heap.Push(q, heightItem{p: p, h: field.At(p)})
	})

	changed := invalidated
	for q.Len() > 0 {
		p := heap.Pop(q).(heightItem).p
		h := field.At(p)

		for _, d := range neighbours8 {
			n := p.Add(d)
			if !field.Contains(n) {
				continue
			}
			nh := field.At(n)
			switch {
			case raise && nh < h-slope:
				nh = h - slope
			case !raise && nh > h+slope:
				nh = h + slope
			default:
				continue
			}
			field.Set(n, nh)
			changed = changed.CombineWith(pointRange(n))
			heap.Push(q, heightItem{p: n, h: nh})
		}
	}
	return changed
}

type heightItem struct {
	p grid.Vec2i
	h float32
}

// heightQueue pops the highest item first when raising and the lowest when
// lowering, so each sample settles against its most extreme neighbour.
type heightQueue struct {
	items        []heightItem
	highestFirst bool
}

func (q *heightQueue) Len() int { return len(q.items) }

func (q *heightQueue) Less(i, j int) bool {
	if q.highestFirst {
		return q.items[i].h > q.items[j].h
	}
	return q.items[i].h < q.items[j].h
}

func (q *heightQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *heightQueue) Push(x any) { q.items = append(q.items, x.(heightItem)) }

func (q *heightQueue) Pop() any {
	n := len(q.items)
	it := q.items[n-1]
	q.items = q.items[:n-1]
	return it
}
