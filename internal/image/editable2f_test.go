package image

import (
	"errors"
	"testing"

	"github.com/Faultbox/terramesh/pkg/grid"
)

func v2(x, y int) grid.Vec2i { return grid.Vec2i{X: x, Y: y} }

func TestInitialSnapshotCoversField(t *testing.T) {
	store := NewEditableImage2f(v2(4, 4), 2)
	img := store.CreateImage()

	if got, want := img.InvalidatedArea(), grid.NewRange2i(v2(0, 0), v2(4, 4)); got != want {
		t.Errorf("InvalidatedArea() = %v, want %v", got, want)
	}
	if got := img.RangeZ(); got.Min != 2 || got.Max != 2 {
		t.Errorf("RangeZ() = %v, want [2,2]", got)
	}
	if got := img.Sample(v2(3, 3)); got != 2 {
		t.Errorf("Sample() = %v, want 2", got)
	}
}

func TestEditInvalidatesWrittenArea(t *testing.T) {
	store := NewEditableImage2f(v2(4, 4), 0)
	store.CreateImage()

	acc := store.RequestAccess(grid.NewRange2i(v2(1, 1), v2(3, 3)))
	acc.Area().ForEach(func(p grid.Vec2i) { acc.Set(p, 1) })
	acc.Close()

	img := store.CreateImage()
	if got, want := img.InvalidatedArea().ToArea(), grid.NewArea2i(v2(1, 1), v2(2, 2)); got != want {
		t.Errorf("InvalidatedArea().ToArea() = %v, want %v", got, want)
	}
	if got := img.Sample(v2(2, 2)); got != 1 {
		t.Errorf("Sample((2,2)) = %v, want 1", got)
	}
	if got := img.Sample(v2(0, 0)); got != 0 {
		t.Errorf("Sample((0,0)) = %v, want 0", got)
	}
	if got := img.RangeZ(); got.Min != 0 || got.Max != 1 {
		t.Errorf("RangeZ() = %v, want [0,1]", got)
	}
}

func TestPendingAreaOnlyGrows(t *testing.T) {
	store := NewEditableImage2f(v2(8, 8), 0)
	store.CreateImage()

	edits := []grid.Range2i{
		grid.NewRange2i(v2(2, 2), v2(3, 3)),
		grid.NewRange2i(v2(5, 1), v2(7, 2)),
		grid.NewRange2i(v2(3, 3), v2(4, 4)),
	}
	prev := store.PendingArea()
	for _, r := range edits {
		acc := store.RequestAccess(r)
		r.ForEach(func(p grid.Vec2i) { acc.Set(p, 3) })
		acc.Close()

		got := store.PendingArea()
		if got.CombineWith(prev) != got {
			t.Errorf("PendingArea() = %v no longer contains %v", got, prev)
		}
		if got.CombineWith(r) != got {
			t.Errorf("PendingArea() = %v does not contain edit %v", got, r)
		}
		prev = got
	}
}

func TestAccessorClampsToField(t *testing.T) {
	store := NewEditableImage2f(v2(4, 4), 0)
	acc := store.RequestAccess(grid.NewRange2i(v2(-3, 2), v2(10, 10)))

	if got, want := acc.Area(), grid.NewRange2i(v2(0, 2), v2(4, 4)); got != want {
		t.Errorf("Area() = %v, want %v", got, want)
	}
	acc.Set(v2(-1, 2), 5)
	acc.Set(v2(0, 0), 5)
	if got := acc.Get(v2(0, 0)); got != 0 {
		t.Errorf("Get() outside area = %v, want 0", got)
	}
	acc.Close()
	acc.Close()
}

func TestEmptyAccessorLeavesPendingUntouched(t *testing.T) {
	store := NewEditableImage2f(v2(4, 4), 0)
	store.CreateImage()

	acc := store.RequestAccess(grid.NewRange2i(v2(0, 0), v2(2, 2)))
	acc.Close()

	if got := store.PendingArea(); !got.IsEmpty() {
		t.Errorf("PendingArea() = %v, want empty", got)
	}
}

func TestAccessorDirection(t *testing.T) {
	tests := []struct {
		name  string
		value float32
		want  Direction
	}{
		{"raise", 2, Increasing},
		{"lower", -2, Decreasing},
		{"same", 0, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewEditableImage2f(v2(4, 4), 0)
			acc := store.RequestAccess(grid.NewRange2i(v2(0, 0), v2(2, 2)))
			acc.Set(v2(1, 1), tt.value)
			if got := acc.Direction(); got != tt.want {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
			acc.Close()
		})
	}
}

func TestRepeatedCreateImage(t *testing.T) {
	store := NewEditableImage2f(v2(4, 4), 0)
	first := store.CreateImage()
	second := store.CreateImage()
	third := store.CreateImage()

	if first.InvalidatedArea().IsEmpty() {
		t.Error("first snapshot should carry the initial region")
	}
	if !second.InvalidatedArea().IsEmpty() {
		t.Errorf("second InvalidatedArea() = %v, want empty", second.InvalidatedArea())
	}
	if second.buf != first.buf {
		t.Error("second snapshot should share the first buffer")
	}
	if third != second {
		t.Error("third snapshot should be the second one")
	}
	if allocated, _ := store.BufferStats(); allocated != 1 {
		t.Errorf("allocated = %d, want 1", allocated)
	}
}

func TestLockedBuffersAreNotReused(t *testing.T) {
	store := NewEditableImage2f(v2(4, 4), 0)

	held := store.CreateImage()
	held.Lock()

	edit := func(v float32) {
		acc := store.RequestAccess(grid.NewRange2i(v2(0, 0), v2(1, 1)))
		acc.Set(v2(0, 0), v)
		acc.Close()
	}

	edit(7)
	next := store.CreateImage()
	if next.buf == held.buf {
		t.Fatal("locked buffer was handed out again")
	}
	if got := held.Sample(v2(0, 0)); got != 0 {
		t.Errorf("held snapshot changed: Sample() = %v, want 0", got)
	}
	if allocated, locked := store.BufferStats(); allocated != 2 || locked != 1 {
		t.Errorf("BufferStats() = (%d, %d), want (2, 1)", allocated, locked)
	}

	held.Unlock()
	edit(9)
	reused := store.CreateImage()
	if reused.buf != held.buf {
		t.Error("unlocked buffer should be reused first")
	}
	if allocated, _ := store.BufferStats(); allocated != 2 {
		t.Errorf("allocated = %d, want 2", allocated)
	}
}

func TestUnlockWithoutLockPanics(t *testing.T) {
	store := NewEditableImage2f(v2(2, 2), 0)
	img := store.CreateImage()

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNotLocked) {
			t.Errorf("recover() = %v, want ErrNotLocked", r)
		}
	}()
	img.Unlock()
}

func TestWriteToLockedBufferPanics(t *testing.T) {
	pool := newBufferPool(func() []int { return make([]int, 1) })
	b := pool.acquire()
	pool.lock(b)

	defer func() {
		err, ok := recover().(error)
		var locked *BufferLockedError
		if !ok || !errors.As(err, &locked) || !errors.Is(err, ErrBufferLocked) {
			t.Fatalf("recover() = %v, want *BufferLockedError", err)
		}
		if locked.Locks != 1 {
			t.Errorf("Locks = %d, want 1", locked.Locks)
		}
	}()
	pool.write(b, func([]int) {})
}

func TestHeightInterpolates(t *testing.T) {
	data := grid.NewMatrix2[float32](v2(2, 2))
	data.Set(v2(1, 0), 2)
	data.Set(v2(1, 1), 2)
	store := NewEditableImage2fFromData(data, 1.5)
	img := store.CreateImage()

	tests := []struct {
		x, y float32
		want float32
	}{
		{0, 0, 0},
		{1, 0, 3},
		{0.5, 0.5, 1.5},
		{-4, 0, 0},
		{9, 9, 3},
	}
	for _, tt := range tests {
		if got := img.Height(tt.x, tt.y); got != tt.want {
			t.Errorf("Height(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if got := img.RangeZ(); got.Min != 0 || got.Max != 3 {
		t.Errorf("RangeZ() = %v, want [0,3]", got)
	}
}

func TestImage2fAnyData(t *testing.T) {
	img := NewEditableImage2f(v2(4, 4), 0).CreateImage()

	if !img.AnyData(grid.NewRange2i(v2(2, 2), v2(6, 6))) {
		t.Error("AnyData() = false for cells overlapping the field")
	}
	if img.AnyData(grid.NewRange2i(v2(4, 0), v2(8, 4))) {
		t.Error("AnyData() = true for cells outside the field")
	}
}
