package grid

import "testing"

func r2(minX, minY, maxX, maxY int) Range2i {
	return NewRange2i(Vec2i{minX, minY}, Vec2i{maxX, maxY})
}

func TestNewRange2iNormalizesEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Range2i
	}{
		{"zero width", r2(3, 1, 3, 5)},
		{"negative height", r2(0, 4, 2, 1)},
		{"zero value", Range2i{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.r.IsEmpty() {
				t.Errorf("%v.IsEmpty() = false, want true", tt.r)
			}
			if tt.r != (Range2i{}) {
				t.Errorf("empty range %v not normalized", tt.r)
			}
		})
	}
}

func TestRange2iCombineWith(t *testing.T) {
	tests := []struct {
		name string
		a, b Range2i
		want Range2i
	}{
		{"disjoint", r2(0, 0, 1, 1), r2(3, 4, 5, 6), r2(0, 0, 5, 6)},
		{"nested", r2(0, 0, 10, 10), r2(2, 2, 3, 3), r2(0, 0, 10, 10)},
		{"empty left is identity", Range2i{}, r2(1, 2, 3, 4), r2(1, 2, 3, 4)},
		{"empty right is identity", r2(1, 2, 3, 4), Range2i{}, r2(1, 2, 3, 4)},
		{"both empty", Range2i{}, Range2i{}, Range2i{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.CombineWith(tt.b); got != tt.want {
				t.Errorf("CombineWith() = %v, want %v", got, tt.want)
			}
			if got := tt.b.CombineWith(tt.a); got != tt.want {
				t.Errorf("CombineWith() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRange2iIntersectWith(t *testing.T) {
	tests := []struct {
		name string
		a, b Range2i
		want Range2i
	}{
		{"overlap", r2(0, 0, 4, 4), r2(2, 1, 6, 3), r2(2, 1, 4, 3)},
		{"touching edges", r2(0, 0, 2, 2), r2(2, 0, 4, 2), Range2i{}},
		{"empty absorbs", r2(0, 0, 4, 4), Range2i{}, Range2i{}},
		{"all", Range2iAll, r2(-5, -5, 5, 5), r2(-5, -5, 5, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IntersectWith(tt.b); got != tt.want {
				t.Errorf("IntersectWith() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRange2iOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Range2i
		want bool
	}{
		{"overlap", r2(0, 0, 4, 4), r2(3, 3, 5, 5), true},
		{"half-open edge", r2(0, 0, 4, 4), r2(4, 0, 5, 4), false},
		{"empty never overlaps", r2(0, 0, 4, 4), Range2i{}, false},
		{"contained", r2(0, 0, 4, 4), r2(1, 1, 2, 2), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRange2iExtendAndForEach(t *testing.T) {
	r := r2(2, 2, 3, 4).ExtendBothDirections(1)
	if want := r2(1, 1, 4, 5); r != want {
		t.Fatalf("ExtendBothDirections() = %v, want %v", r, want)
	}
	if got := (Range2i{}).ExtendBothDirections(3); !got.IsEmpty() {
		t.Errorf("extending empty should stay empty, got %v", got)
	}

	var visited []Vec2i
	r2(0, 0, 2, 2).ForEach(func(p Vec2i) { visited = append(visited, p) })
	want := []Vec2i{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if len(visited) != len(want) {
		t.Fatalf("ForEach visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("ForEach()[%d] = %v, want %v", i, visited[i], want[i])
		}
	}
}

func TestRangeAreaConversion(t *testing.T) {
	r := r2(1, 1, 3, 3)
	a := r.ToArea()
	if want := (Area2i{Min: Vec2i{1, 1}, Max: Vec2i{2, 2}}); a != want {
		t.Errorf("ToArea() = %v, want %v", a, want)
	}
	if a.ToRange() != r {
		t.Errorf("ToRange() = %v, want %v", a.ToRange(), r)
	}
	if !(Range2i{}).ToArea().IsEmpty() {
		t.Error("empty range must convert to empty area")
	}
}

func TestArea2iAlgebra(t *testing.T) {
	a := NewArea2i(Vec2i{0, 0}, Vec2i{2, 2})
	b := NewArea2i(Vec2i{2, 2}, Vec2i{4, 4})

	if !a.Overlaps(b) {
		t.Error("inclusive areas sharing a corner must overlap")
	}
	if got, want := a.IntersectWith(b), NewArea2i(Vec2i{2, 2}, Vec2i{2, 2}); got != want {
		t.Errorf("IntersectWith() = %v, want %v", got, want)
	}
	if got := a.CombineWith(Area2iEmpty); got != a {
		t.Errorf("CombineWith(empty) = %v, want %v", got, a)
	}
	if got := Area2iEmpty.IntersectWith(a); !got.IsEmpty() {
		t.Errorf("IntersectWith(empty) = %v, want empty", got)
	}
	if got := a.Size(); got != (Vec2i{3, 3}) {
		t.Errorf("Size() = %v, want (3,3)", got)
	}
}

func TestRange3i(t *testing.T) {
	r := NewRange3i(Vec3i{0, 0, 0}, Vec3i{2, 3, 4})
	if got := r.Size().Volume(); got != 24 {
		t.Errorf("Volume() = %d, want 24", got)
	}
	if got := r.XY(); got != r2(0, 0, 2, 3) {
		t.Errorf("XY() = %v", got)
	}
	o := NewRange3i(Vec3i{1, 1, 3}, Vec3i{5, 5, 5})
	if !r.Overlaps(o) {
		t.Error("expected overlap")
	}
	if got, want := r.IntersectWith(o), NewRange3i(Vec3i{1, 1, 3}, Vec3i{2, 3, 4}); got != want {
		t.Errorf("IntersectWith() = %v, want %v", got, want)
	}
	if got := r.CombineWith(Range3i{}); got != r {
		t.Errorf("CombineWith(empty) = %v, want %v", got, r)
	}
	count := 0
	r.ForEach(func(Vec3i) { count++ })
	if count != 24 {
		t.Errorf("ForEach visited %d, want 24", count)
	}
}

func TestArea1f(t *testing.T) {
	a := Area1fPoint(2).UnionWith(-1).UnionWith(5)
	if a.Min != -1 || a.Max != 5 {
		t.Errorf("UnionWith() = %v, want [-1,5]", a)
	}
	if a.Size() != 6 {
		t.Errorf("Size() = %v, want 6", a.Size())
	}
}
