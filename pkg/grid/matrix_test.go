package grid

import "testing"

func TestMatrix2RowMajor(t *testing.T) {
	m := NewMatrix2[float32](Vec2i{3, 2})
	m.Set(Vec2i{2, 1}, 7)

	if got := m.Data[1*3+2]; got != 7 {
		t.Errorf("Data[5] = %v, want 7", got)
	}
	if got := m.At(Vec2i{2, 1}); got != 7 {
		t.Errorf("At() = %v, want 7", got)
	}
	if m.Contains(Vec2i{3, 0}) || m.Contains(Vec2i{-1, 0}) {
		t.Error("Contains() accepted an out-of-range coordinate")
	}
	if got := m.Range(); got != NewRange2i(Vec2i{}, Vec2i{3, 2}) {
		t.Errorf("Range() = %v", got)
	}

	c := NewMatrix2[float32](Vec2i{3, 2})
	c.CopyFrom(m)
	if c.At(Vec2i{2, 1}) != 7 {
		t.Error("CopyFrom() lost data")
	}
	c.Fill(1)
	if m.At(Vec2i{0, 0}) != 0 {
		t.Error("copy shares storage with source")
	}
}

func TestMatrix3Layout(t *testing.T) {
	m := NewMatrix3[bool](Vec3i{2, 3, 4})
	m.Set(Vec3i{1, 2, 3}, true)

	if !m.Data[(3*3+2)*2+1] {
		t.Error("unexpected index layout")
	}
	if !m.At(Vec3i{1, 2, 3}) {
		t.Error("At() = false, want true")
	}
	if len(m.Data) != 24 {
		t.Errorf("len(Data) = %d, want 24", len(m.Data))
	}
}

func TestNewMatrixRejectsNegativeSize(t *testing.T) {
	m := NewMatrix2[int](Vec2i{-1, 4})
	if len(m.Data) != 0 || !m.Range().IsEmpty() {
		t.Errorf("expected empty matrix, got size %v", m.Size)
	}
}
