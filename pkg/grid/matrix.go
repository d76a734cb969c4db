package grid

// Matrix2 is a dense 2D array stored row-major (index = y*Size.X + x).
type Matrix2[T any] struct {
	Size Vec2i
	Data []T
}

// NewMatrix2 allocates a zeroed matrix.
func NewMatrix2[T any](size Vec2i) *Matrix2[T] {
	if size.AnyNonPositive() {
		size = Vec2i{}
	}
	return &Matrix2[T]{Size: size, Data: make([]T, size.AreaSum())}
}

// Range returns [0, Size).
func (m *Matrix2[T]) Range() Range2i { return NewRange2i(Vec2i{}, m.Size) }

// Contains reports whether p addresses an element.
func (m *Matrix2[T]) Contains(p Vec2i) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Size.X && p.Y < m.Size.Y
}

// At returns the element at p. p must be inside the matrix.
func (m *Matrix2[T]) At(p Vec2i) T { return m.Data[p.Y*m.Size.X+p.X] }

// Set stores v at p. p must be inside the matrix.
func (m *Matrix2[T]) Set(p Vec2i, v T) { m.Data[p.Y*m.Size.X+p.X] = v }

// Fill sets every element to v.
func (m *Matrix2[T]) Fill(v T) {
	for i := range m.Data {
		m.Data[i] = v
	}
}

// SameSize reports whether both matrices have the same dimensions.
func (m *Matrix2[T]) SameSize(o *Matrix2[T]) bool { return m.Size == o.Size }

// CopyFrom bulk copies src, which must have the same size.
func (m *Matrix2[T]) CopyFrom(src *Matrix2[T]) { copy(m.Data, src.Data) }

// Matrix3 is a dense 3D array, X varying fastest then Y then Z.
type Matrix3[T any] struct {
	Size Vec3i
	Data []T
}

// NewMatrix3 allocates a zeroed matrix.
func NewMatrix3[T any](size Vec3i) *Matrix3[T] {
	if size.AnyNonPositive() {
		size = Vec3i{}
	}
	return &Matrix3[T]{Size: size, Data: make([]T, size.Volume())}
}

// Range returns [0, Size).
func (m *Matrix3[T]) Range() Range3i { return NewRange3i(Vec3i{}, m.Size) }

// Contains reports whether p addresses an element.
func (m *Matrix3[T]) Contains(p Vec3i) bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0 && p.X < m.Size.X && p.Y < m.Size.Y && p.Z < m.Size.Z
}

func (m *Matrix3[T]) index(p Vec3i) int { return (p.Z*m.Size.Y+p.Y)*m.Size.X + p.X }

// At returns the element at p. p must be inside the matrix.
func (m *Matrix3[T]) At(p Vec3i) T { return m.Data[m.index(p)] }

// Set stores v at p. p must be inside the matrix.
func (m *Matrix3[T]) Set(p Vec3i, v T) { m.Data[m.index(p)] = v }

// Fill sets every element to v.
func (m *Matrix3[T]) Fill(v T) {
	for i := range m.Data {
		m.Data[i] = v
	}
}

// SameSize reports whether both matrices have the same dimensions.
func (m *Matrix3[T]) SameSize(o *Matrix3[T]) bool { return m.Size == o.Size }

// CopyFrom bulk copies src, which must have the same size.
func (m *Matrix3[T]) CopyFrom(src *Matrix3[T]) { copy(m.Data, src.Data) }
