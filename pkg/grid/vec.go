// Package grid provides integer coordinates, axis-aligned ranges and dense
// matrices addressed by integer coordinate.
package grid

import "fmt"

// Vec2i is an integer 2D coordinate.
type Vec2i struct {
	X, Y int
}

// Vec3i is an integer 3D coordinate.
type Vec3i struct {
	X, Y, Z int
}

// Add returns the sum of two vectors.
func (v Vec2i) Add(o Vec2i) Vec2i { return Vec2i{v.X + o.X, v.Y + o.Y} }

// Sub returns the difference of two vectors.
func (v Vec2i) Sub(o Vec2i) Vec2i { return Vec2i{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product.
func (v Vec2i) Mul(o Vec2i) Vec2i { return Vec2i{v.X * o.X, v.Y * o.Y} }

// Scale returns the vector multiplied by s.
func (v Vec2i) Scale(s int) Vec2i { return Vec2i{v.X * s, v.Y * s} }

// Min returns the component-wise minimum.
func (v Vec2i) Min(o Vec2i) Vec2i { return Vec2i{min(v.X, o.X), min(v.Y, o.Y)} }

// Max returns the component-wise maximum.
func (v Vec2i) Max(o Vec2i) Vec2i { return Vec2i{max(v.X, o.X), max(v.Y, o.Y)} }

// AreaSum returns X*Y.
func (v Vec2i) AreaSum() int { return v.X * v.Y }

// AnyNonPositive reports whether any component is <= 0.
func (v Vec2i) AnyNonPositive() bool { return v.X <= 0 || v.Y <= 0 }

// XYZ extends the vector with z.
func (v Vec2i) XYZ(z int) Vec3i { return Vec3i{v.X, v.Y, z} }

func (v Vec2i) String() string { return fmt.Sprintf("(%d,%d)", v.X, v.Y) }

// Add returns the sum of two vectors.
func (v Vec3i) Add(o Vec3i) Vec3i { return Vec3i{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference of two vectors.
func (v Vec3i) Sub(o Vec3i) Vec3i { return Vec3i{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul returns the component-wise product.
func (v Vec3i) Mul(o Vec3i) Vec3i { return Vec3i{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// Scale returns the vector multiplied by s.
func (v Vec3i) Scale(s int) Vec3i { return Vec3i{v.X * s, v.Y * s, v.Z * s} }

// Min returns the component-wise minimum.
func (v Vec3i) Min(o Vec3i) Vec3i { return Vec3i{min(v.X, o.X), min(v.Y, o.Y), min(v.Z, o.Z)} }

// Max returns the component-wise maximum.
func (v Vec3i) Max(o Vec3i) Vec3i { return Vec3i{max(v.X, o.X), max(v.Y, o.Y), max(v.Z, o.Z)} }

// Volume returns X*Y*Z.
func (v Vec3i) Volume() int { return v.X * v.Y * v.Z }

// AnyNonPositive reports whether any component is <= 0.
func (v Vec3i) AnyNonPositive() bool { return v.X <= 0 || v.Y <= 0 || v.Z <= 0 }

// XY drops the Z component.
func (v Vec3i) XY() Vec2i { return Vec2i{v.X, v.Y} }

func (v Vec3i) String() string { return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z) }
