package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2FloorCeil(t *testing.T) {
	v := Vec2{-1.5, 2.25}
	if x, y := v.Floor(); x != -2 || y != 2 {
		t.Errorf("Vec2.Floor() = (%d,%d), want (-2,2)", x, y)
	}
	if x, y := v.Ceil(); x != -1 || y != 3 {
		t.Errorf("Vec2.Ceil() = (%d,%d), want (-1,3)", x, y)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeDegenerate(t *testing.T) {
	got := Vec3{}.Normalize()
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3{}.Normalize() = %v, want %v", got, want)
	}
	l := Vec3{3, 0, 4}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
}
