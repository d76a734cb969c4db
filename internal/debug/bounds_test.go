package debug

import (
	"testing"

	gmath "github.com/Faultbox/terramesh/pkg/math"
)

func TestBoundsWireframe(t *testing.T) {
	bounds := gmath.Box3{Min: gmath.Vec3{X: 16, Y: 32, Z: 1}, Max: gmath.Vec3{X: 32, Y: 48, Z: 5}}
	offset := gmath.Vec3{X: 16, Y: 32}

	lines := BoundsWireframe(bounds, offset)
	if len(lines) != WireframeVertexCount {
		t.Fatalf("len(BoundsWireframe()) = %d, want %d", len(lines), WireframeVertexCount)
	}

	var total float32
	for i := 0; i < len(lines); i += 2 {
		a, b := lines[i], lines[i+1]
		axes := 0
		if a.X != b.X {
			axes++
		}
		if a.Y != b.Y {
			axes++
		}
		if a.Z != b.Z {
			axes++
		}
		if axes != 1 {
			t.Errorf("edge %v-%v is not axis aligned", a, b)
		}
		total += a.Distance(b)
	}
	// 4 edges along each axis: 4*(16+16+4).
	if total != 144 {
		t.Errorf("total edge length = %v, want 144", total)
	}

	for _, p := range lines {
		if p.X < 0 || p.X > 16 || p.Y < 0 || p.Y > 16 || p.Z < 1 || p.Z > 5 {
			t.Errorf("endpoint %v is outside the local box", p)
		}
	}
}

func TestPadded(t *testing.T) {
	flat := gmath.Box3{Min: gmath.Vec3{X: 0, Y: 0, Z: 2}, Max: gmath.Vec3{X: 4, Y: 4, Z: 2}}
	got := Padded(flat, 0.5)
	want := gmath.Box3{Min: gmath.Vec3{X: -0.5, Y: -0.5, Z: 1.5}, Max: gmath.Vec3{X: 4.5, Y: 4.5, Z: 2.5}}
	if got != want {
		t.Errorf("Padded() = %v, want %v", got, want)
	}
}
