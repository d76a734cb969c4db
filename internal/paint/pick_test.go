package paint

import (
	"testing"

	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/pkg/grid"
	gmath "github.com/Faultbox/terramesh/pkg/math"
)

func TestPick(t *testing.T) {
	store := image.NewEditableImage2f(v2(16, 16), 2)
	img := store.CreateImage()

	tests := []struct {
		name string
		ray  Ray
		want grid.Vec2i
		hit  bool
	}{
		{
			name: "straight down",
			ray:  Ray{Origin: gmath.Vec3{X: 4.2, Y: 6.7, Z: 10}, Direction: gmath.Vec3{Z: -1}},
			want: v2(4, 6),
			hit:  true,
		},
		{
			name: "diagonal",
			ray:  Ray{Origin: gmath.Vec3{X: 0.5, Y: 0.5, Z: 10}, Direction: gmath.Vec3{X: 1, Y: 1, Z: -1}.Normalize()},
			want: v2(8, 8),
			hit:  true,
		},
		{
			name: "entering from outside the field",
			ray:  Ray{Origin: gmath.Vec3{X: -4.5, Y: 3.5, Z: 6}, Direction: gmath.Vec3{X: 1, Z: -0.5}.Normalize()},
			want: v2(3, 3),
			hit:  true,
		},
		{
			name: "pointing up",
			ray:  Ray{Origin: gmath.Vec3{X: 4, Y: 4, Z: 10}, Direction: gmath.Vec3{Z: 1}},
		},
		{
			name: "starting underground",
			ray:  Ray{Origin: gmath.Vec3{X: 4, Y: 4, Z: 1}, Direction: gmath.Vec3{Z: -1}},
		},
		{
			name: "too short",
			ray:  Ray{Origin: gmath.Vec3{X: 4, Y: 4, Z: 100}, Direction: gmath.Vec3{Z: -1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := Pick(img, tt.ray, 50)
			if hit != tt.hit {
				t.Fatalf("Pick() hit = %v, want %v", hit, tt.hit)
			}
			if hit && got != tt.want {
				t.Errorf("Pick() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPickSlope(t *testing.T) {
	data := grid.NewMatrix2[float32](v2(16, 16))
	data.Range().ForEach(func(p grid.Vec2i) {
		data.Set(p, float32(p.X))
	})
	img := image.NewEditableImage2fFromData(data, 1).CreateImage()

	// Horizontal ray at height 5.5 runs into the ramp where x = 5.5.
	got, hit := Pick(img, Ray{Origin: gmath.Vec3{X: 0.25, Y: 2.5, Z: 5.5}, Direction: gmath.Vec3{X: 1}}, 20)
	if !hit || got != v2(5, 2) {
		t.Errorf("Pick() = %v, %v, want (5,2), true", got, hit)
	}
}

func TestPickLiveStore(t *testing.T) {
	store := image.NewEditableImage2f(v2(8, 8), 0)
	cmd, _ := Lookup(IncreaseLarge)
	Paint(store, v2(4, 4), cmd, 2)

	// The raised center is hit before the ray reaches the ground.
	ray := Ray{Origin: gmath.Vec3{X: 4, Y: 0.5, Z: 3}, Direction: gmath.Vec3{Y: 1}}
	got, hit := Pick(store, ray, 10)
	if !hit || got.Y < 2 || got.Y > 4 {
		t.Errorf("Pick() = %v, %v, want a hit on the bump", got, hit)
	}
}
