package frame

import (
	"math"

	gmath "github.com/Faultbox/terramesh/pkg/math"
)

// Visibility decides which part of the terrain is worth meshing. All
// coordinates are in terrain-local space.
type Visibility interface {
	// LocalBounds is the XY rectangle that can possibly be visible.
	LocalBounds() (min, max gmath.Vec2)
	// Intersects reports whether the box may be visible.
	Intersects(box gmath.Box3) bool
}

// Source hands out the visibility for the current tick.
type Source interface {
	Visibility() Visibility
}

// SourceFunc adapts a function to Source.
type SourceFunc func() Visibility

// Visibility calls f.
func (f SourceFunc) Visibility() Visibility { return f() }

// CameraFrustum is the visible volume of a perspective camera.
type CameraFrustum struct {
	planes    [6]gmath.Plane
	corners   [4]gmath.Vec3
	position  gmath.Vec3
	camToWld  gmath.Mat4
	wldToTerr gmath.Mat4
}

// NewCameraFrustum builds the frustum of a camera.
//
// viewProj maps world space to clip space and cameraToWorld is the camera
// transform. terrainToWorld places the terrain in the world. farCorners are
// the far-plane corners in camera space, see FarPlaneCorners.
func NewCameraFrustum(viewProj, cameraToWorld, terrainToWorld gmath.Mat4, farCorners [4]gmath.Vec3) *CameraFrustum {
	return &CameraFrustum{
		planes:    gmath.FrustumPlanes(viewProj.Mul(terrainToWorld)),
		corners:   farCorners,
		position:  cameraToWorld.TransformPoint(gmath.Vec3{}),
		camToWld:  cameraToWorld,
		wldToTerr: terrainToWorld.Inverse(),
	}
}

// FarPlaneCorners returns the far-plane corners of a camera looking down -Z
// in its own space.
func FarPlaneCorners(fovY, aspect, far float32) [4]gmath.Vec3 {
	h := far * float32(math.Tan(float64(fovY)/2))
	w := h * aspect
	return [4]gmath.Vec3{
		{X: -w, Y: -h, Z: -far},
		{X: -w, Y: h, Z: -far},
		{X: w, Y: h, Z: -far},
		{X: w, Y: -h, Z: -far},
	}
}

// LocalBounds implements Visibility. The rectangle spans the camera
// position and the far-plane corners projected onto the terrain plane.
func (c *CameraFrustum) LocalBounds() (min, max gmath.Vec2) {
	pos := c.wldToTerr.TransformPoint(c.position).XY()
	min, max = pos, pos
	for _, corner := range c.corners {
		dir := c.wldToTerr.TransformDirection(c.camToWld.TransformDirection(corner)).XY()
		p := pos.Add(dir)
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// Intersects implements Visibility.
func (c *CameraFrustum) Intersects(box gmath.Box3) bool {
	return gmath.TestPlanesBox(c.planes[:], box)
}

// RectVisibility sees everything above an XY rectangle. Headless drivers
// and tests use it in place of a camera.
type RectVisibility struct {
	Min, Max gmath.Vec2
}

// LocalBounds implements Visibility.
func (r RectVisibility) LocalBounds() (min, max gmath.Vec2) { return r.Min, r.Max }

// Intersects implements Visibility.
func (r RectVisibility) Intersects(box gmath.Box3) bool {
	return box.Min.X < r.Max.X && box.Max.X > r.Min.X &&
		box.Min.Y < r.Max.Y && box.Max.Y > r.Min.Y
}
