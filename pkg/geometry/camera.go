package geometry

import (
	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// CameraConfig describes a pinhole camera with a fixed viewport plane
type CameraConfig struct {
	Origin          core.Vec3 // Eye position
	LowerLeftCorner core.Vec3 // Viewport corner at (u, v) = (0, 0)
	Horizontal      core.Vec3 // Viewport extent along u
	Vertical        core.Vec3 // Viewport extent along v
}

// DefaultCameraConfig returns the 2:1 viewport looking down -Z from the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin:          core.NewVec3(0, 0, 0),
		LowerLeftCorner: core.NewVec3(-2, -1, -1),
		Horizontal:      core.NewVec3(4, 0, 0),
		Vertical:        core.NewVec3(0, 2, 0),
	}
}

// ViewportCameraConfig derives an axis-aligned viewport centered on the -Z axis
func ViewportCameraConfig(origin core.Vec3, aspectRatio, viewportHeight, focalLength float64) CameraConfig {
	viewportWidth := aspectRatio * viewportHeight

	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, viewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, focalLength))

	return CameraConfig{
		Origin:          origin,
		LowerLeftCorner: lowerLeftCorner,
		Horizontal:      horizontal,
		Vertical:        vertical,
	}
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	return &Camera{
		origin:          config.Origin,
		lowerLeftCorner: config.LowerLeftCorner,
		horizontal:      config.Horizontal,
		vertical:        config.Vertical,
	}
}

// GetRay generates a ray for viewport coordinates (u, v) where 0 <= u,v <= 1
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
