package integrator

import (
	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// Scene is what an integrator needs from the world: hit testing and a sky
type Scene interface {
	core.Hittable
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear color carried by a camera ray
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}

// BackgroundGradient returns the sky color for a ray that escapes the scene.
// The ray direction is normalized and its y component, mapped from [-1, 1]
// to [0, 1], blends from bottomColor to topColor.
func BackgroundGradient(ray core.Ray, topColor, bottomColor core.Vec3) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}
