package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

var (
	// ErrInvalidRadius is returned for spheres whose radius is not a positive finite number
	ErrInvalidRadius = errors.New("sphere radius must be positive and finite")
	// ErrInvalidCenter is returned for spheres with a NaN or infinite center
	ErrInvalidCenter = errors.New("sphere center must be finite")
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Validate reports geometry that would make Hit produce meaningless results
func (s *Sphere) Validate() error {
	if !s.Center.IsFinite() {
		return fmt.Errorf("center %v: %w", s.Center, ErrInvalidCenter)
	}
	if s.Radius <= 0 || math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("radius %g: %w", s.Radius, ErrInvalidRadius)
	}
	return nil
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil, false
	}

	// A tangent ray (discriminant == 0) yields the same root twice
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2 * a)
	if root <= tMin || root >= tMax {
		// Try the farther intersection point
		root = (-b + sqrtD) / (2 * a)
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	return &core.HitRecord{
		T:      root,
		Point:  point,
		Normal: point.Subtract(s.Center).Divide(s.Radius),
	}, true
}
