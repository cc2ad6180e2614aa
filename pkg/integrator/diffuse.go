package integrator

import (
	"math"
	"sync/atomic"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// Config controls the diffuse integrator
type Config struct {
	MaxDepth int     // Bounces before a path returns black
	TMin     float64 // Minimum hit distance, keeps bounces off their own surface
	Albedo   float64 // Fraction of light kept per bounce
}

// DefaultConfig returns a 50-bounce, 50% albedo configuration
func DefaultConfig() Config {
	return Config{
		MaxDepth: 50,
		TMin:     0.001,
		Albedo:   0.5,
	}
}

// DiffuseIntegrator shades every surface as a matte diffuser lit only by the sky.
// It is safe for concurrent use as long as each goroutine has its own sampler.
type DiffuseIntegrator struct {
	config    Config
	logger    core.Logger
	fallbacks atomic.Int64
}

// NewDiffuseIntegrator creates a new diffuse integrator
func NewDiffuseIntegrator(config Config, logger core.Logger) *DiffuseIntegrator {
	return &DiffuseIntegrator{
		config: config,
		logger: logger,
	}
}

// RayColor computes the color of a camera ray with the configured depth budget
func (d *DiffuseIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	return d.Color(ray, scene, d.config.MaxDepth, sampler)
}

// Color returns the light arriving along ray, following at most depth bounces
func (d *DiffuseIntegrator) Color(ray core.Ray, scene Scene, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := scene.Hit(ray, d.config.TMin, math.Inf(1))
	if !isHit {
		topColor, bottomColor := scene.GetBackgroundColors()
		return BackgroundGradient(ray, topColor, bottomColor)
	}

	// Bounce toward a random point in the unit sphere tangent to the surface
	offset := d.randomInUnitSphere(sampler)
	target := hit.Point.Add(hit.Normal).Add(offset)
	scattered := core.NewRay(hit.Point, target.Subtract(hit.Point))

	return d.Color(scattered, scene, depth-1, sampler).Multiply(d.config.Albedo)
}

// SamplingFallbacks returns how many bounces used the normal direction
// because rejection sampling gave up
func (d *DiffuseIntegrator) SamplingFallbacks() int64 {
	return d.fallbacks.Load()
}

func (d *DiffuseIntegrator) randomInUnitSphere(sampler core.Sampler) core.Vec3 {
	p, ok := core.RandomInUnitSphere(sampler)
	if !ok {
		// Log the first fallback only
		if d.fallbacks.Add(1) == 1 && d.logger != nil {
			d.logger.Printf("Warning: no point inside the unit sphere after %d draws, bouncing along the normal\n",
				core.MaxRejectionAttempts)
		}
	}
	return p
}
