package scene

import (
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
)

// DefaultSamplingConfig returns the 200x100 image at 100 samples per pixel
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// NewDefaultScene creates a small sphere resting on a huge ground sphere
func NewDefaultScene(logger core.Logger) *Scene {
	s := NewScene(geometry.DefaultCameraConfig(), DefaultSamplingConfig(), logger)

	// Both spheres are valid, so AddSphere cannot fail here
	_ = s.AddSphere(core.NewVec3(0, 0, -1), 0.5)
	_ = s.AddSphere(core.NewVec3(0, -100.5, -1), 100) // ground

	return s
}
