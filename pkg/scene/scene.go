package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
)

// ErrInvalidSamplingConfig is returned when a sampling configuration cannot be rendered
var ErrInvalidSamplingConfig = errors.New("invalid sampling config")

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.HittableList // Objects in the scene
	SamplingConfig SamplingConfig
	TopColor       core.Vec3 // Sky color straight up
	BottomColor    core.Vec3 // Sky color straight down
	logger         core.Logger
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int  // Image width
	Height          int  // Image height
	SamplesPerPixel int  // Number of rays per pixel
	MaxDepth        int  // Maximum ray bounce depth
	DisableJitter   bool // Sample pixel corners instead of random sub-pixel positions
}

// Validate checks that the configuration describes a renderable image
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width %d", ErrInvalidSamplingConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height %d", ErrInvalidSamplingConfig, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidSamplingConfig, c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidSamplingConfig, c.MaxDepth)
	}
	return nil
}

// MergeSamplingConfig returns base with every non-zero field of override applied.
// Negative values are kept so Validate can reject them.
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.DisableJitter {
		result.DisableJitter = true
	}
	return result
}

// NewScene creates an empty scene with the default sky colors
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig, logger core.Logger) *Scene {
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(),
		SamplingConfig: samplingConfig,
		TopColor:       core.NewVec3(0.5, 0.7, 1.0),
		BottomColor:    core.NewVec3(1.0, 1.0, 1.0),
		logger:         logger,
	}
}

// AddSphere validates and adds a sphere. Invalid spheres are logged and
// rejected so they cannot feed NaNs into the render.
func (s *Scene) AddSphere(center core.Vec3, radius float64) error {
	sphere := geometry.NewSphere(center, radius)
	if err := sphere.Validate(); err != nil {
		if s.logger != nil {
			s.logger.Printf("Rejecting sphere: %v\n", err)
		}
		return fmt.Errorf("add sphere: %w", err)
	}
	s.World.Add(sphere)
	return nil
}

// Hit tests the ray against every object in the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return s.World.Hit(ray, tMin, tMax)
}

// GetBackgroundColors returns the sky gradient endpoints
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetPrimitiveCount returns the number of top-level objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
