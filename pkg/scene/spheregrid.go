package scene

import (
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
)

// DefaultSphereGridSize is the grid edge used by the built-in spheregrid scene
const DefaultSphereGridSize = 6

const (
	groundRadius = 100.0
	gridWidth    = 4.0 // Extent of the grid along X and Z
)

var groundCenter = core.NewVec3(0, -100.5, -1)

// NewSphereGridScene creates a gridSize x gridSize grid of small spheres resting on the ground sphere
func NewSphereGridScene(gridSize int, logger core.Logger) *Scene {
	cameraConfig := geometry.ViewportCameraConfig(
		core.NewVec3(0, 0.4, 1.5), // Raised and pulled back to see the whole grid
		2.0,                       // Same 2:1 aspect as the default scene
		2.0,
		1.0,
	)

	samplingConfig := DefaultSamplingConfig()
	samplingConfig.Width = 400
	samplingConfig.Height = 200

	s := NewScene(cameraConfig, samplingConfig, logger)
	_ = s.AddSphere(groundCenter, groundRadius)

	if gridSize < 1 {
		return s
	}

	spacing := gridWidth
	if gridSize > 1 {
		spacing = gridWidth / float64(gridSize-1)
	}

	// Scale sphere radius based on spacing, but keep reasonable minimum/maximum
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - gridWidth/2.0
			z := -float64(j)*spacing - 1.0
			_ = s.AddSphere(restingCenter(x, z, radius), radius)
		}
	}

	return s
}

// restingCenter places a sphere of the given radius tangent to the top of the ground sphere above (x, z)
func restingCenter(x, z, radius float64) core.Vec3 {
	dx := x - groundCenter.X
	dz := z - groundCenter.Z
	reach := groundRadius + radius
	y := groundCenter.Y + math.Sqrt(reach*reach-dx*dx-dz*dz)
	return core.NewVec3(x, y, z)
}
