package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
)

// vec3JSON is a vector written as [x, y, z]
type vec3JSON [3]float64

func (v vec3JSON) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneFile is the JSON description of a scene
type SceneFile struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Width           int             `json:"width"`
	Height          int             `json:"height"`
	SamplesPerPixel int             `json:"samplesPerPixel"`
	MaxDepth        int             `json:"maxDepth"`
	DisableJitter   bool            `json:"disableJitter"`
	Camera          *CameraFile     `json:"camera"`
	Background      *BackgroundFile `json:"background"`
	Spheres         []SphereFile    `json:"spheres"`
}

// CameraFile holds the viewport geometry; omitted fields keep the default camera's values
type CameraFile struct {
	Origin          *vec3JSON `json:"origin"`
	LowerLeftCorner *vec3JSON `json:"lowerLeftCorner"`
	Horizontal      *vec3JSON `json:"horizontal"`
	Vertical        *vec3JSON `json:"vertical"`
}

// BackgroundFile holds the sky gradient endpoints
type BackgroundFile struct {
	Top    *vec3JSON `json:"top"`
	Bottom *vec3JSON `json:"bottom"`
}

// SphereFile is one sphere entry
type SphereFile struct {
	Center vec3JSON `json:"center"`
	Radius float64  `json:"radius"`
}

// LoadSceneFile reads a JSON scene from disk
func LoadSceneFile(path string, logger core.Logger) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file, logger)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes a JSON scene. Invalid spheres are logged and skipped;
// malformed JSON or an unrenderable sampling config is an error.
func ParseScene(r io.Reader, logger core.Logger) (*Scene, error) {
	var desc SceneFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	samplingConfig := MergeSamplingConfig(DefaultSamplingConfig(), SamplingConfig{
		Width:           desc.Width,
		Height:          desc.Height,
		SamplesPerPixel: desc.SamplesPerPixel,
		MaxDepth:        desc.MaxDepth,
		DisableJitter:   desc.DisableJitter,
	})
	if err := samplingConfig.Validate(); err != nil {
		return nil, err
	}

	s := NewScene(desc.Camera.toCameraConfig(), samplingConfig, logger)

	if desc.Background != nil {
		if desc.Background.Top != nil {
			s.TopColor = desc.Background.Top.toVec3()
		}
		if desc.Background.Bottom != nil {
			s.BottomColor = desc.Background.Bottom.toVec3()
		}
	}

	rejected := 0
	for _, sphere := range desc.Spheres {
		// AddSphere logs the rejection reason
		if err := s.AddSphere(sphere.Center.toVec3(), sphere.Radius); err != nil {
			rejected++
		}
	}
	if rejected > 0 && logger != nil {
		logger.Printf("Loaded %d of %d spheres\n", len(desc.Spheres)-rejected, len(desc.Spheres))
	}

	return s, nil
}

func (c *CameraFile) toCameraConfig() geometry.CameraConfig {
	config := geometry.DefaultCameraConfig()
	if c == nil {
		return config
	}
	if c.Origin != nil {
		config.Origin = c.Origin.toVec3()
	}
	if c.LowerLeftCorner != nil {
		config.LowerLeftCorner = c.LowerLeftCorner.toVec3()
	}
	if c.Horizontal != nil {
		config.Horizontal = c.Horizontal.toVec3()
	}
	if c.Vertical != nil {
		config.Vertical = c.Vertical.toVec3()
	}
	return config
}
