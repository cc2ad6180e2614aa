package renderer

import (
	"context"
	"image"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders pixels within the specified bounds and writes them to sink.
// The context is checked before every pixel; on cancellation the pixels
// finished so far stay written and ctx.Err() is returned.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, sampler core.Sampler, sink PixelSink) (RenderStats, error) {
	config := tr.scene.SamplingConfig
	stats := RenderStats{}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Image rows run top-down while viewport rows run bottom-up
		j := config.Height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			color := tr.samplePixel(i, j, sampler)
			r, g, b := ColorToRGB(color)
			sink.SetRGB(i, y, r, g, b)

			stats.TotalPixels++
			stats.TotalSamples += config.SamplesPerPixel
		}
	}

	stats.TilesRendered = 1
	stats.finalize()
	return stats, nil
}

// samplePixel averages SamplesPerPixel integrator samples for viewport pixel (i, j)
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	config := tr.scene.SamplingConfig
	camera := tr.scene.GetCamera()
	width := float64(config.Width)
	height := float64(config.Height)

	var ps PixelStats
	for s := 0; s < config.SamplesPerPixel; s++ {
		u := float64(i) / width
		v := float64(j) / height
		if !config.DisableJitter {
			jitter := sampler.Get2D()
			u = (float64(i) + jitter.X) / width
			v = (float64(j) + jitter.Y) / height
		}

		ray := camera.GetRay(u, v)
		ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
	}

	return ps.GetColor()
}
