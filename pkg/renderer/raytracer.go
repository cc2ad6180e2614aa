package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"time"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

// ErrInvalidConfig is returned when the renderer configuration cannot be used
var ErrInvalidConfig = errors.New("invalid render config")

// Config contains configuration for tiled rendering
type Config struct {
	TileSize   int   // Edge length of each square tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; tile i samples with Seed+i
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0,
		Seed:       42,
	}
}

// Raytracer renders a scene into a pixel sink
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil integrator falls back to a
// diffuse integrator using the scene's max depth; a nil logger discards output.
func NewRaytracer(scene *scene.Scene, integratorInst integrator.Integrator, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if integratorInst == nil {
		integratorConfig := integrator.DefaultConfig()
		if scene.SamplingConfig.MaxDepth > 0 {
			integratorConfig.MaxDepth = scene.SamplingConfig.MaxDepth
		}
		integratorInst = integrator.NewDiffuseIntegrator(integratorConfig, logger)
	}

	return &Raytracer{
		scene:      scene,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// Render renders every pixel of the scene into sink. Each pixel is written
// exactly once. The result is identical for any worker count because every
// tile draws from its own seeded random stream.
func (rt *Raytracer) Render(ctx context.Context, sink PixelSink) (RenderStats, error) {
	samplingConfig := rt.scene.SamplingConfig
	if err := samplingConfig.Validate(); err != nil {
		return RenderStats{}, err
	}
	if rt.config.TileSize <= 0 {
		return RenderStats{}, fmt.Errorf("%w: tile size %d", ErrInvalidConfig, rt.config.TileSize)
	}

	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tiles := NewTileGrid(samplingConfig.Width, samplingConfig.Height, rt.config.TileSize, rt.config.Seed)
	pool := NewWorkerPool(NewTileRenderer(rt.scene, rt.integrator), len(tiles), rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d at %d spp with %d workers (%d tiles)\n",
		samplingConfig.Width, samplingConfig.Height, samplingConfig.SamplesPerPixel,
		pool.GetNumWorkers(), len(tiles))

	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Sink: sink})
	}

	stats := RenderStats{}
	var firstErr error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
			cancel() // Remaining tiles stop at their next pixel
		}
	}
	pool.Stop()

	stats.finalize()
	stats.Duration = time.Since(start)

	if firstErr != nil {
		rt.logger.Printf("Render stopped after %d of %d tiles: %v\n", stats.TilesRendered, len(tiles), firstErr)
		return stats, fmt.Errorf("render: %w", firstErr)
	}

	rt.logger.Printf("Render completed in %v (%d pixels, %.1f avg samples)\n",
		stats.Duration, stats.TotalPixels, stats.AverageSamples)
	return stats, nil
}

// RenderImage renders the scene into a new RGBA image
func (rt *Raytracer) RenderImage(ctx context.Context) (*image.RGBA, RenderStats, error) {
	config := rt.scene.SamplingConfig
	if err := config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	sink := NewRGBASink(config.Width, config.Height)
	stats, err := rt.Render(ctx, sink)
	if err != nil {
		return nil, stats, err
	}
	return sink.Image, stats, nil
}
