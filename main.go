package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-diffuse-raytracer/pkg/integrator"
	"github.com/df07/go-diffuse-raytracer/pkg/output"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

// scenesDir holds the JSON scenes that can be selected by name
const scenesDir = "scenes"

// options holds everything parsed from the command line
type options struct {
	sceneType     string
	width         int
	height        int
	samples       int
	depth         int
	workers       int
	tileSize      int
	seed          int64
	disableJitter bool
	outputPath    string
	thumbnail     uint
	upload        bool
	envFile       string
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.sceneType, "scene", "default", "Scene: 'default', a name from scenes/, or a path to a .json scene")
	flag.IntVar(&opts.width, "width", 0, "Image width (0 = scene value)")
	flag.IntVar(&opts.height, "height", 0, "Image height (0 = scene value)")
	flag.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene value)")
	flag.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene value)")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.IntVar(&opts.tileSize, "tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	flag.Int64Var(&opts.seed, "seed", renderer.DefaultConfig().Seed, "Random seed")
	flag.BoolVar(&opts.disableJitter, "no-jitter", false, "Sample pixel corners instead of random sub-pixel positions")
	flag.StringVar(&opts.outputPath, "output", "", "Output file (default output/<scene>/render_<timestamp>.png)")
	flag.UintVar(&opts.thumbnail, "thumbnail", 0, "Also write a thumbnail this many pixels wide (0 = none)")
	flag.BoolVar(&opts.upload, "upload", false, "Upload the render to S3 (RAYTRACER_S3_* settings)")
	flag.StringVar(&opts.envFile, "env", ".env", "Optional .env file with upload settings")
	list := flag.Bool("list", false, "List available scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	logger := log.Default()

	// Show help if requested
	if *help {
		showHelp()
		return
	}
	if *list {
		if err := listScenes(); err != nil {
			logger.Fatalf("Error listing scenes: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Printf("Error: %v", err)
		stop()
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Diffuse Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Use -list to see the available scenes.")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

func listScenes() error {
	fileScenes, err := scene.ListSceneFiles(scenesDir)
	if err != nil {
		return err
	}

	for _, info := range append(scene.BuiltinScenes(), fileScenes...) {
		id := info.ID
		if info.Type == "file" {
			id = strings.TrimPrefix(info.ID, "file:")
		}
		fmt.Printf("  %-16s %s\n", id, info.Name)
		if info.Description != "" {
			fmt.Printf("  %-16s %s\n", "", info.Description)
		}
	}
	return nil
}

// run renders the selected scene and writes it to every requested sink.
// Sink failures do not stop the remaining sinks; they are joined into the returned error.
func run(ctx context.Context, opts options, logger *log.Logger) error {
	selectedScene, err := createScene(opts.sceneType, logger)
	if err != nil {
		return err
	}

	selectedScene.SamplingConfig = scene.MergeSamplingConfig(selectedScene.SamplingConfig, scene.SamplingConfig{
		Width:           opts.width,
		Height:          opts.height,
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.depth,
		DisableJitter:   opts.disableJitter,
	})

	integratorConfig := integrator.DefaultConfig()
	integratorConfig.MaxDepth = selectedScene.SamplingConfig.MaxDepth
	diffuse := integrator.NewDiffuseIntegrator(integratorConfig, logger)

	config := renderer.DefaultConfig()
	config.TileSize = opts.tileSize
	config.NumWorkers = opts.workers
	config.Seed = opts.seed

	samplingConfig := selectedScene.SamplingConfig
	if err := samplingConfig.Validate(); err != nil {
		return err
	}

	img := output.NewImage(samplingConfig.Width, samplingConfig.Height)
	rt := renderer.NewRaytracer(selectedScene, diffuse, config, logger)
	stats, err := rt.Render(ctx, img)
	if err != nil {
		return err
	}

	logger.Printf("Average luminance: %.4f", renderer.CalculateAverageLuminance(img.Image()))
	if fallbacks := diffuse.SamplingFallbacks(); fallbacks > 0 {
		logger.Printf("Sampling fallbacks: %d", fallbacks)
	}
	logger.Printf("Rendered %dx%d in %d tiles (%v)", img.Width(), img.Height(), stats.TilesRendered, stats.Duration)

	filename := opts.outputPath
	if filename == "" {
		outputDir := createOutputDir(opts.sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	var sinkErrs []error
	if err := img.Save(filename); err != nil {
		sinkErrs = append(sinkErrs, err)
	} else {
		logger.Printf("Render saved as %s", filename)
	}

	if opts.thumbnail > 0 {
		thumbPath := thumbnailPath(filename)
		if err := img.SaveThumbnail(thumbPath, opts.thumbnail); err != nil {
			sinkErrs = append(sinkErrs, err)
		} else {
			logger.Printf("Thumbnail saved as %s", thumbPath)
		}
	}

	if opts.upload {
		if err := uploadRender(ctx, img, filename, opts.envFile); err != nil {
			sinkErrs = append(sinkErrs, err)
		} else {
			logger.Printf("Uploaded %s", filepath.Base(filename))
		}
	}

	return errors.Join(sinkErrs...)
}

func uploadRender(ctx context.Context, img *output.Image, filename, envFile string) error {
	s3Config, err := output.LoadS3Config(envFile)
	if err != nil {
		return err
	}
	uploader, err := output.NewS3Uploader(s3Config)
	if err != nil {
		return err
	}
	return uploader.UploadImage(ctx, filepath.Base(filename), img)
}

// createScene creates a scene based on the scene type string
func createScene(sceneType string, logger *log.Logger) (*scene.Scene, error) {
	switch {
	case sceneType == "":
		return nil, errors.New("scene type must not be empty")
	case sceneType == "default":
		return scene.NewDefaultScene(logger), nil
	case sceneType == "spheregrid":
		return scene.NewSphereGridScene(scene.DefaultSphereGridSize, logger), nil
	case strings.HasSuffix(sceneType, ".json"):
		return scene.LoadSceneFile(sceneType, logger)
	}

	// Try a named scene from the scenes directory
	path := filepath.Join(scenesDir, sceneType+".json")
	if _, err := os.Stat(path); err == nil {
		return scene.LoadSceneFile(path, logger)
	}

	return nil, fmt.Errorf("unknown scene type: %s", sceneType)
}

// createOutputDir returns the output directory for a scene type
func createOutputDir(sceneType string) string {
	name := sceneType
	if strings.HasSuffix(sceneType, ".json") {
		name = strings.TrimSuffix(filepath.Base(sceneType), ".json")
	}
	return filepath.Join("output", name)
}

// thumbnailPath inserts "_thumb" before the extension
func thumbnailPath(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "_thumb" + ext
}
