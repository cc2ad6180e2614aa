package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"spheregrid scene", "spheregrid", false},

		// JSON scenes (by name)
		{"three-spheres by name", "three-spheres", false},
		{"dusk by name", "dusk", false},

		// JSON scenes (by path)
		{"direct JSON path", "scenes/three-spheres.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid JSON path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, err := createScene(tt.sceneType, discardLogger())

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if selected != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, selected)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if selected == nil {
				t.Fatalf("Expected scene for valid scene type '%s', got nil", tt.sceneType)
			}

			// Verify scene has required properties
			if err := selected.SamplingConfig.Validate(); err != nil {
				t.Errorf("Scene sampling config invalid: %v", err)
			}
			if selected.GetPrimitiveCount() == 0 {
				t.Errorf("Expected scene '%s' to contain spheres", tt.sceneType)
			}
		})
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		name         string
		sceneType    string
		expectedBase string
	}{
		{"default scene", "default", "default"},
		{"JSON scene by name", "three-spheres", "three-spheres"},
		{"JSON file path", "scenes/three-spheres.json", "three-spheres"},
		{"nested JSON path", "scenes/subdir/my-scene.json", "my-scene"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputDir := createOutputDir(tt.sceneType)

			if filepath.Base(outputDir) != tt.expectedBase {
				t.Errorf("Expected output directory to end in '%s', got '%s'", tt.expectedBase, outputDir)
			}
			if !strings.HasPrefix(outputDir, "output") {
				t.Errorf("Expected output directory to start with 'output', got '%s'", outputDir)
			}
		})
	}
}

func TestThumbnailPath(t *testing.T) {
	if got := thumbnailPath(filepath.Join("out", "render.png")); got != filepath.Join("out", "render_thumb.png") {
		t.Errorf("Unexpected thumbnail path %s", got)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "render.png")

	opts := options{
		sceneType:  "default",
		width:      40,
		height:     20,
		samples:    2,
		depth:      5,
		tileSize:   16,
		seed:       1,
		outputPath: outputPath,
		thumbnail:  10,
	}
	if err := run(context.Background(), opts, discardLogger()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	img, err := imaging.Open(outputPath)
	if err != nil {
		t.Fatalf("Failed to open render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("Expected 40x20 render, got %v", b)
	}

	thumb, err := imaging.Open(filepath.Join(dir, "render_thumb.png"))
	if err != nil {
		t.Fatalf("Failed to open thumbnail: %v", err)
	}
	if b := thumb.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("Expected 10x5 thumbnail, got %v", b)
	}
}

func TestRun_SinkFailure(t *testing.T) {
	// Save does not create missing directories
	dir := t.TempDir()
	opts := options{
		sceneType:  "default",
		width:      8,
		height:     4,
		samples:    1,
		tileSize:   8,
		outputPath: filepath.Join(dir, "missing", "render.png"),
	}
	if err := run(context.Background(), opts, discardLogger()); err == nil {
		t.Fatal("Expected save failure to be reported")
	}

	if _, err := os.Stat(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
		t.Errorf("Expected no output directory to be created, got %v", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options{
		sceneType:  "default",
		width:      8,
		height:     4,
		samples:    1,
		tileSize:   8,
		outputPath: filepath.Join(t.TempDir(), "render.png"),
	}
	if err := run(ctx, opts, discardLogger()); err == nil {
		t.Fatal("Expected cancelled render to fail")
	}
}

func TestRun_InvalidSamplingFlags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *options)
	}{
		{"negative width", func(o *options) { o.width = -5 }},
		{"negative height", func(o *options) { o.height = -1 }},
		{"negative samples", func(o *options) { o.samples = -2 }},
		{"negative depth", func(o *options) { o.depth = -3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputPath := filepath.Join(t.TempDir(), "render.png")
			opts := options{
				sceneType:  "default",
				width:      8,
				height:     4,
				samples:    1,
				tileSize:   8,
				outputPath: outputPath,
			}
			tt.mutate(&opts)

			err := run(context.Background(), opts, discardLogger())
			if !errors.Is(err, scene.ErrInvalidSamplingConfig) {
				t.Errorf("Expected ErrInvalidSamplingConfig, got %v", err)
			}
			if _, statErr := os.Stat(outputPath); !os.IsNotExist(statErr) {
				t.Errorf("Expected no render to be written, got %v", statErr)
			}
		})
	}
}
