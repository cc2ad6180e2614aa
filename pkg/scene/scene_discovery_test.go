package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"two-spheres", "Two Spheres"},
		{"ground_only", "Ground Only"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"two-spheres.json": `{"name": "Alpha Scene", "description": "named"}`,
		"ground_only.json": `{"spheres": []}`,
		"broken.json":      `{not json`,
		"notes.txt":        `ignored`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 3 {
		t.Fatalf("Expected 3 JSON scenes, got %d: %+v", len(scenes), scenes)
	}

	// Sorted by name
	expectedNames := []string{"Alpha Scene", "Broken", "Ground Only"}
	for i, name := range expectedNames {
		if scenes[i].Name != name {
			t.Errorf("Scene %d: expected name %q, got %q", i, name, scenes[i].Name)
		}
		if scenes[i].Type != "file" {
			t.Errorf("Scene %d: expected type file, got %q", i, scenes[i].Type)
		}
	}
	if scenes[0].Description != "named" || scenes[0].ID != "file:two-spheres" {
		t.Errorf("Unexpected metadata for named scene: %+v", scenes[0])
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestBuiltinScenes(t *testing.T) {
	builtins := BuiltinScenes()
	if len(builtins) == 0 || builtins[0].ID != "default" {
		t.Errorf("Expected the default scene to be listed first, got %+v", builtins)
	}
}
