package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestBusiest(t *testing.T) {
	counts := []int{0, 3, 7, 3, 0, 9, 1}
	tests := []struct {
		n    int
		want []int
	}{
		{0, []int{}},
		{2, []int{5, 2}},
		{4, []int{5, 2, 1, 3}},
		{10, []int{5, 2, 1, 3, 6}},
	}
	for _, tc := range tests {
		if got := busiest(counts, tc.n); !slices.Equal(got, tc.want) {
			t.Errorf("busiest(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("lumen %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "heat.png")
	dump := filepath.Join(dir, "clusters.bin")
	lights := filepath.Join(dir, "lights.bin")

	out := runCLI(t, "build",
		"--grid", "4x3x5", "--lights", "64", "--seed", "7", "--workers", "3",
		"--png", png, "--png-width", "200", "--png-height", "100",
		"--dump", dump, "--dump-lights", lights)

	if !strings.Contains(out, "4x3x5") {
		t.Errorf("report does not mention the grid:\n%s", out)
	}

	// 60 clusters × ceil(101/4) rows × 4 channels × 4 bytes.
	if info, err := os.Stat(dump); err != nil || info.Size() != 60*26*4*4 {
		t.Errorf("cluster dump: %v, size %v", err, info)
	}
	// 64 lights × 2 rows × 4 channels × 4 bytes.
	if info, err := os.Stat(lights); err != nil || info.Size() != 64*2*4*4 {
		t.Errorf("light dump: %v, size %v", err, info)
	}
	if _, err := os.Stat(png); err != nil {
		t.Errorf("heatmap: %v", err)
	}
}

func TestBuildCommandScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	scene := `{
		"name": "single",
		"camera": {"position": [0, 0, 10], "target": [0, 0, 0], "fov": 90, "aspect": 1, "near": 1, "far": 11},
		"lights": [{"position": [0, 0, 4], "radius": 0}]
	}`
	if err := os.WriteFile(path, []byte(scene), 0o644); err != nil {
		t.Fatal(err)
	}
	out := runCLI(t, "build", "--scene", path, "--grid", "2x2x2", "--top", "1")
	if !strings.Contains(out, "(1,1,1)") {
		t.Errorf("expected cluster (1,1,1) in report:\n%s", out)
	}
}

func TestBuildCommandRejectsBadGrid(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"build", "--grid", "4x0x2"})
	if err := root.Execute(); err == nil {
		t.Error("expected error for empty grid axis")
	}
}
