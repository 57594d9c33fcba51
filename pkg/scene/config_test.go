package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/cluster"
	"github.com/taigrr/lumen/pkg/math3d"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"name": "hall",
		"camera": {"position": [0, 0, 10], "target": [0, 0, 0], "fov": 90, "aspect": 1, "near": 1, "far": 11},
		"lights": [
			{"position": [0, 0, 4], "radius": 0},
			{"position": [1, 2, 3], "radius": 2, "color": [1, 0, 0]}
		],
		"random": {"count": 5, "seed": 3}
	}`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Random.Extent != DefaultField.Extent || cfg.Random.MaxRadius != DefaultField.MaxRadius {
		t.Errorf("random defaults not filled: %+v", cfg.Random)
	}

	s, err := cfg.Scene()
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	if s.Name != "hall" || len(s.Lights) != 7 {
		t.Fatalf("scene %q has %d lights, want hall with 7", s.Name, len(s.Lights))
	}
	if s.Lights[0].Color != math3d.V3(1, 1, 1) {
		t.Errorf("default color = %v, want white", s.Lights[0].Color)
	}
	if s.Lights[1].Color != math3d.V3(1, 0, 0) {
		t.Errorf("color = %v", s.Lights[1].Color)
	}

	cam, view := s.Frame()
	if math.Abs(cam.FOV-90) > 1e-9 || cam.Near != 1 || cam.Far != 11 {
		t.Errorf("camera = %+v", cam)
	}

	// The first light sits at view depth 6, the middle of the 2×2×2 grid.
	b, err := cluster.NewBuilder(cluster.Grid{X: 2, Y: 2, Z: 2})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if _, err := b.Build(cam, view, s.Lights[:1]); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if n := b.Buffer().Count(7); n != 1 {
		t.Errorf("cluster 7 count = %d, want 1", n)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want error
	}{
		{"no lights", `{"lights": []}`, ErrNoLights},
		{"zero random", `{"random": {"count": 0}}`, ErrNoLights},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tc.json)); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
	if _, err := ParseConfig([]byte(`{"lights": [`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestConfigSceneRejectsDegenerateCamera(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"camera": {"position": [0, 0, 5], "target": [0, 0, 0], "near": 10, "far": 2},
		"lights": [{"position": [0, 0, 0], "radius": 1}]
	}`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if _, err := cfg.Scene(); !errors.Is(err, cluster.ErrDegenerateCamera) {
		t.Errorf("err = %v, want ErrDegenerateCamera", err)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "scene.json", `{"lights": [{"position": [0, 0, 0], "radius": 1}]}`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Lights) != 1 || s.Camera == nil {
		t.Errorf("scene = %+v", s)
	}
}

func TestConfigLightFields(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"lights": [{"position": [1, -2, 3.5], "radius": 4, "color": [0.2, 0.4, 0.8]}]}`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	s, err := cfg.Scene()
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	want := cluster.Light{Position: math3d.V3(1, -2, 3.5), Radius: 4, Color: math3d.V3(0.2, 0.4, 0.8)}
	if len(s.Lights) != 1 || s.Lights[0] != want {
		t.Errorf("lights = %+v, want [%+v]", s.Lights, want)
	}
}
