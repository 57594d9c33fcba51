package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/taigrr/lumen/pkg/cluster"
	"github.com/taigrr/lumen/pkg/math3d"
)

// CameraCfg places the camera. Angles are in degrees, which is friendlier
// in a hand-written file than radians.
type CameraCfg struct {
	Position [3]float64 `json:"position"`
	Target   [3]float64 `json:"target"`
	FOV      float64    `json:"fov,omitempty"`
	Aspect   float64    `json:"aspect,omitempty"`
	Near     float64    `json:"near,omitempty"`
	Far      float64    `json:"far,omitempty"`
}

// LightCfg is one point light: world position, influence radius and an
// optional linear RGB color.
type LightCfg struct {
	Position [3]float64  `json:"position"`
	Radius   float64     `json:"radius"`
	Color    *[3]float64 `json:"color,omitempty"` // defaults to white
}

// RandomCfg asks for a generated light field in addition to the listed
// lights.
type RandomCfg struct {
	Count     int     `json:"count"`
	Seed      int64   `json:"seed"`
	Extent    float64 `json:"extent,omitempty"`
	MinRadius float64 `json:"minRadius,omitempty"`
	MaxRadius float64 `json:"maxRadius,omitempty"`
}

// Config is the JSON scene format.
type Config struct {
	Name   string     `json:"name,omitempty"`
	Camera *CameraCfg `json:"camera,omitempty"`
	Lights []LightCfg `json:"lights"`
	Random *RandomCfg `json:"random,omitempty"`
}

// LoadConfig reads and validates a JSON scene file, filling defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cluster.Logger().Debug("loaded scene config", "path", path, "lights", len(cfg.Lights))
	return cfg, nil
}

// ParseConfig decodes a JSON scene and fills defaults.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Lights) == 0 && (cfg.Random == nil || cfg.Random.Count <= 0) {
		return nil, ErrNoLights
	}
	if cfg.Random != nil {
		r := cfg.Random
		if r.Extent <= 0 {
			r.Extent = DefaultField.Extent
		}
		if r.MinRadius <= 0 {
			r.MinRadius = DefaultField.MinRadius
		}
		if r.MaxRadius < r.MinRadius {
			r.MaxRadius = max(DefaultField.MaxRadius, r.MinRadius)
		}
	}
	return &cfg, nil
}

// Scene builds the camera and light list the config describes.
func (c *Config) Scene() (*Scene, error) {
	s := &Scene{Name: c.Name, Camera: DefaultCamera()}

	if cc := c.Camera; cc != nil {
		cam := s.Camera
		if cc.FOV > 0 {
			cam.SetFOV(math3d.Radians(cc.FOV))
		}
		if cc.Aspect > 0 {
			cam.SetAspectRatio(cc.Aspect)
		}
		near, far := cam.Near, cam.Far
		if cc.Near > 0 {
			near = cc.Near
		}
		if cc.Far > 0 {
			far = cc.Far
		}
		cam.SetClipPlanes(near, far)
		cam.SetPosition(math3d.V3(cc.Position[0], cc.Position[1], cc.Position[2]))
		cam.LookAt(math3d.V3(cc.Target[0], cc.Target[1], cc.Target[2]))
		if err := cluster.CameraFrom(cam).Validate(); err != nil {
			return nil, fmt.Errorf("scene camera: %w", err)
		}
	}

	for _, l := range c.Lights {
		color := [3]float64{1, 1, 1}
		if l.Color != nil {
			color = *l.Color
		}
		s.Lights = append(s.Lights, cluster.Light{
			Position: math3d.V3(l.Position[0], l.Position[1], l.Position[2]),
			Radius:   l.Radius,
			Color:    math3d.V3(color[0], color[1], color[2]),
		})
	}
	if r := c.Random; r != nil && r.Count > 0 {
		field := Field{Extent: r.Extent, MinRadius: r.MinRadius, MaxRadius: r.MaxRadius}
		s.Lights = append(s.Lights, field.Generate(r.Seed, r.Count)...)
	}
	return s, nil
}
