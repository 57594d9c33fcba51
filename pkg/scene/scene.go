// Package scene loads, generates and animates the lights and camera that
// feed the cluster builder.
package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/lumen/pkg/cluster"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

var (
	// ErrNoLights is returned when a scene file describes no usable light.
	ErrNoLights = errors.New("scene has no lights")
	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported scene format")
)

// Scene is a camera plus the lights it sees.
type Scene struct {
	Name   string
	Camera *render.Camera
	Lights []cluster.Light
}

// DefaultCamera returns the camera used when a scene does not provide one:
// the render default, looking at the origin.
func DefaultCamera() *render.Camera {
	cam := render.NewCamera()
	cam.LookAt(math3d.Zero3())
	return cam
}

// Frame returns the cluster camera and view matrix for the scene's camera.
func (s *Scene) Frame() (cluster.Camera, math3d.Mat4) {
	return cluster.CameraFrom(s.Camera), s.Camera.ViewMatrix()
}

// Load reads a scene from a glTF (.gltf, .glb) or JSON (.json) file.
func Load(path string) (*Scene, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		return NewGLTFLoader().Load(path)
	case ".json":
		cfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		return cfg.Scene()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
