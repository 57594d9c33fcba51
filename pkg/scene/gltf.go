package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"

	"github.com/taigrr/lumen/pkg/cluster"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

// GLTFLoader reads KHR_lights_punctual lights and the first camera from a
// glTF scene.
type GLTFLoader struct {
	// DefaultRange is the radius given to lights without a range. glTF
	// treats such lights as infinite; the cluster grid needs a bound.
	DefaultRange float64
	// DefaultAspect is used when the camera leaves aspectRatio unset.
	DefaultAspect float64
	// DefaultFar is used for cameras with an infinite far plane.
	DefaultFar float64
}

// NewGLTFLoader creates a loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		DefaultRange:  10,
		DefaultAspect: 16.0 / 9.0,
		DefaultFar:    100,
	}
}

// Load opens a .gltf or .glb file and returns its lights and camera.
func (l *GLTFLoader) Load(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	s, err := l.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// FromDocument walks the default scene of doc, accumulating node transforms.
// Point and spot lights become cluster lights at their node's world
// position; spot cones are bounded by their full range sphere. Directional
// lights have no position and are skipped.
func (l *GLTFLoader) FromDocument(doc *gltf.Document) (*Scene, error) {
	defs, err := documentLights(doc)
	if err != nil {
		return nil, err
	}

	w := walker{loader: l, doc: doc, defs: defs, visited: make(map[int]bool)}
	for _, root := range sceneRoots(doc) {
		w.visit(root, math3d.Identity())
	}

	if len(w.lights) == 0 {
		return nil, ErrNoLights
	}
	if w.skipped > 0 {
		cluster.Logger().Info("gltf lights skipped", "count", w.skipped)
	}
	s := &Scene{Lights: w.lights, Camera: w.camera}
	if s.Camera == nil {
		s.Camera = DefaultCamera()
	}
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		s.Name = doc.Scenes[*doc.Scene].Name
	}
	return s, nil
}

type walker struct {
	loader  *GLTFLoader
	doc     *gltf.Document
	defs    []*lightspunctual.Light
	visited map[int]bool

	lights  []cluster.Light
	skipped int
	camera  *render.Camera
}

func (w *walker) visit(idx int, parent math3d.Mat4) {
	if idx < 0 || idx >= len(w.doc.Nodes) || w.visited[idx] {
		return
	}
	w.visited[idx] = true

	n := w.doc.Nodes[idx]
	world := parent.Mul(localMatrix(n))

	if li, ok := nodeLight(n); ok && li >= 0 && li < len(w.defs) {
		w.addLight(w.defs[li], world)
	}
	if n.Camera != nil && w.camera == nil && *n.Camera < len(w.doc.Cameras) {
		w.camera = w.loader.camera(w.doc.Cameras[*n.Camera], world)
	}

	for _, child := range n.Children {
		w.visit(child, world)
	}
}

func (w *walker) addLight(def *lightspunctual.Light, world math3d.Mat4) {
	if def.Type == lightspunctual.TypeDirectional {
		cluster.Logger().Debug("skipping directional light", "name", def.Name)
		w.skipped++
		return
	}
	radius := w.loader.DefaultRange
	if def.Range != nil && *def.Range > 0 && !math.IsInf(*def.Range, 0) {
		radius = *def.Range
	}
	c := def.ColorOrDefault()
	w.lights = append(w.lights, cluster.Light{
		Position: world.MulVec3(math3d.Zero3()),
		Radius:   radius,
		Color:    math3d.V3(c[0], c[1], c[2]),
	})
}

// camera converts a glTF camera placed by world into a render camera. The
// node's rotation is decomposed into the camera's yaw, pitch and roll so the
// camera's view matrix equals the inverse of world (for unscaled nodes).
func (l *GLTFLoader) camera(c *gltf.Camera, world math3d.Mat4) *render.Camera {
	cam := render.NewCamera()
	if p := c.Perspective; p != nil {
		cam.SetFOV(p.Yfov)
		aspect := l.DefaultAspect
		if p.AspectRatio != nil && *p.AspectRatio > 0 {
			aspect = *p.AspectRatio
		}
		cam.SetAspectRatio(aspect)
		far := l.DefaultFar
		if p.Zfar != nil && *p.Zfar > p.Znear {
			far = *p.Zfar
		}
		cam.SetClipPlanes(p.Znear, far)
	} else {
		cluster.Logger().Debug("orthographic camera, using default lens", "name", c.Name)
	}

	// Rows of the view rotation are the camera's right, up and back axes.
	view := world.Inverse()
	right := math3d.V3(view[0], view[4], view[8]).Normalize()
	up := math3d.V3(view[1], view[5], view[9]).Normalize()
	back := math3d.V3(view[2], view[6], view[10]).Normalize()

	pitch := math.Asin(math.Max(-1, math.Min(1, -back.Y)))
	yaw := math.Atan2(back.X, back.Z)
	roll := math.Atan2(right.Y, up.Y)

	cam.SetPosition(world.MulVec3(math3d.Zero3()))
	cam.SetRotation(pitch, yaw, roll)
	return cam
}

// sceneRoots returns the root nodes of the default scene, falling back to
// the first scene and then to every node that is nobody's child.
func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

var identityArray = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// localMatrix returns the node's local transform. A non-identity matrix wins
// over TRS; zero rotation or scale are treated as unset.
func localMatrix(n *gltf.Node) math3d.Mat4 {
	if n.Matrix != [16]float64{} && n.Matrix != identityArray {
		return math3d.FromArray(n.Matrix)
	}
	rot := n.Rotation
	if rot == [4]float64{} {
		rot = [4]float64{0, 0, 0, 1}
	}
	scale := n.Scale
	if scale == [3]float64{} {
		scale = [3]float64{1, 1, 1}
	}
	t := n.Translation
	return math3d.TRS(math3d.V3(t[0], t[1], t[2]), rot, math3d.V3(scale[0], scale[1], scale[2]))
}

// documentLights returns the light definitions of the document-level
// KHR_lights_punctual extension.
func documentLights(doc *gltf.Document) ([]*lightspunctual.Light, error) {
	ext, ok := doc.Extensions[lightspunctual.ExtensionName]
	if !ok {
		return nil, ErrNoLights
	}
	switch v := ext.(type) {
	case lightspunctual.Lights:
		return v, nil
	case json.RawMessage:
		var raw struct {
			Lights []*lightspunctual.Light `json:"lights"`
		}
		if err := json.Unmarshal(v, &raw); err != nil {
			return nil, fmt.Errorf("decode %s: %w", lightspunctual.ExtensionName, err)
		}
		return raw.Lights, nil
	default:
		return nil, fmt.Errorf("decode %s: unexpected %T", lightspunctual.ExtensionName, ext)
	}
}

// nodeLight returns the light index a node references, if any.
func nodeLight(n *gltf.Node) (int, bool) {
	ext, ok := n.Extensions[lightspunctual.ExtensionName]
	if !ok {
		return 0, false
	}
	switch v := ext.(type) {
	case lightspunctual.LightIndex:
		return int(v), true
	case json.RawMessage:
		var raw struct {
			Light *int `json:"light"`
		}
		if err := json.Unmarshal(v, &raw); err != nil || raw.Light == nil {
			return 0, false
		}
		return *raw.Light, true
	}
	return 0, false
}
