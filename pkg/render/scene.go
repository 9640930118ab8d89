package render

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshKind selects the shared GPU mesh an object is drawn with
type MeshKind uint8

const (
	BoxMesh MeshKind = iota
	PlaneMesh
)

// Object is one drawable in the scene
type Object struct {
	Mesh  MeshKind
	Model mgl32.Mat4
	Color mgl32.Vec3
	Lit   bool // unlit objects ignore the lights
}

// Position returns the translation part of the model matrix
func (o Object) Position() mgl32.Vec3 {
	return o.Model.Col(3).Vec3()
}

// Light is a colored light with an intensity multiplier
type Light struct {
	Color     mgl32.Vec3
	Intensity float32
}

// Radiance returns the color scaled by intensity, as passed to the shader
func (l Light) Radiance() mgl32.Vec3 {
	return l.Color.Mul(l.Intensity)
}

// DirectionalLight shines from Position toward Target
type DirectionalLight struct {
	Light
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

// Direction returns the unit vector pointing from the lit surface toward the light
func (d DirectionalLight) Direction() mgl32.Vec3 {
	return d.Position.Sub(d.Target).Normalize()
}

// SceneConfig describes the generated world
type SceneConfig struct {
	CubeCount  int
	CubeSpread float32
	FloorSize  float32
	FloorColor mgl32.Vec3
	Background mgl32.Vec4
}

// DefaultSceneConfig returns twenty cubes over a 200x200 grey floor
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		CubeCount:  DefaultCubeCount,
		CubeSpread: DefaultCubeSpread,
		FloorSize:  DefaultFloorSize,
		FloorColor: mgl32.Vec3{0x55 / 255.0, 0x55 / 255.0, 0x55 / 255.0},
		Background: mgl32.Vec4{0, 0, 0, 1},
	}
}

// Scene holds everything drawn each frame
type Scene struct {
	Background mgl32.Vec4
	Floor      Object
	Cubes      []Object
	Ambient    Light
	Sun        DirectionalLight
}

// NewScene lays out the floor, randomly placed and colored cubes, and the lights
func NewScene(cfg SceneConfig, rng *rand.Rand) *Scene {
	white := mgl32.Vec3{1, 1, 1}

	floorModel := mgl32.HomogRotate3DX(-math32.Pi / 2).
		Mul4(mgl32.Scale3D(cfg.FloorSize, cfg.FloorSize, 1))

	scene := &Scene{
		Background: cfg.Background,
		Floor: Object{
			Mesh:  PlaneMesh,
			Model: floorModel,
			Color: cfg.FloorColor,
		},
		Ambient: Light{Color: white, Intensity: 0.5},
		Sun: DirectionalLight{
			Light:    Light{Color: white, Intensity: 1},
			Position: mgl32.Vec3{1, 0, 2},
		},
		Cubes: make([]Object, 0, cfg.CubeCount),
	}

	for i := 0; i < cfg.CubeCount; i++ {
		color := mgl32.Vec3{randomChannel(rng), randomChannel(rng), randomChannel(rng)}
		pos := mgl32.Vec3{
			(rng.Float32() - 0.5) * cfg.CubeSpread,
			(rng.Float32() - 0.5) * cfg.CubeSpread,
			(rng.Float32() - 0.5) * cfg.CubeSpread,
		}
		scene.Cubes = append(scene.Cubes, Object{
			Mesh:  BoxMesh,
			Model: mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()),
			Color: color,
			Lit:   true,
		})
	}

	return scene
}

// randomChannel returns a color channel in [50, 255) scaled to [0, 1]
func randomChannel(rng *rand.Rand) float32 {
	return float32(MinColorChannel+rng.Intn(ColorChannelRange)) / 255
}
