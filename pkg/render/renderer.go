package render

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/leterax/go-roam/internal/openglhelper"
	"github.com/leterax/go-roam/pkg/input"
)

var (
	//go:embed shaders/scene.vert
	sceneVertexShader string
	//go:embed shaders/scene.frag
	sceneFragmentShader string
)

// Handler receives input events and the per-frame tick from the renderer.
// All calls happen on the main thread.
type Handler interface {
	Frame(deltaTime float32)
	KeyEvent(code string, pressed bool)
	PointerLockChanged(locked bool)
	FocusLost()
}

// Options configures the window and camera projection
type Options struct {
	Width            int
	Height           int
	Title            string
	VSync            bool
	FOV              float32
	Near             float32
	Far              float32
	MouseSensitivity float32
}

// Renderer owns the window and draws the scene from the camera every frame
type Renderer struct {
	window *openglhelper.Window
	camera *Camera
	scene  *Scene

	shader *openglhelper.Shader
	meshes map[MeshKind]*openglhelper.Mesh

	handler Handler

	// Timing
	lastFrameTime float64
	deltaTime     float32
}

// NewRenderer opens the window and uploads the scene's meshes
func NewRenderer(opts Options, camera *Camera, scene *Scene) (*Renderer, error) {
	window, err := openglhelper.NewWindow(opts.Width, opts.Height, opts.Title, opts.VSync)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	fbWidth, fbHeight := window.FramebufferSize()
	camera.SetPerspective(opts.FOV, opts.Near, opts.Far)
	camera.UpdateProjectionMatrix(fbWidth, fbHeight)
	if opts.MouseSensitivity > 0 {
		camera.SetRotateSpeed(opts.MouseSensitivity)
	}

	shader, err := openglhelper.NewShader(sceneVertexShader, sceneFragmentShader)
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("failed to load shader: %w", err)
	}

	r := &Renderer{
		window: window,
		camera: camera,
		scene:  scene,
		shader: shader,
		meshes: map[MeshKind]*openglhelper.Mesh{
			BoxMesh:   openglhelper.NewBox(),
			PlaneMesh: openglhelper.NewPlane(),
		},
	}

	// Set up callbacks
	glfwWindow := window.GLFWWindow()
	glfwWindow.SetKeyCallback(r.keyCallback)
	glfwWindow.SetCursorPosCallback(r.cursorPosCallback)
	glfwWindow.SetMouseButtonCallback(r.mouseButtonCallback)
	glfwWindow.SetFramebufferSizeCallback(r.framebufferSizeCallback)
	glfwWindow.SetFocusCallback(r.focusCallback)

	return r, nil
}

// GLVersion returns the driver's OpenGL version string
func (r *Renderer) GLVersion() string {
	return r.window.GLVersion()
}

// Camera returns the camera the scene is drawn from
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// render draws the floor and the cubes
func (r *Renderer) render() {
	r.window.Clear(r.scene.Background)

	r.shader.Use()
	r.shader.SetMat4("view", r.camera.ViewMatrix())
	r.shader.SetMat4("projection", r.camera.ProjectionMatrix())

	r.shader.SetVec3("ambientLight", r.scene.Ambient.Radiance())
	r.shader.SetVec3("lightColor", r.scene.Sun.Radiance())
	r.shader.SetVec3("lightDir", r.scene.Sun.Direction())

	r.drawObject(r.scene.Floor)
	for _, cube := range r.scene.Cubes {
		r.drawObject(cube)
	}
}

func (r *Renderer) drawObject(obj Object) {
	mesh, ok := r.meshes[obj.Mesh]
	if !ok {
		return
	}
	r.shader.SetMat4("model", obj.Model)
	r.shader.SetVec3("objectColor", obj.Color)
	r.shader.SetBool("lit", obj.Lit)
	mesh.Draw()
}

// Run drives the frame loop until the window closes or ctx is cancelled.
// Each frame: measure delta, let the handler update, draw, swap, poll events.
func (r *Renderer) Run(ctx context.Context, h Handler) error {
	r.handler = h
	defer func() { r.handler = nil }()

	r.lastFrameTime = glfw.GetTime()

	for !r.window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}

		currentTime := glfw.GetTime()
		r.deltaTime = float32(currentTime - r.lastFrameTime)
		r.lastFrameTime = currentTime

		h.Frame(r.deltaTime)

		r.render()

		r.window.SwapBuffers()
		r.window.PollEvents()
	}

	return nil
}

// Cleanup frees all GPU resources and closes the window
func (r *Renderer) Cleanup() {
	for _, mesh := range r.meshes {
		mesh.Delete()
	}
	r.meshes = nil

	if r.shader != nil {
		r.shader.Delete()
		r.shader = nil
	}

	gl.Finish()
	r.window.Close()
}

// setPointerLock captures or releases the cursor and tells the handler
func (r *Renderer) setPointerLock(locked bool) {
	if r.window.IsMouseCaptured() == locked {
		return
	}
	r.window.SetMouseCaptured(locked)
	if locked {
		r.camera.ResetMouseState()
	}
	if r.handler != nil {
		r.handler.PointerLockChanged(locked)
	}
}

// Callback functions
func (r *Renderer) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	// Escape leaves pointer lock first, and closes the window when already unlocked
	if key == glfw.KeyEscape && action == glfw.Press {
		if r.window.IsMouseCaptured() {
			r.setPointerLock(false)
		} else {
			r.window.SetShouldClose(true)
		}
		return
	}

	if r.handler == nil {
		return
	}
	switch action {
	case glfw.Press:
		r.handler.KeyEvent(input.CodeForKey(key), true)
	case glfw.Release:
		r.handler.KeyEvent(input.CodeForKey(key), false)
	}
}

func (r *Renderer) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	if r.window.IsMouseCaptured() {
		r.camera.HandleMouseMovement(xpos, ypos)
	}
}

func (r *Renderer) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	// Clicking into the window locks the pointer
	if button == glfw.MouseButtonLeft && action == glfw.Press {
		r.setPointerLock(true)
	}
}

func (r *Renderer) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	r.window.OnResize(width, height)
	r.camera.UpdateProjectionMatrix(width, height)
	slog.Debug("framebuffer resized", "width", width, "height", height)
}

func (r *Renderer) focusCallback(_ *glfw.Window, focused bool) {
	if focused {
		return
	}
	r.setPointerLock(false)
	if r.handler != nil {
		r.handler.FocusLost()
	}
}
