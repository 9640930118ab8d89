package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a first-person camera with pointer-lock style controls: mouse look
// changes yaw and pitch, and moves are made along the facing direction projected
// onto the ground plane.
type Camera struct {
	// Position and orientation
	position mgl32.Vec3
	worldUp  mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	// Euler angles in degrees
	yaw   float32
	pitch float32

	// Camera options
	fov         float32
	near        float32
	far         float32
	rotateSpeed float32

	// Mouse state
	lastX      float64
	lastY      float64
	firstMouse bool

	// Projection
	projection mgl32.Mat4
	width      int
	height     int
}

// NewCamera creates a new camera with sensible defaults
func NewCamera(position mgl32.Vec3) *Camera {
	camera := &Camera{
		position:    position,
		worldUp:     mgl32.Vec3{0, 1, 0}, // Y-up coordinate system
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		fov:         DefaultFOV,
		near:        DefaultNear,
		far:         DefaultFar,
		rotateSpeed: DefaultRotateSpeed,
		firstMouse:  true,
		width:       800, // Default size
		height:      600,
	}

	camera.updateCameraVectors()
	camera.updateProjectionMatrix()

	return camera
}

// updateCameraVectors recalculates camera vectors based on Euler angles
func (c *Camera) updateCameraVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.front = front.Normalize()

	// Re-calculate right and up vectors
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func (c *Camera) updateProjectionMatrix() {
	aspect := float32(c.width) / float32(c.height)
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, c.near, c.far)
}

// SetPerspective sets the vertical field of view (degrees) and clip planes
func (c *Camera) SetPerspective(fov, near, far float32) {
	c.fov = fov
	c.near = near
	c.far = far
	c.updateProjectionMatrix()
}

// SetRotateSpeed sets the mouse look sensitivity in degrees per pixel
func (c *Camera) SetRotateSpeed(speed float32) {
	c.rotateSpeed = speed
}

// UpdateProjectionMatrix updates the projection matrix with new dimensions
func (c *Camera) UpdateProjectionMatrix(width, height int) {
	if width <= 0 || height <= 0 {
		// minimized window
		return
	}
	c.width = width
	c.height = height
	c.updateProjectionMatrix()
}

// Aspect returns the current width/height ratio
func (c *Camera) Aspect() float32 {
	return float32(c.width) / float32(c.height)
}

// ViewMatrix returns the current view matrix
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns the current projection matrix
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// Position returns the current camera position
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// SetPosition sets the camera position
func (c *Camera) SetPosition(pos mgl32.Vec3) {
	c.position = pos
}

// Orientation returns the current camera orientation (yaw, pitch)
func (c *Camera) Orientation() (yaw, pitch float32) {
	return c.yaw, c.pitch
}

// SetRotation sets the camera rotation angles
func (c *Camera) SetRotation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = mgl32.Clamp(pitch, MinPitch, MaxPitch)
	c.updateCameraVectors()
}

// FrontVector returns the camera's front direction vector
func (c *Camera) FrontVector() mgl32.Vec3 {
	return c.front
}

// RightVector returns the camera's right direction vector
func (c *Camera) RightVector() mgl32.Vec3 {
	return c.right
}

// UpVector returns the camera's up direction vector
func (c *Camera) UpVector() mgl32.Vec3 {
	return c.up
}

// ForwardOnGround returns the facing direction projected onto the XZ plane.
// Pitch does not affect it.
func (c *Camera) ForwardOnGround() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.yaw)
	return mgl32.Vec3{math32.Cos(yaw), 0, math32.Sin(yaw)}
}

// RightOnGround returns the horizontal direction to the camera's right
func (c *Camera) RightOnGround() mgl32.Vec3 {
	return c.ForwardOnGround().Cross(c.worldUp)
}

// MoveForward moves the camera along its horizontal facing. Negative distances move backwards.
func (c *Camera) MoveForward(distance float32) {
	c.position = c.position.Add(c.ForwardOnGround().Mul(distance))
}

// MoveRight strafes the camera. Negative distances move left.
func (c *Camera) MoveRight(distance float32) {
	c.position = c.position.Add(c.RightOnGround().Mul(distance))
}

// HandleMouseMovement updates camera orientation based on mouse movement
func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX = xpos
		c.lastY = ypos
		c.firstMouse = false
		return
	}

	// Calculate offset
	xoffset := float32(xpos - c.lastX)
	yoffset := float32(c.lastY - ypos) // Reversed: y ranges bottom to top

	c.lastX = xpos
	c.lastY = ypos

	c.yaw += xoffset * c.rotateSpeed
	c.pitch = mgl32.Clamp(c.pitch+yoffset*c.rotateSpeed, MinPitch, MaxPitch)

	c.updateCameraVectors()
}

// ResetMouseState resets the first-mouse flag so the next cursor event after
// a pointer lock does not produce a jump in orientation
func (c *Camera) ResetMouseState() {
	c.firstMouse = true
}
