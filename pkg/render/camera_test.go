package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-roam/pkg/locomotion"
	"github.com/stretchr/testify/assert"
)

var _ locomotion.Controls = (*Camera)(nil)

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestCameraDefaultsFaceNegativeZ(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 1, 0})

	assertVecInDelta(t, mgl32.Vec3{0, 0, -1}, c.FrontVector())
	assertVecInDelta(t, mgl32.Vec3{1, 0, 0}, c.RightVector())
	assertVecInDelta(t, mgl32.Vec3{0, 1, 0}, c.UpVector())
}

func TestMoveForwardIgnoresPitch(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 1, 0})
	c.SetRotation(-90, 60)

	c.MoveForward(2)

	assertVecInDelta(t, mgl32.Vec3{0, 1, -2}, c.Position())
}

func TestMoveRightFollowsYaw(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 1, 0})
	c.SetRotation(0, -30) // facing +X

	c.MoveRight(1)
	assertVecInDelta(t, mgl32.Vec3{0, 1, 1}, c.Position())

	c.MoveRight(-1)
	c.MoveForward(-0.5)
	assertVecInDelta(t, mgl32.Vec3{-0.5, 1, 0}, c.Position())
}

func TestPitchIsClamped(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})

	c.SetRotation(10, 120)
	_, pitch := c.Orientation()
	assert.Equal(t, float32(MaxPitch), pitch)

	c.HandleMouseMovement(100, 100)
	c.HandleMouseMovement(100, 100+10000)
	_, pitch = c.Orientation()
	assert.Equal(t, float32(MinPitch), pitch)
}

func TestFirstMouseEventOnlyRecordsCursor(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})

	c.HandleMouseMovement(500, 300)
	yaw, pitch := c.Orientation()
	assert.Equal(t, float32(DefaultYaw), yaw)
	assert.Equal(t, float32(DefaultPitch), pitch)

	c.HandleMouseMovement(510, 290)
	yaw, pitch = c.Orientation()
	assert.InDelta(t, DefaultYaw+10*DefaultRotateSpeed, yaw, 1e-5)
	assert.InDelta(t, 10*DefaultRotateSpeed, pitch, 1e-5)

	// after re-locking the pointer the jump in cursor position is ignored
	c.ResetMouseState()
	c.HandleMouseMovement(0, 0)
	yaw2, _ := c.Orientation()
	assert.Equal(t, yaw, yaw2)
}

func TestResizeUpdatesAspect(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	before := c.ProjectionMatrix()

	c.UpdateProjectionMatrix(1600, 800)
	assert.Equal(t, float32(2), c.Aspect())
	assert.NotEqual(t, before, c.ProjectionMatrix())

	// minimized windows report a zero size
	c.UpdateProjectionMatrix(0, 0)
	assert.Equal(t, float32(2), c.Aspect())
}
