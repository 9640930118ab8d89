package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-roam/pkg/input"
)

// Controls is the camera capability locomotion needs: look-relative moves on the
// horizontal plane and direct access to the position.
type Controls interface {
	MoveForward(distance float32)
	MoveRight(distance float32)
	Position() mgl32.Vec3
	SetPosition(pos mgl32.Vec3)
}

// Params holds the tunable movement constants
type Params struct {
	Gravity      float32 // units/s^2, applied only while airborne
	Step         float32 // displacement per frame per held direction
	JumpImpulse  float32 // added to the vertical velocity on jump
	GroundHeight float32 // eye height when standing on the floor
	MaxDelta     float32 // frame time cap in seconds, 0 disables the cap
}

// DefaultParams returns the stock movement constants
func DefaultParams() Params {
	return Params{
		Gravity:      9.8,
		Step:         0.02,
		JumpImpulse:  5,
		GroundHeight: 1,
		MaxDelta:     0.1,
	}
}

// Walker applies one frame of movement to a player
type Walker struct {
	Params   Params
	Boundary Boundary
	Bindings input.Bindings
}

// NewWalker creates a walker with default bindings
func NewWalker(params Params, boundary Boundary) *Walker {
	return &Walker{
		Params:   params,
		Boundary: boundary,
		Bindings: input.DefaultBindings(),
	}
}

// Update advances the player by delta seconds using the held keys.
//
// Horizontal steps are a fixed distance per frame, not scaled by delta, and
// simultaneous directions add up without normalization. A frame with no elapsed
// time takes no step. Jumping is an instant impulse, gravity only acts while
// airborne, and the boundary is enforced on every call.
func (w *Walker) Update(delta float32, keys input.Keys, st *PlayerState, c Controls) {
	delta = w.clampDelta(delta)
	actions := w.Bindings.Resolve(keys)

	// Look-relative horizontal steps
	if delta > 0 {
		if actions.Has(input.Forward) {
			c.MoveForward(w.Params.Step)
		}
		if actions.Has(input.Backward) {
			c.MoveForward(-w.Params.Step)
		}
		if actions.Has(input.Left) {
			c.MoveRight(-w.Params.Step)
		}
		if actions.Has(input.Right) {
			c.MoveRight(w.Params.Step)
		}
	}

	if actions.Has(input.Jump) && st.CanJump {
		st.VelocityY += w.Params.JumpImpulse
		st.CanJump = false
	}

	if !st.CanJump {
		st.VelocityY -= w.Params.Gravity * delta
	}

	pos := c.Position()
	pos[1] += st.VelocityY * delta

	// Ground contact
	if pos[1] < w.Params.GroundHeight {
		st.VelocityY = 0
		pos[1] = w.Params.GroundHeight
		st.CanJump = true
	}

	c.SetPosition(w.Boundary.Clamp(pos))
}

func (w *Walker) clampDelta(delta float32) float32 {
	if delta < 0 {
		return 0
	}
	if w.Params.MaxDelta > 0 && delta > w.Params.MaxDelta {
		return w.Params.MaxDelta
	}
	return delta
}
