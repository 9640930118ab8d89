// Package locomotion advances a first-person walker by one frame: look-relative
// stepping, jump, gravity, ground contact and the play-area boundary.
package locomotion

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// State is the walker's vertical state
type State uint8

const (
	Grounded State = iota
	Airborne
)

func (s State) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Airborne:
		return "airborne"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// PlayerState is the kinematic state owned by the frame driver
type PlayerState struct {
	VelocityY float32
	CanJump   bool
}

// NewPlayerState returns a walker resting on the ground
func NewPlayerState() *PlayerState {
	return &PlayerState{CanJump: true}
}

// State reports Grounded while a jump is allowed, Airborne otherwise
func (p *PlayerState) State() State {
	if p.CanJump {
		return Grounded
	}
	return Airborne
}

// Boundary is the horizontal rectangle the walker may not leave
type Boundary struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// ErrEmptyBoundary is returned for a boundary with no interior on some axis
var ErrEmptyBoundary = errors.New("boundary min must be below max")

// NewBoundary validates and returns a boundary
func NewBoundary(minX, maxX, minZ, maxZ float32) (Boundary, error) {
	b := Boundary{MinX: minX, MaxX: maxX, MinZ: minZ, MaxZ: maxZ}
	if err := b.Validate(); err != nil {
		return Boundary{}, err
	}
	return b, nil
}

// DefaultBoundary is the 30x30 play area centered on the origin
func DefaultBoundary() Boundary {
	return Boundary{MinX: -15, MaxX: 15, MinZ: -15, MaxZ: 15}
}

// Validate checks MinX < MaxX and MinZ < MaxZ
func (b Boundary) Validate() error {
	if !(b.MinX < b.MaxX) {
		return fmt.Errorf("x range [%g, %g]: %w", b.MinX, b.MaxX, ErrEmptyBoundary)
	}
	if !(b.MinZ < b.MaxZ) {
		return fmt.Errorf("z range [%g, %g]: %w", b.MinZ, b.MaxZ, ErrEmptyBoundary)
	}
	return nil
}

// Clamp forces the X and Z components of pos into the boundary. Y is untouched.
func (b Boundary) Clamp(pos mgl32.Vec3) mgl32.Vec3 {
	pos[0] = mgl32.Clamp(pos[0], b.MinX, b.MaxX)
	pos[2] = mgl32.Clamp(pos[2], b.MinZ, b.MaxZ)
	return pos
}

// Contains reports whether pos lies inside the boundary, edges included
func (b Boundary) Contains(pos mgl32.Vec3) bool {
	return pos.X() >= b.MinX && pos.X() <= b.MaxX && pos.Z() >= b.MinZ && pos.Z() <= b.MaxZ
}
