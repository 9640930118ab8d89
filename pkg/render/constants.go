package render

// Camera constants
const (
	// Mouse look sensitivity in degrees per pixel
	DefaultRotateSpeed = 0.1

	// Default orientation
	DefaultYaw   = -90.0 // Facing -Z direction
	DefaultPitch = 0.0

	// Perspective
	DefaultFOV  = 75.0
	DefaultNear = 0.1
	DefaultFar  = 1000.0

	// Constraints
	MaxPitch = 89.0
	MinPitch = -89.0
)

// Scene constants
const (
	DefaultCubeCount  = 20
	DefaultCubeSpread = 5.0
	DefaultFloorSize  = 200.0

	// Color channels start at this value so cubes stay visible against the floor
	MinColorChannel   = 50
	ColorChannelRange = 205
)
