package constants

import "time"

// Burst Defaults
const (
	// ParticleCount is the number of particles per burst
	ParticleCount = 300

	// ParticleInitialRadius is reserved for a spawn spread; particles currently start co-located
	ParticleInitialRadius = 0.1

	// ParticleMovementSpeed bounds velocity per axis to [-speed/2, +speed/2] units per tick
	ParticleMovementSpeed = 2.0

	// ParticleSize is the sprite size in world units
	ParticleSize = 0.5

	// PeriodicBurstInterval is the idle firework interval
	PeriodicBurstInterval = 8 * time.Second

	// ReferenceFrame is the frame duration a unit tick step corresponds to
	ReferenceFrame = time.Second / 60

	// MaxStarSystems of 0 disables eviction
	MaxStarSystems = 0
)

// Pending spawn anchor, behind/below the camera so idle bursts stay off-screen
const (
	AnchorX = 0.0
	AnchorY = -40.0
	AnchorZ = -30.0
)

// TargetPlaneZ is the world z-plane pointer clicks are projected onto
const TargetPlaneZ = 0.0

// Palette holds the fixed named burst colors
var Palette = []string{"#da6b00", "#8555d4", "#4ad3b5", "#ffffff"}

// Pastel generator ranges (hue in degrees, saturation/lightness in [0,1])
const (
	PastelSaturationMin = 0.25
	PastelSaturationMax = 0.95
	PastelLightnessMin  = 0.85
	PastelLightnessMax  = 0.95
)
