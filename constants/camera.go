package constants

// Perspective camera
const (
	CameraFovDegrees = 75.0
	CameraNear       = 0.1
	CameraFar        = 500.0

	CameraStartX = 0.0
	CameraStartY = 5.0
	CameraStartZ = 50.0

	// CellAspect is terminal cell width/height
	CellAspect = 0.5
)

// Orbit controls
const (
	// OrbitTargetRange scales normalized mouse position to target offset
	OrbitTargetRange = 10.0

	// OrbitSpringFrequency and OrbitSpringDamping drive target smoothing
	OrbitSpringFrequency = 6.0
	OrbitSpringDamping   = 1.0

	// OrbitStepRadians is the per-keypress orbit angle
	OrbitStepRadians = 0.08

	// OrbitZoomFactor is the per-keypress distance multiplier
	OrbitZoomFactor = 0.9

	OrbitMinDistance = 5.0
	OrbitMaxDistance = 200.0

	// OrbitMinPolar keeps the camera off the poles
	OrbitMinPolar = 0.05
)
