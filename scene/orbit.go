package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/birthday-burst/constants"
	"github.com/lixenwraith/birthday-burst/vmath"
)

// OrbitControls steers a camera around a look target
// The target follows the pointer through a damped spring; keys orbit and zoom
type OrbitControls struct {
	camera *Camera
	spring harmonica.Spring

	goal      vmath.Vec3F
	target    vmath.Vec3F
	targetVel vmath.Vec3F
}

// NewOrbitControls binds controls to camera, fps is the expected Update rate
func NewOrbitControls(camera *Camera, fps int) *OrbitControls {
	return &OrbitControls{
		camera: camera,
		spring: harmonica.NewSpring(harmonica.FPS(fps), constants.OrbitSpringFrequency, constants.OrbitSpringDamping),
		goal:   camera.Target(),
		target: camera.Target(),
	}
}

// SetPointer sets the target goal from a normalized [-1, 1] pointer position
func (o *OrbitControls) SetPointer(nx, ny float64) {
	o.goal = vmath.Vec3F{
		X: nx * constants.OrbitTargetRange,
		Y: ny * constants.OrbitTargetRange,
	}
}

// Goal returns the position the target is easing toward
func (o *OrbitControls) Goal() vmath.Vec3F {
	return o.goal
}

// Rotate orbits the camera around the current target by azimuth and polar deltas
func (o *OrbitControls) Rotate(dTheta, dPhi float64) {
	offset := vmath.V3FSub(o.camera.Position(), o.target)
	radius := vmath.V3FMag(offset)
	if radius == 0 {
		return
	}

	theta := math.Atan2(offset.X, offset.Z)
	phi := math.Acos(clamp(offset.Y/radius, -1, 1))

	theta += dTheta
	phi = clamp(phi+dPhi, constants.OrbitMinPolar, math.Pi-constants.OrbitMinPolar)

	o.camera.SetPosition(vmath.V3FAdd(o.target, spherical(radius, theta, phi)))
}

// Zoom scales the camera distance to the target
func (o *OrbitControls) Zoom(factor float64) {
	offset := vmath.V3FSub(o.camera.Position(), o.target)
	radius := vmath.V3FMag(offset)
	if radius == 0 {
		return
	}
	next := clamp(radius*factor, constants.OrbitMinDistance, constants.OrbitMaxDistance)
	o.camera.SetPosition(vmath.V3FAdd(o.target, vmath.V3FScale(offset, next/radius)))
}

// Update advances the spring one frame and re-aims the camera
func (o *OrbitControls) Update() {
	o.target.X, o.targetVel.X = o.spring.Update(o.target.X, o.targetVel.X, o.goal.X)
	o.target.Y, o.targetVel.Y = o.spring.Update(o.target.Y, o.targetVel.Y, o.goal.Y)
	o.target.Z, o.targetVel.Z = o.spring.Update(o.target.Z, o.targetVel.Z, o.goal.Z)
	o.camera.SetTarget(o.target)
}

func spherical(radius, theta, phi float64) vmath.Vec3F {
	sinPhi := math.Sin(phi)
	return vmath.Vec3F{
		X: radius * sinPhi * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Cos(theta),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
