package scene

import (
	"math"

	"github.com/lixenwraith/birthday-burst/vmath"
)

// Camera is a perspective camera projecting onto a terminal cell viewport
// Matrices are rebuilt lazily after any setter; Version changes on every rebuild
type Camera struct {
	position vmath.Vec3F
	target   vmath.Vec3F
	up       vmath.Vec3F

	fovY       float64 // Radians
	near, far  float64
	width      int
	height     int
	cellAspect float64

	viewProj    vmath.Mat4
	invViewProj vmath.Mat4
	stale       bool
	version     uint64
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z
func NewPerspectiveCamera(fovDegrees, near, far, cellAspect float64) *Camera {
	return &Camera{
		target:     vmath.Vec3F{Z: -1},
		up:         vmath.Vec3F{Y: 1},
		fovY:       fovDegrees * math.Pi / 180,
		near:       near,
		far:        far,
		width:      1,
		height:     1,
		cellAspect: cellAspect,
		stale:      true,
	}
}

func (c *Camera) Position() vmath.Vec3F { return c.position }
func (c *Camera) Target() vmath.Vec3F   { return c.target }

func (c *Camera) SetPosition(p vmath.Vec3F) {
	if p != c.position {
		c.position = p
		c.stale = true
	}
}

func (c *Camera) SetTarget(t vmath.Vec3F) {
	if t != c.target {
		c.target = t
		c.stale = true
	}
}

// SetViewport sets the drawable area in cells; non-positive sizes clamp to 1
func (c *Camera) SetViewport(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if width != c.width || height != c.height {
		c.width, c.height = width, height
		c.stale = true
	}
}

// Viewport returns the drawable area in cells
func (c *Camera) Viewport() (int, int) {
	return c.width, c.height
}

// Aspect is the physical width/height ratio of the viewport
func (c *Camera) Aspect() float64 {
	return float64(c.width) * c.cellAspect / float64(c.height)
}

// Version increments whenever the view-projection changes
func (c *Camera) Version() uint64 {
	c.update()
	return c.version
}

func (c *Camera) update() {
	if !c.stale {
		return
	}
	proj := vmath.Perspective(c.fovY, c.Aspect(), c.near, c.far)
	view := vmath.LookAt(c.position, c.target, c.up)
	c.viewProj = vmath.M4Mul(proj, view)
	if inv, ok := vmath.M4Invert(c.viewProj); ok {
		c.invViewProj = inv
	}
	c.stale = false
	c.version++
}

// Project maps a world point to fractional cell coordinates
// depth is the view-space distance in front of the camera
// ok is false for points behind the camera or outside the near/far range
func (c *Camera) Project(world vmath.Vec3F) (x, y, depth float64, ok bool) {
	c.update()
	clip, w := vmath.M4Transform(c.viewProj, world)
	if w <= 0 {
		return 0, 0, 0, false
	}
	inv := 1.0 / w
	nx, ny, nz := clip.X*inv, clip.Y*inv, clip.Z*inv
	if nz < -1 || nz > 1 {
		return 0, 0, 0, false
	}
	x = (nx + 1) / 2 * float64(c.width)
	y = (1 - ny) / 2 * float64(c.height)
	return x, y, w, true
}

// Unproject maps a normalized device coordinate back into world space
func (c *Camera) Unproject(ndc vmath.Vec3F) vmath.Vec3F {
	c.update()
	p, ok := vmath.M4Project(c.invViewProj, ndc)
	if !ok {
		return c.position
	}
	return p
}

// PixelToNDC normalizes a cell coordinate to [-1, 1] with +Y up
func (c *Camera) PixelToNDC(px, py float64) (float64, float64) {
	return px/float64(c.width)*2 - 1, -(py/float64(c.height))*2 + 1
}

// Ray returns the world ray through a normalized device coordinate
func (c *Camera) Ray(ndcX, ndcY float64) vmath.Ray {
	v := c.Unproject(vmath.Vec3F{X: ndcX, Y: ndcY, Z: 0.5})
	return vmath.Ray{
		Origin: c.position,
		Dir:    vmath.V3FNormalize(vmath.V3FSub(v, c.position)),
	}
}

// ProjectedSize converts a world size at view depth into rows
func (c *Camera) ProjectedSize(size, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	f := 1.0 / math.Tan(c.fovY/2)
	return size * f / depth * float64(c.height) / 2
}
