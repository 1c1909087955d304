package particle

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/birthday-burst/vmath"
)

// Projector is the camera view needed to turn a pointer press into a world point
type Projector interface {
	Viewport() (width, height int)
	PixelToNDC(px, py float64) (float64, float64)
	Ray(ndcX, ndcY float64) vmath.Ray
}

// SpawnRequest is a burst waiting to be created
type SpawnRequest struct {
	Color  colorful.Color
	Origin vmath.Vec3F
}

// TriggerContext carries the state trigger handlers read and write
// It is owned by the game driver and passed to every handler
type TriggerContext struct {
	Camera  Projector
	anchor  vmath.Vec3F
	pending vmath.Vec3F
}

// NewTriggerContext starts with the pending position at anchor
func NewTriggerContext(camera Projector, anchor vmath.Vec3F) *TriggerContext {
	return &TriggerContext{
		Camera:  camera,
		anchor:  anchor,
		pending: anchor,
	}
}

// Pending returns where the next periodic burst will spawn
func (c *TriggerContext) Pending() vmath.Vec3F {
	return c.pending
}

// Anchor returns the default off-screen spawn point
func (c *TriggerContext) Anchor() vmath.Vec3F {
	return c.anchor
}

// ResetPending restores the anchor
func (c *TriggerContext) ResetPending() {
	c.pending = c.anchor
}

// Bootstrap spawns the initial burst at the pending position
func (m *Manager) Bootstrap(ctx *TriggerContext) *StarSystem {
	return m.OnPeriodicTrigger(ctx)
}

// OnPeriodicTrigger spawns a pastel burst at the pending position; pending is left unchanged
func (m *Manager) OnPeriodicTrigger(ctx *TriggerContext) *StarSystem {
	return m.spawnRequest(SpawnRequest{Color: m.PastelColor(), Origin: ctx.pending})
}

// OnPointerTrigger projects a pointer press onto the target plane and spawns a pastel burst there,
// then resets the pending position to the anchor
// Returns false when the pointer ray runs parallel to the plane; pending is still reset
func (m *Manager) OnPointerTrigger(ctx *TriggerContext, px, py float64) (*StarSystem, bool) {
	defer ctx.ResetPending()

	world, ok := m.PointerToWorld(ctx.Camera, px, py)
	if !ok {
		m.logger.Debug().Float64("px", px).Float64("py", py).Msg("pointer ray parallel to target plane, burst skipped")
		return nil, false
	}

	ctx.pending = world
	return m.spawnRequest(SpawnRequest{Color: m.PastelColor(), Origin: ctx.pending}), true
}

// PointerToWorld converts cell coordinates to the world point on z = TargetPlaneZ
func (m *Manager) PointerToWorld(camera Projector, px, py float64) (vmath.Vec3F, bool) {
	w, h := camera.Viewport()
	if w <= 0 || h <= 0 {
		return vmath.Vec3F{}, false
	}

	ray := camera.Ray(camera.PixelToNDC(px, py))
	p, ok := vmath.RayPlaneZ(ray, m.cfg.TargetPlaneZ)
	if !ok || !p.IsFinite() {
		return vmath.Vec3F{}, false
	}
	return p, true
}

func (m *Manager) spawnRequest(req SpawnRequest) *StarSystem {
	return m.Spawn(req.Color, req.Origin)
}
