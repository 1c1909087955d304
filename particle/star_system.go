package particle

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/birthday-burst/scene"
	"github.com/lixenwraith/birthday-burst/vmath"
)

// StarSystem is one burst: N co-spawned particles sharing a color
// positions[i] is only ever moved by velocities[i]; velocities never change after spawn
type StarSystem struct {
	id         uint64
	origin     vmath.Vec3F
	positions  []vmath.Vec3F
	velocities []vmath.Vec3F
	material   scene.Material
	ticks      uint64
	dirty      bool
}

func (s *StarSystem) ID() uint64                 { return s.id }
func (s *StarSystem) Origin() vmath.Vec3F        { return s.origin }
func (s *StarSystem) Color() colorful.Color      { return s.material.Color }
func (s *StarSystem) Len() int                   { return len(s.positions) }
func (s *StarSystem) Ticks() uint64              { return s.ticks }
func (s *StarSystem) Position(i int) vmath.Vec3F { return s.positions[i] }
func (s *StarSystem) Velocity(i int) vmath.Vec3F { return s.velocities[i] }

// Material implements scene.Renderable
func (s *StarSystem) Material() scene.Material { return s.material }

// Points implements scene.PointCloud; the slice is live and mutates on tick
func (s *StarSystem) Points() []vmath.Vec3F { return s.positions }

// Dirty implements scene.Dirtier
func (s *StarSystem) Dirty() bool { return s.dirty }

// MarkClean implements scene.Dirtier
func (s *StarSystem) MarkClean() { s.dirty = false }

// step integrates one tick; scale 1 is the plain per-frame add
func (s *StarSystem) step(scale float64) {
	if scale == 1 {
		for i := range s.positions {
			s.positions[i] = vmath.V3FAdd(s.positions[i], s.velocities[i])
		}
	} else {
		for i := range s.positions {
			s.positions[i] = vmath.V3FAdd(s.positions[i], vmath.V3FScale(s.velocities[i], scale))
		}
	}
	s.ticks++
	s.dirty = true
}
