package particle

import (
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/birthday-burst/constants"
	"github.com/lixenwraith/birthday-burst/scene"
	"github.com/lixenwraith/birthday-burst/vmath"
)

// Scene receives spawned systems; Remove is only called on eviction
type Scene interface {
	Add(scene.Renderable)
	Remove(scene.Renderable)
}

// SoundPlayer plays the burst effect, fire-and-forget
type SoundPlayer interface {
	PlayBurst()
}

// Config holds burst tuning
type Config struct {
	ParticleCount  int
	InitialRadius  float64 // Reserved; particles currently start co-located
	MovementSpeed  float64 // Per-axis velocity in [-speed/2, +speed/2]
	Size           float64
	Palette        []colorful.Color
	Anchor         vmath.Vec3F
	TargetPlaneZ   float64
	MaxSystems     int           // 0 keeps every system forever
	ReferenceFrame time.Duration // Elapsed time equal to one unit tick in Advance
}

// DefaultConfig returns the stock firework settings
func DefaultConfig() Config {
	return Config{
		ParticleCount:  constants.ParticleCount,
		InitialRadius:  constants.ParticleInitialRadius,
		MovementSpeed:  constants.ParticleMovementSpeed,
		Size:           constants.ParticleSize,
		Palette:        DefaultPalette(),
		Anchor:         vmath.Vec3F{X: constants.AnchorX, Y: constants.AnchorY, Z: constants.AnchorZ},
		TargetPlaneZ:   constants.TargetPlaneZ,
		MaxSystems:     constants.MaxStarSystems,
		ReferenceFrame: constants.ReferenceFrame,
	}
}

// Stats is a snapshot for the HUD
type Stats struct {
	Systems   int
	Particles int
	Spawned   uint64
	Evicted   uint64
}

// Manager owns all active star systems and advances them each frame
// Not safe for concurrent use: spawns, triggers and ticks run on the game loop goroutine
type Manager struct {
	cfg     Config
	scene   Scene
	sound   SoundPlayer
	rng     *rand.Rand
	logger  zerolog.Logger
	systems []*StarSystem

	nextID  uint64
	evicted uint64
}

type noSound struct{}

func (noSound) PlayBurst() {}

// NewManager creates an empty manager; sound may be nil
func NewManager(cfg Config, sc Scene, sound SoundPlayer, rng *rand.Rand, logger zerolog.Logger) *Manager {
	if sound == nil {
		sound = noSound{}
	}
	if cfg.ParticleCount < 0 {
		cfg.ParticleCount = 0
	}
	if cfg.ReferenceFrame <= 0 {
		cfg.ReferenceFrame = constants.ReferenceFrame
	}
	return &Manager{
		cfg:     cfg,
		scene:   sc,
		sound:   sound,
		rng:     rng,
		logger:  logger.With().Str("component", "particle").Logger(),
		systems: make([]*StarSystem, 0, 16),
	}
}

// Config returns the active configuration
func (m *Manager) Config() Config {
	return m.cfg
}

// Systems returns active systems in spawn order; callers must not modify the slice
func (m *Manager) Systems() []*StarSystem {
	return m.systems
}

// Stats reports counts for display
func (m *Manager) Stats() Stats {
	return Stats{
		Systems:   len(m.systems),
		Particles: len(m.systems) * m.cfg.ParticleCount,
		Spawned:   m.nextID,
		Evicted:   m.evicted,
	}
}

// PaletteColor returns a fixed palette entry chosen at random
func (m *Manager) PaletteColor() colorful.Color {
	if len(m.cfg.Palette) == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return m.cfg.Palette[m.rng.Intn(len(m.cfg.Palette))]
}

// PastelColor returns a generated pastel color from the manager's random source
func (m *Manager) PastelColor() colorful.Color {
	return PastelColor(m.rng)
}

// Spawn creates a burst of co-located particles at position with random velocities,
// registers it with the scene and requests the burst sound
func (m *Manager) Spawn(color colorful.Color, position vmath.Vec3F) *StarSystem {
	n := m.cfg.ParticleCount
	speed := m.cfg.MovementSpeed
	half := speed / 2

	sys := &StarSystem{
		id:         m.nextID,
		origin:     position,
		positions:  make([]vmath.Vec3F, n),
		velocities: make([]vmath.Vec3F, n),
		material: scene.Material{
			Color:     color,
			Size:      m.cfg.Size,
			Opacity:   1,
			Blending:  scene.BlendAdditive,
			Sprite:    scene.SpriteSoft,
			DepthTest: false,
		},
		dirty: true,
	}
	m.nextID++

	for i := 0; i < n; i++ {
		sys.positions[i] = position
		sys.velocities[i] = vmath.Vec3F{
			X: m.rng.Float64()*speed - half,
			Y: m.rng.Float64()*speed - half,
			Z: m.rng.Float64()*speed - half,
		}
	}

	m.systems = append(m.systems, sys)
	if m.scene != nil {
		m.scene.Add(sys)
	}
	m.evictOverflow()

	m.logger.Debug().
		Uint64("id", sys.id).
		Str("color", color.Hex()).
		Float64("x", position.X).Float64("y", position.Y).Float64("z", position.Z).
		Int("active", len(m.systems)).
		Msg("burst spawned")

	m.sound.PlayBurst()
	return sys
}

// Tick advances every particle by its velocity, one unit step
// Speed is coupled to the caller's frame rate; call exactly once per frame
func (m *Manager) Tick() {
	for _, s := range m.systems {
		s.step(1)
	}
}

// Advance integrates by elapsed time, one ReferenceFrame equals one Tick
func (m *Manager) Advance(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	scale := float64(elapsed) / float64(m.cfg.ReferenceFrame)
	for _, s := range m.systems {
		s.step(scale)
	}
}

// evictOverflow drops oldest systems beyond MaxSystems and removes them from the scene
func (m *Manager) evictOverflow() {
	if m.cfg.MaxSystems <= 0 || len(m.systems) <= m.cfg.MaxSystems {
		return
	}
	excess := len(m.systems) - m.cfg.MaxSystems
	for _, old := range m.systems[:excess] {
		if m.scene != nil {
			m.scene.Remove(old)
		}
		m.evicted++
	}
	copy(m.systems, m.systems[excess:])
	for i := len(m.systems) - excess; i < len(m.systems); i++ {
		m.systems[i] = nil
	}
	m.systems = m.systems[:len(m.systems)-excess]
}
