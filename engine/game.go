package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/birthday-burst/audio"
	"github.com/lixenwraith/birthday-burst/config"
	"github.com/lixenwraith/birthday-burst/constants"
	"github.com/lixenwraith/birthday-burst/core"
	"github.com/lixenwraith/birthday-burst/particle"
	"github.com/lixenwraith/birthday-burst/render"
	"github.com/lixenwraith/birthday-burst/scene"
	"github.com/lixenwraith/birthday-burst/vmath"
)

// Sound is the audio surface the game drives
type Sound interface {
	particle.SoundPlayer
	StartBackground() error
	ToggleMute() bool
	Stats() audio.Stats
}

// Game owns the scene, the burst manager and the frame loop
// Everything except input polling runs on the Run goroutine
type Game struct {
	screen   tcell.Screen
	cfg      config.Config
	clock    TimeProvider
	logger   zerolog.Logger
	frameLog zerolog.Logger

	Graph     *scene.Graph
	Camera    *scene.Camera
	Orbit     *scene.OrbitControls
	Particles *particle.Manager
	Triggers  *particle.TriggerContext
	renderer  *render.Renderer
	sound     Sound

	lastFrame time.Time
	frames    uint64
	buttons   tcell.ButtonMask
	musicDone bool
}

// NewGame builds the scene and wires the managers; sound may be nil
func NewGame(screen tcell.Screen, cfg config.Config, sound Sound, clock TimeProvider, logger zerolog.Logger) *Game {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}

	g := &Game{
		screen:   screen,
		cfg:      cfg,
		clock:    clock,
		logger:   logger.With().Str("component", "engine").Logger(),
		frameLog: core.Sampled(logger, 3, 10*time.Second, 600),
		Graph:    scene.NewGraph(),
		sound:    sound,
	}

	greeting := scene.DefaultGreeting()
	greeting.Lines[2] = cfg.Name
	scene.Populate(g.Graph, scene.DefaultLighting(), greeting)

	g.Camera = scene.NewPerspectiveCamera(constants.CameraFovDegrees, constants.CameraNear, constants.CameraFar, constants.CellAspect)
	g.Camera.SetPosition(vmath.Vec3F{X: constants.CameraStartX, Y: constants.CameraStartY, Z: constants.CameraStartZ})
	g.Camera.SetTarget(vmath.Vec3F{})
	g.resize()

	fps := int(time.Second / constants.FrameUpdateInterval)
	g.Orbit = scene.NewOrbitControls(g.Camera, fps)

	pcfg := particle.DefaultConfig()
	pcfg.ParticleCount = cfg.Particles
	pcfg.MaxSystems = cfg.MaxSystems

	var player particle.SoundPlayer
	if sound != nil {
		player = sound
	}
	g.Particles = particle.NewManager(pcfg, g.Graph, player, rand.New(rand.NewSource(seed)), logger)
	g.Triggers = particle.NewTriggerContext(g.Camera, pcfg.Anchor)
	g.renderer = render.NewRenderer(screen)
	g.lastFrame = clock.Now()

	g.logger.Info().
		Int64("seed", seed).
		Str("integration", cfg.Integration).
		Dur("interval", cfg.Interval).
		Int("particles", cfg.Particles).
		Int("max_systems", cfg.MaxSystems).
		Msg("game created")
	return g
}

// Run drives the loop until ctx is done or the user quits
func (g *Game) Run(ctx context.Context) error {
	g.Particles.Bootstrap(g.Triggers)
	g.lastFrame = g.clock.Now()

	events := make(chan tcell.Event, constants.InputBufferSize)
	core.Go(func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	frame := time.NewTicker(constants.FrameUpdateInterval)
	defer frame.Stop()
	periodic := time.NewTicker(g.cfg.Interval)
	defer periodic.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if g.HandleEvent(ev) {
				g.logger.Info().Uint64("frames", g.frames).Msg("quit")
				return nil
			}
		case <-periodic.C:
			g.Periodic()
		case <-frame.C:
			g.Frame(g.clock.Now())
		}
	}
}

// HandleEvent applies one input event, true means quit
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.resize()
		g.screen.Sync()
	case *tcell.EventKey:
		return g.handleKey(ev)
	case *tcell.EventMouse:
		g.handleMouse(ev)
	}
	return false
}

func (g *Game) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		g.Orbit.Rotate(-constants.OrbitStepRadians, 0)
	case tcell.KeyRight:
		g.Orbit.Rotate(constants.OrbitStepRadians, 0)
	case tcell.KeyUp:
		g.Orbit.Rotate(0, -constants.OrbitStepRadians)
	case tcell.KeyDown:
		g.Orbit.Rotate(0, constants.OrbitStepRadians)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case ' ':
			w, h := g.Camera.Viewport()
			g.pointerPress(float64(w)/2, float64(h)/2)
		case 'm', 'M':
			if g.sound != nil {
				muted := g.sound.ToggleMute()
				g.logger.Debug().Bool("muted", muted).Msg("mute toggled")
			}
		case '+', '=':
			g.Orbit.Zoom(constants.OrbitZoomFactor)
		case '-', '_':
			g.Orbit.Zoom(1 / constants.OrbitZoomFactor)
		}
	}
	return false
}

func (g *Game) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	px, py := float64(x)+0.5, float64(y)+0.5

	nx, ny := g.Camera.PixelToNDC(px, py)
	g.Orbit.SetPointer(nx, ny)

	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && g.buttons&tcell.Button1 == 0
	g.buttons = buttons

	if !pressed {
		return
	}
	if _, h := g.Camera.Viewport(); y >= h {
		return
	}
	g.pointerPress(px, py)
}

// pointerPress spawns a burst under the pointer and starts the music on first success
func (g *Game) pointerPress(px, py float64) {
	if sys, ok := g.Particles.OnPointerTrigger(g.Triggers, px, py); ok {
		o := sys.Origin()
		g.logger.Debug().Float64("px", px).Float64("py", py).
			Float64("x", o.X).Float64("y", o.Y).Float64("z", o.Z).
			Msg("pointer burst")
	}
	g.startMusic()
}

func (g *Game) startMusic() {
	if g.sound == nil || g.musicDone {
		return
	}
	err := g.sound.StartBackground()
	switch {
	case err == nil:
		g.musicDone = true
	case audio.Retryable(err):
		g.logger.Debug().Err(err).Msg("background track not ready, will retry on next press")
	default:
		g.musicDone = true
		g.logger.Warn().Err(err).Msg("background track unavailable")
	}
}

// Periodic spawns the timed burst at the pending position
func (g *Game) Periodic() {
	g.Particles.OnPeriodicTrigger(g.Triggers)
}

// Frame advances the simulation and draws
func (g *Game) Frame(now time.Time) {
	elapsed := now.Sub(g.lastFrame)
	g.lastFrame = now
	g.frames++

	if g.cfg.Integration == config.IntegrationElapsed {
		g.Particles.Advance(elapsed)
	} else {
		g.Particles.Tick()
	}
	g.Orbit.Update()

	start := time.Now()
	g.renderer.Render(g.Graph, g.Camera, g.HUD())
	g.frameLog.Trace().
		Uint64("frame", g.frames).
		Dur("elapsed", elapsed).
		Dur("render", time.Since(start)).
		Int("nodes", g.Graph.Len()).
		Msg("frame")
}

// Frames returns the number of frames drawn
func (g *Game) Frames() uint64 {
	return g.frames
}

// HUD formats the status line
func (g *Game) HUD() string {
	st := g.Particles.Stats()
	hud := fmt.Sprintf("bursts %d  particles %d", st.Systems, st.Particles)
	if st.Evicted > 0 {
		hud += fmt.Sprintf("  evicted %d", st.Evicted)
	}
	if g.sound != nil {
		as := g.sound.Stats()
		switch {
		case as.Muted:
			hud += "  sound muted"
		case as.MusicPlaying:
			hud += "  sound on"
		default:
			hud += "  sound ready"
		}
	}
	return hud + "  | click burst  space center  arrows orbit  +/- zoom  m mute  q quit"
}

// resize fits the camera to the screen minus the HUD
func (g *Game) resize() {
	w, h := g.screen.Size()
	g.Camera.SetViewport(w, max(h-constants.HUDRows, 1))
}
