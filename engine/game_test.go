package engine

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/birthday-burst/audio"
	"github.com/lixenwraith/birthday-burst/config"
	"github.com/lixenwraith/birthday-burst/constants"
	"github.com/lixenwraith/birthday-burst/scene"
	"github.com/lixenwraith/birthday-burst/vmath"
)

// mockSound records audio requests; startErrs are returned by successive StartBackground calls
type mockSound struct {
	bursts    int
	starts    int
	startErrs []error
	muted     bool
	playing   bool
}

func (s *mockSound) PlayBurst() { s.bursts++ }

func (s *mockSound) StartBackground() error {
	s.starts++
	if len(s.startErrs) > 0 {
		err := s.startErrs[0]
		s.startErrs = s.startErrs[1:]
		if err != nil {
			return err
		}
	}
	s.playing = true
	return nil
}

func (s *mockSound) ToggleMute() bool {
	s.muted = !s.muted
	return s.muted
}

func (s *mockSound) Stats() audio.Stats {
	return audio.Stats{Muted: s.muted, MusicPlaying: s.playing}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 42
	cfg.Particles = 20
	return cfg
}

func newTestGame(t *testing.T, cfg config.Config, sound Sound) (*Game, tcell.SimulationScreen, *MockTimeProvider) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	screen.SetSize(100, 41)
	t.Cleanup(screen.Fini)

	clock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewGame(screen, cfg, sound, clock, zerolog.Nop()), screen, clock
}

func press(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
}

func release(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// TestNewGameScene verifies the stock scene is built and the viewport excludes the HUD
func TestNewGameScene(t *testing.T) {
	cfg := testConfig()
	cfg.Name = "Ada"
	g, _, _ := newTestGame(t, cfg, nil)

	// floor, three lines, table, cake, candles
	if g.Graph.Len() != 7 {
		t.Errorf("Expected 7 scene nodes, got %d", g.Graph.Len())
	}

	var names []string
	g.Graph.Each(func(r scene.Renderable) {
		if l, ok := r.(scene.Label); ok {
			names = append(names, l.Text())
		}
	})
	if len(names) != 3 || names[2] != "Ada" {
		t.Errorf("Expected name on third line, got %v", names)
	}

	if w, h := g.Camera.Viewport(); w != 100 || h != 40 {
		t.Errorf("Expected 100x40 viewport, got %dx%d", w, h)
	}
	if len(g.Particles.Systems()) != 0 {
		t.Error("Expected no bursts before Run")
	}
}

// TestPointerPressEdge verifies one burst per press and none while held
func TestPointerPressEdge(t *testing.T) {
	snd := &mockSound{}
	g, _, _ := newTestGame(t, testConfig(), snd)

	g.HandleEvent(press(30, 10))
	g.HandleEvent(press(35, 12)) // drag with button held
	g.HandleEvent(release(35, 12))
	g.HandleEvent(press(70, 20))

	systems := g.Particles.Systems()
	if len(systems) != 2 {
		t.Fatalf("Expected 2 bursts, got %d", len(systems))
	}
	for i, s := range systems {
		if math.Abs(s.Origin().Z-constants.TargetPlaneZ) > 1e-9 {
			t.Errorf("Burst %d: expected z=%f, got %f", i, constants.TargetPlaneZ, s.Origin().Z)
		}
	}
	if systems[0].Origin().X >= systems[1].Origin().X {
		t.Error("Expected right-hand click to land further right")
	}
	if snd.bursts != 2 {
		t.Errorf("Expected 2 burst sounds, got %d", snd.bursts)
	}
	if g.Triggers.Pending() != g.Triggers.Anchor() {
		t.Error("Expected pending reset to anchor after click")
	}
}

// TestPointerPressOnHUD verifies clicks on the status line do nothing
func TestPointerPressOnHUD(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(), nil)
	g.HandleEvent(press(10, 40))
	if len(g.Particles.Systems()) != 0 {
		t.Error("Expected no burst from HUD click")
	}
}

// TestMusicRetry verifies the background track is retried until it starts
func TestMusicRetry(t *testing.T) {
	snd := &mockSound{startErrs: []error{audio.ErrNotReady, audio.ErrNotReady}}
	g, _, _ := newTestGame(t, testConfig(), snd)

	for i := 0; i < 5; i++ {
		g.HandleEvent(press(50, 20))
		g.HandleEvent(release(50, 20))
	}

	if snd.starts != 3 {
		t.Errorf("Expected 3 start attempts, got %d", snd.starts)
	}
	if !snd.playing {
		t.Error("Expected music playing")
	}
}

// TestMusicPermanentFailure verifies non-retryable errors stop further attempts
func TestMusicPermanentFailure(t *testing.T) {
	snd := &mockSound{startErrs: []error{errors.New("decode failed")}}
	g, _, _ := newTestGame(t, testConfig(), snd)

	for i := 0; i < 3; i++ {
		g.HandleEvent(press(50, 20))
		g.HandleEvent(release(50, 20))
	}
	if snd.starts != 1 {
		t.Errorf("Expected a single start attempt, got %d", snd.starts)
	}
}

// TestPeriodicAtAnchor verifies timed bursts use the anchor
func TestPeriodicAtAnchor(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(), nil)

	g.HandleEvent(press(50, 20))
	g.Periodic()

	systems := g.Particles.Systems()
	if len(systems) != 2 {
		t.Fatalf("Expected 2 bursts, got %d", len(systems))
	}
	if systems[1].Origin() != g.Triggers.Anchor() {
		t.Errorf("Expected periodic burst at anchor, got %+v", systems[1].Origin())
	}
}

// TestFrameIntegration verifies frame mode ticks once per frame regardless of time
func TestFrameIntegration(t *testing.T) {
	g, _, clock := newTestGame(t, testConfig(), nil)
	g.Periodic()
	sys := g.Particles.Systems()[0]
	v := sys.Velocity(0)
	origin := sys.Origin()

	g.Frame(clock.Step(time.Second))
	g.Frame(clock.Step(time.Millisecond))

	want := vmath.V3FAdd(origin, vmath.V3FScale(v, 2))
	if !vmath.V3FApproxEqual(sys.Position(0), want, 1e-9) {
		t.Errorf("Expected %+v after two frames, got %+v", want, sys.Position(0))
	}
	if g.Frames() != 2 {
		t.Errorf("Expected 2 frames, got %d", g.Frames())
	}
}

// TestElapsedIntegration verifies elapsed mode scales by wall time
func TestElapsedIntegration(t *testing.T) {
	cfg := testConfig()
	cfg.Integration = config.IntegrationElapsed
	g, _, clock := newTestGame(t, cfg, nil)
	g.Periodic()
	sys := g.Particles.Systems()[0]
	v := sys.Velocity(0)
	origin := sys.Origin()

	g.Frame(clock.Step(constants.ReferenceFrame * 4))

	want := vmath.V3FAdd(origin, vmath.V3FScale(v, 4))
	if !vmath.V3FApproxEqual(sys.Position(0), want, 1e-9) {
		t.Errorf("Expected %+v after four reference frames, got %+v", want, sys.Position(0))
	}
}

// TestKeys verifies the keyboard controls
func TestKeys(t *testing.T) {
	snd := &mockSound{}
	g, _, _ := newTestGame(t, testConfig(), snd)

	if g.HandleEvent(key(' ')) {
		t.Fatal("Space should not quit")
	}
	if n := len(g.Particles.Systems()); n != 1 {
		t.Fatalf("Expected space to fire a burst, got %d", n)
	}

	g.HandleEvent(key('m'))
	if !snd.muted {
		t.Error("Expected m to mute")
	}

	before := vmath.V3FMag(vmath.V3FSub(g.Camera.Position(), g.Camera.Target()))
	g.HandleEvent(key('+'))
	after := vmath.V3FMag(vmath.V3FSub(g.Camera.Position(), g.Camera.Target()))
	if after >= before {
		t.Errorf("Expected zoom in, distance %f -> %f", before, after)
	}

	pos := g.Camera.Position()
	g.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if g.Camera.Position() == pos {
		t.Error("Expected arrow key to orbit the camera")
	}

	if !g.HandleEvent(key('q')) {
		t.Error("Expected q to quit")
	}
	if !g.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Expected Esc to quit")
	}
	if !g.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Error("Expected Ctrl-C to quit")
	}
}

// TestResize verifies the camera follows the screen
func TestResize(t *testing.T) {
	g, screen, _ := newTestGame(t, testConfig(), nil)

	screen.SetSize(60, 20)
	g.HandleEvent(tcell.NewEventResize(60, 20))

	if w, h := g.Camera.Viewport(); w != 60 || h != 19 {
		t.Errorf("Expected 60x19 viewport, got %dx%d", w, h)
	}
}

// TestFrameDrawsHUD verifies the status line reaches the screen
func TestFrameDrawsHUD(t *testing.T) {
	snd := &mockSound{}
	g, screen, clock := newTestGame(t, testConfig(), snd)
	g.Periodic()
	g.Frame(clock.Step(constants.FrameUpdateInterval))

	var sb strings.Builder
	for x := 0; x < 40; x++ {
		ch, _, _, _ := screen.GetContent(x, 40)
		sb.WriteRune(ch)
	}
	if !strings.Contains(sb.String(), "bursts 1") {
		t.Errorf("Expected HUD with burst count, got %q", sb.String())
	}
	if !strings.Contains(g.HUD(), "sound ready") {
		t.Errorf("Expected sound status in HUD, got %q", g.HUD())
	}
}

// TestRunQuit verifies the loop bootstraps a burst and exits on q
func TestRunQuit(t *testing.T) {
	cfg := testConfig()
	g, screen, _ := newTestGame(t, cfg, nil)

	done := make(chan error, 1)
	go func() { done <- g.Run(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Run to return after q")
	}

	if len(g.Particles.Systems()) == 0 {
		t.Error("Expected bootstrap burst")
	}
	if g.Particles.Systems()[0].Origin() != g.Triggers.Anchor() {
		t.Error("Expected bootstrap burst at anchor")
	}
}

// TestRunCancel verifies context cancellation stops the loop
func TestRunCancel(t *testing.T) {
	g, _, _ := newTestGame(t, testConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Run to return after cancel")
	}
}
