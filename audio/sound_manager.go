package audio

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/birthday-burst/constants"
)

// clip is a fully decoded sound that becomes playable once loaded
type clip struct {
	name  string
	ready atomic.Bool

	mu  sync.Mutex
	buf *beep.Buffer
	err error
}

func (c *clip) set(buf *beep.Buffer, err error) {
	c.mu.Lock()
	c.buf, c.err = buf, err
	c.mu.Unlock()
	if err == nil && buf != nil {
		c.ready.Store(true)
	}
}

// streamer returns a fresh playback cursor over the clip
func (c *clip) streamer() (beep.StreamSeeker, error) {
	if !c.ready.Load() {
		return nil, ErrNotReady
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Streamer(0, c.buf.Len()), nil
}

// VoicePool caps the number of simultaneously playing effect voices
type VoicePool struct {
	limit   int64
	active  atomic.Int64
	dropped atomic.Uint64
}

// NewVoicePool creates a pool; limit <= 0 is unlimited
func NewVoicePool(limit int) *VoicePool {
	return &VoicePool{limit: int64(limit)}
}

// Acquire reserves a voice, false when the pool is full
func (p *VoicePool) Acquire() bool {
	for {
		cur := p.active.Load()
		if p.limit > 0 && cur >= p.limit {
			p.dropped.Add(1)
			return false
		}
		if p.active.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

// Release frees a voice
func (p *VoicePool) Release() {
	p.active.Add(-1)
}

// Wrap releases the voice once s is exhausted; runs on the audio goroutine
func (p *VoicePool) Wrap(s beep.Streamer) beep.Streamer {
	return beep.Seq(s, beep.Callback(p.Release))
}

func (p *VoicePool) Active() int     { return int(p.active.Load()) }
func (p *VoicePool) Dropped() uint64 { return p.dropped.Load() }

// Stats is a snapshot for the HUD
type Stats struct {
	BurstReady   bool
	MusicReady   bool
	MusicPlaying bool
	Muted        bool
	ActiveVoices int
	Dropped      uint64
	Played       uint64
}

// SoundManager plays the burst effect and the looping background track
// All methods are safe for concurrent use; playback never blocks the caller
type SoundManager struct {
	cfg    Config
	out    Output
	client *http.Client
	logger zerolog.Logger

	burst  *clip
	music  *clip
	voices *VoicePool

	mu           sync.Mutex
	musicPlaying bool
	muted        atomic.Bool
	played       atomic.Uint64

	loading sync.WaitGroup
	cancel  context.CancelFunc
}

// NewSoundManager creates a manager bound to an output; out may be nil when audio is disabled
func NewSoundManager(cfg Config, out Output, logger zerolog.Logger) *SoundManager {
	return &SoundManager{
		cfg:    cfg,
		out:    out,
		client: &http.Client{Timeout: cfg.FetchTimeout},
		logger: logger.With().Str("component", "audio").Logger(),
		burst:  &clip{name: "burst"},
		music:  &clip{name: "music"},
		voices: NewVoicePool(cfg.MaxVoices),
	}
}

// enabled reports whether there is anywhere to play
func (sm *SoundManager) enabled() bool {
	return sm.cfg.Enabled && sm.out != nil
}

// LoadAsync starts decoding both sounds in the background
// Playback requests before a sound is ready are skipped
func (sm *SoundManager) LoadAsync(ctx context.Context) {
	if !sm.enabled() {
		return
	}
	ctx, sm.cancel = context.WithCancel(ctx)
	rate := sm.out.SampleRate()

	sm.loading.Add(2)
	go func() {
		defer sm.loading.Done()
		sm.loadBurst(ctx, rate)
	}()
	go func() {
		defer sm.loading.Done()
		sm.loadMusic(ctx, rate)
	}()
}

func (sm *SoundManager) loadBurst(ctx context.Context, rate beep.SampleRate) {
	if sm.cfg.BurstPath == "" {
		sm.burst.set(SynthesizeBurst(rate, time.Now().UnixNano()), nil)
		sm.logger.Debug().Msg("burst sound synthesized")
		return
	}

	start := time.Now()
	buf, err := LoadBuffer(ctx, sm.client, sm.cfg.BurstPath, rate, constants.ResampleQuality)
	if err != nil {
		// Playback stays inert for the rest of the run
		sm.logger.Warn().Err(err).Str("path", sm.cfg.BurstPath).Msg("burst sound load failed, bursts will be silent")
		sm.burst.set(nil, err)
		return
	}
	sm.logger.Debug().Str("path", sm.cfg.BurstPath).Dur("took", time.Since(start)).Int("samples", buf.Len()).Msg("burst sound loaded")
	sm.burst.set(buf, nil)
}

func (sm *SoundManager) loadMusic(ctx context.Context, rate beep.SampleRate) {
	if sm.cfg.MusicPath == "" {
		sm.music.set(nil, ErrNoTrack)
		return
	}

	start := time.Now()
	buf, err := LoadBuffer(ctx, sm.client, sm.cfg.MusicPath, rate, constants.ResampleQuality)
	if err != nil {
		sm.logger.Warn().Err(err).Str("path", sm.cfg.MusicPath).Msg("background track load failed")
		sm.music.set(nil, err)
		return
	}
	sm.logger.Debug().Str("path", sm.cfg.MusicPath).Dur("took", time.Since(start)).Msg("background track loaded")
	sm.music.set(buf, nil)
}

// Wait blocks until background loading finishes
func (sm *SoundManager) Wait() {
	sm.loading.Wait()
}

// PlayBurst starts one burst voice, fire-and-forget
// Skipped when not loaded yet or when every voice is busy
func (sm *SoundManager) PlayBurst() {
	if !sm.enabled() {
		return
	}
	s, err := sm.burst.streamer()
	if err != nil {
		sm.logger.Trace().Err(err).Msg("burst skipped")
		return
	}
	if !sm.voices.Acquire() {
		sm.logger.Trace().Int("active", sm.voices.Active()).Msg("burst skipped, voice limit reached")
		return
	}
	sm.out.Play(sm.voices.Wrap(newVolume(s, sm.cfg.EffectVolume)))
	sm.played.Add(1)
}

// StartBackground begins the looping background track once
// Returns ErrNotReady while loading so the caller can retry on a later interaction
func (sm *SoundManager) StartBackground() error {
	if !sm.enabled() {
		return ErrDisabled
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.musicPlaying {
		return nil
	}

	s, err := sm.music.streamer()
	if err != nil {
		sm.music.mu.Lock()
		loadErr := sm.music.err
		sm.music.mu.Unlock()
		if loadErr != nil {
			return loadErr
		}
		return err
	}

	sm.out.Play(newVolume(beep.Loop(-1, s), sm.cfg.MusicVolume))
	sm.musicPlaying = true
	sm.logger.Info().Msg("background track started")
	return nil
}

// ToggleMute flips the master mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	muted := !sm.muted.Load()
	sm.muted.Store(muted)
	if sm.out != nil {
		sm.out.SetMuted(muted)
	}
	return muted
}

// Muted reports the master mute state
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}

// Retryable reports whether a StartBackground error may succeed later
func Retryable(err error) bool {
	return errors.Is(err, ErrNotReady)
}

// Stats returns a snapshot of playback state
func (sm *SoundManager) Stats() Stats {
	sm.mu.Lock()
	playing := sm.musicPlaying
	sm.mu.Unlock()
	return Stats{
		BurstReady:   sm.burst.ready.Load(),
		MusicReady:   sm.music.ready.Load(),
		MusicPlaying: playing,
		Muted:        sm.muted.Load(),
		ActiveVoices: sm.voices.Active(),
		Dropped:      sm.voices.Dropped(),
		Played:       sm.played.Load(),
	}
}

// Close cancels loading and stops the output
func (sm *SoundManager) Close() {
	if sm.cancel != nil {
		sm.cancel()
	}
	sm.loading.Wait()
	if sm.out != nil {
		sm.out.Close()
	}
}
