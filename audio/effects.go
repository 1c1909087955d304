package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/birthday-burst/constants"
)

// noiseBurst generates decaying noise over a low thump, the body of a firework pop
type noiseBurst struct {
	rate     beep.SampleRate
	pos      int
	duration int
	seed     int64
}

// NewNoiseBurst creates a finite noise burst generator; seed selects the noise sequence
func NewNoiseBurst(duration time.Duration, seed int64, rate beep.SampleRate) beep.Streamer {
	return &noiseBurst{
		rate:     rate,
		duration: rate.N(duration),
		seed:     seed & 0x7fffffff,
	}
}

func (g *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.duration {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.rate)

		// Fast exponential decay for the crack, slower for the rumble
		crack := math.Exp(-t * 9)
		boom := math.Exp(-t * 4)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		// Thump sweeps down from 90Hz
		freq := 40 + 50*boom
		thump := math.Sin(2 * math.Pi * freq * t)

		sample := 0.6*crack*noise + 0.4*boom*thump

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *noiseBurst) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps a stream with linear gain
// math.Log2(0) is -Inf, so 0 volume is made silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// SynthesizeBurst renders the fallback firework pop into a buffer
func SynthesizeBurst(rate beep.SampleRate, seed int64) *beep.Buffer {
	noise := NewNoiseBurst(constants.BurstSoundDuration, seed, rate)
	shaped := NewEnvelope(noise, constants.BurstSoundDuration, constants.BurstSoundAttack, constants.BurstSoundRelease, rate)

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(shaped)
	return buf
}
