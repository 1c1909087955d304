package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Output is the sink sound streams are mixed into
type Output interface {
	Play(s beep.Streamer)
	SetMuted(muted bool)
	SampleRate() beep.SampleRate
	Close()
}

// SpeakerOutput mixes into the system speaker
type SpeakerOutput struct {
	rate   beep.SampleRate
	mixer  *beep.Mixer
	master *effects.Volume
}

// OpenSpeaker initializes the speaker and starts the master mixer
func OpenSpeaker(rate beep.SampleRate, buffer time.Duration) (*SpeakerOutput, error) {
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, err
	}
	mixer := &beep.Mixer{}
	out := &SpeakerOutput{
		rate:   rate,
		mixer:  mixer,
		master: newVolume(mixer, 1),
	}
	speaker.Play(out.master)
	return out, nil
}

func (o *SpeakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

func (o *SpeakerOutput) SetMuted(muted bool) {
	speaker.Lock()
	o.master.Silent = muted
	speaker.Unlock()
}

func (o *SpeakerOutput) SampleRate() beep.SampleRate { return o.rate }

// Close stops all sounds and releases the device
func (o *SpeakerOutput) Close() {
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// MixerOutput is an offline sink pulled by Drain instead of a device
type MixerOutput struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	master *effects.Volume
	played int
}

// NewMixerOutput creates an offline output at rate
func NewMixerOutput(rate beep.SampleRate) *MixerOutput {
	mixer := &beep.Mixer{}
	return &MixerOutput{
		rate:   rate,
		mixer:  mixer,
		master: newVolume(mixer, 1),
	}
}

func (o *MixerOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	o.mixer.Add(s)
	o.played++
	o.mu.Unlock()
}

func (o *MixerOutput) SetMuted(muted bool) {
	o.mu.Lock()
	o.master.Silent = muted
	o.mu.Unlock()
}

func (o *MixerOutput) SampleRate() beep.SampleRate { return o.rate }

func (o *MixerOutput) Close() {
	o.mu.Lock()
	o.mixer.Clear()
	o.mu.Unlock()
}

// Drain pulls n samples through the master stream
func (o *MixerOutput) Drain(n int) [][2]float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([][2]float64, n)
	const chunk = 512
	for i := 0; i < n; i += chunk {
		end := min(i+chunk, n)
		o.master.Stream(out[i:end])
	}
	return out
}

// Active returns the number of streams still in the mixer
func (o *MixerOutput) Active() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mixer.Len()
}

// Played returns the number of streams ever added
func (o *MixerOutput) Played() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.played
}
