package constants

import "time"

// Audio output
const (
	// SampleRate of the speaker; decoded assets are resampled to it
	SampleRate = 44100

	// SpeakerBuffer is the speaker latency window
	SpeakerBuffer = 100 * time.Millisecond

	// ResampleQuality passed to beep.Resample
	ResampleQuality = 4
)

// Volumes (linear gain)
const (
	EffectGain     = 0.5
	BackgroundGain = 0.6
)

// MaxVoices bounds overlapping burst sounds, 0 = unlimited
const MaxVoices = 16

// Default asset locations
const (
	BurstSoundPath      = "assets/explosionSound.mp3"
	BackgroundSoundPath = "assets/backgroundSound.mp3"
)

// Synthesized burst fallback timing
const (
	BurstSoundDuration = 700 * time.Millisecond
	BurstSoundAttack   = 5 * time.Millisecond
	BurstSoundRelease  = 500 * time.Millisecond
)

// AssetFetchTimeout bounds http(s) asset downloads
const AssetFetchTimeout = 15 * time.Second
