package audio

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/birthday-burst/constants"
)

var (
	// ErrNotReady is returned while a sound is still loading or failed to load
	ErrNotReady = errors.New("audio: sound not ready")
	// ErrUnsupportedFormat is returned for assets that are neither mp3 nor wav
	ErrUnsupportedFormat = errors.New("audio: unsupported format")
	// ErrNoTrack is returned when no background track is configured
	ErrNoTrack = errors.New("audio: no background track")
	// ErrDisabled is returned by operations on a disabled sound manager
	ErrDisabled = errors.New("audio: disabled")
	// ErrInvalidSetting is returned for out-of-range audio settings
	ErrInvalidSetting = errors.New("audio: invalid setting")
)

// Config holds audio settings
type Config struct {
	Enabled      bool
	BurstPath    string  // File path or http(s) URL; empty selects the synthesized burst
	MusicPath    string  // File path or http(s) URL; empty disables background music
	EffectVolume float64 // Linear gain 0..1
	MusicVolume  float64 // Linear gain 0..1
	MaxVoices    int     // Overlapping burst cap, 0 = unlimited
	SampleRate   int
	FetchTimeout time.Duration
}

// DefaultConfig returns the stock audio settings
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		BurstPath:    constants.BurstSoundPath,
		MusicPath:    constants.BackgroundSoundPath,
		EffectVolume: constants.EffectGain,
		MusicVolume:  constants.BackgroundGain,
		MaxVoices:    constants.MaxVoices,
		SampleRate:   constants.SampleRate,
		FetchTimeout: constants.AssetFetchTimeout,
	}
}

// LoadConfig loads audio configuration from environment variables over the defaults
// A malformed value returns an error naming the variable
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if enabled := os.Getenv("BIRTHDAY_AUDIO_ENABLED"); enabled != "" {
		val, err := strconv.ParseBool(enabled)
		if err != nil {
			return Config{}, fmt.Errorf("BIRTHDAY_AUDIO_ENABLED=%q: %w", enabled, err)
		}
		cfg.Enabled = val
	}

	if path, ok := os.LookupEnv("BIRTHDAY_SOUND"); ok {
		cfg.BurstPath = path
	}
	if path, ok := os.LookupEnv("BIRTHDAY_MUSIC"); ok {
		cfg.MusicPath = path
	}

	// Volumes are 0-100 converted to 0.0-1.0
	if volume := os.Getenv("BIRTHDAY_EFFECT_VOLUME"); volume != "" {
		val, err := strconv.Atoi(volume)
		if err != nil {
			return Config{}, fmt.Errorf("BIRTHDAY_EFFECT_VOLUME=%q: %w", volume, err)
		}
		cfg.EffectVolume = percent(val)
	}
	if volume := os.Getenv("BIRTHDAY_MUSIC_VOLUME"); volume != "" {
		val, err := strconv.Atoi(volume)
		if err != nil {
			return Config{}, fmt.Errorf("BIRTHDAY_MUSIC_VOLUME=%q: %w", volume, err)
		}
		cfg.MusicVolume = percent(val)
	}

	if voices := os.Getenv("BIRTHDAY_MAX_VOICES"); voices != "" {
		val, err := strconv.Atoi(voices)
		if err != nil || val < 0 {
			return Config{}, fmt.Errorf("BIRTHDAY_MAX_VOICES=%q: %w", voices, ErrInvalidSetting)
		}
		cfg.MaxVoices = val
	}

	if sampleRate := os.Getenv("BIRTHDAY_SAMPLE_RATE"); sampleRate != "" {
		val, err := strconv.Atoi(sampleRate)
		if err != nil || val <= 0 {
			return Config{}, fmt.Errorf("BIRTHDAY_SAMPLE_RATE=%q: %w", sampleRate, ErrInvalidSetting)
		}
		cfg.SampleRate = val
	}

	return cfg, nil
}

func percent(v int) float64 {
	f := float64(v) / 100.0
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
