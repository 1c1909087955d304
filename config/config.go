package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/birthday-burst/audio"
	"github.com/lixenwraith/birthday-burst/constants"
)

// ErrInvalid wraps every configuration validation failure
var ErrInvalid = errors.New("invalid configuration")

// Integration modes for particle motion
const (
	IntegrationFrame   = "frame"   // One unit step per rendered frame
	IntegrationElapsed = "elapsed" // Steps scaled by wall time
)

// Config is the resolved application configuration
type Config struct {
	Debug    bool
	LogLevel string

	Name        string
	Seed        int64 // 0 seeds from the clock
	Integration string
	Interval    time.Duration
	Particles   int
	MaxSystems  int

	Audio audio.Config
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		LogLevel:    "debug",
		Name:        constants.GreetingName,
		Integration: IntegrationFrame,
		Interval:    constants.PeriodicBurstInterval,
		Particles:   constants.ParticleCount,
		MaxSystems:  constants.MaxStarSystems,
		Audio:       audio.DefaultConfig(),
	}
}

// Load resolves configuration: defaults, then envFile (if present), then BIRTHDAY_* variables, then args
// Variables already set in the process environment win over envFile
func Load(args []string, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	ac, err := audio.LoadConfig()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	cfg.Audio = ac
	if err := cfg.loadEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.parseFlags(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv("BIRTHDAY_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: BIRTHDAY_DEBUG=%q", ErrInvalid, v)
		}
		c.Debug = b
	}
	if v := os.Getenv("BIRTHDAY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BIRTHDAY_NAME"); v != "" {
		c.Name = v
	}
	if v := os.Getenv("BIRTHDAY_INTEGRATION"); v != "" {
		c.Integration = v
	}
	if v := os.Getenv("BIRTHDAY_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: BIRTHDAY_SEED=%q", ErrInvalid, v)
		}
		c.Seed = n
	}
	if v := os.Getenv("BIRTHDAY_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: BIRTHDAY_INTERVAL=%q", ErrInvalid, v)
		}
		c.Interval = d
	}
	if v := os.Getenv("BIRTHDAY_PARTICLES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: BIRTHDAY_PARTICLES=%q", ErrInvalid, v)
		}
		c.Particles = n
	}
	if v := os.Getenv("BIRTHDAY_MAX_SYSTEMS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: BIRTHDAY_MAX_SYSTEMS=%q", ErrInvalid, v)
		}
		c.MaxSystems = n
	}
	return nil
}

// parseFlags applies command line overrides; current values are the flag defaults
func (c *Config) parseFlags(args []string) error {
	flags := flag.NewFlagSet("birthday", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.BoolVar(&c.Debug, "debug", c.Debug, "Write logs to "+constants.LogDir+"/"+constants.LogFileName)
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: trace, debug, info, warn, error")
	flags.StringVar(&c.Name, "name", c.Name, "Name on the greeting")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "Random seed, 0 uses the clock")
	flags.StringVar(&c.Integration, "integration", c.Integration, "Particle motion: frame or elapsed")
	flags.DurationVar(&c.Interval, "interval", c.Interval, "Periodic burst interval")
	flags.IntVar(&c.Particles, "particles", c.Particles, "Particles per burst")
	flags.IntVar(&c.MaxSystems, "max-systems", c.MaxSystems, "Live burst cap, 0 keeps all")

	noAudio := flags.Bool("no-audio", !c.Audio.Enabled, "Disable sound")
	flags.StringVar(&c.Audio.BurstPath, "sound", c.Audio.BurstPath, "Burst sound file or URL, empty synthesizes one")
	flags.StringVar(&c.Audio.MusicPath, "music", c.Audio.MusicPath, "Background track file or URL, empty disables")
	flags.IntVar(&c.Audio.MaxVoices, "max-voices", c.Audio.MaxVoices, "Overlapping burst sounds, 0 is unlimited")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if flags.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", ErrInvalid, flags.Args())
	}
	c.Audio.Enabled = !*noAudio
	return nil
}

// Validate checks ranges and enumerations
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	if c.Integration != IntegrationFrame && c.Integration != IntegrationElapsed {
		return fmt.Errorf("%w: integration %q, want %s or %s", ErrInvalid, c.Integration, IntegrationFrame, IntegrationElapsed)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval %v must be positive", ErrInvalid, c.Interval)
	}
	if c.Particles <= 0 {
		return fmt.Errorf("%w: particles %d must be positive", ErrInvalid, c.Particles)
	}
	if c.MaxSystems < 0 {
		return fmt.Errorf("%w: max systems %d is negative", ErrInvalid, c.MaxSystems)
	}
	if c.Audio.MaxVoices < 0 {
		return fmt.Errorf("%w: max voices %d is negative", ErrInvalid, c.Audio.MaxVoices)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, c.Audio.SampleRate)
	}
	return nil
}

// Level returns the parsed log level
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.DebugLevel
	}
	return lvl
}
