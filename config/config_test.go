package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/birthday-burst/constants"
)

// clearEnv blanks every variable Load reads
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BIRTHDAY_DEBUG", "BIRTHDAY_LOG_LEVEL", "BIRTHDAY_NAME", "BIRTHDAY_INTEGRATION",
		"BIRTHDAY_SEED", "BIRTHDAY_INTERVAL", "BIRTHDAY_PARTICLES", "BIRTHDAY_MAX_SYSTEMS",
		"BIRTHDAY_AUDIO_ENABLED", "BIRTHDAY_EFFECT_VOLUME", "BIRTHDAY_MUSIC_VOLUME",
		"BIRTHDAY_MAX_VOICES", "BIRTHDAY_SAMPLE_RATE",
	} {
		t.Setenv(k, "")
	}
}

// TestLoadDefaults verifies an empty environment yields the stock settings
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Debug {
		t.Error("Expected debug off by default")
	}
	if cfg.Integration != IntegrationFrame {
		t.Errorf("Expected frame integration, got %q", cfg.Integration)
	}
	if cfg.Interval != constants.PeriodicBurstInterval {
		t.Errorf("Expected interval %v, got %v", constants.PeriodicBurstInterval, cfg.Interval)
	}
	if cfg.Particles != constants.ParticleCount {
		t.Errorf("Expected %d particles, got %d", constants.ParticleCount, cfg.Particles)
	}
	if cfg.MaxSystems != 0 {
		t.Errorf("Expected unbounded systems, got %d", cfg.MaxSystems)
	}
	if !cfg.Audio.Enabled {
		t.Error("Expected audio enabled by default")
	}
	if cfg.Level() != zerolog.DebugLevel {
		t.Errorf("Expected debug level, got %v", cfg.Level())
	}
}

// TestLoadEnvFile verifies .env values apply and real env vars win
func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BIRTHDAY_PARTICLES", "50")

	path := filepath.Join(t.TempDir(), ".env")
	content := "BIRTHDAY_NAME=Ada\nBIRTHDAY_PARTICLES=999\nBIRTHDAY_INTERVAL=2s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv sets unset variables only; make sure these start unset
	os.Unsetenv("BIRTHDAY_NAME")
	os.Unsetenv("BIRTHDAY_INTERVAL")
	t.Cleanup(func() {
		os.Unsetenv("BIRTHDAY_NAME")
		os.Unsetenv("BIRTHDAY_INTERVAL")
	})

	cfg, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "Ada" {
		t.Errorf("Expected name from env file, got %q", cfg.Name)
	}
	if cfg.Interval != 2*time.Second {
		t.Errorf("Expected 2s interval, got %v", cfg.Interval)
	}
	if cfg.Particles != 50 {
		t.Errorf("Expected process env to win with 50, got %d", cfg.Particles)
	}
}

// TestLoadMissingEnvFile verifies a missing env file is not an error
func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(nil, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Expected missing env file to be ignored, got %v", err)
	}
}

// TestLoadFlagsOverrideEnv verifies flags take precedence
func TestLoadFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BIRTHDAY_NAME", "Env")
	t.Setenv("BIRTHDAY_MAX_SYSTEMS", "5")

	cfg, err := Load([]string{
		"-name", "Flag", "-max-systems", "9", "-integration", "elapsed",
		"-debug", "-log-level", "warn", "-no-audio", "-sound", "", "-seed", "42",
	}, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "Flag" || cfg.MaxSystems != 9 {
		t.Errorf("Expected flag values, got name=%q max=%d", cfg.Name, cfg.MaxSystems)
	}
	if cfg.Integration != IntegrationElapsed {
		t.Errorf("Expected elapsed integration, got %q", cfg.Integration)
	}
	if !cfg.Debug || cfg.Level() != zerolog.WarnLevel {
		t.Errorf("Expected debug with warn level, got debug=%v level=%v", cfg.Debug, cfg.Level())
	}
	if cfg.Audio.Enabled || cfg.Audio.BurstPath != "" {
		t.Errorf("Expected audio disabled with synthesized burst, got %+v", cfg.Audio)
	}
	if cfg.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Seed)
	}
}

// TestLoadInvalid verifies validation failures wrap ErrInvalid
func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad integration", nil, []string{"-integration", "rk4"}},
		{"zero interval", nil, []string{"-interval", "0s"}},
		{"no particles", nil, []string{"-particles", "0"}},
		{"negative cap", nil, []string{"-max-systems", "-1"}},
		{"bad level", nil, []string{"-log-level", "loud"}},
		{"unknown flag", nil, []string{"-fireworks"}},
		{"extra args", nil, []string{"now"}},
		{"bad env seed", map[string]string{"BIRTHDAY_SEED": "abc"}, nil},
		{"bad env interval", map[string]string{"BIRTHDAY_INTERVAL": "soon"}, nil},
		{"bad env debug", map[string]string{"BIRTHDAY_DEBUG": "sure"}, nil},
		{"bad env audio flag", map[string]string{"BIRTHDAY_AUDIO_ENABLED": "maybe"}, nil},
		{"bad env volume", map[string]string{"BIRTHDAY_EFFECT_VOLUME": "loud"}, nil},
		{"negative env voices", map[string]string{"BIRTHDAY_MAX_VOICES": "-3"}, nil},
		{"zero env sample rate", map[string]string{"BIRTHDAY_SAMPLE_RATE": "0"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args, "")
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}
