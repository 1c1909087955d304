package core

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/birthday-burst/constants"
)

// SetupLogging configures file logging when debug is set, otherwise logs are discarded
// The returned file is nil when logging is disabled or the file cannot be opened
func SetupLogging(debug bool, level zerolog.Level) (zerolog.Logger, *os.File) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if !debug {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return zerolog.New(io.Discard), nil
	}

	if err := os.MkdirAll(constants.LogDir, 0o755); err != nil {
		return zerolog.New(io.Discard), nil
	}

	path := filepath.Join(constants.LogDir, constants.LogFileName)
	rotate(path, constants.MaxLogSize)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.New(io.Discard), nil
	}

	zerolog.SetGlobalLevel(level)
	// The terminal is in raw mode, so the console writer goes to the file only
	writer := zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: "15:04:05.000"}
	logger := zerolog.New(writer).With().Timestamp().Logger()
	logger.Info().Str("level", level.String()).Msg("logging started")
	return logger, f
}

// Sampled returns a logger for per-frame events
// A short burst passes every period, after that one entry in n
func Sampled(logger zerolog.Logger, burst uint32, period time.Duration, n uint32) zerolog.Logger {
	return logger.With().Bool("sampled", true).Logger().Sample(&zerolog.BurstSampler{
		Burst:       burst,
		Period:      period,
		NextSampler: &zerolog.BasicSampler{N: n},
	})
}

// rotate renames path aside with a timestamp once it exceeds limit
func rotate(path string, limit int64) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= limit {
		return
	}
	ext := filepath.Ext(path)
	rotated := strings.TrimSuffix(path, ext) + "_" + time.Now().Format("20060102_150405") + ext
	_ = os.Rename(path, rotated)
}
