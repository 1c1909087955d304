package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/birthday-burst/audio"
	"github.com/lixenwraith/birthday-burst/config"
	"github.com/lixenwraith/birthday-burst/constants"
	"github.com/lixenwraith/birthday-burst/core"
	"github.com/lixenwraith/birthday-burst/engine"
)

const envFile = ".env"

func main() {
	// Panic Recovery: restore the terminal even if the main goroutine crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	cfg, err := config.Load(os.Args[1:], envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "birthday: %v\n", err)
		os.Exit(2)
	}

	logger, logFile := core.SetupLogging(cfg.Debug, cfg.Level())
	if logFile != nil {
		defer logFile.Close()
	}
	core.SetCrashLogger(logger)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	core.SetCrashCleanup(screen.Fini)
	// Normal exit terminal cleanup
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sound := openSound(ctx, cfg.Audio, logger)
	var player engine.Sound
	if sound != nil {
		player = sound
		defer sound.Close()
	}

	game := engine.NewGame(screen, cfg, player, engine.NewMonotonicTimeProvider(), logger)
	if err := game.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("game loop stopped")
	}
	logger.Info().Uint64("frames", game.Frames()).Msg("exit")
}

// openSound starts the speaker and begins loading sounds; nil continues without audio
func openSound(ctx context.Context, cfg audio.Config, logger zerolog.Logger) *audio.SoundManager {
	if !cfg.Enabled {
		logger.Info().Msg("audio disabled")
		return nil
	}
	out, err := audio.OpenSpeaker(beep.SampleRate(cfg.SampleRate), constants.SpeakerBuffer)
	if err != nil {
		logger.Warn().Err(err).Msg("audio initialization failed, continuing without audio")
		return nil
	}
	sm := audio.NewSoundManager(cfg, out, logger)
	sm.LoadAsync(ctx)
	return sm
}
