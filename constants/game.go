package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// InputBufferSize is the tcell event channel capacity
	InputBufferSize = 64

	// HUDRows is reserved at the bottom of the screen for the status line
	HUDRows = 1
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "birthday.log"

	// MaxLogSize triggers rotation of the previous log on startup
	MaxLogSize = 10 * 1024 * 1024
)
