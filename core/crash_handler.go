package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

var (
	crashMu      sync.Mutex
	crashCleanup func()
	crashLogger  = zerolog.Nop()
	crashOut     io.Writer = os.Stderr
	crashExit              = os.Exit
)

// SetCrashCleanup registers the terminal restore run before a crash report is printed
func SetCrashCleanup(fn func()) {
	crashMu.Lock()
	crashCleanup = fn
	crashMu.Unlock()
}

// SetCrashLogger records crashes in the log file as well as on stderr
func SetCrashLogger(logger zerolog.Logger) {
	crashMu.Lock()
	crashLogger = logger
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	cleanup, logger, out, exit := crashCleanup, crashLogger, crashOut, crashExit
	crashCleanup = nil // A panic during cleanup must not loop
	crashMu.Unlock()

	stack := debug.Stack()
	logger.Error().Interface("panic", r).Bytes("stack", stack).Msg("crash")

	if cleanup != nil {
		cleanup()
	}

	fmt.Fprintf(out, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(out, "Stack Trace:\r\n%s\r\n", stack)

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
