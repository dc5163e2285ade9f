package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	crashMu    sync.Mutex
	crashReset func()
	crashLog   logrus.FieldLogger
	crashOut   io.Writer = os.Stderr
	crashExit            = os.Exit
)

// SetCrashReset registers the screen cleanup run before a crash report
// The terminal host passes screen.Fini; nil clears it
func SetCrashReset(fn func()) {
	crashMu.Lock()
	crashReset = fn
	crashMu.Unlock()
}

// SetCrashLogger records crashes to the log file as well as stderr
func SetCrashLogger(log logrus.FieldLogger) {
	crashMu.Lock()
	crashLog = log
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the screen and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}
	stack := debug.Stack()

	crashMu.Lock()
	reset, log := crashReset, crashLog
	crashReset = nil
	crashMu.Unlock()

	// Restore terminal to sane state before writing
	if reset != nil {
		reset()
	}
	if log != nil {
		log.WithField("stack", string(stack)).Errorf("crash: %v", r)
	}

	fmt.Fprintf(crashOut, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\n%s\n", stack)
	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure screen cleanup on crash
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
