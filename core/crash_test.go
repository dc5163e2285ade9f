package core

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// captureCrash swaps the exit and output hooks for the duration of a test
func captureCrash(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var buf bytes.Buffer
	code := -1
	oldOut, oldExit := crashOut, crashExit
	crashOut = &buf
	crashExit = func(c int) { code = c }
	t.Cleanup(func() {
		crashOut, crashExit = oldOut, oldExit
		SetCrashReset(nil)
		SetCrashLogger(nil)
	})
	return &buf, &code
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	buf, code := captureCrash(t)
	HandleCrash(nil)
	if buf.Len() != 0 || *code != -1 {
		t.Error("nil recover value treated as crash")
	}
}

func TestHandleCrashResetsLogsAndExits(t *testing.T) {
	buf, code := captureCrash(t)

	resets := 0
	SetCrashReset(func() { resets++ })
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	SetCrashLogger(log)

	HandleCrash("boom")

	if resets != 1 {
		t.Errorf("reset ran %d times", resets)
	}
	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
	if !strings.Contains(buf.String(), "CRASH DETECTED: boom") || !strings.Contains(buf.String(), "Stack Trace:") {
		t.Errorf("report = %q", buf.String())
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel || entry.Data["stack"] == nil {
		t.Errorf("log entry = %+v", entry)
	}

	// Reset is one-shot
	HandleCrash("again")
	if resets != 1 {
		t.Error("reset ran twice")
	}
}

func TestGoRecovers(t *testing.T) {
	var mu sync.Mutex
	_, code := captureCrash(t)
	done := make(chan struct{})
	old := crashExit
	crashExit = func(c int) {
		mu.Lock()
		*code = c
		mu.Unlock()
		close(done)
	}
	defer func() { crashExit = old }()

	Go(func() { panic("worker") })
	<-done

	mu.Lock()
	defer mu.Unlock()
	if *code != 1 {
		t.Errorf("exit code = %d", *code)
	}
}
