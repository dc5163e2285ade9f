package tcellsurface

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skirmish/core"
)

// ScreenService owns the tcell screen and its input polling goroutine
type ScreenService struct {
	screen    tcell.Screen
	colorMode ColorMode
	eventCh   chan tcell.Event
	stopCh    chan struct{}
	doneCh    chan struct{}
	mu        sync.Mutex
	running   bool
	finished  bool
}

// NewService creates a screen service
func NewService() *ScreenService {
	return &ScreenService{
		eventCh: make(chan tcell.Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Name implements service.Service
func (s *ScreenService) Name() string {
	return "screen"
}

// Dependencies implements service.Service
func (s *ScreenService) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args: ColorMode and tcell.Screen, both optional; without a screen the real terminal is opened
func (s *ScreenService) Init(args ...any) error {
	s.colorMode = DetectColorMode()
	for _, arg := range args {
		switch v := arg.(type) {
		case ColorMode:
			s.colorMode = v
		case tcell.Screen:
			s.screen = v
		}
	}

	if s.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("screen: %w", err)
		}
		s.screen = screen
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	s.screen.EnableMouse(tcell.MouseMotionEvents)
	s.screen.HideCursor()
	core.SetCrashReset(s.screen.Fini)
	return nil
}

// Start implements service.Service and launches input polling
func (s *ScreenService) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	core.Go(s.pollLoop)
	return nil
}

func (s *ScreenService) pollLoop() {
	defer close(s.doneCh)

	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			continue
		}

		select {
		case s.eventCh <- ev:
		case <-s.stopCh:
			return
		}
	}
}

// Stop implements service.Service and restores the terminal
func (s *ScreenService) Stop() error {
	s.mu.Lock()
	wasRunning := s.running
	s.running = false
	fini := s.screen != nil && !s.finished
	s.finished = true
	s.mu.Unlock()

	if wasRunning {
		close(s.stopCh)
		// Wake PollEvent so the loop sees the stop signal
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
		<-s.doneCh
	}

	if fini {
		core.SetCrashReset(nil)
		s.screen.Fini()
	}
	return nil
}

// Screen returns the wrapped screen, nil before Init
func (s *ScreenService) Screen() tcell.Screen {
	return s.screen
}

// ColorMode returns the resolved color mode
func (s *ScreenService) ColorMode() ColorMode {
	return s.colorMode
}

// Events returns the input event channel
func (s *ScreenService) Events() <-chan tcell.Event {
	return s.eventCh
}
