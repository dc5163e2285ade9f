package audio

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Service wraps Player as a service.Service
// Handles graceful degradation when no audio device is available
type Service struct {
	config   Config
	output   Output
	log      logrus.FieldLogger
	player   *Player
	disabled atomic.Bool
}

// NewService creates an audio service; a nil output uses the system speaker
func NewService(output Output) *Service {
	return &Service{config: DefaultConfig(), output: output}
}

// Name implements Service
func (s *Service) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements Service
// Accepts Config or *Config, and a logrus.FieldLogger, in any order
func (s *Service) Init(args ...any) error {
	for _, arg := range args {
		switch v := arg.(type) {
		case Config:
			s.config = v
		case *Config:
			if v != nil {
				s.config = *v
			}
		case logrus.FieldLogger:
			s.log = v
		}
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	s.player = NewPlayer(s.config, s.output)
	return nil
}

// Start implements Service
// A device failure disables audio; it is never returned as an error
func (s *Service) Start() error {
	if s.player == nil {
		s.disabled.Store(true)
		return nil
	}
	if err := s.player.Start(); err != nil {
		s.log.WithError(err).Warn("audio unavailable, continuing without sound")
		s.disabled.Store(true)
		return nil
	}
	s.log.WithField("muted", s.player.IsMuted()).Debug("audio started")
	return nil
}

// Stop implements Service
func (s *Service) Stop() error {
	if s.player != nil {
		s.player.Stop()
	}
	return nil
}

// IsDisabled returns true if audio is unavailable
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}

// Player returns the cue player, nil if audio is disabled
func (s *Service) Player() *Player {
	if s.disabled.Load() {
		return nil
	}
	return s.player
}
