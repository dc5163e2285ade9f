package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skirmish/status"
)

// Service wraps Transport as a hub-managed service
type Service struct {
	config    *Config
	metrics   *status.Registry
	log       logrus.FieldLogger
	inbox     *Inbox
	transport *Transport
}

// NewService creates a network service with default configuration
func NewService() *Service {
	return &Service{config: DefaultConfig()}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args: *Config, *status.Registry, logrus.FieldLogger, each optional and matched by type
func (s *Service) Init(args ...any) error {
	for _, arg := range args {
		switch v := arg.(type) {
		case *Config:
			if v != nil {
				s.config = v
			}
		case *status.Registry:
			s.metrics = v
		case logrus.FieldLogger:
			s.log = v
		}
	}
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("network config: %w", err)
	}

	s.inbox = NewInbox(s.config.InboxSize)
	s.transport = NewTransport(s.config, s.inbox, s.metrics, s.log)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.transport == nil {
		return errors.New("network: start before init")
	}
	return s.transport.Start(context.Background())
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.transport == nil {
		return nil
	}
	return s.transport.Stop()
}

// Inbox returns the queue the main loop drains; nil before Init
func (s *Service) Inbox() *Inbox {
	return s.inbox
}

// Send implements Sender
func (s *Service) Send(event string, payload any) error {
	if s.transport == nil {
		return ErrNotConnected
	}
	return s.transport.Send(event, payload)
}

// Connected reports transport connectivity
func (s *Service) Connected() bool {
	return s.transport != nil && s.transport.Connected()
}
