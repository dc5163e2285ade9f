package network

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

var (
	// ErrNotConnected is returned by Send while no connection is established
	ErrNotConnected = errors.New("not connected")

	// ErrQueueFull is returned by Send when the outbound queue is saturated
	ErrQueueFull = errors.New("send queue full")
)

// Config holds transport configuration
type Config struct {
	// URL is the server websocket endpoint, ws:// or wss://
	URL string

	// Timing
	ConnectTimeout time.Duration
	WriteTimeout   time.Duration
	ReconnectDelay time.Duration
	PingInterval   time.Duration

	// Limits
	ReadLimit     int64 // Max inbound frame size in bytes
	SendQueueSize int
	InboxSize     int
}

// DefaultConfig returns defaults matching the reference server
func DefaultConfig() *Config {
	return &Config{
		URL:            "ws://localhost:3000/ws",
		ConnectTimeout: 5 * time.Second,
		WriteTimeout:   5 * time.Second,
		ReconnectDelay: 2 * time.Second,
		PingInterval:   2 * time.Second,
		ReadLimit:      4 * 1024 * 1024,
		SendQueueSize:  256,
		InboxSize:      256,
	}
}

// Validate checks the URL scheme and positive limits
func (c *Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("server url %q: scheme must be ws or wss", c.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("server url %q: missing host", c.URL)
	}
	if c.SendQueueSize <= 0 || c.InboxSize <= 0 {
		return errors.New("queue sizes must be positive")
	}
	if c.PingInterval <= 0 {
		return errors.New("ping interval must be positive")
	}
	if c.ReconnectDelay < 0 || c.WriteTimeout < 0 || c.ConnectTimeout < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}
