package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skirmish/audio"
	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/input"
	"github.com/lixenwraith/skirmish/logger"
	"github.com/lixenwraith/skirmish/network"
	"github.com/lixenwraith/skirmish/world"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the complete client configuration
// Sources apply in order: defaults, TOML file, environment (.env included), flags
type Config struct {
	Server  ServerConfig      `toml:"server"`
	Client  ClientConfig      `toml:"client"`
	Display DisplayConfig     `toml:"display"`
	Audio   AudioConfig       `toml:"audio"`
	Log     LogConfig         `toml:"log"`
	Keys    map[string]string `toml:"keys"`
}

// ServerConfig configures the transport
type ServerConfig struct {
	URL              string        `toml:"url"`
	ConnectTimeout   time.Duration `toml:"connect_timeout"`
	WriteTimeout     time.Duration `toml:"write_timeout"`
	ReconnectDelay   time.Duration `toml:"reconnect_delay"`
	PingInterval     time.Duration `toml:"ping_interval"`
	ReadLimit        int64         `toml:"read_limit"`
	SendQueueSize    int           `toml:"send_queue_size"`
	InboxSize        int           `toml:"inbox_size"`
	ResetOnReconnect bool          `toml:"reset_on_reconnect"`
}

// ClientConfig seeds the session
type ClientConfig struct {
	SpawnCount      int    `toml:"spawn_count"`
	UnitType        string `toml:"unit_type"`
	ShowDiagnostics bool   `toml:"show_diagnostics"`
	KeymapFile      string `toml:"keymap_file"` // optional TOML file with a [keys] table
}

// DisplayConfig configures the hosts
type DisplayConfig struct {
	ColorMode    string  `toml:"color_mode"` // auto, truecolor, 256
	CellWidth    float64 `toml:"cell_width"`
	CellHeight   float64 `toml:"cell_height"`
	FrameRate    int     `toml:"frame_rate"`
	WindowWidth  int     `toml:"window_width"`
	WindowHeight int     `toml:"window_height"`
}

// AudioConfig configures cue playback
type AudioConfig struct {
	Muted  bool    `toml:"muted"`
	Volume float64 `toml:"volume"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
	File   string `toml:"file"`
	Debug  bool   `toml:"debug"` // enable file logging
}

// Default returns the built-in configuration
func Default() *Config {
	net := network.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			URL:            net.URL,
			ConnectTimeout: net.ConnectTimeout,
			WriteTimeout:   net.WriteTimeout,
			ReconnectDelay: net.ReconnectDelay,
			PingInterval:   net.PingInterval,
			ReadLimit:      net.ReadLimit,
			SendQueueSize:  net.SendQueueSize,
			InboxSize:      net.InboxSize,
		},
		Client: ClientConfig{
			SpawnCount:      world.DefaultSpawnCount,
			UnitType:        string(world.UnitSoldier),
			ShowDiagnostics: true,
		},
		Display: DisplayConfig{
			ColorMode:    "auto",
			CellWidth:    8,
			CellHeight:   16,
			FrameRate:    60,
			WindowWidth:  1280,
			WindowHeight: 800,
		},
		Audio: AudioConfig{
			Volume: audio.DefaultConfig().Volume,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Dir:    logger.DefaultDir,
			File:   logger.DefaultFile,
		},
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks every field; failures wrap ErrInvalid
func (c *Config) Validate() error {
	if err := c.Network().Validate(); err != nil {
		return fmt.Errorf("%w: server: %v", ErrInvalid, err)
	}
	if c.Server.ConnectTimeout <= 0 {
		return invalid("server.connect_timeout must be positive")
	}
	if c.Client.SpawnCount <= 0 {
		return invalid("client.spawn_count must be positive, got %d", c.Client.SpawnCount)
	}
	if _, err := world.ParseUnitType(c.Client.UnitType); err != nil {
		return fmt.Errorf("%w: client.unit_type: %v", ErrInvalid, err)
	}

	switch strings.ToLower(c.Display.ColorMode) {
	case "", "auto", "truecolor", "24bit", "256":
	default:
		return invalid("display.color_mode %q", c.Display.ColorMode)
	}
	if c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0 {
		return invalid("display cell size must be positive")
	}
	if c.Display.FrameRate < 1 || c.Display.FrameRate > 240 {
		return invalid("display.frame_rate %d out of range 1..240", c.Display.FrameRate)
	}
	if c.Display.WindowWidth <= 0 || c.Display.WindowHeight <= 0 {
		return invalid("display window size must be positive")
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return invalid("audio.volume %v out of range 0..1", c.Audio.Volume)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return invalid("log.format %q", c.Log.Format)
	}

	if _, err := input.KeyTableFromMap(c.Keys); err != nil {
		return fmt.Errorf("%w: keys: %v", ErrInvalid, err)
	}
	return nil
}

// ===== Derived component configs =====

// Network returns the transport configuration
func (c *Config) Network() *network.Config {
	return &network.Config{
		URL:            c.Server.URL,
		ConnectTimeout: c.Server.ConnectTimeout,
		WriteTimeout:   c.Server.WriteTimeout,
		ReconnectDelay: c.Server.ReconnectDelay,
		PingInterval:   c.Server.PingInterval,
		ReadLimit:      c.Server.ReadLimit,
		SendQueueSize:  c.Server.SendQueueSize,
		InboxSize:      c.Server.InboxSize,
	}
}

// SessionDefaults returns the values a fresh session starts from
func (c *Config) SessionDefaults() engine.SessionDefaults {
	unit, err := world.ParseUnitType(c.Client.UnitType)
	if err != nil {
		unit = world.UnitSoldier
	}
	return engine.SessionDefaults{UnitType: unit, ShowDiagnostics: c.Client.ShowDiagnostics}
}

// AudioConfig returns the cue player configuration
func (c *Config) AudioConfig() audio.Config {
	cfg := audio.DefaultConfig()
	cfg.Muted = c.Audio.Muted
	cfg.Volume = c.Audio.Volume
	return cfg
}

// LoggerOptions returns logger settings; file logging only when debug or an explicit file is set
func (c *Config) LoggerOptions(explicitFile bool) logger.Options {
	opts := logger.Options{Level: c.Log.Level, Format: c.Log.Format}
	if c.Log.Debug || explicitFile {
		opts.Dir, opts.File = c.Log.Dir, c.Log.File
	}
	return opts
}

// KeyTable returns the default bindings with the keymap file and then the inline [keys]
// overrides merged in
func (c *Config) KeyTable() (*input.KeyTable, error) {
	kt := input.DefaultKeyTable()
	if c.Client.KeymapFile != "" {
		data, err := os.ReadFile(c.Client.KeymapFile)
		if err != nil {
			return nil, fmt.Errorf("keymap: %w", err)
		}
		fromFile, err := input.LoadKeyConfig(data)
		if err != nil {
			return nil, err
		}
		kt.Merge(fromFile)
	}
	if len(c.Keys) == 0 {
		return kt, nil
	}
	overrides, err := input.KeyTableFromMap(c.Keys)
	if err != nil {
		return nil, err
	}
	kt.Merge(overrides)
	return kt, nil
}

// FrameInterval is the terminal host's frame tick
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(c.Display.FrameRate, 1))
}
