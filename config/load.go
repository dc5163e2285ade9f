package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables read after the TOML file
const (
	EnvServerURL        = "SKIRMISH_SERVER_URL"
	EnvUnitType         = "SKIRMISH_UNIT_TYPE"
	EnvColorMode        = "SKIRMISH_COLOR_MODE"
	EnvMuted            = "SKIRMISH_MUTED"
	EnvResetOnReconnect = "SKIRMISH_RESET_ON_RECONNECT"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvLogFile          = "LOG_FILE"
)

// LookupFunc resolves an environment variable
type LookupFunc func(key string) (string, bool)

// LoadFile decodes a TOML file over cfg; unknown keys are rejected
func LoadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return invalid("%s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// EnvLookup layers a dotenv file under the process environment
// A missing file is not an error; process variables win, as with godotenv.Load
func EnvLookup(path string, process LookupFunc) (LookupFunc, error) {
	file := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}
	}
	return func(key string) (string, bool) {
		if v, ok := process(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// ApplyEnv overlays recognised environment variables
// Returns true for explicitFile when LOG_FILE was set
func ApplyEnv(cfg *Config, lookup LookupFunc) (explicitFile bool, err error) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(key string, dst *bool) {
		if err != nil {
			return
		}
		if v, ok := lookup(key); ok && v != "" {
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = invalid("%s=%q: %v", key, v, perr)
				return
			}
			*dst = b
		}
	}

	str(EnvServerURL, &cfg.Server.URL)
	str(EnvUnitType, &cfg.Client.UnitType)
	str(EnvColorMode, &cfg.Display.ColorMode)
	str(EnvLogLevel, &cfg.Log.Level)
	str(EnvLogFormat, &cfg.Log.Format)
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		cfg.Log.File = v
		explicitFile = true
	}
	boolean(EnvMuted, &cfg.Audio.Muted)
	boolean(EnvResetOnReconnect, &cfg.Server.ResetOnReconnect)
	return explicitFile, err
}

// Loaded is the resolved configuration plus the flags that only steer loading
type Loaded struct {
	*Config
	ConfigPath   string
	ExplicitLog  bool // a log file was named by env or flag
	PrintVersion bool
}

// Load resolves defaults, the TOML file, env and flags, then validates
// args excludes the program name
func Load(name string, args []string, lookup LookupFunc) (*Loaded, error) {
	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	fset.SetOutput(os.Stderr)

	var (
		configPath = fset.String("config", "", "TOML config file")
		envFile    = fset.String("env", ".env", "dotenv file")
		server     = fset.String("server", "", "server websocket URL")
		unit       = fset.String("unit", "", "default unit type: soldier, knight, archer")
		spawnCount = fset.Int("spawn-count", 0, "troops per spawn click")
		colorMode  = fset.String("color", "", "color mode: auto, truecolor, 256")
		muted      = fset.Bool("mute", false, "start with audio muted")
		noDiag     = fset.Bool("no-diagnostics", false, "hide the diagnostics panel at start")
		reset      = fset.Bool("reset-on-reconnect", false, "clear session state after a reconnect")
		debug      = fset.Bool("debug", false, "write logs to the log directory")
		logLevel   = fset.String("log-level", "", "log level")
		logFormat  = fset.String("log-format", "", "log format: text, json")
		logFile    = fset.String("log-file", "", "log file name inside the log directory")
		version    = fset.Bool("version", false, "print version and exit")
	)
	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	cfg := Default()
	if *configPath != "" {
		if err := LoadFile(cfg, *configPath); err != nil {
			return nil, err
		}
	}

	env, err := EnvLookup(*envFile, lookup)
	if err != nil {
		return nil, err
	}
	explicit, err := ApplyEnv(cfg, env)
	if err != nil {
		return nil, err
	}

	// Only flags given on the command line override
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "server":
			cfg.Server.URL = *server
		case "unit":
			cfg.Client.UnitType = *unit
		case "spawn-count":
			cfg.Client.SpawnCount = *spawnCount
		case "color":
			cfg.Display.ColorMode = *colorMode
		case "mute":
			cfg.Audio.Muted = *muted
		case "no-diagnostics":
			cfg.Client.ShowDiagnostics = !*noDiag
		case "reset-on-reconnect":
			cfg.Server.ResetOnReconnect = *reset
		case "debug":
			cfg.Log.Debug = *debug
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		case "log-file":
			cfg.Log.File = *logFile
			explicit = true
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, ConfigPath: *configPath, ExplicitLog: explicit, PrintVersion: *version}, nil
}

// LoadOS is Load over os.Args and the process environment
func LoadOS() (*Loaded, error) {
	return Load(os.Args[0], os.Args[1:], os.LookupEnv)
}
