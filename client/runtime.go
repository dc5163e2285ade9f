package client

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skirmish/audio"
	"github.com/lixenwraith/skirmish/config"
	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/logger"
	"github.com/lixenwraith/skirmish/network"
	"github.com/lixenwraith/skirmish/service"
	"github.com/lixenwraith/skirmish/status"
)

// Version is stamped at build time with -ldflags "-X"
var Version = "dev"

// Host is a host-owned service started alongside network and audio
type Host struct {
	Service service.Service
	Args    []any
}

// Runtime is a booted client with its services running
type Runtime struct {
	Hub     *service.Hub
	Client  *Client
	Network *network.Service
	Audio   *audio.Service
	Metrics *status.Registry
	Log     logrus.FieldLogger

	logFile *os.File
}

// Boot initializes logging, starts every service and builds the client
// output selects the audio backend; nil plays through the system speaker
func Boot(cfg *config.Loaded, output audio.Output, hosts ...Host) (*Runtime, error) {
	logFile, err := logger.Init(cfg.LoggerOptions(cfg.ExplicitLog))
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	core.SetCrashLogger(logger.Log)

	rt := &Runtime{
		Metrics: status.NewRegistry(),
		Log:     logger.Component("client"),
		logFile: logFile,
	}
	rt.Hub = service.NewHub(logger.Component("hub"))
	rt.Network = network.NewService()
	rt.Audio = audio.NewService(output)

	regs := []Host{
		{Service: rt.Network, Args: []any{cfg.Network(), rt.Metrics, logger.Component("network")}},
		{Service: rt.Audio, Args: []any{cfg.AudioConfig(), logger.Component("audio")}},
	}
	for _, h := range append(regs, hosts...) {
		if err := rt.Hub.Register(h.Service, h.Args...); err != nil {
			rt.closeLog()
			return nil, err
		}
	}

	keys, err := cfg.KeyTable()
	if err != nil {
		rt.closeLog()
		return nil, err
	}

	if err := rt.Hub.InitAll(); err != nil {
		rt.closeLog()
		return nil, err
	}
	if err := rt.Hub.StartAll(); err != nil {
		rt.closeLog()
		return nil, err
	}

	rt.Client = New(Deps{
		Session:          engine.NewSession(cfg.SessionDefaults()),
		Sender:           rt.Network,
		Inbox:            rt.Network.Inbox(),
		Player:           rt.Audio.Player(),
		Metrics:          rt.Metrics,
		Log:              rt.Log,
		KeyTable:         keys,
		SpawnCount:       cfg.Client.SpawnCount,
		PingInterval:     cfg.Server.PingInterval,
		ResetOnReconnect: cfg.Server.ResetOnReconnect,
	})

	rt.Log.WithFields(logrus.Fields{
		"version": Version,
		"server":  cfg.Server.URL,
		"audio":   !rt.Audio.IsDisabled(),
	}).Info("client started")
	return rt, nil
}

// Close stops every service and flushes the log
func (rt *Runtime) Close() {
	rt.Hub.StopAll()
	rt.Log.WithFields(logrus.Fields(rt.Metrics.Fields())).Info("client stopped")
	rt.closeLog()
}

func (rt *Runtime) closeLog() {
	if rt.logFile != nil {
		rt.logFile.Close()
		rt.logFile = nil
	}
}
