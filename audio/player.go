package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Output is the device the mixer plays into
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// speakerOutput plays through the default device
type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }
func (speakerOutput) Close()                  { speaker.Close() }

// Player mixes cues into a single output stream
// Play is safe from any goroutine; mutations of the mixer happen under the output lock
type Player struct {
	mu      sync.Mutex
	config  Config
	out     Output
	rate    beep.SampleRate
	mixer   *beep.Mixer
	master  *effects.Volume
	muted   atomic.Bool
	running atomic.Bool
	played  atomic.Int64
}

// NewPlayer creates a stopped player; a nil output uses the system speaker
func NewPlayer(cfg Config, out Output) *Player {
	if out == nil {
		out = speakerOutput{}
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	p := &Player{
		config: cfg,
		out:    out,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
	}
	p.master = &effects.Volume{Streamer: p.mixer, Base: 2}
	p.setVolume(cfg.Volume)
	p.muted.Store(cfg.Muted)
	return p
}

func (p *Player) setVolume(v float64) {
	v = math.Max(0, math.Min(1, v))
	if v == 0 {
		p.master.Silent = true
		return
	}
	p.master.Silent = false
	p.master.Volume = math.Log2(v)
}

// Start opens the output and begins streaming the mixer
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running.Load() {
		return nil
	}
	if err := p.out.Init(p.rate, p.rate.N(time.Duration(p.config.BufferSize)*time.Millisecond)); err != nil {
		return err
	}
	p.out.Play(p.master)
	p.running.Store(true)
	return nil
}

// Stop clears pending cues and closes the output
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running.Swap(false) {
		return
	}
	p.out.Lock()
	p.mixer.Clear()
	p.out.Unlock()
	p.out.Close()
}

// Play queues a cue; returns false when muted, stopped or the cue is unknown
func (p *Player) Play(c Cue) bool {
	if p.muted.Load() || !p.running.Load() {
		return false
	}
	s := NewCue(c, p.rate)
	if s == nil {
		return false
	}
	p.out.Lock()
	p.mixer.Add(s)
	p.out.Unlock()
	p.played.Add(1)
	return true
}

// ToggleMute flips mute and returns the new state
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted reports the mute flag
func (p *Player) IsMuted() bool {
	return p.muted.Load()
}

// IsRunning reports whether the output is open
func (p *Player) IsRunning() bool {
	return p.running.Load()
}

// Played returns how many cues were queued
func (p *Player) Played() int64 {
	return p.played.Load()
}
