package audio

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// fakeOutput records calls instead of opening a device
type fakeOutput struct {
	mu      sync.Mutex
	initErr error
	inits   int
	played  []beep.Streamer
	closed  bool
}

func (f *fakeOutput) Init(beep.SampleRate, int) error {
	f.inits++
	return f.initErr
}
func (f *fakeOutput) Play(s ...beep.Streamer) { f.played = append(f.played, s...) }
func (f *fakeOutput) Lock()                   { f.mu.Lock() }
func (f *fakeOutput) Unlock()                 { f.mu.Unlock() }
func (f *fakeOutput) Close()                  { f.closed = true }

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				panic("sample out of range")
			}
		}
		if !ok {
			return total
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		if n := drain(NewOscillator(440, 100*time.Millisecond, wave, rate)); n != 100 {
			t.Errorf("wave %d streamed %d samples, want 100", wave, n)
		}
	}
}

func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate) // constant 1.0
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("streamed %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("attack start = %v, want 0", buf[0][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("sustain = %v, want 1", buf[50][0])
	}
	if buf[99][0] >= buf[85][0] {
		t.Errorf("release not falling: %v then %v", buf[85][0], buf[99][0])
	}
}

func TestEveryCueIsFinite(t *testing.T) {
	rate := beep.SampleRate(8000)
	for c := Cue(0); c < cueCount; c++ {
		s := NewCue(c, rate)
		if s == nil {
			t.Fatalf("cue %s has no streamer", c)
		}
		if n := drain(s); n == 0 || n > rate.N(time.Second) {
			t.Errorf("cue %s streamed %d samples", c, n)
		}
	}
	if NewCue(cueCount, rate) != nil {
		t.Error("unknown cue produced a streamer")
	}
}

func TestPlayerLifecycle(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(DefaultConfig(), out)

	if p.Play(CueSpawn) {
		t.Error("played before start")
	}
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	if err := p.Start(); err != nil || out.inits != 1 {
		t.Errorf("second start: err=%v inits=%d", err, out.inits)
	}
	if len(out.played) != 1 {
		t.Fatalf("output streams = %d, want the master mix", len(out.played))
	}

	if !p.Play(CueMove) || p.mixer.Len() != 1 {
		t.Errorf("play failed, mixer len = %d", p.mixer.Len())
	}
	if !p.ToggleMute() || p.Play(CueMove) {
		t.Error("muted player still plays")
	}
	if p.ToggleMute() {
		t.Error("second toggle should unmute")
	}
	if p.Played() != 1 {
		t.Errorf("played = %d, want 1", p.Played())
	}

	p.Stop()
	if !out.closed || p.IsRunning() || p.mixer.Len() != 0 {
		t.Error("stop did not close and clear")
	}
	p.Stop()
}

func TestServiceDegradesWithoutDevice(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	s := NewService(out)
	if err := s.Init(Config{Volume: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start returned %v, want degradation", err)
	}
	if !s.IsDisabled() || s.Player() != nil {
		t.Error("service not disabled after device failure")
	}
	if err := s.Stop(); err != nil {
		t.Error(err)
	}
}

func TestServiceStartsMuted(t *testing.T) {
	s := NewService(&fakeOutput{})
	cfg := DefaultConfig()
	cfg.Muted = true
	if err := s.Init(&cfg); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	p := s.Player()
	if p == nil || !p.IsMuted() || p.Play(CueConnect) {
		t.Error("muted config not applied")
	}
}
