package tcellsurface

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestScreenServiceForwardsEvents(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	svc := NewService()
	if err := svc.Init(sim, ColorMode256); err != nil {
		t.Fatalf("init: %v", err)
	}
	if svc.ColorMode() != ColorMode256 {
		t.Errorf("color mode = %v, want 256", svc.ColorMode())
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	sim.InjectKey(tcell.KeyRune, 's', tcell.ModNone)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-svc.Events():
			if k, ok := ev.(*tcell.EventKey); ok && k.Rune() == 's' {
				if err := svc.Stop(); err != nil {
					t.Fatalf("stop: %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatal("key event not forwarded")
		}
	}
}

func TestScreenServiceStopIsIdempotent(t *testing.T) {
	svc := NewService()
	if err := svc.Init(tcell.NewSimulationScreen("")); err != nil {
		t.Fatal(err)
	}
	if err := svc.Start(); err != nil {
		t.Fatal(err)
	}
	if err := svc.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := svc.Stop(); err != nil {
		t.Errorf("second stop: %v", err)
	}
}
