package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skirmish/client"
	"github.com/lixenwraith/skirmish/config"
	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/input"
	"github.com/lixenwraith/skirmish/render/tcellsurface"
)

func main() {
	loaded, err := config.LoadOS()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "skirmish: %v\n", err)
		os.Exit(2)
	}
	if loaded.PrintVersion {
		fmt.Println("skirmish", client.Version)
		return
	}

	mode, err := tcellsurface.ParseColorMode(loaded.Display.ColorMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skirmish: %v\n", err)
		os.Exit(2)
	}

	screen := tcellsurface.NewService()
	rt, err := client.Boot(loaded, nil, client.Host{Service: screen, Args: []any{mode}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "skirmish: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	// Panic recovery: screen.Fini runs through the registered crash reset
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	run(rt, screen, loaded.Config)
}

// run is the terminal main loop; every client call happens here
func run(rt *client.Runtime, screen *tcellsurface.ScreenService, cfg *config.Config) {
	cellW, cellH := cfg.Display.CellWidth, cfg.Display.CellHeight
	cols, rows := screen.Screen().Size()

	surface := tcellsurface.New(cols, rows, cellW, cellH, screen.ColorMode())
	translator := tcellsurface.NewTranslator(cellW, cellH)
	app := rt.Client

	w, h := surface.Size()
	app.HandleEvent(input.Event{Type: input.EventResize, Width: w, Height: h})

	frameTicker := time.NewTicker(cfg.FrameInterval())
	defer frameTicker.Stop()

	inbox := rt.Network.Inbox()
	for {
		select {
		case ev := <-screen.Events():
			if rs, ok := ev.(*tcell.EventResize); ok {
				surface.Resize(rs.Size())
				screen.Screen().Sync()
			}
			for _, iev := range translator.Translate(ev) {
				if app.HandleEvent(iev) {
					return
				}
			}

		case <-inbox.Notify():
			app.Pump(time.Now())

		case now := <-frameTicker.C:
			app.Pump(now)
			app.Frame(surface, now)
			surface.Flush(screen.Screen())
		}
	}
}
