package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/lixenwraith/skirmish/client"
	"github.com/lixenwraith/skirmish/config"
	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/render/ebitensurface"
)

func main() {
	loaded, err := config.LoadOS()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "skirmish-gl: %v\n", err)
		os.Exit(2)
	}
	if loaded.PrintVersion {
		fmt.Println("skirmish-gl", client.Version)
		return
	}

	rt, err := client.Boot(loaded, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skirmish-gl: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := ebitensurface.Run(rt.Client, "Skirmish", loaded.Display.WindowWidth, loaded.Display.WindowHeight); err != nil {
		rt.Log.WithError(err).Error("window closed with error")
		fmt.Fprintf(os.Stderr, "skirmish-gl: %v\n", err)
	}
}
