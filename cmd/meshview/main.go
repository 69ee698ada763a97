package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/meshview/internal/app"
	"github.com/gekko3d/meshview/internal/config"
	"github.com/gekko3d/meshview/internal/gpu"
	"github.com/gekko3d/meshview/internal/logging"
	"github.com/gekko3d/meshview/internal/platform"
	"github.com/gekko3d/meshview/internal/render"
)

func init() {
	// GLFW and the surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	fs := flag.NewFlagSet("meshview", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: meshview [flags] [mesh.obj]\n")
		fs.PrintDefaults()
	}
	flags := config.RegisterFlags(fs)
	if err := config.ParseFlags(fs, flags, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := logging.DefaultOptions()
	opts.Prefix = "meshview"
	opts.Level = cfg.Logging.Level
	opts.FilePath = cfg.Logging.LogFile
	log := logging.New(opts)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Errorf("%v", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logging.ZapLogger) error {
	window, err := platform.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		return err
	}
	defer window.Destroy()

	fbW, fbH := window.FramebufferSize()
	ctx, err := gpu.NewContext(window.SurfaceDescriptor(), fbW, fbH, cfg.Window.VSync)
	if err != nil {
		return fmt.Errorf("gpu setup: %w", err)
	}
	defer ctx.Release()

	renderer, err := gpu.NewRenderer(ctx, log)
	if err != nil {
		return fmt.Errorf("gpu setup: %w", err)
	}

	a := app.New(cfg, log)
	defer a.Release()
	if err := a.Init(window, renderer); err != nil {
		return err
	}

	for !window.ShouldClose() && !a.ShouldQuit() {
		for _, ev := range window.PollEvents() {
			a.Input(ev)
		}
		a.HandleMouseMotion(window.MouseDelta())
		if w, h, ok := window.TakeResize(); ok {
			if err := a.Resize(w, h); err != nil {
				return err
			}
		}

		a.Update()

		err := a.Render()
		switch render.ActionFor(err) {
		case render.ActionNone:
		case render.ActionReconfigure:
			if errors.Is(err, render.ErrTargetStale) {
				w, h := window.FramebufferSize()
				if err := a.Resize(w, h); err != nil {
					return err
				}
				continue
			}
			log.Debugf("reconfiguring surface: %v", err)
			a.Reconfigure()
		case render.ActionExit:
			return fmt.Errorf("render: %w", err)
		case render.ActionSkip:
			log.Warnf("frame skipped: %v", err)
		}
	}
	return nil
}
