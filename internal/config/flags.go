package config

import "flag"

// Flags holds command-line overrides. Zero values mean "not set".
type Flags struct {
	Config string
	Debug  bool
	Width  int
	Height int
	Assets string
	Model  string
}

// RegisterFlags binds the viewer's flags to fs and returns their targets.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.StringVar(&f.Assets, "assets", "", "Assets directory")
	return f
}

// ParseFlags parses args into fs. The first positional argument names the mesh file.
func ParseFlags(fs *flag.FlagSet, f *Flags, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		f.Model = fs.Arg(0)
	}
	return nil
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	if f.Assets != "" {
		cfg.Scene.AssetsDir = f.Assets
	}
	if f.Model != "" {
		cfg.Scene.Model = f.Model
	}
}
