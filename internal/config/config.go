// Package config handles viewer configuration loading and management.
package config

import "path/filepath"

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Scene     SceneConfig     `yaml:"scene"`
	Camera    CameraConfig    `yaml:"camera"`
	Light     LightConfig     `yaml:"light"`
	Selection SelectionConfig `yaml:"selection"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Path is the file the config was loaded from, if any.
	Path string `yaml:"-"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// SceneConfig names the model and the instance grid it is replicated over.
type SceneConfig struct {
	AssetsDir   string  `yaml:"assets_dir"`
	Model       string  `yaml:"model"`
	GridPerRow  int     `yaml:"grid_per_row"`
	GridSpacing float32 `yaml:"grid_spacing"`
}

// CameraConfig holds the initial camera and controller settings.
type CameraConfig struct {
	Eye         [3]float32 `yaml:"eye"`
	Target      [3]float32 `yaml:"target"`
	FovYDeg     float32    `yaml:"fov_deg"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
}

// LightConfig holds the initial point light.
type LightConfig struct {
	Position [3]float32 `yaml:"position"`
	Color    [3]float32 `yaml:"color"`
}

// SelectionConfig holds picking and overlay settings.
type SelectionConfig struct {
	DragThresholdPx float32    `yaml:"drag_threshold_px"`
	SelectedColor   [4]float32 `yaml:"selected_color"`
	HoverColor      [4]float32 `yaml:"hover_color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the viewer's stock scene.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Orengine",
			VSync:  true,
		},
		Scene: SceneConfig{
			AssetsDir:   "assets",
			Model:       "drone_costum.obj",
			GridPerRow:  10,
			GridSpacing: 3.0,
		},
		Camera: CameraConfig{
			Eye:         [3]float32{0, 1, 5},
			Target:      [3]float32{0, 1, 0},
			FovYDeg:     45,
			Near:        0.1,
			Far:         100,
			Speed:       0.01,
			Sensitivity: 0.002,
		},
		Light: LightConfig{
			Position: [3]float32{2, 2, 2},
			Color:    [3]float32{1, 0, 0},
		},
		Selection: SelectionConfig{
			DragThresholdPx: 5,
			SelectedColor:   [4]float32{1.0, 0.6, 0.0, 1.0},
			HoverColor:      [4]float32{0.3, 0.8, 1.0, 1.0},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ModelPath joins the assets directory and model file name.
func (c *Config) ModelPath() string {
	return filepath.Join(c.Scene.AssetsDir, c.Scene.Model)
}
