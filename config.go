package trex

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Player  PlayerConfig  `yaml:"player"`
	Frame   FrameConfig   `yaml:"frame"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Level   LevelConfig   `yaml:"level"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraConfig struct {
	Position mgl32.Vec3 `yaml:"position"`
	Rotation mgl32.Vec3 `yaml:"rotation"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

type PlayerConfig struct {
	Position      mgl32.Vec3 `yaml:"position"`
	Rotation      mgl32.Vec3 `yaml:"rotation"`
	Scale         mgl32.Vec3 `yaml:"scale"`
	Shader        string     `yaml:"shader"`
	Mesh          string     `yaml:"mesh"`
	BaseTexture   string     `yaml:"base_texture"`
	NormalTexture string     `yaml:"normal_texture"`
	Bones         int        `yaml:"bones"`
}

type FrameConfig struct {
	MaxFPS         float32 `yaml:"max_fps"`
	SpikeThreshold float32 `yaml:"spike_threshold"`
	SpikeDt        float32 `yaml:"spike_dt"`
}

type SessionConfig struct {
	FreeLook bool `yaml:"free_look"`
	Debug    bool `yaml:"debug"`
}

type LogConfig struct {
	Prefix string `yaml:"prefix"`
	Debug  bool   `yaml:"debug"`
	// StatsEvery is the number of frames between debug frame summaries.
	StatsEvery uint64 `yaml:"stats_every"`
}

type LevelConfig struct {
	Boxes []BoxDef `yaml:"boxes"`
}

type BoxDef struct {
	Tag         string     `yaml:"tag"`
	Center      mgl32.Vec3 `yaml:"center"`
	HalfExtents mgl32.Vec3 `yaml:"half_extents"`
}

var ErrInvalidConfig = errors.New("invalid config")

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "GTA-Rex"},
		Camera: CameraConfig{
			Position: mgl32.Vec3{0, 5, 10},
			Near:     0.1,
			Far:      1000,
		},
		Player: PlayerConfig{
			Position:      mgl32.Vec3{0, 5, 0},
			Scale:         mgl32.Vec3{1, 1, 1},
			Shader:        "TRex",
			Mesh:          "Resources/TRex/TRex.gem",
			BaseTexture:   "T-rex_Base_Color.png",
			NormalTexture: "T-rex_Normal_OpenGL.png",
			Bones:         64,
		},
		Frame: FrameConfig{
			MaxFPS:         120,
			SpikeThreshold: 2.0,
			SpikeDt:        0.00001,
		},
		Log: LogConfig{Prefix: "trex"},
		Level: LevelConfig{
			Boxes: []BoxDef{
				{Tag: "Ground", Center: mgl32.Vec3{0, -1, 0}, HalfExtents: mgl32.Vec3{200, 1, 200}},
			},
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
// Keys missing from the document keep their defaults.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if !finite(c.Camera.Near, c.Camera.Far) || c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		return fmt.Errorf("%w: camera planes near=%g far=%g", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Frame.MaxFPS <= 0 {
		return fmt.Errorf("%w: max_fps must be positive", ErrInvalidConfig)
	}
	if c.Frame.SpikeThreshold <= 0 || c.Frame.SpikeDt < 0 {
		return fmt.Errorf("%w: spike_threshold=%g spike_dt=%g", ErrInvalidConfig, c.Frame.SpikeThreshold, c.Frame.SpikeDt)
	}
	if !finite(c.Camera.Position[:]...) || !finite(c.Player.Position[:]...) {
		return fmt.Errorf("%w: non-finite start position", ErrInvalidConfig)
	}
	for i, box := range c.Level.Boxes {
		if !finite(box.Center[:]...) || !finite(box.HalfExtents[:]...) {
			return fmt.Errorf("%w: level box %d is not finite", ErrInvalidConfig, i)
		}
		if box.HalfExtents.X() < 0 || box.HalfExtents.Y() < 0 || box.HalfExtents.Z() < 0 {
			return fmt.Errorf("%w: level box %d has negative half extents", ErrInvalidConfig, i)
		}
	}
	return nil
}

func finite(values ...float32) bool {
	for _, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
