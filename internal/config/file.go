package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the on-disk configuration. Anything left out of the YAML file
// keeps its DefaultConfig value.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Palette   PaletteConfig   `yaml:"palette"`
	Particles ParticlesConfig `yaml:"particles"`
	Audio     AudioConfig     `yaml:"audio"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

type PaletteConfig struct {
	Colors []string      `yaml:"colors"`
	Period time.Duration `yaml:"period"`
}

type ParticlesConfig struct {
	// Seed feeds the particle RNG. Zero picks a time-based seed.
	Seed    uint64  `yaml:"seed"`
	Opacity float64 `yaml:"opacity"`
}

type AudioConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Ambient           string  `yaml:"ambient"`
	Interaction       string  `yaml:"interaction"`
	AmbientVolume     float64 `yaml:"ambient_volume"`
	InteractionVolume float64 `yaml:"interaction_volume"`
	// AssetsURL, when set, is probed over HTTP instead of AssetsDir.
	AssetsURL string `yaml:"assets_url"`
	AssetsDir string `yaml:"assets_dir"`
	Watch     bool   `yaml:"watch"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	AssetsDir       string        `yaml:"assets_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     WindowTitle,
			Resizable: true,
		},
		Palette: PaletteConfig{
			Colors: append([]string(nil), Palette...),
			Period: CyclePeriod,
		},
		Particles: ParticlesConfig{
			Opacity: LayerOpacity,
		},
		Audio: AudioConfig{
			Enabled:           true,
			Ambient:           "ambient-sound.mp3",
			Interaction:       "interaction-sound.mp3",
			AmbientVolume:     AmbientVolume,
			InteractionVolume: InteractionVolume,
			AssetsDir:         "public",
			Watch:             true,
		},
		Server: ServerConfig{
			Addr:            ":3000",
			AssetsDir:       "public",
			ShutdownTimeout: 2 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LAZMY_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LAZMY_ASSETS_URL"); v != "" {
		c.Audio.AssetsURL = v
	}
	if v := os.Getenv("LAZMY_ASSETS_DIR"); v != "" {
		c.Audio.AssetsDir = v
		c.Server.AssetsDir = v
	}
}

// Validate rejects configurations the page cannot run with. Palette entries
// are not checked: a malformed color just renders as a wrong color.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if len(c.Palette.Colors) == 0 {
		return fmt.Errorf("%w: palette is empty", ErrInvalid)
	}
	if c.Palette.Period <= 0 {
		return fmt.Errorf("%w: palette period must be positive, got %s", ErrInvalid, c.Palette.Period)
	}
	if c.Particles.Opacity < 0 || c.Particles.Opacity > 1 {
		return fmt.Errorf("%w: particle opacity %v outside [0,1]", ErrInvalid, c.Particles.Opacity)
	}
	for name, v := range map[string]float64{
		"ambient_volume":     c.Audio.AmbientVolume,
		"interaction_volume": c.Audio.InteractionVolume,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalid, name, v)
		}
	}
	if c.Audio.AssetsURL != "" {
		u, err := url.Parse(c.Audio.AssetsURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: assets_url %q", ErrInvalid, c.Audio.AssetsURL)
		}
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server addr is empty", ErrInvalid)
	}
	return nil
}
