package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/golfsim/internal/swing"
)

const (
	DefaultOutput     = "trajectory.png"
	DefaultDataDir    = ".golfsim"
	DefaultArcSamples = 60
	DefaultLogFormat  = "text"
)

type Config struct {
	Swing   swing.Parameters `yaml:"swing"`
	Output  OutputConfig     `yaml:"output"`
	DataDir string           `yaml:"data_dir"`
	Log     LogConfig        `yaml:"log"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
	// Arc overlays the sampled flight path on the chart.
	Arc        bool `yaml:"arc"`
	ArcSamples int  `yaml:"arc_samples"`
}

type LogConfig struct {
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Swing: swing.ReferenceParameters(),
		Output: OutputConfig{
			Path:       DefaultOutput,
			ArcSamples: DefaultArcSamples,
		},
		DataDir: DefaultDataDir,
		Log:     LogConfig{Format: DefaultLogFormat},
	}
}

// LoadOver reads a yaml file on top of base, so omitted keys keep the values
// already in base. base is modified in place.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Swing.Validate(); err != nil {
		return err
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output path is empty")
	}
	if c.Output.ArcSamples < 2 {
		return fmt.Errorf("arc_samples must be at least 2, got %d", c.Output.ArcSamples)
	}
	return nil
}
