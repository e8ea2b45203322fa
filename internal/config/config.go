package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures output styling and naming defaults for generated
// timelines.
type Config struct {
	Version int         `yaml:"version"`
	Title   TitleConfig `yaml:"title"`
	Naming  NameConfig  `yaml:"naming"`
}

// TitleConfig is the single text style applied to every generated
// title element.
type TitleConfig struct {
	Font      string `yaml:"font"`
	FontSize  string `yaml:"font_size"`
	FontFace  string `yaml:"font_face"`
	FontColor string `yaml:"font_color"`
	Alignment string `yaml:"alignment"`
}

// NameConfig controls the event/project name used when the caller
// does not supply one.
type NameConfig struct {
	DefaultName string `yaml:"default_name"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Title: TitleConfig{
			Font:      "Helvetica",
			FontSize:  "96",
			FontFace:  "Regular",
			FontColor: "1 1 1 1",
			Alignment: "center",
		},
		Naming: NameConfig{
			DefaultName: "Captions",
		},
	}
}

// Load reads a configuration file, layering it over the defaults. A
// missing path (or an empty one) yields the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks fields that would produce a broken document.
func (c Config) Validate() error {
	if c.Title.Font == "" {
		return errors.New("title.font must not be empty")
	}
	if c.Title.FontSize == "" {
		return errors.New("title.font_size must not be empty")
	}
	switch c.Title.Alignment {
	case "left", "center", "right":
	default:
		return fmt.Errorf(
			"title.alignment %q is not one of left, center, right",
			c.Title.Alignment,
		)
	}
	return nil
}
