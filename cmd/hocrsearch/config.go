package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gardar/hocrsearch/pkg/overlay"
)

type yamlConfig struct {
	Input   string        `yaml:"input"`
	Output  string        `yaml:"output"`
	Workers int           `yaml:"workers"`
	Overlay overlayConfig `yaml:"overlay"`
}

type overlayConfig struct {
	PageWidth  float64 `yaml:"page_width"`
	PageHeight float64 `yaml:"page_height"`
	LayerName  string  `yaml:"layer_name"`
	Debug      bool    `yaml:"debug"`
}

// loadConfig reads a YAML file. An empty path yields the zero config.
func loadConfig(path string) (*yamlConfig, error) {
	if path == "" {
		return &yamlConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &yc, nil
}

// overlayFromConfig fills the overlay defaults with the values set in the file
func overlayFromConfig(yc *yamlConfig) overlay.Config {
	cfg := overlay.DefaultConfig()
	if yc.Overlay.PageWidth > 0 {
		cfg.PageWidth = yc.Overlay.PageWidth
	}
	if yc.Overlay.PageHeight > 0 {
		cfg.PageHeight = yc.Overlay.PageHeight
	}
	if yc.Overlay.LayerName != "" {
		cfg.LayerName = yc.Overlay.LayerName
	}
	cfg.Debug = yc.Overlay.Debug
	return cfg
}

// firstNonEmpty returns the flag value when set, the config value otherwise
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
