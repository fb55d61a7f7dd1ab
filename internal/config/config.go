// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Attribution string `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Maps        []Map  `yaml:"maps" json:"maps"`
	Edit        Edit   `yaml:"edit,omitempty" json:"edit"`
	ZoomLimit   int    `yaml:"zoom,omitempty"`
}

// Edit holds the editing defaults handed to every map's edit options and to
// the front end.
type Edit struct {
	DrawingClass      string                 `yaml:"drawing_class,omitempty" json:"drawing_class,omitempty"`
	VertexClass       string                 `yaml:"vertex_class,omitempty" json:"vertex_class,omitempty"`
	MiddleClass       string                 `yaml:"middle_class,omitempty" json:"middle_class,omitempty"`
	LineGuide         map[string]interface{} `yaml:"line_guide,omitempty" json:"line_guide,omitempty"`
	SkipMiddleMarkers bool                   `yaml:"skip_middle_markers,omitempty" json:"skip_middle_markers,omitempty"`
	Disabled          bool                   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// Map represents a single map configuration.
type Map struct {
	Index *int `yaml:"index,omitempty" json:"index,omitempty"`

	Name          string   `yaml:"name" json:"name"`
	Topographic   string   `yaml:"topographic" json:"-"`
	Satellite     string   `yaml:"satellite" json:"-"`
	Attribution   string   `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Aliases       []string `yaml:"aliases,omitempty" json:"-"`
	ZoomLimit     int      `yaml:"zoom,omitempty" json:"zoom"`
	Size          int      `yaml:"size,omitempty" json:"size"`
	NoTopographic bool     `yaml:"-" json:"no_topographic,omitempty"`
	NoSatellite   bool     `yaml:"-" json:"no_satellite,omitempty"`
	ReadOnly      bool     `yaml:"read_only,omitempty" json:"read_only,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
