// Package config handles rocketobj configuration loading and management.
package config

import (
	"github.com/Faultbox/rocketmesh/pkg/objexport"
)

// Config holds all rocketobj settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	Children      bool    `yaml:"children"`      // Include descendants of selected components
	Separate      bool    `yaml:"separate"`      // One OBJ file per component
	Appearance    bool    `yaml:"appearance"`    // Write MTL libraries
	Triangulate   bool    `yaml:"triangulate"`   // Split polygons into triangles
	RemoveOffset  bool    `yaml:"remove_offset"` // Move the bounding box corner to the origin
	Scale         float32 `yaml:"scale"`
	LOD           string  `yaml:"lod"` // low, normal or high
	Workers       int     `yaml:"workers"`
	Configuration string  `yaml:"configuration"` // Flight configuration ID
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Children:   true,
			Appearance: true,
			Scale:      1,
			LOD:        "normal",
			Workers:    1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options converts the export settings into exporter options.
func (e ExportConfig) Options() (objexport.Options, error) {
	lod, err := objexport.ParseLevelOfDetail(e.LOD)
	if err != nil {
		return objexport.Options{}, err
	}
	opts := objexport.Options{
		ExportChildren:   e.Children,
		SeparateFiles:    e.Separate,
		ExportAppearance: e.Appearance,
		Triangulate:      e.Triangulate,
		RemoveOffset:     e.RemoveOffset,
		Scaling:          e.Scale,
		LOD:              lod,
		Workers:          e.Workers,
	}
	return opts, opts.Validate()
}
