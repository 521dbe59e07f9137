package config

import "github.com/spf13/pflag"

// Flags holds the command-line flags shared by every command. Mount it on
// the root command so cobra parses it.
var Flags = pflag.NewFlagSet("rocketobj", pflag.ContinueOnError)

var (
	flagConfig  = Flags.String("config", "", "Path to config file")
	flagDebug   = Flags.Bool("debug", false, "Enable debug logging")
	flagLogFile = Flags.String("log-file", "", "Also write logs to this file")

	flagChildren      = Flags.Bool("children", true, "Export descendants of the selected components")
	flagSeparate      = Flags.BoolP("separate", "s", false, "Write one OBJ file per component")
	flagAppearance    = Flags.Bool("appearance", true, "Write MTL material libraries")
	flagTriangulate   = Flags.BoolP("triangulate", "t", false, "Split polygons into triangles")
	flagRemoveOffset  = Flags.Bool("remove-offset", false, "Move the model's bounding box corner to the origin")
	flagScale         = Flags.Float32("scale", 1, "Uniform scale factor for vertex positions")
	flagLOD           = Flags.String("lod", "normal", "Level of detail: low, normal or high")
	flagWorkers       = Flags.IntP("workers", "j", 1, "Components meshed in parallel")
	flagConfiguration = Flags.String("configuration", "", "Flight configuration ID")
)

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. Only flags given on
// the command line override file values.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if Flags.Changed("children") {
		cfg.Export.Children = *flagChildren
	}
	if Flags.Changed("separate") {
		cfg.Export.Separate = *flagSeparate
	}
	if Flags.Changed("appearance") {
		cfg.Export.Appearance = *flagAppearance
	}
	if Flags.Changed("triangulate") {
		cfg.Export.Triangulate = *flagTriangulate
	}
	if Flags.Changed("remove-offset") {
		cfg.Export.RemoveOffset = *flagRemoveOffset
	}
	if Flags.Changed("scale") {
		cfg.Export.Scale = *flagScale
	}
	if Flags.Changed("lod") {
		cfg.Export.LOD = *flagLOD
	}
	if Flags.Changed("workers") {
		cfg.Export.Workers = *flagWorkers
	}
	if *flagConfiguration != "" {
		cfg.Export.Configuration = *flagConfiguration
	}
}
