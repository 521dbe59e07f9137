package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/rocketmesh/pkg/objexport"
)

// setFlag sets a flag as if given on the command line and restores its
// default when the test ends.
func setFlag(t *testing.T, name, value string) {
	t.Helper()
	if err := Flags.Set(name, value); err != nil {
		t.Fatalf("setting --%s: %v", name, err)
	}
	t.Cleanup(func() {
		f := Flags.Lookup(name)
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Export.Children {
		t.Error("expected children to be exported by default")
	}
	if cfg.Export.Separate {
		t.Error("expected a single output file by default")
	}
	if !cfg.Export.Appearance {
		t.Error("expected appearance export by default")
	}
	if cfg.Export.Scale != 1 {
		t.Errorf("expected scale 1, got %f", cfg.Export.Scale)
	}
	if cfg.Export.LOD != "normal" {
		t.Errorf("expected lod 'normal', got %s", cfg.Export.LOD)
	}
	if cfg.Export.Workers != 1 {
		t.Errorf("expected 1 worker, got %d", cfg.Export.Workers)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
export:
  children: false
  separate: true
  appearance: false
  triangulate: true
  remove_offset: true
  scale: 1000
  lod: high
  workers: 4
  configuration: c6

logging:
  level: "debug"
  log_file: "rocketobj.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Export.Children {
		t.Error("expected children to be false")
	}
	if !cfg.Export.Separate {
		t.Error("expected separate to be true")
	}
	if cfg.Export.Appearance {
		t.Error("expected appearance to be false")
	}
	if !cfg.Export.Triangulate || !cfg.Export.RemoveOffset {
		t.Error("expected triangulate and remove_offset to be true")
	}
	if cfg.Export.Scale != 1000 {
		t.Errorf("expected scale 1000, got %f", cfg.Export.Scale)
	}
	if cfg.Export.LOD != "high" {
		t.Errorf("expected lod 'high', got %s", cfg.Export.LOD)
	}
	if cfg.Export.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Export.Workers)
	}
	if cfg.Export.Configuration != "c6" {
		t.Errorf("expected configuration 'c6', got %s", cfg.Export.Configuration)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "rocketobj.log" {
		t.Errorf("expected log file 'rocketobj.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad syntax", "export:\n  scale: not a number\n  invalid syntax here\n"},
		{"unknown key", "export:\n  scael: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, configPath); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("expected empty file to load, got %v", err)
	}
	if cfg.Export.Scale != 1 {
		t.Errorf("expected defaults to survive, got scale %f", cfg.Export.Scale)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/rocketobj.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("export:\n  lod: low\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != FileName {
		t.Errorf("expected to find %s in current directory, got %q", FileName, path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		flags  map[string]string
		verify func(*testing.T, *Config)
	}{
		{
			name:  "debug flag",
			flags: map[string]string{"debug": "true"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:  "boolean flags can switch defaults off",
			flags: map[string]string{"children": "false", "appearance": "false"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.Children || cfg.Export.Appearance {
					t.Error("expected children and appearance to be disabled")
				}
			},
		},
		{
			name:  "export flags",
			flags: map[string]string{"separate": "true", "triangulate": "true", "remove-offset": "true"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Export.Separate || !cfg.Export.Triangulate || !cfg.Export.RemoveOffset {
					t.Errorf("expected export flags to be applied, got %+v", cfg.Export)
				}
			},
		},
		{
			name:  "scale lod and workers",
			flags: map[string]string{"scale": "25.4", "lod": "low", "workers": "8"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.Scale != 25.4 {
					t.Errorf("expected scale 25.4, got %f", cfg.Export.Scale)
				}
				if cfg.Export.LOD != "low" {
					t.Errorf("expected lod 'low', got %s", cfg.Export.LOD)
				}
				if cfg.Export.Workers != 8 {
					t.Errorf("expected 8 workers, got %d", cfg.Export.Workers)
				}
			},
		},
		{
			name:  "unset flags keep config values",
			flags: map[string]string{},
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for name, value := range tt.flags {
				setFlag(t, name, value)
			}

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	configPath := filepath.Join(t.TempDir(), "custom.yaml")

	yamlContent := `
export:
  scale: 10
  lod: high
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	setFlag(t, "config", configPath)
	setFlag(t, "scale", "100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Scale comes from the flag, lod from the file.
	if cfg.Export.Scale != 100 {
		t.Errorf("expected scale 100 from flag, got %f", cfg.Export.Scale)
	}
	if cfg.Export.LOD != "high" {
		t.Errorf("expected lod 'high' from file, got %s", cfg.Export.LOD)
	}
	if !cfg.Export.Children {
		t.Error("expected children default to survive")
	}
}

func TestLoadRejectsInvalidExport(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	setFlag(t, "config", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing explicit config file")
	}

	setFlag(t, "config", "")
	setFlag(t, "scale", "0")
	if _, err := Load(); !errors.Is(err, objexport.ErrInvalidOptions) {
		t.Errorf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestExportOptions(t *testing.T) {
	cfg := Default()
	cfg.Export.LOD = "high"
	cfg.Export.Triangulate = true

	opts, err := cfg.Export.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if opts.LOD != objexport.LODHigh {
		t.Errorf("expected LODHigh, got %v", opts.LOD)
	}
	if !opts.Triangulate || !opts.ExportChildren || !opts.ExportAppearance {
		t.Errorf("unexpected options %+v", opts)
	}

	cfg.Export.LOD = "ultra"
	if _, err := cfg.Export.Options(); !errors.Is(err, objexport.ErrInvalidOptions) {
		t.Errorf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Export.Scale = 2
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}
