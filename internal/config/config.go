// Package config loads survey-planner settings from built-in defaults, an
// optional YAML or JSON file and SURVEY_* environment variables, in that
// order of precedence (later layers win).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/banshee-data/survey-planner/internal/camera"
	"github.com/banshee-data/survey-planner/internal/footprint"
	"github.com/banshee-data/survey-planner/internal/shutter"
	"github.com/banshee-data/survey-planner/internal/survey"
	"github.com/banshee-data/survey-planner/internal/units"
)

// DefaultConfigPath is the checked-in example configuration carrying the
// documented defaults.
const DefaultConfigPath = "config/survey.defaults.yaml"

// EnvPrefix selects the environment variables read by Load.
// SURVEY_FOOTPRINT_CAMERA sets footprint.camera; a double underscore nests
// further, so SURVEY_FOOTPRINT_EXPORT__ENABLED sets footprint.export.enabled.
const EnvPrefix = "SURVEY_"

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Config is the root configuration.
type Config struct {
	Footprint FootprintConfig  `koanf:"footprint" json:"footprint"`
	Shutter   ShutterConfig    `koanf:"shutter" json:"shutter"`
	Cameras   []camera.Profile `koanf:"cameras,omitempty" json:"cameras,omitempty"`
}

// FootprintConfig drives the footprint/GSD table.
type FootprintConfig struct {
	Camera        string       `koanf:"camera" json:"camera" validate:"required"`
	ElevationMin  int          `koanf:"elevation_min" json:"elevation_min" validate:"gte=0,lte=100000"`
	ElevationMax  int          `koanf:"elevation_max" json:"elevation_max" validate:"gtefield=ElevationMin,lte=100000"`
	ElevationStep int          `koanf:"elevation_step" json:"elevation_step" validate:"gt=0"`
	Export        ExportConfig `koanf:"export" json:"export"`
	Chart         ChartConfig  `koanf:"chart" json:"chart"`
}

// ExportConfig controls the CSV export of the table.
type ExportConfig struct {
	Enabled   bool   `koanf:"enabled" json:"enabled"`
	OutputDir string `koanf:"output_dir" json:"output_dir"`
	TableName string `koanf:"table_name" json:"table_name" validate:"required_if=Enabled true"`
}

// ChartConfig names optional chart outputs; empty disables a chart.
type ChartConfig struct {
	PNG  string `koanf:"png" json:"png"`   // base path, _footprint.png and _gsd.png are appended
	HTML string `koanf:"html" json:"html"` // page path
}

// ShutterConfig drives the shutter-speed calculation.
type ShutterConfig struct {
	FlightSpeed     float64 `koanf:"flight_speed" json:"flight_speed" validate:"gt=0"`
	SpeedUnit       string  `koanf:"speed_unit" json:"speed_unit" validate:"oneof=mps mph kmph kph"`
	PixelSize       float64 `koanf:"pixel_size" json:"pixel_size" validate:"gt=0"`
	SafetyThreshold float64 `koanf:"safety_threshold" json:"safety_threshold" validate:"gte=0,lt=100"`
}

// Default returns the documented defaults.
func Default() *Config {
	return &Config{
		Footprint: FootprintConfig{
			Camera:        camera.FC330.Name,
			ElevationMin:  50,
			ElevationMax:  200,
			ElevationStep: 5,
			Export: ExportConfig{
				Enabled:   false,
				OutputDir: ".",
				TableName: "footprint_table",
			},
		},
		Shutter: ShutterConfig{
			FlightSpeed:     10,
			SpeedUnit:       units.MPS,
			PixelSize:       0.05,
			SafetyThreshold: 60,
		},
	}
}

// Load layers defaults, the file at path (skipped when path is empty) and
// the environment. The result is not validated so that callers can apply
// command-line overrides first; call Validate afterwards.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		cleanPath, err := checkConfigFile(path)
		if err != nil {
			return nil, err
		}
		// JSON is a subset of YAML, one parser serves both.
		if err := k.Load(file.Provider(cleanPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: failed to parse config file %s: %w", survey.ErrInvalidConfig, cleanPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal configuration: %w", survey.ErrInvalidConfig, err)
	}
	cfg.Shutter.SpeedUnit = strings.ToLower(strings.TrimSpace(cfg.Shutter.SpeedUnit))
	return cfg, nil
}

// checkConfigFile validates the extension and size of a config file and
// returns its cleaned path.
func checkConfigFile(path string) (string, error) {
	cleanPath := filepath.Clean(path)
	switch ext := strings.ToLower(filepath.Ext(cleanPath)); ext {
	case ".yaml", ".yml", ".json":
	default:
		return "", fmt.Errorf("%w: config file must have .yaml, .yml or .json extension, got %q", survey.ErrInvalidConfig, ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to stat config file: %w", survey.ErrInvalidConfig, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: config path %s is a directory", survey.ErrInvalidConfig, cleanPath)
	}
	if info.Size() > maxFileSize {
		return "", fmt.Errorf("%w: config file too large: %d bytes (max %d)", survey.ErrInvalidConfig, info.Size(), maxFileSize)
	}
	return cleanPath, nil
}

// envKey maps SURVEY_SECTION_KEY to section.key. Variables outside the
// footprint and shutter sections are ignored.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(s, "_")
	if !ok || rest == "" {
		return ""
	}
	switch section {
	case "footprint", "shutter":
		return section + "." + strings.ReplaceAll(rest, "__", ".")
	default:
		return ""
	}
}

// Registry returns the built-in camera registry extended with the cameras
// declared in the configuration.
func (c *Config) Registry() (*camera.Registry, error) {
	reg := camera.DefaultRegistry()
	for _, p := range c.Cameras {
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// ElevationRange returns the configured elevation range.
func (c *Config) ElevationRange() (footprint.ElevationRange, error) {
	return footprint.NewElevationRange(c.Footprint.ElevationMin, c.Footprint.ElevationMax, c.Footprint.ElevationStep)
}

// ExportOptions returns the exporter settings.
func (c *Config) ExportOptions() footprint.ExportOptions {
	return footprint.ExportOptions{
		Enabled:   c.Footprint.Export.Enabled,
		OutputDir: c.Footprint.Export.OutputDir,
		TableName: c.Footprint.Export.TableName,
	}
}

// ShutterInputs returns the shutter calculator inputs.
func (c *Config) ShutterInputs() shutter.Inputs {
	return shutter.Inputs{
		FlightSpeed:     c.Shutter.FlightSpeed,
		SpeedUnit:       c.Shutter.SpeedUnit,
		PixelSize:       c.Shutter.PixelSize,
		SafetyThreshold: c.Shutter.SafetyThreshold,
	}
}
