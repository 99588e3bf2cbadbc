package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/banshee-data/survey-planner/internal/chart"
	"github.com/banshee-data/survey-planner/internal/config"
	"github.com/banshee-data/survey-planner/internal/footprint"
	"github.com/banshee-data/survey-planner/internal/monitoring"
	"github.com/banshee-data/survey-planner/internal/shutter"
	"github.com/banshee-data/survey-planner/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	rest := args[1:]

	var err error
	switch command {
	case "footprint":
		err = handleFootprint(rest, stdout, stderr)
	case "shutter":
		err = handleShutter(rest, stdout, stderr)
	case "cameras":
		err = handleCameras(rest, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "survey-planner version %s\n", version.String())
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return 1
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `survey-planner - Aerial survey planning calculators

Usage: survey <command> [options]

Commands:
  footprint  Table of image footprint and ground sampling distance per elevation
  shutter    Minimum and ideal shutter speed for a flight speed and pixel size
  cameras    List the known camera profiles
  version    Show survey-planner version
  help       Show this help message

Common Flags:
  --config <file>   YAML or JSON configuration file
  --debug           Enable debug logging

Settings are resolved as: flags > config file > SURVEY_* environment > defaults.

Examples:
  # Footprint table for the built-in Phantom 4 camera, 50 to 200 m every 5 m
  survey footprint

  # Export the table and charts for a custom range
  survey footprint --min 30 --max 120 --step 10 --save --output-dir ./plans --png ./plans/p4 --html ./plans/p4.html

  # Shutter speed at 36 km/h with a 2 cm pixel
  survey shutter --speed 36 --speed-unit kmph --pixel-size 0.02`)
}

// visited returns the names of the flags set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func handleFootprint(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("footprint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Configuration file (.yaml, .yml or .json)")
	cameraName := fs.String("camera", "", "Camera profile name (default FC330)")
	zMin := fs.Int("min", 0, "Minimum elevation in m (default 50)")
	zMax := fs.Int("max", 0, "Maximum elevation in m (default 200)")
	zStep := fs.Int("step", 0, "Elevation step in m (default 5)")
	save := fs.Bool("save", false, "Export the table as CSV")
	outputDir := fs.String("output-dir", "", "Directory for the exported table (default .)")
	tableName := fs.String("table-name", "", "Exported table name, .csv is appended (default footprint_table)")
	pngBase := fs.String("png", "", "Write PNG charts to <base>_footprint.png and <base>_gsd.png")
	htmlPath := fs.String("html", "", "Write an HTML chart page")
	debug := fs.Bool("debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	monitoring.SetDebug(*debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	set := visited(fs)
	if set["camera"] {
		cfg.Footprint.Camera = *cameraName
	}
	if set["min"] {
		cfg.Footprint.ElevationMin = *zMin
	}
	if set["max"] {
		cfg.Footprint.ElevationMax = *zMax
	}
	if set["step"] {
		cfg.Footprint.ElevationStep = *zStep
	}
	if set["save"] {
		cfg.Footprint.Export.Enabled = *save
	}
	if set["output-dir"] {
		cfg.Footprint.Export.OutputDir = *outputDir
	}
	if set["table-name"] {
		cfg.Footprint.Export.TableName = *tableName
	}
	if set["png"] {
		cfg.Footprint.Chart.PNG = *pngBase
	}
	if set["html"] {
		cfg.Footprint.Chart.HTML = *htmlPath
	}
	if err := cfg.ValidateFootprint(); err != nil {
		return err
	}

	reg, err := cfg.Registry()
	if err != nil {
		return err
	}
	profile, err := reg.Lookup(cfg.Footprint.Camera)
	if err != nil {
		return err
	}
	rng, err := cfg.ElevationRange()
	if err != nil {
		return err
	}
	monitoring.Debugf("footprint: camera=%s elevations=%d..%d step %d", profile.Name, rng.Min, rng.Max, rng.Step)

	tbl, err := footprint.BuildTable(profile, rng)
	if err != nil {
		return err
	}
	if err := footprint.WriteReport(stdout, tbl); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	// The report stands on its own; output failures are collected and
	// reported after it.
	var errs []error
	path, err := footprint.NewExporter(nil, cfg.ExportOptions()).Export(tbl)
	if err != nil {
		errs = append(errs, err)
	} else if path != "" {
		monitoring.Logf("Exported table to %s", path)
	}

	charts := chart.NewWriter(nil)
	if cfg.Footprint.Chart.PNG != "" {
		paths, err := charts.WritePNG(cfg.Footprint.Chart.PNG, tbl)
		if err != nil {
			errs = append(errs, err)
		}
		for _, p := range paths {
			monitoring.Logf("Wrote chart %s", p)
		}
	}
	if cfg.Footprint.Chart.HTML != "" {
		p, err := charts.WriteHTML(cfg.Footprint.Chart.HTML, tbl)
		if err != nil {
			errs = append(errs, err)
		} else {
			monitoring.Logf("Wrote chart %s", p)
		}
	}
	return errors.Join(errs...)
}

func handleShutter(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("shutter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Configuration file (.yaml, .yml or .json)")
	speed := fs.Float64("speed", 0, "Flight speed (default 10)")
	speedUnit := fs.String("speed-unit", "", "Flight speed unit: mps, mph, kmph or kph (default mps)")
	pixelSize := fs.Float64("pixel-size", 0, "Ground pixel size in m (default 0.05)")
	threshold := fs.Float64("threshold", 0, "Safety threshold in % (default 60)")
	debug := fs.Bool("debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	monitoring.SetDebug(*debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	set := visited(fs)
	if set["speed"] {
		cfg.Shutter.FlightSpeed = *speed
	}
	if set["speed-unit"] {
		cfg.Shutter.SpeedUnit = strings.ToLower(strings.TrimSpace(*speedUnit))
	}
	if set["pixel-size"] {
		cfg.Shutter.PixelSize = *pixelSize
	}
	if set["threshold"] {
		cfg.Shutter.SafetyThreshold = *threshold
	}
	if err := cfg.ValidateShutter(); err != nil {
		return err
	}

	in := cfg.ShutterInputs()
	res, err := shutter.Calculate(in)
	if err != nil {
		return err
	}
	if err := shutter.WriteReport(stdout, in, res); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func handleCameras(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cameras", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Configuration file (.yaml, .yml or .json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSENSOR (mm)\tFOCAL (mm)\tIMAGE (px)\tDESCRIPTION")
	for _, p := range reg.Profiles() {
		fmt.Fprintf(tw, "%s\t%gx%g\t%g\t%dx%d\t%s\n",
			p.Name, p.SensorWidth, p.SensorHeight, p.FocalLength, p.ImageWidth, p.ImageHeight, p.Description)
	}
	return tw.Flush()
}
