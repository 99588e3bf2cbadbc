package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/survey-planner/internal/footprint"
	"github.com/banshee-data/survey-planner/internal/monitoring"
)

// captureLogs routes monitoring output into a buffer for the duration of
// the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	monitoring.SetLogger(func(format string, v ...interface{}) {
		fmt.Fprintf(&buf, format+"\n", v...)
	})
	t.Cleanup(func() {
		monitoring.SetLogger(nil)
		monitoring.SetDebug(false)
	})
	return &buf
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_NoArgs(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Usage: survey <command>")
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "orbit")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Unknown command: orbit")
}

func TestRun_HelpAndVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "footprint")
	assert.Contains(t, stdout, "shutter")

	code, stdout, _ = runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "survey-planner version "))

	code, _, _ = runCLI(t, "footprint", "-h")
	assert.Equal(t, 0, code)
}

func TestFootprint_Defaults(t *testing.T) {
	captureLogs(t)
	code, stdout, stderr := runCLI(t, "footprint")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "CAMERA MODEL: FC330")
	assert.Contains(t, stdout, "1.427 rad")

	// 50..200 every 5 m
	table := stdout[strings.Index(stdout, "CALCULATED TABLE"):strings.Index(stdout, "TABLE LEGEND:")]
	rows := 0
	for _, line := range strings.Split(table, "\n") {
		if f := strings.Fields(line); len(f) == 5 && f[0] != "Elevation" {
			rows++
		}
	}
	assert.Equal(t, 31, rows)
}

func TestFootprint_SaveAndCharts(t *testing.T) {
	logs := captureLogs(t)
	dir := t.TempDir()

	code, stdout, stderr := runCLI(t, "footprint",
		"--min", "50", "--max", "200", "--step", "50",
		"--save", "--output-dir", dir, "--table-name", "table_test_Phantom4",
		"--png", filepath.Join(dir, "p4"), "--html", filepath.Join(dir, "p4.html"))
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "285.33")

	f, err := os.Open(filepath.Join(dir, "table_test_Phantom4.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := footprint.ReadTable(f)
	require.NoError(t, err)
	want := []footprint.Row{
		{Elevation: 50, HFootprint: 71.33, VFootprint: 57.57, GSD: 1.9, DEMGSD: 3.8},
		{Elevation: 100, HFootprint: 142.67, VFootprint: 115.13, GSD: 3.8, DEMGSD: 7.6},
		{Elevation: 150, HFootprint: 214.00, VFootprint: 172.70, GSD: 5.8, DEMGSD: 11.6},
		{Elevation: 200, HFootprint: 285.33, VFootprint: 230.27, GSD: 7.7, DEMGSD: 15.4},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("exported rows mismatch (-want +got):\n%s", diff)
	}

	for _, name := range []string{"p4_footprint.png", "p4_gsd.png", "p4.html"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.Contains(t, logs.String(), "Exported table to")
}

func TestFootprint_ExportFailureAfterReport(t *testing.T) {
	captureLogs(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	code, stdout, stderr := runCLI(t, "footprint", "--save", "--output-dir", blocker)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "CALCULATED TABLE", "report is printed before the export fails")
	assert.Contains(t, stderr, "io error")
}

func TestFootprint_InvalidInput(t *testing.T) {
	captureLogs(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero step", []string{"--step", "0"}, "footprint.elevation_step"},
		{"inverted range", []string{"--min", "300"}, "footprint.elevation_max"},
		{"huge range", []string{"--min", "0", "--max", "9223372036854775807", "--step", "1"}, "footprint.elevation_max"},
		{"too many rows", []string{"--min", "0", "--max", "100000", "--step", "1"}, "footprint.elevation_max"},
		{"unknown camera", []string{"--camera", "hasselblad"}, "unknown camera"},
		{"bad flag", []string{"--altitude", "3"}, "flag provided but not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, append([]string{"footprint"}, tt.args...)...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestFootprint_ConfigAndEnv(t *testing.T) {
	captureLogs(t)
	cfgPath := filepath.Join(t.TempDir(), "survey.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("footprint:\n  elevation_min: 100\n  elevation_max: 100\n"), 0644))
	t.Setenv("SURVEY_FOOTPRINT_ELEVATION_STEP", "10")

	code, stdout, stderr := runCLI(t, "footprint", "--config", cfgPath, "--max", "120")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "142.67")
	assert.Contains(t, stdout, "171.20")
	assert.NotContains(t, stdout, "71.33")
}

func TestCommands_ValidateOwnSection(t *testing.T) {
	captureLogs(t)
	t.Setenv("SURVEY_SHUTTER_FLIGHT_SPEED", "0")
	t.Setenv("SURVEY_FOOTPRINT_ELEVATION_STEP", "0")

	code, _, stderr := runCLI(t, "footprint", "--step", "50")
	assert.Equal(t, 0, code, stderr)

	code, _, stderr = runCLI(t, "shutter", "--speed", "10")
	assert.Equal(t, 0, code, stderr)

	code, _, stderr = runCLI(t, "shutter")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "shutter.flight_speed")
	assert.NotContains(t, stderr, "footprint")
}

func TestShutter_Defaults(t *testing.T) {
	captureLogs(t)
	code, stdout, stderr := runCLI(t, "shutter")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "the minimum shutter speed is 0.005 seconds")
	assert.Contains(t, stdout, "-->  1/200\n")
	assert.Contains(t, stdout, "-->  1/500 ideally")
}

func TestShutter_Flags(t *testing.T) {
	captureLogs(t)
	code, stdout, stderr := runCLI(t, "shutter", "--speed", "36", "--speed-unit", "KMPH", "--pixel-size", "0.03", "--threshold", "0")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "For a flight speed of 36 km/h")
	assert.Contains(t, stdout, "-->  3/1000\n")
	assert.Contains(t, stdout, "-->  3/1000 ideally")
}

func TestShutter_Invalid(t *testing.T) {
	captureLogs(t)
	code, stdout, stderr := runCLI(t, "shutter", "--speed", "0")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "shutter.flight_speed")

	code, _, stderr = runCLI(t, "shutter", "--threshold", "100")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "shutter.safety_threshold")
}

func TestCameras(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "survey.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`cameras:
  - name: FC6310
    description: Camera of the DJI Phantom 4 Pro
    sensor_width_mm: 13.2
    sensor_height_mm: 8.8
    focal_length_mm: 8.8
    image_width_px: 5472
    image_height_px: 3648
`), 0644))

	code, stdout, stderr := runCLI(t, "cameras", "--config", cfgPath)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "FC330")
	assert.Contains(t, stdout, "6.24768x4.68576")
	assert.Contains(t, stdout, "FC6310")
	assert.Contains(t, stdout, "5472x3648")
	assert.Less(t, strings.Index(stdout, "FC330"), strings.Index(stdout, "FC6310"))
}
