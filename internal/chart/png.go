// Package chart renders footprint tables as PNG line plots (gonum/plot) and
// as an interactive HTML page (go-echarts).
package chart

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/survey-planner/internal/footprint"
	"github.com/banshee-data/survey-planner/internal/fsutil"
	"github.com/banshee-data/survey-planner/internal/monitoring"
	"github.com/banshee-data/survey-planner/internal/security"
	"github.com/banshee-data/survey-planner/internal/survey"
)

const (
	pngWidth  = 10 * vg.Inch
	pngHeight = 6 * vg.Inch
)

var (
	horizontalColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	verticalColor   = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// Writer writes charts through a FileSystem.
type Writer struct {
	fs fsutil.FileSystem
}

// NewWriter returns a Writer using fs (the OS filesystem when nil).
func NewWriter(fs fsutil.FileSystem) *Writer {
	if fs == nil {
		fs = fsutil.OSFileSystem{}
	}
	return &Writer{fs: fs}
}

// FootprintPlot plots the horizontal and vertical footprints against
// elevation.
func FootprintPlot(t *footprint.Table) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - Image footprint", t.Camera().Name)
	p.X.Label.Text = "Elevation (m)"
	p.Y.Label.Text = "Footprint (m)"

	if err := addLine(p, "h_footprint", t, footprint.ColHFootprint, horizontalColor); err != nil {
		return nil, err
	}
	if err := addLine(p, "v_footprint", t, footprint.ColVFootprint, verticalColor); err != nil {
		return nil, err
	}
	placeLegend(p)
	return p, nil
}

// GSDPlot plots the image and DEM ground sampling distances against
// elevation.
func GSDPlot(t *footprint.Table) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - Ground sampling distance", t.Camera().Name)
	p.X.Label.Text = "Elevation (m)"
	p.Y.Label.Text = "GSD (cm)"

	if err := addLine(p, "GSD", t, footprint.ColGSD, horizontalColor); err != nil {
		return nil, err
	}
	if err := addLine(p, "DEM_GSD", t, footprint.ColDEMGSD, verticalColor); err != nil {
		return nil, err
	}
	placeLegend(p)
	return p, nil
}

func addLine(p *plot.Plot, label string, t *footprint.Table, col string, c color.Color) error {
	elev := t.Column(footprint.ColElevation)
	ys := t.Column(col)
	pts := make(plotter.XYs, len(elev))
	for i := range elev {
		pts[i] = plotter.XY{X: elev[i], Y: ys[i]}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to create %s line: %w", label, err)
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

func placeLegend(p *plot.Plot) {
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = 10
	p.Legend.YOffs = -10
}

// WritePNG writes <base>_footprint.png and <base>_gsd.png and returns their
// paths. A ".png" suffix on base is ignored.
func (w *Writer) WritePNG(base string, t *footprint.Table) ([]string, error) {
	base = strings.TrimSuffix(base, ".png")
	dir, name := filepath.Split(base)
	if dir == "" {
		dir = "."
	}

	plots := []struct {
		suffix string
		build  func(*footprint.Table) (*plot.Plot, error)
	}{
		{"_footprint", FootprintPlot},
		{"_gsd", GSDPlot},
	}

	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return nil, survey.IOError("create chart directory", err)
	}

	var paths []string
	for _, pl := range plots {
		path, err := security.ExportPath(dir, name+pl.suffix, ".png")
		if err != nil {
			return paths, survey.IOError("resolve chart path", err)
		}
		p, err := pl.build(t)
		if err != nil {
			return paths, err
		}
		if err := w.savePlot(p, path); err != nil {
			return paths, err
		}
		monitoring.Debugf("wrote chart %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

func (w *Writer) savePlot(p *plot.Plot, path string) error {
	wt, err := p.WriterTo(pngWidth, pngHeight, "png")
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	f, err := w.fs.Create(path)
	if err != nil {
		return survey.IOError("create "+path, err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return survey.IOError("write "+path, err)
	}
	if err := f.Close(); err != nil {
		return survey.IOError("close "+path, err)
	}
	return nil
}
