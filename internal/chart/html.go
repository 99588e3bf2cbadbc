package chart

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/survey-planner/internal/footprint"
	"github.com/banshee-data/survey-planner/internal/monitoring"
	"github.com/banshee-data/survey-planner/internal/security"
	"github.com/banshee-data/survey-planner/internal/survey"
)

// RenderHTML writes a page with a footprint chart and a GSD chart for t.
func RenderHTML(out io.Writer, t *footprint.Table) error {
	cam := t.Camera()
	elev := t.Column(footprint.ColElevation)
	xs := make([]string, len(elev))
	for i, z := range elev {
		xs[i] = strconv.FormatFloat(z, 'f', -1, 64)
	}

	fp := newLineChart(
		fmt.Sprintf("%s - Image footprint", cam.Name),
		fmt.Sprintf("hfov=%.3f rad vfov=%.3f rad", t.HFOV(), t.VFOV()),
		"Footprint (m)",
	)
	fp.SetXAxis(xs).
		AddSeries("h_footprint", lineData(t.Column(footprint.ColHFootprint))).
		AddSeries("v_footprint", lineData(t.Column(footprint.ColVFootprint)))

	gsd := newLineChart(
		fmt.Sprintf("%s - Ground sampling distance", cam.Name),
		fmt.Sprintf("image %dx%d px", cam.ImageWidth, cam.ImageHeight),
		"GSD (cm)",
	)
	gsd.SetXAxis(xs).
		AddSeries("GSD", lineData(t.Column(footprint.ColGSD))).
		AddSeries("DEM_GSD", lineData(t.Column(footprint.ColDEMGSD)))

	page := components.NewPage()
	page.SetPageTitle(fmt.Sprintf("Survey planning - %s", cam.Name))
	page.AddCharts(fp, gsd)
	return page.Render(out)
}

func newLineChart(title, subtitle, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Elevation (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, NameLocation: "middle", NameGap: 40}),
	)
	return line
}

func lineData(vals []float64) []opts.LineData {
	data := make([]opts.LineData, len(vals))
	for i, v := range vals {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

// WriteHTML renders t to path (".html" appended when missing) and returns the
// written path.
func (w *Writer) WriteHTML(path string, t *footprint.Table) (string, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	out, err := security.ExportPath(dir, name, ".html")
	if err != nil {
		return "", survey.IOError("resolve chart path", err)
	}
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return "", survey.IOError("create chart directory", err)
	}

	f, err := w.fs.Create(out)
	if err != nil {
		return "", survey.IOError("create "+out, err)
	}
	if err := RenderHTML(f, t); err != nil {
		f.Close()
		return "", survey.IOError("write "+out, err)
	}
	if err := f.Close(); err != nil {
		return "", survey.IOError("close "+out, err)
	}
	monitoring.Debugf("wrote chart %s", out)
	return out, nil
}
