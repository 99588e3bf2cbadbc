package footprint

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/banshee-data/survey-planner/internal/version"
)

const reportTitle = "Table of footprint and ground sampling distance for aerial survey planning"

// WriteReport writes the human-readable footprint report for t to w: banner,
// camera identification, field of view, the row table and a legend.
func WriteReport(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	cam := t.Camera()

	banner(bw, reportTitle)
	fmt.Fprintf(bw, "    survey-planner %s\n\n", version.Version)

	if cam.Description != "" {
		fmt.Fprintf(bw, "CAMERA USED: %s\n", cam.Description)
	}
	fmt.Fprintf(bw, "CAMERA MODEL: %s\n", cam.Name)
	fmt.Fprintf(bw, "IMAGE SIZE: %dx%d pixels\n", cam.ImageWidth, cam.ImageHeight)
	fmt.Fprintf(bw, "FOCAL LENGTH: %s mm\n\n", strconv.FormatFloat(cam.FocalLength, 'f', -1, 64))

	fmt.Fprintf(bw, "Calculated horizontal field of view:\n   %s rad\n", formatAngle(t.HFOV()))
	fmt.Fprintf(bw, "Calculated vertical field of view:\n   %s rad\n\n", formatAngle(t.VFOV()))

	fmt.Fprintln(bw, "CALCULATED TABLE")
	fmt.Fprintln(bw, "----------------")
	fmt.Fprintln(bw)
	if err := writeRows(bw, t); err != nil {
		return err
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "TABLE LEGEND:")
	fmt.Fprintln(bw, "--> 'Elevation' is the distance from the camera to the ground (in m)")
	fmt.Fprintln(bw, "--> 'h_footprint' is the horizontal footprint (in m)")
	fmt.Fprintln(bw, "--> 'v_footprint' is the vertical footprint (in m)")
	fmt.Fprintln(bw, "--> 'GSD' is the ground sampling distance or image pixel resolution (in cm)")
	fmt.Fprintln(bw, "--> 'DEM_GSD' is the expected maximum resolution of a derived DEM (in cm)")
	fmt.Fprintln(bw)

	return bw.Flush()
}

func writeRows(w io.Writer, t *Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(Header, "\t")+"\t")
	for _, r := range t.rows {
		fmt.Fprintln(tw, strings.Join(formatRow(r), "\t")+"\t")
	}
	return tw.Flush()
}

// formatRow renders r with the precision each column is rounded to.
func formatRow(r Row) []string {
	return []string{
		strconv.Itoa(r.Elevation),
		strconv.FormatFloat(r.HFootprint, 'f', footprintDecimals, 64),
		strconv.FormatFloat(r.VFootprint, 'f', footprintDecimals, 64),
		strconv.FormatFloat(r.GSD, 'f', resolutionDecimals, 64),
		strconv.FormatFloat(r.DEMGSD, 'f', resolutionDecimals, 64),
	}
}

func formatAngle(rad float64) string {
	return strconv.FormatFloat(scalar.RoundEven(rad, 3), 'f', 3, 64)
}

func banner(w io.Writer, title string) {
	line := strings.Repeat("=", len(title)+8)
	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "=   %s   =\n", title)
	fmt.Fprintln(w, line)
}
