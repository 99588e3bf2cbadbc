package shutter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/survey-planner/internal/units"
	"github.com/banshee-data/survey-planner/internal/version"
)

const reportTitle = "MINIMUM AND IDEAL SHUTTER SPEED CALCULATION"

// WriteReport writes the console report for a calculation to w.
func WriteReport(w io.Writer, in Inputs, res Result) error {
	bw := bufio.NewWriter(w)

	line := strings.Repeat("=", len(reportTitle)+12)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, line)
	fmt.Fprintf(bw, "=     %s     =\n", reportTitle)
	fmt.Fprintln(bw, line)
	fmt.Fprintf(bw, "    survey-planner %s\n\n", version.Version)

	fmt.Fprintf(bw, "For a flight speed of %s %s\n", formatFloat(in.FlightSpeed), units.Label(strings.ToLower(in.SpeedUnit)))
	fmt.Fprintf(bw, "with a ground sampling distance of %s m\n", formatFloat(in.PixelSize))
	fmt.Fprintf(bw, "and a safety threshold of %s %%,\n", formatFloat(in.SafetyThreshold))
	fmt.Fprintf(bw, "the minimum shutter speed is %s seconds\n\n", formatFloat(res.MinimumSeconds()))

	fmt.Fprintf(bw, "-->  %s\n\n", FormatFraction(res.Minimum))
	fmt.Fprintf(bw, "-->  %s ideally\n\n", FormatFraction(res.Ideal))

	if res.Standard.Label != "" {
		fmt.Fprintf(bw, "Recommended camera setting: %s\n", res.Standard.Label)
	} else {
		fmt.Fprintln(bw, "No standard shutter speed is fast enough; use the ideal value above.")
	}
	fmt.Fprintln(bw)

	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
