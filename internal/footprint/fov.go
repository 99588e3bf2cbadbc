// Package footprint computes the ground footprint and ground sampling
// distance of survey images over a range of flight elevations.
//
// Footprints are reported in metres (the elevation unit), ground sampling
// distances in centimetres. Values are rounded half-to-even: footprints to
// 2 decimal places, resolutions to 1.
package footprint

import (
	"math"

	"github.com/banshee-data/survey-planner/internal/survey"
)

// FieldOfView returns the horizontal and vertical angular field of view in
// radians for a sensor of width sx and height sy behind a lens of focal
// length f. All three must be positive and in the same linear unit.
func FieldOfView(sx, sy, f float64) (hfov, vfov float64, err error) {
	for _, in := range []struct {
		field string
		v     float64
	}{
		{"sensor_width_mm", sx},
		{"sensor_height_mm", sy},
		{"focal_length_mm", f},
	} {
		if !(in.v > 0) || math.IsInf(in.v, 0) {
			return 0, 0, survey.InvalidField("camera."+in.field, "must be a positive number, got %g", in.v)
		}
	}
	hfov = 2 * math.Atan(sx/(2*f))
	vfov = 2 * math.Atan(sy/(2*f))
	return hfov, vfov, nil
}
