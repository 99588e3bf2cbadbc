package footprint

import "github.com/banshee-data/survey-planner/internal/survey"

const (
	// MaxElevation bounds both ends of a range, in metres.
	MaxElevation = 100_000
	// MaxRows bounds the number of elevations a range may yield.
	MaxRows = 100_000
)

// ElevationRange is an ascending, inclusive sequence of flight elevations in
// metres.
type ElevationRange struct {
	Min  int
	Max  int
	Step int
}

// NewElevationRange validates and returns the range zMin..zMax by zStep.
func NewElevationRange(zMin, zMax, zStep int) (ElevationRange, error) {
	r := ElevationRange{Min: zMin, Max: zMax, Step: zStep}
	if err := r.Validate(); err != nil {
		return ElevationRange{}, err
	}
	return r, nil
}

// Validate rejects non-positive steps, negative elevations, inverted bounds
// and ranges beyond MaxElevation or MaxRows.
func (r ElevationRange) Validate() error {
	if r.Step <= 0 {
		return survey.InvalidField("footprint.elevation_step", "must be > 0, got %d", r.Step)
	}
	if r.Min < 0 {
		return survey.InvalidField("footprint.elevation_min", "must be >= 0, got %d", r.Min)
	}
	if r.Min > r.Max {
		return survey.InvalidField("footprint.elevation_max", "must be >= elevation_min (%d), got %d", r.Min, r.Max)
	}
	if r.Max > MaxElevation {
		return survey.InvalidField("footprint.elevation_max", "must be <= %d, got %d", MaxElevation, r.Max)
	}
	if n := r.count(); n > MaxRows {
		return survey.InvalidField("footprint.elevation_max", "range yields %d rows, at most %d allowed", n, MaxRows)
	}
	return nil
}

// count is the number of values in a range with Min >= 0 and Max >= Min.
func (r ElevationRange) count() int {
	return (r.Max-r.Min)/r.Step + 1
}

// Values returns Min, Min+Step, ... up to the largest value not above Max.
// Max itself is included whenever Max-Min is a multiple of Step. An invalid
// range yields nil.
func (r ElevationRange) Values() []int {
	if r.Validate() != nil {
		return nil
	}
	n := r.count()
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.Min+i*r.Step)
	}
	return out
}
