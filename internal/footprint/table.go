package footprint

import (
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/banshee-data/survey-planner/internal/camera"
	"github.com/banshee-data/survey-planner/internal/units"
)

// Column names, in export order.
const (
	ColElevation  = "Elevation"
	ColHFootprint = "h_footprint"
	ColVFootprint = "v_footprint"
	ColGSD        = "GSD"
	ColDEMGSD     = "DEM_GSD"
)

// Header is the column order of the report and the exported table.
var Header = []string{ColElevation, ColHFootprint, ColVFootprint, ColGSD, ColDEMGSD}

const (
	footprintDecimals  = 2
	resolutionDecimals = 1
)

// Row is the footprint and resolution of one image at one elevation.
type Row struct {
	Elevation  int     // m
	HFootprint float64 // m
	VFootprint float64 // m
	GSD        float64 // cm
	DEMGSD     float64 // cm
}

// Table holds one Row per elevation in ascending order together with the
// camera and field of view that produced it. It is not modified after
// BuildTable returns.
type Table struct {
	camera camera.Profile
	hfov   float64
	vfov   float64
	rows   []Row
}

// BuildTable computes the footprint table of profile over rng.
func BuildTable(profile camera.Profile, rng ElevationRange) (*Table, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	hfov, vfov, err := FieldOfView(profile.SensorWidth, profile.SensorHeight, profile.FocalLength)
	if err != nil {
		return nil, err
	}

	elevations := rng.Values()
	rows := make([]Row, 0, len(elevations))
	for _, z := range elevations {
		rows = append(rows, computeRow(z, hfov, vfov, profile.ImageHeight))
	}

	return &Table{camera: profile, hfov: hfov, vfov: vfov, rows: rows}, nil
}

func computeRow(z int, hfov, vfov float64, imageHeight int) Row {
	elev := float64(z)
	h := scalar.RoundEven(elev*hfov, footprintDecimals)
	v := scalar.RoundEven(elev*vfov, footprintDecimals)
	gsd := scalar.RoundEven(v/float64(imageHeight)*units.CentimetresPerMetre, resolutionDecimals)
	return Row{
		Elevation:  z,
		HFootprint: h,
		VFootprint: v,
		GSD:        gsd,
		DEMGSD:     scalar.RoundEven(2*gsd, resolutionDecimals),
	}
}

// Camera returns the profile the table was computed for.
func (t *Table) Camera() camera.Profile { return t.camera }

// HFOV returns the horizontal field of view in radians.
func (t *Table) HFOV() float64 { return t.hfov }

// VFOV returns the vertical field of view in radians.
func (t *Table) VFOV() float64 { return t.vfov }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of the rows in ascending elevation order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Row returns the row computed for elevation, if any.
func (t *Table) Row(elevation int) (Row, bool) {
	for _, r := range t.rows {
		if r.Elevation == elevation {
			return r, true
		}
	}
	return Row{}, false
}

// Column returns the values of the named column in row order, or nil for an
// unknown name.
func (t *Table) Column(name string) []float64 {
	pick := columnPicker(name)
	if pick == nil {
		return nil
	}
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		out[i] = pick(r)
	}
	return out
}

func columnPicker(name string) func(Row) float64 {
	switch name {
	case ColElevation:
		return func(r Row) float64 { return float64(r.Elevation) }
	case ColHFootprint:
		return func(r Row) float64 { return r.HFootprint }
	case ColVFootprint:
		return func(r Row) float64 { return r.VFootprint }
	case ColGSD:
		return func(r Row) float64 { return r.GSD }
	case ColDEMGSD:
		return func(r Row) float64 { return r.DEMGSD }
	default:
		return nil
	}
}
