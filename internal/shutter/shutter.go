// Package shutter computes the minimum and safety-margined shutter exposure
// times for a camera moving over the ground at a given flight speed.
//
// The longest exposure that keeps motion blur under one ground pixel is the
// time the aircraft needs to travel one pixel: pixel size / flight speed.
// All arithmetic is done on exact rationals.
package shutter

import (
	"math"
	"math/big"
	"strings"

	"github.com/banshee-data/survey-planner/internal/monitoring"
	"github.com/banshee-data/survey-planner/internal/survey"
	"github.com/banshee-data/survey-planner/internal/units"
)

// Inputs describe one shutter-speed calculation.
type Inputs struct {
	FlightSpeed     float64 // in SpeedUnit
	SpeedUnit       string  // one of units.ValidUnits, empty means m/s
	PixelSize       float64 // ground sampling distance in m
	SafetyThreshold float64 // percentage in [0, 100)
}

// Result holds the exposure times in seconds.
type Result struct {
	FlightSpeedMPS *big.Rat
	Minimum        *big.Rat // pixel size / flight speed
	Margin         *big.Rat // (100 - threshold) / 100
	Ideal          *big.Rat // Margin * Minimum, denominator at most DefaultMaxDenominator
	Standard       Speed    // recommended camera marking, zero when none is fast enough
}

// MinimumSeconds returns the minimum exposure time as a float.
func (r Result) MinimumSeconds() float64 {
	f, _ := r.Minimum.Float64()
	return f
}

// IdealSeconds returns the ideal exposure time as a float.
func (r Result) IdealSeconds() float64 {
	f, _ := r.Ideal.Float64()
	return f
}

// Validate reports the first invalid input as a survey.FieldError.
func (in Inputs) Validate() error {
	if in.SpeedUnit != "" && !units.IsValid(strings.ToLower(in.SpeedUnit)) {
		return survey.InvalidField("shutter.speed_unit", "must be one of %s, got %q", units.GetValidUnitsString(), in.SpeedUnit)
	}
	if !(in.FlightSpeed > 0) || math.IsInf(in.FlightSpeed, 0) {
		return survey.InvalidField("shutter.flight_speed", "must be a positive finite number, got %v", in.FlightSpeed)
	}
	if !(in.PixelSize > 0) || math.IsInf(in.PixelSize, 0) {
		return survey.InvalidField("shutter.pixel_size", "must be a positive finite number, got %v", in.PixelSize)
	}
	if !(in.SafetyThreshold >= 0 && in.SafetyThreshold < 100) {
		return survey.InvalidField("shutter.safety_threshold", "must be in [0, 100), got %v", in.SafetyThreshold)
	}
	return nil
}

// Calculate returns the minimum and ideal exposure times for in.
func Calculate(in Inputs) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	unit := in.SpeedUnit
	if unit == "" {
		unit = units.MPS
	}
	factor, err := units.ToMPSFactor(strings.ToLower(unit))
	if err != nil {
		return Result{}, survey.InvalidField("shutter.speed_unit", "%v", err)
	}

	speed, err := DecimalRat(in.FlightSpeed)
	if err != nil {
		return Result{}, survey.InvalidField("shutter.flight_speed", "%v", err)
	}
	pixel, err := DecimalRat(in.PixelSize)
	if err != nil {
		return Result{}, survey.InvalidField("shutter.pixel_size", "%v", err)
	}
	threshold, err := DecimalRat(in.SafetyThreshold)
	if err != nil {
		return Result{}, survey.InvalidField("shutter.safety_threshold", "%v", err)
	}

	speedMPS := new(big.Rat).Mul(speed, factor)
	minimum := new(big.Rat).Quo(pixel, speedMPS)

	margin := new(big.Rat).Sub(big.NewRat(100, 1), threshold)
	margin.Quo(margin, big.NewRat(100, 1))

	ideal, err := LimitDenominator(new(big.Rat).Mul(margin, minimum), DefaultMaxDenominator)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		FlightSpeedMPS: speedMPS,
		Minimum:        minimum,
		Margin:         margin,
		Ideal:          ideal,
	}
	if std, ok := NearestStandardSpeed(ideal); ok {
		res.Standard = std
	}
	monitoring.Debugf("shutter: speed=%s m/s minimum=%s ideal=%s standard=%q",
		speedMPS.FloatString(3), FormatFraction(minimum), FormatFraction(ideal), res.Standard.Label)
	return res, nil
}
