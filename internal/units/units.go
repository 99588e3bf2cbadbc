// Package units provides shared constants, validation and conversion for the
// units survey inputs are given in.
package units

import (
	"fmt"
	"math/big"
	"strings"
)

// Speed unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// CentimetresPerMetre converts footprints (m) into ground sampling
// distances (cm).
const CentimetresPerMetre = 100

// ValidUnits contains all valid speed unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// Label returns the human-readable symbol for a speed unit.
func Label(unit string) string {
	switch unit {
	case MPH:
		return "mph"
	case KMPH, KPH:
		return "km/h"
	default:
		return "m/s"
	}
}

// ToMPSFactor returns the exact factor that converts a speed in unit to m/s.
// 1 mph is 0.44704 m/s by definition, 1 km/h is 5/18 m/s.
func ToMPSFactor(unit string) (*big.Rat, error) {
	switch unit {
	case MPS:
		return big.NewRat(1, 1), nil
	case MPH:
		return big.NewRat(44704, 100000), nil
	case KMPH, KPH:
		return big.NewRat(5, 18), nil
	default:
		return nil, fmt.Errorf("unknown speed unit %q (valid: %s)", unit, GetValidUnitsString())
	}
}
