package shutter

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	in := Inputs{FlightSpeed: 10, PixelSize: 0.05, SafetyThreshold: 60}
	res, err := Calculate(in)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, in, res))
	out := buf.String()

	for _, want := range []string{
		"=     MINIMUM AND IDEAL SHUTTER SPEED CALCULATION     =",
		"For a flight speed of 10 m/s",
		"with a ground sampling distance of 0.05 m",
		"and a safety threshold of 60 %,",
		"the minimum shutter speed is 0.005 seconds",
		"-->  1/200\n",
		"-->  1/500 ideally",
		"Recommended camera setting: 1/500",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteReport_UnitAndNoStandard(t *testing.T) {
	in := Inputs{FlightSpeed: 36, SpeedUnit: "kmph", PixelSize: 0.05, SafetyThreshold: 60}
	res := Result{
		Minimum: big.NewRat(1, 200),
		Ideal:   big.NewRat(1, 500),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, in, res))
	assert.Contains(t, buf.String(), "For a flight speed of 36 km/h")
	assert.Contains(t, buf.String(), "No standard shutter speed is fast enough")
}
