package shutter

import (
	"math/big"
	"sort"
)

// Speed is a shutter speed as marked on a camera dial.
type Speed struct {
	Label   string
	Seconds *big.Rat
}

// thirdStops lists the common third-stop shutter markings from 1/8000 s to
// 1 s, fastest first.
var thirdStops = buildThirdStops()

func buildThirdStops() []Speed {
	denominators := []int64{
		8000, 6400, 5000, 4000, 3200, 2500, 2000, 1600, 1250, 1000,
		800, 640, 500, 400, 320, 250, 200, 160, 125, 100,
		80, 60, 50, 40, 30, 25, 20, 15, 13, 10,
		8, 6, 5, 4,
	}
	speeds := make([]Speed, 0, len(denominators)+6)
	for _, d := range denominators {
		r := big.NewRat(1, d)
		speeds = append(speeds, Speed{Label: FormatFraction(r), Seconds: r})
	}
	for _, tenths := range []int64{3, 4, 5, 6, 8} {
		r := big.NewRat(tenths, 10)
		speeds = append(speeds, Speed{Label: r.FloatString(1) + `"`, Seconds: r})
	}
	speeds = append(speeds, Speed{Label: `1"`, Seconds: big.NewRat(1, 1)})
	return speeds
}

// StandardSpeeds returns a copy of the third-stop markings, fastest first.
func StandardSpeeds() []Speed {
	out := make([]Speed, len(thirdStops))
	for i, s := range thirdStops {
		out[i] = Speed{Label: s.Label, Seconds: new(big.Rat).Set(s.Seconds)}
	}
	return out
}

// NearestStandardSpeed returns the slowest standard marking whose exposure
// time does not exceed limit. ok is false when even 1/8000 s is too slow.
func NearestStandardSpeed(limit *big.Rat) (Speed, bool) {
	// first marking strictly slower than limit
	i := sort.Search(len(thirdStops), func(i int) bool {
		return thirdStops[i].Seconds.Cmp(limit) > 0
	})
	if i == 0 {
		return Speed{}, false
	}
	s := thirdStops[i-1]
	return Speed{Label: s.Label, Seconds: new(big.Rat).Set(s.Seconds)}, true
}
