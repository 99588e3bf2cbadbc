package shutter

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// DefaultMaxDenominator bounds the denominator of the ideal exposure time.
const DefaultMaxDenominator = 1_000_000

// DecimalRat returns the exact rational denoted by the shortest decimal
// representation of v, so 0.05 becomes 1/20 rather than the binary
// approximation of 0.05.
func DecimalRat(v float64) (*big.Rat, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("not a finite number: %v", v)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("cannot parse %q as a rational", s)
	}
	return r, nil
}

// LimitDenominator returns the closest rational to x whose denominator is at
// most maxDen. x must be non-negative. When two candidates are equally close
// the one from the continued fraction convergent wins.
func LimitDenominator(x *big.Rat, maxDen int64) (*big.Rat, error) {
	if maxDen < 1 {
		return nil, fmt.Errorf("max denominator must be at least 1, got %d", maxDen)
	}
	if x.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s", x.RatString())
	}
	limit := big.NewInt(maxDen)
	if x.Denom().Cmp(limit) <= 0 {
		return new(big.Rat).Set(x), nil
	}

	p0, q0 := big.NewInt(0), big.NewInt(1)
	p1, q1 := big.NewInt(1), big.NewInt(0)
	n := new(big.Int).Set(x.Num())
	d := new(big.Int).Set(x.Denom())

	a := new(big.Int)
	q2 := new(big.Int)
	for {
		a.Div(n, d)
		q2.Mul(a, q1).Add(q2, q0)
		if q2.Cmp(limit) > 0 {
			break
		}
		p2 := new(big.Int).Mul(a, p1)
		p2.Add(p2, p0)
		p0, q0, p1, q1 = p1, q1, p2, new(big.Int).Set(q2)

		r := new(big.Int).Mul(a, d)
		n, d = d, r.Sub(n, r)
	}

	// k = (maxDen - q0) / q1
	k := new(big.Int).Sub(limit, q0)
	k.Div(k, q1)

	bn := new(big.Int).Mul(k, p1)
	bn.Add(bn, p0)
	bd := new(big.Int).Mul(k, q1)
	bd.Add(bd, q0)
	bound1 := new(big.Rat).SetFrac(bn, bd)
	bound2 := new(big.Rat).SetFrac(p1, q1)

	dist1 := new(big.Rat).Sub(bound1, x)
	dist1.Abs(dist1)
	dist2 := new(big.Rat).Sub(bound2, x)
	dist2.Abs(dist2)
	if dist2.Cmp(dist1) <= 0 {
		return bound2, nil
	}
	return bound1, nil
}

// FormatFraction renders r as "numerator/denominator" in lowest terms, keeping
// the "/1" for whole numbers.
func FormatFraction(r *big.Rat) string {
	return r.Num().String() + "/" + r.Denom().String()
}
