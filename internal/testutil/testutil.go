// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"math"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertFloatNear checks that got is within tol of want.
func AssertFloatNear(t testing.TB, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

// AssertStrictlyIncreasing checks that every value is greater than the one
// before it.
func AssertStrictlyIncreasing(t testing.TB, name string, values []float64) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		if !(values[i] > values[i-1]) {
			t.Errorf("%s not strictly increasing at index %d: %v <= %v", name, i, values[i], values[i-1])
			return
		}
	}
}
