// Package testutil provides reusable test helper functions for test signal tests.
package testutil

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance     = 1e-10
	CorrelationTolerance = 1e-6
	RMSRelTolerance      = 0.03
	DBTolerance          = 0.01
)

// TB is the subset of testing.TB the assertions need.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
}

// NewRand returns a deterministic standard-normal source for tests.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t TB, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, fmt.Sprintf("found NaN: s[%d] is NaN", i), msgAndArgs...)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, fmt.Sprintf("found Inf: s[%d] is Inf", i), msgAndArgs...)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t TB, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, fmt.Sprintf("value out of range: s[%d]=%f is outside range [%f, %f]",
				i, v, minVal, maxVal), msgAndArgs...)
		}
	}
	return true
}

// AssertStrictlyIncreasing verifies that each element is greater than the previous one.
func AssertStrictlyIncreasing(t TB, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			return assert.Fail(t, fmt.Sprintf("not strictly increasing: s[%d]=%g <= s[%d]=%g",
				i, s[i], i-1, s[i-1]), msgAndArgs...)
		}
	}
	return true
}

// AssertNegated verifies b[i] == -a[i] exactly for every index.
func AssertNegated(t TB, a, b []float64) bool {
	t.Helper()
	if !assert.Len(t, b, len(a)) {
		return false
	}
	for i := range a {
		if b[i] != -a[i] {
			return assert.Fail(t, fmt.Sprintf("not negated: b[%d]=%g, want %g", i, b[i], -a[i]))
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t TB, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	if !(relError <= tolerance) {
		return assert.Fail(t, fmt.Sprintf("relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
			relError, tolerance, expected, actual), msgAndArgs...)
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t TB, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, fmt.Sprintf("value out of range: %f is outside range [%f, %f]",
			value, minVal, maxVal), msgAndArgs...)
	}
	return true
}
