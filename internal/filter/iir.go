// Package filter provides the recursive filters used to color noise.
package filter

import (
	"fmt"
	"math"
)

const (
	// Order of the pink noise filter; also the number of leading output
	// samples that are never evaluated.
	thirdOrder = 3

	// Tolerance for the a[0] == 1 normalization check
	leadingCoeffTolerance = 1e-12
)

// Pink noise filter coefficients (feed-forward b, feedback a).
// Approximates a -3 dB/octave slope over the audio band at 44.1 kHz.
var (
	pinkB = [thirdOrder + 1]float64{0.049922035, -0.095993537, 0.050612699, -0.004408786}
	pinkA = [thirdOrder + 1]float64{1, -2.494956002, 2.017265875, -0.522189400}
)

// Coefficients holds the transfer function of a third-order IIR filter:
//
//	H(z) = (b0 + b1·z⁻¹ + b2·z⁻² + b3·z⁻³) / (a0 + a1·z⁻¹ + a2·z⁻² + a3·z⁻³)
//
// a0 must be 1.
type Coefficients struct {
	B [thirdOrder + 1]float64
	A [thirdOrder + 1]float64
}

// PinkCoefficients returns the fixed pink-noise coloring filter.
func PinkCoefficients() Coefficients {
	return Coefficients{B: pinkB, A: pinkA}
}

// Validate checks that all coefficients are finite and a0 is normalized.
func (c *Coefficients) Validate() error {
	for i, v := range c.B {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid feed-forward coefficient b[%d]: %v", i, v)
		}
	}
	for i, v := range c.A {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid feedback coefficient a[%d]: %v", i, v)
		}
	}
	if math.Abs(c.A[0]-1) > leadingCoeffTolerance {
		return fmt.Errorf("feedback coefficients not normalized: a[0] = %v (must be 1)", c.A[0])
	}
	return nil
}

// ThirdOrder is a Direct Form I third-order IIR filter.
type ThirdOrder struct {
	coeffs Coefficients
}

// NewThirdOrder validates coeffs and returns a filter.
func NewThirdOrder(coeffs Coefficients) (*ThirdOrder, error) {
	if err := coeffs.Validate(); err != nil {
		return nil, err
	}
	return &ThirdOrder{coeffs: coeffs}, nil
}

// Order returns the filter order.
func (f *ThirdOrder) Order() int { return thirdOrder }

// Coefficients returns the filter's transfer function.
func (f *ThirdOrder) Coefficients() Coefficients { return f.coeffs }

// Apply filters x and returns a new slice of the same length.
//
// The recurrence
//
//	y[i] = b0·x[i] + b1·x[i-1] + b2·x[i-2] + b3·x[i-3] - a1·y[i-1] - a2·y[i-2] - a3·y[i-3]
//
// is evaluated for i ≥ 3 only. y[0..2] stay zero and serve as the initial
// feedback state, so the output has a three-sample silent head. Inputs of
// three samples or fewer produce all zeros.
func (f *ThirdOrder) Apply(x []float64) []float64 {
	y := make([]float64, len(x))
	if len(x) <= thirdOrder {
		return y
	}

	b0, b1, b2, b3 := f.coeffs.B[0], f.coeffs.B[1], f.coeffs.B[2], f.coeffs.B[3]
	a1, a2, a3 := f.coeffs.A[1], f.coeffs.A[2], f.coeffs.A[3]

	// Last three inputs and outputs
	x1, x2, x3 := x[2], x[1], x[0]
	var y1, y2, y3 float64

	for i := thirdOrder; i < len(x); i++ {
		x0 := x[i]
		// Explicit conversions keep each product rounded on its own so no
		// platform fuses them into FMA and output stays bit-identical.
		y0 := float64(b0*x0) + float64(b1*x1) + float64(b2*x2) + float64(b3*x3) -
			float64(a1*y1) - float64(a2*y2) - float64(a3*y3)
		y[i] = y0

		x3, x2, x1 = x2, x1, x0
		y3, y2, y1 = y2, y1, y0
	}

	return y
}
