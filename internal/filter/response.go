package filter

import (
	"math"
	"math/cmplx"
)

const (
	defaultResponsePoints = 512
	nyquistFraction       = 0.5
)

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies at which response was calculated (normalized, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64

	// Phase response at each frequency (radians)
	Phase []float64
}

// Response evaluates H(e^jω) at a normalized frequency (cycles per sample,
// 0 to 0.5).
func (f *ThirdOrder) Response(freq float64) complex128 {
	omega := 2 * math.Pi * freq
	z := cmplx.Exp(complex(0, -omega)) // z⁻¹ on the unit circle

	var num, den complex128
	zk := complex(1, 0)
	for k := range thirdOrder + 1 {
		num += complex(f.coeffs.B[k], 0) * zk
		den += complex(f.coeffs.A[k], 0) * zk
		zk *= z
	}
	return num / den
}

// MagnitudeAt returns |H| at frequency hz for the given sample rate.
func (f *ThirdOrder) MagnitudeAt(hz float64, sampleRate int) float64 {
	return cmplx.Abs(f.Response(hz / float64(sampleRate)))
}

// ComputeFrequencyResponse evaluates the filter at numPoints frequencies
// from DC up to (not including) Nyquist.
func (f *ThirdOrder) ComputeFrequencyResponse(numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := nyquistFraction * float64(k) / float64(numPoints)
		h := f.Response(freq)
		response.Frequencies[k] = freq
		response.Magnitude[k] = cmplx.Abs(h)
		response.Phase[k] = cmplx.Phase(h)
	}

	return response
}
