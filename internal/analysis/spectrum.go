package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const octaveRatio = 2.0

// Band is a frequency interval [Low, High) in Hz.
type Band struct {
	Low  float64
	High float64
}

// Center returns the geometric center frequency of the band.
func (b Band) Center() float64 {
	return math.Sqrt(b.Low * b.High)
}

// OctaveBands returns count consecutive octave bands starting at lowest Hz.
func OctaveBands(lowest float64, count int) []Band {
	bands := make([]Band, count)
	low := lowest
	for i := range count {
		bands[i] = Band{Low: low, High: low * octaveRatio}
		low *= octaveRatio
	}
	return bands
}

// BandPower returns the energy of x in each band, computed from a single
// real FFT over the whole signal. Values are relative (unnormalized |X|²
// sums); compare them against each other.
func BandPower(x []float64, sampleRate int, bands []Band) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: empty signal", ErrUndefined)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	fft := fourier.NewFFT(len(x))
	coeffs := fft.Coefficients(nil, x)

	power := make([]float64, len(bands))
	for k, c := range coeffs {
		freq := fft.Freq(k) * float64(sampleRate)
		mag := cmplx.Abs(c)
		for i, b := range bands {
			if freq >= b.Low && freq < b.High {
				power[i] += mag * mag
			}
		}
	}

	return power, nil
}
