// Package analysis measures the properties the reference signals are
// calibrated for: sample peak, RMS, inter-channel correlation and octave
// band energy.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrUndefined indicates a measurement that has no value for the input,
// such as the correlation of a constant channel.
var ErrUndefined = errors.New("measurement undefined")

// Peak returns max|x|, or 0 for an empty slice.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, math.Inf(1))
}

// RMS returns the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(f64.DotProduct(x, x) / float64(len(x)))
}

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return f64.Sum(x) / float64(len(x))
}

// Correlation returns the Pearson correlation coefficient between x and y,
// the phase correlation a stereo meter displays: +1 for identical channels,
// -1 for inverted ones.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples, got %d", ErrUndefined, len(x))
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, fmt.Errorf("%w: a channel has zero variance", ErrUndefined)
	}
	return r, nil
}

// Report summarizes one signal.
type Report struct {
	Frames      int
	Peak        []float64 // per channel
	RMS         []float64 // per channel
	Correlation float64   // stereo only; NaN when undefined or mono
}

// Analyze measures each channel and, for two channels, their correlation.
// All channels must have the same length.
func Analyze(channels ...[]float64) (Report, error) {
	if len(channels) == 0 {
		return Report{}, errors.New("no channels to analyze")
	}

	report := Report{
		Frames:      len(channels[0]),
		Peak:        make([]float64, len(channels)),
		RMS:         make([]float64, len(channels)),
		Correlation: math.NaN(),
	}
	for ch, samples := range channels {
		if len(samples) != report.Frames {
			return Report{}, fmt.Errorf("channel %d has %d samples, want %d", ch, len(samples), report.Frames)
		}
		report.Peak[ch] = Peak(samples)
		report.RMS[ch] = RMS(samples)
	}

	if len(channels) == 2 {
		r, err := Correlation(channels[0], channels[1])
		if err != nil && !errors.Is(err, ErrUndefined) {
			return Report{}, err
		}
		if err == nil {
			report.Correlation = r
		}
	}

	return report, nil
}
