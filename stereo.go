package testsignal

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
)

// NewStereo pairs two mono signals. Both must have the same length and
// sample rate.
func NewStereo(left, right Mono) (Stereo, error) {
	if left.SampleRate <= 0 {
		return Stereo{}, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidParameter, left.SampleRate)
	}
	if left.SampleRate != right.SampleRate {
		return Stereo{}, fmt.Errorf("%w: channel sample rates differ (%d vs %d)",
			ErrInvalidParameter, left.SampleRate, right.SampleRate)
	}
	if len(left.Samples) != len(right.Samples) {
		return Stereo{}, fmt.Errorf("%w: channel lengths differ (%d vs %d)",
			ErrInvalidParameter, len(left.Samples), len(right.Samples))
	}
	return Stereo{left: left, right: right}, nil
}

// Duplicate returns a stereo signal with Right identical to Left
// (correlation +1). The right channel is a copy, not an alias.
func Duplicate(m Mono) Stereo {
	right := make([]float64, len(m.Samples))
	copy(right, m.Samples)
	return Stereo{
		left:  m,
		right: Mono{Samples: right, SampleRate: m.SampleRate},
	}
}

// Invert returns a stereo signal with Right = -Left sample for sample
// (correlation -1).
func Invert(m Mono) Stereo {
	right := make([]float64, len(m.Samples))
	f64.Scale(right, m.Samples, -1)
	return Stereo{
		left:  m,
		right: Mono{Samples: right, SampleRate: m.SampleRate},
	}
}

// Independent pairs two separately generated signals, typically two pink
// noise draws from the same source (correlation near zero).
func Independent(left, right Mono) (Stereo, error) {
	return NewStereo(left, right)
}

// ScaledPlusNoise returns a stereo signal with Right = Left·scale + noise.
//
// noise is expected to be drawn independently of left at the desired mix
// level (amplitude·m for mix fraction m); the larger it is relative to
// scale, the lower the inter-channel correlation.
func ScaledPlusNoise(left Mono, scale float64, noise Mono) (Stereo, error) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Stereo{}, fmt.Errorf("%w: scale must be finite, got %v", ErrInvalidParameter, scale)
	}
	if _, err := NewStereo(left, noise); err != nil {
		return Stereo{}, fmt.Errorf("noise does not match signal: %w", err)
	}

	right := make([]float64, len(left.Samples))
	f64.Scale(right, left.Samples, scale)
	for i, n := range noise.Samples {
		right[i] += n
	}

	return Stereo{
		left:  left,
		right: Mono{Samples: right, SampleRate: left.SampleRate},
	}, nil
}

// InterleaveToStereo interleaves two equal-length channels: L0,R0,L1,R1,...
// Extra samples in the longer slice are ignored.
func InterleaveToStereo(left, right []float64) []float64 {
	minLen := min(len(left), len(right))
	result := make([]float64, minLen*stereoChannels)
	f64.Interleave2(result, left[:minLen], right[:minLen])
	return result
}

// DeinterleaveFromStereo splits an interleaved stereo buffer into two channels.
func DeinterleaveFromStereo(interleaved []float64) (left, right []float64) {
	numSamples := len(interleaved) / stereoChannels
	left = make([]float64, numSamples)
	right = make([]float64, numSamples)
	for i := range numSamples {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
