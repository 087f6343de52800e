package testsignal

import (
	"fmt"

	"github.com/tphakala/go-audio-testsignals/internal/filter"
)

// NormalSource yields independent standard-normal draws.
// *math/rand/v2.Rand and *math/rand.Rand both satisfy it.
type NormalSource interface {
	NormFloat64() float64
}

// GeneratePinkNoise returns approximately 1/f noise whose sample peak is
// exactly amplitude.
//
// White Gaussian noise drawn from src is shaped by a fixed third-order IIR
// filter (see [filter.PinkCoefficients]). The first three output samples are
// not filtered and stay zero, so every pink-noise signal starts with a short
// silent transient; reference files depend on it.
//
// src is advanced by floor(sampleRate·duration) draws. Returns
// ErrDegenerateSignal when the filtered noise is all zero, which is always
// the case for three samples or fewer.
func GeneratePinkNoise(src NormalSource, amplitude, duration float64, sampleRate int) (Mono, error) {
	if src == nil {
		return Mono{}, fmt.Errorf("%w: random source is nil", ErrInvalidParameter)
	}
	if err := validateTiming(duration, sampleRate); err != nil {
		return Mono{}, err
	}
	if err := validateAmplitude(amplitude); err != nil {
		return Mono{}, err
	}

	white := make([]float64, sampleCount(duration, sampleRate))
	for i := range white {
		white[i] = src.NormFloat64()
	}

	pinkFilter, err := filter.NewThirdOrder(filter.PinkCoefficients())
	if err != nil {
		return Mono{}, fmt.Errorf("failed to create pink filter: %w", err)
	}
	pink := pinkFilter.Apply(white)

	if err := normalizePeak(pink, amplitude); err != nil {
		return Mono{}, err
	}

	return Mono{Samples: pink, SampleRate: sampleRate}, nil
}
