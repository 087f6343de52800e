package testsignal

import (
	"fmt"
	"math"
)

// GenerateTone returns amplitude·sin(2π·frequency·t) sampled at
// t = i/sampleRate for i in [0, floor(sampleRate·duration)).
//
// The end time is exclusive. Frequencies at or above Nyquist are allowed
// and alias.
func GenerateTone(frequency, amplitude, duration float64, sampleRate int) (Mono, error) {
	if err := validateTiming(duration, sampleRate); err != nil {
		return Mono{}, err
	}
	if err := validateFrequency(frequency); err != nil {
		return Mono{}, err
	}
	if err := validateAmplitude(amplitude); err != nil {
		return Mono{}, err
	}

	samples := make([]float64, sampleCount(duration, sampleRate))
	omega := 2 * math.Pi * frequency
	rate := float64(sampleRate)
	for i := range samples {
		t := float64(i) / rate
		samples[i] = amplitude * math.Sin(omega*t)
	}

	return Mono{Samples: samples, SampleRate: sampleRate}, nil
}

// Partial is one sine component of a multi-tone signal.
type Partial struct {
	Frequency float64 // Hz
	Weight    float64 // relative linear amplitude before normalization
}

// ComplexPartials returns the four-tone mix used by the complex reference
// signal: bass, mid, high and very high components.
func ComplexPartials() []Partial {
	return []Partial{
		{Frequency: 100, Weight: 0.3},
		{Frequency: 1000, Weight: 0.4},
		{Frequency: 5000, Weight: 0.2},
		{Frequency: 10000, Weight: 0.1},
	}
}

// GenerateMultiTone sums weighted sines and scales the sum so its sample
// peak equals peak.
//
// Returns ErrDegenerateSignal if the sum is silent, for example when every
// weight is zero.
func GenerateMultiTone(partials []Partial, peak, duration float64, sampleRate int) (Mono, error) {
	if err := validateTiming(duration, sampleRate); err != nil {
		return Mono{}, err
	}
	if err := validateAmplitude(peak); err != nil {
		return Mono{}, err
	}
	if len(partials) == 0 {
		return Mono{}, fmt.Errorf("%w: at least one partial is required", ErrInvalidParameter)
	}
	for i, p := range partials {
		if err := validateFrequency(p.Frequency); err != nil {
			return Mono{}, fmt.Errorf("partial %d: %w", i, err)
		}
		if math.IsNaN(p.Weight) || math.IsInf(p.Weight, 0) {
			return Mono{}, fmt.Errorf("%w: partial %d weight must be finite", ErrInvalidParameter, i)
		}
	}

	samples := make([]float64, sampleCount(duration, sampleRate))
	rate := float64(sampleRate)
	for i := range samples {
		t := float64(i) / rate
		var sum float64
		for _, p := range partials {
			sum += p.Weight * math.Sin(2*math.Pi*p.Frequency*t)
		}
		samples[i] = sum
	}

	if err := normalizePeak(samples, peak); err != nil {
		return Mono{}, err
	}

	return Mono{Samples: samples, SampleRate: sampleRate}, nil
}

func validateFrequency(frequency float64) error {
	if !(frequency > 0) || math.IsInf(frequency, 0) {
		return fmt.Errorf("%w: frequency must be positive and finite, got %v", ErrInvalidParameter, frequency)
	}
	return nil
}
