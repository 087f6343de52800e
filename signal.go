package testsignal

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-audio-testsignals/internal/analysis"
)

// Common errors returned by the generators and the encoder.
var (
	// ErrInvalidParameter indicates a non-positive duration, sample rate or
	// frequency, an invalid amplitude, or mismatched channels.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateSignal indicates that peak normalization was asked to
	// scale a signal whose peak is zero.
	ErrDegenerateSignal = errors.New("degenerate signal")

	// ErrEncodingOverflow indicates a quantized sample outside the 16-bit
	// range. Clipping makes this unreachable; seeing it is a bug.
	ErrEncodingOverflow = errors.New("encoding overflow")

	// ErrUnsupportedFormat indicates a PCM container this package cannot read.
	ErrUnsupportedFormat = errors.New("unsupported PCM format")
)

// Signal is a planar floating-point signal accepted by [Encode].
// Both [Mono] and [Stereo] implement it.
type Signal interface {
	// Rate returns the sample rate in Hz.
	Rate() int

	// NumChannels returns 1 for mono and 2 for stereo.
	NumChannels() int

	// Frames returns the number of samples per channel.
	Frames() int

	// Channel returns the samples of channel ch. Callers must not modify it.
	Channel(ch int) []float64
}

// Mono is a single-channel signal. Generators return a fresh Mono on every
// call; treat it as immutable afterwards.
type Mono struct {
	Samples    []float64
	SampleRate int
}

// Len returns the number of samples.
func (m Mono) Len() int { return len(m.Samples) }

// Duration returns the signal length in seconds.
func (m Mono) Duration() float64 {
	if m.SampleRate <= 0 {
		return 0
	}
	return float64(len(m.Samples)) / float64(m.SampleRate)
}

// Rate implements Signal.
func (m Mono) Rate() int { return m.SampleRate }

// NumChannels implements Signal.
func (m Mono) NumChannels() int { return monoChannels }

// Frames implements Signal.
func (m Mono) Frames() int { return len(m.Samples) }

// Channel implements Signal. Any channel index returns the single channel.
func (m Mono) Channel(int) []float64 { return m.Samples }

// Stereo is a two-channel signal whose channels always share length and
// sample rate. Build one with [NewStereo] or the composer functions.
type Stereo struct {
	left  Mono
	right Mono
}

// Left returns the left channel.
func (s Stereo) Left() Mono { return s.left }

// Right returns the right channel.
func (s Stereo) Right() Mono { return s.right }

// Rate implements Signal.
func (s Stereo) Rate() int { return s.left.SampleRate }

// NumChannels implements Signal.
func (s Stereo) NumChannels() int { return stereoChannels }

// Frames implements Signal.
func (s Stereo) Frames() int { return len(s.left.Samples) }

// Channel implements Signal. 0 is left, anything else is right.
func (s Stereo) Channel(ch int) []float64 {
	if ch == 0 {
		return s.left.Samples
	}
	return s.right.Samples
}

// sampleCount returns floor(sampleRate × duration).
func sampleCount(duration float64, sampleRate int) int {
	return int(math.Floor(float64(sampleRate) * duration))
}

// validateTiming checks the duration and sample rate shared by all generators.
func validateTiming(duration float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidParameter, sampleRate)
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: duration must be positive and finite, got %v", ErrInvalidParameter, duration)
	}
	// Checked in float64 so huge durations never reach the int conversion
	if float64(sampleRate)*duration >= maxFrames+1 {
		return fmt.Errorf("%w: %v s at %d Hz exceeds %d frames per file",
			ErrInvalidParameter, duration, sampleRate, maxFrames)
	}
	return nil
}

// validateDataSize checks that n bytes of sample data fit a RIFF/WAVE file.
func validateDataSize(n int64) error {
	if n < 0 || n > maxWAVDataSize {
		return fmt.Errorf("%w: %d bytes of sample data exceed the %d-byte WAV limit",
			ErrEncodingOverflow, n, int64(maxWAVDataSize))
	}
	return nil
}

// validateAmplitude rejects negative and non-finite amplitudes.
func validateAmplitude(amplitude float64) error {
	if !(amplitude >= 0) || math.IsInf(amplitude, 0) {
		return fmt.Errorf("%w: amplitude must be non-negative and finite, got %v", ErrInvalidParameter, amplitude)
	}
	return nil
}

// normalizePeak scales samples in place so max|samples| == target.
// Each sample is divided by the peak before scaling so the peak sample
// lands on target exactly.
func normalizePeak(samples []float64, target float64) error {
	peak := analysis.Peak(samples)
	if !(peak > 0) {
		return fmt.Errorf("%w: signal of %d samples has zero peak", ErrDegenerateSignal, len(samples))
	}
	for i, s := range samples {
		samples[i] = s / peak * target
	}
	return nil
}
