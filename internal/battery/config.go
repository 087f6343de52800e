package battery

import (
	"errors"
	"fmt"
	"math"

	testsignal "github.com/tphakala/go-audio-testsignals"
)

// DefaultSeed seeds the noise source when none is configured.
const DefaultSeed uint64 = 0x50554E4B

// ErrInvalidConfig indicates invalid battery configuration.
var ErrInvalidConfig = errors.New("invalid battery configuration")

// Config holds battery generation settings.
type Config struct {
	// Dir is the output directory. It must already exist.
	Dir string

	// SampleRate of every file in Hz.
	SampleRate int

	// Duration of every file in seconds.
	Duration float64

	// Seed for the pink noise source. Equal seeds give byte-identical
	// batteries.
	Seed uint64

	// Quantization rule used by the encoder.
	Quantization testsignal.Quantization
}

// DefaultConfig returns the reference settings: 44.1 kHz, 10 s, truncating
// quantization.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:          dir,
		SampleRate:   testsignal.DefaultSampleRate,
		Duration:     testsignal.DefaultDuration,
		Seed:         DefaultSeed,
		Quantization: testsignal.QuantizeTruncate,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("%w: output directory is required", ErrInvalidConfig)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidConfig)
	}
	if c.Quantization != testsignal.QuantizeTruncate && c.Quantization != testsignal.QuantizeRound {
		return fmt.Errorf("%w: unknown quantization %v", ErrInvalidConfig, c.Quantization)
	}
	return nil
}
