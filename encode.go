package testsignal

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Quantization selects how scaled samples are rounded to 16-bit integers.
// One rule applies to every sample of an Encode call.
type Quantization int

const (
	// QuantizeTruncate rounds toward zero, matching an integer cast.
	// This reproduces the reference files bit for bit, at the cost of
	// under-representing values near ±1 by up to one LSB.
	QuantizeTruncate Quantization = iota

	// QuantizeRound rounds to the nearest integer, ties to even.
	QuantizeRound
)

// String returns the rule name.
func (q Quantization) String() string {
	switch q {
	case QuantizeTruncate:
		return "truncate"
	case QuantizeRound:
		return "round"
	default:
		return fmt.Sprintf("Quantization(%d)", int(q))
	}
}

// ParseQuantization maps "truncate" or "round" to a Quantization.
func ParseQuantization(s string) (Quantization, error) {
	switch s {
	case "truncate", "":
		return QuantizeTruncate, nil
	case "round":
		return QuantizeRound, nil
	default:
		return 0, fmt.Errorf("%w: unknown quantization %q", ErrInvalidParameter, s)
	}
}

type encodeConfig struct {
	quantization Quantization
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeConfig)

// WithQuantization selects the rounding rule. The default is QuantizeTruncate.
func WithQuantization(q Quantization) EncodeOption {
	return func(c *encodeConfig) {
		c.quantization = q
	}
}

// Encode clips sig to [-1, 1], quantizes it to signed 16-bit integers and
// interleaves the channels (L,R,L,R for stereo) into a little-endian Frame.
//
// Every input sample is encoded; nothing is resampled, dropped or padded.
// NaN samples are rejected with ErrInvalidParameter. Signals too long for
// the 32-bit WAV size fields are rejected with ErrEncodingOverflow.
func Encode(sig Signal, opts ...EncodeOption) (*Frame, error) {
	cfg := encodeConfig{quantization: QuantizeTruncate}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.quantization != QuantizeTruncate && cfg.quantization != QuantizeRound {
		return nil, fmt.Errorf("%w: unknown quantization %v", ErrInvalidParameter, cfg.quantization)
	}

	if sig == nil {
		return nil, fmt.Errorf("%w: signal is nil", ErrInvalidParameter)
	}
	channels := sig.NumChannels()
	if channels != monoChannels && channels != stereoChannels {
		return nil, fmt.Errorf("%w: %d channels (want 1 or 2)", ErrInvalidParameter, channels)
	}
	if sig.Rate() <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidParameter, sig.Rate())
	}

	if err := validateDataSize(int64(sig.Frames()) * int64(channels) * bytesPerSample16); err != nil {
		return nil, err
	}

	var interleaved []float64
	if channels == stereoChannels {
		left, right := sig.Channel(0), sig.Channel(1)
		if len(left) != len(right) {
			return nil, fmt.Errorf("%w: channel lengths differ (%d vs %d)",
				ErrInvalidParameter, len(left), len(right))
		}
		interleaved = InterleaveToStereo(left, right)
	} else {
		interleaved = sig.Channel(0)
	}

	data := make([]byte, len(interleaved)*bytesPerSample16)
	for i, s := range interleaved {
		q, err := quantize16(s, cfg.quantization)
		if err != nil {
			return nil, fmt.Errorf("frame %d channel %d: %w", i/channels, i%channels, err)
		}
		binary.LittleEndian.PutUint16(data[i*bytesPerSample16:], uint16(q))
	}

	return &Frame{
		Header: Header{
			NumChannels: channels,
			SampleRate:  sig.Rate(),
			BitDepth:    BitDepth,
		},
		Data: data,
	}, nil
}

// quantize16 clips a sample to [-1, 1] and scales it to [-32767, 32767].
func quantize16(sample float64, q Quantization) (int16, error) {
	if math.IsNaN(sample) {
		return 0, fmt.Errorf("%w: sample is NaN", ErrInvalidParameter)
	}

	// Clamp to [-1.0, 1.0]
	if sample > 1.0 {
		sample = 1.0
	} else if sample < -1.0 {
		sample = -1.0
	}

	scaled := sample * maxInt16
	if q == QuantizeRound {
		scaled = math.RoundToEven(scaled)
	} else {
		scaled = math.Trunc(scaled)
	}

	if scaled > maxInt16 || scaled < -maxInt16 {
		return 0, fmt.Errorf("%w: %v outside 16-bit range", ErrEncodingOverflow, scaled)
	}
	return int16(scaled), nil
}
