package testsignal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-testsignals/internal/analysis"
	"github.com/tphakala/go-audio-testsignals/internal/testutil"
)

const (
	testRate     = 44100
	testFreq     = 1000.0
	testDuration = 1.0
)

func TestGenerateTone_Length(t *testing.T) {
	tests := []struct {
		name       string
		duration   float64
		sampleRate int
		want       int
	}{
		{"one_second", 1, 44100, 44100},
		{"ten_seconds", 10, 44100, 441000},
		{"tenth_second", 0.1, 44100, 4410},
		{"fractional_sample_dropped", 0.00005, 44100, 2},
		{"48k_half_second", 0.5, 48000, 24000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tone, err := GenerateTone(testFreq, 0.5, tt.duration, tt.sampleRate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tone.Len())
			assert.Equal(t, tt.sampleRate, tone.SampleRate)
		})
	}
}

func TestGenerateTone_Samples(t *testing.T) {
	const amplitude = 0.25
	tone, err := GenerateTone(testFreq, amplitude, testDuration, testRate)
	require.NoError(t, err)

	assert.Zero(t, tone.Samples[0], "tone starts at zero phase")
	for _, i := range []int{1, 10, 123, 44099} {
		want := amplitude * math.Sin(2*math.Pi*testFreq*float64(i)/testRate)
		assert.InDelta(t, want, tone.Samples[i], testutil.DefaultTolerance, "sample %d", i)
	}
}

func TestGenerateTone_RMS(t *testing.T) {
	amplitude := LUFSToRMS(-23)
	tone, err := GenerateTone(testFreq, amplitude, testDuration, testRate)
	require.NoError(t, err)

	testutil.AssertRelativeError(t, amplitude/math.Sqrt2, analysis.RMS(tone.Samples), testutil.RMSRelTolerance)
	assert.LessOrEqual(t, analysis.Peak(tone.Samples), amplitude)
}

func TestGenerateTone_Deterministic(t *testing.T) {
	a, err := GenerateTone(440, 0.8, 0.5, testRate)
	require.NoError(t, err)
	b, err := GenerateTone(440, 0.8, 0.5, testRate)
	require.NoError(t, err)

	assert.Equal(t, a.Samples, b.Samples)
}

func TestGenerateTone_AboveNyquistAllowed(t *testing.T) {
	tone, err := GenerateTone(30000, 0.5, 0.01, testRate)
	require.NoError(t, err)
	testutil.AssertNoNaNOrInf(t, tone.Samples)
	testutil.AssertAllInRange(t, tone.Samples, -0.5, 0.5)
}

func TestGenerateTone_InvalidParameters(t *testing.T) {
	tests := []struct {
		name       string
		frequency  float64
		amplitude  float64
		duration   float64
		sampleRate int
	}{
		{"zero_frequency", 0, 0.5, 1, testRate},
		{"negative_frequency", -100, 0.5, 1, testRate},
		{"nan_frequency", math.NaN(), 0.5, 1, testRate},
		{"zero_duration", testFreq, 0.5, 0, testRate},
		{"negative_duration", testFreq, 0.5, -1, testRate},
		{"infinite_duration", testFreq, 0.5, math.Inf(1), testRate},
		{"zero_rate", testFreq, 0.5, 1, 0},
		{"negative_rate", testFreq, 0.5, 1, -44100},
		{"negative_amplitude", testFreq, -0.5, 1, testRate},
		{"nan_amplitude", testFreq, math.NaN(), 1, testRate},
		{"duration_overflows_int", testFreq, 0.5, 1e300, testRate},
		{"longer_than_wav_limit", testFreq, 0.5, 7 * 3600, testRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateTone(tt.frequency, tt.amplitude, tt.duration, tt.sampleRate)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestValidateTiming_FrameLimit(t *testing.T) {
	require.NoError(t, validateTiming(float64(maxFrames), 1))
	require.NoError(t, validateTiming(float64(maxFrames)/testRate, testRate))

	require.ErrorIs(t, validateTiming(float64(maxFrames+1), 1), ErrInvalidParameter)
	require.ErrorIs(t, validateTiming(math.MaxFloat64, testRate), ErrInvalidParameter)
}

func TestGenerateMultiTone_PeakNormalized(t *testing.T) {
	peak := LUFSToRMS(-23)
	mix, err := GenerateMultiTone(ComplexPartials(), peak, testDuration, testRate)
	require.NoError(t, err)

	assert.Equal(t, testRate, mix.Len())
	assert.Equal(t, peak, analysis.Peak(mix.Samples))
}

func TestGenerateMultiTone_SinglePartialMatchesTone(t *testing.T) {
	mix, err := GenerateMultiTone([]Partial{{Frequency: 1000, Weight: 3}}, 0.5, 0.1, 8000)
	require.NoError(t, err)
	tone, err := GenerateTone(1000, 0.5, 0.1, 8000)
	require.NoError(t, err)

	// 1 kHz at 8 kHz hits the crest exactly, so normalization is a pure rescale
	require.Len(t, mix.Samples, tone.Len())
	for i := range mix.Samples {
		assert.InDelta(t, tone.Samples[i], mix.Samples[i], 1e-12, "sample %d", i)
	}
}

func TestGenerateMultiTone_Silent(t *testing.T) {
	_, err := GenerateMultiTone([]Partial{{Frequency: 1000, Weight: 0}}, 0.5, 0.1, testRate)
	require.ErrorIs(t, err, ErrDegenerateSignal)
}

func TestGenerateMultiTone_Invalid(t *testing.T) {
	_, err := GenerateMultiTone(nil, 0.5, 1, testRate)
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = GenerateMultiTone([]Partial{{Frequency: -1, Weight: 1}}, 0.5, 1, testRate)
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = GenerateMultiTone([]Partial{{Frequency: 100, Weight: math.Inf(1)}}, 0.5, 1, testRate)
	require.ErrorIs(t, err, ErrInvalidParameter)
}
