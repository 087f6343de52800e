package testsignal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-testsignals/internal/testutil"
)

func testTone(t *testing.T) Mono {
	t.Helper()
	tone, err := GenerateTone(testFreq, 0.5, 0.1, testRate)
	require.NoError(t, err)
	return tone
}

func TestDuplicate(t *testing.T) {
	tone := testTone(t)
	stereo := Duplicate(tone)

	assert.Equal(t, tone.Samples, stereo.Left().Samples)
	assert.Equal(t, tone.Samples, stereo.Right().Samples)
	assert.Equal(t, tone.SampleRate, stereo.Right().SampleRate)
	assert.NotSame(t, &stereo.Left().Samples[0], &stereo.Right().Samples[0], "right channel must not alias left")
}

func TestInvert(t *testing.T) {
	tone := testTone(t)
	stereo := Invert(tone)

	assert.Equal(t, tone.Samples, stereo.Left().Samples)
	testutil.AssertNegated(t, stereo.Left().Samples, stereo.Right().Samples)
}

func TestIndependent(t *testing.T) {
	rng := testutil.NewRand(3)
	left, err := GeneratePinkNoise(rng, 0.5, 0.1, testRate)
	require.NoError(t, err)
	right, err := GeneratePinkNoise(rng, 0.5, 0.1, testRate)
	require.NoError(t, err)

	stereo, err := Independent(left, right)
	require.NoError(t, err)
	assert.Equal(t, left.Samples, stereo.Left().Samples)
	assert.Equal(t, right.Samples, stereo.Right().Samples)
}

func TestScaledPlusNoise(t *testing.T) {
	const scale = 0.8
	tone := testTone(t)
	noise, err := GeneratePinkNoise(testutil.NewRand(4), 0.1, 0.1, testRate)
	require.NoError(t, err)

	stereo, err := ScaledPlusNoise(tone, scale, noise)
	require.NoError(t, err)

	right := stereo.Right().Samples
	require.Len(t, right, tone.Len())
	for i := range right {
		assert.InDelta(t, tone.Samples[i]*scale+noise.Samples[i], right[i], 1e-15, "sample %d", i)
	}
}

func TestScaledPlusNoise_Invalid(t *testing.T) {
	tone := testTone(t)

	_, err := ScaledPlusNoise(tone, math.NaN(), tone)
	require.ErrorIs(t, err, ErrInvalidParameter)

	short := Mono{Samples: tone.Samples[:10], SampleRate: tone.SampleRate}
	_, err = ScaledPlusNoise(tone, 0.8, short)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewStereo_Mismatch(t *testing.T) {
	tests := []struct {
		name        string
		left, right Mono
	}{
		{"length", Mono{Samples: make([]float64, 10), SampleRate: 8000}, Mono{Samples: make([]float64, 11), SampleRate: 8000}},
		{"rate", Mono{Samples: make([]float64, 10), SampleRate: 8000}, Mono{Samples: make([]float64, 10), SampleRate: 16000}},
		{"zero_rate", Mono{Samples: make([]float64, 10)}, Mono{Samples: make([]float64, 10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStereo(tt.left, tt.right)
			require.ErrorIs(t, err, ErrInvalidParameter)

			_, err = Independent(tt.left, tt.right)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestStereo_SignalInterface(t *testing.T) {
	stereo := Invert(testTone(t))

	var sig Signal = stereo
	assert.Equal(t, 2, sig.NumChannels())
	assert.Equal(t, testRate, sig.Rate())
	assert.Equal(t, 4410, sig.Frames())
	assert.Equal(t, stereo.Right().Samples, sig.Channel(1))
}

func TestInterleaveRoundTrip(t *testing.T) {
	left := []float64{1, 2, 3}
	right := []float64{-1, -2, -3}

	interleaved := InterleaveToStereo(left, right)
	assert.Equal(t, []float64{1, -1, 2, -2, 3, -3}, interleaved)

	l, r := DeinterleaveFromStereo(interleaved)
	assert.Equal(t, left, l)
	assert.Equal(t, right, r)
}

func TestInterleaveToStereo_UnequalLengths(t *testing.T) {
	interleaved := InterleaveToStereo([]float64{1, 2, 3}, []float64{4})
	assert.Equal(t, []float64{1, 4}, interleaved)
}
