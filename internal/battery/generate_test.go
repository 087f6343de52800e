package battery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	testsignal "github.com/tphakala/go-audio-testsignals"
	"github.com/tphakala/go-audio-testsignals/internal/testutil"
)

func TestGenerate_WritesBattery(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zapcore.InfoLevel)

	results, err := Generate(context.Background(), shortConfig(dir), zap.New(core))
	require.NoError(t, err)
	require.Len(t, results, 12)
	assert.Equal(t, 12, logs.FilterMessage("generated test signal").Len())

	for i, r := range results {
		assert.Equal(t, i+1, r.Entry.Index)
		assert.Equal(t, filepath.Join(dir, r.Entry.FileName()), r.Path)
		assert.Equal(t, testsignal.Header{NumChannels: 2, SampleRate: 8000, BitDepth: 16}, r.Header)
		assert.Equal(t, 2000, r.Frames)

		frame, err := testsignal.ReadFile(r.Path)
		require.NoError(t, err, r.Path)
		assert.Equal(t, r.Header, frame.Header)
		assert.Equal(t, 2000, frame.SamplesPerChannel())
	}
}

func TestGenerate_Reports(t *testing.T) {
	results, err := Generate(context.Background(), shortConfig(t.TempDir()), nil)
	require.NoError(t, err)

	byName := make(map[string]Result)
	for _, r := range results {
		byName[r.Entry.Name] = r
	}

	assert.InDelta(t, 1.0, byName["phase_in_phase_L_equals_R"].Report.Correlation, testutil.CorrelationTolerance)
	assert.InDelta(t, -1.0, byName["phase_out_of_phase_L_equals_minusR"].Report.Correlation, testutil.CorrelationTolerance)

	for name, db := range map[string]float64{
		"peak_minus6dBFS": -6,
		"peak_minus3dBFS": -3,
		"peak_minus1dBFS": -1,
	} {
		report := byName[name].Report
		testutil.AssertRelativeError(t, testsignal.DBToLinear(db), report.Peak[0], 0.005, name)
		testutil.AssertRelativeError(t, testsignal.DBToLinear(db), report.Peak[1], 0.005, name)
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	dirA, dirB, dirC := t.TempDir(), t.TempDir(), t.TempDir()

	_, err := Generate(context.Background(), shortConfig(dirA), nil)
	require.NoError(t, err)
	_, err = Generate(context.Background(), shortConfig(dirB), nil)
	require.NoError(t, err)

	other := shortConfig(dirC)
	other.Seed = DefaultSeed + 1
	_, err = Generate(context.Background(), other, nil)
	require.NoError(t, err)

	noisy := map[int]bool{4: true, 7: true, 12: true}
	for _, e := range Catalogue() {
		a := readBytes(t, filepath.Join(dirA, e.FileName()))
		b := readBytes(t, filepath.Join(dirB, e.FileName()))
		c := readBytes(t, filepath.Join(dirC, e.FileName()))

		assert.Equal(t, a, b, "%s must be byte-identical for equal seeds", e.Name)
		if noisy[e.Index] {
			assert.NotEqual(t, a, c, "%s must change with the seed", e.Name)
		} else {
			assert.Equal(t, a, c, "%s does not depend on the seed", e.Name)
		}
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Generate(ctx, shortConfig(dir), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_MissingDirectory(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := shortConfig(filepath.Join(t.TempDir(), "missing"))

	results, err := Generate(context.Background(), cfg, zap.New(core))
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Empty(t, results)
	assert.Equal(t, 1, logs.FilterMessage("failed to generate test signal").Len())
}

func TestGenerate_HugeDuration(t *testing.T) {
	dir := t.TempDir()
	cfg := shortConfig(dir)
	cfg.Duration = 1e300

	results, err := Generate(context.Background(), cfg, nil)
	require.ErrorIs(t, err, testsignal.ErrInvalidParameter)
	assert.Empty(t, results)
}

func TestGenerate_InvalidConfig(t *testing.T) {
	cfg := shortConfig("")

	_, err := Generate(context.Background(), cfg, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func readBytes(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
