package battery

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"go.uber.org/zap"

	testsignal "github.com/tphakala/go-audio-testsignals"
	"github.com/tphakala/go-audio-testsignals/internal/analysis"
)

// Result describes one written file.
type Result struct {
	Entry  Entry
	Path   string
	Header testsignal.Header
	Frames int
	Report analysis.Report // measured before quantization
}

// NewSource returns the noise source used for a battery run.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Generate renders every catalogue entry into cfg.Dir, in order. Files are
// written one at a time; the first failure stops the run and earlier files
// are kept. ctx is checked between files.
func Generate(ctx context.Context, cfg Config, logger *zap.Logger) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	src := NewSource(cfg.Seed)
	entries := Catalogue()
	results := make([]Result, 0, len(entries))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := generateEntry(&cfg, entry, src)
		if err != nil {
			logger.Error("failed to generate test signal",
				zap.String("file", entry.FileName()),
				zap.Error(err))
			return results, err
		}

		logger.Info("generated test signal",
			zap.String("file", result.Path),
			zap.String("category", string(entry.Category)),
			zap.Int("channels", result.Header.NumChannels),
			zap.Int("frames", result.Frames),
			zap.Float64s("peak", result.Report.Peak),
			zap.Float64s("rms", result.Report.RMS),
			zap.Float64("correlation", result.Report.Correlation))

		results = append(results, result)
	}

	return results, nil
}

// generateEntry renders, measures, encodes and writes one entry.
func generateEntry(cfg *Config, entry Entry, src testsignal.NormalSource) (Result, error) {
	stereo, err := entry.Render(cfg, src)
	if err != nil {
		return Result{}, err
	}

	report, err := analysis.Analyze(stereo.Left().Samples, stereo.Right().Samples)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", entry.Name, err)
	}

	frame, err := testsignal.Encode(stereo, testsignal.WithQuantization(cfg.Quantization))
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", entry.Name, err)
	}

	path := filepath.Join(cfg.Dir, entry.FileName())
	if err := frame.WriteFile(path); err != nil {
		return Result{}, fmt.Errorf("%s: %w", entry.Name, err)
	}

	return Result{
		Entry:  entry,
		Path:   path,
		Header: frame.Header,
		Frames: frame.SamplesPerChannel(),
		Report: report,
	}, nil
}
