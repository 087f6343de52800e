package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"

	testsignal "github.com/tphakala/go-audio-testsignals"
	"github.com/tphakala/go-audio-testsignals/internal/analysis"
	"github.com/tphakala/go-audio-testsignals/internal/battery"
	"github.com/tphakala/go-audio-testsignals/internal/filter"
)

const (
	responseLowestBand = 20.0 // Hz, lower edge of the first octave band
	radiansToDegrees   = 180 / math.Pi
)

// generateOptions holds the generate command flags.
type generateOptions struct {
	dir          string
	sampleRate   int
	duration     float64
	seed         uint64
	quantization string
}

// config converts flags into a validated battery configuration.
func (o *generateOptions) config() (battery.Config, error) {
	quantization, err := testsignal.ParseQuantization(o.quantization)
	if err != nil {
		return battery.Config{}, err
	}

	cfg := battery.Config{
		Dir:          o.dir,
		SampleRate:   o.sampleRate,
		Duration:     o.duration,
		Seed:         o.seed,
		Quantization: quantization,
	}
	if err := cfg.Validate(); err != nil {
		return battery.Config{}, err
	}
	return cfg, nil
}

// newLogger returns a production logger, or a development logger when verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// ensureOutputDir creates dir and its parents if they do not exist.
func ensureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, outputDirPerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// fileReport holds the measurements of one WAV file.
type fileReport struct {
	path   string
	header testsignal.Header
	report analysis.Report
}

// measureFile decodes a WAV file and measures each channel.
func measureFile(path string) (*fileReport, error) {
	frame, err := testsignal.ReadFile(path)
	if err != nil {
		return nil, err
	}

	report, err := analysis.Analyze(frame.Float64Channels()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &fileReport{
		path:   path,
		header: frame.Header,
		report: report,
	}, nil
}

// verifyFiles measures each file, logs it and prints a summary line.
// It stops at the first unreadable file.
func verifyFiles(ctx context.Context, out io.Writer, paths []string, logger *zap.Logger) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		fr, err := measureFile(path)
		if err != nil {
			logger.Error("failed to verify file", zap.String("file", path), zap.Error(err))
			return err
		}

		logger.Debug("verified file",
			zap.String("file", fr.path),
			zap.Int("channels", fr.header.NumChannels),
			zap.Int("sampleRate", fr.header.SampleRate),
			zap.Int("frames", fr.report.Frames),
			zap.Float64s("peak", fr.report.Peak),
			zap.Float64s("rms", fr.report.RMS),
			zap.Float64("correlation", fr.report.Correlation))

		_, _ = fmt.Fprintln(out, formatReport(fr))
	}
	return nil
}

// formatReport renders one summary line: peak in dBFS, loudness estimate
// in LUFS and correlation for each file.
func formatReport(fr *fileReport) string {
	line := fmt.Sprintf("%s: %d ch, %d Hz, %d frames", fr.path, fr.header.NumChannels, fr.header.SampleRate, fr.report.Frames)
	for ch := range fr.report.Peak {
		line += fmt.Sprintf(" | ch%d peak %.2f dBFS, %.2f LUFS", ch,
			testsignal.LinearToDB(fr.report.Peak[ch]),
			testsignal.RMSToLUFS(fr.report.RMS[ch]))
	}
	if !math.IsNaN(fr.report.Correlation) {
		line += fmt.Sprintf(" | corr %+.3f", fr.report.Correlation)
	}
	return line
}

// responsePoint is the pink filter gain at one octave band center.
type responsePoint struct {
	freq  float64 // Hz
	db    float64 // gain in dB
	slope float64 // change from the previous band in dB; NaN for the first
}

// pinkResponse evaluates the pink filter at the center of every octave band
// from 20 Hz up to Nyquist.
func pinkResponse(sampleRate int) ([]responsePoint, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", testsignal.ErrInvalidParameter, sampleRate)
	}
	pink, err := filter.NewThirdOrder(filter.PinkCoefficients())
	if err != nil {
		return nil, fmt.Errorf("failed to create pink filter: %w", err)
	}

	nyquist := float64(sampleRate) / 2
	count := 0
	for high := responseLowestBand * 2; high <= nyquist; high *= 2 {
		count++
	}

	bands := analysis.OctaveBands(responseLowestBand, count)
	points := make([]responsePoint, len(bands))
	for i, b := range bands {
		freq := b.Center()
		points[i] = responsePoint{
			freq:  freq,
			db:    testsignal.LinearToDB(pink.MagnitudeAt(freq, sampleRate)),
			slope: math.NaN(),
		}
		if i > 0 {
			points[i].slope = points[i].db - points[i-1].db
		}
	}
	return points, nil
}

// writeFilterReport prints the pink filter's octave response and, when
// gridPoints is positive, its response on a linear frequency grid.
func writeFilterReport(out io.Writer, sampleRate, gridPoints int) error {
	points, err := pinkResponse(sampleRate)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Pink noise filter at %d Hz\n", sampleRate)
	for _, p := range points {
		if math.IsNaN(p.slope) {
			_, _ = fmt.Fprintf(out, "  %8.1f Hz  %7.2f dB\n", p.freq, p.db)
			continue
		}
		_, _ = fmt.Fprintf(out, "  %8.1f Hz  %7.2f dB  %+5.2f dB/oct\n", p.freq, p.db, p.slope)
	}
	if len(points) > 1 {
		first, last := points[0], points[len(points)-1]
		_, _ = fmt.Fprintf(out, "Average slope: %+.2f dB/oct\n", (last.db-first.db)/float64(len(points)-1))
	}

	if gridPoints <= 0 {
		return nil
	}
	pink, err := filter.NewThirdOrder(filter.PinkCoefficients())
	if err != nil {
		return fmt.Errorf("failed to create pink filter: %w", err)
	}
	resp := pink.ComputeFrequencyResponse(gridPoints)
	_, _ = fmt.Fprintln(out, "\nFrequency response:")
	for k, f := range resp.Frequencies {
		_, _ = fmt.Fprintf(out, "  %8.1f Hz  %7.2f dB  %+7.1f deg\n",
			f*float64(sampleRate), testsignal.LinearToDB(resp.Magnitude[k]), resp.Phase[k]*radiansToDegrees)
	}
	return nil
}
