// Command testsignals renders the reference test-signal battery to WAV files,
// measures existing files and reports the pink noise filter response.
//
// Usage:
//
//	testsignals generate -o output
//	testsignals generate -o output --rate 48000 --duration 5 --seed 42
//	testsignals generate -o output --quantization round
//	testsignals verify output/*.wav
//	testsignals filter --rate 48000 --points 64
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	testsignal "github.com/tphakala/go-audio-testsignals"
	"github.com/tphakala/go-audio-testsignals/internal/battery"
)

const (
	defaultOutputDir = "output"
	outputDirPerm    = 0o755
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "testsignals",
		Short: "Generate reference audio signals for meter calibration",
		Long: `testsignals renders a fixed battery of 16-bit PCM WAV files for checking
loudness (LUFS), phase correlation, true-peak and level meters.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose (development) logging")

	rootCmd.AddCommand(newGenerateCmd(&verbose), newVerifyCmd(&verbose), newFilterCmd())
	return rootCmd
}

func newGenerateCmd(verbose *bool) *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the test-signal battery to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if err := ensureOutputDir(cfg.Dir); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logger.Info("generating test signals",
				zap.String("dir", cfg.Dir),
				zap.Int("sampleRate", cfg.SampleRate),
				zap.Float64("duration", cfg.Duration),
				zap.Uint64("seed", cfg.Seed),
				zap.Stringer("quantization", cfg.Quantization))

			start := time.Now()
			results, err := battery.Generate(ctx, cfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Generated %d files in %s (%.2fs)\n", len(results), cfg.Dir, time.Since(start).Seconds())
			for _, r := range results {
				_, _ = fmt.Fprintf(out, "  %-45s %-9s %s\n", r.Entry.FileName(), r.Entry.Category, r.Entry.Description)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.dir, "out", "o", defaultOutputDir, "Output directory (created if missing)")
	flags.IntVar(&opts.sampleRate, "rate", testsignal.DefaultSampleRate, "Sample rate in Hz")
	flags.Float64Var(&opts.duration, "duration", testsignal.DefaultDuration, "Duration of each file in seconds")
	flags.Uint64Var(&opts.seed, "seed", battery.DefaultSeed, "Seed for the pink noise source")
	flags.StringVar(&opts.quantization, "quantization", testsignal.QuantizeTruncate.String(), "Quantization rule: truncate or round")

	return cmd
}

func newVerifyCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "verify file.wav [file.wav...]",
		Short: "Measure peak, RMS and channel correlation of WAV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return verifyFiles(cmd.Context(), cmd.OutOrStdout(), args, logger)
		},
	}
}

func newFilterCmd() *cobra.Command {
	var (
		sampleRate int
		points     int
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the pink noise filter response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeFilterReport(cmd.OutOrStdout(), sampleRate, points)
		},
	}

	cmd.Flags().IntVar(&sampleRate, "rate", testsignal.DefaultSampleRate, "Sample rate in Hz")
	cmd.Flags().IntVar(&points, "points", 0, "Also print the response at this many linearly spaced frequencies")

	return cmd
}
