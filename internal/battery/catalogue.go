// Package battery defines the reference test-signal battery and renders it
// to WAV files.
package battery

import (
	"fmt"

	testsignal "github.com/tphakala/go-audio-testsignals"
)

// Category groups entries by the meter they exercise.
type Category string

const (
	CategoryLoudness Category = "loudness"
	CategoryPhase    Category = "phase"
	CategoryPeak     Category = "peak"
	CategoryComplex  Category = "complex"
)

// Reference signal parameters
const (
	referenceFrequency = 1000.0 // Hz
	targetLUFS         = -23.0  // EBU R128 programme target
	shortTermMaxLUFS   = -18.0  // EBU R128 short-term maximum
	overLimitLUFS      = -14.0

	complexRightScale = 0.8 // right = left·0.8 + noise
	complexNoiseMix   = 0.2 // noise amplitude as a fraction of the target
)

// renderFunc builds the stereo signal for one entry.
type renderFunc func(cfg *Config, src testsignal.NormalSource) (testsignal.Stereo, error)

// Entry is one file of the battery.
type Entry struct {
	Index       int
	Name        string
	Category    Category
	Description string

	render renderFunc
}

// FileName returns the output file name, e.g. "01_tone_1kHz_minus23LUFS.wav".
func (e Entry) FileName() string {
	return fmt.Sprintf("%02d_%s.wav", e.Index, e.Name)
}

// Render synthesizes the entry. Noise entries advance src.
func (e Entry) Render(cfg *Config, src testsignal.NormalSource) (testsignal.Stereo, error) {
	stereo, err := e.render(cfg, src)
	if err != nil {
		return testsignal.Stereo{}, fmt.Errorf("%s: %w", e.Name, err)
	}
	return stereo, nil
}

// Catalogue returns the battery in generation order.
func Catalogue() []Entry {
	return []Entry{
		{1, "tone_1kHz_minus23LUFS", CategoryLoudness, "1 kHz tone at -23 LUFS", toneAtLUFS(targetLUFS)},
		{2, "tone_1kHz_minus18LUFS", CategoryLoudness, "1 kHz tone at -18 LUFS", toneAtLUFS(shortTermMaxLUFS)},
		{3, "tone_1kHz_minus14LUFS", CategoryLoudness, "1 kHz tone at -14 LUFS", toneAtLUFS(overLimitLUFS)},
		{4, "pink_noise_minus23LUFS", CategoryLoudness, "pink noise at -23 LUFS", pinkDuplicated},
		{5, "phase_in_phase_L_equals_R", CategoryPhase, "in-phase stereo (L=R)", toneAtLUFS(targetLUFS)},
		{6, "phase_out_of_phase_L_equals_minusR", CategoryPhase, "out-of-phase stereo (L=-R)", toneInverted},
		{7, "phase_wide_stereo_independent", CategoryPhase, "wide stereo (independent L/R)", pinkIndependent},
		{8, "phase_mono", CategoryPhase, "mono signal", toneAtLUFS(targetLUFS)},
		{9, "peak_minus6dBFS", CategoryPeak, "tone with peak at -6 dBFS", toneAtDBFS(-6)},
		{10, "peak_minus3dBFS", CategoryPeak, "tone with peak at -3 dBFS", toneAtDBFS(-3)},
		{11, "peak_minus1dBFS", CategoryPeak, "tone with peak at -1 dBFS", toneAtDBFS(-1)},
		{12, "complex_multi_tone", CategoryComplex, "multi-tone with decorrelated right channel", complexMultiTone},
	}
}

func toneAtLUFS(lufs float64) renderFunc {
	return toneAt(testsignal.LUFSToRMS(lufs))
}

func toneAtDBFS(db float64) renderFunc {
	return toneAt(testsignal.DBToLinear(db))
}

func toneAt(amplitude float64) renderFunc {
	return func(cfg *Config, _ testsignal.NormalSource) (testsignal.Stereo, error) {
		tone, err := testsignal.GenerateTone(referenceFrequency, amplitude, cfg.Duration, cfg.SampleRate)
		if err != nil {
			return testsignal.Stereo{}, err
		}
		return testsignal.Duplicate(tone), nil
	}
}

func toneInverted(cfg *Config, _ testsignal.NormalSource) (testsignal.Stereo, error) {
	tone, err := testsignal.GenerateTone(referenceFrequency, testsignal.LUFSToRMS(targetLUFS), cfg.Duration, cfg.SampleRate)
	if err != nil {
		return testsignal.Stereo{}, err
	}
	return testsignal.Invert(tone), nil
}

func pinkDuplicated(cfg *Config, src testsignal.NormalSource) (testsignal.Stereo, error) {
	pink, err := testsignal.GeneratePinkNoise(src, testsignal.LUFSToRMS(targetLUFS), cfg.Duration, cfg.SampleRate)
	if err != nil {
		return testsignal.Stereo{}, err
	}
	return testsignal.Duplicate(pink), nil
}

func pinkIndependent(cfg *Config, src testsignal.NormalSource) (testsignal.Stereo, error) {
	amplitude := testsignal.LUFSToRMS(targetLUFS)
	left, err := testsignal.GeneratePinkNoise(src, amplitude, cfg.Duration, cfg.SampleRate)
	if err != nil {
		return testsignal.Stereo{}, fmt.Errorf("left channel: %w", err)
	}
	right, err := testsignal.GeneratePinkNoise(src, amplitude, cfg.Duration, cfg.SampleRate)
	if err != nil {
		return testsignal.Stereo{}, fmt.Errorf("right channel: %w", err)
	}
	return testsignal.Independent(left, right)
}

func complexMultiTone(cfg *Config, src testsignal.NormalSource) (testsignal.Stereo, error) {
	amplitude := testsignal.LUFSToRMS(targetLUFS)
	mix, err := testsignal.GenerateMultiTone(testsignal.ComplexPartials(), amplitude, cfg.Duration, cfg.SampleRate)
	if err != nil {
		return testsignal.Stereo{}, err
	}
	noise, err := testsignal.GeneratePinkNoise(src, amplitude*complexNoiseMix, cfg.Duration, cfg.SampleRate)
	if err != nil {
		return testsignal.Stereo{}, fmt.Errorf("noise: %w", err)
	}
	return testsignal.ScaledPlusNoise(mix, complexRightScale, noise)
}
