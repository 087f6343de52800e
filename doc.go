// Package testsignal synthesizes reference audio signals for calibrating
// loudness, phase-correlation and peak meters, and encodes them as 16-bit
// PCM WAV.
//
// # Generators
//
// All generators return a [Mono] of floor(sampleRate × duration) samples:
//
//   - [GenerateTone]: a pure sine at a given linear amplitude.
//   - [GenerateMultiTone]: weighted partials normalized to a target peak.
//   - [GeneratePinkNoise]: Gaussian white noise colored by a fixed
//     third-order IIR filter (about -3 dB/octave) and normalized so the
//     largest sample equals the requested amplitude exactly.
//
// Levels are given in linear units. [DBToLinear] and [LUFSToRMS] convert
// from dBFS and LUFS:
//
//	amp := testsignal.LUFSToRMS(-23) // ≈ 0.0767
//	tone, err := testsignal.GenerateTone(1000, amp, 10, 44100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Noise generators take a [NormalSource]; a *rand.Rand from math/rand/v2
// satisfies it. Equal seeds give identical output.
//
// # Stereo
//
// [Duplicate], [Invert], [Independent] and [ScaledPlusNoise] pair mono
// signals with a known inter-channel relationship (correlation +1, -1,
// about 0, or partial).
//
// # Encoding
//
// [Encode] clips to [-1, 1], quantizes to signed 16-bit and interleaves:
//
//	frame, err := testsignal.Encode(testsignal.Invert(tone))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := frame.WriteFile("out_of_phase.wav"); err != nil {
//	    log.Fatal(err)
//	}
//
// Quantization truncates toward zero by default, matching existing
// reference files; pass [WithQuantization]([QuantizeRound]) for
// round-half-to-even. [Decode] and [ReadFile] read 16-bit PCM WAV back.
//
// # Thread Safety
//
// Signals are plain values and are not modified after they are returned.
// A [NormalSource] is not safe for concurrent use unless its implementation
// says so; give each goroutine its own.
package testsignal
