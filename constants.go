package testsignal

import "math"

// Reference battery defaults
const (
	DefaultSampleRate = 44100 // Hz
	DefaultDuration   = 10.0  // seconds
	BitDepth          = 16    // only supported PCM depth
)

// Channel constants
const (
	monoChannels   = 1
	stereoChannels = 2
)

// Level conversion constants
const (
	dbAmplitudeFactor = 20.0  // 20*log10 for amplitude ratios
	dbPowerFactor     = 10.0  // 10*log10 for power ratios
	lufsOffset        = 0.691 // K-weighting offset of the single-band LUFS approximation
	minLinearForDB    = 1e-10 // Avoid log(0)
)

// PCM quantization constants
const (
	maxInt16         = 32767.0 // full-scale multiplier, symmetric around zero
	bytesPerSample16 = 2
	bitsPerByte      = 8
)

// WAV container constants
const (
	wavHeaderSize      = 44 // Canonical RIFF/WAVE header size in bytes
	wavRiffHeaderSize  = 36 // RIFF chunk size = wavRiffHeaderSize + data size
	wavPCMSubchunkSize = 16 // fmt subchunk size for PCM format
	wavFormatPCM       = 1  // AudioFormat tag for integer PCM

	wavWriterBufferSize = 256 * 1024 // 256KB write buffer

	// Largest data chunk whose size still fits the 32-bit RIFF size field
	maxWAVDataSize = math.MaxUint32 - wavRiffHeaderSize

	// Longest signal that encodes to a valid stereo file
	maxFrames = maxWAVDataSize / (stereoChannels * bytesPerSample16)
)
