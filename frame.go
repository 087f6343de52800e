package testsignal

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Header describes the layout of a Frame's data.
type Header struct {
	NumChannels int // 1 or 2
	SampleRate  int // Hz
	BitDepth    int // always 16
}

// BlockAlign returns the number of bytes per interleaved frame.
func (h Header) BlockAlign() int {
	return h.NumChannels * (h.BitDepth / bitsPerByte)
}

// ByteRate returns the number of data bytes per second.
func (h Header) ByteRate() int {
	return h.SampleRate * h.BlockAlign()
}

// Frame is an encoded PCM signal: a header plus interleaved little-endian
// signed 16-bit samples.
type Frame struct {
	Header Header
	Data   []byte
}

// SamplesPerChannel returns the number of samples in each channel.
func (f *Frame) SamplesPerChannel() int {
	blockAlign := f.Header.BlockAlign()
	if blockAlign == 0 {
		return 0
	}
	return len(f.Data) / blockAlign
}

// Sample returns the sample at index i of channel ch.
func (f *Frame) Sample(i, ch int) int16 {
	offset := (i*f.Header.NumChannels + ch) * bytesPerSample16
	return int16(binary.LittleEndian.Uint16(f.Data[offset:]))
}

// Channel extracts one channel as 16-bit integers.
func (f *Frame) Channel(ch int) []int16 {
	n := f.SamplesPerChannel()
	out := make([]int16, n)
	for i := range n {
		out[i] = f.Sample(i, ch)
	}
	return out
}

// Float64Channel extracts one channel scaled back to [-1, 1].
func (f *Frame) Float64Channel(ch int) []float64 {
	n := f.SamplesPerChannel()
	out := make([]float64, n)
	for i := range n {
		out[i] = float64(f.Sample(i, ch)) / maxInt16
	}
	return out
}

// Float64Channels returns every channel scaled back to [-1, 1], left first.
func (f *Frame) Float64Channels() [][]float64 {
	n := len(f.Data) / bytesPerSample16
	all := make([]float64, n)
	for i := range n {
		all[i] = float64(int16(binary.LittleEndian.Uint16(f.Data[i*bytesPerSample16:]))) / maxInt16
	}
	if f.Header.NumChannels == stereoChannels {
		left, right := DeinterleaveFromStereo(all)
		return [][]float64{left, right}
	}
	return [][]float64{all}
}

// IntBuffer converts the frame to a go-audio buffer.
func (f *Frame) IntBuffer() *audio.IntBuffer {
	n := len(f.Data) / bytesPerSample16
	data := make([]int, n)
	for i := range n {
		data[i] = int(int16(binary.LittleEndian.Uint16(f.Data[i*bytesPerSample16:])))
	}
	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: f.Header.NumChannels,
			SampleRate:  f.Header.SampleRate,
		},
		Data:           data,
		SourceBitDepth: f.Header.BitDepth,
	}
}

// header returns the canonical 44-byte RIFF/WAVE header for the frame.
func (f *Frame) header() []byte {
	dataSize := uint32(len(f.Data))
	header := make([]byte, wavHeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], wavRiffHeaderSize+dataSize)
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunkSize)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(f.Header.NumChannels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.Header.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(f.Header.ByteRate()))
	binary.LittleEndian.PutUint16(header[32:34], uint16(f.Header.BlockAlign()))
	binary.LittleEndian.PutUint16(header[34:36], uint16(f.Header.BitDepth))

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	return header
}

// WriteTo writes the frame as a canonical WAV stream: a 44-byte header
// immediately followed by the sample data. Data larger than the RIFF size
// fields can describe is rejected before anything is written.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	if err := validateDataSize(int64(len(f.Data))); err != nil {
		return 0, err
	}
	n, err := w.Write(f.header())
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(f.Data)
	total += int64(n)
	return total, err
}

// WriteFile writes the frame as a WAV file at path. The parent directory
// must already exist. An existing file is truncated.
func (f *Frame) WriteFile(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	// Capture close errors on the success path
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	w := bufio.NewWriterSize(file, wavWriterBufferSize)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}

// Decode reads a 16-bit PCM WAV stream into a Frame.
func Decode(r io.ReadSeeker) (*Frame, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid WAV stream", ErrUnsupportedFormat)
	}
	if decoder.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: audio format %d is not integer PCM", ErrUnsupportedFormat, decoder.WavAudioFormat)
	}
	if int(decoder.BitDepth) != BitDepth {
		return nil, fmt.Errorf("%w: %d-bit samples (want %d)", ErrUnsupportedFormat, decoder.BitDepth, BitDepth)
	}
	channels := int(decoder.NumChans)
	if channels != monoChannels && channels != stereoChannels {
		return nil, fmt.Errorf("%w: %d channels (want 1 or 2)", ErrUnsupportedFormat, channels)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	data := make([]byte, len(buf.Data)*bytesPerSample16)
	for i, s := range buf.Data {
		binary.LittleEndian.PutUint16(data[i*bytesPerSample16:], uint16(int16(s)))
	}

	return &Frame{
		Header: Header{
			NumChannels: channels,
			SampleRate:  int(decoder.SampleRate),
			BitDepth:    BitDepth,
		},
		Data: data,
	}, nil
}

// ReadFile opens and decodes a 16-bit PCM WAV file.
func ReadFile(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = file.Close() }()

	frame, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}
