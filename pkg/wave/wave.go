// Package wave implements a basic audio data library.
package wave

// Audio is a finite series of audio Sample values.
type Audio interface {
	SampleFormat() SampleFormat
	ChunkInfo() ChunkInfo
	At(i, ch int) Sample
}

// EditableAudio is an editable finite series of audio Sample values.
type EditableAudio interface {
	Audio
	Set(i, ch int, s Sample)
}

// ChunkInfo contains size of the audio chunk.
type ChunkInfo struct {
	Len          int
	Channels     int
	SamplingRate int
}

// Allocator creates an empty audio chunk of the given size.
type Allocator func(size ChunkInfo) EditableAudio

// DefaultAllocator allocates one contiguous float32 buffer per channel.
func DefaultAllocator(size ChunkInfo) EditableAudio {
	return NewFloat32NonInterleaved(size)
}

// SampleFormat can convert any Sample to one from its own sample format.
type SampleFormat interface {
	Convert(c Sample) Sample
}

// SampleFormatFunc returns a SampleFormat that invokes f to implement the conversion.
func SampleFormatFunc(f func(Sample) Sample) SampleFormat {
	return &sampleFormatFunc{f}
}

type sampleFormatFunc struct {
	f func(Sample) Sample
}

func (f *sampleFormatFunc) Convert(s Sample) Sample {
	return f.f(s)
}

// SampleFormats for the standard formats.
var (
	Int16SampleFormat = SampleFormatFunc(func(s Sample) Sample {
		if _, ok := s.(Int16Sample); ok {
			return s
		}
		return Int16SampleFromFloat(s.Float())
	})
	Float32SampleFormat = SampleFormatFunc(func(s Sample) Sample {
		if _, ok := s.(Float32Sample); ok {
			return s
		}
		return Float32Sample(s.Float())
	})
)

// Sample can convert itself to a normalized level.
type Sample interface {
	// Float returns the audio level value for the sample.
	// Full scale ranges within [-1, 1].
	Float() float64
}
