package audio

import (
	"github.com/pion/oscillator"
	"github.com/pion/oscillator/pkg/format"
	"github.com/pion/oscillator/pkg/wave"
)

// NewReader returns a Reader generating chunks of frames frames from osc.
// Consecutive chunks continue the waveform.
//
// Without a format the chunks come from the oscillator's allocator. Otherwise
// they're int16 buffers for int16 formats and float32 buffers for everything
// else, interleaved or planar as the format says.
func NewReader(osc *oscillator.Oscillator, frames int) Reader {
	if frames <= 0 {
		frames = oscillator.DefaultFrames
	}

	desc := osc.Descriptor()
	if !desc.Declared() {
		return ReaderFunc(func() (wave.Audio, func(), error) {
			v, err := osc.Generate(frames)
			if err != nil {
				return nil, noopRelease, err
			}
			return v.(wave.Audio), noopRelease, nil
		})
	}

	size := wave.ChunkInfo{
		Len:          frames,
		Channels:     osc.Channels(),
		SamplingRate: int(osc.SampleRate()),
	}
	return ReaderFunc(func() (wave.Audio, func(), error) {
		chunk := newChunk(desc, size)
		// The chunk type already encodes the format.
		err := osc.Fill(chunk, oscillator.WithFormat(""), oscillator.WithSampleRate(osc.SampleRate()))
		if err != nil {
			return nil, noopRelease, err
		}
		return chunk, noopRelease, nil
	})
}

func newChunk(desc format.Descriptor, size wave.ChunkInfo) wave.EditableAudio {
	switch {
	case desc.Encoding == format.Int16 && desc.Layout == format.Planar:
		return wave.NewInt16NonInterleaved(size)
	case desc.Encoding == format.Int16:
		return wave.NewInt16Interleaved(size)
	case desc.Layout == format.Planar:
		return wave.NewFloat32NonInterleaved(size)
	}
	return wave.NewFloat32Interleaved(size)
}
