package audio

import (
	"github.com/pion/oscillator/pkg/wave"
	"github.com/pion/oscillator/pkg/wave/mixer"
)

// NewChannelMixer creates audio transform to mix audio channels.
func NewChannelMixer(channels int, mixer mixer.ChannelMixer) TransformFunc {
	return func(r Reader) Reader {
		return ReaderFunc(func() (wave.Audio, func(), error) {
			buff, release, err := r.Read()
			if err != nil {
				return nil, noopRelease, err
			}
			ci := buff.ChunkInfo()
			if ci.Channels == channels {
				return buff, release, nil
			}
			defer release()

			size := wave.ChunkInfo{Channels: channels, Len: ci.Len, SamplingRate: ci.SamplingRate}
			var mixed wave.Audio
			switch buff.(type) {
			case *wave.Int16Interleaved:
				mixed = wave.NewInt16Interleaved(size)
			case *wave.Int16NonInterleaved:
				mixed = wave.NewInt16NonInterleaved(size)
			case *wave.Float32NonInterleaved:
				mixed = wave.NewFloat32NonInterleaved(size)
			default:
				mixed = wave.NewFloat32Interleaved(size)
			}
			if err := mixer.Mix(mixed, buff); err != nil {
				return nil, noopRelease, err
			}
			return mixed, noopRelease, nil
		})
	}
}
