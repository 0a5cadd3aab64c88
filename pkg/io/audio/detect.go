package audio

import (
	"github.com/pion/oscillator/pkg/wave"
)

// DetectChanges calls onChange with the properties of the first chunk and
// again every time the channel count or sample rate changes.
func DetectChanges(onChange func(Property)) TransformFunc {
	return func(r Reader) Reader {
		var currentProp Property
		return ReaderFunc(func() (wave.Audio, func(), error) {
			var dirty bool

			chunk, release, err := r.Read()
			if err != nil {
				return nil, noopRelease, err
			}

			info := chunk.ChunkInfo()
			if currentProp.ChannelCount != info.Channels {
				currentProp.ChannelCount = info.Channels
				dirty = true
			}

			if currentProp.SampleRate != info.SamplingRate {
				currentProp.SampleRate = info.SamplingRate
				dirty = true
			}

			if dirty {
				onChange(currentProp)
			}

			return chunk, release, nil
		})
	}
}
