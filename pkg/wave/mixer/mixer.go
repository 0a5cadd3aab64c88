// Package mixer converts audio between channel counts.
package mixer

import (
	"github.com/pkg/errors"

	"github.com/pion/oscillator/pkg/wave"
)

var (
	errSizeMismatch = errors.New("buffer size mismatch")
	errNotSettable  = errors.New("destination buffer is not settable")
)

// ChannelMixer mixes audio into a given channel count.
type ChannelMixer interface {
	Mix(dst wave.Audio, src wave.Audio) error
}

// MonoMixer averages all source channels and copies the mean into every
// destination channel.
type MonoMixer struct {
}

func (m *MonoMixer) Mix(dst wave.Audio, src wave.Audio) error {
	if dst.ChunkInfo().Len != src.ChunkInfo().Len {
		return errSizeMismatch
	}
	dstSetter, ok := dst.(wave.EditableAudio)
	if !ok {
		return errNotSettable
	}

	n := src.ChunkInfo().Len
	channels := src.ChunkInfo().Channels
	dstChannels := dst.ChunkInfo().Channels
	for i := 0; i < n; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += src.At(i, ch).Float()
		}
		mean := wave.Float64Sample(sum / float64(channels))

		for ch := 0; ch < dstChannels; ch++ {
			dstSetter.Set(i, ch, mean)
		}
	}
	return nil
}
