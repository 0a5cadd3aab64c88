package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pion/oscillator/pkg/wave"
)

func TestDetectChanges(t *testing.T) {
	buildSource := func(p Property) (Reader, func(Property)) {
		return ReaderFunc(func() (wave.Audio, func(), error) {
				return wave.NewFloat32Interleaved(wave.ChunkInfo{
					Len:          0,
					Channels:     p.ChannelCount,
					SamplingRate: p.SampleRate,
				}), noopRelease, nil
			}), func(newProp Property) {
				p = newProp
			}
	}

	t.Run("OnChangeCalledBeforeFirstFrame", func(t *testing.T) {
		var detectBeforeFirstChunk bool
		var actual Property
		expected := Property{ChannelCount: 2, SampleRate: 48000}
		src, _ := buildSource(expected)
		src = DetectChanges(func(p Property) {
			actual = p
			detectBeforeFirstChunk = true
		})(src)

		_, _, err := src.Read()
		require.NoError(t, err)
		assert.True(t, detectBeforeFirstChunk, "on change callback should have called before first chunk")
		assert.Equal(t, expected, actual)
	})

	t.Run("DetectChangesOnEveryUpdate", func(t *testing.T) {
		var actual Property
		var calls int
		expected := Property{ChannelCount: 2, SampleRate: 48000}
		src, update := buildSource(expected)
		src = DetectChanges(func(p Property) {
			actual = p
			calls++
		})(src)

		for channelCount := 1; channelCount < 8; channelCount++ {
			for sampleRate := 12000; sampleRate <= 48000; sampleRate += 4000 {
				expected.ChannelCount = channelCount
				expected.SampleRate = sampleRate
				update(expected)
				_, _, err := src.Read()
				require.NoError(t, err)
				assert.Equal(t, expected, actual)
			}
		}

		calls = 0
		_, _, err := src.Read()
		require.NoError(t, err)
		assert.Zero(t, calls)
	})
}
