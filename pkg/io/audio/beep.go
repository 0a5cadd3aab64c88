package audio

import (
	"io"

	"github.com/faiface/beep"
	"github.com/pkg/errors"

	"github.com/pion/oscillator/pkg/wave"
)

type beepStreamer struct {
	r       Reader
	chunk   wave.Audio
	release func()
	offset  int
	err     error
}

// ToBeep adapts r to a beep.Streamer. Mono chunks are played on both beep
// channels, channels past the second are ignored.
func ToBeep(r Reader) beep.Streamer {
	if r == nil {
		panic("ToBeep requires a non-nil Reader")
	}

	return &beepStreamer{r: r}
}

func (b *beepStreamer) Stream(samples [][2]float64) (int, bool) {
	var n int
	for n < len(samples) {
		if b.chunk == nil || b.offset >= b.chunk.ChunkInfo().Len {
			b.drop()
			// Since there was an error, the stream has to be drained
			if b.err != nil {
				break
			}

			chunk, release, err := b.r.Read()
			if err != nil {
				b.err = err
				break
			}
			b.chunk, b.release, b.offset = chunk, release, 0
			continue
		}

		info := b.chunk.ChunkInfo()
		right := 0
		if info.Channels > 1 {
			right = 1
		}
		for ; n < len(samples) && b.offset < info.Len; n, b.offset = n+1, b.offset+1 {
			samples[n][0] = b.chunk.At(b.offset, 0).Float()
			samples[n][1] = b.chunk.At(b.offset, right).Float()
		}
	}

	return n, n > 0
}

func (b *beepStreamer) drop() {
	if b.release != nil {
		b.release()
	}
	b.chunk, b.release = nil, nil
}

// Err returns the error that stopped the stream. The end of the Reader isn't
// an error.
func (b *beepStreamer) Err() error {
	if errors.Is(b.err, io.EOF) {
		return nil
	}
	return b.err
}

type beepReader struct {
	s      beep.Streamer
	format beep.Format
	buff   [][2]float64
}

// FromBeep turns s into a Reader of float32 interleaved chunks holding up to
// frames frames. format describes s, only its sample rate and channel count
// are used.
func FromBeep(s beep.Streamer, format beep.Format, frames int) Reader {
	if s == nil {
		panic("FromBeep requires a non-nil beep.Streamer")
	}

	return &beepReader{
		s:      s,
		format: format,
		buff:   make([][2]float64, frames),
	}
}

func (r *beepReader) Read() (wave.Audio, func(), error) {
	n, ok := r.s.Stream(r.buff)
	if !ok {
		err := r.s.Err()
		if err == nil {
			err = io.EOF
		}

		return nil, noopRelease, err
	}

	channels := 2
	if r.format.NumChannels == 1 {
		channels = 1
	}
	out := wave.NewFloat32Interleaved(
		wave.ChunkInfo{Len: n, Channels: channels, SamplingRate: int(r.format.SampleRate)},
	)
	for i := 0; i < n; i++ {
		for ch := 0; ch < channels; ch++ {
			out.SetFloat32(i, ch, wave.Float32Sample(r.buff[i][ch]))
		}
	}

	return out, noopRelease, nil
}
