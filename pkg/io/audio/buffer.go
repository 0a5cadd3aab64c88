package audio

import (
	"github.com/pkg/errors"

	"github.com/pion/oscillator/pkg/wave"
)

var errUnsupported = errors.New("unsupported audio format")

// NewBuffer creates audio transform to buffer signal to have exact nSample samples.
func NewBuffer(nSamples int) TransformFunc {
	return func(r Reader) Reader {
		var inBuff wave.Audio

		return ReaderFunc(func() (wave.Audio, func(), error) {
			for inBuff == nil || inBuff.ChunkInfo().Len < nSamples {
				buff, release, err := r.Read()
				if err != nil {
					return nil, noopRelease, err
				}
				inBuff, err = appendChunk(inBuff, buff)
				release()
				if err != nil {
					return nil, noopRelease, err
				}
			}

			var out wave.Audio
			out, inBuff = splitChunk(inBuff, nSamples)
			return out, noopRelease, nil
		})
	}
}

// appendChunk appends b to the pending samples in ib. Pending samples of
// another type or channel count are dropped.
func appendChunk(ib wave.Audio, b wave.Audio) (wave.Audio, error) {
	size := b.ChunkInfo()
	if ib != nil && ib.ChunkInfo().Channels != size.Channels {
		ib = nil
	}
	empty := wave.ChunkInfo{Channels: size.Channels, SamplingRate: size.SamplingRate}

	switch b := b.(type) {
	case *wave.Float32Interleaved:
		dst, ok := ib.(*wave.Float32Interleaved)
		if !ok {
			dst = &wave.Float32Interleaved{Size: empty}
		}
		dst.Data = append(dst.Data, b.Data...)
		dst.Size.Len += b.Size.Len
		return dst, nil

	case *wave.Int16Interleaved:
		dst, ok := ib.(*wave.Int16Interleaved)
		if !ok {
			dst = &wave.Int16Interleaved{Size: empty}
		}
		dst.Data = append(dst.Data, b.Data...)
		dst.Size.Len += b.Size.Len
		return dst, nil

	case *wave.Float32NonInterleaved:
		dst, ok := ib.(*wave.Float32NonInterleaved)
		if !ok {
			dst = &wave.Float32NonInterleaved{Size: empty, Data: make([][]float32, size.Channels)}
		}
		for ch := range dst.Data {
			dst.Data[ch] = append(dst.Data[ch], b.Data[ch]...)
		}
		dst.Size.Len += b.Size.Len
		return dst, nil

	case *wave.Int16NonInterleaved:
		dst, ok := ib.(*wave.Int16NonInterleaved)
		if !ok {
			dst = &wave.Int16NonInterleaved{Size: empty, Data: make([][]int16, size.Channels)}
		}
		for ch := range dst.Data {
			dst.Data[ch] = append(dst.Data[ch], b.Data[ch]...)
		}
		dst.Size.Len += b.Size.Len
		return dst, nil
	}
	return nil, errUnsupported
}

// splitChunk copies the first n samples of ib out and returns them along
// with the remainder.
func splitChunk(ib wave.Audio, n int) (wave.Audio, wave.Audio) {
	switch ib := ib.(type) {
	case *wave.Float32Interleaved:
		out := wave.NewFloat32Interleaved(wave.ChunkInfo{Len: n, Channels: ib.Size.Channels, SamplingRate: ib.Size.SamplingRate})
		copy(out.Data, ib.Data)
		return out, ib.SubAudio(n, ib.Size.Len-n)

	case *wave.Int16Interleaved:
		out := wave.NewInt16Interleaved(wave.ChunkInfo{Len: n, Channels: ib.Size.Channels, SamplingRate: ib.Size.SamplingRate})
		copy(out.Data, ib.Data)
		ib.Data = ib.Data[n*ib.Size.Channels:]
		ib.Size.Len -= n
		return out, ib

	case *wave.Float32NonInterleaved:
		out := wave.NewFloat32NonInterleaved(wave.ChunkInfo{Len: n, Channels: ib.Size.Channels, SamplingRate: ib.Size.SamplingRate})
		for ch := range out.Data {
			copy(out.Data[ch], ib.Data[ch])
		}
		return out, ib.SubAudio(n, ib.Size.Len-n)

	case *wave.Int16NonInterleaved:
		out := wave.NewInt16NonInterleaved(wave.ChunkInfo{Len: n, Channels: ib.Size.Channels, SamplingRate: ib.Size.SamplingRate})
		for ch := range out.Data {
			copy(out.Data[ch], ib.Data[ch])
			ib.Data[ch] = ib.Data[ch][n:]
		}
		ib.Size.Len -= n
		return out, ib
	}
	return nil, nil
}
