// Package audio exposes oscillators as pull based streams of wave.Audio
// chunks and provides transforms over such streams.
package audio

import (
	"github.com/pion/oscillator/pkg/wave"
)

// Reader produces audio chunks. release must be called once the chunk is no
// longer used.
type Reader interface {
	Read() (chunk wave.Audio, release func(), err error)
}

// ReaderFunc is a proxy type to make easier for users to implement Reader.
type ReaderFunc func() (chunk wave.Audio, release func(), err error)

func (rf ReaderFunc) Read() (chunk wave.Audio, release func(), err error) {
	return rf()
}

// TransformFunc produces a new Reader that will produces a transformed audio
type TransformFunc func(r Reader) Reader

// Merge merges transforms and produces a new TransformFunc that will execute
// transforms in order
func Merge(transforms ...TransformFunc) TransformFunc {
	return func(r Reader) Reader {
		for _, transform := range transforms {
			if transform == nil {
				continue
			}

			r = transform(r)
		}

		return r
	}
}

func noopRelease() {}
