// Package format maps normalized amplitudes into sample buffers. It parses
// format descriptors, quantizes amplitudes into numeric encodings and writes
// them into interleaved or planar destinations.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidFormat is returned for descriptors that can't be parsed.
var ErrInvalidFormat = errors.New("invalid format descriptor")

// Container is the kind of buffer samples are written into.
type Container int

// Containers.
const (
	// ContainerAudio is a multi-channel wave.EditableAudio buffer.
	ContainerAudio Container = iota
	// ContainerSlice is a typed slice with one element per sample.
	ContainerSlice
	// ContainerSequence is a plain []float64 with no fixed element width.
	ContainerSequence
	// ContainerBytes is a raw []byte holding Encoding.Size() bytes per sample.
	ContainerBytes
)

func (c Container) String() string {
	switch c {
	case ContainerAudio:
		return "audiobuffer"
	case ContainerSlice:
		return "slice"
	case ContainerSequence:
		return "generic-sequence"
	case ContainerBytes:
		return "raw-bytes"
	}
	return fmt.Sprintf("Container(%d)", int(c))
}

// Layout is the order channels are stored in.
type Layout int

// Layouts.
const (
	// Interleaved stores frames one after another, channel-minor.
	Interleaved Layout = iota
	// Planar stores every channel in its own contiguous region.
	Planar
)

func (l Layout) String() string {
	if l == Planar {
		return "planar"
	}
	return "interleaved"
}

// Index returns where the sample of channel ch in frame lives in a buffer of
// frames frames.
func (l Layout) Index(frame, ch, frames, channels int) int {
	if l == Planar {
		return ch*frames + frame
	}
	return frame*channels + ch
}

// Descriptor is a parsed format descriptor.
type Descriptor struct {
	Container Container
	Encoding  Encoding
	// SampleRate overrides the oscillator sample rate when non-zero.
	SampleRate float64
	Layout     Layout

	declared  bool
	hasLayout bool
}

// Default returns the descriptor of the empty format: float32 audio buffers
// obtained from the allocator.
func Default() Descriptor {
	return Descriptor{
		Container: ContainerAudio,
		Encoding:  Float32,
		Layout:    Planar,
	}
}

var encodingTokens = map[string]Encoding{
	"int8":    Int8,
	"uint8":   Uint8,
	"int16":   Int16,
	"uint16":  Uint16,
	"int32":   Int32,
	"uint32":  Uint32,
	"float32": Float32,
	"float64": Float64,
}

var containerTokens = map[string]Container{
	"audiobuffer":      ContainerAudio,
	"audio":            ContainerAudio,
	"generic-sequence": ContainerSequence,
	"array":            ContainerSequence,
	"raw-bytes":        ContainerBytes,
	"arraybuffer":      ContainerBytes,
	"buffer":           ContainerBytes,
}

var layoutTokens = map[string]Layout{
	"interleaved": Interleaved,
	"planar":      Planar,
}

// Parse parses a whitespace separated descriptor such as "int16 48000 planar".
// Tokens may come in any order: at most one encoding, one container, one
// positive number taken as the sample rate and one layout. Unknown and repeated
// tokens are errors. The empty descriptor yields Default().
func Parse(s string) (Descriptor, error) {
	tokens := strings.Fields(strings.ToLower(s))
	if len(tokens) == 0 {
		return Default(), nil
	}

	d := Descriptor{Container: ContainerSlice, declared: true}
	var hasEncoding, hasContainer, hasRate bool
	for _, tok := range tokens {
		if enc, ok := encodingTokens[tok]; ok {
			if hasEncoding {
				return Descriptor{}, errors.Wrapf(ErrInvalidFormat, "%q: more than one encoding", s)
			}
			d.Encoding, hasEncoding = enc, true
			continue
		}
		if c, ok := containerTokens[tok]; ok {
			if hasContainer {
				return Descriptor{}, errors.Wrapf(ErrInvalidFormat, "%q: more than one container", s)
			}
			d.Container, hasContainer = c, true
			continue
		}
		if l, ok := layoutTokens[tok]; ok {
			if d.hasLayout {
				return Descriptor{}, errors.Wrapf(ErrInvalidFormat, "%q: more than one layout", s)
			}
			d.Layout, d.hasLayout = l, true
			continue
		}

		rate, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Descriptor{}, errors.Wrapf(ErrInvalidFormat, "%q: unknown token %q", s, tok)
		}
		if hasRate {
			return Descriptor{}, errors.Wrapf(ErrInvalidFormat, "%q: more than one sample rate", s)
		}
		if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
			return Descriptor{}, errors.Wrapf(ErrInvalidFormat, "%q: sample rate %q isn't positive", s, tok)
		}
		d.SampleRate, hasRate = rate, true
	}

	switch d.Container {
	case ContainerSequence:
		if hasEncoding && d.Encoding != Float64 {
			return Descriptor{}, errors.Wrapf(ErrInvalidFormat, "%q: generic sequences have no %s elements", s, d.Encoding)
		}
		d.Encoding = Float64
	case ContainerBytes:
		if !hasEncoding {
			d.Encoding = Uint8
		}
	case ContainerAudio:
		if !hasEncoding {
			d.Encoding = Float32
		}
		if d.Encoding != Float32 && d.Encoding != Int16 {
			return Descriptor{}, errors.Wrapf(ErrInvalidFormat, "%q: audio buffers hold float32 or int16, not %s", s, d.Encoding)
		}
		if !d.hasLayout {
			d.Layout = Planar
		}
	default:
		if !hasEncoding {
			d.Encoding = Float32
		}
	}
	return d, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Descriptor {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Declared reports whether d was parsed from a non-empty descriptor.
func (d Descriptor) Declared() bool { return d.declared }

// HasLayout reports whether the descriptor named a layout explicitly.
func (d Descriptor) HasLayout() bool { return d.hasLayout }

// String returns a descriptor that parses back into d.
func (d Descriptor) String() string {
	if !d.declared {
		return ""
	}

	tokens := make([]string, 0, 4)
	switch d.Container {
	case ContainerSlice:
		tokens = append(tokens, d.Encoding.String())
	case ContainerSequence:
		tokens = append(tokens, d.Container.String())
	default:
		tokens = append(tokens, d.Encoding.String(), d.Container.String())
	}
	if d.SampleRate != 0 {
		tokens = append(tokens, strconv.FormatFloat(d.SampleRate, 'f', -1, 64))
	}
	if d.hasLayout {
		tokens = append(tokens, d.Layout.String())
	}
	return strings.Join(tokens, " ")
}
