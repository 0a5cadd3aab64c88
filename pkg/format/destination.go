package format

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/pion/oscillator/pkg/wave"
)

var (
	// ErrShapeMismatch is returned when a destination disagrees with the
	// configured channel count, layout or encoding.
	ErrShapeMismatch = errors.New("destination shape mismatch")
	// ErrUnsupportedDestination is returned for destination types that can't
	// be written to.
	ErrUnsupportedDestination = errors.New("unsupported destination")
	// ErrNilDestination is returned for nil buffers.
	ErrNilDestination = errors.New("nil destination")
)

// Destination is a buffer amplitudes are written into. Set quantizes the
// amplitude for the destination's encoding and stores it at the position
// given by the layout.
type Destination interface {
	Frames() int
	Channels() int
	Set(frame, ch int, amplitude float64)
	// Value returns the underlying buffer.
	Value() interface{}
}

// Allocate creates a destination for frames frames of channels channels as
// described by d. Audio containers without an explicit layout are obtained
// from alloc, or wave.DefaultAllocator when alloc is nil.
func Allocate(d Descriptor, frames, channels int, sampleRate float64, alloc wave.Allocator) (Destination, error) {
	if frames < 0 || channels <= 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "can't allocate %d frames of %d channels", frames, channels)
	}

	n := frames * channels
	switch d.Container {
	case ContainerAudio:
		size := wave.ChunkInfo{Len: frames, Channels: channels, SamplingRate: int(sampleRate)}
		return wrapAudio(d, newAudio(d, size, alloc), channels)
	case ContainerSequence:
		return newSlice(make([]float64, n), Float64, frames, channels, d.Layout), nil
	case ContainerBytes:
		return newBytes(make([]byte, n*d.Encoding.Size()), d.Encoding, frames, channels, d.Layout), nil
	}

	switch d.Encoding {
	case Int8:
		return newSlice(make([]int8, n), d.Encoding, frames, channels, d.Layout), nil
	case Uint8:
		return newSlice(make([]uint8, n), d.Encoding, frames, channels, d.Layout), nil
	case Int16:
		return newSlice(make([]int16, n), d.Encoding, frames, channels, d.Layout), nil
	case Uint16:
		return newSlice(make([]uint16, n), d.Encoding, frames, channels, d.Layout), nil
	case Int32:
		return newSlice(make([]int32, n), d.Encoding, frames, channels, d.Layout), nil
	case Uint32:
		return newSlice(make([]uint32, n), d.Encoding, frames, channels, d.Layout), nil
	case Float32:
		return newSlice(make([]float32, n), d.Encoding, frames, channels, d.Layout), nil
	case Float64:
		return newSlice(make([]float64, n), d.Encoding, frames, channels, d.Layout), nil
	}
	return nil, errors.Wrapf(ErrInvalidFormat, "no %s slices", d.Encoding)
}

func newAudio(d Descriptor, size wave.ChunkInfo, alloc wave.Allocator) wave.EditableAudio {
	switch {
	case d.Encoding == Int16 && d.Layout == Planar:
		return wave.NewInt16NonInterleaved(size)
	case d.Encoding == Int16:
		return wave.NewInt16Interleaved(size)
	case d.hasLayout && d.Layout == Interleaved:
		return wave.NewFloat32Interleaved(size)
	case d.hasLayout:
		return wave.NewFloat32NonInterleaved(size)
	case alloc != nil:
		return alloc(size)
	}
	return wave.DefaultAllocator(size)
}

// Wrap turns an existing buffer into a destination. channels is the configured
// channel count, zero meaning "take it from the buffer" for audio buffers and 1
// for everything else.
//
// Supported buffers are typed slices of every Encoding, []byte for raw
// descriptors and any wave.EditableAudio. Wrap fails without touching dst when
// its element type, length or channel count disagrees with d and channels.
func Wrap(d Descriptor, dst interface{}, channels int) (Destination, error) {
	switch v := dst.(type) {
	case []int8:
		return wrapSlice(d, v, Int8, channels)
	case []uint8:
		if d.Container == ContainerBytes {
			return wrapBytes(d, v, channels)
		}
		return wrapSlice(d, v, Uint8, channels)
	case []int16:
		return wrapSlice(d, v, Int16, channels)
	case []uint16:
		return wrapSlice(d, v, Uint16, channels)
	case []int32:
		return wrapSlice(d, v, Int32, channels)
	case []uint32:
		return wrapSlice(d, v, Uint32, channels)
	case []float32:
		return wrapSlice(d, v, Float32, channels)
	case []float64:
		return wrapSlice(d, v, Float64, channels)
	case wave.EditableAudio:
		return wrapAudio(d, v, channels)
	}
	return nil, errors.Wrapf(ErrUnsupportedDestination, "%T", dst)
}

func wrapSlice[T number](d Descriptor, data []T, enc Encoding, channels int) (Destination, error) {
	if d.declared {
		switch {
		case d.Container == ContainerSequence && enc == Float64:
		case d.Container != ContainerSlice:
			return nil, errors.Wrapf(ErrShapeMismatch, "%s descriptor can't write into []%s", d.Container, enc)
		case d.Encoding != enc:
			return nil, errors.Wrapf(ErrShapeMismatch, "%s descriptor can't write into []%s", d.Encoding, enc)
		}
	}

	frames, channels, err := framesOf(len(data), 1, channels)
	if err != nil {
		return nil, err
	}
	return newSlice(data, enc, frames, channels, d.sliceLayout()), nil
}

func wrapBytes(d Descriptor, data []byte, channels int) (Destination, error) {
	frames, channels, err := framesOf(len(data), d.Encoding.Size(), channels)
	if err != nil {
		return nil, err
	}
	return newBytes(data, d.Encoding, frames, channels, d.sliceLayout()), nil
}

// sliceLayout is the layout used for flat buffers. The default descriptor
// describes planar audio buffers, flat buffers stay interleaved.
func (d Descriptor) sliceLayout() Layout {
	if !d.declared {
		return Interleaved
	}
	return d.Layout
}

func framesOf(n, width, channels int) (frames, ch int, err error) {
	if channels <= 0 {
		channels = 1
	}
	if n%(width*channels) != 0 {
		return 0, 0, errors.Wrapf(ErrShapeMismatch, "%d bytes don't split into %d channels of %d byte samples", n, channels, width)
	}
	return n / (width * channels), channels, nil
}

func wrapAudio(d Descriptor, a wave.EditableAudio, channels int) (Destination, error) {
	var (
		enc    Encoding
		layout Layout
		dst    Destination
		isNil  bool
	)
	switch v := a.(type) {
	case *wave.Float32Interleaved:
		enc, layout, isNil = Float32, Interleaved, v == nil
		dst = &float32InterleavedDestination{v}
	case *wave.Float32NonInterleaved:
		enc, layout, isNil = Float32, Planar, v == nil
		dst = &float32PlanarDestination{v}
	case *wave.Int16Interleaved:
		enc, layout, isNil = Int16, Interleaved, v == nil
		dst = &int16InterleavedDestination{v}
	case *wave.Int16NonInterleaved:
		enc, layout, isNil = Int16, Planar, v == nil
		dst = &int16PlanarDestination{v}
	default:
		dst = &audioDestination{a}
	}
	if isNil {
		return nil, errors.Wrapf(ErrNilDestination, "%T", a)
	}

	info := a.ChunkInfo()
	if channels != 0 && info.Channels != channels {
		return nil, errors.Wrapf(ErrShapeMismatch, "audio has %d channels, want %d", info.Channels, channels)
	}
	if info.Channels <= 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "audio has %d channels", info.Channels)
	}

	if !d.declared {
		return dst, nil
	}
	if d.Container != ContainerAudio && d.Container != ContainerSlice {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s descriptor can't write into %T", d.Container, a)
	}
	if enc == 0 {
		// Other buffers only reveal their encoding through their samples, and
		// keep their layout to themselves.
		if d.hasLayout {
			return nil, errors.Wrapf(ErrShapeMismatch, "%s descriptor can't check the layout of %T", d.Layout, a)
		}
		if info.Len == 0 {
			return dst, nil
		}
		var ok bool
		if enc, ok = sampleEncoding(a.At(0, 0)); !ok {
			return nil, errors.Wrapf(ErrShapeMismatch, "%s descriptor can't write %T samples", d.Encoding, a.At(0, 0))
		}
	}
	if d.Encoding != enc {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s descriptor can't write into %s audio", d.Encoding, enc)
	}
	if d.hasLayout && d.Layout != layout {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s descriptor can't write into %s audio", d.Layout, layout)
	}
	return dst, nil
}

func sampleEncoding(s wave.Sample) (Encoding, bool) {
	switch s.(type) {
	case wave.Float32Sample:
		return Float32, true
	case wave.Float64Sample:
		return Float64, true
	case wave.Int16Sample:
		return Int16, true
	}
	return 0, false
}

type number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~float32 | ~float64
}

type sliceDestination[T number] struct {
	data     []T
	enc      Encoding
	frames   int
	channels int
	layout   Layout
}

func newSlice[T number](data []T, enc Encoding, frames, channels int, layout Layout) *sliceDestination[T] {
	return &sliceDestination[T]{
		data:     data,
		enc:      enc,
		frames:   frames,
		channels: channels,
		layout:   layout,
	}
}

func (d *sliceDestination[T]) Frames() int        { return d.frames }
func (d *sliceDestination[T]) Channels() int      { return d.channels }
func (d *sliceDestination[T]) Value() interface{} { return d.data }

func (d *sliceDestination[T]) Set(frame, ch int, a float64) {
	d.data[d.layout.Index(frame, ch, d.frames, d.channels)] = T(d.enc.Quantize(a))
}

// bytesDestination packs samples in host byte order.
type bytesDestination struct {
	data     []byte
	enc      Encoding
	width    int
	frames   int
	channels int
	layout   Layout
	put      func(b []byte, v float64)
}

func newBytes(data []byte, enc Encoding, frames, channels int, layout Layout) *bytesDestination {
	order := binary.NativeEndian
	d := &bytesDestination{
		data:     data,
		enc:      enc,
		width:    enc.Size(),
		frames:   frames,
		channels: channels,
		layout:   layout,
	}
	switch enc {
	case Int8:
		d.put = func(b []byte, v float64) { b[0] = byte(int8(v)) }
	case Uint8:
		d.put = func(b []byte, v float64) { b[0] = byte(v) }
	case Int16:
		d.put = func(b []byte, v float64) { order.PutUint16(b, uint16(int16(v))) }
	case Uint16:
		d.put = func(b []byte, v float64) { order.PutUint16(b, uint16(v)) }
	case Int32:
		d.put = func(b []byte, v float64) { order.PutUint32(b, uint32(int32(v))) }
	case Uint32:
		d.put = func(b []byte, v float64) { order.PutUint32(b, uint32(v)) }
	case Float32:
		d.put = func(b []byte, v float64) { order.PutUint32(b, math.Float32bits(float32(v))) }
	default:
		d.put = func(b []byte, v float64) { order.PutUint64(b, math.Float64bits(v)) }
	}
	return d
}

func (d *bytesDestination) Frames() int        { return d.frames }
func (d *bytesDestination) Channels() int      { return d.channels }
func (d *bytesDestination) Value() interface{} { return d.data }

func (d *bytesDestination) Set(frame, ch int, a float64) {
	offset := d.layout.Index(frame, ch, d.frames, d.channels) * d.width
	d.put(d.data[offset:offset+d.width], d.enc.Quantize(a))
}

type float32InterleavedDestination struct {
	a *wave.Float32Interleaved
}

func (d *float32InterleavedDestination) Frames() int        { return d.a.Size.Len }
func (d *float32InterleavedDestination) Channels() int      { return d.a.Size.Channels }
func (d *float32InterleavedDestination) Value() interface{} { return d.a }

func (d *float32InterleavedDestination) Set(frame, ch int, a float64) {
	d.a.SetFloat32(frame, ch, wave.Float32Sample(a))
}

type float32PlanarDestination struct {
	a *wave.Float32NonInterleaved
}

func (d *float32PlanarDestination) Frames() int        { return d.a.Size.Len }
func (d *float32PlanarDestination) Channels() int      { return d.a.Size.Channels }
func (d *float32PlanarDestination) Value() interface{} { return d.a }

func (d *float32PlanarDestination) Set(frame, ch int, a float64) {
	d.a.SetFloat32(frame, ch, wave.Float32Sample(a))
}

type int16InterleavedDestination struct {
	a *wave.Int16Interleaved
}

func (d *int16InterleavedDestination) Frames() int        { return d.a.Size.Len }
func (d *int16InterleavedDestination) Channels() int      { return d.a.Size.Channels }
func (d *int16InterleavedDestination) Value() interface{} { return d.a }

func (d *int16InterleavedDestination) Set(frame, ch int, a float64) {
	d.a.SetInt16(frame, ch, wave.Int16Sample(Int16.Quantize(a)))
}

type int16PlanarDestination struct {
	a *wave.Int16NonInterleaved
}

func (d *int16PlanarDestination) Frames() int        { return d.a.Size.Len }
func (d *int16PlanarDestination) Channels() int      { return d.a.Size.Channels }
func (d *int16PlanarDestination) Value() interface{} { return d.a }

func (d *int16PlanarDestination) Set(frame, ch int, a float64) {
	d.a.SetInt16(frame, ch, wave.Int16Sample(Int16.Quantize(a)))
}

// audioDestination writes into any other EditableAudio through its own sample
// format conversion.
type audioDestination struct {
	a wave.EditableAudio
}

func (d *audioDestination) Frames() int        { return d.a.ChunkInfo().Len }
func (d *audioDestination) Channels() int      { return d.a.ChunkInfo().Channels }
func (d *audioDestination) Value() interface{} { return d.a }

func (d *audioDestination) Set(frame, ch int, a float64) {
	d.a.Set(frame, ch, wave.Float64Sample(a))
}
