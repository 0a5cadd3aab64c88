// Package oscillator generates periodic waveforms into sample buffers.
//
// An Oscillator keeps a sample counter so consecutive calls continue the
// waveform where the previous call stopped. Every parameter may be a constant
// or a function of the sample being generated, see package param.
package oscillator

import (
	"math"
	"slices"

	"github.com/google/uuid"
	"github.com/pion/logging"
	"github.com/pkg/errors"

	ilogging "github.com/pion/oscillator/internal/logging"
	"github.com/pion/oscillator/pkg/format"
	"github.com/pion/oscillator/pkg/param"
	"github.com/pion/oscillator/pkg/wave"
	"github.com/pion/oscillator/pkg/waveform"
)

const (
	// DefaultFrames is the number of frames produced by Next.
	DefaultFrames = 1024
	// DefaultSampleRate is used when neither the config nor the format
	// descriptor set a sample rate.
	DefaultSampleRate = 44100
	// DefaultFrequency is used when no frequency is configured and the sample
	// rate can represent it.
	DefaultFrequency = 440
)

var (
	ErrNegativeFrames    = errors.New("negative frame count")
	ErrNilDestination    = format.ErrNilDestination
	ErrInvalidChannels   = errors.New("invalid channel count")
	ErrInvalidSampleRate = errors.New("invalid sample rate")
)

// Type selects what an oscillator plays: a built-in waveform or a custom
// function. The zero Type is a sine.
type Type struct {
	name string
	fn   func(param.Context) float64
}

// Waveform returns the built-in waveform called name, see waveform.Parse.
// Unknown names are reported by New or by the call using them.
func Waveform(name string) Type {
	return Type{name: name}
}

// Custom returns a Type evaluating fn for every sample. The returned amplitude
// is written as is, phase and shape parameters aren't applied.
func Custom(fn func(param.Context) float64) Type {
	return Type{fn: fn}
}

func (t Type) String() string {
	switch {
	case t.fn != nil:
		return "custom"
	case t.name == "":
		return waveform.KindSine.String()
	}
	return t.name
}

// Config is the template an Oscillator is built from. Unset parameters take
// their defaults.
type Config struct {
	Type Type
	// Frequency in Hz. Defaults to DefaultFrequency, or a quarter of the
	// sample rate when that's too low to represent it.
	Frequency param.Float
	// SampleRate defaults to DefaultSampleRate.
	SampleRate float64
	// Channels defaults to 1. When zero, Fill adopts the channel count of
	// multi-channel audio destinations.
	Channels int
	// Format is a descriptor as accepted by format.Parse. The empty format
	// yields audio buffers obtained from Allocator.
	Format    string
	Allocator wave.Allocator

	// Phase offset in periods.
	Phase param.Float
	// Ratio is the duty ratio of triangle, square and pulse waves. Defaults
	// to 0.5, or 0 for pulse.
	Ratio param.Float
	// Detune in cents.
	Detune param.Float
	// Inversed flips the sawtooth.
	Inversed param.Bool
	// Normalize scales Fourier series so their peak is 1.
	Normalize param.Bool
	// Real and Imag are the cosine and sine coefficients of a Fourier series,
	// indexed by harmonic. When both are unset the series is a cosine.
	Real param.Floats
	Imag param.Floats

	// Fields are custom values exposed to computed parameters through
	// param.Context.
	Fields map[string]param.Value

	LoggerFactory logging.LoggerFactory
}

var (
	defaultReal = []float64{0, 1}
	defaultImag = []float64{0, 0}
)

// Oscillator generates samples from a Config. It isn't safe for concurrent use.
type Oscillator struct {
	config     Config
	id         string
	desc       format.Descriptor
	sampleRate float64
	count      int64
	log        logging.LeveledLogger
}

// New validates config and creates an Oscillator with its counter at zero.
func New(config Config) (*Oscillator, error) {
	o := &Oscillator{
		config: config,
		id:     uuid.NewString(),
		log:    ilogging.NewLogger(config.LoggerFactory, "oscillator"),
	}

	c, err := o.prepare(nil)
	if err != nil {
		return nil, err
	}
	o.desc, o.sampleRate = c.desc, c.sampleRate

	if config.Frequency.Kind() == param.KindConstant {
		if f := config.Frequency.Resolve(param.Context{}); f >= c.sampleRate/2 {
			o.log.Warnf("%s: frequency %v Hz isn't below the Nyquist frequency of %v Hz", o.id, f, c.sampleRate/2)
		}
	}
	o.log.Debugf("%s: created %s oscillator, format %q at %v Hz", o.id, config.Type, c.desc.String(), c.sampleRate)
	return o, nil
}

// ID returns the unique identifier of the oscillator.
func (o *Oscillator) ID() string {
	return o.id
}

// Count returns the index of the next sample produced by a call without a
// count or time override.
func (o *Oscillator) Count() int64 {
	return o.count
}

// Reset rewinds the counter to zero.
func (o *Oscillator) Reset() {
	o.count = 0
}

// Channels returns the configured channel count.
func (o *Oscillator) Channels() int {
	if o.config.Channels == 0 {
		return 1
	}
	return o.config.Channels
}

// SampleRate returns the sample rate in effect, taking the format descriptor
// into account.
func (o *Oscillator) SampleRate() float64 {
	return o.sampleRate
}

// Descriptor returns the parsed format.
func (o *Oscillator) Descriptor() format.Descriptor {
	return o.desc
}

// Generate allocates a buffer of frames frames as described by the format and
// fills it. The returned value is a typed slice, a []byte or a
// wave.EditableAudio depending on the format.
func (o *Oscillator) Generate(frames int, opts ...Option) (interface{}, error) {
	if frames < 0 {
		return nil, errors.Wrapf(ErrNegativeFrames, "%d", frames)
	}

	c, err := o.prepare(opts)
	if err != nil {
		return nil, err
	}

	channels := c.Channels
	if channels == 0 {
		channels = 1
	}
	dst, err := format.Allocate(c.desc, frames, channels, c.sampleRate, c.Allocator)
	if err != nil {
		return nil, err
	}

	o.run(c, dst)
	return dst.Value(), nil
}

// Next is Generate(DefaultFrames).
func (o *Oscillator) Next() (interface{}, error) {
	return o.Generate(DefaultFrames)
}

// Fill overwrites dst with as many frames as it holds. dst is a typed slice,
// a []byte for raw formats or a wave.EditableAudio. Nothing is written when
// dst disagrees with the format or the channel count.
func (o *Oscillator) Fill(dst interface{}, opts ...Option) error {
	if dst == nil {
		return ErrNilDestination
	}

	c, err := o.prepare(opts)
	if err != nil {
		return err
	}

	d, err := format.Wrap(c.desc, dst, c.Channels)
	if err != nil {
		return err
	}

	o.run(c, d)
	return nil
}

// call is the state of one generation call.
type call struct {
	Options

	kind          waveform.Kind
	custom        func(param.Context) float64
	desc          format.Descriptor
	sampleRate    float64
	baseFrequency float64

	peakRe, peakIm []float64
	peak           float64
	hasPeak        bool
}

func (o *Oscillator) prepare(opts []Option) (*call, error) {
	c := &call{
		Options: Options{Config: o.config},
	}
	for _, opt := range opts {
		opt(&c.Options)
	}

	if c.Type.fn != nil {
		c.custom = c.Type.fn
	} else if c.Type.name != "" {
		kind, err := waveform.Parse(c.Type.name)
		if err != nil {
			return nil, err
		}
		c.kind = kind
	}

	desc, err := format.Parse(c.Format)
	if err != nil {
		return nil, err
	}
	c.desc = desc

	switch {
	case desc.SampleRate != 0:
		c.sampleRate = desc.SampleRate
	case c.SampleRate != 0:
		c.sampleRate = c.SampleRate
	default:
		c.sampleRate = DefaultSampleRate
	}
	if c.sampleRate < 0 || math.IsNaN(c.sampleRate) || math.IsInf(c.sampleRate, 0) {
		return nil, errors.Wrapf(ErrInvalidSampleRate, "%v", c.sampleRate)
	}
	if c.Channels < 0 {
		return nil, errors.Wrapf(ErrInvalidChannels, "%d", c.Channels)
	}

	c.baseFrequency = DefaultFrequency
	if c.sampleRate <= 2*DefaultFrequency {
		c.baseFrequency = c.sampleRate / 4
	}
	return c, nil
}

func (o *Oscillator) run(c *call, dst format.Destination) {
	frames, channels := dst.Frames(), dst.Channels()

	start, count := float64(o.count), o.count
	switch c.start {
	case startCount:
		start, count = float64(c.count), c.count
	case startTime:
		start = c.time * c.sampleRate
		count = int64(math.Round(start))
	}

	for i := 0; i < frames; i++ {
		pos := start + float64(i)
		for ch := 0; ch < channels; ch++ {
			ctx := param.Context{
				Count:      count + int64(i),
				T:          pos / c.sampleRate,
				SampleRate: c.sampleRate,
				Channel:    ch,
			}
			dst.Set(i, ch, c.sample(ctx, pos))
		}
	}

	if c.start == startCounter {
		o.count += int64(frames)
	}
	o.log.Debugf("%s: generated %d frames of %d channels from sample %d", o.id, frames, channels, count)
}

// sample resolves the parameters for ctx and evaluates the waveform at
// position pos, counted in samples.
func (c *call) sample(ctx param.Context, pos float64) float64 {
	ctx.Fields = param.ResolveFields(ctx, c.Fields)

	freq := c.Frequency.ResolveOr(ctx, c.baseFrequency)
	if detune := c.Detune.Resolve(ctx); detune != 0 {
		freq *= math.Exp2(detune / 1200)
	}
	ctx.Frequency = freq

	if c.custom != nil {
		return c.custom(ctx)
	}

	phase := freq*pos/ctx.SampleRate + c.Phase.Resolve(ctx)
	phase -= math.Floor(phase)

	shape := waveform.Shape{
		Ratio:    c.Ratio.ResolveOr(ctx, c.kind.DefaultRatio()),
		Inversed: c.Inversed.Resolve(ctx),
		Step:     freq / ctx.SampleRate,
	}
	if c.kind != waveform.KindSeries {
		return c.kind.Eval(phase, shape)
	}

	if c.Real.IsSet() || c.Imag.IsSet() {
		shape.Real, shape.Imag = c.Real.Resolve(ctx), c.Imag.Resolve(ctx)
	} else {
		shape.Real, shape.Imag = defaultReal, defaultImag
	}
	v := waveform.Series(phase, shape.Real, shape.Imag)
	if c.Normalize.Resolve(ctx) {
		if peak := c.peakOf(shape.Real, shape.Imag); peak > 0 {
			v /= peak
		}
	}
	return v
}

// peakOf returns waveform.Peak(re, im), reusing the last result while the
// coefficients don't change.
func (c *call) peakOf(re, im []float64) float64 {
	if c.hasPeak && slices.Equal(re, c.peakRe) && slices.Equal(im, c.peakIm) {
		return c.peak
	}
	c.peakRe, c.peakIm = slices.Clone(re), slices.Clone(im)
	c.peak, c.hasPeak = waveform.Peak(re, im), true
	return c.peak
}
