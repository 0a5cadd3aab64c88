package oscillator

import (
	"github.com/pion/oscillator/pkg/param"
)

// Options stores the parameters of a single generation call. It starts as a
// copy of the oscillator's Config, so changes never outlive the call.
type Options struct {
	Config

	count     int64
	time      float64
	start     startKind
	ownFields bool
}

type startKind int

const (
	startCounter startKind = iota
	startCount
	startTime
)

// Option is a type of per call functional option.
type Option func(*Options)

// WithCount starts the call at sample index count instead of the oscillator's
// counter. The counter isn't advanced by the call.
func WithCount(count int64) Option {
	return func(o *Options) {
		o.count, o.start = count, startCount
	}
}

// WithTime starts the call t seconds after the oscillator's origin. The
// counter isn't advanced by the call.
func WithTime(t float64) Option {
	return func(o *Options) {
		o.time, o.start = t, startTime
	}
}

// WithType replaces the waveform.
func WithType(t Type) Option {
	return func(o *Options) {
		o.Type = t
	}
}

// WithFrequency replaces the frequency in Hz.
func WithFrequency(f param.Float) Option {
	return func(o *Options) {
		o.Frequency = f
	}
}

// WithSampleRate replaces the sample rate. A rate embedded in the format
// descriptor still takes precedence.
func WithSampleRate(rate float64) Option {
	return func(o *Options) {
		o.SampleRate = rate
	}
}

// WithChannels replaces the channel count.
func WithChannels(channels int) Option {
	return func(o *Options) {
		o.Channels = channels
	}
}

// WithFormat replaces the format descriptor.
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithPhase replaces the phase offset, in periods.
func WithPhase(phase param.Float) Option {
	return func(o *Options) {
		o.Phase = phase
	}
}

// WithRatio replaces the duty ratio of triangle, square and pulse waves.
func WithRatio(ratio param.Float) Option {
	return func(o *Options) {
		o.Ratio = ratio
	}
}

// WithDetune replaces the detune in cents.
func WithDetune(cents param.Float) Option {
	return func(o *Options) {
		o.Detune = cents
	}
}

// WithInversed flips the sawtooth.
func WithInversed(inversed param.Bool) Option {
	return func(o *Options) {
		o.Inversed = inversed
	}
}

// WithNormalize toggles peak normalization of Fourier series.
func WithNormalize(normalize param.Bool) Option {
	return func(o *Options) {
		o.Normalize = normalize
	}
}

// WithReal replaces the cosine coefficients of a Fourier series.
func WithReal(re param.Floats) Option {
	return func(o *Options) {
		o.Real = re
	}
}

// WithImag replaces the sine coefficients of a Fourier series.
func WithImag(im param.Floats) Option {
	return func(o *Options) {
		o.Imag = im
	}
}

// WithField sets the custom field called name, keeping the other fields.
func WithField(name string, v param.Value) Option {
	return func(o *Options) {
		if !o.ownFields {
			fields := make(map[string]param.Value, len(o.Fields)+1)
			for k, f := range o.Fields {
				fields[k] = f
			}
			o.Fields, o.ownFields = fields, true
		}
		o.Fields[name] = v
	}
}
