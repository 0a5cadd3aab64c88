package oscillator

import (
	"bytes"
	"math"
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pion/oscillator/pkg/format"
	"github.com/pion/oscillator/pkg/param"
	"github.com/pion/oscillator/pkg/wave"
	"github.com/pion/oscillator/pkg/waveform"
)

func newOscillator(t *testing.T, config Config) *Oscillator {
	t.Helper()
	o, err := New(config)
	require.NoError(t, err)
	return o
}

func generate[T any](t *testing.T, o *Oscillator, frames int, opts ...Option) T {
	t.Helper()
	v, err := o.Generate(frames, opts...)
	require.NoError(t, err)
	out, ok := v.(T)
	require.True(t, ok, "unexpected buffer type %T", v)
	return out
}

func TestSine(t *testing.T) {
	o := newOscillator(t, Config{
		Frequency: param.Const(11025),
		Format:    "float32 44100",
	})

	samples := generate[[]float32](t, o, 4)
	assert.InDeltaSlice(t, []float32{0, 1, 0, -1}, samples, 1e-6)
}

func TestTriangle(t *testing.T) {
	o := newOscillator(t, Config{
		Type:      Waveform("triangle"),
		Frequency: param.Const(11025),
		Format:    "int8",
	})

	samples := generate[[]int8](t, o, 4)
	assert.Equal(t, []int8{127, 0, -128, 0}, samples)

	require.NoError(t, o.Fill(samples, WithRatio(param.Const(0))))
	assert.Equal(t, []int8{-128, -64, 0, 63}, samples)

	require.NoError(t, o.Fill(samples, WithRatio(param.Const(1))))
	assert.Equal(t, []int8{127, 63, 0, -64}, samples)
	assert.Equal(t, int64(12), o.Count())
}

func TestSquare(t *testing.T) {
	testCases := map[string]struct {
		format   string
		ratio    param.Float
		expected interface{}
	}{
		"Default":  {format: "array", expected: []float64{1, 1, 1, 1, -1, -1, -1, -1}},
		"RatioMin": {format: "float64", ratio: param.Const(0), expected: []float64{-1, -1, -1, -1, -1, -1, -1, -1}},
		"RatioMax": {format: "float64", ratio: param.Const(1), expected: []float64{1, 1, 1, 1, 1, 1, 1, 1}},
		"Int8Min":  {format: "int8", ratio: param.Const(0), expected: []int8{-128, -128, -128, -128, -128, -128, -128, -128}},
		"Int8Max":  {format: "int8", ratio: param.Const(1), expected: []int8{127, 127, 127, 127, 127, 127, 127, 127}},
	}

	for name, c := range testCases {
		c := c
		t.Run(name, func(t *testing.T) {
			o := newOscillator(t, Config{
				Type:      Waveform("square"),
				Frequency: param.Const(44100. / 8),
				Format:    c.format,
				Ratio:     c.ratio,
			})

			samples, err := o.Generate(8)
			require.NoError(t, err)
			assert.Equal(t, c.expected, samples)
		})
	}
}

func TestSawtooth(t *testing.T) {
	o := newOscillator(t, Config{
		Type:      Waveform("saw"),
		Frequency: param.Const(44100. / 4),
		Format:    "generic-sequence",
	})

	samples := generate[[]float64](t, o, 4)
	assert.Equal(t, []float64{-1, -.5, 0, .5}, samples)

	require.NoError(t, o.Fill(samples, WithInversed(param.ConstBool(true))))
	assert.Equal(t, []float64{1, .5, 0, -.5}, samples)
}

func TestPulse(t *testing.T) {
	o := newOscillator(t, Config{
		Type:      Waveform("pulse"),
		Frequency: param.Const(440),
		Format:    "arraybuffer",
	})

	samples := generate[[]byte](t, o, 8)
	assert.Equal(t, []byte{255, 127, 127, 127, 127, 127, 127, 127}, samples)
}

func TestPulsePerPeriod(t *testing.T) {
	testCases := map[string]struct {
		frequency float64
		ratio     param.Float
	}{
		"440":        {frequency: 440},
		"1000":       {frequency: 1000},
		"Ratio":      {frequency: 440, ratio: param.Const(0.25)},
		"NonInteger": {frequency: 441.3},
	}

	for name, c := range testCases {
		c := c
		t.Run(name, func(t *testing.T) {
			o := newOscillator(t, Config{
				Type:      Waveform("pulse"),
				Frequency: param.Const(c.frequency),
				Ratio:     c.ratio,
				Format:    "float64",
			})

			// One second of samples starts one pulse per period.
			samples := generate[[]float64](t, o, DefaultSampleRate)
			var pulses int
			for i, v := range samples {
				if v == 1 && (i == 0 || samples[i-1] != 1) {
					pulses++
				}
			}
			assert.Equal(t, int(math.Ceil(c.frequency)), pulses)
		})
	}
}

func TestClausen(t *testing.T) {
	o := newOscillator(t, Config{
		Type:   Waveform("clausen"),
		Format: "uint8",
	})

	samples := generate[[]uint8](t, o, 8)
	assert.Equal(t, []uint8{127, 150, 172, 190, 205, 216, 224, 230}, samples)
}

func TestSeries(t *testing.T) {
	t.Run("DefaultIsCosine", func(t *testing.T) {
		series := newOscillator(t, Config{
			Type:      Waveform("series"),
			Normalize: param.ConstBool(true),
			Frequency: param.Const(44100. / 4),
			Format:    "uint16",
		})
		sine := newOscillator(t, Config{
			Type:      Waveform("sin"),
			Normalize: param.ConstBool(true),
			Frequency: param.Const(44100. / 4),
			Format:    "uint16",
		})

		expected := generate[[]uint16](t, sine, 4, WithPhase(param.Const(.25)))
		assert.Equal(t, expected, generate[[]uint16](t, series, 4))
	})

	t.Run("Normalize", func(t *testing.T) {
		o := newOscillator(t, Config{
			Type:      Waveform("fourier"),
			Frequency: param.Const(44100. / 256),
			Format:    "float64",
			Imag:      param.ConstFloats(0, 1, 1),
		})

		raw := generate[[]float64](t, o, 256, WithCount(0))
		normalized := generate[[]float64](t, o, 256, WithCount(0), WithNormalize(param.ConstBool(true)))

		var peak float64
		for i := range raw {
			peak = math.Max(peak, math.Abs(normalized[i]))
			assert.InDelta(t, raw[i]/waveform.Peak(nil, []float64{0, 1, 1}), normalized[i], 1e-12)
		}
		assert.LessOrEqual(t, peak, 1+1e-9)
		assert.Greater(t, peak, 0.99)
	})

	t.Run("NormalizeDividesByPeak", func(t *testing.T) {
		o := newOscillator(t, Config{
			Type:      Waveform("series"),
			Frequency: param.Const(44100. / 8),
			Format:    "float64",
			Imag:      param.ConstFloats(0, 1, 1),
			Normalize: param.ConstBool(true),
		})

		// The peak of sin(θ)+sin(2θ) is about 1.76, not the coefficient sum.
		samples := generate[[]float64](t, o, 8)
		for i, v := range samples {
			theta := 2 * math.Pi * float64(i) / 8
			raw := math.Sin(theta) + math.Sin(2*theta)
			assert.InDelta(t, raw/1.7601726, v, 1e-5, "sample %d", i)
		}
		assert.InDelta(t, 0.969852, samples[1], 1e-5)
		assert.Greater(t, samples[1], (math.Sin(math.Pi/4)+1)/2+0.1)
	})

	t.Run("ComputedCoefficients", func(t *testing.T) {
		o := newOscillator(t, Config{
			Type:      Waveform("series"),
			Frequency: param.Const(44100. / 4),
			Format:    "float64",
			Real: param.FloatsFunc(func(ctx param.Context) []float64 {
				if ctx.Count%2 == 0 {
					return []float64{0, 1}
				}
				return []float64{0, 0.5}
			}),
			Normalize: param.ConstBool(true),
		})

		samples := generate[[]float64](t, o, 4)
		assert.InDeltaSlice(t, []float64{1, 0, -1, 0}, samples, 1e-9)
	})
}

func TestDetune(t *testing.T) {
	o := newOscillator(t, Config{
		Frequency: param.Const(44100. / 4),
		Format:    "int8",
	})

	samples := generate[[]int8](t, o, 8)
	assert.Equal(t, []int8{0, 127, 0, -128, 0, 127, 0, -128}, samples)

	require.NoError(t, o.Fill(samples, WithDetune(param.Const(-1200)), WithTime(0)))
	assert.Equal(t, []int8{0, 89, 127, 89, 0, -90, -128, -90}, samples)
	assert.Equal(t, int64(8), o.Count())
}

func TestFunctionParams(t *testing.T) {
	o := newOscillator(t, Config{
		Type:       Waveform("tri"),
		Format:     "uint8",
		SampleRate: 8000,
		Ratio: param.Func(func(ctx param.Context) float64 {
			if ctx.Count != 0 {
				return 0
			}
			return .5
		}),
		Frequency: param.Func(func(ctx param.Context) float64 {
			if ctx.Count != 0 {
				return ctx.SampleRate / 4
			}
			return ctx.SampleRate / 2
		}),
	})

	samples := generate[[]uint8](t, o, 8)
	assert.Equal(t, []uint8{255, 63, 127, 191, 0, 63, 127, 191}, samples)

	require.NoError(t, o.Fill(samples))
	assert.Equal(t, []uint8{0, 63, 127, 191, 0, 63, 127, 191}, samples)
}

func TestCustomType(t *testing.T) {
	t.Run("Time", func(t *testing.T) {
		o := newOscillator(t, Config{
			Type:       Custom(func(ctx param.Context) float64 { return ctx.T }),
			SampleRate: 8,
			Format:     "array",
		})

		assert.Equal(t, []float64{0, .125, .25, .375}, generate[[]float64](t, o, 4))
		assert.Equal(t, []float64{.5, .625, .75, .875}, generate[[]float64](t, o, 4))
		assert.Equal(t, []float64{2, 2.125}, generate[[]float64](t, o, 2, WithTime(2)))
	})

	t.Run("DetunedFrequency", func(t *testing.T) {
		o := newOscillator(t, Config{
			Type:      Custom(func(ctx param.Context) float64 { return ctx.Frequency }),
			Frequency: param.Const(100),
			Detune:    param.Const(1200),
			Format:    "float64",
		})

		assert.Equal(t, []float64{200, 200}, generate[[]float64](t, o, 2))
	})

	t.Run("Channel", func(t *testing.T) {
		o := newOscillator(t, Config{
			Type:     Custom(func(ctx param.Context) float64 { return float64(ctx.Channel) }),
			Channels: 2,
			Format:   "float64 planar",
		})

		assert.Equal(t, []float64{0, 0, 0, 1, 1, 1}, generate[[]float64](t, o, 3))
	})
}

func TestCustomFields(t *testing.T) {
	t.Run("Override", func(t *testing.T) {
		o := newOscillator(t, Config{
			Type:   Custom(func(ctx param.Context) float64 { return ctx.Float("a") }),
			Format: "array",
			Fields: map[string]param.Value{"a": param.ConstValue(0)},
		})

		assert.Equal(t, []float64{1, 1, 1, 1}, generate[[]float64](t, o, 4, WithField("a", param.ConstValue(1))))
		assert.Equal(t, []float64{0, 0, 0, 0}, generate[[]float64](t, o, 4))
	})

	t.Run("Computed", func(t *testing.T) {
		o := newOscillator(t, Config{
			Type:   Custom(func(ctx param.Context) float64 { return ctx.Float("b") }),
			Format: "array",
			Fields: map[string]param.Value{
				"a": param.ValueFunc(func(ctx param.Context) interface{} { return ctx.Count }),
				"b": param.ValueFunc(func(ctx param.Context) interface{} { return ctx.Float("a") * 2 }),
			},
		})

		assert.Equal(t, []float64{0, 2, 4, 6}, generate[[]float64](t, o, 4))
	})

	t.Run("FrequencyReadsField", func(t *testing.T) {
		o := newOscillator(t, Config{
			Frequency: param.Func(func(ctx param.Context) float64 { return ctx.Float("f") }),
			Format:    "int8",
			Fields:    map[string]param.Value{"f": param.ConstValue(44100. / 4)},
		})

		assert.Equal(t, []int8{0, 127, 0, -128}, generate[[]int8](t, o, 4))
	})
}

func TestMultichannel(t *testing.T) {
	config := Config{
		Channels:   3,
		Format:     "int8 interleaved",
		SampleRate: 10000,
		Frequency:  param.Func(func(ctx param.Context) float64 { return ctx.SampleRate / 4 }),
	}

	o := newOscillator(t, config)
	assert.Equal(t, []int8{0, 0, 0, 127, 127, 127, 0, 0, 0, -128, -128, -128}, generate[[]int8](t, o, 4))

	config.Format = "int8 planar"
	o = newOscillator(t, config)
	assert.Equal(t, []int8{0, 127, 0, -128, 0, 127, 0, -128, 0, 127, 0, -128}, generate[[]int8](t, o, 4))
}

func TestPlanarFloat32(t *testing.T) {
	o := newOscillator(t, Config{
		Type:     Waveform("sine"),
		Format:   "float32 planar",
		Channels: 2,
	})

	for i := 0; i < 2; i++ {
		samples := generate[[]float32](t, o, 2)
		require.Len(t, samples, 4)
		assert.Equal(t, samples[0], samples[2])
		assert.Equal(t, samples[1], samples[3])
	}
}

func TestPhaseContinuity(t *testing.T) {
	for _, name := range []string{"sine", "triangle", "square", "sawtooth", "pulse", "clausen", "series"} {
		name := name
		t.Run(name, func(t *testing.T) {
			config := Config{
				Type:      Waveform(name),
				Frequency: param.Const(1234.5),
				Format:    "float64",
				Ratio:     param.Const(0.3),
			}
			split := newOscillator(t, config)
			whole := newOscillator(t, config)

			first := generate[[]float64](t, split, 37)
			second := generate[[]float64](t, split, 91)
			assert.Equal(t, generate[[]float64](t, whole, 128), append(first, second...))
		})
	}
}

func TestNext(t *testing.T) {
	o := newOscillator(t, Config{})

	first, err := o.Next()
	require.NoError(t, err)
	second, err := o.Next()
	require.NoError(t, err)

	a, ok := first.(*wave.Float32NonInterleaved)
	require.True(t, ok)
	b, ok := second.(*wave.Float32NonInterleaved)
	require.True(t, ok)

	assert.Equal(t, wave.ChunkInfo{Len: DefaultFrames, Channels: 1, SamplingRate: DefaultSampleRate}, a.Size)
	assert.NotZero(t, a.Data[0][100])
	assert.NotEqual(t, a.Data, b.Data)
	assert.Equal(t, int64(2*DefaultFrames), o.Count())
}

func TestFillAudio(t *testing.T) {
	o := newOscillator(t, Config{})

	buf := wave.NewFloat32NonInterleaved(wave.ChunkInfo{Len: 1000, Channels: 2})
	require.NoError(t, o.Fill(buf))

	assert.NotZero(t, buf.Data[0][100])
	assert.Equal(t, buf.Data[0], buf.Data[1])
	assert.Equal(t, int64(1000), o.Count())
}

func TestAllocator(t *testing.T) {
	o := newOscillator(t, Config{
		Channels:  2,
		Frequency: param.Const(44100. / 4),
		Allocator: func(size wave.ChunkInfo) wave.EditableAudio {
			return wave.NewInt16Interleaved(size)
		},
	})

	a := generate[*wave.Int16Interleaved](t, o, 2)
	assert.Equal(t, []int16{0, 0, 32767, 32767}, a.Data)
}

func TestOverride(t *testing.T) {
	config := Config{
		Frequency: param.Const(1000),
		Format:    "float64",
	}
	reference := generate[[]float64](t, newOscillator(t, config), 8)

	o := newOscillator(t, config)
	assert.Equal(t, reference[4:], generate[[]float64](t, o, 4, WithCount(4)))
	assert.Equal(t, int64(0), o.Count())

	assert.Equal(t, reference[:4], generate[[]float64](t, o, 4))
	assert.Equal(t, int64(4), o.Count())

	assert.InDeltaSlice(t, reference[2:6], generate[[]float64](t, o, 4, WithTime(2./44100)), 1e-12)
	assert.Equal(t, int64(4), o.Count())

	assert.Equal(t, reference[4:], generate[[]float64](t, o, 4))
	assert.Equal(t, int64(8), o.Count())

	o.Reset()
	assert.Equal(t, int64(0), o.Count())
	assert.Equal(t, reference[:4], generate[[]float64](t, o, 4))
}

func TestOptionsDontPersist(t *testing.T) {
	o := newOscillator(t, Config{
		Type:      Waveform("square"),
		Frequency: param.Const(44100. / 4),
		Format:    "int8",
	})

	pulse := generate[[]uint8](t, o, 4, WithFormat("uint8"), WithType(Waveform("pulse")), WithCount(0))
	assert.Equal(t, []uint8{255, 127, 127, 127}, pulse)
	assert.Equal(t, []int8{127, 127, -128, -128}, generate[[]int8](t, o, 4))
}

func TestErrors(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		testCases := map[string]struct {
			config Config
			err    error
		}{
			"UnknownWaveform":    {config: Config{Type: Waveform("noise")}, err: waveform.ErrUnknownWaveform},
			"InvalidFormat":      {config: Config{Format: "int12"}, err: format.ErrInvalidFormat},
			"NegativeChannels":   {config: Config{Channels: -1}, err: ErrInvalidChannels},
			"NegativeSampleRate": {config: Config{SampleRate: -8000}, err: ErrInvalidSampleRate},
		}

		for name, c := range testCases {
			c := c
			t.Run(name, func(t *testing.T) {
				_, err := New(c.config)
				assert.ErrorIs(t, err, c.err)
			})
		}
	})

	t.Run("Call", func(t *testing.T) {
		o := newOscillator(t, Config{Format: "int8"})

		_, err := o.Generate(-1)
		assert.ErrorIs(t, err, ErrNegativeFrames)

		_, err = o.Generate(4, WithType(Waveform("noise")))
		assert.ErrorIs(t, err, waveform.ErrUnknownWaveform)

		_, err = o.Generate(4, WithFormat("int8 int16"))
		assert.ErrorIs(t, err, format.ErrInvalidFormat)

		assert.ErrorIs(t, o.Fill(nil), ErrNilDestination)
		assert.ErrorIs(t, o.Fill((*wave.Float32Interleaved)(nil)), ErrNilDestination)
		assert.ErrorIs(t, o.Fill((*wave.Int16NonInterleaved)(nil)), ErrNilDestination)
		assert.ErrorIs(t, o.Fill([]int16{1, 2}), format.ErrShapeMismatch)
		assert.ErrorIs(t, o.Fill(map[string]int{}), format.ErrUnsupportedDestination)
		assert.Equal(t, int64(0), o.Count())
	})

	t.Run("ChannelMismatch", func(t *testing.T) {
		o := newOscillator(t, Config{Channels: 3})

		buf := wave.NewFloat32Interleaved(wave.ChunkInfo{Len: 4, Channels: 2})
		for i := range buf.Data {
			buf.Data[i] = 0.5
		}

		assert.ErrorIs(t, o.Fill(buf), format.ErrShapeMismatch)
		assert.Equal(t, []float32{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, buf.Data)
		assert.Equal(t, int64(0), o.Count())
	})
}

func TestNyquistWarning(t *testing.T) {
	var buf bytes.Buffer
	factory := &logging.DefaultLoggerFactory{
		Writer:          &buf,
		DefaultLogLevel: logging.LogLevelWarn,
		ScopeLevels:     map[string]logging.LogLevel{},
	}

	newOscillator(t, Config{Frequency: param.Const(440), LoggerFactory: factory})
	assert.Empty(t, buf.String())

	o := newOscillator(t, Config{Frequency: param.Const(30000), LoggerFactory: factory})
	assert.Contains(t, buf.String(), "Nyquist")
	assert.Contains(t, buf.String(), o.ID())
}

func TestDefaults(t *testing.T) {
	o := newOscillator(t, Config{
		Type:       Custom(func(ctx param.Context) float64 { return ctx.Frequency }),
		SampleRate: 800,
		Format:     "float64",
	})
	assert.Equal(t, []float64{200}, generate[[]float64](t, o, 1))
	assert.Equal(t, 1, o.Channels())
	assert.Equal(t, float64(800), o.SampleRate())

	o = newOscillator(t, Config{
		Type:       Custom(func(ctx param.Context) float64 { return ctx.Frequency }),
		SampleRate: 800,
		Format:     "float64 48000",
	})
	assert.Equal(t, []float64{DefaultFrequency}, generate[[]float64](t, o, 1))
	assert.Equal(t, float64(48000), o.SampleRate())
	assert.Equal(t, "float64 48000", o.Descriptor().String())
	assert.NotEqual(t, newOscillator(t, Config{}).ID(), o.ID())
}

func TestCallOptions(t *testing.T) {
	o := newOscillator(t, Config{
		Type:   Custom(func(ctx param.Context) float64 { return ctx.SampleRate }),
		Format: "float64",
	})
	assert.Equal(t, []float64{8000, 8000, 8000, 8000}, generate[[]float64](t, o, 2, WithSampleRate(8000), WithChannels(2)))
	assert.Equal(t, []float64{44100}, generate[[]float64](t, o, 1))

	o = newOscillator(t, Config{
		Type:   Waveform("series"),
		Format: "float64",
	})
	samples := generate[[]float64](t, o, 4,
		WithFrequency(param.Const(44100./4)),
		WithReal(param.ConstFloats(0, 0)),
		WithImag(param.ConstFloats(0, 1)),
	)
	assert.InDeltaSlice(t, []float64{0, 1, 0, -1}, samples, 1e-12)
}
