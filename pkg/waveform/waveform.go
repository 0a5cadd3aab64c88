// Package waveform provides periodic waveforms as pure functions of a phase
// in [0, 1). Every waveform returns an amplitude in [-1, 1].
package waveform

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownWaveform is returned by Parse for names it doesn't know.
var ErrUnknownWaveform = errors.New("unknown waveform")

// ClausenHarmonics is the number of terms summed by Clausen.
const ClausenHarmonics = 10

// Kind identifies a built-in waveform.
type Kind int

// Built-in waveforms.
const (
	KindSine Kind = iota
	KindTriangle
	KindSquare
	KindSawtooth
	KindPulse
	KindClausen
	KindSeries
)

var kindNames = map[Kind]string{
	KindSine:     "sine",
	KindTriangle: "triangle",
	KindSquare:   "square",
	KindSawtooth: "sawtooth",
	KindPulse:    "pulse",
	KindClausen:  "clausen",
	KindSeries:   "series",
}

var kindAliases = map[string]Kind{
	"sine":     KindSine,
	"sin":      KindSine,
	"triangle": KindTriangle,
	"tri":      KindTriangle,
	"square":   KindSquare,
	"sawtooth": KindSawtooth,
	"saw":      KindSawtooth,
	"pulse":    KindPulse,
	"clausen":  KindClausen,
	"series":   KindSeries,
	"fourier":  KindSeries,
}

// Parse looks up a built-in waveform by name. Names are case insensitive.
func Parse(name string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownWaveform, "%q", name)
	}
	return k, nil
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DefaultRatio returns the duty ratio used when none is given.
func (k Kind) DefaultRatio() float64 {
	if k == KindPulse {
		return 0
	}
	return 0.5
}

// Shape carries the waveform parameters beside the phase. Each waveform reads
// only the fields it needs.
type Shape struct {
	Ratio    float64
	Inversed bool
	// Step is the phase advance between two samples, frequency over sample
	// rate.
	Step float64
	Real []float64
	Imag []float64
}

// Eval evaluates waveform k at phase.
func (k Kind) Eval(phase float64, s Shape) float64 {
	switch k {
	case KindSine:
		return Sine(phase)
	case KindTriangle:
		return Triangle(phase, s.Ratio)
	case KindSquare:
		return Square(phase, s.Ratio)
	case KindSawtooth:
		return Sawtooth(phase, s.Inversed)
	case KindPulse:
		return Pulse(phase, s.Ratio, s.Step)
	case KindClausen:
		return Clausen(phase)
	case KindSeries:
		return Series(phase, s.Real, s.Imag)
	}
	return 0
}

// Sine returns sin(2π·phase).
func Sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

// Triangle starts at 1, falls to -1 at ratio and climbs back to 1 at the end
// of the period. A ratio of 0 or 1 yields a rising or falling ramp.
func Triangle(phase, ratio float64) float64 {
	if phase < ratio {
		return 1 - 2*phase/ratio
	}
	return -1 + 2*(phase-ratio)/(1-ratio)
}

// Square is 1 while phase < ratio and -1 for the rest of the period.
func Square(phase, ratio float64) float64 {
	if phase < ratio {
		return 1
	}
	return -1
}

// Sawtooth ramps from -1 to 1 over the period, or from 1 to -1 when inversed.
func Sawtooth(phase float64, inversed bool) float64 {
	v := 2*phase - 1
	if inversed {
		return -v
	}
	return v
}

// Pulse is 1 while phase < ratio and 0 otherwise. The pulse is at least step
// wide, so sampling with that phase step hits every period once even when the
// ratio is 0.
func Pulse(phase, ratio, step float64) float64 {
	if phase < math.Max(ratio, math.Abs(step)) || phase == 0 {
		return 1
	}
	return 0
}

// Clausen sums the first ClausenHarmonics terms of the Clausen function
// Cl2(θ) = Σ sin(kθ)/k².
func Clausen(phase float64) float64 {
	theta := 2 * math.Pi * phase
	var sum float64
	for k := 1; k <= ClausenHarmonics; k++ {
		fk := float64(k)
		sum += math.Sin(fk*theta) / (fk * fk)
	}
	return sum
}

// Series synthesizes Σ re[k]·cos(2πk·phase) + im[k]·sin(2πk·phase). The
// shorter list is padded with zeros.
func Series(phase float64, re, im []float64) float64 {
	theta := 2 * math.Pi * phase
	var sum float64
	for k, c := range re {
		if c != 0 {
			sum += c * math.Cos(float64(k)*theta)
		}
	}
	for k, c := range im {
		if c != 0 {
			sum += c * math.Sin(float64(k)*theta)
		}
	}
	return sum
}
