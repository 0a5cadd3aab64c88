package format

import (
	"fmt"
	"math"

	"github.com/pion/oscillator/internal/sample"
)

// Encoding is the numeric representation of a single sample.
type Encoding int

// Supported encodings. The zero Encoding is unspecified.
const (
	Int8 Encoding = iota + 1
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
)

var encodingNames = map[Encoding]string{
	Int8:    "int8",
	Uint8:   "uint8",
	Int16:   "int16",
	Uint16:  "uint16",
	Int32:   "int32",
	Uint32:  "uint32",
	Float32: "float32",
	Float64: "float64",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// Size returns the number of bytes of one encoded sample.
func (e Encoding) Size() int {
	switch e {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

// IsFloat reports whether e stores amplitudes unchanged.
func (e Encoding) IsFloat() bool {
	return e == Float32 || e == Float64
}

// Range returns the smallest and largest value e can represent. Floating
// encodings report the nominal [-1, 1] amplitude range.
func (e Encoding) Range() (min, max float64) {
	switch e {
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Uint8:
		return 0, math.MaxUint8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Uint16:
		return 0, math.MaxUint16
	case Int32:
		return math.MinInt32, math.MaxInt32
	case Uint32:
		return 0, math.MaxUint32
	}
	return -1, 1
}

// Quantize maps amplitude a in [-1, 1] into the range of e.
//
// Signed encodings scale non-negative amplitudes by max and negative ones by
// -min, so -1 and 1 land on min and max exactly. Unsigned encodings map
// [-1, 1] linearly onto [0, max]. The scaled value is truncated toward zero and
// clamped. Floating encodings return a unchanged.
func (e Encoding) Quantize(a float64) float64 {
	if e.IsFloat() {
		return a
	}
	if math.IsNaN(a) {
		a = 0
	}

	min, max := e.Range()
	var v float64
	switch {
	case min == 0:
		v = (a + 1) / 2 * max
	case a < 0:
		v = -a * min
	default:
		v = a * max
	}

	v = sample.Trunc(v)
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Dequantize maps a value of e back to an amplitude. Quantize(Dequantize(q))
// returns q for every integer q in range.
func (e Encoding) Dequantize(q float64) float64 {
	if e.IsFloat() {
		return q
	}

	min, max := e.Range()
	switch {
	case min == 0:
		return q/max*2 - 1
	case q < 0:
		return -q / min
	}
	return q / max
}
