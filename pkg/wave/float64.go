package wave

// Float64Sample is a 64-bits float audio sample.
type Float64Sample float64

func (s Float64Sample) Float() float64 {
	return float64(s)
}
