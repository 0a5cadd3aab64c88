// Package param resolves oscillator parameters that are either constants or
// functions of the sample being generated.
package param

import "fmt"

// Kind tells where the value of a parameter comes from.
type Kind int

// Kinds of parameter values.
const (
	KindUnset Kind = iota
	KindConstant
	KindComputed
)

func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindConstant:
		return "constant"
	case KindComputed:
		return "computed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Param is a value of type T which is either fixed or computed per sample.
// The zero Param is unset.
type Param[T any] struct {
	kind  Kind
	value T
	fn    func(Context) T
}

// Float is a number valued parameter such as frequency, phase or ratio.
type Float = Param[float64]

// Bool is a flag parameter such as inversed or normalize.
type Bool = Param[bool]

// Floats is a coefficient list parameter such as the real and imaginary
// parts of a Fourier series.
type Floats = Param[[]float64]

// Value is a custom field of any type.
type Value = Param[interface{}]

// Const returns a constant Float.
func Const(v float64) Float { return Float{kind: KindConstant, value: v} }

// Func returns a Float computed by fn. A nil fn leaves the parameter unset.
func Func(fn func(Context) float64) Float { return computed(fn) }

// ConstBool returns a constant Bool.
func ConstBool(v bool) Bool { return Bool{kind: KindConstant, value: v} }

// BoolFunc returns a Bool computed by fn.
func BoolFunc(fn func(Context) bool) Bool { return computed(fn) }

// ConstFloats returns a constant coefficient list.
func ConstFloats(v ...float64) Floats { return Floats{kind: KindConstant, value: v} }

// FloatsFunc returns a coefficient list computed by fn.
func FloatsFunc(fn func(Context) []float64) Floats { return computed(fn) }

// ConstValue returns a constant custom field.
func ConstValue(v interface{}) Value { return Value{kind: KindConstant, value: v} }

// ValueFunc returns a custom field computed by fn.
func ValueFunc(fn func(Context) interface{}) Value { return computed(fn) }

func computed[T any](fn func(Context) T) Param[T] {
	if fn == nil {
		return Param[T]{}
	}
	return Param[T]{kind: KindComputed, fn: fn}
}

// Kind reports where the value comes from.
func (p Param[T]) Kind() Kind { return p.kind }

// IsSet reports whether p holds a constant or a function.
func (p Param[T]) IsSet() bool { return p.kind != KindUnset }

// Resolve returns the value of p for ctx. An unset parameter resolves to the
// zero value of T.
func (p Param[T]) Resolve(ctx Context) T {
	if p.kind == KindComputed {
		return p.fn(ctx)
	}
	return p.value
}

// ResolveOr is like Resolve, but returns def when p is unset.
func (p Param[T]) ResolveOr(ctx Context, def T) T {
	if p.kind == KindUnset {
		return def
	}
	return p.Resolve(ctx)
}

// String implements fmt.Stringer.
func (p Param[T]) String() string {
	switch p.kind {
	case KindConstant:
		return fmt.Sprintf("%v (constant)", p.value)
	case KindComputed:
		return "(computed)"
	}
	return "(unset)"
}
