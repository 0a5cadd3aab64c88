package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat(t *testing.T) {
	ctx := Context{Count: 8, T: 0.5, SampleRate: 16}

	cases := map[string]struct {
		p        Float
		kind     Kind
		expected float64
	}{
		"Unset": {
			p:        Float{},
			kind:     KindUnset,
			expected: 440,
		},
		"Constant": {
			p:        Const(0.25),
			kind:     KindConstant,
			expected: 0.25,
		},
		"ConstantZero": {
			p:        Const(0),
			kind:     KindConstant,
			expected: 0,
		},
		"Computed": {
			p:        Func(func(c Context) float64 { return c.SampleRate / 4 }),
			kind:     KindComputed,
			expected: 4,
		},
		"ComputedFromCount": {
			p: Func(func(c Context) float64 {
				if c.Count > 0 {
					return 1
				}
				return 0.5
			}),
			kind:     KindComputed,
			expected: 1,
		},
		"NilFunc": {
			p:        Func(nil),
			kind:     KindUnset,
			expected: 440,
		},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.kind, c.p.Kind())
			assert.Equal(t, c.kind != KindUnset, c.p.IsSet())
			assert.Equal(t, c.expected, c.p.ResolveOr(ctx, 440))
		})
	}
}

func TestResolveUnsetIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Float{}.Resolve(Context{}))
	assert.False(t, Bool{}.Resolve(Context{}))
	assert.Nil(t, Floats{}.Resolve(Context{}))
	assert.Nil(t, Value{}.Resolve(Context{}))
}

func TestBoolAndFloats(t *testing.T) {
	ctx := Context{Channel: 1}

	assert.True(t, ConstBool(true).Resolve(ctx))
	assert.True(t, ConstBool(false).IsSet())
	assert.True(t, BoolFunc(func(c Context) bool { return c.Channel == 1 }).Resolve(ctx))

	assert.Equal(t, []float64{0, 1, 1}, ConstFloats(0, 1, 1).Resolve(ctx))
	assert.Equal(t, []float64{1}, FloatsFunc(func(c Context) []float64 {
		return []float64{float64(c.Channel)}
	}).Resolve(ctx))
}

func TestString(t *testing.T) {
	assert.Equal(t, "(unset)", Float{}.String())
	assert.Equal(t, "0.5 (constant)", Const(0.5).String())
	assert.Equal(t, "(computed)", BoolFunc(func(Context) bool { return true }).String())
	assert.Equal(t, "computed", KindComputed.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
