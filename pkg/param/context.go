package param

import "sort"

// Context describes the sample being generated. It is handed to every
// computed parameter.
type Context struct {
	// Count is the sample index since the oscillator was created or reset.
	// It doesn't depend on the channel.
	Count int64
	// T is Count expressed in seconds.
	T          float64
	SampleRate float64
	// Frequency is the detuned frequency. It is zero while the frequency
	// itself is being resolved.
	Frequency float64
	Channel   int
	// Fields holds the resolved custom fields.
	Fields map[string]interface{}
}

// Field returns the resolved custom field called name.
func (c Context) Field(name string) (interface{}, bool) {
	v, ok := c.Fields[name]
	return v, ok
}

// Float returns the custom field called name as a float64. Missing or
// non-numeric fields return 0, booleans return 0 or 1.
func (c Context) Float(name string) float64 {
	switch v := c.Fields[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

// ResolveFields resolves fields for ctx in name order. Every computed field
// sees the fields sorted before it. Unset fields are skipped.
func ResolveFields(ctx Context, fields map[string]Value) map[string]interface{} {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	resolved := make(map[string]interface{}, len(fields))
	ctx.Fields = resolved
	for _, name := range names {
		f := fields[name]
		if !f.IsSet() {
			continue
		}
		resolved[name] = f.Resolve(ctx)
	}
	return resolved
}
