package listquery

import (
	"net/url"
	"strings"
)

// Kind tags the shape a query value arrived in.
type Kind uint8

const (
	Absent Kind = iota
	Single
	Multi
)

// Value is one raw query value: absent, a single string, or the string
// array frameworks deliver for repeated keys.
type Value struct {
	kind   Kind
	single string
	multi  []string
}

func AbsentValue() Value { return Value{} }

func SingleValue(s string) Value { return Value{kind: Single, single: s} }

func MultiValue(ss ...string) Value {
	switch len(ss) {
	case 0:
		return Value{}
	case 1:
		return SingleValue(ss[0])
	}
	cp := make([]string, len(ss))
	copy(cp, ss)
	return Value{kind: Multi, multi: cp}
}

func (v Value) Kind() Kind { return v.kind }

// Normalize collapses the value to string-or-nothing. Repeated keys are
// comma-joined so multi-select filters accept both wire shapes.
func (v Value) Normalize() (string, bool) {
	switch v.kind {
	case Single:
		return v.single, true
	case Multi:
		return strings.Join(v.multi, ","), true
	default:
		return "", false
	}
}

// Raw is the unparsed query input keyed by parameter name.
type Raw map[string]Value

// FromValues converts url.Values into Raw.
func FromValues(values url.Values) Raw {
	raw := make(Raw, len(values))
	for k, vs := range values {
		raw[k] = MultiValue(vs...)
	}
	return raw
}

// Get returns the value for key, or an absent value.
func (r Raw) Get(key string) Value {
	if v, ok := r[key]; ok {
		return v
	}
	return AbsentValue()
}
