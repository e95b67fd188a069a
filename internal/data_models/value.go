package dto

import (
	"bytes"
	"strings"

	"github.com/bytedance/sonic"
)

// Value is one raw scalar input. Form posts always carry strings; JSON
// bodies may carry a string, a number, a boolean or null.
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
	default:
		*v = Value(data)
	}
	return nil
}

func (v Value) String() string { return string(v) }

// Trim returns v without surrounding whitespace.
func (v Value) Trim() Value { return Value(strings.TrimSpace(string(v))) }

func (v Value) Blank() bool { return strings.TrimSpace(string(v)) == "" }

func trimAll(vs []Value) []Value {
	if vs == nil {
		return nil
	}
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = v.Trim()
	}
	return out
}
