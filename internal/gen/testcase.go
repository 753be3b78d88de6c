package gen

import (
	"bytes"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Collection values. List, Set and Tuple differ only in meaning:
// a Set has no repeats and a Tuple has a fixed length.
type (
	List  []any
	Set   []any
	Tuple []any
	Dict  map[string]any
)

// Input is the value of one parameter.
type Input struct {
	Name  string
	Value any
}

// TestCase is an ordered mapping from parameter name to value.
// The order matches the signature's parameters.
type TestCase []Input

// Names returns the keys in parameter order.
func (tc TestCase) Names() []string {
	names := make([]string, len(tc))
	for i, in := range tc {
		names[i] = in.Name
	}
	return names
}

// Get returns the value of the named parameter.
func (tc TestCase) Get(name string) (any, bool) {
	for _, in := range tc {
		if in.Name == name {
			return in.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes an object with keys in parameter order.
func (tc TestCase) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, in := range tc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(in.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(in.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var _ msgpack.CustomEncoder = TestCase(nil)

// EncodeMsgpack writes a map with keys in parameter order.
func (tc TestCase) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(tc)); err != nil {
		return err
	}
	for _, in := range tc {
		if err := enc.EncodeString(in.Name); err != nil {
			return err
		}
		if err := enc.Encode(in.Value); err != nil {
			return err
		}
	}
	return nil
}

var _ msgpack.CustomDecoder = (*TestCase)(nil)

// DecodeMsgpack reads the map in the order it was written.
// Collections come back as []any and map[string]any.
func (tc *TestCase) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	out := make(TestCase, 0, max(n, 0))
	for range n {
		name, err := dec.DecodeString()
		if err != nil {
			return err
		}
		value, err := dec.DecodeInterfaceLoose()
		if err != nil {
			return err
		}
		out = append(out, Input{Name: name, Value: value})
	}
	*tc = out
	return nil
}
