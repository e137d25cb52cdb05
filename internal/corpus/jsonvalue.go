package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind discriminates the JSON value union.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a parsed JSON value. Object member order is preserved from the
// document so that flattening is fully deterministic; encoding/json maps
// would randomize it.
type Value struct {
	Kind    Kind
	Members []Member // object members, in document order
	Items   []Value  // array elements
	Str     string   // string value, or the original number literal
	Bool    bool
}

// Member is one object key/value pair.
type Member struct {
	Key   string
	Value Value
}

// DecodeValue parses a single JSON document from r into a Value.
// Number literals are kept verbatim.
func DecodeValue(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeNext(dec)
	if err != nil {
		return Value{}, err
	}
	// Reject trailing garbage after the document.
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, errors.New("trailing data after JSON document")
	}
	return v, nil
}

func decodeNext(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeFrom(dec, tok)
}

func decodeFrom(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := Value{Kind: KindObject}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeNext(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Members = append(obj.Members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Value{}, err
			}
			return obj, nil
		case '[':
			arr := Value{Kind: KindArray}
			for dec.More() {
				val, err := decodeNext(dec)
				if err != nil {
					return Value{}, err
				}
				arr.Items = append(arr.Items, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Value{}, err
			}
			return arr, nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return Value{Kind: KindString, Str: t}, nil
	case json.Number:
		return Value{Kind: KindNumber, Str: t.String()}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return Value{Kind: KindNull}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// Scalar reports whether the value is a leaf (not an object or array).
func (v Value) Scalar() bool {
	return v.Kind != KindObject && v.Kind != KindArray
}

// ScalarText renders a leaf value the way the flattener emits it.
func (v Value) ScalarText() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Str
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	}
	return ""
}

// Lookup returns the value of the named member of an object, if present.
func (v Value) Lookup(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// String renders a compact single-line representation, used in logs.
func (v Value) String() string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.Kind {
	case KindObject:
		b.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%q:", m.Key)
			writeValue(b, m.Value)
		}
		b.WriteByte('}')
	case KindArray:
		b.WriteByte('[')
		for i, it := range v.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			writeValue(b, it)
		}
		b.WriteByte(']')
	case KindString:
		fmt.Fprintf(b, "%q", v.Str)
	default:
		b.WriteString(v.ScalarText())
	}
}
