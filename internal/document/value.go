package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "null"
	}
}

// Value is one node of a decoded JSON document. The zero value is null.
type Value struct {
	kind   Kind
	str    string
	num    float64
	raw    string
	flag   bool
	keys   []string
	fields map[string]Value
	items  []Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String wraps s as a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps f as a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f, raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Bool wraps b as a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Array builds an array value from items.
func Array(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, items: cp}
}

// Field is a key/value pair used to build objects in order.
type Field struct {
	Key   string
	Value Value
}

// Object builds an object value preserving the order of fields. A repeated key
// keeps its first position and its last value.
func Object(fields ...Field) Value {
	v := Value{kind: KindObject, fields: make(map[string]Value, len(fields))}
	for _, f := range fields {
		if _, seen := v.fields[f.Key]; !seen {
			v.keys = append(v.keys, f.Key)
		}
		v.fields[f.Key] = f.Value
	}
	return v
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null or absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsObject reports whether v is an object.
func (v Value) IsObject() bool { return v.kind == KindObject }

// IsArray reports whether v is an array.
func (v Value) IsArray() bool { return v.kind == KindArray }

// Str returns the string payload when v is a string.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Text returns the string payload, or "" for any other kind.
func (v Value) Text() string {
	s, _ := v.Str()
	return s
}

// Scalar renders strings and numbers as text. Numbers keep their wire form.
func (v Value) Scalar() (string, bool) {
	switch v.kind {
	case KindString:
		return v.str, true
	case KindNumber:
		return v.raw, true
	default:
		return "", false
	}
}

// Float coerces numbers and numeric strings to float64. Booleans, nulls, and
// containers are not numeric.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Items returns the elements of an array, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Keys returns object keys in wire order, or nil for any other kind.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	return v.keys
}

// Has reports whether v is an object containing key.
func (v Value) Has(key string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.fields[key]
	return ok
}

// Get returns the member stored under key. Missing keys and non-objects yield null.
func (v Value) Get(key string) Value {
	if v.kind != KindObject {
		return Value{}
	}
	return v.fields[key]
}

// Path follows keys through nested objects. Any miss yields null.
func (v Value) Path(keys ...string) Value {
	current := v
	for _, key := range keys {
		if !current.Has(key) {
			return Value{}
		}
		current = current.fields[key]
	}
	return current
}

// Lookup returns the value at the first path that resolves and satisfies accept.
// A nil accept takes any non-null value.
func (v Value) Lookup(accept func(Value) bool, paths ...[]string) (Value, bool) {
	for _, path := range paths {
		found := v.Path(path...)
		if found.IsNull() {
			continue
		}
		if accept == nil || accept(found) {
			return found, true
		}
	}
	return Value{}, false
}

// FirstText returns the first non-empty string stored under any of keys.
func (v Value) FirstText(keys ...string) string {
	for _, key := range keys {
		if s, ok := v.Get(key).Str(); ok && s != "" {
			return s
		}
	}
	return ""
}

// Walk visits every string reachable from v, depth first, in wire order.
// Returning false from fn stops the traversal.
func (v Value) Walk(fn func(string) bool) bool {
	switch v.kind {
	case KindString:
		return fn(v.str)
	case KindObject:
		for _, key := range v.keys {
			if !v.fields[key].Walk(fn) {
				return false
			}
		}
	case KindArray:
		for _, item := range v.items {
			if !item.Walk(fn) {
				return false
			}
		}
	}
	return true
}

// Strings collects every string reachable from v. Object keys are not included.
func (v Value) Strings() []string {
	var out []string
	v.Walk(func(s string) bool {
		out = append(out, s)
		return true
	})
	return out
}

// ContainsAny reports whether any string reachable from v contains any of the
// needles as a substring. Empty needles never match.
func (v Value) ContainsAny(needles []string) bool {
	if len(needles) == 0 {
		return false
	}
	found := false
	v.Walk(func(s string) bool {
		for _, needle := range needles {
			if needle != "" && strings.Contains(s, needle) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// Parse decodes a single JSON document.
func Parse(data []byte) (Value, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single JSON document from r. Trailing content is an error.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return Value{}, errors.New("unexpected trailing data after JSON document")
		}
		return Value{}, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Value{}, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		// Out-of-range numbers keep their raw text and decode to ±Inf.
		f, err := t.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("number %q: %w", t.String(), err)
		}
		return Value{kind: KindNumber, num: f, raw: t.String()}, nil
	case json.Delim:
		switch t {
		case '{':
			obj := Value{kind: KindObject, fields: map[string]Value{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				member, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				if _, seen := obj.fields[key]; !seen {
					obj.keys = append(obj.keys, key)
				}
				obj.fields[key] = member
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return obj, nil
		case '[':
			arr := Value{kind: KindArray, items: []Value{}}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				arr.items = append(arr.items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return arr, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler, preserving object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindNumber:
		buf.WriteString(v.raw)
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.flag))
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, key := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(b)
			buf.WriteByte(':')
			if err := v.fields[key].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}
