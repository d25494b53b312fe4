// Package models holds the in-memory JSON document that matchers compare
// against. Objects keep their fields in document order.
package models

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/go-faster/jx"

	"github.com/mcncl/jsonmatch/internal/textlayout"
)

// Value is a parsed JSON value. The zero Value is invalid; use the
// constructors or the parser to obtain one.
type Value struct {
	typ     jx.Type
	boolean bool
	// text is the payload of strings and the literal of numbers.
	text   string
	items  []Value
	fields []Field
}

// Field is a single key/value pair of an object.
type Field struct {
	Key   string
	Value Value
}

// Null returns the JSON null value.
func Null() Value {
	return Value{typ: jx.Null}
}

// Bool returns a JSON boolean.
func Bool(b bool) Value {
	return Value{typ: jx.Bool, boolean: b}
}

// String returns a JSON string.
func String(s string) Value {
	return Value{typ: jx.String, text: s}
}

// Number returns a JSON number with the given literal, e.g. "12" or "1.5e3".
// The literal is kept verbatim for rendering.
func Number(literal string) Value {
	return Value{typ: jx.Number, text: literal}
}

// Int returns a JSON number holding n.
func Int(n int64) Value {
	return Number(strconv.FormatInt(n, 10))
}

// Uint returns a JSON number holding n.
func Uint(n uint64) Value {
	return Number(strconv.FormatUint(n, 10))
}

// Float returns a JSON number holding f in its shortest decimal form.
func Float(f float64) Value {
	return Number(strconv.FormatFloat(f, 'f', -1, 64))
}

// Array returns a JSON array of the given items.
func Array(items ...Value) Value {
	return Value{typ: jx.Array, items: items}
}

// Object returns a JSON object. Fields are kept in the order given; a
// repeated key replaces the earlier value but keeps its position.
func Object(fields ...Field) Value {
	out := make([]Field, 0, len(fields))
	index := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, seen := index[f.Key]; seen {
			out[i].Value = f.Value
			continue
		}
		index[f.Key] = len(out)
		out = append(out, f)
	}
	return Value{typ: jx.Object, fields: out}
}

// With returns a copy of the object with key set to val.
func (v Value) With(key string, val Value) Value {
	fields := make([]Field, len(v.fields), len(v.fields)+1)
	copy(fields, v.fields)
	return Object(append(fields, Field{Key: key, Value: val})...)
}

// Type returns the JSON type tag of the value. The zero Value reports jx.Invalid.
func (v Value) Type() jx.Type {
	return v.typ
}

// IsValid reports whether v was built by a constructor or the parser.
func (v Value) IsValid() bool {
	return v.typ != jx.Invalid
}

// Boolean returns the payload of a boolean value.
func (v Value) Boolean() bool {
	return v.boolean
}

// Str returns the payload of a string value.
func (v Value) Str() string {
	if v.typ != jx.String {
		return ""
	}
	return v.text
}

// Literal returns the source literal of a number value.
func (v Value) Literal() string {
	if v.typ != jx.Number {
		return ""
	}
	return v.text
}

// Rat returns the exact value of a number. ok is false for values that are
// not numbers or whose literal is not a finite decimal.
func (v Value) Rat() (r *big.Rat, ok bool) {
	if v.typ != jx.Number {
		return nil, false
	}
	return new(big.Rat).SetString(v.text)
}

// Items returns the elements of an array.
func (v Value) Items() []Value {
	return v.items
}

// Len returns the number of elements of an array or fields of an object.
func (v Value) Len() int {
	switch v.typ {
	case jx.Array:
		return len(v.items)
	case jx.Object:
		return len(v.fields)
	default:
		return 0
	}
}

// Index returns the i-th array element.
func (v Value) Index(i int) (Value, bool) {
	if i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Fields returns the fields of an object in document order.
func (v Value) Fields() []Field {
	return v.fields
}

// Keys returns the field names of an object in document order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.fields))
	for i, f := range v.fields {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value of the named object field.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Text returns the unquoted text of a scalar: the string payload, the number
// literal, "true"/"false" or "null".
func (v Value) Text() string {
	switch v.typ {
	case jx.String, jx.Number:
		return v.text
	case jx.Bool:
		return strconv.FormatBool(v.boolean)
	case jx.Null:
		return "null"
	default:
		return v.Pretty()
	}
}

// Equal reports whether two values are structurally equal. Numbers are
// compared by exact value, so 12, 12.0 and 1.2e1 are equal. Object field
// order is not significant.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case jx.Null, jx.Invalid:
		return true
	case jx.Bool:
		return v.boolean == o.boolean
	case jx.String:
		return v.text == o.text
	case jx.Number:
		a, okA := v.Rat()
		b, okB := o.Rat()
		if !okA || !okB {
			return false
		}
		return a.Cmp(b) == 0
	case jx.Array:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case jx.Object:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for _, f := range v.fields {
			other, ok := o.Get(f.Key)
			if !ok || !f.Value.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

// Pretty renders the value as indented JSON, one element or field per line
// and four spaces per nesting level.
func (v Value) Pretty() string {
	switch v.typ {
	case jx.Null:
		return "null"
	case jx.Bool:
		return strconv.FormatBool(v.boolean)
	case jx.Number:
		return v.text
	case jx.String:
		return Quote(v.text)
	case jx.Array:
		if len(v.items) == 0 {
			return "[]"
		}
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.Pretty()
		}
		return "[\n" + textlayout.Indent(strings.Join(parts, ",\n")) + "\n]"
	case jx.Object:
		if len(v.fields) == 0 {
			return "{}"
		}
		parts := make([]string, len(v.fields))
		for i, f := range v.fields {
			parts[i] = Quote(f.Key) + ": " + f.Value.Pretty()
		}
		return "{\n" + textlayout.Indent(strings.Join(parts, ",\n")) + "\n}"
	default:
		return "<invalid>"
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.Pretty()
}

// Quote returns s as a JSON string literal.
func Quote(s string) string {
	var e jx.Encoder
	e.Str(s)
	return e.String()
}
