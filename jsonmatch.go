// Package jsonmatch compares JSON documents against structural expectations
// and renders the comparison as an annotated, colored view of the document.
//
// Expectations are assembled from a few primitives:
//
//	m := jsonmatch.Object().
//		With("id", jsonmatch.Eq(42)).
//		With("tags", jsonmatch.Array().With(jsonmatch.Eq("new"))).
//		With("owner", jsonmatch.Annotate(jsonmatch.IsNull(), "Not assigned yet."))
//
//	result, err := jsonmatch.MatchJSON(m, body)
//	if err != nil {
//		return err
//	}
//	if !result.IsMatch() {
//		fmt.Println(jsonmatch.Visualize(result))
//	}
//
// Fields are rendered in the order of the actual document, followed by any
// expected fields the document lacks.
package jsonmatch

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-faster/jx"

	"github.com/mcncl/jsonmatch/internal/models"
	"github.com/mcncl/jsonmatch/internal/parser"
)

// Value is a parsed JSON value whose objects keep document field order.
type Value = models.Value

// Scalar lists the Go types accepted by Eq.
type Scalar interface {
	string | bool |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// Object starts an object expectation.
func Object() *ObjectBuilder {
	return &ObjectBuilder{
		fields:            make(map[string]Matcher),
		ignoreExtraFields: true,
	}
}

// Array starts an array expectation.
func Array() *ArrayBuilder {
	return &ArrayBuilder{}
}

// Eq expects a string, number or boolean equal to v.
func Eq[T Scalar](v T) Matcher {
	switch x := any(v).(type) {
	case string:
		return EqString(x)
	case bool:
		return EqBool(x)
	case int:
		return EqValue(models.Int(int64(x)))
	case int8:
		return EqValue(models.Int(int64(x)))
	case int16:
		return EqValue(models.Int(int64(x)))
	case int32:
		return EqValue(models.Int(int64(x)))
	case int64:
		return EqValue(models.Int(x))
	case uint:
		return EqValue(models.Uint(uint64(x)))
	case uint8:
		return EqValue(models.Uint(uint64(x)))
	case uint16:
		return EqValue(models.Uint(uint64(x)))
	case uint32:
		return EqValue(models.Uint(uint64(x)))
	case uint64:
		return EqValue(models.Uint(x))
	case float32:
		return EqValue(models.Number(strconv.FormatFloat(float64(x), 'f', -1, 32)))
	case float64:
		return EqValue(models.Float(x))
	default:
		panic(fmt.Sprintf("jsonmatch: unsupported scalar type %T", v))
	}
}

// EqString expects the string s.
func EqString(s string) Matcher {
	return scalarMatcher{kind: KindString, expected: models.String(s)}
}

// EqBool expects the boolean b.
func EqBool(b bool) Matcher {
	return scalarMatcher{kind: KindBoolean, expected: models.Bool(b)}
}

// EqNumber expects a number equal to the given JSON number literal, e.g.
// "12", "-0.5" or "1e9". It panics if literal is not a JSON number.
func EqNumber(literal string) Matcher {
	v, err := parser.ParseString(literal)
	if err != nil || v.Type() != jx.Number {
		panic(fmt.Sprintf("jsonmatch: %q is not a JSON number", literal))
	}
	return scalarMatcher{kind: KindNumber, expected: v}
}

// EqValue expects a value equal to the scalar v; a null v expects null. It
// panics for arrays and objects, which are matched with Array and Object.
func EqValue(v Value) Matcher {
	switch kind := KindOf(v); kind {
	case KindString, KindNumber, KindBoolean:
		return scalarMatcher{kind: kind, expected: v}
	case KindNull:
		return IsNull()
	default:
		panic(fmt.Sprintf("jsonmatch: EqValue needs a scalar, got %s", kind))
	}
}

// IsNull expects null.
func IsNull() Matcher {
	return nullMatcher{}
}

// Annotate attaches a caption to m. The caption is rendered next to the
// result of m and never changes its verdict.
func Annotate(m Matcher, text string) Matcher {
	if m == nil {
		panic("jsonmatch: cannot annotate a nil matcher")
	}
	return AnnotatedMatcher{inner: freeze(m), text: text}
}

// Parse parses a single JSON document.
func Parse(text string) (Value, error) {
	return parser.ParseString(text)
}

// ParseReader parses a single JSON document read from r.
func ParseReader(r io.Reader) (Value, error) {
	return parser.Parse(r)
}

// MatchJSON parses text and matches it against m. The only error is a
// document that is not valid JSON.
func MatchJSON(m Matcher, text string) (Result, error) {
	v, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return m.Match(v), nil
}
