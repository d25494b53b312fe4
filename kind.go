package jsonmatch

import (
	"fmt"

	"github.com/go-faster/jx"
)

// NodeKind is the kind of a JSON value as named in diagnostics.
type NodeKind int

const (
	KindArray NodeKind = iota
	KindObject
	KindString
	KindBoolean
	KindNumber
	KindNull
)

// String returns the display name of the kind.
func (k NodeKind) String() string {
	switch k {
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindNull:
		return "Null"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// KindOf returns the kind of v. It panics for the zero Value, which no
// parser or constructor produces.
func KindOf(v Value) NodeKind {
	switch t := v.Type(); t {
	case jx.Array:
		return KindArray
	case jx.Object:
		return KindObject
	case jx.String:
		return KindString
	case jx.Bool:
		return KindBoolean
	case jx.Number:
		return KindNumber
	case jx.Null:
		return KindNull
	default:
		panic(fmt.Sprintf("jsonmatch: could not map JSON type %s to a NodeKind", t))
	}
}
