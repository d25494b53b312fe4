package jsonmatch

import (
	"fmt"
)

// Matcher is an expectation about a JSON value. Matchers are immutable and
// safe to share between goroutines.
type Matcher interface {
	// Match compares v with the expectation. It never fails; every
	// difference is reported in the returned Result.
	Match(v Value) Result
}

// scalarMatcher expects a string, number or boolean equal to expected.
type scalarMatcher struct {
	kind     NodeKind
	expected Value
}

func (m scalarMatcher) Match(v Value) Result {
	if actual := KindOf(v); actual != m.kind {
		return WrongTypeResult{Expected: m.kind, Actual: actual, Value: v}
	}
	return ScalarResult{Type: m.kind, Expected: m.expected, Actual: v}
}

// nullMatcher expects null.
type nullMatcher struct{}

func (nullMatcher) Match(v Value) Result {
	if actual := KindOf(v); actual != KindNull {
		return WrongTypeResult{Expected: KindNull, Actual: actual, Value: v}
	}
	return NullResult{}
}

// ObjectMatcher expects an object with the declared fields.
type ObjectMatcher struct {
	names                   []string
	fields                  map[string]Matcher
	ignoreExtraFields       bool
	elideIgnoredFieldValues bool
}

// FieldNames returns the declared field names in declaration order.
func (m *ObjectMatcher) FieldNames() []string {
	return append([]string(nil), m.names...)
}

// Field returns the matcher declared for name.
func (m *ObjectMatcher) Field(name string) (Matcher, bool) {
	fm, ok := m.fields[name]
	return fm, ok
}

// IgnoresExtraFields reports whether undeclared fields are tolerated.
func (m *ObjectMatcher) IgnoresExtraFields() bool {
	return m.ignoreExtraFields
}

// ElidesIgnoredFieldValues reports whether tolerated fields render as "…".
func (m *ObjectMatcher) ElidesIgnoredFieldValues() bool {
	return m.elideIgnoredFieldValues
}

func (m *ObjectMatcher) Match(v Value) Result {
	if actual := KindOf(v); actual != KindObject {
		return WrongTypeResult{Expected: KindObject, Actual: actual, Value: v}
	}

	fields := make([]FieldResult, 0, v.Len()+len(m.names))
	present := make(map[string]struct{}, v.Len())
	for _, f := range v.Fields() {
		present[f.Key] = struct{}{}

		var r Result
		switch fm, declared := m.fields[f.Key]; {
		case declared:
			r = fm.Match(f.Value)
		case m.ignoreExtraFields:
			r = IgnoredFieldResult{Value: f.Value, Elide: m.elideIgnoredFieldValues}
		default:
			r = ExtraFieldResult{Value: f.Value}
		}
		fields = append(fields, FieldResult{Name: f.Key, Result: r})
	}

	for _, name := range m.names {
		if _, ok := present[name]; !ok {
			fields = append(fields, FieldResult{Name: name, Result: MissingFieldResult{Field: name}})
		}
	}
	return ObjectResult{fields: fields}
}

// ArrayMatcher expects an array whose leading elements match the declared
// element matchers position by position. Elements past the last matcher are
// not inspected.
type ArrayMatcher struct {
	elements []Matcher
}

// Len returns the number of declared elements.
func (m *ArrayMatcher) Len() int {
	return len(m.elements)
}

func (m *ArrayMatcher) Match(v Value) Result {
	if actual := KindOf(v); actual != KindArray {
		return WrongTypeResult{Expected: KindArray, Actual: actual, Value: v}
	}

	results := make([]Result, len(m.elements))
	for i, em := range m.elements {
		item, ok := v.Index(i)
		if !ok {
			results[i] = MissingElementResult{Index: i}
			continue
		}
		results[i] = em.Match(item)
	}
	return ArrayResult{elements: results}
}

// AnnotatedMatcher wraps a matcher with a caption shown next to its result.
type AnnotatedMatcher struct {
	inner Matcher
	text  string
}

func (m AnnotatedMatcher) Match(v Value) Result {
	return AnnotatedResult{Inner: m.inner.Match(v), Text: m.text}
}

// ObjectBuilder accumulates the fields of an ObjectMatcher. Extra fields
// are ignored unless configured otherwise.
//
// A builder is itself a Matcher: matching builds a snapshot first, so a
// builder can be passed wherever a Matcher is expected.
type ObjectBuilder struct {
	names                   []string
	fields                  map[string]Matcher
	ignoreExtraFields       bool
	elideIgnoredFieldValues bool
}

// With declares the matcher for a field. Declaring the same field again
// replaces its matcher; the field keeps its original declaration position.
func (b *ObjectBuilder) With(name string, m Matcher) *ObjectBuilder {
	if m == nil {
		panic(fmt.Sprintf("jsonmatch: nil matcher for field %q", name))
	}
	if _, exists := b.fields[name]; !exists {
		b.names = append(b.names, name)
	}
	b.fields[name] = freeze(m)
	return b
}

// IgnoreExtraFields controls whether undeclared fields are tolerated
// (the default) or reported as unexpected.
func (b *ObjectBuilder) IgnoreExtraFields(ignore bool) *ObjectBuilder {
	b.ignoreExtraFields = ignore
	return b
}

// ElideIgnoredFieldValues controls whether tolerated fields render their
// value or a "…" placeholder.
func (b *ObjectBuilder) ElideIgnoredFieldValues(elide bool) *ObjectBuilder {
	b.elideIgnoredFieldValues = elide
	return b
}

// Build returns an ObjectMatcher of the fields declared so far. Later calls
// on the builder do not affect it.
func (b *ObjectBuilder) Build() *ObjectMatcher {
	fields := make(map[string]Matcher, len(b.fields))
	for name, m := range b.fields {
		fields[name] = m
	}
	return &ObjectMatcher{
		names:                   append([]string(nil), b.names...),
		fields:                  fields,
		ignoreExtraFields:       b.ignoreExtraFields,
		elideIgnoredFieldValues: b.elideIgnoredFieldValues,
	}
}

// Match builds the matcher and matches v against it.
func (b *ObjectBuilder) Match(v Value) Result {
	return b.Build().Match(v)
}

// ArrayBuilder accumulates the element matchers of an ArrayMatcher.
type ArrayBuilder struct {
	elements []Matcher
}

// With appends the matcher for the next element.
func (b *ArrayBuilder) With(m Matcher) *ArrayBuilder {
	if m == nil {
		panic(fmt.Sprintf("jsonmatch: nil matcher for element %d", len(b.elements)))
	}
	b.elements = append(b.elements, freeze(m))
	return b
}

// Build returns an ArrayMatcher of the elements declared so far.
func (b *ArrayBuilder) Build() *ArrayMatcher {
	return &ArrayMatcher{elements: append([]Matcher(nil), b.elements...)}
}

// Match builds the matcher and matches v against it.
func (b *ArrayBuilder) Match(v Value) Result {
	return b.Build().Match(v)
}

// freeze turns a builder into the matcher it currently describes, so that
// later calls on the builder cannot reach into matchers built from it.
func freeze(m Matcher) Matcher {
	switch b := m.(type) {
	case *ObjectBuilder:
		return b.Build()
	case *ArrayBuilder:
		return b.Build()
	default:
		return m
	}
}
