package jsonmatch

import (
	"fmt"
	"strings"

	"github.com/mcncl/jsonmatch/internal/models"
	"github.com/mcncl/jsonmatch/internal/textlayout"
)

// ElisionGlyph replaces the value of an ignored field when elision is on.
const ElisionGlyph = "…"

// ResultKind enumerates the closed set of Result variants.
type ResultKind int

const (
	ResultWrongType ResultKind = iota
	ResultScalar
	ResultNull
	ResultMissingField
	ResultMissingElement
	ResultExtraField
	ResultIgnoredField
	ResultObject
	ResultArray
	ResultAnnotated
)

// VisualizationContext carries rendering state down the result tree.
// The zero value renders with no extra indent and DefaultStyler.
type VisualizationContext struct {
	// ExtraIndent is the visible width of whatever precedes the first line
	// of the rendering on screen, such as a field label.
	ExtraIndent int
	// Styler maps styles to presentation. Nil means DefaultStyler.
	Styler Styler
}

func (c VisualizationContext) apply(style Style, text string) string {
	if c.Styler == nil {
		return DefaultStyler.Apply(style, text)
	}
	return c.Styler.Apply(style, text)
}

// nested returns the context for a child rendered after a label of the
// given visible width.
func (c VisualizationContext) nested(extraIndent int) VisualizationContext {
	return VisualizationContext{ExtraIndent: extraIndent, Styler: c.Styler}
}

// Result is the outcome of matching a value against a Matcher. Results are
// immutable and only created by matchers.
type Result interface {
	// IsMatch reports whether the value met the expectation.
	IsMatch() bool
	// Visualize renders the comparison for humans.
	Visualize(ctx VisualizationContext) string
	// ResultKind identifies the variant.
	ResultKind() ResultKind

	isResult()
}

// Visualize renders r with the zero VisualizationContext.
func Visualize(r Result) string {
	return r.Visualize(VisualizationContext{})
}

// WrongTypeResult reports a value of a different kind than expected.
type WrongTypeResult struct {
	Expected NodeKind
	Actual   NodeKind
	Value    Value
}

func (WrongTypeResult) IsMatch() bool          { return false }
func (WrongTypeResult) ResultKind() ResultKind { return ResultWrongType }
func (WrongTypeResult) isResult()              {}

func (r WrongTypeResult) Visualize(ctx VisualizationContext) string {
	return ctx.apply(StyleFailure, fmt.Sprintf("expected <%s>", r.Expected)) +
		fmt.Sprintf(" but got <%s>", r.Actual)
}

// ScalarResult compares a string, number or boolean with its expectation.
// The verdict is computed from the two values on demand.
type ScalarResult struct {
	Type     NodeKind
	Expected Value
	Actual   Value
}

func (r ScalarResult) IsMatch() bool        { return r.Expected.Equal(r.Actual) }
func (ScalarResult) ResultKind() ResultKind { return ResultScalar }
func (ScalarResult) isResult()              {}

func (r ScalarResult) Visualize(ctx VisualizationContext) string {
	if r.IsMatch() {
		return ctx.apply(StyleSuccess, r.Actual.Pretty())
	}
	return ctx.apply(StyleFailure, r.Actual.Pretty()) + ` expected "` + r.Expected.Text() + `"`
}

// NullResult is a null that was expected to be null.
type NullResult struct{}

func (NullResult) IsMatch() bool          { return true }
func (NullResult) ResultKind() ResultKind { return ResultNull }
func (NullResult) isResult()              {}

func (NullResult) Visualize(ctx VisualizationContext) string {
	return ctx.apply(StyleSuccess, "null")
}

// MissingFieldResult is an expected field absent from the object.
type MissingFieldResult struct {
	Field string
}

func (MissingFieldResult) IsMatch() bool          { return false }
func (MissingFieldResult) ResultKind() ResultKind { return ResultMissingField }
func (MissingFieldResult) isResult()              {}

func (MissingFieldResult) Visualize(VisualizationContext) string {
	return "is missing."
}

// MissingElementResult is an expected array element beyond the end of the
// actual array.
type MissingElementResult struct {
	Index int
}

func (MissingElementResult) IsMatch() bool          { return false }
func (MissingElementResult) ResultKind() ResultKind { return ResultMissingElement }
func (MissingElementResult) isResult()              {}

func (MissingElementResult) Visualize(ctx VisualizationContext) string {
	return ctx.apply(StyleFailure, "missing element")
}

// ExtraFieldResult is a field the expectation does not name, reported when
// extra fields are not ignored.
type ExtraFieldResult struct {
	Value Value
}

func (ExtraFieldResult) IsMatch() bool          { return false }
func (ExtraFieldResult) ResultKind() ResultKind { return ResultExtraField }
func (ExtraFieldResult) isResult()              {}

func (r ExtraFieldResult) Visualize(ctx VisualizationContext) string {
	return ctx.apply(StyleFailure, r.Value.Pretty()) + " unexpected field"
}

// IgnoredFieldResult is a field the expectation does not name, tolerated
// because extra fields are ignored.
type IgnoredFieldResult struct {
	Value Value
	Elide bool
}

func (IgnoredFieldResult) IsMatch() bool          { return true }
func (IgnoredFieldResult) ResultKind() ResultKind { return ResultIgnoredField }
func (IgnoredFieldResult) isResult()              {}

func (r IgnoredFieldResult) Visualize(ctx VisualizationContext) string {
	if r.Elide {
		return ctx.apply(StyleNeutral, ElisionGlyph)
	}
	return ctx.apply(StyleNeutral, r.Value.Pretty())
}

// FieldResult pairs a field name with its outcome.
type FieldResult struct {
	Name   string
	Result Result
}

// ObjectResult holds one outcome per field: the fields of the actual object
// in document order, then the missing ones in declaration order.
type ObjectResult struct {
	fields []FieldResult
}

// Fields returns the field outcomes in rendering order. The slice must not
// be modified.
func (r ObjectResult) Fields() []FieldResult {
	return r.fields
}

func (r ObjectResult) IsMatch() bool {
	for _, f := range r.fields {
		if !f.Result.IsMatch() {
			return false
		}
	}
	return true
}

func (ObjectResult) ResultKind() ResultKind { return ResultObject }
func (ObjectResult) isResult()              {}

func (r ObjectResult) Visualize(ctx VisualizationContext) string {
	if len(r.fields) == 0 {
		return "{}"
	}
	lines := make([]string, len(r.fields))
	for i, f := range r.fields {
		label := models.Quote(f.Name) + ": "
		value := f.Result.Visualize(ctx.nested(textlayout.VisibleWidth(label)))
		lines[i] = ctx.apply(labelStyle(f.Result), label) + value
	}
	return "{\n" + textlayout.Indent(strings.Join(lines, ",\n")) + "\n}"
}

// labelStyle picks the style of a field label from the field's outcome.
func labelStyle(r Result) Style {
	switch k := r.ResultKind(); k {
	case ResultMissingField, ResultExtraField:
		return StyleFailure
	case ResultIgnoredField:
		return StyleNeutral
	case ResultWrongType, ResultScalar, ResultNull, ResultMissingElement,
		ResultObject, ResultArray, ResultAnnotated:
		return StylePlain
	default:
		panic(fmt.Sprintf("jsonmatch: no label style for result kind %d", k))
	}
}

// ArrayResult holds one outcome per expected element.
type ArrayResult struct {
	elements []Result
}

// Elements returns the element outcomes in order. The slice must not be
// modified.
func (r ArrayResult) Elements() []Result {
	return r.elements
}

func (r ArrayResult) IsMatch() bool {
	for _, e := range r.elements {
		if !e.IsMatch() {
			return false
		}
	}
	return true
}

func (ArrayResult) ResultKind() ResultKind { return ResultArray }
func (ArrayResult) isResult()              {}

func (r ArrayResult) Visualize(ctx VisualizationContext) string {
	if len(r.elements) == 0 {
		return "[]"
	}
	lines := make([]string, len(r.elements))
	for i, e := range r.elements {
		lines[i] = e.Visualize(ctx.nested(0))
	}
	return "[\n" + textlayout.Indent(strings.Join(lines, ",\n")) + "\n]"
}

// AnnotatedResult attaches a caption to another result. The caption never
// changes the verdict.
type AnnotatedResult struct {
	Inner Result
	Text  string
}

func (r AnnotatedResult) IsMatch() bool        { return r.Inner.IsMatch() }
func (AnnotatedResult) ResultKind() ResultKind { return ResultAnnotated }
func (AnnotatedResult) isResult()              {}

func (r AnnotatedResult) Visualize(ctx VisualizationContext) string {
	return textlayout.Annotate(r.Inner.Visualize(ctx), r.Text, ctx.ExtraIndent)
}
