// Package expectation builds matchers from YAML expectation documents.
//
// A document mirrors the JSON it describes. Mapping keys that start with "$"
// are directives rather than fields:
//
//	$ignore_extra_fields: false      # report fields the mapping does not name
//	$elide_ignored_field_values: true
//	$annotate: "caption"             # shown next to the node's rendering
//	$value: <node>                   # match <node>, e.g. to annotate a scalar
//
// A key written as "$$name" matches the literal field "$name".
package expectation

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonmatch"
	"github.com/mcncl/jsonmatch/internal/errors"
)

const (
	directiveIgnoreExtraFields       = "ignore_extra_fields"
	directiveElideIgnoredFieldValues = "elide_ignored_field_values"
	directiveAnnotate                = "annotate"
	directiveValue                   = "value"
)

// Options are the object defaults used when a mapping has no directive
// overriding them.
type Options struct {
	IgnoreExtraFields       bool
	ElideIgnoredFieldValues bool
}

// DefaultOptions returns the defaults of jsonmatch.Object.
func DefaultOptions() Options {
	return Options{IgnoreExtraFields: true}
}

// Loader turns YAML nodes into matchers.
type Loader struct {
	opts Options
}

// NewLoader creates a Loader with the given object defaults.
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts}
}

// Load reads a single YAML document from r and builds its matcher.
func (l *Loader) Load(r io.Reader) (jsonmatch.Matcher, error) {
	dec := yaml.NewDecoder(r)

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewExpectationError("expectation document is empty", errors.ErrEmptyInput)
		}
		return nil, errors.NewExpectationError(fmt.Sprintf("YAML syntax error: %v", err), errors.ErrInvalidExpectation)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !stderrors.Is(err, io.EOF) {
		return nil, errors.NewExpectationError("expectation file must contain a single YAML document", errors.ErrInvalidExpectation)
	}

	return l.Node(&doc)
}

// LoadBytes builds the matcher described by data.
func (l *Loader) LoadBytes(data []byte) (jsonmatch.Matcher, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.NewExpectationError("expectation document is empty", errors.ErrEmptyInput)
	}
	return l.Load(strings.NewReader(string(data)))
}

// LoadFile builds the matcher described by the file at path.
func (l *Loader) LoadFile(path string) (jsonmatch.Matcher, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewInputError("expectation file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(fmt.Sprintf("expectation file '%s' not found", path), errors.ErrFileNotFound)
		}
		return nil, errors.NewInputError(fmt.Sprintf("failed to read expectation file '%s'", path), err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(fmt.Sprintf("expectation file '%s' is empty", path), errors.ErrFileEmpty)
	}
	return l.LoadBytes(data)
}

// Node builds the matcher for a decoded YAML node.
func (l *Loader) Node(n *yaml.Node) (jsonmatch.Matcher, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, errors.NewExpectationError("expectation document is empty", errors.ErrEmptyInput)
		}
		return l.Node(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, invalid(n, "unresolved alias")
		}
		return l.Node(n.Alias)
	case yaml.ScalarNode:
		return scalar(n)
	case yaml.SequenceNode:
		return l.sequence(n)
	case yaml.MappingNode:
		return l.mapping(n)
	default:
		return nil, errors.NewExpectationError("expectation document is empty", errors.ErrEmptyInput)
	}
}

func scalar(n *yaml.Node) (jsonmatch.Matcher, error) {
	switch n.ShortTag() {
	case "!!null":
		return jsonmatch.IsNull(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, invalid(n, "invalid boolean %q", n.Value)
		}
		return jsonmatch.EqBool(b), nil
	case "!!int", "!!float":
		v, err := jsonmatch.Parse(n.Value)
		if err != nil || jsonmatch.KindOf(v) != jsonmatch.KindNumber {
			return nil, invalid(n, "%q is not a JSON number", n.Value)
		}
		return jsonmatch.EqValue(v), nil
	default:
		return jsonmatch.EqString(n.Value), nil
	}
}

func (l *Loader) sequence(n *yaml.Node) (jsonmatch.Matcher, error) {
	b := jsonmatch.Array()
	for _, item := range n.Content {
		m, err := l.Node(item)
		if err != nil {
			return nil, err
		}
		b.With(m)
	}
	return b.Build(), nil
}

func (l *Loader) mapping(n *yaml.Node) (jsonmatch.Matcher, error) {
	b := jsonmatch.Object().
		IgnoreExtraFields(l.opts.IgnoreExtraFields).
		ElideIgnoredFieldValues(l.opts.ElideIgnoredFieldValues)

	var (
		annotation *string
		value      *yaml.Node
		others     []*yaml.Node
	)

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, node := resolve(n.Content[i]), n.Content[i+1]

		name, isDirective := directiveName(key.Value)
		if !isDirective {
			m, err := l.Node(node)
			if err != nil {
				return nil, err
			}
			b.With(name, m)
			others = append(others, key)
			continue
		}

		switch name {
		case directiveIgnoreExtraFields:
			v, err := boolDirective(key, resolve(node))
			if err != nil {
				return nil, err
			}
			b.IgnoreExtraFields(v)
			others = append(others, key)
		case directiveElideIgnoredFieldValues:
			v, err := boolDirective(key, resolve(node))
			if err != nil {
				return nil, err
			}
			b.ElideIgnoredFieldValues(v)
			others = append(others, key)
		case directiveAnnotate:
			text := resolve(node)
			if text.Kind != yaml.ScalarNode || text.ShortTag() == "!!null" {
				return nil, invalid(key, "%s expects a string", key.Value)
			}
			annotation = &text.Value
		case directiveValue:
			value = node
		default:
			return nil, errors.NewExpectationError(
				fmt.Sprintf("line %d: unknown directive %s", key.Line, key.Value),
				errors.ErrUnknownDirective,
			)
		}
	}

	var m jsonmatch.Matcher = b.Build()
	if value != nil {
		if len(others) > 0 {
			return nil, invalid(others[0], "%s cannot be combined with $value", others[0].Value)
		}
		var err error
		if m, err = l.Node(value); err != nil {
			return nil, err
		}
	}

	if annotation != nil {
		m = jsonmatch.Annotate(m, *annotation)
	}
	return m, nil
}

// directiveName splits a mapping key into a directive name in snake_case
// or a field name.
func directiveName(key string) (string, bool) {
	switch {
	case strings.HasPrefix(key, "$$"):
		return key[1:], false
	case strings.HasPrefix(key, "$"):
		return strcase.ToSnake(key[1:]), true
	default:
		return key, false
	}
}

func boolDirective(key, node *yaml.Node) (bool, error) {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!bool" {
		return false, invalid(key, "%s expects true or false", key.Value)
	}
	var v bool
	if err := node.Decode(&v); err != nil {
		return false, invalid(node, "invalid boolean %q", node.Value)
	}
	return v, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func invalid(n *yaml.Node, format string, args ...interface{}) *errors.AppError {
	return errors.NewExpectationError(
		fmt.Sprintf("line %d: %s", n.Line, fmt.Sprintf(format, args...)),
		errors.ErrInvalidExpectation,
	)
}

// Load builds a matcher from r with the default options.
func Load(r io.Reader) (jsonmatch.Matcher, error) {
	return NewLoader(DefaultOptions()).Load(r)
}

// LoadString builds a matcher from a YAML document held in s with the
// default options.
func LoadString(s string) (jsonmatch.Matcher, error) {
	return NewLoader(DefaultOptions()).LoadBytes([]byte(s))
}
