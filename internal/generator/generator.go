package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-faster/jx"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonmatch/internal/errors"
	"github.com/mcncl/jsonmatch/internal/models"
)

// Generator writes expectation documents that match a given JSON value
type Generator struct {
	// Strict marks every object with $ignore_extra_fields: false
	Strict bool
	// Header is written as a comment above the document when not empty
	Header string
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders v as a YAML expectation document
func (g *Generator) Generate(v models.Value) ([]byte, error) {
	if !v.IsValid() {
		return nil, errors.NewOutputError("cannot snapshot an empty value", errors.ErrEmptyInput)
	}

	doc := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{g.Node(v)},
	}
	if g.Header != "" {
		doc.HeadComment = g.Header
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.NewOutputError("failed to encode snapshot", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.NewOutputError("failed to encode snapshot", err)
	}
	return buf.Bytes(), nil
}

// Node converts v into the YAML node of its expectation
func (g *Generator) Node(v models.Value) *yaml.Node {
	switch v.Type() {
	case jx.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if g.Strict {
			n.Content = append(n.Content, scalar("!!str", "$ignore_extra_fields"), scalar("!!bool", "false"))
		}
		for _, f := range v.Fields() {
			n.Content = append(n.Content, scalar("!!str", escapeKey(f.Key)), g.Node(f.Value))
		}
		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}
		return n
	case jx.Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, g.Node(item))
		}
		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}
		return n
	case jx.String:
		return scalar("!!str", v.Str())
	case jx.Number:
		return scalar(numberTag(v.Literal()), v.Literal())
	case jx.Bool:
		return scalar("!!bool", fmt.Sprint(v.Boolean()))
	default:
		return scalar("!!null", "null")
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// escapeKey keeps field names that start with "$" from being read back as
// directives.
func escapeKey(key string) string {
	if strings.HasPrefix(key, "$") {
		return "$" + key
	}
	return key
}

func numberTag(literal string) string {
	if strings.ContainsAny(literal, ".eE") {
		return "!!float"
	}
	return "!!int"
}
