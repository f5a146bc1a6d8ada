package syntax

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Debug renders the tree rooted at n with one element per line, indented two
// spaces per level of nesting:
//
//	Root@0..5
//	  BinOp@0..5
//	    Digits@0..1 "1"
//	    Whitespace@1..2 " "
//	    Plus@2..3 "+"
//
// The format is meant for tests and diagnostics and may change.
func Debug(n *Node) string {
	var sb strings.Builder

	writeDebug(&sb, n, 0)

	return strings.TrimSuffix(sb.String(), "\n")
}

func writeDebug(sb *strings.Builder, el Element, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(el.Kind().String())
	sb.WriteByte('@')
	sb.WriteString(el.Range().String())

	switch el := el.(type) {
	case *Token:
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(el.text))
		sb.WriteByte('\n')

	case *Node:
		sb.WriteByte('\n')

		for _, c := range el.children {
			writeDebug(sb, c, depth+1)
		}
	}
}

// encoded is the serialized shape of an element.
type encoded struct {
	Kind     string    `json:"kind"               yaml:"kind"`
	Range    Range     `json:"range"              yaml:"range"`
	Text     *string   `json:"text,omitempty"     yaml:"text,omitempty"`
	Children []encoded `json:"children,omitempty" yaml:"children,omitempty"`
}

func encode(el Element) encoded {
	e := encoded{Kind: el.Kind().String(), Range: el.Range()}

	switch el := el.(type) {
	case *Token:
		text := el.text
		e.Text = &text

	case *Node:
		e.Children = make([]encoded, 0, len(el.children))
		for _, c := range el.children {
			e.Children = append(e.Children, encode(c))
		}
	}

	return e
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) { return json.Marshal(encode(n)) }

// MarshalJSON implements json.Marshaler.
func (t *Token) MarshalJSON() ([]byte, error) { return json.Marshal(encode(t)) }

// MarshalYAML implements yaml.InterfaceMarshaler.
func (n *Node) MarshalYAML() (any, error) { return encode(n), nil }

// MarshalYAML implements yaml.InterfaceMarshaler.
func (t *Token) MarshalYAML() (any, error) { return encode(t), nil }

// YAML renders the tree rooted at n as a YAML document with the given indent
// width.
func YAML(n *Node, indent int) ([]byte, error) {
	if indent <= 0 {
		indent = 2
	}

	return yaml.MarshalWithOptions(encode(n), yaml.Indent(indent))
}
