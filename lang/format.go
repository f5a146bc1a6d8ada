package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the program's syntax tree to w in the indented debug form
// of [syntax.Debug].
func (p *Program) Format(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, p.DebugTree())

	return err
}

// FormatJSON writes the program's syntax tree as JSON. A positive indent
// pretty-prints with that many spaces per level.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(p.Syntax(), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(p.Syntax())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the program's syntax tree as YAML. A non-positive indent
// selects flow style.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, p.Syntax(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
