// Package env implements the scope chain that fjord programs evaluate in.
//
// An [Env] maps names to values and links to the scope it was created from.
// Lookups walk outward through the chain. Calls that name no lambda fall
// back to a [CommandLookup], normally a [Commands] cache of the executables
// found on a search path.
package env

import (
	"iter"
	"log/slog"
	"maps"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/fjord/lang/value"
	"github.com/ardnew/fjord/log"
)

// CommandLookup resolves command names to executable paths.
type CommandLookup interface {
	Get(name string) (string, bool)
	Names() []string
}

// Env is one scope of the chain. The root scope carries the command lookup
// and logger, and every child created from it shares them.
//
// An Env must not be used by more than one evaluation at a time.
type Env struct {
	bindings map[string]value.Value
	parent   *Env
	commands CommandLookup
	logger   log.Logger
}

// Option configures a root [Env].
type Option func(*Env)

// WithCommands sets the lookup used for names that are not bound to a
// lambda. Without it no command ever resolves.
func WithCommands(c CommandLookup) Option {
	return func(e *Env) { e.commands = c }
}

// WithLogger sets the logger used to trace scope operations.
func WithLogger(l log.Logger) Option {
	return func(e *Env) { e.logger = l }
}

// New returns an empty root scope.
func New(opts ...Option) *Env {
	e := &Env{bindings: make(map[string]value.Value)}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Child returns a new empty scope whose parent is e.
func (e *Env) Child() *Env {
	return &Env{
		bindings: make(map[string]value.Value),
		parent:   e,
		commands: e.commands,
		logger:   e.logger,
	}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (e *Env) Parent() *Env { return e.parent }

// Depth returns the number of scopes between e and its root.
func (e *Env) Depth() int {
	n := 0
	for p := e.parent; p != nil; p = p.parent {
		n++
	}

	return n
}

// StoreBinding binds name to v in this scope, replacing any binding of the
// same name in this scope.
func (e *Env) StoreBinding(name string, v value.Value) {
	e.bindings[name] = v

	e.logger.Trace("store binding",
		slog.String("name", name),
		slog.Int("depth", e.Depth()),
		value.Attr("value", v),
	)
}

// Binding returns the value bound to name in the nearest scope that binds
// it.
func (e *Env) Binding(name string) (value.Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.bindings[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Callee is the target of a call: a lambda, or the path of an executable.
type Callee struct {
	Lambda  *value.Lambda
	Command string
}

// IsCommand reports whether c refers to an executable.
func (c Callee) IsCommand() bool { return c.Lambda == nil && c.Command != "" }

// FuncOrCommand resolves name as a call target. A binding to a lambda wins.
// Otherwise, whether name is unbound or bound to some other value, the
// command lookup is consulted.
func (e *Env) FuncOrCommand(name string) (Callee, bool) {
	if v, ok := e.Binding(name); ok {
		if l, ok := v.(value.Lambda); ok {
			return Callee{Lambda: &l}, true
		}
	}

	if e.commands != nil {
		if path, ok := e.commands.Get(name); ok {
			return Callee{Command: path}, true
		}
	}

	return Callee{}, false
}

// Bindings returns an iterator over every visible binding, innermost scope
// first. Shadowed bindings are skipped.
func (e *Env) Bindings() iter.Seq2[string, value.Value] {
	return func(yield func(string, value.Value) bool) {
		seen := make(map[string]struct{})

		for s := e; s != nil; s = s.parent {
			for _, name := range slices.Sorted(maps.Keys(s.bindings)) {
				if _, ok := seen[name]; ok {
					continue
				}

				seen[name] = struct{}{}

				if !yield(name, s.bindings[name]) {
					return
				}
			}
		}
	}
}

// maxSuggestions bounds the candidates returned by Suggest.
const maxSuggestions = 3

// Suggest returns up to three names that fuzzily match name, best first.
// Visible bindings are searched when bindings is true, and command names
// when commands is true.
func (e *Env) Suggest(name string, bindings, commands bool) []string {
	var candidates []string

	if bindings {
		for n := range e.Bindings() {
			candidates = append(candidates, n)
		}
	}

	if commands && e.commands != nil {
		candidates = append(candidates, e.commands.Names()...)
	}

	var found []string

	for _, m := range fuzzy.Find(name, candidates) {
		if m.Str == name || slices.Contains(found, m.Str) {
			continue
		}

		found = append(found, m.Str)

		if len(found) == maxSuggestions {
			break
		}
	}

	return found
}
