package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/fjord/lang"
	"github.com/ardnew/fjord/lang/env"
	"github.com/ardnew/fjord/lang/value"
	"github.com/ardnew/fjord/log"
)

// resolve returns a [kong.ConfigurationLoader] for configuration written in
// fjord itself. The script is evaluated and every top-level binding becomes
// the default of the flag with the same name, underscores read as hyphens:
//
//	let log_level = "debug"
//	let max_depth = 200 * 5
//	let log_pretty = false
//
// Commands are not resolved while evaluating, so a configuration script
// cannot run programs. A script that fails to parse or evaluate is logged
// and ignored. Command-line flags override configured values.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		source, err := lang.ReadSource(r)
		if err != nil {
			return nil, err
		}

		scope := env.New(env.WithLogger(log.Default()))

		_, err = lang.Eval(ctx, source, scope, lang.WithLogger(log.Default()))
		if err != nil {
			log.WarnContext(ctx, "configuration ignored",
				slog.String("file", configFile()),
				slog.Any("error", err),
			)

			return config{}, nil
		}

		c := config{}

		for name, v := range scope.Bindings() {
			if flag, ok := flagValue(v); ok {
				c.set(name, flag)
			}
		}

		return c, nil
	}
}

// flagValue converts v to a value kong can decode into a flag. Nil and
// lambdas have no flag representation.
func flagValue(v value.Value) (any, bool) {
	switch v := v.(type) {
	case value.Number:
		return strconv.FormatInt(int64(v), 10), true
	case value.Str:
		return string(v), true
	case value.Bool:
		return bool(v), true
	default:
		return nil, false
	}
}

// resolveYAML is a [kong.ConfigurationLoader] for YAML configuration.
// Nested mappings name flags by joining keys with hyphens, so both of these
// set --log-level:
//
//	log-level: debug
//	log:
//	  level: debug
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, err
	}

	c := config{}
	c.flatten("", doc)

	return c, nil
}

// config implements [kong.Resolver] over values keyed by flag name.
type config map[string]any

func (c config) set(name string, v any) {
	c[strings.ReplaceAll(name, "_", "-")] = v
}

func (c config) flatten(prefix string, v any) {
	join := func(k any) string {
		if prefix == "" {
			return fmt.Sprint(k)
		}

		return prefix + "-" + fmt.Sprint(k)
	}

	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			c.flatten(join(k), e)
		}
	case map[any]any:
		for k, e := range v {
			c.flatten(join(k), e)
		}
	case []any:
		items := make([]string, len(v))
		for i, e := range v {
			items[i] = fmt.Sprint(e)
		}

		c.set(prefix, strings.Join(items, ","))
	case nil:
	case bool, string:
		c.set(prefix, v)
	default:
		c.set(prefix, fmt.Sprint(v))
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil //nolint:nilnil
}
