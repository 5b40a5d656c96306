/*
 * Copyright 2023 SteelBridgeLabs, Inc.
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 *
 * The package-level API, grounded on the teacher's top-level Get/Set
 * functions (jsonpath.go) and functional-options idiom (option.go), wired
 * to Evaluator/Value instead of pathContext/any.
 */

package dictwalk

// GetOption configures a Get or Exists call.
type GetOption struct {
	setup func(*getConfig)
}

type getConfig struct {
	strict  bool
	dflt    Value
}

// Strict makes Get/Exists raise a ResolutionError instead of returning a
// default/false on resolution failure.
func Strict() GetOption {
	return GetOption{setup: func(c *getConfig) { c.strict = true }}
}

// WithDefault sets the value Get returns when resolution fails in
// non-strict mode (Null() otherwise).
func WithDefault(v Value) GetOption {
	return GetOption{setup: func(c *getConfig) { c.dflt = v }}
}

func newGetConfig(opts []GetOption) *getConfig {
	c := &getConfig{dflt: Null()}
	for _, o := range opts {
		o.setup(c)
	}
	return c
}

// SetOption configures a Set call's WriteOptions and strict-mode behavior.
type SetOption struct {
	setup func(*setConfig)
}

type setConfig struct {
	strict  bool
	options WriteOptions
}

// SetStrict requires the path to resolve up to its parent before writing.
func SetStrict() SetOption {
	return SetOption{setup: func(c *setConfig) { c.strict = true }}
}

// NoCreateMissing disables materializing missing intermediate containers.
func NoCreateMissing() SetOption {
	return SetOption{setup: func(c *setConfig) { c.options.CreateMissing = false }}
}

// NoCreateFilterMatch disables appending a new item when a predicate write
// matches nothing.
func NoCreateFilterMatch() SetOption {
	return SetOption{setup: func(c *setConfig) { c.options.CreateFilterMatch = false }}
}

// NoOverwriteIncompatible disables replacing an incompatible intermediate
// value while descending a path.
func NoOverwriteIncompatible() SetOption {
	return SetOption{setup: func(c *setConfig) { c.options.OverwriteIncompatible = false }}
}

func newSetConfig(opts []SetOption) *setConfig {
	c := &setConfig{options: DefaultWriteOptions()}
	for _, o := range opts {
		o.setup(c)
	}
	return c
}

var defaultEvaluator = newFrozenEvaluator()

// Default returns the package's shared frozen Evaluator: the instance every
// top-level Get/Exists/Set/Unset/RunFilterFunction call below uses, and
// whose registry rejects further RegisterPathFilter calls.
func Default() *Evaluator { return defaultEvaluator }

// Get resolves path against data using the default evaluator. See
// Evaluator semantics: non-strict resolution failures return
// WithDefault's value (Null() unless overridden); Strict() raises a
// ResolutionError instead.
func Get(data Value, path string, opts ...GetOption) (Value, error) {
	cfg := newGetConfig(opts)
	v, err := defaultEvaluator.getPathValue(data, path, cfg.strict, data)
	if err != nil {
		return Value{}, err
	}
	if v.IsNull() && !cfg.dflt.IsNull() {
		// Only substitute the configured default when resolution genuinely
		// fell through (non-strict failure), never when the resolved value
		// is itself legitimately Null. getPathValue collapses both to Null()
		// on non-strict failure, so the base path (without any output
		// transform) is walked again to tell them apart.
		base, _, _ := splitPathAndTransform(path)
		if base == "." {
			return v, nil
		}
		if ok, _ := defaultEvaluator.pathExists(data, base, false); !ok {
			return cfg.dflt, nil
		}
	}
	return v, nil
}

// Exists reports whether path resolves against data using the default
// evaluator.
func Exists(data Value, path string, opts ...GetOption) (bool, error) {
	cfg := newGetConfig(opts)
	return defaultEvaluator.pathExists(data, path, cfg.strict)
}

// Set writes value at path in data (mutated in place and returned) using
// the default evaluator.
func Set(data Value, path string, value Value, opts ...SetOption) (Value, error) {
	cfg := newSetConfig(opts)
	return defaultEvaluator.setPathValue(data, path, value, cfg.strict, cfg.options)
}

// Unset removes whatever path targets from data (mutated in place and
// returned) using the default evaluator.
func Unset(data Value, path string, opts ...GetOption) (Value, error) {
	cfg := newGetConfig(opts)
	return defaultEvaluator.unsetPathValue(data, path, cfg.strict)
}

// RunFilterFunction applies a "$name(args)[]" pipeline string directly to a
// value using the default evaluator's registry.
func RunFilterFunction(expression string, value Value) (Value, error) {
	return defaultEvaluator.RunFilterFunction(expression, value)
}

// RegisterPathFilter registers a filter function against the package
// default evaluator. Since Default() is frozen, this always returns
// ErrFrozenRegistry; callers who need custom filters must construct their
// own Evaluator with NewEvaluator() and register against that instead.
func RegisterPathFilter(name string, fn FilterFunc) (*Filter, error) {
	return defaultEvaluator.RegisterPathFilter(name, fn)
}

// GetPathFilter retrieves a filter previously registered on the default
// evaluator (including the built-in catalogue). Since Default() is frozen,
// this always returns ErrFrozenRegistry; callers who need to introspect
// filters must construct their own Evaluator with NewEvaluator() instead.
func GetPathFilter(name string) (*Filter, error) {
	return defaultEvaluator.GetPathFilter(name)
}
