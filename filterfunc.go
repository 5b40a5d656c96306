/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 *
 * Grounded on original_source/dictwalk/dictwalk.py's PathFilter class and
 * _register_path_filter/_get_path_filter/_resolve_path_filter_string
 * functions, reshaped around the teacher's closures-as-path-expressions
 * idiom: each curried filter is a small struct holding a function and its
 * bound arguments.
 */

package dictwalk

import (
	"fmt"
	"regexp"
	"strings"
)

// FilterFunc is the signature every registered filter function implements:
// a unary transform over the current value, curried with whatever literal
// arguments followed it in the path expression (e.g. "$add(2)" curries
// amount=2).
type FilterFunc func(current Value, args []Value) (Value, error)

// Filter is a single named, possibly curried, possibly list-mapped filter
// step, mirroring the teacher's closures-as-path-expressions shape: a small
// value holding a function and its bound state rather than an interface
// hierarchy.
type Filter struct {
	name        string
	fn          FilterFunc
	args        []Value
	mapOverList bool
}

// newFilter wraps a bare FilterFunc under name, uncurried.
func newFilter(name string, fn FilterFunc) *Filter {
	return &Filter{name: name, fn: fn}
}

// WithArgs returns a copy of f curried with args.
func (f *Filter) WithArgs(args []Value) *Filter {
	return &Filter{name: f.name, fn: f.fn, args: args, mapOverList: f.mapOverList}
}

// WithMapOverList returns a copy of f that, when applied to a list, applies
// itself to each item instead of the list as a whole (the trailing "[]"
// suffix in a pipeline segment, e.g. "$double[]").
func (f *Filter) WithMapOverList() *Filter {
	clone := *f
	clone.mapOverList = true
	return &clone
}

// Call applies f to current.
func (f *Filter) Call(current Value) (Value, error) {
	if f.mapOverList && current.IsList() {
		items := current.List().Items()
		out := NewList()
		for _, item := range items {
			r, err := f.fn(item, f.args)
			if err != nil {
				return Value{}, err
			}
			out.Append(r)
		}
		return FromList(out), nil
	}
	return f.fn(current, f.args)
}

// Pipeline is a left-to-right composition of Filters, the "$a|$b(args)"
// grammar's runtime form.
type Pipeline struct {
	steps []*Filter
}

// Call threads current through every step in order.
func (p *Pipeline) Call(current Value) (Value, error) {
	v := current
	for _, step := range p.steps {
		r, err := step.Call(v)
		if err != nil {
			return Value{}, err
		}
		v = r
	}
	return v, nil
}

// Registry holds named filter functions available to path expressions. A
// registry is either mutable (a caller-constructed evaluator) or frozen
// (the package default), matching the "registry is effectively immutable
// after initial registration" invariant.
type Registry struct {
	byName map[string]*Filter
	frozen bool
}

// newRegistry constructs an empty, mutable registry.
func newRegistry() *Registry {
	return &Registry{byName: make(map[string]*Filter)}
}

// newDefaultRegistry constructs a registry pre-populated with the built-in
// catalogue (functions.go), unfrozen so callers may still extend it before
// freezing it themselves.
func newDefaultRegistry() *Registry {
	r := newRegistry()
	registerDefaultFilterFunctions(r)
	return r
}

func (r *Registry) freeze() { r.frozen = true }

// Register adds fn under name. Returns ErrFrozenRegistry if the registry
// has been frozen.
func (r *Registry) Register(name string, fn FilterFunc) (*Filter, error) {
	if r.frozen {
		return nil, frozenErrorFor("registering path filter " + name)
	}
	f := newFilter(name, fn)
	r.byName[name] = f
	return f, nil
}

// Get looks up a registered filter by name.
func (r *Registry) Get(name string) (*Filter, error) {
	f, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("dictwalk: path filter %q is not registered", name)
	}
	return f, nil
}

// segmentPattern matches one "$name", "$name(args)", "$name[]", or
// "$name(args)[]" pipeline segment. Grounded verbatim on the Python
// implementation's re.match(r"^\$([a-zA-Z_]\w*)(?:\((.*)\))?(\[\])?$", ...).
var segmentPattern = regexp.MustCompile(`^\$([a-zA-Z_]\w*)(?:\((.*)\))?(\[\])?$`)

// resolvePathFilterString parses value as a "$name|$other(args)[]" pipeline
// string and returns the composed Filter, or nil if value does not begin
// with "$" (i.e. it is not a filter-pipeline string at all).
func resolvePathFilterString(value string, registry *Registry) (*Filter, error) {
	if !strings.HasPrefix(value, "$") {
		return nil, nil
	}

	rawSegments := strings.Split(value, "|")
	var composed []*Filter
	for _, raw := range rawSegments {
		segment := strings.TrimSpace(raw)
		match := segmentPattern.FindStringSubmatch(segment)
		if match == nil {
			return nil, newParseError(value, segment,
				fmt.Sprintf("invalid path filter segment %q: expected '$<name>', '$<name>(...)', "+
					"or either with a trailing '[]' for list mapping", segment))
		}
		name, argsString, mapSuffix := match[1], match[2], match[3]

		f, err := registry.Get(name)
		if err != nil {
			return nil, newParseError(value, segment, err.Error())
		}
		if containsArgsGroup(segment) {
			args, perr := parseArgList(argsString)
			if perr != nil {
				return nil, newParseError(value, segment, perr.Error())
			}
			f = f.WithArgs(args)
		}
		if mapSuffix == "[]" {
			f = f.WithMapOverList()
		}
		composed = append(composed, f)
	}

	pipeline := &Pipeline{steps: composed}
	return newFilter(value, func(current Value, _ []Value) (Value, error) {
		return pipeline.Call(current)
	}), nil
}

// containsArgsGroup reports whether segment carries a "(...)" args group,
// distinguishing "$name" (no args) from "$name()" (an explicit, empty args
// list — still curries zero args so variadic filters like $coalesce work).
func containsArgsGroup(segment string) bool {
	open := strings.IndexByte(segment, '(')
	if open < 0 {
		return false
	}
	closeIdx := strings.LastIndexByte(segment, ')')
	return closeIdx > open
}

// resolvePathFilter resolves value (already known to be in "new value"
// position) as a filter pipeline if it is a string beginning with "$", or
// returns nil if it is not filter-pipeline shaped.
func resolvePathFilter(value Value, registry *Registry) (*Filter, error) {
	if !value.IsString() {
		return nil, nil
	}
	return resolvePathFilterString(value.Str(), registry)
}

// tokenizeBooleanFilterExpression splits a predicate right-hand-side
// boolean expression into "&&", "||", "!", "(", ")" operators and operand
// strings, preserving parens inside each operand (so a filter segment's own
// "(...)" args group is never mistaken for grouping). Grounded on
// _tokenize_boolean_filter_expression.
func tokenizeBooleanFilterExpression(expr string) []string {
	var tokens []string
	i := 0
	n := len(expr)
	for i < n {
		ch := expr[i]
		if ch == ' ' || ch == '\t' {
			i++
			continue
		}
		if strings.HasPrefix(expr[i:], "&&") {
			tokens = append(tokens, "&&")
			i += 2
			continue
		}
		if strings.HasPrefix(expr[i:], "||") {
			tokens = append(tokens, "||")
			i += 2
			continue
		}
		if ch == '(' || ch == ')' || ch == '!' {
			tokens = append(tokens, string(ch))
			i++
			continue
		}

		start := i
		depth := 0
		for i < n {
			c := expr[i]
			if c == '(' {
				depth++
				i++
				continue
			}
			if c == ')' {
				if depth == 0 {
					break
				}
				depth--
				i++
				continue
			}
			if depth == 0 && (strings.HasPrefix(expr[i:], "&&") || strings.HasPrefix(expr[i:], "||") || c == '!') {
				break
			}
			i++
		}
		operand := strings.TrimSpace(expr[start:i])
		if operand != "" {
			tokens = append(tokens, operand)
		}
	}
	return tokens
}

// booleanFilterParser recursive-descends tokenizeBooleanFilterExpression's
// output into a single composed Filter evaluating to a Bool Value.
// Grounded on _BooleanPathFilterParser.
type booleanFilterParser struct {
	tokens   []string
	idx      int
	registry *Registry
	raw      string
}

func parseBooleanFilterExpression(expr string, registry *Registry) (*Filter, error) {
	p := &booleanFilterParser{tokens: tokenizeBooleanFilterExpression(expr), registry: registry, raw: expr}
	result, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.idx != len(p.tokens) {
		return nil, newParseError(expr, p.peek(), fmt.Sprintf("unexpected token %q in boolean path filter expression", p.peek()))
	}
	return result, nil
}

func (p *booleanFilterParser) peek() string {
	if p.idx >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.idx]
}

func (p *booleanFilterParser) consume(expected string) error {
	if p.peek() != expected {
		return newParseError(p.raw, p.peek(), fmt.Sprintf("expected %q in boolean path filter expression, got %q", expected, p.peek()))
	}
	p.idx++
	return nil
}

func (p *booleanFilterParser) parseOr() (*Filter, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek() == "||" {
		p.idx++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l, r := left, right
		left = newFilter("||", func(v Value, _ []Value) (Value, error) {
			lv, err := l.Call(v)
			if err != nil {
				return Value{}, err
			}
			if lv.Truthy() {
				return Bool(true), nil
			}
			rv, err := r.Call(v)
			if err != nil {
				return Value{}, err
			}
			return Bool(rv.Truthy()), nil
		})
	}
	return left, nil
}

func (p *booleanFilterParser) parseAnd() (*Filter, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek() == "&&" {
		p.idx++
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		l, r := left, right
		left = newFilter("&&", func(v Value, _ []Value) (Value, error) {
			lv, err := l.Call(v)
			if err != nil {
				return Value{}, err
			}
			if !lv.Truthy() {
				return Bool(false), nil
			}
			rv, err := r.Call(v)
			if err != nil {
				return Value{}, err
			}
			return Bool(rv.Truthy()), nil
		})
	}
	return left, nil
}

func (p *booleanFilterParser) parseNot() (*Filter, error) {
	if p.peek() == "!" {
		p.idx++
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return newFilter("!", func(v Value, _ []Value) (Value, error) {
			iv, err := inner.Call(v)
			if err != nil {
				return Value{}, err
			}
			return Bool(!iv.Truthy()), nil
		}), nil
	}
	return p.parsePrimary()
}

func (p *booleanFilterParser) parsePrimary() (*Filter, error) {
	if p.peek() == "(" {
		p.idx++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.consume(")"); err != nil {
			return nil, err
		}
		return inner, nil
	}

	token := p.peek()
	if token == "" {
		return nil, newParseError(p.raw, "", "unexpected end of boolean path filter expression")
	}
	p.idx++
	f, err := resolvePathFilterString(token, p.registry)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, newParseError(p.raw, token, fmt.Sprintf("invalid path filter token %q in boolean expression", token))
	}
	return f, nil
}

// resolvePredicatePathFilter resolves a predicate right-hand-side filter
// expression: a boolean combination of "$pipeline" tokens if it contains
// any of "&&", "||", "!", or a single "$pipeline" string otherwise.
func resolvePredicatePathFilter(value string, registry *Registry) (*Filter, error) {
	if strings.Contains(value, "&&") || strings.Contains(value, "||") || strings.Contains(value, "!") {
		return parseBooleanFilterExpression(value, registry)
	}
	return resolvePathFilterString(value, registry)
}

// resolveRootReferenceValue resolves a "$$root", "$$root.<path>", or
// "$$root|<pipeline>" value string against rootData under strict
// semantics. Grounded on _resolve_root_reference_value.
func resolveRootReferenceValue(value string, rootData Value, e *Evaluator) (Value, error) {
	var rootPath string
	switch {
	case value == "$$root":
		rootPath = "."
	case strings.HasPrefix(value, "$$root."):
		rootPath = value[len("$$root."):]
	case strings.HasPrefix(value, "$$root|"):
		rootPath = "." + value[len("$$root"):]
	default:
		return Value{}, newParseError(value, value,
			"invalid '$$root' value expression: expected '$$root', '$$root.<path>', or '$$root|$filter'")
	}
	return e.getPathValue(rootData, rootPath, true, rootData)
}

// resolveNewValue resolves the effective value to write: a "$$root..."
// reference, a filter pipeline applied to the existing value, or the
// literal value itself. Grounded on _resolve_new_value.
func resolveNewValue(existing, newValue Value, e *Evaluator, rootData Value) (Value, error) {
	if newValue.IsString() && strings.HasPrefix(newValue.Str(), "$$root") {
		return resolveRootReferenceValue(newValue.Str(), rootData, e)
	}
	f, err := resolvePathFilter(newValue, e.registry)
	if err != nil {
		return Value{}, err
	}
	if f != nil {
		return f.Call(existing)
	}
	return newValue, nil
}
