/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 *
 * Grounded on original_source/dictwalk/dictwalk.py's _FilterToken, the
 * "[?field op value]" predicate token. Implements SPEC_FULL.md §4.10's
 * resolved ambiguity: a left-hand side starting with "." that is neither
 * exactly "." nor ".|<pipeline>" is treated as a dot-prefixed alias for the
 * bare key name, rather than silently falling through to a filter with no
 * match (the literal behavior of the code this was distilled from).
 */

package dictwalk

import "strings"

type filterToken struct {
	listKey          string
	field            string
	operator         string
	valueRaw         string
	fieldUsesItemRoot bool
	fieldPathFilter  *Filter
	pathFilter       *Filter
}

func newFilterToken(listKey, field, operator, valueRaw string, e *Evaluator) (*filterToken, error) {
	t := &filterToken{listKey: listKey, operator: operator, valueRaw: valueRaw}

	switch {
	case field == ".":
		t.fieldUsesItemRoot = true
		t.field = field
	case strings.HasPrefix(field, ".|"):
		t.fieldUsesItemRoot = true
		f, err := resolvePathFilterString(field[2:], e.registry)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, newParseError(listKey+"[?"+field+operator+valueRaw+"]", field,
				"invalid left-hand predicate expression "+field)
		}
		t.fieldPathFilter = f
		t.field = field
	case strings.HasPrefix(field, "$"):
		return nil, newParseError(listKey+"[?"+field+operator+valueRaw+"]", field,
			"left-hand predicate filter functions must use '?.|$name' syntax (for example: '[?.|$len>3]')")
	case strings.HasPrefix(field, "."):
		// Resolved ambiguity: generalize any other dot-prefixed LHS to the
		// bare key name it names.
		stripped := field[1:]
		f, err := resolvePredicatePathFilter(stripped, e.registry)
		if err != nil {
			return nil, err
		}
		t.fieldPathFilter = f
		t.field = stripped
	default:
		f, err := resolvePredicatePathFilter(field, e.registry)
		if err != nil {
			return nil, err
		}
		t.fieldPathFilter = f
		t.field = field
	}

	pf, err := resolvePredicatePathFilter(valueRaw, e.registry)
	if err != nil {
		return nil, err
	}
	t.pathFilter = pf
	return t, nil
}

func (t *filterToken) fieldValue(item Value) (Value, error) {
	if t.fieldUsesItemRoot {
		if t.fieldPathFilter != nil {
			return t.fieldPathFilter.Call(item)
		}
		return item, nil
	}
	if t.fieldPathFilter != nil {
		return t.fieldPathFilter.Call(item)
	}
	if item.IsMap() {
		if v, ok := item.Map().Get(t.field); ok {
			return v, nil
		}
	}
	return Null(), nil
}

func compareOp(op string, c int) bool {
	switch op {
	case "==":
		return c == 0
	case "!=":
		return c != 0
	case ">":
		return c > 0
	case "<":
		return c < 0
	case ">=":
		return c >= 0
	case "<=":
		return c <= 0
	default:
		return false
	}
}

func (t *filterToken) matches(item Value) (bool, error) {
	fv, err := t.fieldValue(item)
	if err != nil {
		return false, err
	}

	if t.pathFilter != nil {
		switch t.operator {
		case "==":
			r, err := t.pathFilter.Call(fv)
			if err != nil {
				return false, err
			}
			return r.Truthy(), nil
		case "!=":
			r, err := t.pathFilter.Call(fv)
			if err != nil {
				return false, err
			}
			return !r.Truthy(), nil
		default:
			return false, newOperatorError("operator %q is not supported with path filters", t.operator)
		}
	}

	expected, _ := parseLiteral(t.valueRaw)

	if t.operator == "==" || t.operator == "!=" {
		result := fv.Equal(expected) || fv.AsString() == t.valueRaw
		if t.operator == "==" {
			return result, nil
		}
		return !result, nil
	}

	if c, ok := fv.Compare(expected); ok {
		return compareOp(t.operator, c), nil
	}

	if fv.IsString() {
		if parsedField, perr := parseLiteral(fv.Str()); perr == nil {
			if c, ok := parsedField.Compare(expected); ok {
				return compareOp(t.operator, c), nil
			}
		}
	}

	// Final fallback: lexicographic comparison of the stringified forms.
	left, right := fv.AsString(), t.valueRaw
	switch {
	case left < right:
		return compareOp(t.operator, -1), nil
	case left > right:
		return compareOp(t.operator, 1), nil
	default:
		return compareOp(t.operator, 0), nil
	}
}

func (t *filterToken) sourceList(current Value) (Value, bool) {
	if t.listKey == "" {
		return current, true
	}
	if current.IsMap() {
		if v, ok := current.Map().Get(t.listKey); ok {
			return v, true
		}
		return FromList(NewList()), true
	}
	return current, true
}

func (t *filterToken) resolve(current Value) (Value, error) {
	lst, _ := t.sourceList(current)
	if !lst.IsList() {
		return Value{}, typeErrorf("expected a list for key %q, got %s", t.listKey, lst.Kind())
	}
	out := NewList()
	for _, item := range lst.List().Items() {
		ok, err := t.matches(item)
		if err != nil {
			return Value{}, err
		}
		if ok {
			out.Append(item)
		}
	}
	return FromList(out), nil
}

func containsValue(haystack []Value, needle Value) bool {
	for _, v := range haystack {
		if v.Equal(needle) {
			return true
		}
	}
	return false
}

func (t *filterToken) write(current Value, remaining []PathToken, newValue Value, opts WriteOptions, e *Evaluator, rootData Value) (Value, error) {
	var lst *List
	if t.listKey == "" {
		lst = current.List()
	} else if current.IsMap() {
		if v, ok := current.Map().Get(t.listKey); ok && v.IsList() {
			lst = v.List()
		} else if ok {
			if !opts.OverwriteIncompatible {
				return current, nil
			}
		}
	}
	if lst == nil {
		if !opts.CreateMissing {
			return current, nil
		}
		lst = NewList()
	}

	var matches []Value
	for _, item := range lst.Items() {
		ok, err := t.matches(item)
		if err != nil {
			return Value{}, err
		}
		if ok {
			matches = append(matches, item)
		}
	}

	if len(matches) == 0 &&
		!t.fieldUsesItemRoot && t.fieldPathFilter == nil && t.pathFilter == nil &&
		t.operator == "==" && opts.CreateMissing && opts.CreateFilterMatch {
		newItem := NewOrderedMap()
		newItem.Set(t.field, String(t.valueRaw))
		lst.Append(FromMap(newItem))
		matches = append(matches, FromMap(newItem))
	}

	if len(remaining) == 1 {
		for i, item := range lst.Items() {
			if containsValue(matches, item) {
				resolved, err := resolveNewValue(item, newValue, e, rootData)
				if err != nil {
					return Value{}, err
				}
				lst.Set(i, resolved)
			}
		}
		return t.rewrap(current, lst), nil
	}

	for i, item := range lst.Items() {
		if containsValue(matches, item) {
			updated, err := setRecurse(item, remaining[1:], newValue, opts, e, rootData)
			if err != nil {
				return Value{}, err
			}
			lst.Set(i, updated)
		}
	}
	return t.rewrap(current, lst), nil
}

func (t *filterToken) rewrap(current Value, lst *List) Value {
	if t.listKey == "" {
		return FromList(lst)
	}
	m := current.Map()
	if m == nil {
		m = NewOrderedMap()
	}
	m.Set(t.listKey, FromList(lst))
	return FromMap(m)
}

func (t *filterToken) unset(current Value, remaining []PathToken) (Value, error) {
	var lst *List
	if t.listKey == "" {
		lst = current.List()
	} else if current.IsMap() {
		if v, ok := current.Map().Get(t.listKey); ok && v.IsList() {
			lst = v.List()
		}
	}
	if lst == nil {
		return current, nil
	}

	if len(remaining) == 1 {
		out := NewList()
		for _, item := range lst.Items() {
			ok, err := t.matches(item)
			if err != nil {
				return Value{}, err
			}
			if !ok {
				out.Append(item)
			}
		}
		return t.rewrap(current, out), nil
	}

	for i, item := range lst.Items() {
		ok, err := t.matches(item)
		if err != nil {
			return Value{}, err
		}
		if ok {
			updated, err := unsetRecurse(item, remaining[1:])
			if err != nil {
				return Value{}, err
			}
			lst.Set(i, updated)
		}
	}
	return t.rewrap(current, lst), nil
}
