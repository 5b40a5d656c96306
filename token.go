/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 *
 * Grounded on original_source/dictwalk/dictwalk.py's PathToken Protocol and
 * its seven concrete token classes (_GetToken, _RootToken, _MapToken,
 * _WildcardToken, _DeepWildcardToken, _IndexToken, _FilterToken), reshaped
 * around the Value/OrderedMap/List model instead of native dict/list, and
 * extended with the empty-inline-key root-list shortcut (SPEC_FULL.md
 * §4.9).
 */

package dictwalk

import (
	"fmt"
	"regexp"
	"strconv"
)

// PathToken is one classified segment of a path expression. resolve reads,
// write materializes containers and recurses per WriteOptions, unset
// removes. remaining always includes the receiver as remaining[0].
type PathToken interface {
	resolve(current Value) (Value, error)
	write(current Value, remaining []PathToken, newValue Value, opts WriteOptions, e *Evaluator, rootData Value) (Value, error)
	unset(current Value, remaining []PathToken) (Value, error)
}

func typeErrorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// newContainerForNextWrite decides what empty container to materialize when
// a write needs to descend further. Every remaining token expects a map as
// its input container except list-shaped ones (listMap/index/filter), which
// expect a map whose value at their key is a list; the map container is
// always correct here because keyed tokens create the key themselves.
func newContainerForNextWrite(next PathToken) Value {
	return FromMap(NewOrderedMap())
}

// setRecurse threads a write through the remaining token chain; an empty
// chain means "replace with the resolved new value" (the terminal case is
// handled by each token's own write, so by the time remaining is empty the
// caller already has the final value).
func setRecurse(current Value, remaining []PathToken, newValue Value, opts WriteOptions, e *Evaluator, rootData Value) (Value, error) {
	if len(remaining) == 0 {
		return newValue, nil
	}
	return remaining[0].write(current, remaining, newValue, opts, e, rootData)
}

// unsetRecurse threads an unset through the remaining token chain.
func unsetRecurse(current Value, remaining []PathToken) (Value, error) {
	if len(remaining) == 0 {
		return current, nil
	}
	return remaining[0].unset(current, remaining)
}

// ---- keyGetToken --------------------------------------------------------

type keyGetToken struct{ key string }

func (t *keyGetToken) resolve(current Value) (Value, error) {
	if current.IsMap() {
		v, ok := current.Map().Get(t.key)
		if !ok {
			return Value{}, typeErrorf("key %q not found in current context", t.key)
		}
		return v, nil
	}
	if current.IsList() {
		out := NewList()
		for _, item := range current.List().Items() {
			if item.IsMap() {
				if v, ok := item.Map().Get(t.key); ok {
					out.Append(v)
				}
			}
		}
		return FromList(out), nil
	}
	return Value{}, typeErrorf("key %q not found in current context", t.key)
}

func (t *keyGetToken) write(current Value, remaining []PathToken, newValue Value, opts WriteOptions, e *Evaluator, rootData Value) (Value, error) {
	var next PathToken
	if len(remaining) > 1 {
		next = remaining[1]
	}
	m := current.Map()
	if m == nil {
		if !opts.OverwriteIncompatible || !opts.CreateMissing {
			return current, nil
		}
		m = NewOrderedMap()
	}
	if len(remaining) == 1 {
		if _, ok := m.Get(t.key); !ok && !opts.CreateMissing {
			return FromMap(m), nil
		}
		existing, _ := m.Get(t.key)
		resolved, err := resolveNewValue(existing, newValue, e, rootData)
		if err != nil {
			return Value{}, err
		}
		m.Set(t.key, resolved)
		return FromMap(m), nil
	}
	child, hasChild := m.Get(t.key)
	if !hasChild {
		if !opts.CreateMissing {
			return FromMap(m), nil
		}
		child = newContainerForNextWrite(next)
	} else if next != nil && !child.IsMap() && !child.IsList() {
		if !opts.OverwriteIncompatible {
			return FromMap(m), nil
		}
		child = newContainerForNextWrite(next)
	}
	updated, err := setRecurse(child, remaining[1:], newValue, opts, e, rootData)
	if err != nil {
		return Value{}, err
	}
	m.Set(t.key, updated)
	return FromMap(m), nil
}

func (t *keyGetToken) unset(current Value, remaining []PathToken) (Value, error) {
	m := current.Map()
	if m == nil {
		return current, nil
	}
	if len(remaining) == 1 {
		m.Delete(t.key)
		return FromMap(m), nil
	}
	child, ok := m.Get(t.key)
	if !ok {
		return FromMap(m), nil
	}
	updated, err := unsetRecurse(child, remaining[1:])
	if err != nil {
		return Value{}, err
	}
	m.Set(t.key, updated)
	return FromMap(m), nil
}

// ---- rootToken -----------------------------------------------------------

type rootToken struct{}

func (t *rootToken) resolve(current Value) (Value, error) { return current, nil }

func (t *rootToken) write(current Value, remaining []PathToken, newValue Value, opts WriteOptions, e *Evaluator, rootData Value) (Value, error) {
	return current, nil
}

func (t *rootToken) unset(current Value, remaining []PathToken) (Value, error) {
	return current, nil
}

// ---- listMapToken ("key[]") ----------------------------------------------

type listMapToken struct{ key string }

func (t *listMapToken) targetList(current Value) (*List, bool) {
	if t.key == "" {
		return current.List(), current.IsList()
	}
	if !current.IsMap() {
		return nil, false
	}
	v, ok := current.Map().Get(t.key)
	if !ok || !v.IsList() {
		return nil, false
	}
	return v.List(), true
}

func (t *listMapToken) resolve(current Value) (Value, error) {
	if t.key == "" {
		if !current.IsList() {
			return Value{}, typeErrorf("expected a list, got %s", current.Kind())
		}
		out := NewList()
		for _, item := range current.List().Items() {
			out.Append(item)
		}
		return FromList(out), nil
	}
	// A preceding fan-out (Predicate/Wildcard/DeepWildcard/another ListMap)
	// already left the cursor as a list; project key over each item, the
	// same way KeyGet does when it lands on a list cursor.
	if current.IsList() {
		out := NewList()
		for _, item := range current.List().Items() {
			if item.IsMap() {
				if v, ok := item.Map().Get(t.key); ok {
					out.Append(v)
				}
			}
		}
		return FromList(out), nil
	}
	if !current.IsMap() {
		return Value{}, typeErrorf("expected a dict for key %q, got %s", t.key, current.Kind())
	}
	v, ok := current.Map().Get(t.key)
	if !ok || !v.IsList() {
		return Value{}, typeErrorf("expected a list for key %q", t.key)
	}
	out := NewList()
	for _, item := range v.List().Items() {
		out.Append(item)
	}
	return FromList(out), nil
}

func (t *listMapToken) write(current Value, remaining []PathToken, newValue Value, opts WriteOptions, e *Evaluator, rootData Value) (Value, error) {
	if t.key == "" {
		lst := current.List()
		if lst == nil {
			if !opts.CreateMissing {
				return current, nil
			}
			lst = NewList()
		}
		return writeListMapItems(lst, remaining, newValue, opts, e, rootData, nil)
	}

	var next PathToken
	if len(remaining) > 1 {
		next = remaining[1]
	}
	m := current.Map()
	if m == nil {
		if !opts.OverwriteIncompatible || !opts.CreateMissing {
			return current, nil
		}
		m = NewOrderedMap()
	}
	existing, hasExisting := m.Get(t.key)
	var lst *List
	switch {
	case hasExisting && existing.IsList():
		lst = existing.List()
	case !hasExisting:
		if !opts.CreateMissing {
			return FromMap(m), nil
		}
		lst = NewList()
	default:
		if !opts.OverwriteIncompatible {
			return FromMap(m), nil
		}
		lst = NewList()
	}
	updated, err := writeListMapItems(lst, remaining, newValue, opts, e, rootData, next)
	if err != nil {
		return Value{}, err
	}
	m.Set(t.key, updated)
	return FromMap(m), nil
}

func writeListMapItems(lst *List, remaining []PathToken, newValue Value, opts WriteOptions, e *Evaluator, rootData Value, next PathToken) (Value, error) {
	if len(remaining) == 1 {
		for i, item := range lst.Items() {
			resolved, err := resolveNewValue(item, newValue, e, rootData)
			if err != nil {
				return Value{}, err
			}
			lst.Set(i, resolved)
		}
		return FromList(lst), nil
	}
	if lst.Len() == 0 {
		if !opts.CreateMissing {
			return FromList(lst), nil
		}
		lst.Append(newContainerForNextWrite(next))
	}
	for i, item := range lst.Items() {
		if next != nil && !item.IsMap() && !item.IsList() {
			if !opts.OverwriteIncompatible {
				continue
			}
			item = newContainerForNextWrite(next)
		}
		updated, err := setRecurse(item, remaining[1:], newValue, opts, e, rootData)
		if err != nil {
			return Value{}, err
		}
		lst.Set(i, updated)
	}
	return FromList(lst), nil
}

func (t *listMapToken) unset(current Value, remaining []PathToken) (Value, error) {
	if t.key == "" {
		lst := current.List()
		if lst == nil {
			return current, nil
		}
		return unsetListMapItems(lst, remaining)
	}
	m := current.Map()
	if m == nil {
		return current, nil
	}
	existing, ok := m.Get(t.key)
	if !ok || !existing.IsList() {
		return FromMap(m), nil
	}
	updated, err := unsetListMapItems(existing.List(), remaining)
	if err != nil {
		return Value{}, err
	}
	m.Set(t.key, updated)
	return FromMap(m), nil
}

func unsetListMapItems(lst *List, remaining []PathToken) (Value, error) {
	if len(remaining) == 1 {
		return FromList(NewList()), nil
	}
	for i, item := range lst.Items() {
		updated, err := unsetRecurse(item, remaining[1:])
		if err != nil {
			return Value{}, err
		}
		lst.Set(i, updated)
	}
	return FromList(lst), nil
}

// ---- wildcardToken ("*") --------------------------------------------------

type wildcardToken struct{}

func childValues(current Value) []Value {
	switch {
	case current.IsMap():
		out := make([]Value, 0, current.Map().Len())
		for _, k := range current.Map().Keys() {
			v, _ := current.Map().Get(k)
			out = append(out, v)
		}
		return out
	case current.IsList():
		return current.List().Items()
	default:
		return nil
	}
}

func (t *wildcardToken) resolve(current Value) (Value, error) {
	children := childValues(current)
	if children == nil && !current.IsMap() && !current.IsList() {
		return Value{}, typeErrorf("expected dict or list for wildcard '*', got %s", current.Kind())
	}
	return FromList(NewList(children...)), nil
}

func (t *wildcardToken) write(current Value, remaining []PathToken, newValue Value, opts WriteOptions, e *Evaluator, rootData Value) (Value, error) {
	switch {
	case current.IsMap():
		m := current.Map()
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			if len(remaining) == 1 {
				resolved, err := resolveNewValue(v, newValue, e, rootData)
				if err != nil {
					return Value{}, err
				}
				m.Set(k, resolved)
				continue
			}
			updated, err := setRecurse(v, remaining[1:], newValue, opts, e, rootData)
			if err != nil {
				return Value{}, err
			}
			m.Set(k, updated)
		}
		return FromMap(m), nil
	case current.IsList():
		lst := current.List()
		for i, v := range lst.Items() {
			if len(remaining) == 1 {
				resolved, err := resolveNewValue(v, newValue, e, rootData)
				if err != nil {
					return Value{}, err
				}
				lst.Set(i, resolved)
				continue
			}
			updated, err := setRecurse(v, remaining[1:], newValue, opts, e, rootData)
			if err != nil {
				return Value{}, err
			}
			lst.Set(i, updated)
		}
		return FromList(lst), nil
	default:
		return current, nil
	}
}

func (t *wildcardToken) unset(current Value, remaining []PathToken) (Value, error) {
	switch {
	case current.IsMap():
		m := current.Map()
		if len(remaining) == 1 {
			m.Clear()
			return FromMap(m), nil
		}
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			updated, err := unsetRecurse(v, remaining[1:])
			if err != nil {
				return Value{}, err
			}
			m.Set(k, updated)
		}
		return FromMap(m), nil
	case current.IsList():
		lst := current.List()
		if len(remaining) == 1 {
			return FromList(NewList()), nil
		}
		for i, v := range lst.Items() {
			updated, err := unsetRecurse(v, remaining[1:])
			if err != nil {
				return Value{}, err
			}
			lst.Set(i, updated)
		}
		return FromList(lst), nil
	default:
		return current, nil
	}
}

// ---- deepWildcardToken ("**") ----------------------------------------------

type deepWildcardToken struct{}

func descendants(node Value) []Value {
	var out []Value
	for _, child := range childValues(node) {
		out = append(out, child)
		out = append(out, descendants(child)...)
	}
	return out
}

func (t *deepWildcardToken) resolve(current Value) (Value, error) {
	desc := descendants(current)
	if desc == nil && !current.IsMap() && !current.IsList() {
		return Value{}, typeErrorf("expected dict or list for wildcard '**', got %s", current.Kind())
	}
	return FromList(NewList(desc...)), nil
}

func (t *deepWildcardToken) write(current Value, remaining []PathToken, newValue Value, opts WriteOptions, e *Evaluator, rootData Value) (Value, error) {
	if !current.IsMap() && !current.IsList() {
		return current, nil
	}
	applyOpts := opts
	applyOpts.CreateMissing = false

	var walk func(node Value)
	walk = func(node Value) {
		switch {
		case node.IsMap():
			m := node.Map()
			for _, k := range m.Keys() {
				child, _ := m.Get(k)
				if len(remaining) > 1 {
					updated, err := setRecurse(child, remaining[1:], newValue, applyOpts, e, rootData)
					if err == nil {
						m.Set(k, updated)
					}
				}
				if v, _ := m.Get(k); v.IsMap() || v.IsList() {
					walk(v)
				}
			}
		case node.IsList():
			lst := node.List()
			for i, child := range lst.Items() {
				if len(remaining) > 1 {
					updated, err := setRecurse(child, remaining[1:], newValue, applyOpts, e, rootData)
					if err == nil {
						lst.Set(i, updated)
					}
				}
				if v, _ := lst.Get(i); v.IsMap() || v.IsList() {
					walk(v)
				}
			}
		}
	}
	walk(current)
	return current, nil
}

func (t *deepWildcardToken) unset(current Value, remaining []PathToken) (Value, error) {
	if !current.IsMap() && !current.IsList() {
		return current, nil
	}
	var walk func(node Value)
	walk = func(node Value) {
		switch {
		case node.IsMap():
			m := node.Map()
			for _, k := range m.Keys() {
				child, _ := m.Get(k)
				if len(remaining) > 1 {
					if updated, err := unsetRecurse(child, remaining[1:]); err == nil {
						m.Set(k, updated)
					}
				}
				if v, _ := m.Get(k); v.IsMap() || v.IsList() {
					walk(v)
				}
			}
		case node.IsList():
			lst := node.List()
			for i, child := range lst.Items() {
				if len(remaining) > 1 {
					if updated, err := unsetRecurse(child, remaining[1:]); err == nil {
						lst.Set(i, updated)
					}
				}
				if v, _ := lst.Get(i); v.IsMap() || v.IsList() {
					walk(v)
				}
			}
		}
	}
	walk(current)
	return current, nil
}

// ---- indexToken ("key[0]", "key[1:3]") -------------------------------------

type indexToken struct {
	key      string
	isSlice  bool
	index    int
	sliceLo  *int
	sliceHi  *int
}

func (t *indexToken) lookupList(current Value) (*List, bool) {
	if t.key == "" {
		return current.List(), current.IsList()
	}
	if !current.IsMap() {
		return nil, false
	}
	v, ok := current.Map().Get(t.key)
	if !ok || !v.IsList() {
		return nil, false
	}
	return v.List(), true
}

func (t *indexToken) sliceIndexes(length int) []int {
	lo, hi := sliceBounds(length, t.sliceLo, t.sliceHi)
	var out []int
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}

// sliceBounds implements Python's slice.indices(length) for a fixed step=1.
func sliceBounds(length int, lo, hi *int) (int, int) {
	start, stop := 0, length
	if lo != nil {
		start = normalizeIndex(*lo, length)
		if start < 0 {
			start = 0
		}
		if start > length {
			start = length
		}
	}
	if hi != nil {
		stop = normalizeIndex(*hi, length)
		if stop < 0 {
			stop = 0
		}
		if stop > length {
			stop = length
		}
	}
	if stop < start {
		stop = start
	}
	return start, stop
}

func (t *indexToken) resolve(current Value) (Value, error) {
	lst, ok := t.lookupList(current)
	if !ok {
		if t.key == "" {
			return Value{}, typeErrorf("expected a list, got %s", current.Kind())
		}
		if !current.IsMap() {
			return Value{}, typeErrorf("expected a dict for key %q, got %s", t.key, current.Kind())
		}
		return Value{}, typeErrorf("expected a list for key %q", t.key)
	}
	if !t.isSlice {
		idx := normalizeIndex(t.index, lst.Len())
		item, ok := lst.Get(idx)
		if !ok {
			return Value{}, typeErrorf("list index %d out of range", t.index)
		}
		return item, nil
	}
	out := NewList()
	for _, i := range t.sliceIndexes(lst.Len()) {
		item, _ := lst.Get(i)
		out.Append(item)
	}
	return FromList(out), nil
}

func (t *indexToken) write(current Value, remaining []PathToken, newValue Value, opts WriteOptions, e *Evaluator, rootData Value) (Value, error) {
	var next PathToken
	if len(remaining) > 1 {
		next = remaining[1]
	}

	if t.key == "" {
		lst := current.List()
		if lst == nil {
			if !opts.CreateMissing {
				return current, nil
			}
			lst = NewList()
		}
		updated, err := t.writeIntoList(lst, remaining, newValue, opts, e, rootData, next)
		if err != nil {
			return Value{}, err
		}
		return updated, nil
	}

	m := current.Map()
	if m == nil {
		if !opts.OverwriteIncompatible || !opts.CreateMissing {
			return current, nil
		}
		m = NewOrderedMap()
	}
	existing, hasExisting := m.Get(t.key)
	var lst *List
	switch {
	case hasExisting && existing.IsList():
		lst = existing.List()
	case !hasExisting:
		if !opts.CreateMissing {
			return FromMap(m), nil
		}
		lst = NewList()
	default:
		if !opts.OverwriteIncompatible {
			return FromMap(m), nil
		}
		lst = NewList()
	}
	updated, err := t.writeIntoList(lst, remaining, newValue, opts, e, rootData, next)
	if err != nil {
		return Value{}, err
	}
	m.Set(t.key, updated)
	return FromMap(m), nil
}

func (t *indexToken) writeIntoList(lst *List, remaining []PathToken, newValue Value, opts WriteOptions, e *Evaluator, rootData Value, next PathToken) (Value, error) {
	if !t.isSlice {
		idx := t.index
		if idx < 0 {
			if -idx > lst.Len() {
				return FromList(lst), nil
			}
			idx = lst.Len() + idx
		} else {
			if !opts.CreateMissing {
				return FromList(lst), nil
			}
			for lst.Len() <= idx {
				if next != nil {
					lst.Append(newContainerForNextWrite(next))
				} else {
					lst.Append(Null())
				}
			}
		}
		if len(remaining) == 1 {
			item, _ := lst.Get(idx)
			resolved, err := resolveNewValue(item, newValue, e, rootData)
			if err != nil {
				return Value{}, err
			}
			lst.Set(idx, resolved)
			return FromList(lst), nil
		}
		item, _ := lst.Get(idx)
		if next != nil && !item.IsMap() && !item.IsList() {
			if !opts.OverwriteIncompatible {
				return FromList(lst), nil
			}
			item = newContainerForNextWrite(next)
		}
		updated, err := setRecurse(item, remaining[1:], newValue, opts, e, rootData)
		if err != nil {
			return Value{}, err
		}
		lst.Set(idx, updated)
		return FromList(lst), nil
	}

	indexes := t.sliceIndexes(lst.Len())
	if len(remaining) == 1 {
		for _, idx := range indexes {
			item, _ := lst.Get(idx)
			resolved, err := resolveNewValue(item, newValue, e, rootData)
			if err != nil {
				return Value{}, err
			}
			lst.Set(idx, resolved)
		}
		return FromList(lst), nil
	}
	for _, idx := range indexes {
		item, _ := lst.Get(idx)
		if next != nil && !item.IsMap() && !item.IsList() {
			if !opts.OverwriteIncompatible {
				continue
			}
			item = newContainerForNextWrite(next)
		}
		updated, err := setRecurse(item, remaining[1:], newValue, opts, e, rootData)
		if err != nil {
			return Value{}, err
		}
		lst.Set(idx, updated)
	}
	return FromList(lst), nil
}

func (t *indexToken) unset(current Value, remaining []PathToken) (Value, error) {
	lst, ok := t.lookupList(current)
	if !ok {
		return current, nil
	}

	finish := func(result *List) Value {
		if t.key == "" {
			return FromList(result)
		}
		m := current.Map()
		m.Set(t.key, FromList(result))
		return FromMap(m)
	}

	if !t.isSlice {
		idx := normalizeIndex(t.index, lst.Len())
		if len(remaining) == 1 {
			if idx >= 0 && idx < lst.Len() {
				lst.RemoveAt(idx)
			}
			return finish(lst), nil
		}
		if idx >= 0 && idx < lst.Len() {
			item, _ := lst.Get(idx)
			updated, err := unsetRecurse(item, remaining[1:])
			if err != nil {
				return Value{}, err
			}
			lst.Set(idx, updated)
		}
		return finish(lst), nil
	}

	indexes := t.sliceIndexes(lst.Len())
	if len(remaining) == 1 {
		for i := len(indexes) - 1; i >= 0; i-- {
			lst.RemoveAt(indexes[i])
		}
		return finish(lst), nil
	}
	for _, idx := range indexes {
		item, _ := lst.Get(idx)
		updated, err := unsetRecurse(item, remaining[1:])
		if err != nil {
			return Value{}, err
		}
		lst.Set(idx, updated)
	}
	return finish(lst), nil
}

// ---- token classification --------------------------------------------------

var (
	indexPattern  = regexp.MustCompile(`^(.*)\[(-?\d+)\]$`)
	slicePattern  = regexp.MustCompile(`^(.*)\[(-?\d*):(-?\d*)\]$`)
	filterPattern = regexp.MustCompile(`^(.*)\[\?(.+?)(==|!=|>=|<=|>|<)(.+?)\]$`)
)

// parseToken classifies a single raw token into its PathToken. Grounded on
// _parse_token; key capture groups use "(.*)" rather than the original
// "(.+)" so the root-list shortcut's empty inline key is accepted.
func parseToken(raw string, e *Evaluator) (PathToken, error) {
	if raw == "$$root" {
		return &rootToken{}, nil
	}
	if raw == "*" {
		return &wildcardToken{}, nil
	}
	if raw == "**" {
		return &deepWildcardToken{}, nil
	}
	if len(raw) >= 2 && raw[len(raw)-2:] == "[]" {
		return &listMapToken{key: raw[:len(raw)-2]}, nil
	}
	if m := indexPattern.FindStringSubmatch(raw); m != nil {
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, newParseError(raw, raw, "invalid index")
		}
		return &indexToken{key: m[1], index: idx}, nil
	}
	if m := slicePattern.FindStringSubmatch(raw); m != nil {
		var lo, hi *int
		if m[2] != "" {
			v, _ := strconv.Atoi(m[2])
			lo = &v
		}
		if m[3] != "" {
			v, _ := strconv.Atoi(m[3])
			hi = &v
		}
		return &indexToken{key: m[1], isSlice: true, sliceLo: lo, sliceHi: hi}, nil
	}
	if m := filterPattern.FindStringSubmatch(raw); m != nil {
		return newFilterToken(m[1], m[2], m[3], m[4], e)
	}
	return &keyGetToken{key: raw}, nil
}
