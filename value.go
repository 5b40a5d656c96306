/*
 * Copyright 2023 SteelBridgeLabs, Inc.
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package dictwalk

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a tagged variant over the tree shapes DictWalk understands:
// null, bool, integer, float, string, an ordered List, and an OrderedMap.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list *List
	m    *OrderedMap
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean leaf.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer leaf.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a floating point leaf.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string leaf.
func String(s string) Value { return Value{kind: KindString, s: s} }

// FromList wraps a *List as a Value.
func FromList(l *List) Value {
	if l == nil {
		l = NewList()
	}
	return Value{kind: KindList, list: l}
}

// FromMap wraps a *OrderedMap as a Value.
func FromMap(m *OrderedMap) Value {
	if m == nil {
		m = NewOrderedMap()
	}
	return Value{kind: KindMap, m: m}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsFloat() bool  { return v.kind == KindFloat }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsList() bool   { return v.kind == KindList }
func (v Value) IsMap() bool    { return v.kind == KindMap }

// IsNumeric reports whether the value is an Int or a Float.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

func (v Value) Bool() bool { return v.b }
func (v Value) Int() int64 { return v.i }
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}
func (v Value) Str() string { return v.s }

// List returns the underlying *List, or nil if the value is not a list.
func (v Value) List() *List {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Map returns the underlying *OrderedMap, or nil if the value is not a map.
func (v Value) Map() *OrderedMap {
	if v.kind != KindMap {
		return nil
	}
	return v.m
}

// Truthy follows Python-like truthiness so filter predicates compose naturally:
// false, null, zero, empty string, and empty containers are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.s != ""
	case KindList:
		return v.list.Len() > 0
	case KindMap:
		return v.m.Len() > 0
	default:
		return false
	}
}

// AsString renders the value as a string for the "==/!= stringwise fallback"
// comparison rule and for filters like $string.
func (v Value) AsString() string {
	switch v.kind {
	case KindNull:
		return "None"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, v.list.Len())
		for i, item := range v.list.items {
			parts[i] = item.goLiteralString()
		}
		return "[" + joinStrings(parts, ", ") + "]"
	case KindMap:
		return fmt.Sprintf("<map len=%d>", v.m.Len())
	default:
		return ""
	}
}

// goLiteralString renders scalars the way Python's repr would inside a list,
// used only for AsString's container rendering.
func (v Value) goLiteralString() string {
	if v.kind == KindString {
		return "'" + v.s + "'"
	}
	return v.AsString()
}

func joinStrings(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}

// Equal implements value equality across the model's leaf types. Cross-type
// numeric comparisons (Int vs Float) are allowed; other cross-type
// comparisons are never equal.
func (v Value) Equal(other Value) bool {
	switch {
	case v.kind == KindNull && other.kind == KindNull:
		return true
	case v.kind == KindBool && other.kind == KindBool:
		return v.b == other.b
	case v.IsNumeric() && other.IsNumeric():
		return v.Float() == other.Float()
	case v.kind == KindString && other.kind == KindString:
		return v.s == other.s
	case v.kind == KindList && other.kind == KindList:
		if v.list.Len() != other.list.Len() {
			return false
		}
		for i := range v.list.items {
			if !v.list.items[i].Equal(other.list.items[i]) {
				return false
			}
		}
		return true
	case v.kind == KindMap && other.kind == KindMap:
		if v.m.Len() != other.m.Len() {
			return false
		}
		for _, k := range v.m.Keys() {
			ov, ok := other.m.Get(k)
			if !ok {
				return false
			}
			mv, _ := v.m.Get(k)
			if !mv.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two values following each leaf type's natural ordering.
// ok is false when the two values are not comparable (cross-type, non-ordered
// kinds such as maps/lists/bools/null).
func (v Value) Compare(other Value) (cmp int, ok bool) {
	switch {
	case v.IsNumeric() && other.IsNumeric():
		a, b := v.Float(), other.Float()
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		default:
			return 0, true
		}
	case v.kind == KindString && other.kind == KindString:
		switch {
		case v.s < other.s:
			return -1, true
		case v.s > other.s:
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// OrderedMap is an insertion-ordered string-keyed map, the Go-native answer
// to "Maps preserve insertion order" (spec §3). It plays the role the
// teacher's Map interface (struct.go) plays for non-native backing stores.
type OrderedMap struct {
	keys   []string
	values map[string]Value
}

// NewOrderedMap constructs an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]Value)}
}

// Get returns the value at key and whether it was present.
func (m *OrderedMap) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Set inserts or updates key, preserving original insertion position on update.
func (m *OrderedMap) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Delete removes key if present, reporting whether it was removed.
func (m *OrderedMap) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every entry.
func (m *OrderedMap) Clear() {
	m.keys = nil
	m.values = make(map[string]Value)
}

// Keys returns the keys in insertion order. The returned slice is a copy,
// safe to range over while mutating m (mirrors the teacher's
// list(node.keys()) snapshot-before-mutate idiom).
func (m *OrderedMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len reports the number of entries.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Clone returns a shallow copy (values are not deep-copied).
func (m *OrderedMap) Clone() *OrderedMap {
	clone := NewOrderedMap()
	for _, k := range m.keys {
		clone.Set(k, m.values[k])
	}
	return clone
}

// List is an ordered, mutable sequence of Values.
type List struct {
	items []Value
}

// NewList constructs a List from the given items.
func NewList(items ...Value) *List {
	l := &List{}
	l.items = append(l.items, items...)
	return l
}

// Len reports the number of items.
func (l *List) Len() int { return len(l.items) }

// Get returns the item at index, and whether the index was in range.
func (l *List) Get(i int) (Value, bool) {
	if i < 0 || i >= len(l.items) {
		return Value{}, false
	}
	return l.items[i], true
}

// Set overwrites the item at index if in range.
func (l *List) Set(i int, v Value) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items[i] = v
	return true
}

// Append adds v to the end of the list.
func (l *List) Append(v Value) { l.items = append(l.items, v) }

// RemoveAt removes the item at index if in range.
func (l *List) RemoveAt(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Items returns a copy of the underlying items, safe to range over while
// mutating l.
func (l *List) Items() []Value {
	out := make([]Value, len(l.items))
	copy(out, l.items)
	return out
}

// Clone returns a shallow copy of the list.
func (l *List) Clone() *List {
	return NewList(l.Items()...)
}

// normalizeIndex resolves a possibly-negative index against length, the way
// Python's list[-1] style indexing does.
func normalizeIndex(i, length int) int {
	if i < 0 {
		return length + i
	}
	return i
}
