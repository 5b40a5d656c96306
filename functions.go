/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 *
 * Grounded on original_source/dictwalk/path_filters.py's
 * DEFAULT_FILTER_FUNCTION_REGISTRY, translated function-by-function into Go.
 * Temporal helpers use the standard library's time package (the teacher and
 * the rest of the retrieval pack carry no third-party time-parsing
 * dependency, so stdlib is the only grounded choice here; see DESIGN.md).
 */

package dictwalk

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

func arg(args []Value, i int) (Value, bool) {
	if i < 0 || i >= len(args) {
		return Value{}, false
	}
	return args[i], true
}

func argFloat(args []Value, i int, fallback float64) float64 {
	v, ok := arg(args, i)
	if !ok || !v.IsNumeric() {
		return fallback
	}
	return v.Float()
}

func argBool(args []Value, i int, fallback bool) bool {
	v, ok := arg(args, i)
	if !ok {
		return fallback
	}
	return v.Truthy()
}

func listOrSelf(v Value) ([]Value, bool) {
	if v.IsList() {
		return v.List().Items(), true
	}
	return nil, false
}

func registerDefaultFilterFunctions(r *Registry) {
	reg := func(name string, fn FilterFunc) { r.Register(name, fn) }

	reg("inc", func(v Value, _ []Value) (Value, error) { return numericAdd(v, 1) })
	reg("dec", func(v Value, _ []Value) (Value, error) { return numericAdd(v, -1) })
	reg("double", func(v Value, _ []Value) (Value, error) { return numericMul(v, 2) })
	reg("square", func(v Value, _ []Value) (Value, error) {
		if v.IsInt() {
			return Int(v.Int() * v.Int()), nil
		}
		return Float(v.Float() * v.Float()), nil
	})
	reg("string", func(v Value, _ []Value) (Value, error) { return String(v.AsString()), nil })
	reg("int", func(v Value, _ []Value) (Value, error) { return toIntFilter(v) })
	reg("float", func(v Value, _ []Value) (Value, error) { return toFloatFilter(v) })
	reg("decimal", func(v Value, _ []Value) (Value, error) { return toFloatFilter(v) })
	reg("round", func(v Value, args []Value) (Value, error) {
		ndigits := int(argFloat(args, 0, 0))
		mul := math.Pow(10, float64(ndigits))
		r := math.Round(v.Float()*mul) / mul
		if ndigits <= 0 {
			return Int(int64(r)), nil
		}
		return Float(r), nil
	})
	reg("floor", func(v Value, _ []Value) (Value, error) { return Int(int64(math.Floor(v.Float()))), nil })
	reg("ceil", func(v Value, _ []Value) (Value, error) { return Int(int64(math.Ceil(v.Float()))), nil })
	reg("abs", func(v Value, _ []Value) (Value, error) {
		if v.IsInt() {
			if v.Int() < 0 {
				return Int(-v.Int()), nil
			}
			return v, nil
		}
		return Float(math.Abs(v.Float())), nil
	})
	reg("quote", func(v Value, _ []Value) (Value, error) { return String(`"` + v.AsString() + `"`), nil })
	reg("even", func(v Value, _ []Value) (Value, error) { return Bool(v.IsInt() && v.Int()%2 == 0), nil })
	reg("odd", func(v Value, _ []Value) (Value, error) {
		return Bool(v.IsInt() && (v.Int()%2 == 1 || v.Int()%2 == -1)), nil
	})
	reg("gt", func(v Value, args []Value) (Value, error) { return compareFilter(v, args, func(c int) bool { return c > 0 }) })
	reg("lt", func(v Value, args []Value) (Value, error) { return compareFilter(v, args, func(c int) bool { return c < 0 }) })
	reg("gte", func(v Value, args []Value) (Value, error) { return compareFilter(v, args, func(c int) bool { return c >= 0 }) })
	reg("lte", func(v Value, args []Value) (Value, error) { return compareFilter(v, args, func(c int) bool { return c <= 0 }) })
	reg("add", func(v Value, args []Value) (Value, error) { return numericAdd(v, argFloat(args, 0, 0)) })
	reg("sub", func(v Value, args []Value) (Value, error) { return numericAdd(v, -argFloat(args, 0, 0)) })
	reg("mul", func(v Value, args []Value) (Value, error) { return numericMul(v, argFloat(args, 0, 1)) })
	reg("div", func(v Value, args []Value) (Value, error) {
		d := argFloat(args, 0, 1)
		if d == 0 {
			return Null(), nil
		}
		return Float(v.Float() / d), nil
	})
	reg("mod", func(v Value, args []Value) (Value, error) {
		d := argFloat(args, 0, 1)
		if d == 0 {
			return Null(), nil
		}
		if v.IsInt() {
			di := int64(d)
			if di != 0 {
				return Int(v.Int() % di), nil
			}
		}
		return Float(math.Mod(v.Float(), d)), nil
	})
	reg("neg", func(v Value, _ []Value) (Value, error) {
		if v.IsInt() {
			return Int(-v.Int()), nil
		}
		return Float(-v.Float()), nil
	})
	reg("pow", func(v Value, args []Value) (Value, error) {
		exponent := argFloat(args, 0, 1)
		r := math.Pow(v.Float(), exponent)
		if v.IsInt() && exponent >= 0 && exponent == math.Trunc(exponent) {
			return Int(int64(r)), nil
		}
		return Float(r), nil
	})
	reg("rpow", func(v Value, args []Value) (Value, error) {
		return Float(math.Pow(argFloat(args, 0, 1), v.Float())), nil
	})
	reg("sqrt", func(v Value, _ []Value) (Value, error) {
		if v.Float() < 0 {
			return Null(), nil
		}
		return Float(math.Sqrt(v.Float())), nil
	})
	reg("root", func(v Value, args []Value) (Value, error) {
		degree := argFloat(args, 0, 2)
		if v.Float() < 0 || degree <= 0 {
			return Null(), nil
		}
		return Float(math.Pow(v.Float(), 1/degree)), nil
	})
	reg("max", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return v, nil
		}
		return reduceValues(items, func(c int) bool { return c > 0 })
	})
	reg("min", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return v, nil
		}
		return reduceValues(items, func(c int) bool { return c < 0 })
	})
	reg("len", func(v Value, _ []Value) (Value, error) {
		switch {
		case v.IsList():
			return Int(int64(v.List().Len())), nil
		case v.IsMap():
			return Int(int64(v.Map().Len())), nil
		case v.IsString():
			return Int(int64(len([]rune(v.Str())))), nil
		default:
			return Null(), newOperatorError("len() requires a list, map, or string")
		}
	})
	reg("pick", func(v Value, args []Value) (Value, error) {
		if !v.IsMap() {
			return Null(), nil
		}
		out := NewOrderedMap()
		for _, k := range args {
			if mv, ok := v.Map().Get(k.Str()); ok {
				out.Set(k.Str(), mv)
			}
		}
		return FromMap(out), nil
	})
	reg("unpick", func(v Value, args []Value) (Value, error) {
		if !v.IsMap() {
			return Null(), nil
		}
		excluded := make(map[string]bool, len(args))
		for _, k := range args {
			excluded[k.Str()] = true
		}
		out := NewOrderedMap()
		for _, k := range v.Map().Keys() {
			if !excluded[k] {
				mv, _ := v.Map().Get(k)
				out.Set(k, mv)
			}
		}
		return FromMap(out), nil
	})
	reg("clamp", func(v Value, args []Value) (Value, error) {
		lo, hi := argFloat(args, 0, math.Inf(-1)), argFloat(args, 1, math.Inf(1))
		f := v.Float()
		if f < lo {
			f = lo
		}
		if f > hi {
			f = hi
		}
		if v.IsInt() {
			return Int(int64(f)), nil
		}
		return Float(f), nil
	})
	reg("sign", func(v Value, _ []Value) (Value, error) {
		f := v.Float()
		switch {
		case f > 0:
			return Int(1), nil
		case f < 0:
			return Int(-1), nil
		default:
			return Int(0), nil
		}
	})
	reg("log", func(v Value, args []Value) (Value, error) {
		base := argFloat(args, 0, math.E)
		if v.Float() <= 0 || base <= 0 || base == 1 {
			return Null(), nil
		}
		return Float(math.Log(v.Float()) / math.Log(base)), nil
	})
	reg("exp", func(v Value, _ []Value) (Value, error) { return Float(math.Exp(v.Float())), nil })
	reg("pct", func(v Value, args []Value) (Value, error) {
		return Float(v.Float() * (argFloat(args, 0, 0) / 100)), nil
	})
	reg("between", func(v Value, args []Value) (Value, error) {
		lo, hi := argFloat(args, 0, math.Inf(-1)), argFloat(args, 1, math.Inf(1))
		f := v.Float()
		return Bool(lo <= f && f <= hi), nil
	})
	reg("sum", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return v, nil
		}
		total := 0.0
		allInt := true
		for _, item := range items {
			total += item.Float()
			if !item.IsInt() {
				allInt = false
			}
		}
		if allInt {
			return Int(int64(total)), nil
		}
		return Float(total), nil
	})
	reg("avg", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return v, nil
		}
		if len(items) == 0 {
			return Null(), nil
		}
		total := 0.0
		for _, item := range items {
			total += item.Float()
		}
		return Float(total / float64(len(items))), nil
	})
	reg("unique", func(v Value, _ []Value) (Value, error) {
		if !v.IsList() {
			return v, nil
		}
		out := NewList()
		seen := make([]Value, 0, v.List().Len())
		for _, item := range v.List().Items() {
			dup := false
			for _, s := range seen {
				if s.Equal(item) {
					dup = true
					break
				}
			}
			if !dup {
				seen = append(seen, item)
				out.Append(item)
			}
		}
		return FromList(out), nil
	})
	reg("sorted", func(v Value, args []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return v, nil
		}
		reverse := argBool(args, 0, false)
		sortedItems := append([]Value(nil), items...)
		sort.SliceStable(sortedItems, func(i, j int) bool {
			c, ok := sortedItems[i].Compare(sortedItems[j])
			if !ok {
				return false
			}
			if reverse {
				return c > 0
			}
			return c < 0
		})
		return FromList(NewList(sortedItems...)), nil
	})
	reg("first", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return v, nil
		}
		if len(items) == 0 {
			return Null(), nil
		}
		return items[0], nil
	})
	reg("last", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return v, nil
		}
		if len(items) == 0 {
			return Null(), nil
		}
		return items[len(items)-1], nil
	})
	reg("contains", func(v Value, args []Value) (Value, error) {
		needle, ok := arg(args, 0)
		if !ok {
			return Bool(false), nil
		}
		switch {
		case v.IsString():
			return Bool(strings.Contains(v.Str(), needle.AsString())), nil
		case v.IsList():
			for _, item := range v.List().Items() {
				if item.Equal(needle) {
					return Bool(true), nil
				}
			}
			return Bool(false), nil
		case v.IsMap():
			return Bool(v.Map().Has(needle.Str())), nil
		default:
			return Bool(false), nil
		}
	})
	reg("in", func(v Value, args []Value) (Value, error) {
		container, ok := arg(args, 0)
		if !ok || !container.IsList() {
			return Bool(false), nil
		}
		for _, item := range container.List().Items() {
			if item.Equal(v) {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	})
	reg("lower", func(v Value, _ []Value) (Value, error) { return String(strings.ToLower(v.AsString())), nil })
	reg("upper", func(v Value, _ []Value) (Value, error) { return String(strings.ToUpper(v.AsString())), nil })
	reg("title", func(v Value, _ []Value) (Value, error) { return String(titleCase(v.AsString())), nil })
	reg("strip", func(v Value, args []Value) (Value, error) {
		if cutset, ok := arg(args, 0); ok && cutset.IsString() {
			return String(strings.Trim(v.AsString(), cutset.Str())), nil
		}
		return String(strings.TrimSpace(v.AsString())), nil
	})
	reg("replace", func(v Value, args []Value) (Value, error) {
		old, _ := arg(args, 0)
		newV, _ := arg(args, 1)
		return String(strings.ReplaceAll(v.AsString(), old.AsString(), newV.AsString())), nil
	})
	reg("split", func(v Value, args []Value) (Value, error) {
		out := NewList()
		var parts []string
		if sep, ok := arg(args, 0); ok && sep.IsString() {
			parts = strings.Split(v.AsString(), sep.Str())
		} else {
			parts = strings.Fields(v.AsString())
		}
		for _, p := range parts {
			out.Append(String(p))
		}
		return FromList(out), nil
	})
	reg("join", func(v Value, args []Value) (Value, error) {
		sep, _ := arg(args, 0)
		items, ok := listOrSelf(v)
		if !ok {
			return String(v.AsString()), nil
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.AsString()
		}
		return String(strings.Join(parts, sep.AsString())), nil
	})
	reg("startswith", func(v Value, args []Value) (Value, error) {
		prefix, _ := arg(args, 0)
		return Bool(strings.HasPrefix(v.AsString(), prefix.AsString())), nil
	})
	reg("endswith", func(v Value, args []Value) (Value, error) {
		suffix, _ := arg(args, 0)
		return Bool(strings.HasSuffix(v.AsString(), suffix.AsString())), nil
	})
	reg("matches", func(v Value, args []Value) (Value, error) {
		pattern, _ := arg(args, 0)
		re, err := regexp.Compile(pattern.AsString())
		if err != nil {
			return Value{}, newOperatorError("invalid regular expression %q: %v", pattern.AsString(), err)
		}
		return Bool(re.MatchString(v.AsString())), nil
	})
	reg("default", func(v Value, args []Value) (Value, error) {
		if v.IsNull() {
			d, _ := arg(args, 0)
			return d, nil
		}
		return v, nil
	})
	reg("coalesce", func(v Value, args []Value) (Value, error) {
		if !v.IsNull() {
			return v, nil
		}
		for _, a := range args {
			if !a.IsNull() {
				return a, nil
			}
		}
		return Null(), nil
	})
	reg("bool", func(v Value, _ []Value) (Value, error) {
		if v.IsString() {
			switch strings.ToLower(strings.TrimSpace(v.Str())) {
			case "1", "true", "yes", "y", "on":
				return Bool(true), nil
			default:
				return Bool(false), nil
			}
		}
		return Bool(v.Truthy()), nil
	})
	reg("type_is", func(v Value, args []Value) (Value, error) {
		name, _ := arg(args, 0)
		return Bool(strings.EqualFold(v.Kind().String(), name.AsString())), nil
	})
	reg("is_empty", func(v Value, _ []Value) (Value, error) {
		switch {
		case v.IsNull():
			return Bool(true), nil
		case v.IsString():
			return Bool(v.Str() == ""), nil
		case v.IsList():
			return Bool(v.List().Len() == 0), nil
		case v.IsMap():
			return Bool(v.Map().Len() == 0), nil
		default:
			return Bool(false), nil
		}
	})
	reg("non_empty", func(v Value, _ []Value) (Value, error) {
		res, _ := r.byName["is_empty"].fn(v, nil)
		return Bool(!res.Bool()), nil
	})
	reg("to_datetime", func(v Value, args []Value) (Value, error) {
		layout, hasLayout := arg(args, 0)
		t, err := parseDateTime(v, hasLayout, layout)
		if err != nil || t == nil {
			return Null(), nil
		}
		return String(t.Format(time.RFC3339Nano)), nil
	})
	reg("timestamp", func(v Value, _ []Value) (Value, error) {
		t, err := parseDateTime(v, false, Value{})
		if err != nil || t == nil {
			return Null(), nil
		}
		return Float(float64(t.UnixNano()) / 1e9), nil
	})
	reg("age_seconds", func(v Value, _ []Value) (Value, error) {
		t, err := parseDateTime(v, false, Value{})
		if err != nil || t == nil {
			return Null(), nil
		}
		return Float(time.Since(*t).Seconds()), nil
	})
	reg("before", func(v Value, args []Value) (Value, error) {
		other, _ := arg(args, 0)
		left, lerr := parseDateTime(v, false, Value{})
		right, rerr := parseDateTime(other, false, Value{})
		if lerr != nil || rerr != nil || left == nil || right == nil {
			return Bool(false), nil
		}
		return Bool(left.Before(*right)), nil
	})
	reg("after", func(v Value, args []Value) (Value, error) {
		other, _ := arg(args, 0)
		left, lerr := parseDateTime(v, false, Value{})
		right, rerr := parseDateTime(other, false, Value{})
		if lerr != nil || rerr != nil || left == nil || right == nil {
			return Bool(false), nil
		}
		return Bool(left.After(*right)), nil
	})

	registerCoreOnlyFilterFunctions(r)
}

// titleCase upper-cases the first letter of each whitespace-separated word,
// standing in for Python's str.title() without relying on the deprecated
// strings.Title.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func toIntFilter(v Value) (Value, error) {
	switch {
	case v.IsInt():
		return v, nil
	case v.IsFloat():
		return Int(int64(v.Float())), nil
	case v.IsBool():
		if v.Bool() {
			return Int(1), nil
		}
		return Int(0), nil
	case v.IsString():
		i, err := strconv.ParseInt(strings.TrimSpace(v.Str()), 10, 64)
		if err != nil {
			return Value{}, newOperatorError("cannot convert %q to int", v.Str())
		}
		return Int(i), nil
	default:
		return Value{}, newOperatorError("cannot convert %s to int", v.Kind())
	}
}

func toFloatFilter(v Value) (Value, error) {
	switch {
	case v.IsNumeric():
		return Float(v.Float()), nil
	case v.IsBool():
		if v.Bool() {
			return Float(1), nil
		}
		return Float(0), nil
	case v.IsString():
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str()), 64)
		if err != nil {
			return Value{}, newOperatorError("cannot convert %q to float", v.Str())
		}
		return Float(f), nil
	default:
		return Value{}, newOperatorError("cannot convert %s to float", v.Kind())
	}
}

func numericAdd(v Value, delta float64) (Value, error) {
	if v.IsInt() && delta == math.Trunc(delta) {
		return Int(v.Int() + int64(delta)), nil
	}
	return Float(v.Float() + delta), nil
}

func numericMul(v Value, factor float64) (Value, error) {
	if v.IsInt() && factor == math.Trunc(factor) {
		return Int(v.Int() * int64(factor)), nil
	}
	return Float(v.Float() * factor), nil
}

func compareFilter(v Value, args []Value, ok func(int) bool) (Value, error) {
	threshold, present := arg(args, 0)
	if !present {
		return Bool(false), nil
	}
	c, comparable := v.Compare(threshold)
	if !comparable {
		return Bool(false), nil
	}
	return Bool(ok(c)), nil
}

func reduceValues(items []Value, prefer func(int) bool) (Value, error) {
	if len(items) == 0 {
		return Null(), newOperatorError("cannot reduce an empty sequence")
	}
	best := items[0]
	for _, item := range items[1:] {
		c, ok := item.Compare(best)
		if ok && prefer(c) {
			best = item
		}
	}
	return best, nil
}

// parseDateTime mirrors _as_datetime: a Value already holding an ISO-8601
// timestamp string, a numeric Unix timestamp, or (with an explicit layout
// argument) a string in that layout.
func parseDateTime(v Value, hasLayout bool, layout Value) (*time.Time, error) {
	switch {
	case v.IsNumeric():
		t := time.Unix(0, int64(v.Float()*1e9)).UTC()
		return &t, nil
	case v.IsString():
		if hasLayout && layout.IsString() {
			t, err := time.Parse(pythonStrptimeToGoLayout(layout.Str()), v.Str())
			if err != nil {
				return nil, err
			}
			return &t, nil
		}
		normalized := strings.ReplaceAll(v.Str(), "Z", "+00:00")
		t, err := time.Parse(time.RFC3339Nano, normalized)
		if err != nil {
			t, err = time.Parse("2006-01-02T15:04:05-07:00", normalized)
			if err != nil {
				return nil, err
			}
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("dictwalk: value is not a datetime")
	}
}

// pythonStrptimeToGoLayout converts the small subset of strptime directives
// the filter catalogue realistically needs into Go's reference-time layout.
func pythonStrptimeToGoLayout(fmtStr string) string {
	replacer := strings.NewReplacer(
		"%Y", "2006", "%m", "01", "%d", "02",
		"%H", "15", "%M", "04", "%S", "05",
		"%z", "-0700", "%Z", "MST",
	)
	return replacer.Replace(fmtStr)
}
