/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 *
 * Statistical filters the Go backend ships in addition to the original
 * path_filters.py catalogue, per SPEC_FULL.md's "core backend may
 * additionally ship pctile/median/q1/q3/iqr/mode/stdev". Grounded on the
 * same arithmetic idiom as functions.go's sum/avg/sorted.
 */

package dictwalk

import (
	"math"
	"sort"
)

func sortedFloats(items []Value) []float64 {
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if item.IsNumeric() {
			out = append(out, item.Float())
		}
	}
	sort.Float64s(out)
	return out
}

// percentile computes the linear-interpolation percentile (0-100) over a
// pre-sorted slice, matching the common "type 7" definition.
func percentile(sorted []float64, p float64) (float64, bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}
	if n == 1 {
		return sorted[0], true
	}
	rank := (p / 100) * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi >= n {
		hi = n - 1
	}
	if lo == hi {
		return sorted[lo], true
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), true
}

func registerCoreOnlyFilterFunctions(r *Registry) {
	reg := func(name string, fn FilterFunc) { r.Register(name, fn) }

	reg("pctile", func(v Value, args []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return Null(), nil
		}
		p := argFloat(args, 0, 50)
		result, ok := percentile(sortedFloats(items), p)
		if !ok {
			return Null(), nil
		}
		return Float(result), nil
	})
	reg("median", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return Null(), nil
		}
		result, ok := percentile(sortedFloats(items), 50)
		if !ok {
			return Null(), nil
		}
		return Float(result), nil
	})
	reg("q1", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return Null(), nil
		}
		result, ok := percentile(sortedFloats(items), 25)
		if !ok {
			return Null(), nil
		}
		return Float(result), nil
	})
	reg("q3", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return Null(), nil
		}
		result, ok := percentile(sortedFloats(items), 75)
		if !ok {
			return Null(), nil
		}
		return Float(result), nil
	})
	reg("iqr", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return Null(), nil
		}
		sorted := sortedFloats(items)
		q1, ok1 := percentile(sorted, 25)
		q3, ok3 := percentile(sorted, 75)
		if !ok1 || !ok3 {
			return Null(), nil
		}
		return Float(q3 - q1), nil
	})
	reg("mode", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok || len(items) == 0 {
			return Null(), nil
		}
		type bucket struct {
			value Value
			count int
		}
		var buckets []bucket
		for _, item := range items {
			found := false
			for i := range buckets {
				if buckets[i].value.Equal(item) {
					buckets[i].count++
					found = true
					break
				}
			}
			if !found {
				buckets = append(buckets, bucket{value: item, count: 1})
			}
		}
		best := buckets[0]
		for _, b := range buckets[1:] {
			if b.count > best.count {
				best = b
			}
		}
		return best.value, nil
	})
	reg("stdev", func(v Value, _ []Value) (Value, error) {
		items, ok := listOrSelf(v)
		if !ok {
			return Null(), nil
		}
		floats := sortedFloats(items)
		n := len(floats)
		if n < 2 {
			return Null(), nil
		}
		mean := 0.0
		for _, f := range floats {
			mean += f
		}
		mean /= float64(n)
		var sumSq float64
		for _, f := range floats {
			d := f - mean
			sumSq += d * d
		}
		return Float(math.Sqrt(sumSq / float64(n-1))), nil
	})
}
