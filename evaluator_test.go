/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package dictwalk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ordersDoc() Value {
	order1 := NewOrderedMap()
	order1.Set("id", Int(1))
	order1.Set("total", Int(100))
	order2 := NewOrderedMap()
	order2.Set("id", Int(2))
	order2.Set("total", Int(200))

	root := NewOrderedMap()
	root.Set("orders", FromList(NewList(FromMap(order1), FromMap(order2))))
	root.Set("currency", String("USD"))
	return FromMap(root)
}

func TestEvaluatorGetPathValueBasic(t *testing.T) {
	e := NewEvaluator()
	doc := ordersDoc()
	v, err := e.getPathValue(doc, "currency", false, doc)
	require.NoError(t, err)
	require.Equal(t, "USD", v.Str())
}

func TestEvaluatorGetPathValueNonStrictMissingReturnsNull(t *testing.T) {
	e := NewEvaluator()
	doc := ordersDoc()
	v, err := e.getPathValue(doc, "nope", false, doc)
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestEvaluatorGetPathValueStrictMissingErrors(t *testing.T) {
	e := NewEvaluator()
	doc := ordersDoc()
	_, err := e.getPathValue(doc, "nope", true, doc)
	require.Error(t, err)
}

func TestEvaluatorGetPathValueWithTransform(t *testing.T) {
	e := NewEvaluator()
	doc := ordersDoc()
	v, err := e.getPathValue(doc, "orders[0].total|$double", false, doc)
	require.NoError(t, err)
	require.Equal(t, int64(200), v.Int())
}

func TestEvaluatorPathExists(t *testing.T) {
	e := NewEvaluator()
	doc := ordersDoc()
	ok, err := e.pathExists(doc, "orders[0].id", false)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = e.pathExists(doc, "orders[99].id", false)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvaluatorSetPathValueCreatesMissingContainers(t *testing.T) {
	e := NewEvaluator()
	doc := FromMap(NewOrderedMap())
	updated, err := e.setPathValue(doc, "a.b.c", Int(5), false, DefaultWriteOptions())
	require.NoError(t, err)
	v, err := e.getPathValue(updated, "a.b.c", true, updated)
	require.NoError(t, err)
	require.Equal(t, int64(5), v.Int())
}

func TestEvaluatorSetPathValueRejectsRootTokenInWritePath(t *testing.T) {
	e := NewEvaluator()
	doc := ordersDoc()
	_, err := e.setPathValue(doc, "$$root.currency", String("EUR"), false, DefaultWriteOptions())
	require.Error(t, err)
}

func TestEvaluatorSetPathValueWithRootReference(t *testing.T) {
	e := NewEvaluator()
	doc := ordersDoc()
	updated, err := e.setPathValue(doc, "orders[1].total", String("$$root.orders[0].total"), false, DefaultWriteOptions())
	require.NoError(t, err)
	v, err := e.getPathValue(updated, "orders[1].total", true, updated)
	require.NoError(t, err)
	require.Equal(t, int64(100), v.Int())
}

func TestEvaluatorUnsetPathValue(t *testing.T) {
	e := NewEvaluator()
	doc := ordersDoc()
	updated, err := e.unsetPathValue(doc, "currency", false)
	require.NoError(t, err)
	ok, err := e.pathExists(updated, "currency", false)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvaluatorWriteOptionsNoCreateMissing(t *testing.T) {
	e := NewEvaluator()
	doc := FromMap(NewOrderedMap())
	opts := DefaultWriteOptions()
	opts.CreateMissing = false
	updated, err := e.setPathValue(doc, "a.b", Int(1), false, opts)
	require.NoError(t, err)
	ok, err := e.pathExists(updated, "a.b", false)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvaluatorRunFilterFunction(t *testing.T) {
	e := NewEvaluator()
	v, err := e.RunFilterFunction("$inc", Int(1))
	require.NoError(t, err)
	require.Equal(t, int64(2), v.Int())
}

func TestEvaluatorRunFilterFunctionRequiresDollarPrefix(t *testing.T) {
	e := NewEvaluator()
	_, err := e.RunFilterFunction("inc", Int(1))
	require.Error(t, err)
}

// TestGetPipelineOverEvenPredicateMatchesSpecScenario runs spec.md's chained
// predicate/filter-pipeline scenario verbatim: filter b by even id, project
// c, then fold the result through add/double/pow/sum.
func TestGetPipelineOverEvenPredicateMatchesSpecScenario(t *testing.T) {
	doc, err := FromJSON([]byte(`{"a":{"b":[
		{"id":1,"c":1},{"id":2,"c":2},{"id":3,"c":3},
		{"id":4,"c":4},{"id":5,"c":5},{"id":6,"c":6}
	]}}`))
	require.NoError(t, err)

	v, err := Get(doc, "a.b[?id==$even].c[]|$add(2)[]|$double[]|$pow(2)[]|$sum")
	require.NoError(t, err)
	require.Equal(t, int64(464), v.Int())
}

// TestGetPredicateStringwiseEqualFallbackMatchesSpecScenario runs spec.md's
// stringwise `==` fallback scenario: the field holds a string "1" but the
// predicate's rhs literal is the integer 1.
func TestGetPredicateStringwiseEqualFallbackMatchesSpecScenario(t *testing.T) {
	doc, err := FromJSON([]byte(`{"a":{"b":[{"id":"1","c":10},{"id":"2","c":20}]}}`))
	require.NoError(t, err)

	v, err := Get(doc, "a.b[?id==1].c[]")
	require.NoError(t, err)
	require.Equal(t, 1, v.List().Len())
	require.Equal(t, int64(10), v.List().Items()[0].Int())
}
