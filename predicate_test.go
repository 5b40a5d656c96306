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

func itemsDoc() Value {
	item1 := NewOrderedMap()
	item1.Set("id", Int(1))
	item1.Set("score", Int(10))
	item2 := NewOrderedMap()
	item2.Set("id", Int(2))
	item2.Set("score", Int(20))
	return FromMap(func() *OrderedMap {
		m := NewOrderedMap()
		m.Set("items", FromList(NewList(FromMap(item1), FromMap(item2))))
		return m
	}())
}

func TestFilterTokenEqualityMatch(t *testing.T) {
	doc := itemsDoc()
	tok, err := newFilterToken("items", "id", "==", "1", Default())
	require.NoError(t, err)
	v, err := tok.resolve(doc)
	require.NoError(t, err)
	require.Equal(t, 1, v.List().Len())
	id, _ := v.List().Items()[0].Map().Get("id")
	require.Equal(t, int64(1), id.Int())
}

func TestFilterTokenGreaterThan(t *testing.T) {
	doc := itemsDoc()
	tok, err := newFilterToken("items", "score", ">", "15", Default())
	require.NoError(t, err)
	v, err := tok.resolve(doc)
	require.NoError(t, err)
	require.Equal(t, 1, v.List().Len())
}

func TestFilterTokenDotPrefixGeneralizesToBareKey(t *testing.T) {
	doc := itemsDoc()
	tok, err := newFilterToken("items", ".id", "==", "2", Default())
	require.NoError(t, err)
	v, err := tok.resolve(doc)
	require.NoError(t, err)
	require.Equal(t, 1, v.List().Len())
}

func TestFilterTokenItemRootDot(t *testing.T) {
	doc := FromMap(func() *OrderedMap {
		m := NewOrderedMap()
		m.Set("items", FromList(NewList(Int(1), Int(2), Int(3))))
		return m
	}())
	tok, err := newFilterToken("items", ".", ">", "1", Default())
	require.NoError(t, err)
	v, err := tok.resolve(doc)
	require.NoError(t, err)
	require.Equal(t, 2, v.List().Len())
}

func TestFilterTokenDollarPrefixRejected(t *testing.T) {
	_, err := newFilterToken("items", "$len", ">", "1", Default())
	require.Error(t, err)
}

func TestFilterTokenWriteCreatesOnNoMatch(t *testing.T) {
	doc := itemsDoc()
	tok, err := newFilterToken("items", "id", "==", "99", Default())
	require.NoError(t, err)
	opts := DefaultWriteOptions()
	updated, err := tok.write(doc, []PathToken{tok}, Int(5), opts, Default(), doc)
	require.NoError(t, err)
	items, _ := updated.Map().Get("items")
	require.Equal(t, 3, items.List().Len())
}

func TestFilterTokenUnsetRemovesMatches(t *testing.T) {
	doc := itemsDoc()
	tok, err := newFilterToken("items", "id", "==", "1", Default())
	require.NoError(t, err)
	updated, err := tok.unset(doc, []PathToken{tok})
	require.NoError(t, err)
	items, _ := updated.Map().Get("items")
	require.Equal(t, 1, items.List().Len())
}

func TestCompareOpAllOperators(t *testing.T) {
	require.True(t, compareOp("==", 0))
	require.True(t, compareOp("!=", 1))
	require.True(t, compareOp(">", 1))
	require.True(t, compareOp("<", -1))
	require.True(t, compareOp(">=", 0))
	require.True(t, compareOp("<=", 0))
}
