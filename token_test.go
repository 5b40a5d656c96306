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

func sampleDoc() Value {
	tags := NewList(String("a"), String("b"), String("c"))
	item1 := NewOrderedMap()
	item1.Set("id", Int(1))
	item1.Set("name", String("first"))
	item2 := NewOrderedMap()
	item2.Set("id", Int(2))
	item2.Set("name", String("second"))
	items := NewList(FromMap(item1), FromMap(item2))

	root := NewOrderedMap()
	root.Set("tags", FromList(tags))
	root.Set("items", FromList(items))
	root.Set("meta", FromMap(func() *OrderedMap {
		m := NewOrderedMap()
		m.Set("count", Int(2))
		return m
	}()))
	return FromMap(root)
}

func TestParseTokenClassifiesEachShape(t *testing.T) {
	e := Default()

	tok, err := parseToken("$$root", e)
	require.NoError(t, err)
	require.IsType(t, &rootToken{}, tok)

	tok, err = parseToken("*", e)
	require.NoError(t, err)
	require.IsType(t, &wildcardToken{}, tok)

	tok, err = parseToken("**", e)
	require.NoError(t, err)
	require.IsType(t, &deepWildcardToken{}, tok)

	tok, err = parseToken("tags[]", e)
	require.NoError(t, err)
	lm, ok := tok.(*listMapToken)
	require.True(t, ok)
	require.Equal(t, "tags", lm.key)

	tok, err = parseToken("tags[0]", e)
	require.NoError(t, err)
	idx, ok := tok.(*indexToken)
	require.True(t, ok)
	require.False(t, idx.isSlice)
	require.Equal(t, 0, idx.index)

	tok, err = parseToken("tags[1:3]", e)
	require.NoError(t, err)
	idx, ok = tok.(*indexToken)
	require.True(t, ok)
	require.True(t, idx.isSlice)

	tok, err = parseToken("items[?id==1]", e)
	require.NoError(t, err)
	require.IsType(t, &filterToken{}, tok)

	tok, err = parseToken("name", e)
	require.NoError(t, err)
	kg, ok := tok.(*keyGetToken)
	require.True(t, ok)
	require.Equal(t, "name", kg.key)
}

func TestKeyGetTokenResolve(t *testing.T) {
	doc := sampleDoc()
	tok := &keyGetToken{key: "meta"}
	v, err := tok.resolve(doc)
	require.NoError(t, err)
	require.True(t, v.IsMap())
}

func TestKeyGetTokenResolveMissingKeyErrors(t *testing.T) {
	doc := sampleDoc()
	tok := &keyGetToken{key: "nope"}
	_, err := tok.resolve(doc)
	require.Error(t, err)
}

func TestIndexTokenResolveNegative(t *testing.T) {
	doc := sampleDoc()
	tok := &indexToken{key: "tags", index: -1}
	v, err := tok.resolve(doc)
	require.NoError(t, err)
	require.Equal(t, "c", v.Str())
}

func TestIndexTokenResolveSlice(t *testing.T) {
	doc := sampleDoc()
	lo, hi := 0, 2
	tok := &indexToken{key: "tags", isSlice: true, sliceLo: &lo, sliceHi: &hi}
	v, err := tok.resolve(doc)
	require.NoError(t, err)
	require.Equal(t, 2, v.List().Len())
}

func TestWildcardTokenResolveOverMap(t *testing.T) {
	doc := sampleDoc()
	tok := &wildcardToken{}
	v, err := tok.resolve(doc)
	require.NoError(t, err)
	require.Equal(t, 3, v.List().Len())
}

func TestDeepWildcardTokenResolveCollectsDescendants(t *testing.T) {
	doc := sampleDoc()
	tok := &deepWildcardToken{}
	v, err := tok.resolve(doc)
	require.NoError(t, err)
	require.True(t, v.List().Len() > 3)
}

func TestListMapTokenWriteUpdatesAllItems(t *testing.T) {
	doc := sampleDoc()
	tok := &listMapToken{key: "tags"}
	tagsVal, _ := doc.Map().Get("tags")
	updated, err := writeListMapItems(tagsVal.List(), []PathToken{tok}, String("x"), DefaultWriteOptions(), Default(), doc, nil)
	require.NoError(t, err)
	for _, v := range updated.List().Items() {
		require.Equal(t, "x", v.Str())
	}
}

func TestIndexTokenUnsetRemovesElement(t *testing.T) {
	doc := sampleDoc()
	tok := &indexToken{key: "tags", index: 0}
	updated, err := tok.unset(doc, []PathToken{tok})
	require.NoError(t, err)
	lst, _ := updated.Map().Get("tags")
	require.Equal(t, 2, lst.List().Len())
	require.Equal(t, "b", lst.List().Items()[0].Str())
}
