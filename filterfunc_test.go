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

func TestResolvePathFilterStringSingleSegment(t *testing.T) {
	r := newDefaultRegistry()
	f, err := resolvePathFilterString("$inc", r)
	require.NoError(t, err)
	require.NotNil(t, f)
	got, err := f.Call(Int(1))
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Int())
}

func TestResolvePathFilterStringWithArgs(t *testing.T) {
	r := newDefaultRegistry()
	f, err := resolvePathFilterString("$add(5)", r)
	require.NoError(t, err)
	got, err := f.Call(Int(1))
	require.NoError(t, err)
	require.Equal(t, int64(6), got.Int())
}

func TestResolvePathFilterStringPipeline(t *testing.T) {
	r := newDefaultRegistry()
	f, err := resolvePathFilterString("$inc|$double", r)
	require.NoError(t, err)
	got, err := f.Call(Int(1))
	require.NoError(t, err)
	require.Equal(t, int64(4), got.Int())
}

func TestResolvePathFilterStringMapOverList(t *testing.T) {
	r := newDefaultRegistry()
	f, err := resolvePathFilterString("$inc[]", r)
	require.NoError(t, err)
	got, err := f.Call(FromList(NewList(Int(1), Int(2))))
	require.NoError(t, err)
	require.Equal(t, int64(2), got.List().Items()[0].Int())
	require.Equal(t, int64(3), got.List().Items()[1].Int())
}

func TestResolvePathFilterStringNotAFilterReturnsNil(t *testing.T) {
	r := newDefaultRegistry()
	f, err := resolvePathFilterString("plain", r)
	require.NoError(t, err)
	require.Nil(t, f)
}

func TestResolvePathFilterStringUnknownNameErrors(t *testing.T) {
	r := newDefaultRegistry()
	_, err := resolvePathFilterString("$nope", r)
	require.Error(t, err)
}

func TestParseBooleanFilterExpressionAndOr(t *testing.T) {
	r := newDefaultRegistry()
	f, err := parseBooleanFilterExpression("$even && $gt(0)", r)
	require.NoError(t, err)
	got, err := f.Call(Int(4))
	require.NoError(t, err)
	require.True(t, got.Truthy())

	got, err = f.Call(Int(-4))
	require.NoError(t, err)
	require.False(t, got.Truthy())
}

func TestParseBooleanFilterExpressionNotAndParens(t *testing.T) {
	r := newDefaultRegistry()
	f, err := parseBooleanFilterExpression("!($even) || $gt(10)", r)
	require.NoError(t, err)

	got, err := f.Call(Int(3))
	require.NoError(t, err)
	require.True(t, got.Truthy())

	got, err = f.Call(Int(4))
	require.NoError(t, err)
	require.False(t, got.Truthy())
}

func TestResolveRootReferenceValuePlainRoot(t *testing.T) {
	root := FromMap(func() *OrderedMap {
		m := NewOrderedMap()
		m.Set("count", Int(42))
		return m
	}())
	v, err := resolveRootReferenceValue("$$root.count", root, Default())
	require.NoError(t, err)
	require.Equal(t, int64(42), v.Int())
}

func TestResolveRootReferenceValueInvalidExpression(t *testing.T) {
	_, err := resolveRootReferenceValue("$root.count", Null(), Default())
	require.Error(t, err)
}

func TestResolveNewValueAppliesFilterToExisting(t *testing.T) {
	got, err := resolveNewValue(Int(3), String("$double"), Default(), Null())
	require.NoError(t, err)
	require.Equal(t, int64(6), got.Int())
}

func TestResolveNewValueLiteralPassthrough(t *testing.T) {
	got, err := resolveNewValue(Int(3), Int(9), Default(), Null())
	require.NoError(t, err)
	require.Equal(t, int64(9), got.Int())
}
