/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package dictwalk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func inventoryDoc() Value {
	widget := NewOrderedMap()
	widget.Set("sku", String("W-1"))
	widget.Set("qty", Int(3))

	root := NewOrderedMap()
	root.Set("items", FromList(NewList(FromMap(widget))))
	return FromMap(root)
}

func TestPackageGetAndExists(t *testing.T) {
	doc := inventoryDoc()
	v, err := Get(doc, "items[0].sku")
	require.NoError(t, err)
	require.Equal(t, "W-1", v.Str())

	ok, err := Exists(doc, "items[0].qty")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPackageGetNonStrictReturnsConfiguredDefault(t *testing.T) {
	doc := inventoryDoc()
	v, err := Get(doc, "items[0].missing", WithDefault(String("n/a")))
	require.NoError(t, err)
	require.Equal(t, "n/a", v.Str())
}

func TestPackageGetStrictErrorsOnMissingPath(t *testing.T) {
	doc := inventoryDoc()
	_, err := Get(doc, "items[0].missing", Strict())
	require.Error(t, err)
	require.True(t, IsResolutionError(err))
}

func TestPackageSetAndUnset(t *testing.T) {
	doc := inventoryDoc()
	updated, err := Set(doc, "items[0].qty", Int(9))
	require.NoError(t, err)
	v, err := Get(updated, "items[0].qty")
	require.NoError(t, err)
	require.Equal(t, int64(9), v.Int())

	updated, err = Unset(updated, "items[0].qty")
	require.NoError(t, err)
	ok, err := Exists(updated, "items[0].qty")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPackageSetOptionsDisableCreateMissing(t *testing.T) {
	doc := FromMap(NewOrderedMap())
	updated, err := Set(doc, "a.b", Int(1), NoCreateMissing())
	require.NoError(t, err)
	ok, err := Exists(updated, "a.b")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDefaultEvaluatorRejectsRegistration(t *testing.T) {
	_, err := RegisterPathFilter("custom_thing", func(v Value, _ []Value) (Value, error) { return v, nil })
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrFrozenRegistry))
}

func TestNewEvaluatorAcceptsRegistration(t *testing.T) {
	e := NewEvaluator()
	f, err := e.RegisterPathFilter("triple", func(v Value, _ []Value) (Value, error) {
		return Int(v.Int() * 3), nil
	})
	require.NoError(t, err)
	got, err := f.Call(Int(2))
	require.NoError(t, err)
	require.Equal(t, int64(6), got.Int())
}

func TestDefaultEvaluatorGetPathFilterRefusesOnFrozenRegistry(t *testing.T) {
	_, err := GetPathFilter("inc")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrFrozenRegistry))
}

func TestNewEvaluatorGetPathFilterReturnsBuiltin(t *testing.T) {
	e := NewEvaluator()
	f, err := e.GetPathFilter("inc")
	require.NoError(t, err)
	got, err := f.Call(Int(1))
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Int())
}

func TestRunFilterFunctionPackageLevel(t *testing.T) {
	v, err := RunFilterFunction("$double", Int(5))
	require.NoError(t, err)
	require.Equal(t, int64(10), v.Int())
}
