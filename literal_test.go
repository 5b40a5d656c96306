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

func TestParseLiteralScalars(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Value
	}{
		{"int", "42", Int(42)},
		{"negative int", "-3", Int(-3)},
		{"float", "3.5", Float(3.5)},
		{"single quoted string", "'hello'", String("hello")},
		{"double quoted string", `"hello"`, String("hello")},
		{"true", "True", Bool(true)},
		{"false", "false", Bool(false)},
		{"none", "None", Null()},
		{"bare word falls back to string", "id", String("id")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseLiteral(tc.raw)
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got), "got %#v want %#v", got, tc.want)
		})
	}
}

func TestParseArgListCommaSeparated(t *testing.T) {
	values, err := parseArgList("1, 'two', 3.0")
	require.NoError(t, err)
	require.Len(t, values, 3)
	require.Equal(t, int64(1), values[0].Int())
	require.Equal(t, "two", values[1].Str())
	require.Equal(t, 3.0, values[2].Float())
}

func TestParseLiteralListOfInts(t *testing.T) {
	v, err := parseLiteral("[1, 2, 3]")
	require.NoError(t, err)
	require.True(t, v.IsList())
	require.Equal(t, 3, v.List().Len())
}

func TestSplitTopLevelIgnoresNestedBrackets(t *testing.T) {
	parts := splitTopLevel("a(1,2), 'x,y', [1,2]", ',')
	require.Equal(t, []string{"a(1,2)", " 'x,y'", " [1,2]"}, parts)
}
