/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 *
 * A small literal-value parser standing in for Python's ast.literal_eval,
 * covering exactly the grammar spec.md §4.4/§4.5 requires: integers,
 * floats, single/double-quoted strings, booleans, None/null, and
 * lists/tuples of literals.
 */

package dictwalk

import (
	"strconv"
	"strings"
)

// splitTopLevel splits s on sep, ignoring occurrences inside (), [], or
// quoted strings. Used for both filter-argument lists and list literals.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		default:
			if c == sep && depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// parseArgList parses a comma-separated tuple of literal values, e.g. the
// inner text of "$add(2)" or "$pick('a', 'c')".
func parseArgList(raw string) ([]Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := splitTopLevel(raw, ',')
	values := make([]Value, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := parseLiteral(p)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// parseLiteral parses a single literal token: an integer, a float, a
// quoted string, a boolean, None/null, or a [bracketed] list of literals.
func parseLiteral(raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null(), newParseError(raw, raw, "empty literal")
	}

	switch s {
	case "None", "none", "null":
		return Null(), nil
	case "True", "true":
		return Bool(true), nil
	case "False", "false":
		return Bool(false), nil
	}

	if (strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") && len(s) >= 2) ||
		(strings.HasPrefix(s, "\"") && strings.HasSuffix(s, "\"") && len(s) >= 2) {
		return String(unescapeLiteralString(s[1 : len(s)-1])), nil
	}

	if (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")) {
		inner := s[1 : len(s)-1]
		items, err := parseArgList(inner)
		if err != nil {
			return Value{}, err
		}
		return FromList(NewList(items...)), nil
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f), nil
	}

	// Bare, unquoted text (e.g. the raw rhs of a predicate such as
	// "[?id==3]" before stringwise fallback, or an unquoted identifier)
	// falls back to a string literal, matching ast.literal_eval's
	// ValueError path in the original implementation.
	return String(s), nil
}

func unescapeLiteralString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
