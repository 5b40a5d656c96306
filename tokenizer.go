/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 *
 * Grounded on original_source/dictwalk/dictwalk.py's
 * _split_raw_path_tokens/_split_path_and_transform/_parse_path, extended
 * with the root-list shortcut preprocessing step SPEC_FULL.md §4.9
 * resolves (a leading "." or "$$root" immediately followed by "[" is
 * stripped so the first raw token gets an empty inline key).
 */

package dictwalk

import "strings"

// splitRawPathTokens splits path on "." at bracket depth zero. Brackets
// increment/decrement depth so a "." inside a predicate or index expression
// is never mistaken for a segment boundary.
func splitRawPathTokens(path string) []string {
	var tokens []string
	var current strings.Builder
	depth := 0
	for _, ch := range path {
		switch {
		case ch == '[':
			depth++
			current.WriteRune(ch)
		case ch == ']':
			if depth > 0 {
				depth--
			}
			current.WriteRune(ch)
		case ch == '.' && depth == 0:
			tokens = append(tokens, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	tokens = append(tokens, current.String())
	return tokens
}

// splitPathAndTransform splits path into its base traversal and an optional
// top-level "|$pipeline" output transform, ignoring "|" inside brackets.
func splitPathAndTransform(path string) (base string, transform string, hasTransform bool) {
	depth := 0
	runes := []rune(path)
	for i, ch := range runes {
		switch ch {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 && i+1 < len(runes) && runes[i+1] == '$' {
				return string(runes[:i]), string(runes[i+1:]), true
			}
		}
	}
	return path, "", false
}

// stripRootListShortcutPrefix strips a leading "." or "$$root" that is
// immediately followed by "[" from the start of path, leaving the bracket
// expression as the first raw token (with an empty inline key). Applies
// only at position zero of the whole path, matching the shortcut's scope
// of "root-anchored list operators participating in writes".
func stripRootListShortcutPrefix(path string) string {
	if strings.HasPrefix(path, "$$root[") {
		return path[len("$$root"):]
	}
	if strings.HasPrefix(path, ".[") {
		return path[1:]
	}
	return path
}

// parsePath tokenizes base (already stripped of any output transform) into
// its raw string tokens and their classified PathTokens.
func parsePath(base string, e *Evaluator) (rawTokens []string, tokens []PathToken, err error) {
	if base == "" {
		return nil, nil, newParseError(base, "", "path cannot be empty")
	}
	base = stripRootListShortcutPrefix(base)
	rawTokens = splitRawPathTokens(base)
	tokens = make([]PathToken, 0, len(rawTokens))
	for _, raw := range rawTokens {
		tok, terr := parseToken(raw, e)
		if terr != nil {
			return nil, nil, terr
		}
		tokens = append(tokens, tok)
	}
	return rawTokens, tokens, nil
}

// pathUsesRootToken reports whether any raw token is the literal "$$root"
// marker (as opposed to the root-list shortcut, which never produces this
// literal token since the prefix is stripped before splitting).
func pathUsesRootToken(rawTokens []string) bool {
	for _, raw := range rawTokens {
		if raw == "$$root" {
			return true
		}
	}
	return false
}
