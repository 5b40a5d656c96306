/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 *
 * Grounded on original_source/dictwalk/errors.py (DictWalkError /
 * DictWalkParseError / DictWalkOperatorError / DictWalkResolutionError),
 * adapted to Go's error conventions.
 */

package dictwalk

import (
	"errors"
	"fmt"
)

// Error is the base interface every DictWalk error satisfies, including the
// "operation forbidden by this evaluator instance" family (ErrFrozenRegistry).
type Error interface {
	error
	dictwalkError()
}

// ParseError reports a malformed path, invalid filter segment, illegal
// "$$root" value form, an attempt to use Root in a write/unset path, or a
// run_filter_function call with a non-string or non-"$"-prefixed input.
type ParseError struct {
	Path    string
	Token   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (path=%q, token=%q)", e.Message, e.Path, e.Token)
}

func (*ParseError) dictwalkError() {}

func newParseError(path, token, message string) *ParseError {
	return &ParseError{Path: path, Token: token, Message: message}
}

// ResolutionError reports a strict-mode resolution failure: missing key,
// type mismatch, or operator error encountered while walking a path.
type ResolutionError struct {
	Path    string
	Token   string
	Message string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s (path=%q, token=%q)", e.Message, e.Path, e.Token)
}

func (*ResolutionError) dictwalkError() {}

func newResolutionError(path, token, message string) *ResolutionError {
	return &ResolutionError{Path: path, Token: token, Message: message}
}

// OperatorError reports an unsupported operator/value combination, such as
// an ordered comparison operator paired with a filter-pipeline right-hand
// side.
type OperatorError struct {
	Message string
}

func (e *OperatorError) Error() string { return e.Message }

func (*OperatorError) dictwalkError() {}

func newOperatorError(format string, args ...any) *OperatorError {
	return &OperatorError{Message: fmt.Sprintf(format, args...)}
}

// frozenRegistryError is returned by RegisterPathFilter/GetPathFilter on an
// evaluator instance that has been frozen (the package default, built by
// the unexported newFrozenEvaluator).
type frozenRegistryError struct {
	op string
}

func (e *frozenRegistryError) Error() string {
	return fmt.Sprintf("dictwalk: %s is not permitted on a frozen evaluator", e.op)
}

func (*frozenRegistryError) dictwalkError() {}

// ErrFrozenRegistry is the sentinel matched by errors.Is against any
// frozen-registry refusal returned by RegisterPathFilter or GetPathFilter.
var ErrFrozenRegistry = &frozenRegistryError{op: "this operation"}

func (e *frozenRegistryError) Is(target error) bool {
	_, ok := target.(*frozenRegistryError)
	return ok
}

func frozenErrorFor(op string) error {
	return &frozenRegistryError{op: op}
}

// IsResolutionError reports whether err is (or wraps) a *ResolutionError.
func IsResolutionError(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}

// IsParseError reports whether err is (or wraps) a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsOperatorError reports whether err is (or wraps) an *OperatorError.
func IsOperatorError(err error) bool {
	var oe *OperatorError
	return errors.As(err, &oe)
}
