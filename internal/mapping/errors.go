package mapping

import "fmt"

// Two failure categories cross this package's boundary. ContractError means
// a caller bug: the conversion was handed a value that must never reach it
// (an uncanonicalized inference variable, a non-root universe, an error
// predicate as a goal). UnsupportedError means a documented gap: the input
// is well-formed but uses a feature this layer deliberately does not model.
// Neither is retryable; all conversions are pure and deterministic.
// Benign partial-analysis states (solver-side inference variables, error
// predicates in environments) degrade without producing an error at all.

// ContractError reports an internal invariant violation.
type ContractError struct {
	Msg string
}

func (e *ContractError) Error() string {
	return "internal invariant violated: " + e.Msg
}

func errContract(format string, args ...interface{}) error {
	return &ContractError{Msg: fmt.Sprintf(format, args...)}
}

// UnsupportedError reports a documented feature gap.
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return "unsupported: " + e.Feature
}

func errUnsupported(format string, args ...interface{}) error {
	return &UnsupportedError{Feature: fmt.Sprintf(format, args...)}
}
