// Package mlqlerr collects the error taxonomy shared by every stage of the
// MLQL compiler: surface-syntax parsing, IR validation, plan translation,
// and (wrapped, never raised) execution errors from the embedded engine.
package mlqlerr

import "fmt"

// SyntaxError is returned by the lexer/parser on malformed surface syntax.
// It carries the 1-based source position of the failure.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// ValidationError reports a structural problem in an IR document that is
// detectable without a schema provider: an empty alias, a malformed
// wildcard, a duplicate let name, an unknown function name, and similar
// shape violations.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

// TranslateKind discriminates the reason a relational-plan translation failed.
type TranslateKind int

const (
	// Schema indicates an unknown table or column, or a column reference
	// that does not resolve against the current schema.
	Schema TranslateKind = iota
	// UnsupportedOperator indicates an IR operator that the plan translator
	// does not lower (a reserved forward-compatible operator, a graph source,
	// or a Cross join).
	UnsupportedOperator
	// Translation indicates a structural mismatch the translator cannot
	// reconcile, e.g. an aggregate argument referencing a column a prior
	// Select never exposed.
	Translation
)

func (k TranslateKind) String() string {
	switch k {
	case Schema:
		return "Schema"
	case UnsupportedOperator:
		return "UnsupportedOperator"
	case Translation:
		return "Translation"
	default:
		return "Unknown"
	}
}

// TranslateError is returned by the relational-plan translator (internal/planner).
type TranslateError struct {
	Kind    TranslateKind
	Message string
	// Available lists the columns visible at the point of failure, populated
	// for Kind == Schema so callers can render a helpful diagnostic.
	Available []string
}

func (e *TranslateError) Error() string {
	if len(e.Available) > 0 {
		return fmt.Sprintf("translate error (%s): %s (available: %v)", e.Kind, e.Message, e.Available)
	}
	return fmt.Sprintf("translate error (%s): %s", e.Kind, e.Message)
}

// ExecutionKind discriminates the reason an execution-boundary error occurred.
type ExecutionKind int

const (
	// Database indicates the embedded engine itself returned an error.
	Database ExecutionKind = iota
	// BudgetExceeded indicates a caller-imposed row/memory/time budget tripped.
	BudgetExceeded
	// Timeout indicates the surrounding server's wall-clock budget expired.
	Timeout
	// Substrait is reused by the SQL lowering to report an unsupported
	// operator or expression, even though no plan is produced in that path.
	Substrait
)

func (k ExecutionKind) String() string {
	switch k {
	case Database:
		return "Database"
	case BudgetExceeded:
		return "BudgetExceeded"
	case Timeout:
		return "Timeout"
	case Substrait:
		return "Substrait"
	default:
		return "Unknown"
	}
}

// ExecutionError wraps a failure at the execution boundary: the embedded
// engine, a budget enforcer, or (via Substrait) the SQL lowering rejecting
// an operator it cannot render.
type ExecutionError struct {
	Kind    ExecutionKind
	Message string
	Cause   error
}

func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("execution error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("execution error (%s): %s", e.Kind, e.Message)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}
