package error

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorCategory classifies errors by the front-end stage that detected them.
// Callers use it to decide how to present a failure: lexical and syntax errors
// point at the source text, resolution and type errors point at names.
type ErrorCategory int

const (
	// ErrCategoryLexical represents illegal or unterminated tokens.
	ErrCategoryLexical ErrorCategory = iota

	// ErrCategorySyntax represents token sequences that do not match the grammar,
	// including a missing statement terminator.
	ErrCategorySyntax

	// ErrCategoryResolution represents names that do not resolve against the
	// catalog or the statement scope: unknown tables, columns and functions,
	// ambiguous columns and duplicate aliases.
	ErrCategoryResolution

	// ErrCategoryType represents well-formed, resolvable statements whose
	// expressions or values are not type-correct.
	ErrCategoryType

	// ErrCategorySystem represents failures outside the SQL text itself,
	// such as unreadable script files or schema import failures.
	ErrCategorySystem
)

func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryLexical:
		return "lexical"
	case ErrCategorySyntax:
		return "syntax"
	case ErrCategoryResolution:
		return "resolution"
	case ErrCategoryType:
		return "type"
	case ErrCategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// Stable error codes. Tests and callers match on these rather than on message text.
const (
	CodeIllegalToken = "ILLEGAL_TOKEN"

	CodeUnexpectedToken      = "UNEXPECTED_TOKEN"
	CodeMissingTerminator    = "MISSING_TERMINATOR"
	CodeTrailingInput        = "TRAILING_INPUT"
	CodeUnsupportedStatement = "UNSUPPORTED_STATEMENT"

	CodeUnknownTable    = "UNKNOWN_TABLE"
	CodeTableExists     = "TABLE_EXISTS"
	CodeUnknownColumn   = "UNKNOWN_COLUMN"
	CodeAmbiguousColumn = "AMBIGUOUS_COLUMN"
	CodeUnknownFunction = "UNKNOWN_FUNCTION"
	CodeDuplicateAlias  = "DUPLICATE_ALIAS"
	CodeDuplicateColumn = "DUPLICATE_COLUMN"

	CodeTypeMismatch         = "TYPE_MISMATCH"
	CodeColumnCountMismatch  = "COLUMN_COUNT_MISMATCH"
	CodeNonBooleanWhere      = "NON_BOOLEAN_WHERE"
	CodeNonScalarExpression  = "NON_SCALAR_EXPRESSION"
	CodeUnknownType          = "UNKNOWN_TYPE"
	CodeIncomparableOperands = "INCOMPARABLE_OPERANDS"
	CodeFunctionArity        = "FUNCTION_ARITY"
	CodeFunctionArgumentType = "FUNCTION_ARGUMENT_TYPE"
	CodeStarArgument         = "STAR_ARGUMENT"
	CodeBetweenBounds        = "BETWEEN_BOUNDS"
	CodeScalarSubquery       = "SCALAR_SUBQUERY"

	CodeIO           = "IO_ERROR"
	CodeSchemaImport = "SCHEMA_IMPORT"
)

// DBError represents a structured database error with rich context information.
type DBError struct {
	// Code is a unique identifier for this error type (e.g., "UNKNOWN_TABLE", "ILLEGAL_TOKEN").
	Code string

	// Category classifies the error by the stage that raised it.
	Category ErrorCategory

	// Message is a human-readable description of what went wrong.
	Message string

	// Detail provides additional context about the specific error instance.
	// Example: "at position 14" where Message might be "illegal token '@'".
	Detail string

	// Hint suggests how the user might fix or work around this error.
	Hint string

	// Operation identifies what was being done when the error occurred.
	// Examples: "Tokenize", "ParseStatement", "AnalyzeSelect".
	Operation string

	// Component identifies the subsystem where the error originated.
	// Examples: "Lexer", "Parser", "Analyzer", "TypeInferrer".
	Component string

	// Cause is the underlying error that triggered this database error.
	Cause error

	// Stack contains the call stack where this error was created.
	Stack []uintptr
}

// New creates a new DBError with the specified code, category, and message.
func New(category ErrorCategory, code, message string) *DBError {
	return &DBError{
		Code:     code,
		Category: category,
		Message:  message,
		Stack:    captureStack(),
	}
}

// Newf is New with a formatted message.
func Newf(category ErrorCategory, code, format string, args ...any) *DBError {
	return &DBError{
		Code:     code,
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Stack:    captureStack(),
	}
}

// Wrap wraps an existing error with database-specific context information.
// If the error is already a DBError, it enriches the existing error with
// operation and component context (only if not already set).
func Wrap(err error, code, operation, component string) *DBError {
	if err == nil {
		return nil
	}

	var dbErr *DBError
	if errors.As(err, &dbErr) {
		if dbErr.Operation == "" {
			dbErr.Operation = operation
		}
		if dbErr.Component == "" {
			dbErr.Component = component
		}
		return dbErr
	}

	return &DBError{
		Code:      code,
		Category:  ErrCategorySystem,
		Message:   err.Error(),
		Operation: operation,
		Component: component,
		Cause:     err,
		Stack:     captureStack(),
	}
}

// WithDetail sets Detail and returns the receiver for chaining.
func (e *DBError) WithDetail(format string, args ...any) *DBError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithHint sets Hint and returns the receiver for chaining.
func (e *DBError) WithHint(hint string) *DBError {
	e.Hint = hint
	return e
}

// In records where the error was raised.
func (e *DBError) In(component, operation string) *DBError {
	e.Component = component
	e.Operation = operation
	return e
}

// HasCode reports whether any DBError in err's chain carries code.
func HasCode(err error, code string) bool {
	for err != nil {
		var dbErr *DBError
		if !errors.As(err, &dbErr) {
			return false
		}
		if dbErr.Code == code {
			return true
		}
		err = dbErr.Cause
	}
	return false
}

// CategoryOf returns the category of the first DBError in err's chain.
func CategoryOf(err error) (ErrorCategory, bool) {
	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return dbErr.Category, true
	}
	return 0, false
}

// captureStack captures the current call stack for debugging purposes.
// It skips the first 3 frames to exclude captureStack, New/Wrap, and the
// immediate caller, focusing on the actual error origin.
func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[0:n]
}

// Error implements the standard Go error interface
//
// The format follows the pattern:
// [ERROR_CODE] Message: Detail (operation: Operation, component: Component) caused by: underlying error
func (e *DBError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}

	if e.Operation != "" {
		fmt.Fprintf(&b, " (operation: %s", e.Operation)
		if e.Component != "" {
			fmt.Fprintf(&b, ", component: %s", e.Component)
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		fmt.Fprintf(&b, " caused by: %v", e.Cause)
	}

	return b.String()
}

// Unwrap returns the underlying cause error, enabling error chain traversal
// with Go's standard error handling functions like errors.Is and errors.As.
func (e *DBError) Unwrap() error {
	return e.Cause
}

// FormatStack returns a human-readable stack trace for debugging purposes.
func (e *DBError) FormatStack() string {
	if len(e.Stack) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.Stack)

	b.WriteString("Stack trace:\n")
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "  %s\n    %s:%d\n", f.Function, f.File, f.Line)
		if !more {
			break
		}
	}

	return b.String()
}
