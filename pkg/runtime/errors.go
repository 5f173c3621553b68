package runtime

import (
	"errors"
	"fmt"
)

// ErrorCategory is the closed taxonomy of fatal error kinds a SOL25
// program run can end in. The launcher (cmd/sol25) is the only place
// that maps a category to a process exit code; the core only needs to
// classify.
type ErrorCategory int

const (
	// StructureError covers invalid XML or AST structure: the front
	// end's contract was violated before evaluation ever started.
	StructureError ErrorCategory = iota
	// UndefinedClass covers a reference to an unknown class, or a
	// missing Main class / parameterless run method.
	UndefinedClass
	// DoesNotUnderstand covers a message sent with no method found
	// anywhere in the receiver's class hierarchy.
	DoesNotUnderstand
	// TypeMismatch covers an argument of the wrong class passed to a
	// built-in method that requires a specific one.
	TypeMismatch
	// ValueError covers a value-domain violation, such as division by
	// zero.
	ValueError
	// InternalError covers defects in the interpreter itself — not a
	// fault in the interpreted program.
	InternalError
)

func (c ErrorCategory) String() string {
	switch c {
	case StructureError:
		return "StructureError"
	case UndefinedClass:
		return "UndefinedClass"
	case DoesNotUnderstand:
		return "DoesNotUnderstand"
	case TypeMismatch:
		return "TypeMismatch"
	case ValueError:
		return "ValueError"
	case InternalError:
		return "InternalError"
	default:
		return fmt.Sprintf("ErrorCategory(%d)", int(c))
	}
}

// RuntimeError is the fatal, non-recoverable error every layer of the
// core returns on failure. User code cannot catch it: the evaluator
// short-circuits on the first one and unwinds every frame.
type RuntimeError struct {
	Category ErrorCategory
	Message  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// NewError constructs a RuntimeError in the given category.
func NewError(category ErrorCategory, format string, args ...any) *RuntimeError {
	return &RuntimeError{Category: category, Message: fmt.Sprintf(format, args...)}
}

// CategoryOf extracts the category from err if it is (or wraps) a
// *RuntimeError, defaulting to InternalError for anything else — a
// defect in the interpreter, not in the interpreted program.
func CategoryOf(err error) ErrorCategory {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Category
	}
	return InternalError
}
