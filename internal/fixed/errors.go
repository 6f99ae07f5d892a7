package fixed

import (
	"errors"
	"fmt"
)

// Errors reported by fixed-point operations and the functions built on them.
var (
	// ErrOverflow indicates a result was saturated to the format bounds.
	ErrOverflow = errors.New("fixed: result saturated (overflow)")

	// ErrDomain indicates an input outside the mathematical domain of an operation.
	ErrDomain = errors.New("fixed: input outside operation domain")

	// ErrDivideByZero indicates a division by zero.
	ErrDivideByZero = fmt.Errorf("%w: division by zero", ErrDomain)
)

// DomainError wraps a domain failure with the offending operation and input.
type DomainError struct {
	Op      string
	Value   float64
	Reason  string
	Wrapped error
}

// NewDomainError returns a DomainError wrapping ErrDomain.
func NewDomainError(op string, value float64, reason string) *DomainError {
	return &DomainError{Op: op, Value: value, Reason: reason, Wrapped: ErrDomain}
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s(%g): %s: %v", e.Op, e.Value, e.Reason, e.Wrapped)
}

func (e *DomainError) Unwrap() error {
	return e.Wrapped
}
