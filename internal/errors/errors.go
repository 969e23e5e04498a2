// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidLeg      = errors.New("invalid leg")
	ErrEmptyStrategy   = errors.New("strategy has no legs")
	ErrInvalidRange    = errors.New("invalid price range")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrNotFound        = errors.New("record not found")
	ErrDatabaseError   = errors.New("database error")
	ErrConfigInvalid   = errors.New("invalid configuration")
)

// LegError reports a leg that violates a construction invariant. It carries
// the offending field and the value exactly as supplied.
type LegError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *LegError) Error() string {
	return fmt.Sprintf("invalid leg: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *LegError) Unwrap() error {
	return ErrInvalidLeg
}

// NewLegError creates a new LegError.
func NewLegError(field string, value interface{}, message string) *LegError {
	return &LegError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// RangeError reports an unusable evaluation range or step.
type RangeError struct {
	Min     float64
	Max     float64
	Step    float64
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range [%v, %v] step %v: %s", e.Min, e.Max, e.Step, e.Message)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// NewRangeError creates a new RangeError.
func NewRangeError(min, max, step float64, message string) *RangeError {
	return &RangeError{
		Min:     min,
		Max:     max,
		Step:    step,
		Message: message,
	}
}

// StrategyError represents an error building or resolving a named strategy.
type StrategyError struct {
	Strategy string
	Message  string
	Err      error
}

func (e *StrategyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("strategy error [%s]: %s: %v", e.Strategy, e.Message, e.Err)
	}
	return fmt.Sprintf("strategy error [%s]: %s", e.Strategy, e.Message)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// NewStrategyError creates a new StrategyError.
func NewStrategyError(strategy, message string, err error) *StrategyError {
	return &StrategyError{
		Strategy: strategy,
		Message:  message,
		Err:      err,
	}
}

// StoreError represents a persistence-layer error.
type StoreError struct {
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store error [%s]: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("store error [%s]: %s", e.Operation, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is matches every store error against the ErrDatabaseError sentinel.
func (e *StoreError) Is(target error) bool {
	return target == ErrDatabaseError
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation, message string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
