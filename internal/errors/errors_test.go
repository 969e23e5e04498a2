package errors

import (
	"fmt"
	"testing"
)

func TestLegErrorChain(t *testing.T) {
	err := NewLegError("strike", -5.0, "must be non-negative")

	if !Is(err, ErrInvalidLeg) {
		t.Error("leg errors should match ErrInvalidLeg")
	}

	var legErr *LegError
	if !As(err, &legErr) {
		t.Fatalf("expected *LegError, got %T", err)
	}
	if legErr.Field != "strike" {
		t.Errorf("field = %q, want strike", legErr.Field)
	}
}

func TestStoreErrorChain(t *testing.T) {
	cause := fmt.Errorf("disk I/O failure")
	err := NewStoreError("save_evaluation", "inserting row", cause)

	if !Is(err, ErrDatabaseError) {
		t.Error("store errors should match ErrDatabaseError")
	}
	if !Is(err, cause) {
		t.Error("store errors should unwrap to their cause")
	}
	if Is(err, ErrNotFound) {
		t.Error("store errors should not match unrelated sentinels")
	}
}

func TestWrapHelpers(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should be nil")
	}

	wrapped := Wrap(ErrNotFound, "loading evaluation")
	if !Is(wrapped, ErrNotFound) {
		t.Error("wrapped errors should keep their sentinel")
	}
	if got, want := wrapped.Error(), "loading evaluation: record not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
