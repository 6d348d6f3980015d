package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced by the record store.
var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrStoreUnavailable = errors.New("backing store unavailable")
	ErrAlreadyArchived  = errors.New("record is already archived")
	ErrDuplicateKey     = errors.New("product_no already exists")
)

// FieldViolation describes a single failed validation rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every failing field of an input, not just the first.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasField reports whether the error contains a violation for the named field.
func (e *ValidationError) HasField(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// violationList accumulates field violations during validation so callers
// see all problems in one round trip.
type violationList struct {
	violations []FieldViolation
}

func (l *violationList) add(field, format string, args ...any) {
	l.violations = append(l.violations, FieldViolation{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

func (l *violationList) err() error {
	if len(l.violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: l.violations}
}

// ConflictError is returned when an update presents a stale revision.
// It carries the current server-side record so the caller can re-merge.
type ConflictError struct {
	Current *Product
}

func (e *ConflictError) Error() string {
	if e.Current == nil {
		return "revision conflict"
	}
	return fmt.Sprintf("revision conflict on %s: record was changed by another session", e.Current.ProductNo())
}
