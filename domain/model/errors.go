package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// ValidationError reports a structural violation found while loading a dashboard.
// Platform is set when the violation concerns one platform, Index is the record
// index when it concerns the engagement series (-1 otherwise).
type ValidationError struct {
	Platform PlatformID
	Index    int
	Reason   string
}

func newPlatformViolation(platform PlatformID, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Platform: platform, Index: -1, Reason: fmt.Sprintf(format, args...)}
}

func newRecordViolation(index int, platform PlatformID, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Platform: platform, Index: index, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index >= 0 && e.Platform != "":
		return fmt.Sprintf("validation error: record %d, platform %q: %s", e.Index, e.Platform, e.Reason)
	case e.Index >= 0:
		return fmt.Sprintf("validation error: record %d: %s", e.Index, e.Reason)
	case e.Platform != "":
		return fmt.Sprintf("validation error: platform %q: %s", e.Platform, e.Reason)
	default:
		return "validation error: " + e.Reason
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError is returned by lookups given an unknown platform identifier.
type NotFoundError struct {
	Platform PlatformID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("platform %q not found", e.Platform)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
