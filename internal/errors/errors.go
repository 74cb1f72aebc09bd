// Package errors provides centralized error handling for baton.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// Business-rule violations (missing dependency, exhausted budget, wrong state)
// are NOT errors in baton: they surface as task status transitions plus a
// transcript message. The sentinels below cover the store boundary and
// caller-input problems only.
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrSessionNotFound indicates the requested session does not exist
	// for the given owner.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists indicates an attempt to create a session record that
	// already exists.
	ErrSessionExists = errors.New("session already exists")

	// ErrSessionCorrupted indicates the stored session blob is unreadable.
	ErrSessionCorrupted = errors.New("session record corrupted")

	// ErrVersionConflict indicates an optimistic-concurrency failure: the
	// stored record changed between load and persist.
	ErrVersionConflict = errors.New("session version conflict")

	// ErrLockTimeout indicates a file lock could not be acquired within the
	// timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrTaskNotFound indicates the requested task is not part of the session.
	ErrTaskNotFound = errors.New("task not found")

	// ErrGrantNotFound indicates the requested grant is not part of the session.
	ErrGrantNotFound = errors.New("grant not found")

	// ErrInvalidTransition indicates an attempt to make an invalid task
	// state transition.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrMissionFileInvalid indicates a mission file could not be parsed.
	ErrMissionFileInvalid = errors.New("mission file invalid")
)
