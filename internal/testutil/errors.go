// Package testutil provides testing utilities for baton.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockStoreUnavailable indicates a mock session store is unavailable (used in tests).
	ErrMockStoreUnavailable = errors.New("session store unavailable")

	// ErrMockPersistFailed indicates a mock persist failure (used in tests).
	ErrMockPersistFailed = errors.New("persist failed")

	// ErrMockNotFound indicates a mock resource was not found (used in tests).
	ErrMockNotFound = errors.New("not found")

	// ErrMockDiskFull indicates a mock disk-full write failure (used in tests).
	ErrMockDiskFull = errors.New("disk full")
)
