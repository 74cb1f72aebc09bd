package testutil

import (
	"errors"
	"testing"
)

// errMockWrapped is a static error for testing that non-wrapped errors don't match sentinels.
var errMockWrapped = errors.New("wrapped: persist failed")

func TestMockErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrMockStoreUnavailable", ErrMockStoreUnavailable, "session store unavailable"},
		{"ErrMockPersistFailed", ErrMockPersistFailed, "persist failed"},
		{"ErrMockNotFound", ErrMockNotFound, "not found"},
		{"ErrMockDiskFull", ErrMockDiskFull, "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.want)
			}
		})
	}
}

func TestMockErrorsAreSentinelErrors(t *testing.T) {
	// Direct comparison should work
	if !errors.Is(ErrMockPersistFailed, ErrMockPersistFailed) {
		t.Error("ErrMockPersistFailed should be equal to itself")
	}

	// Non-wrapped errors should not match (standard Go error behavior)
	if errors.Is(errMockWrapped, ErrMockPersistFailed) {
		t.Error("non-wrapped error should not match sentinel")
	}
}
