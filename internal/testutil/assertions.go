package testutil

import (
	"errors"
	"testing"

	apperrors "moolah/internal/errors"
)

// AssertAppError fails the test unless err carries an *AppError with the
// expected code (e.g. "CATEGORY_NOT_FOUND", "INVALID_INPUT") somewhere in
// its chain.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	var appErr *apperrors.AppError
	switch {
	case err == nil:
		t.Fatalf("expected %s, got no error", expectedCode)
	case !errors.As(err, &appErr):
		t.Fatalf("expected %s, got %T: %v", expectedCode, err, err)
	case appErr.Code != expectedCode:
		t.Errorf("expected %s, got %s (%s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
