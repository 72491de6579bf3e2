// Package testutil provides shared test utilities for the chess rules engine.
package testutil

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
// Options are passed through to cmp, e.g. cmp.AllowUnexported for engine pieces.
func AssertEqual(t testing.TB, got, want interface{}, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// AssertNoError fails the test immediately if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertErrorIs fails if err does not wrap target.
func AssertErrorIs(t testing.TB, err, target error) {
	t.Helper()
	if err == nil {
		t.Errorf("expected error wrapping %q but got nil", target)
		return
	}
	if !errors.Is(err, target) {
		t.Errorf("error %q does not wrap %q", err, target)
	}
}

// AssertContains fails if substr is not found in got.
func AssertContains(t testing.TB, got, substr string) {
	t.Helper()
	if !strings.Contains(got, substr) {
		t.Errorf("%q does not contain %q", got, substr)
	}
}
