package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// These tests verify the assertion helpers pass on matching input.
// Since we can't mock *testing.T, failures are not exercised here.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, 42, 42)
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, nil, nil)
}

func TestAssertEqual_WithOptions(t *testing.T) {
	AssertEqual(t, []int{3, 1, 2}, []int{1, 2, 3}, cmpopts.SortSlices(func(a, b int) bool { return a < b }))
}

func TestAssertNoError_Success(t *testing.T) {
	AssertNoError(t, nil)
}

func TestAssertErrorIs_Success(t *testing.T) {
	AssertErrorIs(t, errors.ErrGameNotFound, errors.ErrGameNotFound)
	AssertErrorIs(t, fmt.Errorf("game g1: %w", errors.ErrGameNotFound), errors.ErrGameNotFound)
}

func TestAssertContains_Success(t *testing.T) {
	AssertContains(t, "hello world", "world")
	AssertContains(t, "test", "")
}
