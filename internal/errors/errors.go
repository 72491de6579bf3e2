// Package errors provides sentinel errors and error types for the chess rules engine.
// It defines the rejection reasons a move or promotion request can fail with and
// a structured error type that preserves context while allowing error inspection
// with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for move rejections.
// Use these with errors.Is() to check for specific rejection reasons.
var (
	// ErrNotYourTurn indicates the piece at the source belongs to the side not on move.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrNoPieceAtSource indicates the source square is empty.
	ErrNoPieceAtSource = errors.New("no piece at source")

	// ErrIllegalGeometry indicates the piece cannot reach the target square.
	ErrIllegalGeometry = errors.New("illegal geometry")

	// ErrLeavesKingInCheck indicates the move would leave the mover's king attacked.
	ErrLeavesKingInCheck = errors.New("leaves king in check")

	// ErrOutOfBounds indicates a coordinate outside the board.
	ErrOutOfBounds = errors.New("square out of bounds")

	// ErrPromotionPending indicates a move was requested while a promotion awaits a piece choice.
	ErrPromotionPending = errors.New("promotion pending")
)

// Sentinel errors for promotion requests.
var (
	// ErrNoPendingPromotion indicates a promotion request with no pawn awaiting promotion.
	ErrNoPendingPromotion = errors.New("no promotion pending")

	// ErrWrongPromotionColour indicates a promotion request for the other colour.
	ErrWrongPromotionColour = errors.New("promotion pending for the other colour")

	// ErrInvalidPromotionPiece indicates a role a pawn cannot be promoted to.
	ErrInvalidPromotionPiece = errors.New("invalid promotion piece")
)

// Sentinel errors outside move handling.
var (
	// ErrInvalidSetup indicates a custom position that violates the board invariants.
	ErrInvalidSetup = errors.New("invalid board setup")

	// ErrGameNotFound indicates an unknown game id.
	ErrGameNotFound = errors.New("game not found")

	// ErrTooManyGames indicates the game registry is at capacity.
	ErrTooManyGames = errors.New("too many games")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps a rejection with the context of the attempted move.
// It implements the error interface and supports unwrapping via errors.Is()
// and errors.As().
type MoveError struct {
	Err   error  // The underlying sentinel
	Turn  int    // Turn number the move was attempted on
	From  string // Source square, e.g. "(4,6)"
	To    string // Target square
	Piece string // Piece at the source (if any), e.g. "White Pawn"
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Turn > 0 {
		parts = append(parts, fmt.Sprintf("turn %d", e.Turn))
	}

	if e.Piece != "" {
		parts = append(parts, e.Piece)
	}

	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("%s->%s", e.From, e.To))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	if context == "" {
		return "move rejected"
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
// It forwards to the standard library so callers need a single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
