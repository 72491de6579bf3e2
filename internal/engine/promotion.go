package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Promote replaces the pawn waiting on its farthest rank with kind and
// completes the turn. kind must be a knight, bishop, rook or queen and
// colour must be the side that moved the pawn. It returns a copy of the
// promoted piece.
func (b *Board) Promote(kind chess.PieceType, colour chess.Colour) (Piece, error) {
	if b.pending == nil {
		return Piece{}, fmt.Errorf("promote to %s for %s: %w", kind, colour, errors.ErrNoPendingPromotion)
	}
	if b.pending.colour != colour {
		return Piece{}, fmt.Errorf("promote to %s for %s, %s to choose: %w",
			kind, colour, b.pending.colour, errors.ErrWrongPromotionColour)
	}
	if !kind.IsPromotionTarget() {
		return Piece{}, fmt.Errorf("promote to %s: %w", kind, errors.ErrInvalidPromotionPiece)
	}

	p := b.pending
	p.kind = kind
	b.pending = nil
	if n := len(b.history); n > 0 {
		b.history[n-1].Promotion = kind
	}

	b.completeTurn()
	return p.snapshot(), nil
}
