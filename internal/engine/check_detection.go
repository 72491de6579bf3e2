package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// inCheck reports whether the colour's king stands on a square covered by
// the other side. It reads the covered fields as they are now, so callers
// must refresh after changing the board.
func (b *Board) inCheck(colour chess.Colour) bool {
	king := b.findKing(colour)
	return b.isAttacked(king.sq, colour.Opposite())
}

// isAttacked reports whether any live piece of colour by covers sq.
func (b *Board) isAttacked(sq chess.Square, by chess.Colour) bool {
	for _, p := range b.pieces {
		if p != nil && p.colour == by && p.covers(sq) {
			return true
		}
	}
	return false
}
