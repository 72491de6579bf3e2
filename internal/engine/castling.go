package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// castleMove resolves a king move onto its own rook. Neither piece may
// have moved, both must stand on the colour's back rank, the squares
// between them must be empty and the king may not start on, cross or
// land on a covered square. The king ends two squares toward the rook
// and the rook lands on the square the king crossed.
func (b *Board) castleMove(king, rook *Piece) (Move, bool) {
	if rook.kind != chess.Rook || king.moved || rook.moved {
		return Move{}, false
	}
	rank := chess.BackRank(king.colour)
	if king.sq.Y != rank || rook.sq.Y != rank {
		return Move{}, false
	}

	dist := rook.sq.X - king.sq.X
	if abs(dist) < 3 {
		return Move{}, false
	}
	if !b.isPathClear(king.sq, rook.sq) {
		return Move{}, false
	}

	dir := sign(dist)
	opp := king.colour.Opposite()
	for i := 0; i <= 2; i++ {
		if b.isAttacked(king.sq.Offset(i*dir, 0), opp) {
			return Move{}, false
		}
	}

	mv := b.newMove(king, rook.sq)
	mv.Kind = Castle
	mv.KingTo = king.sq.Offset(2*dir, 0)
	mv.RookFrom = rook.sq
	mv.RookTo = king.sq.Offset(dir, 0)
	return mv, true
}

// castlingTargets returns the squares of the colour's unmoved rooks.
func (b *Board) castlingTargets(colour chess.Colour) []chess.Square {
	var out []chess.Square
	for _, p := range b.pieces {
		if p != nil && p.kind == chess.Rook && p.colour == colour && !p.moved {
			out = append(out, p.sq)
		}
	}
	return out
}
