package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// candidateTargets returns every square a move of p could possibly reach:
// its covered fields, the pawn's forward squares and, for a king, its own
// unmoved rooks.
func (b *Board) candidateTargets(p *Piece) []chess.Square {
	out := append([]chess.Square(nil), p.covered...)
	switch p.kind {
	case chess.Pawn:
		fwd := p.colour.Forward()
		out = append(out, p.sq.Offset(0, fwd), p.sq.Offset(0, 2*fwd))
	case chess.King:
		out = append(out, b.castlingTargets(p.colour)...)
	}
	return out
}

// legalMovesFor resolves every fully legal move of p. If first is set it
// stops at the first one found.
func (b *Board) legalMovesFor(p *Piece, first bool) []Move {
	var out []Move
	for _, to := range b.candidateTargets(p) {
		mv, ok := b.legal(p, to)
		if !ok || b.leavesKingInCheck(mv) {
			continue
		}
		out = append(out, mv)
		if first {
			break
		}
	}
	return out
}

// hasLegalMove reports whether the colour has any move that does not
// leave its king in check.
func (b *Board) hasLegalMove(colour chess.Colour) bool {
	for _, p := range b.pieces {
		if p == nil || p.colour != colour {
			continue
		}
		if len(b.legalMovesFor(p, true)) > 0 {
			return true
		}
	}
	return false
}

// LegalMoves returns the resolved legal moves of the piece on from, in
// the order the candidates were probed. It is empty for an empty square,
// for the side not on move and while a promotion is pending.
func (b *Board) LegalMoves(from chess.Square) []Move {
	p := b.at(from)
	if p == nil || p.colour != b.WhoseTurn() || b.pending != nil {
		return nil
	}
	return b.legalMovesFor(p, false)
}

// LegalTargets returns the target squares of LegalMoves. Castling shows
// up as the rook's square.
func (b *Board) LegalTargets(from chess.Square) []chess.Square {
	moves := b.LegalMoves(from)
	if len(moves) == 0 {
		return nil
	}
	out := make([]chess.Square, len(moves))
	for i, mv := range moves {
		out[i] = mv.To
	}
	return out
}
