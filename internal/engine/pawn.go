package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// pawnMove handles single and double advances, diagonal captures and en
// passant. Reaching the farthest rank marks the move as promoting.
func (b *Board) pawnMove(p *Piece, to chess.Square) (Move, bool) {
	fwd := p.colour.Forward()
	dx := to.X - p.sq.X
	dy := to.Y - p.sq.Y
	mv := b.newMove(p, to)

	switch {
	case dx == 0 && dy == fwd:
		if !b.isEmpty(to) {
			return Move{}, false
		}

	case dx == 0 && dy == 2*fwd:
		if p.sq.Y != chess.PawnHomeRank(p.colour) {
			return Move{}, false
		}
		if !b.isEmpty(p.sq.Offset(0, fwd)) || !b.isEmpty(to) {
			return Move{}, false
		}
		mv.Kind = DoubleAdvance

	case abs(dx) == 1 && dy == fwd:
		if mv.IsCapture() {
			break
		}
		victim := b.enPassantVictim(p, to)
		if victim == nil {
			return Move{}, false
		}
		mv.Kind = EnPassantCapture
		mv.Captured = chess.Pawn
		mv.CapturedSquare = victim.sq

	default:
		return Move{}, false
	}

	mv.Promotes = to.Y == chess.PromotionRank(p.colour)
	return mv, true
}

// enPassantVictim returns the pawn p may take en passant by moving to the
// empty square to, or nil. The victim must have double-advanced on the
// turn immediately before this one.
func (b *Board) enPassantVictim(p *Piece, to chess.Square) *Piece {
	if !b.isEmpty(to) {
		return nil
	}
	victim := b.at(chess.Sq(to.X, p.sq.Y))
	if victim == nil || victim.kind != chess.Pawn || victim.colour == p.colour {
		return nil
	}
	if victim.epMark == noMark || b.turn-victim.epMark != 1 {
		return nil
	}
	return victim
}
