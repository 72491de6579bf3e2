package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// pieceRules is one row of the rule table: how a piece type moves and what
// it threatens.
type pieceRules struct {
	// legal resolves a move of p to the target, or reports false when the
	// geometry does not allow it. It ignores whether the mover's king is
	// left in check.
	legal func(b *Board, p *Piece, to chess.Square) (Move, bool)
	cover func(b *Board, p *Piece) []chess.Square
}

// rulebook is indexed by piece type. NoPiece has no rules.
var rulebook = [chess.NumPieceTypes]pieceRules{
	chess.Pawn:   {legal: (*Board).pawnMove, cover: (*Board).pawnCoverage},
	chess.Knight: {legal: (*Board).knightMove, cover: (*Board).knightCoverage},
	chess.Bishop: {legal: (*Board).bishopMove, cover: (*Board).bishopCoverage},
	chess.Rook:   {legal: (*Board).rookMove, cover: (*Board).rookCoverage},
	chess.Queen:  {legal: (*Board).queenMove, cover: (*Board).queenCoverage},
	chess.King:   {legal: (*Board).kingMove, cover: (*Board).kingCoverage},
}

// legal dispatches to the rule table.
func (b *Board) legal(p *Piece, to chess.Square) (Move, bool) {
	if !to.InBounds() || to == p.sq {
		return Move{}, false
	}
	r := rulebook[p.kind]
	if r.legal == nil {
		panic(fmt.Sprintf("engine: no rules for piece type %s", p.kind))
	}
	return r.legal(b, p, to)
}

// newMove resolves a plain relocation of p to the target, capturing
// whatever opposing piece stands there.
func (b *Board) newMove(p *Piece, to chess.Square) Move {
	mv := Move{
		Kind:   NormalMove,
		Piece:  p.kind,
		Colour: p.colour,
		From:   p.sq,
		To:     to,
	}
	if victim := b.at(to); victim != nil && victim.colour != p.colour {
		mv.Captured = victim.kind
		mv.CapturedSquare = to
	}
	return mv
}

func (b *Board) knightMove(p *Piece, to chess.Square) (Move, bool) {
	dx := abs(to.X - p.sq.X)
	dy := abs(to.Y - p.sq.Y)
	if !((dx == 1 && dy == 2) || (dx == 2 && dy == 1)) {
		return Move{}, false
	}
	if !b.isEmptyOrOpponent(to, p.colour) {
		return Move{}, false
	}
	return b.newMove(p, to), true
}

func (b *Board) bishopMove(p *Piece, to chess.Square) (Move, bool) {
	if !isDiagonal(p.sq, to) {
		return Move{}, false
	}
	return b.slide(p, to)
}

func (b *Board) rookMove(p *Piece, to chess.Square) (Move, bool) {
	if !isStraight(p.sq, to) {
		return Move{}, false
	}
	return b.slide(p, to)
}

func (b *Board) queenMove(p *Piece, to chess.Square) (Move, bool) {
	if !isDiagonal(p.sq, to) && !isStraight(p.sq, to) {
		return Move{}, false
	}
	return b.slide(p, to)
}

// slide finishes a line move once the direction is known to be valid.
func (b *Board) slide(p *Piece, to chess.Square) (Move, bool) {
	if !b.isEmptyOrOpponent(to, p.colour) || !b.isPathClear(p.sq, to) {
		return Move{}, false
	}
	return b.newMove(p, to), true
}

// kingMove accepts one step in any direction. A king aimed at its own
// rook is a castling request.
func (b *Board) kingMove(p *Piece, to chess.Square) (Move, bool) {
	if target := b.at(to); target != nil && target.colour == p.colour {
		return b.castleMove(p, target)
	}
	if abs(to.X-p.sq.X) > 1 || abs(to.Y-p.sq.Y) > 1 {
		return Move{}, false
	}
	return b.newMove(p, to), true
}
