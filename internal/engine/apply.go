package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ApplyMove validates and executes a move request. A rejected request
// leaves the board untouched and returns a Rejected outcome together with
// a *errors.MoveError wrapping the reason's sentinel. A pawn reaching its
// farthest rank returns PromotionPending; the turn completes on Promote.
func (b *Board) ApplyMove(from, to chess.Square) (Outcome, error) {
	if b.pending != nil {
		return b.reject(PromotionAwaited, from, to, nil)
	}
	if !from.InBounds() || !to.InBounds() {
		return b.reject(OutOfBounds, from, to, nil)
	}

	p := b.at(from)
	if p == nil {
		return b.reject(NoPieceAtSource, from, to, nil)
	}
	if p.colour != b.WhoseTurn() {
		return b.reject(NotYourTurn, from, to, p)
	}

	mv, ok := b.legal(p, to)
	if !ok {
		return b.reject(IllegalGeometry, from, to, p)
	}
	if b.leavesKingInCheck(mv) {
		return b.reject(LeavesKingInCheck, from, to, p)
	}

	return b.commit(p, mv), nil
}

func (b *Board) reject(reason RejectReason, from, to chess.Square, p *Piece) (Outcome, error) {
	err := &errors.MoveError{
		Err:  reason.Sentinel(),
		Turn: b.turn,
		From: from.String(),
		To:   to.String(),
	}
	if p != nil {
		err.Piece = fmt.Sprintf("%s %s", p.colour, p.kind)
	}
	return Outcome{Status: Rejected, Colour: b.WhoseTurn(), Reason: reason}, err
}

// leavesKingInCheck reports whether the mover's king would be attacked
// after mv.
func (b *Board) leavesKingInCheck(mv Move) bool {
	return b.simulate(mv, func() bool { return b.inCheck(mv.Colour) })
}

// commit executes a validated move for real.
func (b *Board) commit(p *Piece, mv Move) Outcome {
	b.execute(mv)
	if mv.Kind == DoubleAdvance {
		p.epMark = b.turn
	}
	mv.Turn = b.turn
	b.history = append(b.history, mv)

	if mv.Promotes {
		b.pending = p
		return Outcome{Status: PromotionPending, Colour: p.colour, Move: mv}
	}

	b.completeTurn()
	return Outcome{Status: Applied, Colour: mv.Colour, Move: mv}
}

// completeTurn hands the move to the other side. The turn advances before
// the flags are computed so the mate search sees en-passant replies.
func (b *Board) completeTurn() {
	b.refresh()
	b.turn++
	b.reversed = !b.reversed
	b.updateFlags()
}

// updateFlags recomputes check and checkmate for both sides.
func (b *Board) updateFlags() {
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		b.checked[c] = b.inCheck(c)
		b.mated[c] = b.checked[c] && !b.hasLegalMove(c)
	}
}
