package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// undoRecord holds what execute changed so restore can put it back.
type undoRecord struct {
	piece *Piece
	from  chess.Square
	moved bool

	captured *Piece

	rook      *Piece
	rookFrom  chess.Square
	rookMoved bool

	// covered is indexed like Board.pieces.
	covered [][]chess.Square
}

// simulate executes mv, runs probe against the resulting position and
// restores the board before returning, even if probe panics.
func (b *Board) simulate(mv Move, probe func() bool) bool {
	undo := b.hypothetical(mv)
	defer b.restore(undo)
	return probe()
}

// hypothetical applies mv without any validation and returns the record
// needed to reverse it. En-passant marks, the turn counter and the check
// flags are left untouched.
func (b *Board) hypothetical(mv Move) *undoRecord {
	u := &undoRecord{covered: make([][]chess.Square, len(b.pieces))}
	for i, p := range b.pieces {
		if p != nil {
			u.covered[i] = p.covered
		}
	}

	u.piece = b.at(mv.From)
	u.from = u.piece.sq
	u.moved = u.piece.moved
	if mv.Kind == Castle {
		u.rook = b.at(mv.RookFrom)
		u.rookFrom = u.rook.sq
		u.rookMoved = u.rook.moved
	}

	u.captured = b.execute(mv)
	return u
}

// restore reverses a hypothetical move.
func (b *Board) restore(u *undoRecord) {
	if u.rook != nil {
		u.rook.sq = u.rookFrom
		u.rook.moved = u.rookMoved
	}
	u.piece.sq = u.from
	u.piece.moved = u.moved
	if u.captured != nil {
		b.pieces[u.captured.id] = u.captured
	}

	b.rebuildPlacement()
	for i, p := range b.pieces {
		if p != nil {
			p.covered = u.covered[i]
		}
	}
}

// execute relocates pieces for mv and refreshes the board. It trusts mv
// completely and returns the captured piece, if any.
func (b *Board) execute(mv Move) *Piece {
	p := b.at(mv.From)

	if mv.Kind == Castle {
		rook := b.at(mv.RookFrom)
		p.sq, p.moved = mv.KingTo, true
		rook.sq, rook.moved = mv.RookTo, true
		b.refresh()
		return nil
	}

	var victim *Piece
	if mv.IsCapture() {
		victim = b.at(mv.CapturedSquare)
		b.pieces[victim.id] = nil
	}
	p.sq, p.moved = mv.To, true
	b.refresh()
	return victim
}
