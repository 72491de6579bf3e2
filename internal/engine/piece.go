package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// noMark is the en-passant mark of a pawn that never double-advanced.
const noMark = -1

// Piece is a single piece owned by a Board. Only the board mutates it;
// callers receive copies through the accessors on Board.
type Piece struct {
	id      int
	kind    chess.PieceType
	colour  chess.Colour
	sq      chess.Square
	moved   bool
	epMark  int
	covered []chess.Square
}

func newPiece(id int, kind chess.PieceType, colour chess.Colour, sq chess.Square) *Piece {
	return &Piece{
		id:     id,
		kind:   kind,
		colour: colour,
		sq:     sq,
		epMark: noMark,
	}
}

// ID returns the piece's index in the board's piece collection.
func (p Piece) ID() int { return p.id }

// Type returns the piece type.
func (p Piece) Type() chess.PieceType { return p.kind }

// Colour returns the piece colour.
func (p Piece) Colour() chess.Colour { return p.colour }

// Square returns the piece position.
func (p Piece) Square() chess.Square { return p.sq }

// HasMoved reports whether the piece has moved since the game started.
func (p Piece) HasMoved() bool { return p.moved }

// EnPassantMark returns the turn on which the pawn double-advanced.
func (p Piece) EnPassantMark() (int, bool) {
	return p.epMark, p.epMark != noMark
}

// CoveredFields returns the squares the piece currently threatens.
func (p Piece) CoveredFields() []chess.Square {
	out := make([]chess.Square, len(p.covered))
	copy(out, p.covered)
	return out
}

// String returns e.g. "White Pawn (4,6)".
func (p Piece) String() string {
	return fmt.Sprintf("%s %s %s", p.colour, p.kind, p.sq)
}

// covers reports whether sq is among the piece's covered fields.
func (p *Piece) covers(sq chess.Square) bool {
	for _, c := range p.covered {
		if c == sq {
			return true
		}
	}
	return false
}

// snapshot returns a detached copy.
func (p *Piece) snapshot() Piece {
	cp := *p
	cp.covered = p.CoveredFields()
	return cp
}
