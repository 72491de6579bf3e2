// Package engine provides chess move validation and the authoritative board state.
//
// A Board is a single-writer object: every operation runs to completion on the
// caller's goroutine and the Board performs no locking. Callers that share a
// Board between goroutines must serialize access themselves (see package session).
package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Board holds the authoritative state of one game.
type Board struct {
	// pieces owns every piece created for the game. Captured pieces leave a
	// nil slot so indices stay stable for undo.
	pieces []*Piece

	// placement[x][y] points into pieces for O(1) square lookup.
	placement [chess.Width][chess.Height]*Piece

	// reversed is false while White is to move.
	reversed bool

	// turn starts at 1 and grows by one per completed move.
	turn int

	checked [chess.NumColours]bool
	mated   [chess.NumColours]bool

	// pending is the pawn waiting for a promotion choice.
	pending *Piece

	history []Move
}

var backRank = [chess.Width]chess.PieceType{
	chess.Rook, chess.Knight, chess.Bishop, chess.Queen,
	chess.King, chess.Bishop, chess.Knight, chess.Rook,
}

// NewGame creates a board in the standard starting position, White to move.
func NewGame() *Board {
	b := &Board{turn: 1}

	for x := 0; x < chess.Width; x++ {
		b.addPiece(backRank[x], chess.Black, chess.Sq(x, chess.BackRank(chess.Black)))
	}
	for x := 0; x < chess.Width; x++ {
		b.addPiece(chess.Pawn, chess.Black, chess.Sq(x, chess.PawnHomeRank(chess.Black)))
	}
	for x := 0; x < chess.Width; x++ {
		b.addPiece(chess.Pawn, chess.White, chess.Sq(x, chess.PawnHomeRank(chess.White)))
	}
	for x := 0; x < chess.Width; x++ {
		b.addPiece(backRank[x], chess.White, chess.Sq(x, chess.BackRank(chess.White)))
	}

	b.refresh()
	b.updateFlags()
	return b
}

// NewBoardFrom creates a board from a custom position. The position must
// satisfy the board invariants: every square on the board, no two pieces
// on one square, exactly one king per colour and no pawn on its
// promotion rank.
func NewBoardFrom(setup []chess.Setup, toMove chess.Colour) (*Board, error) {
	b := &Board{turn: 1, reversed: toMove == chess.Black}
	var kings [chess.NumColours]int

	for _, s := range setup {
		if !s.Square.InBounds() {
			return nil, fmt.Errorf("%s %s off the board at %v: %w", s.Colour, s.Type, s.Square, errors.ErrInvalidSetup)
		}
		if s.Type <= chess.NoPiece || s.Type >= chess.NumPieceTypes {
			return nil, fmt.Errorf("unknown piece type %d at %v: %w", s.Type, s.Square, errors.ErrInvalidSetup)
		}
		if s.Colour != chess.White && s.Colour != chess.Black {
			return nil, fmt.Errorf("unknown colour %d at %v: %w", s.Colour, s.Square, errors.ErrInvalidSetup)
		}
		if other := b.at(s.Square); other != nil {
			return nil, fmt.Errorf("%v occupied twice (%s and %s %s): %w",
				s.Square, other, s.Colour, s.Type, errors.ErrInvalidSetup)
		}
		if s.Type == chess.Pawn && s.Square.Y == chess.PromotionRank(s.Colour) {
			return nil, fmt.Errorf("%s pawn on its promotion rank at %v: %w", s.Colour, s.Square, errors.ErrInvalidSetup)
		}
		if s.Type == chess.King {
			kings[s.Colour]++
		}
		p := b.addPiece(s.Type, s.Colour, s.Square)
		p.moved = s.Moved
	}

	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if kings[c] != 1 {
			return nil, fmt.Errorf("%d %s kings: %w", kings[c], c, errors.ErrInvalidSetup)
		}
	}

	b.refresh()
	// The side not on move may not start in check.
	if b.inCheck(toMove.Opposite()) {
		return nil, fmt.Errorf("%s in check with %s to move: %w", toMove.Opposite(), toMove, errors.ErrInvalidSetup)
	}
	b.updateFlags()
	return b, nil
}

// addPiece appends a piece to the collection and places it.
func (b *Board) addPiece(kind chess.PieceType, colour chess.Colour, sq chess.Square) *Piece {
	p := newPiece(len(b.pieces), kind, colour, sq)
	b.pieces = append(b.pieces, p)
	b.placement[sq.X][sq.Y] = p
	return p
}

// at returns the piece on sq, or nil for an empty or off-board square.
func (b *Board) at(sq chess.Square) *Piece {
	if !sq.InBounds() {
		return nil
	}
	return b.placement[sq.X][sq.Y]
}

// isEmpty reports whether an on-board square holds no piece.
func (b *Board) isEmpty(sq chess.Square) bool {
	return sq.InBounds() && b.placement[sq.X][sq.Y] == nil
}

// isOpponent reports whether sq holds a piece of the other colour.
func (b *Board) isOpponent(sq chess.Square, colour chess.Colour) bool {
	p := b.at(sq)
	return p != nil && p.colour != colour
}

// isEmptyOrOpponent is the destination rule shared by every piece but the pawn.
func (b *Board) isEmptyOrOpponent(sq chess.Square, colour chess.Colour) bool {
	if !sq.InBounds() {
		return false
	}
	p := b.placement[sq.X][sq.Y]
	return p == nil || p.colour != colour
}

// WhoseTurn returns the colour to move.
func (b *Board) WhoseTurn() chess.Colour {
	if b.reversed {
		return chess.Black
	}
	return chess.White
}

// TurnNumber returns the current turn counter. It starts at 1.
func (b *Board) TurnNumber() int {
	return b.turn
}

// IsInCheck reports whether the colour's king was attacked after the last
// completed move.
func (b *Board) IsInCheck(colour chess.Colour) bool {
	return b.checked[colour]
}

// IsCheckmated reports whether the colour was checkmated by the last
// completed move.
func (b *Board) IsCheckmated(colour chess.Colour) bool {
	return b.mated[colour]
}

// PendingPromotion returns the colour that must choose a promotion piece.
func (b *Board) PendingPromotion() (chess.Colour, bool) {
	if b.pending == nil {
		return chess.White, false
	}
	return b.pending.colour, true
}

// Placement returns a read-only snapshot of the grid for rendering.
func (b *Board) Placement() chess.Placement {
	var out chess.Placement
	for x := 0; x < chess.Width; x++ {
		for y := 0; y < chess.Height; y++ {
			if p := b.placement[x][y]; p != nil {
				out[x][y] = chess.Occupant{Type: p.kind, Colour: p.colour}
			}
		}
	}
	return out
}

// PieceAt returns a copy of the piece on sq.
func (b *Board) PieceAt(sq chess.Square) (Piece, bool) {
	p := b.at(sq)
	if p == nil {
		return Piece{}, false
	}
	return p.snapshot(), true
}

// Pieces returns copies of all live pieces in collection order.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, len(b.pieces))
	for _, p := range b.pieces {
		if p != nil {
			out = append(out, p.snapshot())
		}
	}
	return out
}

// History returns the committed moves in order.
func (b *Board) History() []Move {
	out := make([]Move, len(b.history))
	copy(out, b.history)
	return out
}

// findKing returns the colour's king. A missing king means an earlier bug
// corrupted the board, so it panics rather than guess.
func (b *Board) findKing(colour chess.Colour) *Piece {
	for _, p := range b.pieces {
		if p != nil && p.kind == chess.King && p.colour == colour {
			return p
		}
	}
	panic(fmt.Sprintf("engine: no %s king on the board", colour))
}

// checkInvariants verifies the placement grid against the piece collection.
// It returns a descriptive error instead of panicking so tests can report it.
func (b *Board) checkInvariants() error {
	var kings [chess.NumColours]int
	live := 0
	for i, p := range b.pieces {
		if p == nil {
			continue
		}
		live++
		if p.id != i {
			return fmt.Errorf("piece %s stored at slot %d has id %d", p, i, p.id)
		}
		if !p.sq.InBounds() {
			return fmt.Errorf("piece %s off the board", p)
		}
		if b.placement[p.sq.X][p.sq.Y] != p {
			return fmt.Errorf("placement at %v does not hold %s", p.sq, p)
		}
		if p.kind == chess.King {
			kings[p.colour]++
		}
	}
	placed := 0
	for x := 0; x < chess.Width; x++ {
		for y := 0; y < chess.Height; y++ {
			if p := b.placement[x][y]; p != nil {
				placed++
				if p.sq != chess.Sq(x, y) {
					return fmt.Errorf("placement at (%d,%d) holds %s", x, y, p)
				}
			}
		}
	}
	if placed != live {
		return fmt.Errorf("%d squares occupied but %d live pieces", placed, live)
	}
	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return fmt.Errorf("kings white=%d black=%d", kings[chess.White], kings[chess.Black])
	}
	return nil
}
