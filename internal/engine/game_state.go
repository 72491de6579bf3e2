package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// GameStatus summarizes where the game stands for the side to move.
type GameStatus int

const (
	InProgress GameStatus = iota
	Check
	Checkmate
	Stalemate
	AwaitingPromotion
)

// String returns the string representation of a game status.
func (s GameStatus) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case AwaitingPromotion:
		return "awaiting-promotion"
	}
	return "unknown"
}

// IsOver reports whether no further moves can be made.
func (s GameStatus) IsOver() bool {
	return s == Checkmate || s == Stalemate
}

// IsStalemate reports whether the colour is to move, is not in check and
// has no legal move.
func (b *Board) IsStalemate(colour chess.Colour) bool {
	if b.pending != nil || colour != b.WhoseTurn() {
		return false
	}
	return !b.checked[colour] && !b.hasLegalMove(colour)
}

// Status returns the state of the game for the side to move.
func (b *Board) Status() GameStatus {
	if b.pending != nil {
		return AwaitingPromotion
	}
	c := b.WhoseTurn()
	switch {
	case b.mated[c]:
		return Checkmate
	case b.checked[c]:
		return Check
	case !b.hasLegalMove(c):
		return Stalemate
	}
	return InProgress
}

// Snapshot is a detached copy of everything a client needs to draw the
// game and decide what to send next.
type Snapshot struct {
	Placement chess.Placement
	ToMove    chess.Colour
	Turn      int
	Status    GameStatus
	InCheck   [chess.NumColours]bool
	Mated     [chess.NumColours]bool
	// Promoting is set while Promote is awaited from ToMove.
	Promoting bool
	LastMove  *Move
}

// Snapshot captures the current state.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Placement: b.Placement(),
		ToMove:    b.WhoseTurn(),
		Turn:      b.turn,
		Status:    b.Status(),
		InCheck:   b.checked,
		Mated:     b.mated,
		Promoting: b.pending != nil,
	}
	if b.pending != nil {
		s.ToMove = b.pending.colour
	}
	if n := len(b.history); n > 0 {
		last := b.history[n-1]
		s.LastMove = &last
	}
	return s
}
