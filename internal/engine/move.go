package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// MoveKind categorizes the different ways a move changes the board.
type MoveKind int

const (
	NormalMove MoveKind = iota
	DoubleAdvance
	EnPassantCapture
	Castle
)

// String returns the string representation of a move kind.
func (k MoveKind) String() string {
	switch k {
	case NormalMove:
		return "normal"
	case DoubleAdvance:
		return "double-advance"
	case EnPassantCapture:
		return "en-passant"
	case Castle:
		return "castle"
	}
	return "unknown"
}

// Move is a resolved move: legality has established what it does to the board.
type Move struct {
	Kind   MoveKind
	Piece  chess.PieceType
	Colour chess.Colour
	From   chess.Square
	// To is the requested target. For castling this is the rook's square.
	To chess.Square

	// Captured is NoPiece unless the move removes an opposing piece.
	Captured       chess.PieceType
	CapturedSquare chess.Square

	// Castling only: where the king and rook end up.
	KingTo   chess.Square
	RookFrom chess.Square
	RookTo   chess.Square

	// Promotes is set when a pawn reaches its farthest rank.
	// Promotion holds the chosen piece once the promotion completes.
	Promotes  bool
	Promotion chess.PieceType

	// Turn is the turn number the move was committed on (0 for probes).
	Turn int
}

// IsCapture returns true if this move removes an opposing piece.
func (m Move) IsCapture() bool {
	return m.Captured != chess.NoPiece
}

// Status is the result class of a move request.
type Status int

const (
	Applied Status = iota
	PromotionPending
	Rejected
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case Applied:
		return "applied"
	case PromotionPending:
		return "promotion-pending"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// RejectReason names why a move request was refused.
type RejectReason int

const (
	NoReason RejectReason = iota
	NotYourTurn
	NoPieceAtSource
	IllegalGeometry
	LeavesKingInCheck
	OutOfBounds
	PromotionAwaited
)

// String returns the wire name of a reject reason.
func (r RejectReason) String() string {
	switch r {
	case NoReason:
		return ""
	case NotYourTurn:
		return "not-your-turn"
	case NoPieceAtSource:
		return "no-piece-at-source"
	case IllegalGeometry:
		return "illegal-geometry"
	case LeavesKingInCheck:
		return "leaves-king-in-check"
	case OutOfBounds:
		return "out-of-bounds"
	case PromotionAwaited:
		return "promotion-pending"
	}
	return "unknown"
}

// Sentinel returns the errors package sentinel for the reason.
func (r RejectReason) Sentinel() error {
	switch r {
	case NotYourTurn:
		return errors.ErrNotYourTurn
	case NoPieceAtSource:
		return errors.ErrNoPieceAtSource
	case IllegalGeometry:
		return errors.ErrIllegalGeometry
	case LeavesKingInCheck:
		return errors.ErrLeavesKingInCheck
	case OutOfBounds:
		return errors.ErrOutOfBounds
	case PromotionAwaited:
		return errors.ErrPromotionPending
	}
	return nil
}

// Outcome is what ApplyMove reports back to the caller.
type Outcome struct {
	Status Status
	// Colour is the mover. For PromotionPending it names the colour that
	// must call Promote next.
	Colour chess.Colour
	Reason RejectReason
	// Move is the resolved move for Applied and PromotionPending outcomes.
	Move Move
}
