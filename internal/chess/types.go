// Package chess provides core chess types shared by the rules engine and its shells.
package chess

import (
	"fmt"
	"strings"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// NumColours is the number of colours, for arrays indexed by Colour.
const NumColours = 2

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the y step a pawn of this colour advances by.
// White starts at the bottom (y = 7) and moves towards y = 0.
func (c Colour) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// ParseColour parses "white"/"w" or "black"/"b", case-insensitively.
func ParseColour(s string) (Colour, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	}
	return Black, false
}

// PieceType represents a chess piece type.
type PieceType int

const (
	NoPiece PieceType = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceTypes
)

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece type (uppercase).
func (p PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// IsPromotionTarget reports whether a pawn may be promoted to this type.
func (p PieceType) IsPromotionTarget() bool {
	switch p {
	case Knight, Bishop, Rook, Queen:
		return true
	default:
		return false
	}
}

// ParsePieceType parses a piece name or letter ("queen", "q", "Knight", "n").
func ParsePieceType(s string) (PieceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pawn", "p":
		return Pawn, true
	case "knight", "n":
		return Knight, true
	case "bishop", "b":
		return Bishop, true
	case "rook", "r":
		return Rook, true
	case "queen", "q":
		return Queen, true
	case "king", "k":
		return King, true
	}
	return NoPiece, false
}

// Board dimensions.
const (
	Width  = 8
	Height = 8
)

// Square is a board coordinate. X is the file (0..7), Y the row with
// y = 0 on Black's back rank and y = 7 on White's.
type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Sq is shorthand for Square{X: x, Y: y}.
func Sq(x, y int) Square {
	return Square{X: x, Y: y}
}

// InBounds reports whether the square lies on the board.
func (s Square) InBounds() bool {
	return s.X >= 0 && s.X < Width && s.Y >= 0 && s.Y < Height
}

// Offset returns the square displaced by (dx, dy). It may be off the board.
func (s Square) Offset(dx, dy int) Square {
	return Square{X: s.X + dx, Y: s.Y + dy}
}

// String returns "(x,y)".
func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.X, s.Y)
}

// BackRank returns the y of the colour's home rank for pieces.
func BackRank(c Colour) int {
	if c == White {
		return Height - 1
	}
	return 0
}

// PawnHomeRank returns the y pawns of the colour start on.
func PawnHomeRank(c Colour) int {
	if c == White {
		return Height - 2
	}
	return 1
}

// PromotionRank returns the farthest y for pawns of the colour.
func PromotionRank(c Colour) int {
	if c == White {
		return 0
	}
	return Height - 1
}
