package chess

// Occupant is the read-only view of what stands on a square.
// Type is NoPiece for an empty square.
type Occupant struct {
	Type   PieceType `json:"type"`
	Colour Colour    `json:"colour"`
}

// Empty returns true if no piece stands on the square.
func (o Occupant) Empty() bool {
	return o.Type == NoPiece
}

// Is reports whether the occupant is the given coloured piece.
func (o Occupant) Is(colour Colour, piece PieceType) bool {
	return o.Type == piece && o.Colour == colour
}

// Placement is an 8x8 snapshot indexed [x][y].
type Placement [Width][Height]Occupant

// At returns the occupant of a square. Off-board squares read as empty.
func (p Placement) At(sq Square) Occupant {
	if !sq.InBounds() {
		return Occupant{}
	}
	return p[sq.X][sq.Y]
}

// Count returns the number of pieces of the given colour and type.
// NoPiece counts empty squares.
func (p Placement) Count(colour Colour, piece PieceType) int {
	n := 0
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			o := p[x][y]
			if piece == NoPiece {
				if o.Empty() {
					n++
				}
				continue
			}
			if o.Is(colour, piece) {
				n++
			}
		}
	}
	return n
}

// Setup describes one piece of a custom starting position.
type Setup struct {
	Square Square
	Type   PieceType
	Colour Colour
	// Moved marks the piece as having moved already, which disables
	// castling for kings and rooks.
	Moved bool
}
