package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// direction is a single step on the board in (dx, dy) form.
type direction struct{ dx, dy int }

var (
	orthogonal = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allRound   = append(append([]direction{}, orthogonal...), diagonal...)

	knightJumps = []direction{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
)

// refresh rebuilds the placement grid from the piece collection and then
// recomputes the covered fields of every live piece. Coverage depends on
// the placement, so the order matters.
func (b *Board) refresh() {
	b.rebuildPlacement()
	for _, p := range b.pieces {
		if p != nil {
			p.covered = b.coverage(p)
		}
	}
}

func (b *Board) rebuildPlacement() {
	b.placement = [chess.Width][chess.Height]*Piece{}
	for _, p := range b.pieces {
		if p != nil {
			b.placement[p.sq.X][p.sq.Y] = p
		}
	}
}

// coverage returns the squares p threatens on the current placement.
func (b *Board) coverage(p *Piece) []chess.Square {
	return rulebook[p.kind].cover(b, p)
}

// rayCoverage walks each direction until the edge. A ray stops before a
// piece of the same colour and on the first opposing piece.
func (b *Board) rayCoverage(p *Piece, dirs []direction) []chess.Square {
	var out []chess.Square
	for _, d := range dirs {
		for sq := p.sq.Offset(d.dx, d.dy); sq.InBounds(); sq = sq.Offset(d.dx, d.dy) {
			other := b.at(sq)
			if other == nil {
				out = append(out, sq)
				continue
			}
			if other.colour != p.colour {
				out = append(out, sq)
			}
			break
		}
	}
	return out
}

// stepCoverage keeps the on-board offsets not held by the same colour.
func (b *Board) stepCoverage(p *Piece, steps []direction) []chess.Square {
	var out []chess.Square
	for _, d := range steps {
		sq := p.sq.Offset(d.dx, d.dy)
		if b.isEmptyOrOpponent(sq, p.colour) {
			out = append(out, sq)
		}
	}
	return out
}

// pawnCoverage is both forward diagonals regardless of occupancy.
func (b *Board) pawnCoverage(p *Piece) []chess.Square {
	fwd := p.colour.Forward()
	var out []chess.Square
	for _, dx := range []int{-1, 1} {
		if sq := p.sq.Offset(dx, fwd); sq.InBounds() {
			out = append(out, sq)
		}
	}
	return out
}

func (b *Board) knightCoverage(p *Piece) []chess.Square { return b.stepCoverage(p, knightJumps) }
func (b *Board) bishopCoverage(p *Piece) []chess.Square { return b.rayCoverage(p, diagonal) }
func (b *Board) rookCoverage(p *Piece) []chess.Square   { return b.rayCoverage(p, orthogonal) }
func (b *Board) queenCoverage(p *Piece) []chess.Square  { return b.rayCoverage(p, allRound) }
func (b *Board) kingCoverage(p *Piece) []chess.Square   { return b.stepCoverage(p, allRound) }
