package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// isPathClear checks that every square strictly between from and to is empty.
// from and to must share a rank, a file or a diagonal.
func (b *Board) isPathClear(from, to chess.Square) bool {
	dx := sign(to.X - from.X)
	dy := sign(to.Y - from.Y)

	sq := from.Offset(dx, dy)
	for sq != to {
		if !b.isEmpty(sq) {
			return false
		}
		sq = sq.Offset(dx, dy)
	}

	return true
}

// isStraight reports whether from and to share a rank or a file.
func isStraight(from, to chess.Square) bool {
	return from.X == to.X || from.Y == to.Y
}

// isDiagonal reports whether from and to share a diagonal.
func isDiagonal(from, to chess.Square) bool {
	return abs(to.X-from.X) == abs(to.Y-from.Y)
}
