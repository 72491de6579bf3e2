// Package output renders game state for terminals and API clients.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// TextOptions controls board rendering.
type TextOptions struct {
	// FromBlack puts y=7 at the top and x=7 on the left.
	FromBlack bool
	// Coordinates prints x labels above and below and y labels on both sides.
	Coordinates bool
}

// squareLetter returns the diagram letter of an occupant: uppercase for
// White, lowercase for Black, '.' for empty.
func squareLetter(o chess.Occupant) byte {
	if o.Empty() {
		return '.'
	}
	c := o.Type.Letter()
	if o.Colour == chess.Black {
		c += 'a' - 'A'
	}
	return c
}

// DiagramRows returns the board as eight strings, y=0 first.
func DiagramRows(p chess.Placement) []string {
	rows := make([]string, chess.Height)
	for y := 0; y < chess.Height; y++ {
		row := make([]byte, chess.Width)
		for x := 0; x < chess.Width; x++ {
			row[x] = squareLetter(p[x][y])
		}
		rows[y] = string(row)
	}
	return rows
}

// WriteBoard draws the placement and a status line.
func WriteBoard(w io.Writer, s engine.Snapshot, opts TextOptions) error {
	var sb strings.Builder

	xs := make([]int, chess.Width)
	ys := make([]int, chess.Height)
	for i := range xs {
		xs[i] = i
	}
	for i := range ys {
		ys[i] = i
	}
	if opts.FromBlack {
		reverse(xs)
		reverse(ys)
	}

	header := func() {
		sb.WriteString("  ")
		for _, x := range xs {
			fmt.Fprintf(&sb, " %d", x)
		}
		sb.WriteByte('\n')
	}

	if opts.Coordinates {
		header()
	}
	for _, y := range ys {
		if opts.Coordinates {
			fmt.Fprintf(&sb, "%d ", y)
		}
		for i, x := range xs {
			if i > 0 || opts.Coordinates {
				sb.WriteByte(' ')
			}
			sb.WriteByte(squareLetter(s.Placement[x][y]))
		}
		if opts.Coordinates {
			fmt.Fprintf(&sb, "  %d", y)
		}
		sb.WriteByte('\n')
	}
	if opts.Coordinates {
		header()
	}
	sb.WriteString(StatusLine(s))
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

// StatusLine summarizes the snapshot in one line.
func StatusLine(s engine.Snapshot) string {
	switch s.Status {
	case engine.Checkmate:
		return fmt.Sprintf("Checkmate after turn %d, %s wins", s.Turn-1, s.ToMove.Opposite())
	case engine.Stalemate:
		return fmt.Sprintf("Stalemate after turn %d", s.Turn-1)
	case engine.AwaitingPromotion:
		return fmt.Sprintf("%s to choose a promotion piece (turn %d)", s.ToMove, s.Turn)
	case engine.Check:
		return fmt.Sprintf("%s to move (turn %d), in check", s.ToMove, s.Turn)
	}
	return fmt.Sprintf("%s to move (turn %d)", s.ToMove, s.Turn)
}

func reverse(v []int) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
