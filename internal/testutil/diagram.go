package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// ParseDiagram reads a board drawn as eight rows of eight squares. The
// first row is y=0 (Black's back rank), columns run x=0..7 left to right.
// Uppercase letters are White, lowercase Black, '.' is empty and spaces
// are ignored:
//
//	r . . . k . . r
//	. . . . . . . .
//	...
//
// Pawns off their home rank are marked as moved; every other piece starts
// unmoved.
func ParseDiagram(diagram string) ([]chess.Setup, error) {
	var rows []string
	for _, line := range strings.Split(diagram, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) != chess.Height {
		return nil, fmt.Errorf("diagram has %d rows, want %d", len(rows), chess.Height)
	}

	var setup []chess.Setup
	for y, row := range rows {
		if len(row) != chess.Width {
			return nil, fmt.Errorf("row %d has %d squares, want %d", y, len(row), chess.Width)
		}
		for x := 0; x < chess.Width; x++ {
			c := row[x]
			if c == '.' {
				continue
			}
			colour := chess.Black
			if c >= 'A' && c <= 'Z' {
				colour = chess.White
			}
			kind, ok := chess.ParsePieceType(string(c))
			if !ok {
				return nil, fmt.Errorf("unknown piece %q at (%d,%d)", c, x, y)
			}
			s := chess.Setup{Square: chess.Sq(x, y), Type: kind, Colour: colour}
			s.Moved = kind == chess.Pawn && y != chess.PawnHomeRank(colour)
			setup = append(setup, s)
		}
	}
	return setup, nil
}

// MustParseDiagram is ParseDiagram that fails the test on error.
func MustParseDiagram(t testing.TB, diagram string) []chess.Setup {
	t.Helper()
	setup, err := ParseDiagram(diagram)
	if err != nil {
		t.Fatalf("ParseDiagram: %v", err)
	}
	return setup
}
