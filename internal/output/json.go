package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// JSONGame represents a game state in JSON format.
type JSONGame struct {
	ID         string      `json:"id,omitempty"`
	Turn       int         `json:"turn"`
	ToMove     string      `json:"toMove"` // "white" or "black"
	Status     string      `json:"status"`
	InCheck    []string    `json:"inCheck,omitempty"`
	Checkmated string      `json:"checkmated,omitempty"`
	Promoting  bool        `json:"promoting,omitempty"`
	Board      []string    `json:"board"` // rows y=0..7, diagram letters
	Pieces     []JSONPiece `json:"pieces"`
	LastMove   *JSONMove   `json:"lastMove,omitempty"`
}

// JSONPiece is one occupied square.
type JSONPiece struct {
	Type   string `json:"type"`
	Colour string `json:"colour"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// JSONMove represents a resolved move in JSON format.
type JSONMove struct {
	Turn       int           `json:"turn,omitempty"`
	Kind       string        `json:"kind"`
	Colour     string        `json:"colour"`
	Piece      string        `json:"piece"`
	From       chess.Square  `json:"from"`
	To         chess.Square  `json:"to"`
	Captured   string        `json:"captured,omitempty"`
	CapturedAt *chess.Square `json:"capturedAt,omitempty"`
	KingTo     *chess.Square `json:"kingTo,omitempty"`
	RookTo     *chess.Square `json:"rookTo,omitempty"`
	Promotion  string        `json:"promotion,omitempty"`
}

// JSONOutcome is the reply to a move request.
type JSONOutcome struct {
	Status string    `json:"status"`
	Colour string    `json:"colour"`
	Reason string    `json:"reason,omitempty"`
	Error  string    `json:"error,omitempty"`
	Move   *JSONMove `json:"move,omitempty"`
	Game   *JSONGame `json:"game,omitempty"`
}

// colourName is the lower-case wire name of a colour.
func colourName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

func pieceName(p chess.PieceType) string {
	if p == chess.NoPiece {
		return ""
	}
	return strings.ToLower(p.String())
}

// SnapshotToJSON converts a snapshot to its JSON form.
func SnapshotToJSON(id string, s engine.Snapshot) *JSONGame {
	g := &JSONGame{
		ID:        id,
		Turn:      s.Turn,
		ToMove:    colourName(s.ToMove),
		Status:    s.Status.String(),
		Promoting: s.Promoting,
		Board:     DiagramRows(s.Placement),
		Pieces:    []JSONPiece{},
	}
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if s.InCheck[c] {
			g.InCheck = append(g.InCheck, colourName(c))
		}
		if s.Mated[c] {
			g.Checkmated = colourName(c)
		}
	}
	for y := 0; y < chess.Height; y++ {
		for x := 0; x < chess.Width; x++ {
			o := s.Placement[x][y]
			if o.Empty() {
				continue
			}
			g.Pieces = append(g.Pieces, JSONPiece{
				Type:   pieceName(o.Type),
				Colour: colourName(o.Colour),
				X:      x,
				Y:      y,
			})
		}
	}
	if s.LastMove != nil {
		mv := MoveToJSON(*s.LastMove)
		g.LastMove = &mv
	}
	return g
}

// MoveToJSON converts a resolved move to its JSON form.
func MoveToJSON(m engine.Move) JSONMove {
	jm := JSONMove{
		Turn:      m.Turn,
		Kind:      m.Kind.String(),
		Colour:    colourName(m.Colour),
		Piece:     pieceName(m.Piece),
		From:      m.From,
		To:        m.To,
		Captured:  pieceName(m.Captured),
		Promotion: pieceName(m.Promotion),
	}
	if m.IsCapture() {
		sq := m.CapturedSquare
		jm.CapturedAt = &sq
	}
	if m.Kind == engine.Castle {
		kingTo, rookTo := m.KingTo, m.RookTo
		jm.KingTo = &kingTo
		jm.RookTo = &rookTo
	}
	return jm
}

// OutcomeToJSON converts a move outcome. err is the rejection error, if any.
func OutcomeToJSON(out engine.Outcome, err error, id string, s engine.Snapshot) *JSONOutcome {
	jo := &JSONOutcome{
		Status: out.Status.String(),
		Colour: colourName(out.Colour),
		Reason: out.Reason.String(),
		Game:   SnapshotToJSON(id, s),
	}
	if err != nil {
		jo.Error = err.Error()
	}
	if out.Status != engine.Rejected {
		mv := MoveToJSON(out.Move)
		jo.Move = &mv
	}
	return jo
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
