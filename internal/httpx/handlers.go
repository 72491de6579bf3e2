package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/session"
)

// setupPiece is one entry of a custom starting position.
type setupPiece struct {
	Type   string `json:"type"`
	Colour string `json:"colour"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Moved  bool   `json:"moved,omitempty"`
}

type createBody struct {
	// Pieces replaces the standard starting position when non-empty.
	Pieces []setupPiece `json:"pieces"`
	ToMove string       `json:"toMove"`
}

type moveBody struct {
	From *chess.Square `json:"from"`
	To   *chess.Square `json:"to"`
}

type promotionBody struct {
	Piece  string `json:"piece"`
	Colour string `json:"colour"`
}

type promotionReply struct {
	Type string           `json:"type"`
	At   chess.Square     `json:"at"`
	Game *output.JSONGame `json:"game"`
}

type legalMovesReply struct {
	From  chess.Square      `json:"from"`
	Moves []output.JSONMove `json:"moves"`
}

// statusFor maps an error onto an HTTP status code.
func statusFor(err error) int {
	var moveErr *errors.MoveError
	switch {
	case errors.Is(err, errors.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrTooManyGames):
		return http.StatusServiceUnavailable
	case errors.Is(err, errors.ErrPromotionPending),
		errors.Is(err, errors.ErrNoPendingPromotion),
		errors.Is(err, errors.ErrWrongPromotionColour):
		return http.StatusConflict
	case errors.As(err, &moveErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrInvalidSetup),
		errors.Is(err, errors.ErrInvalidPromotionPiece):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Game, bool) {
	g, err := s.registry.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return nil, false
	}
	return g, true
}

// ---- API: games ----

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body createBody
	if !decodeBody(w, r, &body, true) {
		return
	}

	var (
		g   *session.Game
		err error
	)
	if len(body.Pieces) == 0 {
		g, err = s.registry.Create()
	} else {
		setup, toMove, perr := parseSetup(body)
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr.Error())
			return
		}
		g, err = s.registry.CreateFrom(setup, toMove)
	}
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	s.logger.Printf("game %s created (%d live)", g.ID(), s.registry.Len())
	w.Header().Set("Location", "/api/games/"+g.ID())
	writeJSON(w, http.StatusCreated, output.SnapshotToJSON(g.ID(), g.Snapshot()))
}

func parseSetup(body createBody) ([]chess.Setup, chess.Colour, error) {
	toMove := chess.White
	if body.ToMove != "" {
		c, ok := chess.ParseColour(body.ToMove)
		if !ok {
			return nil, 0, fmt.Errorf("invalid toMove %q", body.ToMove)
		}
		toMove = c
	}

	setup := make([]chess.Setup, 0, len(body.Pieces))
	for i, p := range body.Pieces {
		kind, ok := chess.ParsePieceType(p.Type)
		if !ok {
			return nil, 0, fmt.Errorf("piece %d: invalid type %q", i, p.Type)
		}
		colour, ok := chess.ParseColour(p.Colour)
		if !ok {
			return nil, 0, fmt.Errorf("piece %d: invalid colour %q", i, p.Colour)
		}
		setup = append(setup, chess.Setup{
			Square: chess.Sq(p.X, p.Y),
			Type:   kind,
			Colour: colour,
			Moved:  p.Moved,
		})
	}
	return setup, toMove, nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	games := make([]*output.JSONGame, 0, s.registry.Len())
	for _, id := range s.registry.IDs() {
		g, err := s.registry.Get(id)
		if err != nil {
			continue // deleted since IDs
		}
		games = append(games, output.SnapshotToJSON(id, g.Snapshot()))
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, output.SnapshotToJSON(g.ID(), g.Snapshot()))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := s.registry.Delete(g.ID()); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.logger.Printf("game %s deleted after %s", g.ID(), time.Since(g.Created()).Round(time.Second))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	history := g.History()
	moves := make([]output.JSONMove, 0, len(history))
	for _, m := range history {
		moves = append(moves, output.MoveToJSON(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"moves": moves})
}

// ---- API: moves ----

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var body moveBody
	if !decodeBody(w, r, &body, false) {
		return
	}
	if body.From == nil || body.To == nil {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	out, snap, err := g.Move(*body.From, *body.To)
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	writeJSON(w, status, output.OutcomeToJSON(out, err, g.ID(), snap))
}

func (s *Server) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	x, errX := strconv.Atoi(q.Get("x"))
	y, errY := strconv.Atoi(q.Get("y"))
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "x and y must be integers")
		return
	}
	from := chess.Sq(x, y)
	if !from.InBounds() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: %v", from, errors.ErrOutOfBounds))
		return
	}

	legal := g.LegalMoves(from)
	reply := legalMovesReply{From: from, Moves: make([]output.JSONMove, 0, len(legal))}
	for _, m := range legal {
		reply.Moves = append(reply.Moves, output.MoveToJSON(m))
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handlePromote(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var body promotionBody
	if !decodeBody(w, r, &body, false) {
		return
	}
	kind, ok := chess.ParsePieceType(body.Piece)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%q: %v", body.Piece, errors.ErrInvalidPromotionPiece))
		return
	}
	colour, ok := chess.ParseColour(body.Colour)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid colour %q", body.Colour))
		return
	}

	p, snap, err := g.Promote(kind, colour)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, promotionReply{
		Type: strings.ToLower(p.Type().String()),
		At:   p.Square(),
		Game: output.SnapshotToJSON(g.ID(), snap),
	})
}
