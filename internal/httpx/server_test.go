package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/session"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func newTestServer(t *testing.T, maxGames int, origins ...string) *httptest.Server {
	t.Helper()
	cfg := config.NewServerConfig()
	cfg.AllowedOrigins = origins
	srv := NewServer(session.NewRegistry(maxGames, 4), cfg, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	testutil.AssertNoError(t, err)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	testutil.AssertNoError(t, err)
	return resp, buf.Bytes()
}

func decode(t *testing.T, data []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: status %d, want %d; body %s",
			resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, body)
	}
}

func moveJSON(fx, fy, tx, ty int) string {
	return fmt.Sprintf(`{"from":{"x":%d,"y":%d},"to":{"x":%d,"y":%d}}`, fx, fy, tx, ty)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, 0)
	resp, body := do(t, http.MethodGet, ts.URL+"/healthz", "")
	expectStatus(t, resp, body, http.StatusOK)
	testutil.AssertEqual(t, string(body), "ok")
}

func TestGameLifecycle(t *testing.T) {
	ts := newTestServer(t, 0)

	resp, body := do(t, http.MethodPost, ts.URL+"/api/games", "")
	expectStatus(t, resp, body, http.StatusCreated)
	testutil.AssertEqual(t, resp.Header.Get("Location"), "/api/games/g1")
	var g output.JSONGame
	decode(t, body, &g)
	if g.ID != "g1" || g.Turn != 1 || g.ToMove != "white" || len(g.Pieces) != 32 {
		t.Errorf("created game = %+v", g)
	}

	resp, body = do(t, http.MethodGet, ts.URL+"/api/games", "")
	expectStatus(t, resp, body, http.StatusOK)
	var list struct {
		Games []output.JSONGame `json:"games"`
	}
	decode(t, body, &list)
	if len(list.Games) != 1 || list.Games[0].ID != "g1" {
		t.Errorf("list = %+v", list)
	}

	resp, body = do(t, http.MethodGet, ts.URL+"/api/games/g1", "")
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = do(t, http.MethodDelete, ts.URL+"/api/games/g1", "")
	expectStatus(t, resp, body, http.StatusNoContent)

	resp, body = do(t, http.MethodGet, ts.URL+"/api/games/g1", "")
	expectStatus(t, resp, body, http.StatusNotFound)
	resp, body = do(t, http.MethodDelete, ts.URL+"/api/games/g1", "")
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestCreate_Capacity(t *testing.T) {
	ts := newTestServer(t, 1)
	resp, body := do(t, http.MethodPost, ts.URL+"/api/games", "")
	expectStatus(t, resp, body, http.StatusCreated)
	resp, body = do(t, http.MethodPost, ts.URL+"/api/games", "")
	expectStatus(t, resp, body, http.StatusServiceUnavailable)
}

func TestCreate_CustomSetup(t *testing.T) {
	ts := newTestServer(t, 0)

	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "kings and a rook",
			body: `{"toMove":"black","pieces":[
				{"type":"king","colour":"white","x":4,"y":7},
				{"type":"rook","colour":"white","x":0,"y":7},
				{"type":"king","colour":"black","x":4,"y":0}]}`,
			want: http.StatusCreated,
		},
		{
			name: "missing black king",
			body: `{"pieces":[{"type":"king","colour":"white","x":4,"y":7}]}`,
			want: http.StatusBadRequest,
		},
		{
			name: "unknown piece",
			body: `{"pieces":[{"type":"dragon","colour":"white","x":4,"y":7}]}`,
			want: http.StatusBadRequest,
		},
		{
			name: "unknown field",
			body: `{"position":"startpos"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "malformed",
			body: `{"pieces":`,
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, ts.URL+"/api/games", tt.body)
			expectStatus(t, resp, body, tt.want)
		})
	}

	resp, body := do(t, http.MethodGet, ts.URL+"/api/games/g1", "")
	expectStatus(t, resp, body, http.StatusOK)
	var g output.JSONGame
	decode(t, body, &g)
	if g.ToMove != "black" || len(g.Pieces) != 3 {
		t.Errorf("custom game = %+v", g)
	}
}

func TestMoves(t *testing.T) {
	ts := newTestServer(t, 0)
	do(t, http.MethodPost, ts.URL+"/api/games", "")
	movesURL := ts.URL + "/api/games/g1/moves"

	resp, body := do(t, http.MethodPost, movesURL, moveJSON(4, 6, 4, 4))
	expectStatus(t, resp, body, http.StatusOK)
	var out output.JSONOutcome
	decode(t, body, &out)
	if out.Status != "applied" || out.Move == nil || out.Move.Kind != "double-advance" {
		t.Errorf("outcome = %+v", out)
	}
	if out.Game == nil || out.Game.ToMove != "black" || out.Game.Turn != 2 {
		t.Errorf("game after move = %+v", out.Game)
	}

	tests := []struct {
		name   string
		body   string
		status int
		reason string
	}{
		{"illegal geometry", moveJSON(3, 1, 3, 4), http.StatusUnprocessableEntity, "illegal-geometry"},
		{"not your turn", moveJSON(3, 6, 3, 4), http.StatusUnprocessableEntity, "not-your-turn"},
		{"empty source", moveJSON(3, 3, 3, 4), http.StatusUnprocessableEntity, "no-piece-at-source"},
		{"out of bounds", moveJSON(3, 1, 3, 9), http.StatusUnprocessableEntity, "out-of-bounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, movesURL, tt.body)
			expectStatus(t, resp, body, tt.status)
			var out output.JSONOutcome
			decode(t, body, &out)
			testutil.AssertEqual(t, out.Status, "rejected")
			testutil.AssertEqual(t, out.Reason, tt.reason)
			if out.Error == "" {
				t.Error("rejection without error text")
			}
		})
	}

	resp, body = do(t, http.MethodPost, movesURL, `{"from":{"x":1,"y":1}}`)
	expectStatus(t, resp, body, http.StatusBadRequest)
	resp, body = do(t, http.MethodPost, movesURL, "")
	expectStatus(t, resp, body, http.StatusBadRequest)
	resp, body = do(t, http.MethodPost, ts.URL+"/api/games/g9/moves", moveJSON(4, 1, 4, 3))
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = do(t, http.MethodGet, ts.URL+"/api/games/g1/history", "")
	expectStatus(t, resp, body, http.StatusOK)
	var history struct {
		Moves []output.JSONMove `json:"moves"`
	}
	decode(t, body, &history)
	if len(history.Moves) != 1 || history.Moves[0].Turn != 1 {
		t.Errorf("history = %+v", history)
	}
}

func TestLegalMoves(t *testing.T) {
	ts := newTestServer(t, 0)
	do(t, http.MethodPost, ts.URL+"/api/games", "")

	resp, body := do(t, http.MethodGet, ts.URL+"/api/games/g1/moves?x=1&y=7", "")
	expectStatus(t, resp, body, http.StatusOK)
	var reply legalMovesReply
	decode(t, body, &reply)
	if len(reply.Moves) != 2 || reply.Moves[0].Piece != "knight" {
		t.Errorf("knight moves = %+v", reply)
	}

	resp, body = do(t, http.MethodGet, ts.URL+"/api/games/g1/moves?x=4&y=1", "")
	expectStatus(t, resp, body, http.StatusOK)
	decode(t, body, &reply)
	if len(reply.Moves) != 0 {
		t.Errorf("side not on move has moves: %+v", reply.Moves)
	}

	for _, q := range []string{"x=a&y=1", "x=1", "x=8&y=0"} {
		resp, body = do(t, http.MethodGet, ts.URL+"/api/games/g1/moves?"+q, "")
		expectStatus(t, resp, body, http.StatusBadRequest)
	}
}

func TestPromotion(t *testing.T) {
	ts := newTestServer(t, 0)
	resp, body := do(t, http.MethodPost, ts.URL+"/api/games", `{"pieces":[
		{"type":"king","colour":"white","x":7,"y":7},
		{"type":"pawn","colour":"white","x":0,"y":1,"moved":true},
		{"type":"king","colour":"black","x":7,"y":2}]}`)
	expectStatus(t, resp, body, http.StatusCreated)
	gameURL := ts.URL + "/api/games/g1"

	resp, body = do(t, http.MethodPost, gameURL+"/promotion", `{"piece":"queen","colour":"white"}`)
	expectStatus(t, resp, body, http.StatusConflict)

	resp, body = do(t, http.MethodPost, gameURL+"/moves", moveJSON(0, 1, 0, 0))
	expectStatus(t, resp, body, http.StatusOK)
	var out output.JSONOutcome
	decode(t, body, &out)
	if out.Status != "promotion-pending" || !out.Game.Promoting || out.Game.Status != "awaiting-promotion" {
		t.Errorf("outcome = %+v", out)
	}

	resp, body = do(t, http.MethodPost, gameURL+"/moves", moveJSON(7, 2, 6, 2))
	expectStatus(t, resp, body, http.StatusConflict)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"wrong colour", `{"piece":"queen","colour":"black"}`, http.StatusConflict},
		{"king", `{"piece":"king","colour":"white"}`, http.StatusBadRequest},
		{"unknown piece", `{"piece":"dragon","colour":"white"}`, http.StatusBadRequest},
		{"unknown colour", `{"piece":"queen","colour":"green"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, gameURL+"/promotion", tt.body)
			expectStatus(t, resp, body, tt.want)
		})
	}

	resp, body = do(t, http.MethodPost, gameURL+"/promotion", `{"piece":"n","colour":"white"}`)
	expectStatus(t, resp, body, http.StatusOK)
	var reply promotionReply
	decode(t, body, &reply)
	testutil.AssertEqual(t, reply.Type, "knight")
	if reply.Game == nil || reply.Game.ToMove != "black" || reply.Game.Board[0][0] != 'N' {
		t.Errorf("after promotion = %+v", reply.Game)
	}
}

func TestStream(t *testing.T) {
	ts := newTestServer(t, 0)
	do(t, http.MethodPost, ts.URL+"/api/games", "")

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/games/g1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	testutil.AssertNoError(t, err)
	defer conn.Close()

	read := func() output.JSONGame {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var g output.JSONGame
		if err := conn.ReadJSON(&g); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		return g
	}

	// The first message is the current state, sent once subscribed.
	if g := read(); g.Turn != 1 || g.ID != "g1" {
		t.Fatalf("initial state = %+v", g)
	}

	resp, body := do(t, http.MethodPost, ts.URL+"/api/games/g1/moves", moveJSON(6, 7, 5, 5))
	expectStatus(t, resp, body, http.StatusOK)
	g := read()
	if g.Turn != 2 || g.ToMove != "black" || g.LastMove == nil || g.LastMove.Piece != "knight" {
		t.Errorf("streamed state = %+v", g)
	}

	// Rejected moves are not published; deleting the game ends the stream.
	do(t, http.MethodPost, ts.URL+"/api/games/g1/moves", moveJSON(0, 0, 0, 5))
	do(t, http.MethodDelete, ts.URL+"/api/games/g1", "")

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err = conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("ReadMessage after delete: %v, want close going away", err)
	}
}

func TestStream_UnknownGame(t *testing.T) {
	ts := newTestServer(t, 0)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/games/g1/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("dial succeeded for an unknown game")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("response = %v", resp)
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, 0, "http://board.example")

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/games", nil)
	req.Header.Set("Origin", "http://board.example")
	resp, err := http.DefaultClient.Do(req)
	testutil.AssertNoError(t, err)
	resp.Body.Close()
	testutil.AssertEqual(t, resp.Header.Get("Access-Control-Allow-Origin"), "http://board.example")

	do(t, http.MethodPost, ts.URL+"/api/games", "")
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/games/g1/ws"
	_, _, err = websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://elsewhere.example"}})
	if err == nil {
		t.Error("websocket accepted a foreign origin")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("game %q: %w", "g1", errors.ErrGameNotFound), http.StatusNotFound},
		{"full", errors.ErrTooManyGames, http.StatusServiceUnavailable},
		{"move during promotion", &errors.MoveError{Err: errors.ErrPromotionPending}, http.StatusConflict},
		{"no promotion", errors.ErrNoPendingPromotion, http.StatusConflict},
		{"wrong colour", errors.ErrWrongPromotionColour, http.StatusConflict},
		{"rejected move", &errors.MoveError{Err: errors.ErrIllegalGeometry}, http.StatusUnprocessableEntity},
		{"bad setup", errors.ErrInvalidSetup, http.StatusBadRequest},
		{"bad promotion", errors.ErrInvalidPromotionPiece, http.StatusBadRequest},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, statusFor(tt.err), tt.want)
		})
	}
}

func TestShutdownBeforeListen(t *testing.T) {
	cfg := config.NewServerConfig()
	cfg.Addr = "127.0.0.1:0"
	srv := NewServer(session.NewRegistry(0, 1), cfg, nil)

	testutil.AssertNoError(t, srv.Shutdown(context.Background()))

	done := make(chan error, 1)
	go func() { done <- srv.Listen() }()
	select {
	case err := <-done:
		testutil.AssertNoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Listen kept serving after Shutdown")
	}
}

// lockedBuffer is written by handler goroutines while the test reads it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDelete_LogsGameAge(t *testing.T) {
	var logs lockedBuffer
	srv := NewServer(session.NewRegistry(0, 1), config.NewServerConfig(), log.New(&logs, "", 0))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	do(t, http.MethodPost, ts.URL+"/api/games", "")
	resp, body := do(t, http.MethodDelete, ts.URL+"/api/games/g1", "")
	expectStatus(t, resp, body, http.StatusNoContent)
	testutil.AssertContains(t, logs.String(), "game g1 deleted after 0s")
}
