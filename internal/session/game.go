// Package session shares engine boards between goroutines. Each Game
// serializes access to its board with a mutex and fans state changes out
// to subscribers; the Registry tracks live games by id.
package session

import (
	"sync"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Game wraps an engine board with mutex protection for concurrent access.
type Game struct {
	id      string
	created time.Time

	mu      sync.Mutex
	board   *engine.Board
	subs    map[int]chan engine.Snapshot
	nextSub int
	buffer  int
	closed  bool
}

func newGame(id string, board *engine.Board, buffer int) *Game {
	if buffer < 1 {
		buffer = 1
	}
	return &Game{
		id:      id,
		created: time.Now(),
		board:   board,
		subs:    make(map[int]chan engine.Snapshot),
		buffer:  buffer,
	}
}

// ID returns the registry id of the game.
func (g *Game) ID() string { return g.id }

// Created returns when the game was registered.
func (g *Game) Created() time.Time { return g.created }

// Move applies a move request and returns the outcome together with the
// resulting state. Subscribers are notified unless the move was rejected.
func (g *Game) Move(from, to chess.Square) (engine.Outcome, engine.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out, err := g.board.ApplyMove(from, to)
	snap := g.board.Snapshot()
	if err == nil {
		g.publish(snap)
	}
	return out, snap, err
}

// Promote completes a pending promotion.
func (g *Game) Promote(kind chess.PieceType, colour chess.Colour) (engine.Piece, engine.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.board.Promote(kind, colour)
	snap := g.board.Snapshot()
	if err == nil {
		g.publish(snap)
	}
	return p, snap, err
}

// Snapshot returns the current state.
func (g *Game) Snapshot() engine.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Snapshot()
}

// LegalMoves returns the legal moves of the piece on from.
func (g *Game) LegalMoves(from chess.Square) []engine.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.LegalMoves(from)
}

// History returns the committed moves.
func (g *Game) History() []engine.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.History()
}

// Subscribe returns a channel that receives the current state at once and
// every later state change. A subscriber that falls behind only ever
// misses intermediate states, never the latest one. The channel is closed
// by cancel or when the game is removed from its registry.
func (g *Game) Subscribe() (<-chan engine.Snapshot, func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ch := make(chan engine.Snapshot, g.buffer)
	if g.closed {
		close(ch)
		return ch, func() {}
	}

	id := g.nextSub
	g.nextSub++
	g.subs[id] = ch
	ch <- g.board.Snapshot()

	cancel := func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if sub, ok := g.subs[id]; ok {
			delete(g.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Subscribers returns the number of open subscriptions.
func (g *Game) Subscribers() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subs)
}

// publish delivers snap to every subscriber without blocking. A full
// queue drops its oldest entry. Callers must hold g.mu.
func (g *Game) publish(snap engine.Snapshot) {
	for _, ch := range g.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// close ends every subscription.
func (g *Game) close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	for id, ch := range g.subs {
		delete(g.subs, id)
		close(ch)
	}
}
