package session

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Registry tracks live games by id.
type Registry struct {
	mu       sync.RWMutex
	games    map[string]*Game
	next     uint64
	maxGames int
	buffer   int
}

// NewRegistry creates a registry holding at most maxGames games.
// maxGames of 0 means unlimited capacity. streamBuffer is the queue
// length given to every subscriber.
func NewRegistry(maxGames, streamBuffer int) *Registry {
	return &Registry{
		games:    make(map[string]*Game),
		maxGames: maxGames,
		buffer:   streamBuffer,
	}
}

// Create registers a game in the standard starting position.
func (r *Registry) Create() (*Game, error) {
	return r.add(engine.NewGame())
}

// CreateFrom registers a game from a custom position.
func (r *Registry) CreateFrom(setup []chess.Setup, toMove chess.Colour) (*Game, error) {
	board, err := engine.NewBoardFrom(setup, toMove)
	if err != nil {
		return nil, err
	}
	return r.add(board)
}

func (r *Registry) add(board *engine.Board) (*Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxGames > 0 && len(r.games) >= r.maxGames {
		return nil, fmt.Errorf("%d games live: %w", len(r.games), errors.ErrTooManyGames)
	}
	r.next++
	id := "g" + strconv.FormatUint(r.next, 10)
	g := newGame(id, board, r.buffer)
	r.games[id] = g
	return g, nil
}

// Get returns the game with the given id.
func (r *Registry) Get(id string) (*Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("game %q: %w", id, errors.ErrGameNotFound)
	}
	return g, nil
}

// Delete removes a game and closes its subscriptions.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	g, ok := r.games[id]
	delete(r.games, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("game %q: %w", id, errors.ErrGameNotFound)
	}
	g.close()
	return nil
}

// IDs returns the ids of all live games in creation order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.games))
	for id := range r.games {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return idNumber(ids[i]) < idNumber(ids[j])
	})
	return ids
}

// Len returns the number of live games.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// IsFull returns true if the registry has reached its capacity limit.
// Always returns false for unlimited capacity (maxGames = 0).
func (r *Registry) IsFull() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxGames > 0 && len(r.games) >= r.maxGames
}

// Close removes every game.
func (r *Registry) Close() {
	r.mu.Lock()
	games := r.games
	r.games = make(map[string]*Game)
	r.mu.Unlock()

	for _, g := range games {
		g.close()
	}
}

func idNumber(id string) uint64 {
	n, _ := strconv.ParseUint(strings.TrimPrefix(id, "g"), 10, 64)
	return n
}
