package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// SnapshotWriter is the interface for writing game states to output.
// Different implementations handle different formats (text board, JSON).
type SnapshotWriter interface {
	// WriteSnapshot writes one state of the game identified by id.
	WriteSnapshot(id string, s engine.Snapshot) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// TextWriter draws each snapshot as a board diagram.
type TextWriter struct {
	w    io.Writer
	opts TextOptions
}

// NewTextWriter creates a new board writer.
func NewTextWriter(w io.Writer, opts TextOptions) *TextWriter {
	return &TextWriter{w: w, opts: opts}
}

// SetFromBlack switches the viewing side for subsequent snapshots.
func (tw *TextWriter) SetFromBlack(fromBlack bool) {
	tw.opts.FromBlack = fromBlack
}

// WriteSnapshot draws the board and status line.
func (tw *TextWriter) WriteSnapshot(_ string, s engine.Snapshot) error {
	return WriteBoard(tw.w, s, tw.opts)
}

// Flush is a no-op; boards are written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes snapshots in JSON format.
// It buffers snapshots and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []*JSONGame
	single bool // If true, write each snapshot immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches snapshots and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		games: make([]*JSONGame, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each snapshot
// immediately as one compact line.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		games:  make([]*JSONGame, 0),
		single: true,
	}
}

// WriteSnapshot adds a snapshot to the batch, or writes it in single mode.
func (jw *JSONWriter) WriteSnapshot(id string, s engine.Snapshot) error {
	g := SnapshotToJSON(id, s)
	if jw.single {
		return json.NewEncoder(jw.w).Encode(g)
	}
	jw.games = append(jw.games, g)
	return nil
}

// Flush writes all buffered snapshots as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}
	if err := WriteJSON(jw.w, jw.games); err != nil {
		return err
	}
	jw.games = jw.games[:0]
	return nil
}

// Close flushes any remaining snapshots.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
