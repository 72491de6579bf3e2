// Package httpx exposes game sessions over HTTP and websockets.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/session"
)

const maxJSONBodyBytes int64 = 1 << 20

// Server wires the HTTP layer to a game registry.
type Server struct {
	registry *session.Registry
	cfg      *config.ServerConfig
	logger   *log.Logger
	upgrader websocket.Upgrader
	srv      *http.Server
}

// NewServer builds a Server over registry. A nil logger discards
// lifecycle and access logs.
func NewServer(registry *session.Registry, cfg *config.ServerConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Server{
		registry: registry,
		cfg:      cfg,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if len(cfg.AllowedOrigins) > 0 {
		s.upgrader.CheckOrigin = s.originAllowed
	}
	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     logger,
	}
	return s
}

// Handler returns the router wrapped in recovery, access logging and,
// when origins are configured, CORS.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.routes()
	if len(s.cfg.AllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(s.cfg.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(h)
	}
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(s.logger))(h)
	return handlers.LoggingHandler(s.logger.Writer(), h)
}

// routes configures the router with the game API and health check.
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/games", s.withJSON(s.handleCreate)).Methods(http.MethodPost)
	api.HandleFunc("/games", s.withJSON(s.handleList)).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", s.withJSON(s.handleGet)).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", s.withJSON(s.handleDelete)).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/moves", s.withJSON(s.handleMove)).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/moves", s.withJSON(s.handleLegalMoves)).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/history", s.withJSON(s.handleHistory)).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/promotion", s.withJSON(s.handlePromote)).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/ws", s.handleStream).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

// Listen starts the HTTP server and blocks until it stops. It returns
// nil at once if Shutdown has already been called.
func (s *Server) Listen() error {
	s.logger.Printf("HTTP listening on %s", s.cfg.Addr)
	err := s.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones within
// ctx and closes every game stream.
func (s *Server) Shutdown(ctx context.Context) error {
	s.registry.Close()
	return s.srv.Shutdown(ctx)
}

func (s *Server) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.cfg.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched
// when optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	if r.Body == nil || r.Body == http.NoBody {
		if optional {
			return true
		}
		writeError(w, http.StatusBadRequest, "missing body")
		return false
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	switch {
	case err == nil:
		return true
	case errors.Is(err, io.EOF) && optional:
		return true
	case isBodyTooLarge(err):
		writeError(w, http.StatusRequestEntityTooLarge, "request too large")
	default:
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
	}
	return false
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
