// internal/httpserver/server.go
//
// HTTP server wiring for the pairs backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (per-player identity): POST /game/new, POST /game/flip,
//     GET /game/state, GET /game/events (SSE).
//   - Daily board: mounted under /daily.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Each player owns one table in the store; a new game replaces the
//     player's running session.
//   - The event stream is registered outside the timeout group.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pairs/internal/clock"
	"github.com/robalobadob/pairs/internal/game"
	"github.com/robalobadob/pairs/internal/settings"
	"github.com/robalobadob/pairs/internal/store"
)

const (
	handlerTimeout = 10 * time.Second
	keepAlive      = 15 * time.Second
)

// Options carries the settings the server needs from configuration.
type Options struct {
	ClientOrigin string
	TokenSecret  string
	TokenTTL     time.Duration
	DailySalt    string
}

// Server bundles router, table store and event feed.
type Server struct {
	r      *chi.Mux
	store  store.Store
	feed   *Feed
	clk    clock.Clock
	tokens tokens
	secure bool
	salt   string
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, feed *Feed, clk clock.Clock, opts Options) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		feed:   feed,
		clk:    clk,
		tokens: tokens{secret: []byte(opts.TokenSecret), ttl: opts.TokenTTL, now: clk.Now},
		secure: strings.HasPrefix(opts.ClientOrigin, "https://"),
		salt:   opts.DailySalt,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)         // add X-Request-ID
	s.r.Use(chimw.RealIP)            // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)         // recover from panics
	s.r.Use(jsonContentType)         // default JSON responses
	s.r.Use(cors(opts.ClientOrigin)) // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"pairs-go","endpoints":["/health","POST /game/new","POST /game/flip","GET /game/state","GET /game/events","POST /daily/new"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Group(func(r chi.Router) {
		r.Use(s.withPlayer)

		// streaming; must not be cut off by the handler timeout
		r.Get("/game/events", s.handleEvents)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(handlerTimeout)) // bound handler time
			r.Post("/game/new", s.handleNewGame)
			r.Post("/game/flip", s.handleFlip)
			r.Get("/game/state", s.handleState)
			s.mountDaily(r)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Expose-Headers", tokenHeader)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// startGame starts a session on the caller's table and writes the board.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, f settings.Form) (game.View, bool) {
	pid := playerFrom(r.Context())
	tb := s.store.Open(r.Context(), pid)
	v, err := tb.Start(f)
	switch {
	case errors.Is(err, settings.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, err.Error())
		return game.View{}, false
	case err != nil:
		log.Error().Err(err).Str("player", pid).Msg("start game")
		writeError(w, http.StatusInternalServerError, "start_failed")
		return game.View{}, false
	}
	log.Info().Str("player", pid).Str("session", v.SessionID.String()).Int("columns", v.Columns).Msg("game started")
	return v, true
}

// tableStatus maps engine addressing errors to HTTP codes.
func tableStatus(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrNoSession), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "no_session"
	case errors.Is(err, game.ErrStaleSession):
		return http.StatusConflict, "stale_session"
	case errors.Is(err, game.ErrUnknownSlot):
		return http.StatusBadRequest, "unknown_slot"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// ------------------------------ GAME ---------------------------------------

// handleNewGame validates the settings form and deals a new board.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req settings.Form
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if v, ok := s.startGame(w, r, req); ok {
		writeJSON(w, http.StatusOK, v)
	}
}

// flipReq/Res payloads for POST /game/flip.
type flipReq struct {
	SessionID string `json:"sessionId"`
	Slot      *int   `json:"slot"`
}
type flipRes struct {
	Outcome string    `json:"outcome"`
	View    game.View `json:"view"`
}

// handleFlip delivers one card click to the caller's session.
func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	var req flipReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slot == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_session_id")
		return
	}
	tb, err := s.store.Get(r.Context(), playerFrom(r.Context()))
	if err != nil {
		code, msg := tableStatus(err)
		writeError(w, code, msg)
		return
	}
	out, v, err := tb.Click(id, *req.Slot)
	if err != nil {
		code, msg := tableStatus(err)
		writeError(w, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, flipRes{Outcome: out.String(), View: v})
}

// handleState returns the caller's current board.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	tb, err := s.store.Get(r.Context(), playerFrom(r.Context()))
	if err == nil {
		var v game.View
		if v, err = tb.Snapshot(); err == nil {
			writeJSON(w, http.StatusOK, v)
			return
		}
	}
	code, msg := tableStatus(err)
	writeError(w, code, msg)
}

// handleEvents streams the caller's engine callbacks as Server-Sent Events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported")
		return
	}
	pid := playerFrom(r.Context())
	events, cancel := s.feed.Subscribe(pid)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fl.Flush()

	ping := time.NewTicker(keepAlive)
	defer ping.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ping.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
		case ev := <-events:
			if err := ev.write(w); err != nil {
				log.Debug().Err(err).Str("player", pid).Msg("event stream closed")
				return
			}
		}
		fl.Flush()
	}
}
