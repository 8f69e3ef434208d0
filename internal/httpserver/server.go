// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): /game/new, /game/guess, /game/validate,
//     /game/{id}, /game/{id}/reset, /game/{id}/reveal.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Handlers own no game rules: every decision is delegated to internal/game.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/config"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

// Server bundles router, dictionary, in-memory game store, and DB handle.
type Server struct {
	r     *chi.Mux
	cfg   config.Config
	dict  *words.Dictionary
	store store.Store
	db    *sql.DB
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, dict *words.Dictionary, st store.Store, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, dict: dict, store: st, db: db, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-go",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/guess", "GET /game/{id}", "/daily/*", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"words": s.dict.Len(), "games": s.store.Len()})
	})

	// Game endpoints — OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Post("/game/validate", s.handleValidate)
		r.Get("/game/{id}", s.handleGetGame)
		r.Post("/game/{id}/reset", s.handleReset)
		r.Get("/game/{id}/reveal", s.handleReveal)

		// Daily Challenge (progress persisted on win)
		s.mountDaily(r)
	})

	// Auth + profile/stats
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (non-production only)
}
type newGameRes struct {
	GameID     string `json:"gameId"`
	WordLength int    `json:"wordLength"`
	MaxGuesses int    `json:"maxGuesses"`
}

// handleNewGame creates a new in-memory game and records an owner row
// (user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	var opts []game.Option
	if req.Answer != "" {
		if s.cfg.Production {
			writeError(w, http.StatusForbidden, "fixed_answer_disabled")
			return
		}
		opts = append(opts, game.WithAnswer(strings.TrimSpace(req.Answer)))
	}

	g, err := game.New(s.dict, opts...)
	if errors.Is(err, game.ErrInvalidAnswer) {
		writeError(w, http.StatusBadRequest, "invalid_answer")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	s.recordNewGame(r.Context(), g.ID(), s.owner(w, r))
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID(), WordLength: game.WordLength, MaxGuesses: game.MaxGuesses})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Marks     game.Feedback `json:"marks"`
	State     string        `json:"state"` // "playing" | "won" | "lost"
	Guesses   int           `json:"guesses"`
	Remaining int           `json:"remaining"`
	Answer    string        `json:"answer,omitempty"` // only once the game is over
}

// handleGuess applies a guess to an in-memory game, then persists progress
// and (if finished) user stats best-effort.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var res guessRes
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		marks, err := g.Play(strings.TrimSpace(req.Guess))
		if err != nil {
			return err
		}
		res = guessRes{Marks: marks, State: g.State(), Guesses: len(g.GuessHistory()), Remaining: g.Remaining()}
		res.Answer, _ = g.Reveal()
		return nil
	})
	if err != nil {
		writeGameError(w, err)
		return
	}

	s.recordGuess(r.Context(), req.GameID, s.owner(w, r), res.State)
	writeJSON(w, http.StatusOK, res)
}

type validateReq struct {
	Word string `json:"word"`
}

// handleValidate reports whether a word would be accepted as a guess.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": game.Valid(s.dict, strings.TrimSpace(req.Word))})
}

// row is one submitted guess with its recomputed feedback.
type row struct {
	Guess string        `json:"guess"`
	Marks game.Feedback `json:"marks"`
}

// snapshot is the full presentation state of a game.
type snapshot struct {
	GameID    string               `json:"gameId"`
	Rows      []row                `json:"rows"`
	Keyboard  map[string]game.Mark `json:"keyboard"`
	State     string               `json:"state"`
	Remaining int                  `json:"remaining"`
	Answer    string               `json:"answer,omitempty"`
}

func snapshotOf(g *game.Game) snapshot {
	history := g.GuessHistory()
	snap := snapshot{
		GameID:    g.ID(),
		Rows:      make([]row, 0, len(history)),
		Keyboard:  make(map[string]game.Mark),
		State:     g.State(),
		Remaining: g.Remaining(),
	}
	for _, guess := range history {
		snap.Rows = append(snap.Rows, row{Guess: guess, Marks: g.Feedback(guess)})
	}
	for letter, mark := range game.Keyboard(history, g.Answer()) {
		snap.Keyboard[string(letter)] = mark
	}
	snap.Answer, _ = g.Reveal()
	return snap
}

// handleGetGame returns the board, keyboard colours and state for a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var snap snapshot
	err := s.store.View(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		snap = snapshotOf(g)
		return nil
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleReset clears the game's history and draws a new answer.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var snap snapshot
	err := s.store.Update(r.Context(), id, func(g *game.Game) error {
		g.Reset()
		snap = snapshotOf(g)
		return nil
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	s.recordReset(r.Context(), id, s.owner(w, r))
	writeJSON(w, http.StatusOK, snap)
}

// handleReveal returns the answer of a finished game.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var answer string
	err := s.store.View(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		var err error
		answer, err = g.Reveal()
		return err
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// ------------------------------- helpers -----------------------------------

// writeGameError maps engine/store errors to HTTP statuses.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrInvalidLength):
		writeError(w, http.StatusBadRequest, "invalid_length")
	case errors.Is(err, game.ErrNotInWordList):
		writeError(w, http.StatusBadRequest, "not_in_word_list")
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over")
	case errors.Is(err, game.ErrGameInProgress):
		writeError(w, http.StatusConflict, "game_in_progress")
	default:
		log.Error().Err(err).Msg("game request")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
