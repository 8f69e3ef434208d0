// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
//   - POST /daily/new         → start a daily game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's daily game
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each player gets one attempt per day (enforced by DB + in-memory session).
// Sessions live in memory while playing; wins are persisted.
// The word is chosen deterministically from date + salt.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/daily"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	mu       sync.Mutex               // guards sessions and the games they hold
	sessions map[string]*dailySession // keyed by userID|date
}

// dailySession holds in-memory state for one player's daily game.
type dailySession struct {
	GameID    string
	Date      string
	WordIndex int
	Start     time.Time
	game      *game.Game
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns the current daily puzzle.
func (d *dailyServer) today() daily.Puzzle {
	return daily.PuzzleFor(d.srv.now(), d.salt, d.srv.dict)
}

// playerID returns the authenticated user ID, else the anonymous cookie ID.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	o := d.srv.owner(w, r)
	if o.userID != "" {
		return o.userID
	}
	return o.anonID
}

// newRes is returned by /daily/new.
type newRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
//   - If the player already has a DB row for today → Played=true.
//   - Otherwise create/reuse an in-memory session and return its GameID.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)
	p := d.today()

	played, err := d.store.AlreadyPlayed(r.Context(), uid, p.Date)
	if err != nil {
		log.Warn().Err(err).Str("user", uid).Msg("daily already played")
	}
	if played {
		writeJSON(w, http.StatusOK, newRes{Date: p.Date, Played: true})
		return
	}

	key := uid + "|" + p.Date
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pruneLocked(p.Date)

	if sess, ok := d.sessions[key]; ok {
		writeJSON(w, http.StatusOK, newRes{GameID: sess.GameID, Date: p.Date, Played: sess.game.IsGameOver()})
		return
	}
	g, err := game.New(d.srv.dict, game.WithAnswer(p.Answer))
	if err != nil {
		log.Error().Err(err).Msg("new daily game")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	sess := &dailySession{GameID: g.ID(), Date: p.Date, WordIndex: p.WordIndex, Start: d.srv.now(), game: g}
	d.sessions[key] = sess
	writeJSON(w, http.StatusOK, newRes{GameID: sess.GameID, Date: p.Date})
}

// pruneLocked drops sessions from earlier days.
func (d *dailyServer) pruneLocked(today string) {
	for k, sess := range d.sessions {
		if sess.Date != today {
			delete(d.sessions, k)
		}
	}
}

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Marks   []game.Mark `json:"marks"`
	State   string      `json:"state"` // in_progress | won | lost | locked
	Guesses int         `json:"guesses"`
	Answer  string      `json:"answer,omitempty"`
}

// handleGuess validates and applies a guess for today's daily session and
// persists the result on a win.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)

	var req dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID == "" {
		writeError(w, http.StatusBadRequest, "invalid")
		return
	}

	date := d.today().Date
	key := uid + "|" + date

	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok || sess.GameID != req.GameID {
		d.mu.Unlock()
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	marks, err := sess.game.Play(strings.TrimSpace(req.Word))
	guesses := len(sess.game.GuessHistory())
	won := sess.game.Won()
	answer, _ := sess.game.Reveal()
	state := sess.game.State()
	d.mu.Unlock()

	if errors.Is(err, game.ErrGameOver) {
		writeJSON(w, http.StatusOK, dailyGuessRes{Marks: []game.Mark{}, State: "locked", Guesses: guesses})
		return
	}
	if err != nil {
		writeGameError(w, err)
		return
	}

	res := dailyGuessRes{Marks: marks[:], Guesses: guesses, Answer: answer}
	switch state {
	case "won":
		res.State = "won"
	case "lost":
		res.State = "lost"
	default:
		res.State = "in_progress"
	}

	if won {
		elapsed := int(d.srv.now().Sub(sess.Start).Milliseconds())
		if err := d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, WordIndex: sess.WordIndex, Guesses: guesses, ElapsedMs: elapsed,
		}); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = d.today().Date
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
