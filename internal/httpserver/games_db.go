// internal/httpserver/games_db.go
//
// Best-effort persistence of game history and user stats.
// Failures are logged and never fail the request: the in-memory game is
// the source of truth while it is being played.

package httpserver

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// owner identifies who a games row belongs to: a user or an anonymous cookie.
type owner struct {
	userID string
	anonID string
}

func (o owner) clause() (string, any) {
	if o.userID != "" {
		return `user_id=?`, o.userID
	}
	return `anonymous_id=?`, o.anonID
}

// owner returns the authenticated user, or the (possibly new) anon cookie ID.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) owner {
	if me := userFrom(r.Context()); me != nil {
		return owner{userID: me.ID}
	}
	return owner{anonID: s.ensureAnonID(w, r)}
}

// recordNewGame inserts the games row. The answer is not stored.
func (s *Server) recordNewGame(ctx context.Context, gameID string, o owner) {
	now := s.now().UTC().Format(time.RFC3339)
	var userID, anonID any
	if o.userID != "" {
		userID = o.userID
	} else {
		anonID = o.anonID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, user_id, anonymous_id, answer, started_at, status, guesses)
		 VALUES (?,?,?,?,?,?,0)`, gameID, userID, anonID, "", now, "playing")
	if err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("insert game row")
	}
}

// recordGuess bumps the guess counter and, once the game is finished, the
// status and the owner's stats, all in one transaction.
func (s *Server) recordGuess(ctx context.Context, gameID string, o owner, state string) {
	ownerClause, ownerArg := o.clause()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin guess tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE games SET guesses = guesses + 1 WHERE id=? AND `+ownerClause, gameID, ownerArg); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("update guesses")
		return
	}

	if state == "won" || state == "lost" {
		if _, err := tx.ExecContext(ctx, `UPDATE games SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			state, s.now().UTC().Format(time.RFC3339), gameID, ownerArg); err != nil {
			log.Warn().Err(err).Str("gameId", gameID).Msg("finish game")
			return
		}
		if o.userID != "" {
			if err := bumpStats(ctx, tx, o.userID, state == "won"); err != nil {
				log.Warn().Err(err).Str("user", o.userID).Msg("bump stats")
				return
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("commit guess")
	}
}

// recordReset starts the games row over for the new round.
func (s *Server) recordReset(ctx context.Context, gameID string, o owner) {
	ownerClause, ownerArg := o.clause()
	_, err := s.db.ExecContext(ctx,
		`UPDATE games SET guesses=0, status='playing', started_at=?, finished_at=NULL WHERE id=? AND `+ownerClause,
		s.now().UTC().Format(time.RFC3339), gameID, ownerArg)
	if err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("reset game row")
	}
}

// bumpStats increments games played; updates wins and streak based on result.
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.ExecContext(ctx, `UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}
