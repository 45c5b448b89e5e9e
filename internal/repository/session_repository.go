package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
)

// SessionRepo stores one row per active login session. Rows are created at
// login, re-pointed on token rotation and deleted together with their
// credential token on revocation.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts a session row.
func (r *SessionRepo) Create(ctx context.Context, s model.Session) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (id, user_id, token_id, ip, user_agent, last_activity) VALUES (?,?,?,?,?,?)",
		s.ID, s.UserID, s.TokenID, s.IP, s.UserAgent, s.LastActivity)
	return err
}

// ListActive returns the user's sessions whose last activity is at or after
// cutoff, most recent first.
func (r *SessionRepo) ListActive(ctx context.Context, userID uint64, cutoff time.Time) ([]model.Session, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, token_id, ip, user_agent, last_activity, created_at
		 FROM sessions WHERE user_id=? AND last_activity >= ?
		 ORDER BY last_activity DESC`,
		userID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.TokenID, &s.IP, &s.UserAgent, &s.LastActivity, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindForUser fetches a session by id scoped to its owner. Sessions owned by
// other users surface as ErrNotFound.
func (r *SessionRepo) FindForUser(ctx context.Context, userID uint64, sessionID string) (model.Session, error) {
	var s model.Session
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token_id, ip, user_agent, last_activity, created_at FROM sessions WHERE id=? AND user_id=? LIMIT 1",
		sessionID, userID).Scan(&s.ID, &s.UserID, &s.TokenID, &s.IP, &s.UserAgent, &s.LastActivity, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Session{}, ErrNotFound
	}
	return s, err
}

// FindByTokenID fetches the session backed by a credential token.
func (r *SessionRepo) FindByTokenID(ctx context.Context, tokenID uint64) (model.Session, error) {
	var s model.Session
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token_id, ip, user_agent, last_activity, created_at FROM sessions WHERE token_id=? LIMIT 1",
		tokenID).Scan(&s.ID, &s.UserID, &s.TokenID, &s.IP, &s.UserAgent, &s.LastActivity, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Session{}, ErrNotFound
	}
	return s, err
}

// DeleteWithToken removes a session row and the credential token backing it
// inside one transaction. The token may already be gone (expired and purged
// independently); deleting the session alone still succeeds.
func (r *SessionRepo) DeleteWithToken(ctx context.Context, sessionID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var tokenID uint64
	err = tx.QueryRowContext(ctx, "SELECT token_id FROM sessions WHERE id=?", sessionID).Scan(&tokenID)
	if err == sql.ErrNoRows {
		err = ErrNotFound
		return err
	}
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE id=?", tokenID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM sessions WHERE id=?", sessionID); err != nil {
		return err
	}
	return nil
}

// RepointToken moves a session from an old credential token to its rotated
// replacement and refreshes last_activity. ErrNotFound means no session is
// backed by the old token.
func (r *SessionRepo) RepointToken(ctx context.Context, oldTokenID, newTokenID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET token_id=?, last_activity=NOW() WHERE token_id=?",
		newTokenID, oldTokenID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
