package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists/validates refresh tokens (single 'token_hash' column).
// Refresh tokens are the credential store behind the session registry: a
// session record points at the refresh_tokens row that backs it.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh inserts a refresh token hash row and returns its id.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ValidateRefresh returns (tokenID, userID) if a non-revoked, non-expired
// token with this hash exists.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, uint64, error) {
	var (
		id        uint64
		userID    uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&id, &userID, &expiresAt, &revokedAt)
	if err != nil {
		return 0, 0, err
	}
	if revokedAt.Valid {
		return 0, 0, sql.ErrNoRows
	}
	if time.Now().UTC().After(expiresAt) {
		return 0, 0, sql.ErrNoRows
	}
	return id, userID, nil
}

// RevokeByHash marks a token as revoked without deleting the row. Used by
// token rotation, where the old credential should stop working but the
// session record lives on pointing at the replacement token.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// DeleteByID removes a credential token outright. Deleting a token that is
// already gone is not an error; session revocation relies on that.
func (r *TokenRepo) DeleteByID(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE id=?", id)
	return err
}
