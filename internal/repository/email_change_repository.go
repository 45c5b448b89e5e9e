package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
)

// EmailChangeRepo persists pending email-change requests. The user_id column
// carries a unique key, so Upsert implements the "latest request wins" rule:
// a second request replaces the first and its digest, making the first token
// unverifiable.
type EmailChangeRepo struct{ DB *sql.DB }

func NewEmailChangeRepo(db *sql.DB) *EmailChangeRepo { return &EmailChangeRepo{DB: db} }

// Upsert writes the pending change for a user, replacing any prior one.
func (r *EmailChangeRepo) Upsert(ctx context.Context, p model.PendingEmailChange) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO pending_email_changes (user_id, new_email, token_digest, created_at, expires_at)
		 VALUES (?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE new_email=VALUES(new_email), token_digest=VALUES(token_digest),
		   created_at=VALUES(created_at), expires_at=VALUES(expires_at)`,
		p.UserID, p.NewEmail, p.TokenDigest, p.CreatedAt, p.ExpiresAt)
	return err
}

// Get returns the pending change for a user, or ErrNotFound.
func (r *EmailChangeRepo) Get(ctx context.Context, userID uint64) (model.PendingEmailChange, error) {
	var p model.PendingEmailChange
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, new_email, token_digest, created_at, expires_at FROM pending_email_changes WHERE user_id=? LIMIT 1",
		userID).Scan(&p.UserID, &p.NewEmail, &p.TokenDigest, &p.CreatedAt, &p.ExpiresAt)
	if err == sql.ErrNoRows {
		return model.PendingEmailChange{}, ErrNotFound
	}
	return p, err
}

// Consume redeems a pending change in one transaction: it locks the row,
// checks the digest and expiry, rewrites the user's email and deletes the
// record. Any mismatch rolls back and surfaces as ErrNotFound so callers
// cannot tell a missing record from a stale or wrong token. After a commit a
// duplicate attempt observes the row as absent.
func (r *EmailChangeRepo) Consume(ctx context.Context, userID uint64, digest string, now time.Time) (string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var (
		newEmail  string
		expiresAt time.Time
	)
	err = tx.QueryRowContext(ctx,
		"SELECT new_email, expires_at FROM pending_email_changes WHERE user_id=? AND token_digest=? FOR UPDATE",
		userID, digest).Scan(&newEmail, &expiresAt)
	if err == sql.ErrNoRows {
		err = ErrNotFound
		return "", err
	}
	if err != nil {
		return "", err
	}
	if now.After(expiresAt) {
		err = ErrNotFound
		return "", err
	}
	if _, err = tx.ExecContext(ctx, "UPDATE users SET email=? WHERE id=?", newEmail, userID); err != nil {
		return "", err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM pending_email_changes WHERE user_id=?", userID); err != nil {
		return "", err
	}
	return newEmail, nil
}
