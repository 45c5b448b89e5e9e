package service

import (
	"context"
	"errors"
	"time"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository"
)

// sessionWindow is the soft expiry for listings: sessions idle longer than
// this are excluded but not deleted.
const sessionWindow = 30 * 24 * time.Hour

// SessionStore is the slice of the session repository the registry needs.
// DeleteWithToken must remove the session record and its credential token
// together; a token that is already gone is not an error.
type SessionStore interface {
	ListActive(ctx context.Context, userID uint64, cutoff time.Time) ([]model.Session, error)
	FindForUser(ctx context.Context, userID uint64, sessionID string) (model.Session, error)
	DeleteWithToken(ctx context.Context, sessionID string) error
	RepointToken(ctx context.Context, oldTokenID, newTokenID uint64) error
}

// CredentialStore is the slice of the token repository rotation needs.
// RevokeByHash must leave the old row behind, marked revoked, so rotations
// stay auditable.
type CredentialStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
}

// SessionInfo is one row of the session listing shown to the account owner.
type SessionInfo struct {
	ID           string    `json:"id"`
	IP           string    `json:"ip"`
	UserAgent    string    `json:"user_agent"`
	LastActivity time.Time `json:"last_activity_at"`
	IsCurrent    bool      `json:"is_current"`
}

// SessionRegistry tracks one record per active login token and keeps the
// record store consistent with the credential store: revoking a session
// always revokes the token behind it.
type SessionRegistry struct {
	Sessions SessionStore
	Tokens   CredentialStore
	Now      func() time.Time // test hook; defaults to time.Now UTC
}

func NewSessionRegistry(sessions SessionStore, tokens CredentialStore) *SessionRegistry {
	return &SessionRegistry{Sessions: sessions, Tokens: tokens}
}

func (r *SessionRegistry) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

// List returns the user's sessions active within the last 30 days, most
// recent first. The session backed by currentTokenID is flagged; a session
// whose token no longer resolves simply never matches.
func (r *SessionRegistry) List(ctx context.Context, userID, currentTokenID uint64) ([]SessionInfo, error) {
	sessions, err := r.Sessions.ListActive(ctx, userID, r.now().Add(-sessionWindow))
	if err != nil {
		return nil, err
	}
	out := make([]SessionInfo, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionInfo{
			ID:           s.ID,
			IP:           s.IP,
			UserAgent:    s.UserAgent,
			LastActivity: s.LastActivity,
			IsCurrent:    currentTokenID != 0 && s.TokenID == currentTokenID,
		})
	}
	return out, nil
}

// Revoke deletes one of the user's sessions along with its credential
// token. Sessions owned by another user surface as repository.ErrNotFound
// and nothing is deleted.
func (r *SessionRegistry) Revoke(ctx context.Context, userID uint64, sessionID string) error {
	if _, err := r.Sessions.FindForUser(ctx, userID, sessionID); err != nil {
		return err
	}
	return r.Sessions.DeleteWithToken(ctx, sessionID)
}

// RevokeOthers revokes every session of the user except the one backed by
// currentTokenID, regardless of how stale the current one is, and returns
// the number revoked.
func (r *SessionRegistry) RevokeOthers(ctx context.Context, userID, currentTokenID uint64) (int, error) {
	// Zero cutoff: even soft-expired sessions get revoked here.
	sessions, err := r.Sessions.ListActive(ctx, userID, time.Time{})
	if err != nil {
		return 0, err
	}
	count := 0
	for _, s := range sessions {
		if s.TokenID == currentTokenID {
			continue
		}
		if err := r.Sessions.DeleteWithToken(ctx, s.ID); err != nil {
			// A concurrent revoke may have removed it already.
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return count, err
		}
		count++
	}
	return count, nil
}

// Rotate exchanges a session's refresh credential: the new token is stored,
// the session record is re-pointed at it, and only then is the old
// credential revoked by hash. The revoked row stays in the credential store
// as an audit trail of the rotation. Returns the new credential id.
func (r *SessionRegistry) Rotate(ctx context.Context, userID, oldTokenID uint64, oldHash, newHash string, exp time.Time) (uint64, error) {
	newTokenID, err := r.Tokens.StoreRefresh(ctx, userID, newHash, exp)
	if err != nil {
		return 0, err
	}
	if err := r.Sessions.RepointToken(ctx, oldTokenID, newTokenID); err != nil {
		return 0, err
	}
	if err := r.Tokens.RevokeByHash(ctx, oldHash); err != nil {
		return 0, err
	}
	return newTokenID, nil
}
