package model

import "time"

// RefreshToken models an entry in the `refresh_tokens` table.  A
// refresh token is the credential backing a login session.  The
// plain token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

// Session is the device/session record shown to users under
// "active sessions".  Every session references the refresh token
// that backs it; when that token is revoked the session record is
// deleted with it.  Sessions whose last activity is older than 30
// days are treated as expired by listings but are not purged here.
//
// Fields:
//  ID           – public session identifier (UUID string).
//  UserID       – owner of the session.
//  TokenID      – refresh_tokens.id backing this session.
//  IP           – client address captured at login.
//  UserAgent    – client user agent captured at login.
//  LastActivity – refreshed on token rotation.
//  CreatedAt    – timestamp of login.
type Session struct {
	ID           string    // sessions.id (uuid)
	UserID       uint64    // sessions.user_id
	TokenID      uint64    // sessions.token_id
	IP           string    // sessions.ip
	UserAgent    string    // sessions.user_agent
	LastActivity time.Time // sessions.last_activity
	CreatedAt    time.Time // sessions.created_at
}

// PendingEmailChange is the single in-flight email change request
// a user may have.  The user_id column is unique, so issuing a new
// request overwrites the previous one and invalidates its token.
// Only the SHA-256 digest of the mailed secret is stored.
//
// Fields:
//  UserID      – owner of the request (unique).
//  NewEmail    – the address the user wants to switch to.
//  TokenDigest – SHA-256 hex digest of the mailed secret.
//  CreatedAt   – when the request was issued.
//  ExpiresAt   – CreatedAt + 24h; the record is inert afterwards.
type PendingEmailChange struct {
	UserID      uint64    // pending_email_changes.user_id
	NewEmail    string    // pending_email_changes.new_email
	TokenDigest string    // pending_email_changes.token_digest
	CreatedAt   time.Time // pending_email_changes.created_at
	ExpiresAt   time.Time // pending_email_changes.expires_at
}
