package service

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository"
	"github.com/jarthurreyes30-tech/charityhub-api/internal/utils"
)

// VerifyPath is the route the signed verification link points at.
const VerifyPath = "/v1/account/email/verify"

// pendingTTL is how long a pending email change stays redeemable. The signed
// link carries the same expiry independently; both checks must pass.
const pendingTTL = 24 * time.Hour

// UserStore is the slice of the user repository the workflow needs.
type UserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CheckPassword(ctx context.Context, id uint64, raw string) (bool, error)
}

// PendingEmailStore persists at most one pending change per user. Consume
// must check digest and expiry, rewrite the user's email and delete the
// record atomically, returning repository.ErrNotFound for any mismatch.
type PendingEmailStore interface {
	Upsert(ctx context.Context, p model.PendingEmailChange) error
	Get(ctx context.Context, userID uint64) (model.PendingEmailChange, error)
	Consume(ctx context.Context, userID uint64, digest string, now time.Time) (string, error)
}

// LinkSigner mints signed, expiring URLs. Verification of incoming links
// happens in middleware before the handler runs.
type LinkSigner interface {
	Sign(path string, expiry time.Time, params url.Values) string
}

// EmailChange implements the email-change verification workflow: a user
// proves they hold the account password, receives a one-time link at the
// new address, and redeems it exactly once within 24 hours.
type EmailChange struct {
	Users   UserStore
	Pending PendingEmailStore
	Signer  LinkSigner
	Mail    Mailer
	Now     func() time.Time // test hook; defaults to time.Now UTC
}

func NewEmailChange(users UserStore, pending PendingEmailStore, signer LinkSigner, mail Mailer) *EmailChange {
	return &EmailChange{Users: users, Pending: pending, Signer: signer, Mail: mail}
}

func (s *EmailChange) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Request validates the desired address, checks the account password, and
// stores a new pending change (replacing any prior one — only the most
// recent request is honored). The verification link goes to the NEW address
// via the mailer; it is never returned to the caller, and mail failure never
// fails the request.
func (s *EmailChange) Request(ctx context.Context, userID uint64, currentPassword, newEmail, confirmation string) error {
	newEmail = strings.ToLower(strings.TrimSpace(newEmail))
	confirmation = strings.ToLower(strings.TrimSpace(confirmation))

	fields := map[string]string{}
	if newEmail == "" {
		fields["new_email"] = "required"
	} else if _, err := mail.ParseAddress(newEmail); err != nil {
		fields["new_email"] = "must be a valid email address"
	}
	if newEmail != confirmation {
		fields["new_email_confirmation"] = "does not match new email"
	}
	if len(fields) == 0 {
		exists, err := s.Users.EmailExists(ctx, newEmail)
		if err != nil {
			return err
		}
		if exists {
			fields["new_email"] = "already in use by another account"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	ok, err := s.Users.CheckPassword(ctx, userID, currentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWrongPassword
	}

	secret, err := utils.NewEmailChangeSecret()
	if err != nil {
		return err
	}
	now := s.now()
	if err := s.Pending.Upsert(ctx, model.PendingEmailChange{
		UserID:      userID,
		NewEmail:    newEmail,
		TokenDigest: utils.HashTokenRaw(secret),
		CreatedAt:   now,
		ExpiresAt:   now.Add(pendingTTL),
	}); err != nil {
		return err
	}

	link := s.Signer.Sign(VerifyPath, now.Add(pendingTTL), url.Values{
		"user":  {strconv.FormatUint(userID, 10)},
		"token": {secret},
	})
	if err := s.Mail.Send(ctx, newEmail, "email_change_verification", map[string]string{"link": link}); err != nil {
		log.Printf("email-change: queue verification mail for user %d failed: %v", userID, err)
	}
	return nil
}

// Verify redeems a pending change. The raw token from the link is hashed
// and matched against the stored digest; on success the user's email is
// rewritten and the record deleted in a single transaction, so a second
// verify with the same token fails. Missing record, wrong token and expired
// record are indistinguishable.
func (s *EmailChange) Verify(ctx context.Context, userID uint64, rawToken string) error {
	if userID == 0 || strings.TrimSpace(rawToken) == "" {
		return ErrInvalidOrExpiredLink
	}
	_, err := s.Pending.Consume(ctx, userID, utils.HashTokenRaw(rawToken), s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidOrExpiredLink
	}
	return err
}

// PendingFor reports the pending change for a user, with the digest blanked
// so it can be rendered to the account owner.
func (s *EmailChange) PendingFor(ctx context.Context, userID uint64) (model.PendingEmailChange, error) {
	p, err := s.Pending.Get(ctx, userID)
	if err != nil {
		return model.PendingEmailChange{}, err
	}
	p.TokenDigest = ""
	return p, nil
}
