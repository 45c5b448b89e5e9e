package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository"
)

// fakeUsers implements UserStore in memory.
type fakeUsers struct {
	emails    map[string]bool   // addresses already taken
	passwords map[uint64]string // userID -> correct password
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

func (f *fakeUsers) CheckPassword(_ context.Context, id uint64, raw string) (bool, error) {
	return f.passwords[id] == raw, nil
}

// fakePending implements PendingEmailStore with the same contract as the
// SQL repository: Consume checks digest and expiry, applies the email and
// deletes the row atomically.
type fakePending struct {
	rows    map[uint64]model.PendingEmailChange
	applied map[uint64]string // userID -> email written by Consume
}

func newFakePending() *fakePending {
	return &fakePending{rows: map[uint64]model.PendingEmailChange{}, applied: map[uint64]string{}}
}

func (f *fakePending) Upsert(_ context.Context, p model.PendingEmailChange) error {
	f.rows[p.UserID] = p
	return nil
}

func (f *fakePending) Get(_ context.Context, userID uint64) (model.PendingEmailChange, error) {
	p, ok := f.rows[userID]
	if !ok {
		return model.PendingEmailChange{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePending) Consume(_ context.Context, userID uint64, digest string, now time.Time) (string, error) {
	p, ok := f.rows[userID]
	if !ok || p.TokenDigest != digest || now.After(p.ExpiresAt) {
		return "", repository.ErrNotFound
	}
	f.applied[userID] = p.NewEmail
	delete(f.rows, userID)
	return p.NewEmail, nil
}

// fakeSigner returns path?query links without a real signature.
type fakeSigner struct{}

func (fakeSigner) Sign(path string, _ time.Time, params url.Values) string {
	return path + "?" + params.Encode()
}

// fakeMailer records queued mail and can be told to fail.
type fakeMailer struct {
	sent []map[string]string
	to   []string
	fail bool
}

func (f *fakeMailer) Send(_ context.Context, to, _ string, vars map[string]string) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.to = append(f.to, to)
	f.sent = append(f.sent, vars)
	return nil
}

func newEmailChangeFixture() (*EmailChange, *fakeUsers, *fakePending, *fakeMailer) {
	users := &fakeUsers{
		emails:    map[string]bool{"taken@x.com": true},
		passwords: map[uint64]string{1: "correct-horse"},
	}
	pending := newFakePending()
	mailer := &fakeMailer{}
	return NewEmailChange(users, pending, fakeSigner{}, mailer), users, pending, mailer
}

// tokenFromMail extracts the raw secret out of the last queued link.
func tokenFromMail(t *testing.T, m *fakeMailer) string {
	t.Helper()
	if len(m.sent) == 0 {
		t.Fatal("no mail was queued")
	}
	link := m.sent[len(m.sent)-1]["link"]
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse mailed link %q: %v", link, err)
	}
	token := u.Query().Get("token")
	if token == "" {
		t.Fatalf("mailed link %q carries no token", link)
	}
	return token
}

func TestRequest_ValidationAndAuthenticationAreDistinct(t *testing.T) {
	svc, _, _, _ := newEmailChangeFixture()
	ctx := context.Background()

	// Confirmation mismatch is a validation failure with field detail.
	err := svc.Request(ctx, 1, "correct-horse", "new@x.com", "other@x.com")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("confirmation mismatch: got %v, want ValidationError", err)
	}
	if _, ok := ve.Fields["new_email_confirmation"]; !ok {
		t.Fatalf("validation fields = %v, want new_email_confirmation", ve.Fields)
	}

	// Malformed address.
	if err := svc.Request(ctx, 1, "correct-horse", "not-an-email", "not-an-email"); !errors.As(err, &ve) {
		t.Fatalf("malformed address: got %v, want ValidationError", err)
	}

	// Address already in use.
	if err := svc.Request(ctx, 1, "correct-horse", "taken@x.com", "taken@x.com"); !errors.As(err, &ve) {
		t.Fatalf("taken address: got %v, want ValidationError", err)
	}

	// Wrong password is a different error kind entirely.
	err = svc.Request(ctx, 1, "wrong", "new@x.com", "new@x.com")
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("wrong password: got %v, want ErrWrongPassword", err)
	}
	if errors.As(err, &ve) {
		t.Fatal("wrong password must not be a ValidationError")
	}
}

func TestRequest_SecondRequestInvalidatesFirstToken(t *testing.T) {
	svc, _, pending, mailer := newEmailChangeFixture()
	ctx := context.Background()

	if err := svc.Request(ctx, 1, "correct-horse", "first@x.com", "first@x.com"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	firstToken := tokenFromMail(t, mailer)

	if err := svc.Request(ctx, 1, "correct-horse", "second@x.com", "second@x.com"); err != nil {
		t.Fatalf("second request: %v", err)
	}
	secondToken := tokenFromMail(t, mailer)

	if len(pending.rows) != 1 {
		t.Fatalf("pending rows = %d, want exactly 1", len(pending.rows))
	}
	if pending.rows[1].NewEmail != "second@x.com" {
		t.Fatalf("pending email = %q, want the latest request", pending.rows[1].NewEmail)
	}

	// The first token is no longer redeemable.
	if err := svc.Verify(ctx, 1, firstToken); !errors.Is(err, ErrInvalidOrExpiredLink) {
		t.Fatalf("first token verify: got %v, want ErrInvalidOrExpiredLink", err)
	}
	// The second still is.
	if err := svc.Verify(ctx, 1, secondToken); err != nil {
		t.Fatalf("second token verify: %v", err)
	}
}

func TestVerify_EndToEndAndSingleUse(t *testing.T) {
	svc, _, pending, mailer := newEmailChangeFixture()
	ctx := context.Background()

	if err := svc.Request(ctx, 1, "correct-horse", "new@x.com", "new@x.com"); err != nil {
		t.Fatalf("request: %v", err)
	}
	if mailer.to[0] != "new@x.com" {
		t.Fatalf("verification mail went to %q, want the NEW address", mailer.to[0])
	}
	token := tokenFromMail(t, mailer)

	if err := svc.Verify(ctx, 1, token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if pending.applied[1] != "new@x.com" {
		t.Fatalf("applied email = %q, want new@x.com", pending.applied[1])
	}
	// Pending state is gone.
	if _, err := svc.PendingFor(ctx, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("pending after verify: got %v, want ErrNotFound", err)
	}
	// Replay fails: the record no longer exists.
	if err := svc.Verify(ctx, 1, token); !errors.Is(err, ErrInvalidOrExpiredLink) {
		t.Fatalf("replayed verify: got %v, want ErrInvalidOrExpiredLink", err)
	}
}

func TestVerify_ExpiredTokenFailsEvenWithMatchingDigest(t *testing.T) {
	svc, _, pending, mailer := newEmailChangeFixture()
	ctx := context.Background()

	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return start }
	if err := svc.Request(ctx, 1, "correct-horse", "new@x.com", "new@x.com"); err != nil {
		t.Fatalf("request: %v", err)
	}
	token := tokenFromMail(t, mailer)

	// One minute past the 24 hour window.
	svc.Now = func() time.Time { return start.Add(24*time.Hour + time.Minute) }
	if err := svc.Verify(ctx, 1, token); !errors.Is(err, ErrInvalidOrExpiredLink) {
		t.Fatalf("expired verify: got %v, want ErrInvalidOrExpiredLink", err)
	}
	// The record is still there, merely inert.
	if len(pending.rows) != 1 {
		t.Fatal("expired record should not be purged by a failed verify")
	}
}

func TestRequest_MailFailureDoesNotFailTheRequest(t *testing.T) {
	svc, _, pending, mailer := newEmailChangeFixture()
	mailer.fail = true

	if err := svc.Request(context.Background(), 1, "correct-horse", "new@x.com", "new@x.com"); err != nil {
		t.Fatalf("request with failing mailer: %v", err)
	}
	if len(pending.rows) != 1 {
		t.Fatal("token issuance must survive mail dispatch failure")
	}
}
