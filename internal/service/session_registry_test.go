package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository"
)

// fakeSessions implements SessionStore backed by maps. tokens mirrors the
// credential store so tests can observe token deletion.
type fakeSessions struct {
	rows   map[string]model.Session
	tokens map[uint64]bool
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{rows: map[string]model.Session{}, tokens: map[uint64]bool{}}
}

func (f *fakeSessions) add(s model.Session) {
	f.rows[s.ID] = s
	f.tokens[s.TokenID] = true
}

func (f *fakeSessions) ListActive(_ context.Context, userID uint64, cutoff time.Time) ([]model.Session, error) {
	var out []model.Session
	for _, s := range f.rows {
		if s.UserID == userID && !s.LastActivity.Before(cutoff) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastActivity.After(out[j].LastActivity) })
	return out, nil
}

func (f *fakeSessions) FindForUser(_ context.Context, userID uint64, sessionID string) (model.Session, error) {
	s, ok := f.rows[sessionID]
	if !ok || s.UserID != userID {
		return model.Session{}, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessions) DeleteWithToken(_ context.Context, sessionID string) error {
	s, ok := f.rows[sessionID]
	if !ok {
		return repository.ErrNotFound
	}
	delete(f.tokens, s.TokenID) // deleting an absent token is fine
	delete(f.rows, sessionID)
	return nil
}

func (f *fakeSessions) RepointToken(_ context.Context, oldTokenID, newTokenID uint64) error {
	for id, s := range f.rows {
		if s.TokenID == oldTokenID {
			s.TokenID = newTokenID
			f.rows[id] = s
			f.tokens[newTokenID] = true
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeCredentials implements CredentialStore, tracking which hashes were
// stored and which were revoked.
type fakeCredentials struct {
	nextID  uint64
	ids     map[string]uint64
	revoked map[string]bool
}

func newFakeCredentials() *fakeCredentials {
	return &fakeCredentials{nextID: 100, ids: map[string]uint64{}, revoked: map[string]bool{}}
}

func (f *fakeCredentials) StoreRefresh(_ context.Context, _ uint64, hash string, _ time.Time) (uint64, error) {
	f.nextID++
	f.ids[hash] = f.nextID
	return f.nextID, nil
}

func (f *fakeCredentials) RevokeByHash(_ context.Context, hash string) error {
	f.revoked[hash] = true
	return nil
}

func TestList_OrdersFiltersAndFlagsCurrent(t *testing.T) {
	store := newFakeSessions()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	store.add(model.Session{ID: "s-old", UserID: 1, TokenID: 10, LastActivity: now.Add(-31 * 24 * time.Hour)})
	store.add(model.Session{ID: "s-current", UserID: 1, TokenID: 11, LastActivity: now.Add(-time.Hour)})
	store.add(model.Session{ID: "s-phone", UserID: 1, TokenID: 12, LastActivity: now.Add(-2 * time.Hour)})
	store.add(model.Session{ID: "s-other-user", UserID: 2, TokenID: 20, LastActivity: now})

	reg := NewSessionRegistry(store, newFakeCredentials())
	reg.Now = func() time.Time { return now }

	infos, err := reg.List(context.Background(), 1, 11)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("listed %d sessions, want 2 (30-day window, own sessions only)", len(infos))
	}
	if infos[0].ID != "s-current" || infos[1].ID != "s-phone" {
		t.Fatalf("order = %s,%s, want most recent first", infos[0].ID, infos[1].ID)
	}
	if !infos[0].IsCurrent || infos[1].IsCurrent {
		t.Fatal("is_current must flag exactly the session backing the caller's token")
	}
}

func TestRevoke_OtherUsersSessionIsNotFoundAndUntouched(t *testing.T) {
	store := newFakeSessions()
	now := time.Now().UTC()
	store.add(model.Session{ID: "s-victim", UserID: 2, TokenID: 20, LastActivity: now})

	reg := NewSessionRegistry(store, newFakeCredentials())
	err := reg.Revoke(context.Background(), 1, "s-victim")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("revoke foreign session: got %v, want ErrNotFound", err)
	}
	if _, ok := store.rows["s-victim"]; !ok {
		t.Fatal("foreign session was deleted as a side effect")
	}
	if !store.tokens[20] {
		t.Fatal("foreign credential token was deleted as a side effect")
	}
}

func TestRevoke_DeletesSessionAndCredentialTogether(t *testing.T) {
	store := newFakeSessions()
	now := time.Now().UTC()
	store.add(model.Session{ID: "s-laptop", UserID: 1, TokenID: 10, LastActivity: now})

	reg := NewSessionRegistry(store, newFakeCredentials())
	if err := reg.Revoke(context.Background(), 1, "s-laptop"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, ok := store.rows["s-laptop"]; ok {
		t.Fatal("session record survived revoke")
	}
	if store.tokens[10] {
		t.Fatal("credential token survived revoke")
	}
}

func TestRevokeOthers_SparesCurrentAndCountsTheRest(t *testing.T) {
	store := newFakeSessions()
	now := time.Now().UTC()
	store.add(model.Session{ID: "s1", UserID: 1, TokenID: 11, LastActivity: now})
	store.add(model.Session{ID: "s2", UserID: 1, TokenID: 12, LastActivity: now.Add(-time.Hour)})
	// Even a soft-expired session gets revoked by revoke-others.
	store.add(model.Session{ID: "s-stale", UserID: 1, TokenID: 13, LastActivity: now.Add(-60 * 24 * time.Hour)})
	store.add(model.Session{ID: "s-other-user", UserID: 2, TokenID: 20, LastActivity: now})

	reg := NewSessionRegistry(store, newFakeCredentials())
	count, err := reg.RevokeOthers(context.Background(), 1, 11)
	if err != nil {
		t.Fatalf("revoke others: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if _, ok := store.rows["s1"]; !ok {
		t.Fatal("current session was revoked")
	}
	if !store.tokens[11] {
		t.Fatal("current credential token was deleted")
	}
	for _, id := range []string{"s2", "s-stale"} {
		if _, ok := store.rows[id]; ok {
			t.Fatalf("session %s survived revoke-others", id)
		}
	}
	if store.tokens[12] || store.tokens[13] {
		t.Fatal("credential tokens of revoked sessions survived")
	}
	if _, ok := store.rows["s-other-user"]; !ok {
		t.Fatal("another user's session was revoked")
	}
}

func TestRevokeOthers_CurrentSessionWithTwoTotal(t *testing.T) {
	store := newFakeSessions()
	now := time.Now().UTC()
	store.add(model.Session{ID: "s1", UserID: 1, TokenID: 11, LastActivity: now})
	store.add(model.Session{ID: "s2", UserID: 1, TokenID: 12, LastActivity: now.Add(-time.Minute)})

	reg := NewSessionRegistry(store, newFakeCredentials())
	count, err := reg.RevokeOthers(context.Background(), 1, 11)
	if err != nil {
		t.Fatalf("revoke others: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	infos, err := reg.List(context.Background(), 1, 11)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 || infos[0].ID != "s1" || !infos[0].IsCurrent {
		t.Fatalf("after revoke-others, listing = %+v, want only the current session", infos)
	}
}

func TestRotate_RepointsSessionAndRevokesOldCredential(t *testing.T) {
	store := newFakeSessions()
	creds := newFakeCredentials()
	now := time.Now().UTC()
	store.add(model.Session{ID: "s1", UserID: 1, TokenID: 11, LastActivity: now})

	reg := NewSessionRegistry(store, creds)
	newID, err := reg.Rotate(context.Background(), 1, 11, "old-hash", "new-hash", now.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if got := creds.ids["new-hash"]; got != newID {
		t.Fatalf("new credential id = %d, stored as %d", newID, got)
	}
	if !creds.revoked["old-hash"] {
		t.Fatal("old credential was not revoked")
	}
	if creds.revoked["new-hash"] {
		t.Fatal("new credential must not be revoked")
	}
	if store.rows["s1"].TokenID != newID {
		t.Fatalf("session token id = %d, want re-pointed to %d", store.rows["s1"].TokenID, newID)
	}

	// The rotated session is still the caller's current one under the new id.
	infos, err := reg.List(context.Background(), 1, newID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 || !infos[0].IsCurrent {
		t.Fatalf("after rotation, listing = %+v, want one current session", infos)
	}
}

func TestRotate_UnknownSessionStoresNothingVisible(t *testing.T) {
	store := newFakeSessions()
	creds := newFakeCredentials()

	reg := NewSessionRegistry(store, creds)
	_, err := reg.Rotate(context.Background(), 1, 99, "old-hash", "new-hash", time.Now().UTC().Add(time.Hour))
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("rotate without a session row: got %v, want ErrNotFound", err)
	}
	if creds.revoked["old-hash"] {
		t.Fatal("old credential revoked even though the session repoint failed")
	}
}
