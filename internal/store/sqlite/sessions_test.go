package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retetaapp/reteta-server/internal/domain"
	"github.com/retetaapp/reteta-server/internal/store"
)

func makeTestSession(id, userID, tokenHash string, ttl time.Duration) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		ExpiresAt:        now.Add(ttl),
		CreatedAt:        now,
	}
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "usr-sess")

	sess := makeTestSession("ses-1", "usr-sess", "hash-abc", time.Hour)
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSessionByTokenHash(ctx, "hash-abc")
	if err != nil {
		t.Fatalf("GetSessionByTokenHash: %v", err)
	}
	if got.ID != "ses-1" {
		t.Errorf("ID: got %q", got.ID)
	}
	if got.UserID != "usr-sess" {
		t.Errorf("UserID: got %q", got.UserID)
	}
	if got.IsExpired() {
		t.Error("session should not be expired")
	}
}

func TestGetSession_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetSessionByTokenHash(ctx, "no-such-hash")
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "usr-del")

	sess := makeTestSession("ses-del", "usr-del", "hash-del", time.Hour)
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := s.DeleteSession(ctx, "ses-del"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetSessionByTokenHash(ctx, "hash-del"); !errors.Is(err, store.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}

	// Second delete reports not found.
	if err := s.DeleteSession(ctx, "ses-del"); !errors.Is(err, store.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "usr-exp")

	live := makeTestSession("ses-live", "usr-exp", "hash-live", time.Hour)
	expired := makeTestSession("ses-old", "usr-exp", "hash-old", -time.Hour)
	for _, sess := range []*domain.Session{live, expired} {
		if err := s.CreateSession(ctx, sess); err != nil {
			t.Fatalf("CreateSession %s: %v", sess.ID, err)
		}
	}

	n, err := s.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted: got %d, want 1", n)
	}

	if _, err := s.GetSessionByTokenHash(ctx, "hash-live"); err != nil {
		t.Errorf("live session should survive: %v", err)
	}
	if _, err := s.GetSessionByTokenHash(ctx, "hash-old"); !errors.Is(err, store.ErrSessionNotFound) {
		t.Errorf("expired session should be gone, got %v", err)
	}
}
