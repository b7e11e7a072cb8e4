package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retetaapp/reteta-server/internal/domain"
	"github.com/retetaapp/reteta-server/internal/store"
)

func makeTestTag(id, ownerID, name string) *domain.Tag {
	now := time.Now()
	return &domain.Tag{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "usr-t1")

	tag := makeTestTag("tag-1", "usr-t1", "Vegan")
	if err := s.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	got, err := s.GetTag(ctx, "usr-t1", "tag-1")
	if err != nil {
		t.Fatalf("GetTag: %v", err)
	}
	if got.Name != "Vegan" {
		t.Errorf("Name: got %q, want %q", got.Name, "Vegan")
	}
	if got.OwnerID != "usr-t1" {
		t.Errorf("OwnerID: got %q", got.OwnerID)
	}
	if got.CreatedAt.Unix() != tag.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, tag.CreatedAt)
	}
}

func TestGetTag_WrongOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "usr-owner")
	mustCreateUser(t, s, "usr-other")

	tag := makeTestTag("tag-owned", "usr-owner", "Dessert")
	if err := s.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	// Another owner sees not found, indistinguishable from absence.
	_, err := s.GetTag(ctx, "usr-other", "tag-owned")
	if !errors.Is(err, store.ErrTagNotFound) {
		t.Errorf("expected ErrTagNotFound, got %v", err)
	}
}

func TestListTags_OrderedAndScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "usr-list")
	mustCreateUser(t, s, "usr-noise")

	for _, tc := range []struct{ id, name string }{
		{"tag-a", "Apple"},
		{"tag-b", "Zucchini"},
		{"tag-c", "Mains"},
	} {
		if err := s.CreateTag(ctx, makeTestTag(tc.id, "usr-list", tc.name)); err != nil {
			t.Fatalf("CreateTag %s: %v", tc.id, err)
		}
	}
	// A tag from another owner must never leak into the list.
	if err := s.CreateTag(ctx, makeTestTag("tag-x", "usr-noise", "Middle")); err != nil {
		t.Fatalf("CreateTag noise: %v", err)
	}

	tags, err := s.ListTags(ctx, "usr-list", false)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("len: got %d, want 3", len(tags))
	}
	// Name descending.
	want := []string{"Zucchini", "Mains", "Apple"}
	for i, tag := range tags {
		if tag.Name != want[i] {
			t.Errorf("tags[%d]: got %q, want %q", i, tag.Name, want[i])
		}
	}
}

func TestListTags_AssignedOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "usr-assign")

	assigned := makeTestTag("tag-used", "usr-assign", "Used")
	idle := makeTestTag("tag-idle", "usr-assign", "Idle")
	for _, tag := range []*domain.Tag{assigned, idle} {
		if err := s.CreateTag(ctx, tag); err != nil {
			t.Fatalf("CreateTag: %v", err)
		}
	}

	r := makeTestRecipe("rec-assign", "usr-assign", "Soup")
	r.TagIDs = []string{"tag-used"}
	if err := s.CreateRecipe(ctx, r); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	// A second recipe with the same tag must not duplicate it in the list.
	r2 := makeTestRecipe("rec-assign-2", "usr-assign", "Stew")
	r2.TagIDs = []string{"tag-used"}
	if err := s.CreateRecipe(ctx, r2); err != nil {
		t.Fatalf("CreateRecipe r2: %v", err)
	}

	tags, err := s.ListTags(ctx, "usr-assign", true)
	if err != nil {
		t.Fatalf("ListTags assignedOnly: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("len: got %d, want 1", len(tags))
	}
	if tags[0].ID != "tag-used" {
		t.Errorf("got %q, want tag-used", tags[0].ID)
	}

	// Without the filter both come back.
	all, err := s.ListTags(ctx, "usr-assign", false)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len: got %d, want 2", len(all))
	}
}

func TestListTags_Empty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "usr-empty")

	tags, err := s.ListTags(ctx, "usr-empty", false)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if tags == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(tags) != 0 {
		t.Errorf("len: got %d, want 0", len(tags))
	}
}

func TestMissingTagIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "usr-miss")

	if err := s.CreateTag(ctx, makeTestTag("tag-real", "usr-miss", "Real")); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	missing, err := s.MissingTagIDs(ctx, []string{"tag-real", "tag-fake", "tag-fake"})
	if err != nil {
		t.Fatalf("MissingTagIDs: %v", err)
	}
	if len(missing) != 1 || missing[0] != "tag-fake" {
		t.Errorf("missing: got %v, want [tag-fake]", missing)
	}

	missing, err = s.MissingTagIDs(ctx, nil)
	if err != nil {
		t.Fatalf("MissingTagIDs(nil): %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("missing: got %v, want none", missing)
	}
}
