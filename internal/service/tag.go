package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/retetaapp/reteta-server/internal/domain"
	"github.com/retetaapp/reteta-server/internal/id"
	"github.com/retetaapp/reteta-server/internal/normalize"
	"github.com/retetaapp/reteta-server/internal/store"
)

// TagService orchestrates tag operations. Tags are private to their owner.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		logger: logger,
	}
}

// CreateTagRequest contains the data for a new tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// List returns the caller's tags, name descending. With assignedOnly only
// tags attached to at least one of the caller's recipes are returned.
func (s *TagService) List(ctx context.Context, ownerID string, assignedOnly bool) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx, ownerID, assignedOnly)
}

// Create adds a tag for the caller. The name is normalized before
// validation so a whitespace-only name fails as missing.
func (s *TagService) Create(ctx context.Context, ownerID string, req CreateTagRequest) (*domain.Tag, error) {
	req.Name = normalize.Name(req.Name)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	tag := &domain.Tag{
		ID:      tagID,
		OwnerID: ownerID,
		Name:    req.Name,
	}
	tag.InitTimestamps()

	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.logger.Debug("tag created", "tag_id", tagID, "owner_id", ownerID)

	return tag, nil
}
