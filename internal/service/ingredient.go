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

// IngredientService orchestrates ingredient operations, mirroring TagService.
type IngredientService struct {
	store  store.Store
	logger *slog.Logger
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(store store.Store, logger *slog.Logger) *IngredientService {
	return &IngredientService{
		store:  store,
		logger: logger,
	}
}

// CreateIngredientRequest contains the data for a new ingredient.
type CreateIngredientRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// List returns the caller's ingredients, name descending. With assignedOnly
// only ingredients used by at least one of the caller's recipes are returned.
func (s *IngredientService) List(ctx context.Context, ownerID string, assignedOnly bool) ([]*domain.Ingredient, error) {
	return s.store.ListIngredients(ctx, ownerID, assignedOnly)
}

// Create adds an ingredient for the caller. The name is normalized before
// validation so a whitespace-only name fails as missing.
func (s *IngredientService) Create(ctx context.Context, ownerID string, req CreateIngredientRequest) (*domain.Ingredient, error) {
	req.Name = normalize.Name(req.Name)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	ingredientID, err := id.Generate("ing")
	if err != nil {
		return nil, fmt.Errorf("generate ingredient ID: %w", err)
	}

	ing := &domain.Ingredient{
		ID:      ingredientID,
		OwnerID: ownerID,
		Name:    req.Name,
	}
	ing.InitTimestamps()

	if err := s.store.CreateIngredient(ctx, ing); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}

	s.logger.Debug("ingredient created", "ingredient_id", ingredientID, "owner_id", ownerID)

	return ing, nil
}
