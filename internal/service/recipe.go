package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/retetaapp/reteta-server/internal/domain"
	domainerrors "github.com/retetaapp/reteta-server/internal/errors"
	"github.com/retetaapp/reteta-server/internal/id"
	"github.com/retetaapp/reteta-server/internal/media/images"
	"github.com/retetaapp/reteta-server/internal/store"
)

// RecipeService orchestrates recipe operations, including photo uploads.
type RecipeService struct {
	store     store.Store
	processor *images.Processor
	logger    *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(store store.Store, processor *images.Processor, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		store:     store,
		processor: processor,
		logger:    logger,
	}
}

// CreateRecipeRequest contains the full data for a new recipe. The tag and
// ingredient lists are authoritative: whatever is sent becomes the relation
// set, an omitted list means none.
type CreateRecipeRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	TimeMinutes   int      `json:"time_minutes" validate:"gte=0"`
	Price         float64  `json:"price" validate:"gte=0"`
	Link          string   `json:"link" validate:"omitempty,max=255"`
	TagIDs        []string `json:"tags"`
	IngredientIDs []string `json:"ingredients"`
}

// UpdateRecipeRequest carries partial recipe changes. Nil fields keep their
// current values; a present (even empty) relation list replaces the set.
type UpdateRecipeRequest struct {
	Title         *string   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	TimeMinutes   *int      `json:"time_minutes,omitempty" validate:"omitempty,gte=0"`
	Price         *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Link          *string   `json:"link,omitempty" validate:"omitempty,max=255"`
	TagIDs        *[]string `json:"tags,omitempty"`
	IngredientIDs *[]string `json:"ingredients,omitempty"`
}

// List returns the caller's recipes, newest first, optionally narrowed by
// tag and ingredient ID filters.
func (s *RecipeService) List(ctx context.Context, ownerID string, filter store.RecipeFilter) ([]*domain.Recipe, error) {
	return s.store.ListRecipes(ctx, ownerID, filter)
}

// Get returns one recipe with its tags and ingredients expanded.
func (s *RecipeService) Get(ctx context.Context, ownerID, recipeID string) (*domain.RecipeDetail, error) {
	return s.store.GetRecipeDetail(ctx, ownerID, recipeID)
}

// Create adds a recipe for the caller. Referenced tag and ingredient IDs
// must exist or the request fails with per-field errors.
func (s *RecipeService) Create(ctx context.Context, ownerID string, req CreateRecipeRequest) (*domain.RecipeDetail, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Link = strings.TrimSpace(req.Link)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if err := s.validateRelations(ctx, req.TagIDs, req.IngredientIDs); err != nil {
		return nil, err
	}

	recipeID, err := id.Generate("rec")
	if err != nil {
		return nil, fmt.Errorf("generate recipe ID: %w", err)
	}

	recipe := &domain.Recipe{
		ID:            recipeID,
		OwnerID:       ownerID,
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.TagIDs,
		IngredientIDs: req.IngredientIDs,
	}
	recipe.InitTimestamps()

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.logger.Debug("recipe created", "recipe_id", recipeID, "owner_id", ownerID)

	return s.store.GetRecipeDetail(ctx, ownerID, recipeID)
}

// Replace overwrites every mutable field of a recipe with the request data.
// Relation lists omitted from the request are cleared, not kept.
func (s *RecipeService) Replace(ctx context.Context, ownerID, recipeID string, req CreateRecipeRequest) (*domain.RecipeDetail, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Link = strings.TrimSpace(req.Link)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if err := s.validateRelations(ctx, req.TagIDs, req.IngredientIDs); err != nil {
		return nil, err
	}

	recipe, err := s.store.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		return nil, err
	}

	recipe.Title = req.Title
	recipe.TimeMinutes = req.TimeMinutes
	recipe.Price = req.Price
	recipe.Link = req.Link
	recipe.TagIDs = req.TagIDs
	recipe.IngredientIDs = req.IngredientIDs
	recipe.Touch()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	return s.store.GetRecipeDetail(ctx, ownerID, recipeID)
}

// Update applies partial changes to a recipe. Absent fields keep their
// current values; a present relation list replaces the whole set.
func (s *RecipeService) Update(ctx context.Context, ownerID, recipeID string, req UpdateRecipeRequest) (*domain.RecipeDetail, error) {
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if req.Link != nil {
		trimmed := strings.TrimSpace(*req.Link)
		req.Link = &trimmed
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	var tagIDs, ingredientIDs []string
	if req.TagIDs != nil {
		tagIDs = *req.TagIDs
	}
	if req.IngredientIDs != nil {
		ingredientIDs = *req.IngredientIDs
	}
	if err := s.validateRelations(ctx, tagIDs, ingredientIDs); err != nil {
		return nil, err
	}

	recipe, err := s.store.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
	if req.TagIDs != nil {
		recipe.TagIDs = *req.TagIDs
	}
	if req.IngredientIDs != nil {
		recipe.IngredientIDs = *req.IngredientIDs
	}
	recipe.Touch()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	return s.store.GetRecipeDetail(ctx, ownerID, recipeID)
}

// Delete removes a recipe and its stored photo, if any.
func (s *RecipeService) Delete(ctx context.Context, ownerID, recipeID string) error {
	recipe, err := s.store.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteRecipe(ctx, ownerID, recipeID); err != nil {
		return err
	}

	if recipe.HasImage() {
		if err := s.processor.Storage().Delete(recipe.ImagePath); err != nil {
			s.logger.Warn("failed to delete recipe image",
				"recipe_id", recipeID,
				"image", recipe.ImagePath,
				"error", err,
			)
		}
	}

	s.logger.Debug("recipe deleted", "recipe_id", recipeID, "owner_id", ownerID)
	return nil
}

// UploadImage validates and stores a photo for the recipe. Bytes that don't
// decode as an image fail with a field error on "image".
func (s *RecipeService) UploadImage(ctx context.Context, ownerID, recipeID string, data []byte) (*domain.RecipeDetail, error) {
	// Ownership check first: a foreign recipe reads as absent.
	if _, err := s.store.GetRecipe(ctx, ownerID, recipeID); err != nil {
		return nil, err
	}

	filename, blurHash, err := s.processor.Process(recipeID, data)
	if err != nil {
		if errors.Is(err, images.ErrNotAnImage) {
			return nil, domainerrors.ValidationFields(map[string]string{
				"image": "upload a valid image",
			})
		}
		return nil, fmt.Errorf("process image: %w", err)
	}

	if err := s.store.SetRecipeImage(ctx, ownerID, recipeID, filename, blurHash); err != nil {
		return nil, err
	}

	s.logger.Debug("recipe image stored", "recipe_id", recipeID, "image", filename)

	return s.store.GetRecipeDetail(ctx, ownerID, recipeID)
}

// validateRelations rejects references to tags or ingredients that don't
// exist, reporting each bad list under its own field.
func (s *RecipeService) validateRelations(ctx context.Context, tagIDs, ingredientIDs []string) error {
	fields := make(map[string]string)

	missingTags, err := s.store.MissingTagIDs(ctx, tagIDs)
	if err != nil {
		return fmt.Errorf("check tag IDs: %w", err)
	}
	if len(missingTags) > 0 {
		fields["tags"] = "unknown tag ids: " + strings.Join(missingTags, ", ")
	}

	missingIngredients, err := s.store.MissingIngredientIDs(ctx, ingredientIDs)
	if err != nil {
		return fmt.Errorf("check ingredient IDs: %w", err)
	}
	if len(missingIngredients) > 0 {
		fields["ingredients"] = "unknown ingredient ids: " + strings.Join(missingIngredients, ", ")
	}

	if len(fields) > 0 {
		return domainerrors.ValidationFields(fields)
	}
	return nil
}
