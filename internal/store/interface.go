// Package store defines the persistence interface for the Reteta server and
// its typed errors. The SQLite implementation lives in store/sqlite.
package store

import (
	"context"

	"github.com/retetaapp/reteta-server/internal/domain"
)

// RecipeFilter narrows a recipe list query. The zero value matches all of
// the owner's recipes. Filters combine with logical AND.
type RecipeFilter struct {
	// TagIDs restricts to recipes whose tag set intersects these IDs.
	TagIDs []string
	// IngredientIDs restricts to recipes whose ingredient set intersects these IDs.
	IngredientIDs []string
}

// IsZero reports whether the filter imposes no restriction.
func (f RecipeFilter) IsZero() bool {
	return len(f.TagIDs) == 0 && len(f.IngredientIDs) == 0
}

// Store is the persistence interface used by the service layer. Every read
// and write of a catalog entity is scoped to its owner; implementations
// must never return an entity for a non-matching ownerID.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error

	// Sessions.
	CreateSession(ctx context.Context, s *domain.Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Tags.
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTag(ctx context.Context, ownerID, tagID string) (*domain.Tag, error)
	ListTags(ctx context.Context, ownerID string, assignedOnly bool) ([]*domain.Tag, error)
	MissingTagIDs(ctx context.Context, tagIDs []string) ([]string, error)

	// Ingredients.
	CreateIngredient(ctx context.Context, ing *domain.Ingredient) error
	GetIngredient(ctx context.Context, ownerID, ingredientID string) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context, ownerID string, assignedOnly bool) ([]*domain.Ingredient, error)
	MissingIngredientIDs(ctx context.Context, ingredientIDs []string) ([]string, error)

	// Recipes.
	CreateRecipe(ctx context.Context, r *domain.Recipe) error
	GetRecipe(ctx context.Context, ownerID, recipeID string) (*domain.Recipe, error)
	GetRecipeDetail(ctx context.Context, ownerID, recipeID string) (*domain.RecipeDetail, error)
	ListRecipes(ctx context.Context, ownerID string, filter RecipeFilter) ([]*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, r *domain.Recipe) error
	DeleteRecipe(ctx context.Context, ownerID, recipeID string) error
	SetRecipeImage(ctx context.Context, ownerID, recipeID, imagePath, blurHash string) error

	Close() error
}
