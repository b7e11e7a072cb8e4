package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/retetaapp/reteta-server/internal/domain"
	"github.com/retetaapp/reteta-server/internal/store"
)

const ingredientColumns = `id, owner_id, name, created_at, updated_at`

func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&ing.ID,
		&ing.OwnerID,
		&ing.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ing.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	ing.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &ing, nil
}

// CreateIngredient inserts a new ingredient.
func (s *Store) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, owner_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		ing.ID,
		ing.OwnerID,
		ing.Name,
		formatTime(ing.CreatedAt),
		formatTime(ing.UpdatedAt),
	)
	return err
}

// GetIngredient retrieves an ingredient by ID, scoped to its owner.
func (s *Store) GetIngredient(ctx context.Context, ownerID, ingredientID string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ? AND owner_id = ?`,
		ingredientID, ownerID)

	ing, err := scanIngredient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrIngredientNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// ListIngredients returns all ingredients owned by ownerID, ordered by name
// descending. With assignedOnly, only ingredients referenced by at least one
// of the owner's recipes are returned.
func (s *Store) ListIngredients(ctx context.Context, ownerID string, assignedOnly bool) ([]*domain.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE owner_id = ?`
	if assignedOnly {
		query += ` AND EXISTS (
			SELECT 1 FROM recipe_ingredients ri
			JOIN recipes r ON r.id = ri.recipe_id
			WHERE ri.ingredient_id = ingredients.id AND r.owner_id = ingredients.owner_id)`
	}
	query += ` ORDER BY name DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []*domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ingredients, nil
}

// MissingIngredientIDs returns the subset of ingredientIDs absent from the
// ingredients table.
func (s *Store) MissingIngredientIDs(ctx context.Context, ingredientIDs []string) ([]string, error) {
	return s.missingIDs(ctx, "ingredients", ingredientIDs)
}
