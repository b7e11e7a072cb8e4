package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/retetaapp/reteta-server/internal/domain"
	"github.com/retetaapp/reteta-server/internal/store"
)

const recipeColumns = `id, owner_id, title, time_minutes, price, link,
	image_path, image_blur_hash, created_at, updated_at`

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var r domain.Recipe

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&r.OwnerID,
		&r.Title,
		&r.TimeMinutes,
		&r.Price,
		&r.Link,
		&r.ImagePath,
		&r.ImageBlurHash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	r.TagIDs = []string{}
	r.IngredientIDs = []string{}

	return &r, nil
}

// CreateRecipe inserts a recipe together with its tag and ingredient
// relations in a single transaction.
func (s *Store) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (`+recipeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.OwnerID,
		r.Title,
		r.TimeMinutes,
		r.Price,
		r.Link,
		r.ImagePath,
		r.ImageBlurHash,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if err := replaceRecipeRelations(ctx, tx, r.ID, r.TagIDs, r.IngredientIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// GetRecipe retrieves a recipe by ID, scoped to its owner, with its tag and
// ingredient ID lists populated.
func (s *Store) GetRecipe(ctx context.Context, ownerID, recipeID string) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ? AND owner_id = ?`,
		recipeID, ownerID)

	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadRecipeRelations(ctx, []*domain.Recipe{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// GetRecipeDetail retrieves a recipe with its tags and ingredients expanded
// into full objects, ordered by name descending like the list endpoints.
func (s *Store) GetRecipeDetail(ctx context.Context, ownerID, recipeID string) (*domain.RecipeDetail, error) {
	r, err := s.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		return nil, err
	}

	detail := &domain.RecipeDetail{
		Recipe:      *r,
		Tags:        []*domain.Tag{},
		Ingredients: []*domain.Ingredient{},
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tagColumns+` FROM tags
		WHERE id IN (SELECT tag_id FROM recipe_tags WHERE recipe_id = ?)
		ORDER BY name DESC, id DESC`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		detail.Tags = append(detail.Tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT `+ingredientColumns+` FROM ingredients
		WHERE id IN (SELECT ingredient_id FROM recipe_ingredients WHERE recipe_id = ?)
		ORDER BY name DESC, id DESC`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		detail.Ingredients = append(detail.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return detail, nil
}

// ListRecipes returns the owner's recipes, newest first. Filter conditions
// combine with AND; an ID list matches recipes related to any of its IDs.
func (s *Store) ListRecipes(ctx context.Context, ownerID string, filter store.RecipeFilter) ([]*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE owner_id = ?`
	args := []any{ownerID}

	if n := len(filter.TagIDs); n > 0 {
		query += ` AND EXISTS (
			SELECT 1 FROM recipe_tags rt
			WHERE rt.recipe_id = recipes.id AND rt.tag_id IN (` + placeholders(n) + `))`
		args = append(args, stringArgs(filter.TagIDs)...)
	}
	if n := len(filter.IngredientIDs); n > 0 {
		query += ` AND EXISTS (
			SELECT 1 FROM recipe_ingredients ri
			WHERE ri.recipe_id = recipes.id AND ri.ingredient_id IN (` + placeholders(n) + `))`
		args = append(args, stringArgs(filter.IngredientIDs)...)
	}

	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []*domain.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadRecipeRelations(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe writes the recipe's scalar fields and replaces its relation
// sets with the ones on r, all in one transaction. The recipe must belong to
// r.OwnerID or store.ErrRecipeNotFound is returned.
func (s *Store) UpdateRecipe(ctx context.Context, r *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE recipes
		SET title = ?, time_minutes = ?, price = ?, link = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		r.Title,
		r.TimeMinutes,
		r.Price,
		r.Link,
		formatTime(r.UpdatedAt),
		r.ID,
		r.OwnerID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrRecipeNotFound
	}

	if err := replaceRecipeRelations(ctx, tx, r.ID, r.TagIDs, r.IngredientIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteRecipe removes a recipe and, via cascade, its relation rows.
func (s *Store) DeleteRecipe(ctx context.Context, ownerID, recipeID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ? AND owner_id = ?`, recipeID, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrRecipeNotFound
	}
	return nil
}

// SetRecipeImage records the stored image path and blur hash for a recipe.
func (s *Store) SetRecipeImage(ctx context.Context, ownerID, recipeID, imagePath, blurHash string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE recipes
		SET image_path = ?, image_blur_hash = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		imagePath, blurHash, formatTime(time.Now()), recipeID, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrRecipeNotFound
	}
	return nil
}

// replaceRecipeRelations swaps out the recipe's relation rows for the given
// ID sets. Deleting first makes the sets authoritative rather than additive.
func replaceRecipeRelations(ctx context.Context, tx *sql.Tx, recipeID string, tagIDs, ingredientIDs []string) error {
	now := formatTime(time.Now())

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_tags WHERE recipe_id = ?`, recipeID); err != nil {
		return err
	}
	for _, tagID := range dedupe(tagIDs) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_tags (recipe_id, tag_id, created_at)
			VALUES (?, ?, ?)`, recipeID, tagID, now); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipeID); err != nil {
		return err
	}
	for _, ingredientID := range dedupe(ingredientIDs) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, created_at)
			VALUES (?, ?, ?)`, recipeID, ingredientID, now); err != nil {
			return err
		}
	}

	return nil
}

// loadRecipeRelations fills TagIDs and IngredientIDs for the given recipes
// with two batch queries.
func (s *Store) loadRecipeRelations(ctx context.Context, recipes []*domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Recipe, len(recipes))
	ids := make([]string, 0, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
		ids = append(ids, r.ID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT rt.recipe_id, rt.tag_id FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN (`+placeholders(len(ids))+`)
		ORDER BY t.name DESC, t.id DESC`, stringArgs(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var recipeID, tagID string
		if err := rows.Scan(&recipeID, &tagID); err != nil {
			return err
		}
		if r := byID[recipeID]; r != nil {
			r.TagIDs = append(r.TagIDs, tagID)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT ri.recipe_id, ri.ingredient_id FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (`+placeholders(len(ids))+`)
		ORDER BY i.name DESC, i.id DESC`, stringArgs(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var recipeID, ingredientID string
		if err := rows.Scan(&recipeID, &ingredientID); err != nil {
			return err
		}
		if r := byID[recipeID]; r != nil {
			r.IngredientIDs = append(r.IngredientIDs, ingredientID)
		}
	}
	return rows.Err()
}

// dedupe returns ids with duplicates removed, preserving first occurrence.
func dedupe(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
