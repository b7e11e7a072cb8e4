package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createRecipe creates a recipe through the API and returns its detail.
func (ts *testServer) createRecipe(t *testing.T, token string, body map[string]any) RecipeDetailResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/retete", "Authorization: Bearer "+token, body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var detail RecipeDetailResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &detail))
	return detail
}

// listRecipes fetches the caller's recipe list.
func (ts *testServer) listRecipes(t *testing.T, token, query string) []RecipeResponse {
	t.Helper()

	resp := ts.api.Get("/api/v1/retete"+query, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var list ListRecipesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	return list.Recipes
}

func TestCreateRecipe(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	tag := ts.createTag(t, token, "Mains")
	ing := ts.createIngredient(t, token, "Cabbage")

	detail := ts.createRecipe(t, token, map[string]any{
		"title":        "Sarmale",
		"time_minutes": 180,
		"price":        25.5,
		"link":         "https://example.com/sarmale",
		"tags":         []string{tag.ID},
		"ingredients":  []string{ing.ID},
	})

	assert.NotEmpty(t, detail.ID)
	assert.Equal(t, "Sarmale", detail.Title)
	assert.Equal(t, 180, detail.TimeMinutes)
	assert.InDelta(t, 25.5, detail.Price, 0.001)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "Mains", detail.Tags[0].Name)
	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, "Cabbage", detail.Ingredients[0].Name)
}

func TestCreateRecipe_Invalid(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{
			name:  "missing title",
			body:  map[string]any{"time_minutes": 10},
			field: "title",
		},
		{
			name:  "negative time",
			body:  map[string]any{"title": "Soup", "time_minutes": -1},
			field: "time_minutes",
		},
		{
			name:  "negative price",
			body:  map[string]any{"title": "Soup", "price": -2.5},
			field: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/v1/retete", "Authorization: Bearer "+token, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

			errBody := decodeErrorBody(t, resp.Body.Bytes())
			assert.Contains(t, errBody.Details, tt.field)
		})
	}
}

func TestCreateRecipe_UnknownRelations(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	resp := ts.api.Post("/api/v1/retete", "Authorization: Bearer "+token, map[string]any{
		"title":       "Soup",
		"tags":        []string{"tag-ghost"},
		"ingredients": []string{"ing-ghost"},
	})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	errBody := decodeErrorBody(t, resp.Body.Bytes())
	assert.Contains(t, errBody.Details, "tags")
	assert.Contains(t, errBody.Details, "ingredients")
}

func TestGetRecipe_OwnershipIsolation(t *testing.T) {
	ts := setupTestServer(t)
	anaToken := ts.registerAndLogin(t, "ana@example.com")
	bogdanToken := ts.registerAndLogin(t, "bogdan@example.com")

	detail := ts.createRecipe(t, anaToken, map[string]any{"title": "Sarmale"})

	// Another user sees a plain 404, not a 403.
	resp := ts.api.Get("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+bogdanToken)
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())

	// Their list is empty too.
	assert.Empty(t, ts.listRecipes(t, bogdanToken, ""))

	// And so are their update and delete.
	resp = ts.api.Patch("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+bogdanToken, map[string]any{
		"title": "Stolen",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Delete("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+bogdanToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// The owner still sees the unchanged recipe.
	resp = ts.api.Get("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+anaToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var got RecipeDetailResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "Sarmale", got.Title)
}

func TestListRecipes_Filters(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	tag := ts.createTag(t, token, "Mains")
	ing := ts.createIngredient(t, token, "Cabbage")

	ts.createRecipe(t, token, map[string]any{
		"title": "Tagged",
		"tags":  []string{tag.ID},
	})
	both := ts.createRecipe(t, token, map[string]any{
		"title":       "Both",
		"tags":        []string{tag.ID},
		"ingredients": []string{ing.ID},
	})
	ts.createRecipe(t, token, map[string]any{"title": "Plain"})

	// All three, newest first.
	all := ts.listRecipes(t, token, "")
	require.Len(t, all, 3)
	assert.Equal(t, "Plain", all[0].Title)

	// Tag filter matches both tagged recipes.
	byTag := ts.listRecipes(t, token, "?tags="+tag.ID)
	require.Len(t, byTag, 2)

	// Tag and ingredient filters combine with AND.
	combined := ts.listRecipes(t, token, "?tags="+tag.ID+"&ingredients="+ing.ID)
	require.Len(t, combined, 1)
	assert.Equal(t, both.ID, combined[0].ID)

	// Unknown IDs match nothing.
	ghost := ts.listRecipes(t, token, "?tags=tag-ghost")
	assert.Empty(t, ghost)
}

func TestReplaceRecipe_ClearsOmittedRelations(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	tag := ts.createTag(t, token, "Mains")
	detail := ts.createRecipe(t, token, map[string]any{
		"title": "Sarmale",
		"tags":  []string{tag.ID},
	})

	// PUT without the tags field empties the tag set.
	resp := ts.api.Put("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+token, map[string]any{
		"title":        "Sarmale v2",
		"time_minutes": 120,
		"price":        20,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated RecipeDetailResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "Sarmale v2", updated.Title)
	assert.Empty(t, updated.Tags)
}

func TestUpdateRecipe_PartialSemantics(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	tag := ts.createTag(t, token, "Mains")
	other := ts.createTag(t, token, "Winter")
	detail := ts.createRecipe(t, token, map[string]any{
		"title":        "Sarmale",
		"time_minutes": 180,
		"tags":         []string{tag.ID},
	})

	// PATCH with only a title leaves relations and scalars alone.
	resp := ts.api.Patch("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+token, map[string]any{
		"title": "Sarmale de casa",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated RecipeDetailResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "Sarmale de casa", updated.Title)
	assert.Equal(t, 180, updated.TimeMinutes)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "Mains", updated.Tags[0].Name)

	// A supplied tag list replaces the set wholesale.
	resp = ts.api.Patch("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+token, map[string]any{
		"tags": []string{other.ID},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "Winter", updated.Tags[0].Name)

	// Present-but-empty clears it.
	resp = ts.api.Patch("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+token, map[string]any{
		"tags": []string{},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Empty(t, updated.Tags)
}

func TestDeleteRecipe(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	detail := ts.createRecipe(t, token, map[string]any{"title": "Sarmale"})

	resp := ts.api.Delete("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
