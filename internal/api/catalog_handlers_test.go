package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTag creates a tag through the API and returns its response.
func (ts *testServer) createTag(t *testing.T, token, name string) TagResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/tags", "Authorization: Bearer "+token, map[string]any{
		"name": name,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var tag TagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tag))
	return tag
}

// createIngredient creates an ingredient through the API.
func (ts *testServer) createIngredient(t *testing.T, token, name string) IngredientResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/ingredients", "Authorization: Bearer "+token, map[string]any{
		"name": name,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var ing IngredientResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &ing))
	return ing
}

func TestListTags_Unauthenticated(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/tags")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreateAndListTags(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	ts.createTag(t, token, "Dessert")
	ts.createTag(t, token, "Vegan")
	ts.createTag(t, token, "Quick")

	resp := ts.api.Get("/api/v1/tags", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var list ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))

	require.Len(t, list.Tags, 3)
	// Name descending.
	assert.Equal(t, "Vegan", list.Tags[0].Name)
	assert.Equal(t, "Quick", list.Tags[1].Name)
	assert.Equal(t, "Dessert", list.Tags[2].Name)
}

func TestCreateTag_EmptyName(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	resp := ts.api.Post("/api/v1/tags", "Authorization: Bearer "+token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	errBody := decodeErrorBody(t, resp.Body.Bytes())
	assert.Contains(t, errBody.Details, "name")
}

func TestListTags_OwnerScoped(t *testing.T) {
	ts := setupTestServer(t)
	anaToken := ts.registerAndLogin(t, "ana@example.com")
	bogdanToken := ts.registerAndLogin(t, "bogdan@example.com")

	ts.createTag(t, anaToken, "Dessert")

	resp := ts.api.Get("/api/v1/tags", "Authorization: Bearer "+bogdanToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Empty(t, list.Tags)
}

func TestListTags_AssignedOnly(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	assigned := ts.createTag(t, token, "Dinner")
	ts.createTag(t, token, "Unused")

	resp := ts.api.Post("/api/v1/retete", "Authorization: Bearer "+token, map[string]any{
		"title":        "Sarmale",
		"time_minutes": 180,
		"price":        25.5,
		"tags":         []string{assigned.ID},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/tags?assigned_only=1", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var list ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))

	require.Len(t, list.Tags, 1)
	assert.Equal(t, "Dinner", list.Tags[0].Name)
}

func TestCreateAndListIngredients(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	ts.createIngredient(t, token, "Salt")
	ts.createIngredient(t, token, "Zucchini")

	resp := ts.api.Get("/api/v1/ingredients", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var list ListIngredientsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))

	require.Len(t, list.Ingredients, 2)
	assert.Equal(t, "Zucchini", list.Ingredients[0].Name)
	assert.Equal(t, "Salt", list.Ingredients[1].Name)
}

func TestCreateIngredient_EmptyName(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	resp := ts.api.Post("/api/v1/ingredients", "Authorization: Bearer "+token, map[string]any{
		"name": "",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	errBody := decodeErrorBody(t, resp.Body.Bytes())
	assert.Contains(t, errBody.Details, "name")
}

func TestListIngredients_AssignedOnly(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	assigned := ts.createIngredient(t, token, "Cabbage")
	ts.createIngredient(t, token, "Unused")

	resp := ts.api.Post("/api/v1/retete", "Authorization: Bearer "+token, map[string]any{
		"title":       "Sarmale",
		"ingredients": []string{assigned.ID},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/ingredients?assigned_only=1", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListIngredientsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))

	require.Len(t, list.Ingredients, 1)
	assert.Equal(t, "Cabbage", list.Ingredients[0].Name)
}
