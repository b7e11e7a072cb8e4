package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/retetaapp/reteta-server/internal/domain"
	"github.com/retetaapp/reteta-server/internal/service"
	"github.com/retetaapp/reteta-server/internal/store"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/retete",
		Summary:     "List recipes",
		Description: "Returns the caller's recipes, newest first, optionally filtered by tag and ingredient IDs",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/retete/{id}",
		Summary:     "Get recipe",
		Description: "Returns a recipe with nested tag and ingredient objects",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createRecipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/retete",
		Summary:       "Create recipe",
		Description:   "Creates a recipe with its tag and ingredient relations",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "replaceRecipe",
		Method:      http.MethodPut,
		Path:        "/api/v1/retete/{id}",
		Summary:     "Replace recipe",
		Description: "Full update; omitted relation lists clear the relation sets",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReplaceRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/retete/{id}",
		Summary:     "Update recipe",
		Description: "Partial update; only supplied fields change, a supplied relation list replaces the set",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteRecipe",
		Method:        http.MethodDelete,
		Path:          "/api/v1/retete/{id}",
		Summary:       "Delete recipe",
		Description:   "Deletes a recipe together with its relations and stored image",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteRecipe)
}

// === DTOs ===

// ListRecipesInput contains parameters for listing recipes.
type ListRecipesInput struct {
	Authorization string `header:"Authorization"`
	Tags          string `query:"tags" doc:"Comma-separated tag IDs to filter by"`
	Ingredients   string `query:"ingredients" doc:"Comma-separated ingredient IDs to filter by"`
}

// RecipeResponse contains recipe data in list responses. Relations appear
// as ID lists.
type RecipeResponse struct {
	ID            string   `json:"id" doc:"Recipe ID"`
	Title         string   `json:"title" doc:"Recipe title"`
	TimeMinutes   int      `json:"time_minutes" doc:"Preparation time in minutes"`
	Price         float64  `json:"price" doc:"Approximate price"`
	Link          string   `json:"link,omitempty" doc:"External link"`
	TagIDs        []string `json:"tags" doc:"Attached tag IDs"`
	IngredientIDs []string `json:"ingredients" doc:"Attached ingredient IDs"`
	Image         string   `json:"image,omitempty" doc:"Image URL"`
}

// ListRecipesResponse contains a list of recipes.
type ListRecipesResponse struct {
	Recipes []RecipeResponse `json:"recipes" doc:"List of recipes"`
}

// ListRecipesOutput wraps the list recipes response for Huma.
type ListRecipesOutput struct {
	Body ListRecipesResponse
}

// RecipeDetailResponse contains recipe data with nested relation objects.
type RecipeDetailResponse struct {
	ID            string               `json:"id" doc:"Recipe ID"`
	Title         string               `json:"title" doc:"Recipe title"`
	TimeMinutes   int                  `json:"time_minutes" doc:"Preparation time in minutes"`
	Price         float64              `json:"price" doc:"Approximate price"`
	Link          string               `json:"link,omitempty" doc:"External link"`
	Tags          []TagResponse        `json:"tags" doc:"Attached tags"`
	Ingredients   []IngredientResponse `json:"ingredients" doc:"Attached ingredients"`
	Image         string               `json:"image,omitempty" doc:"Image URL"`
	ImageBlurHash string               `json:"image_blur_hash,omitempty" doc:"Blurhash placeholder for the image"`
}

// RecipeDetailOutput wraps the recipe detail response for Huma.
type RecipeDetailOutput struct {
	Body RecipeDetailResponse
}

// GetRecipeInput contains parameters for getting a recipe.
type GetRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
}

// CreateRecipeRequest is the request body for creating or replacing a
// recipe. The tag and ingredient lists are authoritative; omitting one
// means the relation set ends up empty.
type CreateRecipeRequest struct {
	Title         string   `json:"title,omitempty" doc:"Recipe title"`
	TimeMinutes   int      `json:"time_minutes,omitempty" doc:"Preparation time in minutes"`
	Price         float64  `json:"price,omitempty" doc:"Approximate price"`
	Link          string   `json:"link,omitempty" doc:"External link"`
	TagIDs        []string `json:"tags,omitempty" doc:"Tag IDs to attach"`
	IngredientIDs []string `json:"ingredients,omitempty" doc:"Ingredient IDs to attach"`
}

// CreateRecipeInput wraps the create recipe request for Huma.
type CreateRecipeInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateRecipeRequest
}

// ReplaceRecipeInput wraps the full-update request for Huma.
type ReplaceRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
	Body          CreateRecipeRequest
}

// UpdateRecipeRequest is the request body for partial recipe updates.
// Absent fields are left untouched; a present relation list replaces the
// set wholesale, and present-but-empty clears it.
type UpdateRecipeRequest struct {
	Title         *string   `json:"title,omitempty" doc:"Recipe title"`
	TimeMinutes   *int      `json:"time_minutes,omitempty" doc:"Preparation time in minutes"`
	Price         *float64  `json:"price,omitempty" doc:"Approximate price"`
	Link          *string   `json:"link,omitempty" doc:"External link"`
	TagIDs        *[]string `json:"tags,omitempty" doc:"Tag IDs to attach"`
	IngredientIDs *[]string `json:"ingredients,omitempty" doc:"Ingredient IDs to attach"`
}

// UpdateRecipeInput wraps the partial-update request for Huma.
type UpdateRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
	Body          UpdateRecipeRequest
}

// DeleteRecipeInput contains parameters for deleting a recipe.
type DeleteRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
}

// DeleteRecipeOutput is the empty response for a recipe deletion.
type DeleteRecipeOutput struct{}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, input *ListRecipesInput) (*ListRecipesOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	filter := store.RecipeFilter{
		TagIDs:        splitIDList(input.Tags),
		IngredientIDs: splitIDList(input.Ingredients),
	}

	recipes, err := s.services.Recipe.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]RecipeResponse, len(recipes))
	for i, r := range recipes {
		resp[i] = mapRecipeResponse(r)
	}

	return &ListRecipesOutput{Body: ListRecipesResponse{Recipes: resp}}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *GetRecipeInput) (*RecipeDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Recipe.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeDetailOutput{Body: mapRecipeDetailResponse(detail)}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Recipe.Create(ctx, userID, mapCreateRecipeRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &RecipeDetailOutput{Body: mapRecipeDetailResponse(detail)}, nil
}

func (s *Server) handleReplaceRecipe(ctx context.Context, input *ReplaceRecipeInput) (*RecipeDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Recipe.Replace(ctx, userID, input.ID, mapCreateRecipeRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &RecipeDetailOutput{Body: mapRecipeDetailResponse(detail)}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Recipe.Update(ctx, userID, input.ID, service.UpdateRecipeRequest{
		Title:         input.Body.Title,
		TimeMinutes:   input.Body.TimeMinutes,
		Price:         input.Body.Price,
		Link:          input.Body.Link,
		TagIDs:        input.Body.TagIDs,
		IngredientIDs: input.Body.IngredientIDs,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeDetailOutput{Body: mapRecipeDetailResponse(detail)}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *DeleteRecipeInput) (*DeleteRecipeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipe.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &DeleteRecipeOutput{}, nil
}

// === Helpers ===

// recipeImageURL builds the public URL for a stored recipe image.
func recipeImageURL(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	return "/images/recipes/" + imagePath
}

func mapCreateRecipeRequest(req CreateRecipeRequest) service.CreateRecipeRequest {
	return service.CreateRecipeRequest{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.TagIDs,
		IngredientIDs: req.IngredientIDs,
	}
}

func mapRecipeResponse(r *domain.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:            r.ID,
		Title:         r.Title,
		TimeMinutes:   r.TimeMinutes,
		Price:         r.Price,
		Link:          r.Link,
		TagIDs:        r.TagIDs,
		IngredientIDs: r.IngredientIDs,
		Image:         recipeImageURL(r.ImagePath),
	}
}

func mapRecipeDetailResponse(detail *domain.RecipeDetail) RecipeDetailResponse {
	tags := make([]TagResponse, len(detail.Tags))
	for i, t := range detail.Tags {
		tags[i] = mapTagResponse(t)
	}

	ingredients := make([]IngredientResponse, len(detail.Ingredients))
	for i, ing := range detail.Ingredients {
		ingredients[i] = mapIngredientResponse(ing)
	}

	return RecipeDetailResponse{
		ID:            detail.ID,
		Title:         detail.Title,
		TimeMinutes:   detail.TimeMinutes,
		Price:         detail.Price,
		Link:          detail.Link,
		Tags:          tags,
		Ingredients:   ingredients,
		Image:         recipeImageURL(detail.ImagePath),
		ImageBlurHash: detail.ImageBlurHash,
	}
}
