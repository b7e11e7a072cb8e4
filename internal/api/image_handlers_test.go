package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retetaapp/reteta-server/internal/http/response"
)

// testPNG returns a small valid PNG.
func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(32 * x), G: uint8(32 * y), B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// uploadImage posts a multipart body to the upload endpoint.
func (ts *testServer) uploadImage(t *testing.T, token, recipeID string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/retete/"+recipeID+"/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	return rec
}

func TestUploadRecipeImage(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")
	detail := ts.createRecipe(t, token, map[string]any{"title": "Sarmale"})

	rec := ts.uploadImage(t, token, detail.ID, testPNG(t))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data    map[string]string `json:"data"`
		Success bool              `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, detail.ID, envelope.Data["id"])
	assert.Equal(t, "/images/recipes/"+detail.ID+".png", envelope.Data["image"])

	// The detail endpoint reflects the new image and a blurhash.
	resp := ts.api.Get("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var got RecipeDetailResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "/images/recipes/"+detail.ID+".png", got.Image)
	assert.NotEmpty(t, got.ImageBlurHash)
}

func TestUploadRecipeImage_RejectsNonImage(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")
	detail := ts.createRecipe(t, token, map[string]any{"title": "Sarmale"})

	rec := ts.uploadImage(t, token, detail.ID, []byte("definitely not an image"))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Fields, "image")

	// The recipe is untouched.
	resp := ts.api.Get("/api/v1/retete/"+detail.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var got RecipeDetailResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Empty(t, got.Image)
}

func TestUploadRecipeImage_Unauthenticated(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.uploadImage(t, "", "rec-any", testPNG(t))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadRecipeImage_OtherOwner(t *testing.T) {
	ts := setupTestServer(t)
	anaToken := ts.registerAndLogin(t, "ana@example.com")
	bogdanToken := ts.registerAndLogin(t, "bogdan@example.com")
	detail := ts.createRecipe(t, anaToken, map[string]any{"title": "Sarmale"})

	rec := ts.uploadImage(t, bogdanToken, detail.ID, testPNG(t))
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestUploadRecipeImage_MissingField(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")
	detail := ts.createRecipe(t, token, map[string]any{"title": "Sarmale"})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("photo", "photo.png")
	require.NoError(t, err)
	_, err = fw.Write(testPNG(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/retete/"+detail.ID+"/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Fields, "image")
}

func TestGetRecipeImage(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "ana@example.com")
	detail := ts.createRecipe(t, token, map[string]any{"title": "Sarmale"})

	rec := ts.uploadImage(t, token, detail.ID, testPNG(t))
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/images/recipes/"+detail.ID+".png", nil)
	got := httptest.NewRecorder()
	ts.ServeHTTP(got, req)

	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, "image/png", got.Header().Get("Content-Type"))
	assert.NotEmpty(t, got.Body.Bytes())
}

func TestGetRecipeImage_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/images/recipes/rec-ghost.png", nil)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
