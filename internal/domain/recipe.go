package domain

import "time"

// Recipe is the central catalog entity. Tags and Ingredients are attached
// many-to-many by ID; the store materializes the full objects for detail
// views.
type Recipe struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Title         string    `json:"title"`
	TimeMinutes   int       `json:"time_minutes"`
	Price         float64   `json:"price"`
	Link          string    `json:"link,omitempty"`
	ImagePath     string    `json:"image,omitempty"`
	ImageBlurHash string    `json:"image_blur_hash,omitempty"`
	TagIDs        []string  `json:"tags"`
	IngredientIDs []string  `json:"ingredients"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (r *Recipe) Touch() {
	r.UpdatedAt = time.Now()
}

// InitTimestamps sets CreatedAt and UpdatedAt to now.
func (r *Recipe) InitTimestamps() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}

// HasImage reports whether an image blob is attached.
func (r *Recipe) HasImage() bool {
	return r.ImagePath != ""
}

// RecipeDetail is a Recipe with its related tags and ingredients expanded
// into full objects. Used for detail responses.
type RecipeDetail struct {
	Recipe
	Tags        []*Tag        `json:"tags"`
	Ingredients []*Ingredient `json:"ingredients"`
}
