package domain

import "time"

// Tag is a user-owned label for grouping recipes.
// Ownership is fixed at creation; the store only ever returns a user's own
// tags, so names need not be unique across users.
type Tag struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets CreatedAt and UpdatedAt to now.
func (t *Tag) InitTimestamps() {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
}

// Ingredient is a user-owned ingredient entry, same shape as Tag.
type Ingredient struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets CreatedAt and UpdatedAt to now.
func (i *Ingredient) InitTimestamps() {
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
}
