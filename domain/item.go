package domain

import "time"

type Item struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`

	// ImageKey and ImageURL are written together: an item either has both
	// or has neither.
	ImageKey *string `db:"image_key" json:"imageKey"`
	ImageURL *string `db:"image_url" json:"imageUrl"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// HasImage reports whether a blob is attached to the item.
func (i Item) HasImage() bool {
	return i.ImageKey != nil && *i.ImageKey != ""
}
