package events

import "time"

// Domain constants
const (
	ItemDomain   = "item"
	ItemExchange = "itembox.item"
)

// Event names
const (
	ItemCreatedEvent      = "item.created"
	ItemUpdatedEvent      = "item.updated"
	ItemDeletedEvent      = "item.deleted"
	ItemBlobOrphanedEvent = "item.blob.orphaned"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

// ItemCreatedPayload represents the payload for item.created event
type ItemCreatedPayload struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageKey    *string   `json:"imageKey"`
	ImageURL    *string   `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ItemUpdatedPayload represents the payload for item.updated event
type ItemUpdatedPayload struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageKey    *string   `json:"imageKey"`
	ImageURL    *string   `json:"imageUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ItemDeletedPayload struct {
	ID        int64     `json:"id"`
	ImageKey  *string   `json:"imageKey"`
	DeletedAt time.Time `json:"deletedAt"`
}

// ItemBlobOrphanedPayload flags a stored object whose best-effort delete
// failed; the reconciliation worker retries the delete.
type ItemBlobOrphanedPayload struct {
	ItemID     int64     `json:"itemId"`
	ImageKey   string    `json:"imageKey"`
	OrphanedAt time.Time `json:"orphanedAt"`
}
