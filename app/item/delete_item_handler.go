package item

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"itembox/pkg/events"
	"itembox/pkg/httperror"
)

type DeleteItemHandler struct {
	repository     Repository
	blobs          BlobStore
	eventPublisher events.Publisher
}

type DeleteItemRequest struct {
	ItemID int64 `params:"id" validate:"required"`
}

type DeleteItemResponse struct {
}

func NewDeleteItemHandler(repository Repository, blobs BlobStore, eventPublisher events.Publisher) *DeleteItemHandler {
	return &DeleteItemHandler{
		repository:     repository,
		blobs:          blobs,
		eventPublisher: eventPublisher,
	}
}

func (h DeleteItemHandler) Handle(ctx context.Context, req *DeleteItemRequest) (*DeleteItemResponse, error) {
	current, err := h.repository.GetItem(ctx, req.ItemID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, httperror.InternalServerError(
			"item.destroy.failed",
			"Failed to retrieve item",
			nil,
		)
	}

	// Best effort blob cleanup. A failed delete leaves an orphaned blob,
	// which is acceptable; it never blocks the row delete and never fails
	// the request.
	if err == nil && current.HasImage() {
		if delErr := h.blobs.Delete(*current.ImageKey); delErr != nil {
			zap.L().Warn("Failed to delete item blob, leaving orphan",
				zap.Int64("itemID", current.ID),
				zap.String("imageKey", *current.ImageKey),
				zap.Error(delErr),
			)
			h.publishBlobOrphaned(ctx, current.ID, *current.ImageKey)
		}
	}

	// Idempotent: deleting an absent id affects zero rows and still succeeds.
	if _, err := h.repository.Delete(ctx, req.ItemID); err != nil {
		return nil, httperror.InternalServerError(
			"item.destroy.failed",
			"Failed to delete item",
			nil,
		)
	}

	h.publishDeleted(ctx, req.ItemID, current.ImageKey)

	return &DeleteItemResponse{}, nil
}

func (h DeleteItemHandler) publishDeleted(ctx context.Context, id int64, imageKey *string) {
	if h.eventPublisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "itembox",
	}

	event := events.NewEvent(
		events.ItemDeletedEvent,
		events.EventVersionV1,
		events.ItemDeletedPayload{
			ID:        id,
			ImageKey:  imageKey,
			DeletedAt: time.Now().UTC(),
		},
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.ItemExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish item.deleted event",
			zap.Int64("itemID", id),
			zap.Error(err),
		)
	}
}

func (h DeleteItemHandler) publishBlobOrphaned(ctx context.Context, id int64, imageKey string) {
	if h.eventPublisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "itembox",
	}

	event := events.NewEvent(
		events.ItemBlobOrphanedEvent,
		events.EventVersionV1,
		events.ItemBlobOrphanedPayload{
			ItemID:     id,
			ImageKey:   imageKey,
			OrphanedAt: time.Now().UTC(),
		},
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.ItemExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish item.blob.orphaned event",
			zap.Int64("itemID", id),
			zap.String("imageKey", imageKey),
			zap.Error(err),
		)
	}
}
