package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"itembox/pkg/events"
)

// BlobDeleter is the slice of the blob store the worker needs.
type BlobDeleter interface {
	Delete(key string) error
}

// OrphanBlobHandler retries blob deletes that the delete request gave up on.
// The web process swallows those failures; this worker is the reconciliation
// sweep that reclaims the leaked objects.
type OrphanBlobHandler struct {
	blobs  BlobDeleter
	logger *zap.Logger
}

func NewOrphanBlobHandler(blobs BlobDeleter, logger *zap.Logger) *OrphanBlobHandler {
	return &OrphanBlobHandler{
		blobs:  blobs,
		logger: logger,
	}
}

func (h *OrphanBlobHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	zap.L().Info("Item event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	switch event.Event {
	case events.ItemBlobOrphanedEvent:
		return h.handleBlobOrphaned(ctx, event)
	default:
		zap.L().Warn("Unknown item event type", zap.String("event", event.Event))
		return nil
	}
}

func (h *OrphanBlobHandler) handleBlobOrphaned(ctx context.Context, event *events.Event) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("malformed payload - marshal failed: %w", err)
	}

	var payload events.ItemBlobOrphanedPayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}

	if payload.ImageKey == "" {
		return fmt.Errorf("malformed payload - imageKey missing")
	}

	zap.L().Info("Reclaiming orphaned blob",
		zap.Int64("itemId", payload.ItemID),
		zap.String("imageKey", payload.ImageKey),
		zap.String("traceId", event.TraceID),
	)

	const maxRetries = 3
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := h.blobs.Delete(payload.ImageKey); err != nil {
			lastErr = err
			zap.L().Warn("Blob delete failed, retrying",
				zap.String("imageKey", payload.ImageKey),
				zap.Int("attempt", attempt),
				zap.Int("maxRetries", maxRetries),
				zap.Error(err),
			)
			time.Sleep(time.Duration(10*attempt) * time.Millisecond)
			continue
		}

		zap.L().Info("Orphaned blob reclaimed",
			zap.String("imageKey", payload.ImageKey),
			zap.String("traceId", event.TraceID),
		)
		return nil
	}

	return fmt.Errorf("failed to delete orphaned blob after %d retries: %w", maxRetries, lastErr)
}
