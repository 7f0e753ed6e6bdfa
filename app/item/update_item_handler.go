package item

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"itembox/domain"
	"itembox/pkg/events"
	"itembox/pkg/httperror"
)

type UpdateItemHandler struct {
	repository     Repository
	blobs          BlobStore
	eventPublisher events.Publisher
}

type UpdateItemRequest struct {
	ItemID      int64  `params:"id" form:"id" validate:"required"`
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	Image       *ImageUpload
}

type UpdateItemResponse struct {
	Item domain.Item `json:"item"`
}

func NewUpdateItemHandler(repository Repository, blobs BlobStore, eventPublisher events.Publisher) *UpdateItemHandler {
	return &UpdateItemHandler{
		repository:     repository,
		blobs:          blobs,
		eventPublisher: eventPublisher,
	}
}

func (h UpdateItemHandler) Handle(ctx context.Context, req *UpdateItemRequest) (*UpdateItemResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"item.update.validation_failed",
				"Title is required",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"item.update.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	current, err := h.repository.GetItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"item.update.not_found",
				"Item not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"item.update.failed",
			"Failed to get item",
			nil,
		)
	}

	attachment, err := resolveAttachment(req.Image)
	if err != nil {
		return nil, err
	}

	current.Title = req.Title
	if req.Description != "" {
		current.Description = &req.Description
	} else {
		current.Description = nil
	}

	var affected int64
	if attachment != nil {
		// New image: blob write first, then overwrite the full row including
		// the key/url pair.
		if err := h.blobs.Upload(ctx, attachment.Key, attachment.Data, attachment.ContentType); err != nil {
			return nil, httperror.InternalServerError(
				"item.upload.store_failed",
				"Failed to upload image to storage",
				err.Error(),
			)
		}

		url := h.blobs.URLFor(attachment.Key)
		current.ImageKey = &attachment.Key
		current.ImageURL = &url

		affected, err = h.repository.Update(ctx, current.ID, current.Title, current.Description, current.ImageKey, current.ImageURL)
	} else {
		// No new image: only title and description change, the stored image
		// pair stays as it is.
		affected, err = h.repository.UpdateMeta(ctx, current.ID, current.Title, current.Description)
	}

	if err != nil {
		return nil, httperror.InternalServerError(
			"item.update.update_failed",
			"An error occurred while updating the item",
			nil,
		)
	}

	if affected == 0 {
		// Row disappeared between the read and the write.
		return nil, httperror.NotFound(
			"item.update.not_found",
			"Item not found",
			nil,
		)
	}

	h.publishUpdated(ctx, current)

	return &UpdateItemResponse{
		Item: current,
	}, nil
}

func (h UpdateItemHandler) publishUpdated(ctx context.Context, updated domain.Item) {
	if h.eventPublisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "itembox",
	}

	event := events.NewEvent(
		events.ItemUpdatedEvent,
		events.EventVersionV1,
		events.ItemUpdatedPayload{
			ID:          updated.ID,
			Title:       updated.Title,
			Description: updated.Description,
			ImageKey:    updated.ImageKey,
			ImageURL:    updated.ImageURL,
			UpdatedAt:   time.Now().UTC(),
		},
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.ItemExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish item.updated event",
			zap.Int64("itemID", updated.ID),
			zap.Error(err),
		)
	}
}
