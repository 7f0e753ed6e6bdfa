package item

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"itembox/domain"
	"itembox/pkg/events"
	"itembox/pkg/httperror"
)

type CreateItemHandler struct {
	repository     Repository
	blobs          BlobStore
	eventPublisher events.Publisher
}

type CreateItemRequest struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	Image       *ImageUpload
}

type CreateItemResponse struct {
	Item domain.Item `json:"item"`
}

func NewCreateItemHandler(repository Repository, blobs BlobStore, eventPublisher events.Publisher) *CreateItemHandler {
	return &CreateItemHandler{
		repository:     repository,
		blobs:          blobs,
		eventPublisher: eventPublisher,
	}
}

func (h CreateItemHandler) Handle(ctx context.Context, req *CreateItemRequest) (*CreateItemResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"item.create.validation_failed",
				"Title is required",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"item.create.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	attachment, err := resolveAttachment(req.Image)
	if err != nil {
		return nil, err
	}

	// Blob write happens before the row write, so no row ever points at a
	// not-yet-uploaded blob.
	var imageKey, imageURL *string
	if attachment != nil {
		if err := h.blobs.Upload(ctx, attachment.Key, attachment.Data, attachment.ContentType); err != nil {
			return nil, httperror.InternalServerError(
				"item.upload.store_failed",
				"Failed to upload image to storage",
				err.Error(),
			)
		}

		url := h.blobs.URLFor(attachment.Key)
		imageKey = &attachment.Key
		imageURL = &url
	}

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	created, err := h.repository.Insert(ctx, req.Title, description, imageKey, imageURL)
	if err != nil {
		// The uploaded blob is left behind on purpose: a leaked blob is
		// acceptable, a row referencing a missing blob is not.
		return nil, httperror.InternalServerError(
			"item.create.create_failed",
			"An error occurred while creating the item",
			nil,
		)
	}

	h.publishCreated(ctx, created)

	return &CreateItemResponse{
		Item: created,
	}, nil
}

func (h CreateItemHandler) publishCreated(ctx context.Context, created domain.Item) {
	if h.eventPublisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "itembox",
	}

	event := events.NewEvent(
		events.ItemCreatedEvent,
		events.EventVersionV1,
		events.ItemCreatedPayload{
			ID:          created.ID,
			Title:       created.Title,
			Description: created.Description,
			ImageKey:    created.ImageKey,
			ImageURL:    created.ImageURL,
			CreatedAt:   created.CreatedAt,
		},
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.ItemExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish item.created event",
			zap.Int64("itemID", created.ID),
			zap.Error(err),
		)
	}
}
