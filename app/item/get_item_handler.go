package item

import (
	"context"
	"database/sql"
	"errors"

	"itembox/domain"
	"itembox/pkg/httperror"
)

type GetItemHandler struct {
	repository Repository
}

type GetItemRequest struct {
	ItemID int64 `params:"id" validate:"required"`
}

type GetItemResponse struct {
	Item domain.Item `json:"item"`
}

func NewGetItemHandler(repository Repository) *GetItemHandler {
	return &GetItemHandler{
		repository: repository,
	}
}

func (h GetItemHandler) Handle(ctx context.Context, req *GetItemRequest) (*GetItemResponse, error) {
	item, err := h.repository.GetItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"item.get.not_found",
				"Item not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"item.get.failed",
			"Failed to retrieve item",
			nil,
		)
	}

	return &GetItemResponse{
		Item: item,
	}, nil
}
