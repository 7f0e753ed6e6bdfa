package item

import (
	"context"

	"itembox/domain"
	"itembox/pkg/httperror"
)

type GetItemsHandler struct {
	repository Repository
}

type GetItemsRequest struct {
}

type GetItemsResponse struct {
	Items []domain.Item `json:"items"`
}

func NewGetItemsHandler(repository Repository) *GetItemsHandler {
	return &GetItemsHandler{
		repository: repository,
	}
}

// Handle returns every item, newest id first.
func (h GetItemsHandler) Handle(ctx context.Context, req *GetItemsRequest) (*GetItemsResponse, error) {
	items, err := h.repository.GetItems(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"item.index.failed",
			"Failed to retrieve items",
			nil,
		)
	}

	return &GetItemsResponse{
		Items: items,
	}, nil
}
