package item

import (
	"context"

	"itembox/domain"
)

type Repository interface {
	Close() error
	GetItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id int64) (domain.Item, error)
	CountItems(ctx context.Context) (int, error)
	Insert(ctx context.Context, title string, description, imageKey, imageURL *string) (domain.Item, error)
	Update(ctx context.Context, id int64, title string, description, imageKey, imageURL *string) (int64, error)
	UpdateMeta(ctx context.Context, id int64, title string, description *string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
