package item

import (
	"context"
	"errors"
	"testing"

	"itembox/pkg/httperror"
)

func TestGetItemsNewestFirst(t *testing.T) {
	repo := newFakeRepository()
	blobs := newFakeBlobStore()
	for _, title := range []string{"first", "second", "third"} {
		seedItem(t, repo, blobs, title, false)
	}

	handler := NewGetItemsHandler(repo)
	res, err := handler.Handle(context.Background(), &GetItemsRequest{})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	wantIDs := []int64{3, 2, 1}
	if len(res.Items) != len(wantIDs) {
		t.Fatalf("item count = %d, want %d", len(res.Items), len(wantIDs))
	}
	for i, want := range wantIDs {
		if res.Items[i].ID != want {
			t.Errorf("items[%d].ID = %d, want %d", i, res.Items[i].ID, want)
		}
	}
}

func TestGetItemsEmpty(t *testing.T) {
	handler := NewGetItemsHandler(newFakeRepository())
	res, err := handler.Handle(context.Background(), &GetItemsRequest{})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(res.Items) != 0 {
		t.Errorf("item count = %d, want 0", len(res.Items))
	}
}

func TestGetItemsStoreFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.listErr = errors.New("connection refused")

	handler := NewGetItemsHandler(repo)
	_, err := handler.Handle(context.Background(), &GetItemsRequest{})

	var httpErr *httperror.Error
	if !errors.As(err, &httpErr) || httpErr.Status != 500 {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestGetItemNotFound(t *testing.T) {
	handler := NewGetItemHandler(newFakeRepository())
	_, err := handler.Handle(context.Background(), &GetItemRequest{ItemID: 7})

	var httpErr *httperror.Error
	if !errors.As(err, &httpErr) || httpErr.Code != "item.get.not_found" {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetItemFound(t *testing.T) {
	repo := newFakeRepository()
	blobs := newFakeBlobStore()
	id := seedItem(t, repo, blobs, "Findable", false)

	handler := NewGetItemHandler(repo)
	res, err := handler.Handle(context.Background(), &GetItemRequest{ItemID: id})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if res.Item.Title != "Findable" {
		t.Errorf("title = %q, want Findable", res.Item.Title)
	}
}
