package item

import (
	"context"
	"errors"
	"testing"

	"itembox/pkg/events"
)

func TestDeleteItemRemovesRowAndBlob(t *testing.T) {
	repo := newFakeRepository()
	blobs := newFakeBlobStore()
	id := seedItem(t, repo, blobs, "Doomed", true)
	key := *repo.items[id].ImageKey

	handler := NewDeleteItemHandler(repo, blobs, nil)
	if _, err := handler.Handle(context.Background(), &DeleteItemRequest{ItemID: id}); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if _, ok := repo.items[id]; ok {
		t.Error("row still present after delete")
	}
	if _, ok := blobs.objects[key]; ok {
		t.Error("blob still present after delete")
	}
}

func TestDeleteItemIdempotent(t *testing.T) {
	repo := newFakeRepository()
	blobs := newFakeBlobStore()
	id := seedItem(t, repo, blobs, "Twice deleted", false)

	handler := NewDeleteItemHandler(repo, blobs, nil)
	if _, err := handler.Handle(context.Background(), &DeleteItemRequest{ItemID: id}); err != nil {
		t.Fatalf("first delete returned error: %v", err)
	}
	if _, err := handler.Handle(context.Background(), &DeleteItemRequest{ItemID: id}); err != nil {
		t.Fatalf("second delete returned error: %v", err)
	}

	if len(repo.items) != 0 {
		t.Errorf("item count = %d, want 0", len(repo.items))
	}
}

func TestDeleteItemUnknownIDSucceeds(t *testing.T) {
	repo := newFakeRepository()
	blobs := newFakeBlobStore()

	handler := NewDeleteItemHandler(repo, blobs, nil)
	if _, err := handler.Handle(context.Background(), &DeleteItemRequest{ItemID: 999}); err != nil {
		t.Fatalf("delete of unknown id returned error: %v", err)
	}
	if len(blobs.deleted) != 0 {
		t.Errorf("blob deletes = %d, want 0", len(blobs.deleted))
	}
}

func TestDeleteItemBlobFailureStillRemovesRow(t *testing.T) {
	repo := newFakeRepository()
	blobs := newFakeBlobStore()
	id := seedItem(t, repo, blobs, "Sticky blob", true)
	blobs.deleteErr = errors.New("bucket unreachable")

	handler := NewDeleteItemHandler(repo, blobs, nil)
	if _, err := handler.Handle(context.Background(), &DeleteItemRequest{ItemID: id}); err != nil {
		t.Fatalf("Handle returned error despite best-effort blob delete: %v", err)
	}

	if _, ok := repo.items[id]; ok {
		t.Error("row still present after delete with failing blob store")
	}
}

func TestDeleteItemBlobFailurePublishesOrphanEvent(t *testing.T) {
	repo := newFakeRepository()
	blobs := newFakeBlobStore()
	id := seedItem(t, repo, blobs, "Orphaned", true)
	key := *repo.items[id].ImageKey
	blobs.deleteErr = errors.New("bucket unreachable")

	pub := &fakePublisher{}
	handler := NewDeleteItemHandler(repo, blobs, pub)
	if _, err := handler.Handle(context.Background(), &DeleteItemRequest{ItemID: id}); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	var orphan *events.Event
	for _, e := range pub.published {
		if e.Event == events.ItemBlobOrphanedEvent {
			orphan = e
		}
	}
	if orphan == nil {
		t.Fatalf("no item.blob.orphaned event published, got %+v", pub.published)
	}

	payload, ok := orphan.Payload.(events.ItemBlobOrphanedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", orphan.Payload)
	}
	if payload.ImageKey != key {
		t.Errorf("orphan key = %q, want %q", payload.ImageKey, key)
	}
}

func TestDeleteItemWithoutImageSkipsBlobStore(t *testing.T) {
	repo := newFakeRepository()
	blobs := newFakeBlobStore()
	id := seedItem(t, repo, blobs, "Imageless", false)

	handler := NewDeleteItemHandler(repo, blobs, nil)
	if _, err := handler.Handle(context.Background(), &DeleteItemRequest{ItemID: id}); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(blobs.deleted) != 0 {
		t.Errorf("blob deletes = %d, want 0", len(blobs.deleted))
	}
}
