package item

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"itembox/domain"
	"itembox/pkg/events"
)

type fakeRepository struct {
	items  map[int64]domain.Item
	nextID int64

	insertErr error
	updateErr error
	getErr    error
	listErr   error
	deleteErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: make(map[int64]domain.Item)}
}

func (r *fakeRepository) Close() error { return nil }

func (r *fakeRepository) GetItems(ctx context.Context) ([]domain.Item, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}

	items := make([]domain.Item, 0, len(r.items))
	for _, it := range r.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (r *fakeRepository) GetItem(ctx context.Context, id int64) (domain.Item, error) {
	if r.getErr != nil {
		return domain.Item{}, r.getErr
	}

	it, ok := r.items[id]
	if !ok {
		return domain.Item{}, sql.ErrNoRows
	}
	return it, nil
}

func (r *fakeRepository) CountItems(ctx context.Context) (int, error) {
	return len(r.items), nil
}

func (r *fakeRepository) Insert(ctx context.Context, title string, description, imageKey, imageURL *string) (domain.Item, error) {
	if r.insertErr != nil {
		return domain.Item{}, r.insertErr
	}

	r.nextID++
	it := domain.Item{
		ID:          r.nextID,
		Title:       title,
		Description: description,
		ImageKey:    imageKey,
		ImageURL:    imageURL,
		CreatedAt:   time.Now().UTC(),
	}
	r.items[it.ID] = it
	return it, nil
}

func (r *fakeRepository) Update(ctx context.Context, id int64, title string, description, imageKey, imageURL *string) (int64, error) {
	if r.updateErr != nil {
		return 0, r.updateErr
	}

	it, ok := r.items[id]
	if !ok {
		return 0, nil
	}
	it.Title = title
	it.Description = description
	it.ImageKey = imageKey
	it.ImageURL = imageURL
	r.items[id] = it
	return 1, nil
}

func (r *fakeRepository) UpdateMeta(ctx context.Context, id int64, title string, description *string) (int64, error) {
	if r.updateErr != nil {
		return 0, r.updateErr
	}

	it, ok := r.items[id]
	if !ok {
		return 0, nil
	}
	it.Title = title
	it.Description = description
	r.items[id] = it
	return 1, nil
}

func (r *fakeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}

	if _, ok := r.items[id]; !ok {
		return 0, nil
	}
	delete(r.items, id)
	return 1, nil
}

type fakeBlobStore struct {
	objects      map[string][]byte
	contentTypes map[string]string
	uploaded     []string
	deleted      []string

	uploadErr error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (b *fakeBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if b.uploadErr != nil {
		return b.uploadErr
	}

	b.objects[key] = data
	b.contentTypes[key] = contentType
	b.uploaded = append(b.uploaded, key)
	return nil
}

func (b *fakeBlobStore) Delete(key string) error {
	b.deleted = append(b.deleted, key)
	if b.deleteErr != nil {
		return b.deleteErr
	}

	delete(b.objects, key)
	return nil
}

func (b *fakeBlobStore) URLFor(key string) string {
	return "https://storage.test/itembox/" + key
}

type fakePublisher struct {
	published []*events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, exchange string, event *events.Event, headers events.Headers) error {
	p.published = append(p.published, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

// Minimal valid image headers, enough for content sniffing.
var (
	pngBytes  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	jpegBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00")
	webpBytes = append([]byte("RIFF\x24\x00\x00\x00WEBP"), []byte("VP8 ")...)
)
