package item

import "context"

// BlobStore is the object storage the controller writes image bytes to.
// URLFor is pure string derivation, it performs no I/O.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(key string) error
	URLFor(key string) string
}
