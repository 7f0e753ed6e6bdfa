package item

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"itembox/pkg/httperror"
)

// ImageUpload carries a file received by the presentation layer. Err is set
// when the transfer itself failed; the handlers reject such uploads before
// touching storage.
type ImageUpload struct {
	Filename string
	Data     []byte
	Err      error
}

// Attachment is an admissible image ready for the blob store.
type Attachment struct {
	Key         string
	ContentType string
	Data        []byte
}

// Accepted types, sniffed from the bytes rather than trusting the client.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// resolveAttachment decides whether the upload is admissible and derives its
// storage key. A nil upload means no image was supplied and resolves to
// (nil, nil).
func resolveAttachment(upload *ImageUpload) (*Attachment, error) {
	if upload == nil {
		return nil, nil
	}

	if upload.Err != nil {
		return nil, httperror.BadRequest(
			"item.upload.failed",
			"Upload error",
			upload.Err.Error(),
		)
	}

	contentType := sniffContentType(upload.Data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, httperror.UnsupportedMediaType(
			"item.upload.unsupported_type",
			"Only images (jpg/png/gif/webp) are allowed",
			map[string]string{"detected": contentType},
		)
	}

	if e := strings.ToLower(filepath.Ext(upload.Filename)); e != "" {
		ext = e
	}

	return &Attachment{
		Key:         newStorageKey(time.Now().UTC(), ext),
		ContentType: contentType,
		Data:        upload.Data,
	}, nil
}

func sniffContentType(data []byte) string {
	detected := http.DetectContentType(data)
	// DetectContentType may append parameters, e.g. "text/plain; charset=utf-8"
	if mediaType, _, found := strings.Cut(detected, ";"); found {
		return strings.TrimSpace(mediaType)
	}
	return detected
}

// newStorageKey builds uploads/YYYY/MM/DD/<12 hex chars><ext>. The random
// token makes collisions vanishingly unlikely; collisions are not detected
// or retried.
func newStorageKey(now time.Time, ext string) string {
	token := make([]byte, 6)
	_, _ = rand.Read(token)

	return fmt.Sprintf("uploads/%04d/%02d/%02d/%s%s",
		now.Year(), int(now.Month()), now.Day(), hex.EncodeToString(token), ext)
}
