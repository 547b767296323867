package objectstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/derya/castlink/internal/pkg/sanitize"
)

// PhotoStore defines the interface for candidate photo uploads.
type PhotoStore interface {
	// Upload stores the uploaded file under a fresh event-scoped key and
	// returns the object's public URL. Upload never overwrites: every call
	// produces a new, distinct object.
	Upload(ctx context.Context, eventID string, file *multipart.FileHeader) (string, error)
}

// BuildObjectKey derives a unique object key for a photo upload as
// {sanitized-event-id}/{millisecond-timestamp}-{8-char-random}.{extension}.
// The random component is drawn from crypto/rand so concurrent submitters
// cannot collide.
func BuildObjectKey(eventID, filename string) string {
	folder := sanitize.FolderName(eventID)
	ext := sanitize.FileExtension(filename)

	buf := make([]byte, 4)
	// crypto/rand.Read is documented to always succeed.
	_, _ = rand.Read(buf)

	return fmt.Sprintf("%s/%d-%s.%s", folder, time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}
