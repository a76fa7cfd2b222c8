package evidence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxFileBytes = 5 << 20 // 5 MB

var (
	ErrFileTooLarge        = errors.New("payment proof file exceeds 5 MB")
	ErrUnsupportedFileType = errors.New("payment proof must be a JPEG, PNG or PDF")
)

// extByType doubles as the MIME allow-list.
var extByType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// File is an upload candidate. Size and ContentType are checked before any
// byte reaches the object store.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ObjectStore is the slice of the object-storage collaborator this package
// needs: upload a binary, get back a publicly reachable URL.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
}

type Capture struct {
	store ObjectStore
}

func NewCapture(store ObjectStore) *Capture { return &Capture{store: store} }

// Collect validates and uploads the optional file, then combines it with the
// optional note into a single Evidence value.
func (c *Capture) Collect(ctx context.Context, loanID, note string, f *File) (Evidence, error) {
	ev := Evidence{Note: strings.TrimSpace(note)}
	if f == nil {
		return ev, nil
	}
	if f.Size > MaxFileBytes {
		return Evidence{}, ErrFileTooLarge
	}
	ext, ok := extByType[normalizeType(f.ContentType)]
	if !ok {
		return Evidence{}, ErrUnsupportedFileType
	}

	key := objectKey(loanID, ext)
	url, err := c.store.Upload(ctx, key, normalizeType(f.ContentType), f.Reader, f.Size)
	if err != nil {
		return Evidence{}, err
	}
	ev.FileURL = url
	return ev, nil
}

// objectKey scopes the object under the loan id; the timestamp plus a short
// random suffix keeps repeated submissions from colliding.
func objectKey(loanID, ext string) string {
	return fmt.Sprintf("payment_proof_%s_%d_%s%s",
		loanID, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

func normalizeType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	return ct
}
