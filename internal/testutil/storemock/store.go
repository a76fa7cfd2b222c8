package storemock

import (
	"context"
	"io"
	"sync"
)

// Store is an in-memory object store standing in for the hosted bucket.
// It records every uploaded object and serves deterministic public URLs.
type Store struct {
	mu       sync.Mutex
	Objects  map[string][]byte
	UploadFn func(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
}

func New() *Store { return &Store{Objects: map[string][]byte{}} }

func (s *Store) Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, key, contentType, r, size)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.Objects[key] = b
	s.mu.Unlock()
	return "https://storage.test/object/public/payment_proofs/" + key, nil
}
