package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"peerlend-backend/internal/logger"
)

// Client talks to the hosted object store over its REST surface:
// POST {endpoint}/object/{bucket}/{key} uploads a binary, and the object is
// then publicly reachable under {publicBase}/object/public/{bucket}/{key}.
type Client struct {
	hc         *http.Client
	endpoint   string
	publicBase string
	bucket     string
	token      string
}

type Options struct {
	Endpoint   string
	PublicBase string
	Bucket     string
	Token      string
}

func New(opts Options) *Client {
	return &Client{
		hc:         &http.Client{Timeout: 30 * time.Second},
		endpoint:   strings.TrimRight(opts.Endpoint, "/"),
		publicBase: strings.TrimRight(opts.PublicBase, "/"),
		bucket:     opts.Bucket,
		token:      opts.Token,
	}
}

// Upload streams the object and returns its public URL.
func (c *Client) Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	u := fmt.Sprintf("%s/object/%s/%s", c.endpoint, c.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, r)
	if err != nil {
		return "", err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Log.Error("storage upload rejected",
			zap.String("key", key), zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("storage upload: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return c.PublicURL(key), nil
}

func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.publicBase, c.bucket, key)
}
