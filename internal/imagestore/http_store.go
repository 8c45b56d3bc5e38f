package imagestore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fishfinder/fishfinder-go/internal/errors"
)

// HTTPStore fetches objects from an S3-style HTTP endpoint where the object
// lives at <endpoint>/<bucket>/<key>.
type HTTPStore struct {
	endpoint string
	client   *http.Client
}

// NewHTTPStore creates an HTTP object store client.
func NewHTTPStore(endpoint string) *HTTPStore {
	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPStore{
		endpoint: strings.TrimRight(endpoint, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   60 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

// Fetch downloads the object at (bucket, key). The key is re-encoded path
// segment by path segment since it arrives percent-decoded.
func (s *HTTPStore) Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	objectURL := s.endpoint + "/" + url.PathEscape(bucket) + "/" + escapeKey(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, objectURL, nil)
	if err != nil {
		return nil, errors.New(err).
			Component("imagestore").
			Category(errors.CategoryObjectFetch).
			Context("bucket", bucket).
			Context("key", key).
			Build()
	}
	req.Header.Set("Accept", "image/jpeg, image/png, */*")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.New(err).
			Component("imagestore").
			Category(errors.CategoryObjectFetch).
			Context("bucket", bucket).
			Context("key", key).
			Build()
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errors.Newf("object fetch failed with status %d", resp.StatusCode).
			Component("imagestore").
			Category(errors.CategoryObjectFetch).
			Context("bucket", bucket).
			Context("key", key).
			Context("status", resp.StatusCode).
			Build()
	}

	return resp.Body, nil
}

// escapeKey percent-encodes each path segment of an object key while keeping
// the separators.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
