package imagestore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fishfinder/fishfinder-go/internal/errors"
)

// LocalStore reads objects from a directory tree laid out as
// <root>/<bucket>/<key>. Used for local development and tests.
type LocalStore struct {
	root string
}

// NewLocalStore creates a filesystem-backed object store.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Fetch opens the file backing the object at (bucket, key).
func (s *LocalStore) Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.root, bucket, filepath.FromSlash(key))

	// Keys are caller supplied, keep reads inside the root.
	cleanRoot := filepath.Clean(s.root) + string(os.PathSeparator)
	if !strings.HasPrefix(filepath.Clean(path), cleanRoot) {
		return nil, errors.Newf("object key escapes storage root").
			Component("imagestore").
			Category(errors.CategoryObjectFetch).
			Context("bucket", bucket).
			Context("key", key).
			Build()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("imagestore").
			Category(errors.CategoryObjectFetch).
			Context("bucket", bucket).
			Context("key", key).
			Build()
	}
	return f, nil
}
