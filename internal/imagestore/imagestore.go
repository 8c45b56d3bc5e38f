// Package imagestore abstracts read access to the object store holding the
// uploaded images.
package imagestore

import (
	"context"
	"fmt"
	"io"

	"github.com/fishfinder/fishfinder-go/internal/conf"
)

// Store reads objects by bucket and key. Keys are percent-decoded before
// reaching this interface.
type Store interface {
	// Fetch returns a reader over the object at (bucket, key). The caller is
	// responsible for closing the reader.
	Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// New selects a store implementation from the settings.
func New(settings *conf.Settings) (Store, error) {
	switch settings.Storage.Provider {
	case "http":
		return NewHTTPStore(settings.Storage.Endpoint), nil
	case "local":
		return NewLocalStore(settings.Storage.Root), nil
	default:
		return nil, fmt.Errorf("unknown storage provider: %q", settings.Storage.Provider)
	}
}
