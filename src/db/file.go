package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"Go_Discovery/src/types"
)

// FileStore reads the catalog from a JSON document on every call.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (fs *FileStore) Restaurants(ctx context.Context) ([]types.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCatalogUnavailable, err)
	}
	return ReadCatalogFile(fs.Path)
}

func (fs *FileStore) Close() error { return nil }

// ReadCatalogFile parses a {"restaurants": [...]} document.
func ReadCatalogFile(path string) ([]types.Restaurant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", types.ErrCatalogUnavailable, path, err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %q: %v", types.ErrCatalogUnavailable, path, err)
	}
	if doc.Restaurants == nil {
		return nil, fmt.Errorf("%w: %q has no restaurants collection", types.ErrCatalogUnavailable, path)
	}

	return toRestaurants(doc.Restaurants)
}
