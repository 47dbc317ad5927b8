package application

import (
	"context"
	"io"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/infrastructure/search"
)

// Geocoder turns a free-form address into a located point.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*entity.Location, error)
}

// BlobStore stores bytes under name and returns a reference to them.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
}

// BootcampSearch is the full-text index kept next to the primary store.
type BootcampSearch interface {
	Put(ctx context.Context, b *entity.Bootcamp) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]search.Hit, error)
}
