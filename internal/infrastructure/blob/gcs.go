package blob

import (
	"context"
	"io"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
)

// GCS uploads into a Google Cloud Storage bucket under Prefix; the
// reference is the public object URL.
type GCS struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func (g *GCS) Put(ctx context.Context, name, contentType string, r io.Reader, _ int64) (string, error) {
	return helpers.UploadObject(ctx, g.Client, g.Bucket, g.Prefix+name, contentType, r)
}
