package btvo

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
)

// ArtifactMirror copies generated voice-over files into a GCS bucket so
// they survive Cloud Run instance recycling (the local dir is /tmp there).
type ArtifactMirror struct {
	client *storage.Client
	bucket string
	logger zerolog.Logger
}

// NewArtifactMirror wraps a storage client for the given bucket.
func NewArtifactMirror(client *storage.Client, bucket string, logger zerolog.Logger) *ArtifactMirror {
	return &ArtifactMirror{
		client: client,
		bucket: bucket,
		logger: logger.With().Str("component", "mirror").Str("bucket", bucket).Logger(),
	}
}

// Upload writes one file to the bucket.
func (m *ArtifactMirror) Upload(ctx context.Context, name string, data []byte) error {
	w := m.client.Bucket(m.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "audio/mpeg"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	m.logger.Debug().Str("object", name).Int("size", len(data)).Msg("mirrored")
	return nil
}

// List returns the names of all objects in the bucket.
func (m *ArtifactMirror) List(ctx context.Context) ([]string, error) {
	var names []string
	it := m.client.Bucket(m.bucket).Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

// Clear deletes all objects in the bucket and returns how many were removed.
func (m *ArtifactMirror) Clear(ctx context.Context) (int, error) {
	names, err := m.List(ctx)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, name := range names {
		if err := m.client.Bucket(m.bucket).Object(name).Delete(ctx); err != nil {
			m.logger.Warn().Err(err).Str("object", name).Msg("delete failed")
			continue
		}
		deleted++
	}
	return deleted, nil
}
