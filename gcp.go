package btvo

import (
	"context"

	"cloud.google.com/go/storage"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"google.golang.org/api/option"
)

// NewTTSClient initializes the Cloud TTS client. With an endpoint
// override it builds an unauthenticated REST client for simulator use.
func NewTTSClient(ctx context.Context, endpointURL string) (*texttospeech.Client, error) {
	if endpointURL != "" {
		return texttospeech.NewRESTClient(ctx,
			option.WithEndpoint(endpointURL),
			option.WithoutAuthentication(),
		)
	}
	return texttospeech.NewClient(ctx)
}

// NewStorageClient initializes the GCS client, honoring an endpoint
// override the same way.
func NewStorageClient(ctx context.Context, endpointURL string) (*storage.Client, error) {
	if endpointURL != "" {
		return storage.NewClient(ctx,
			option.WithEndpoint(endpointURL),
			option.WithoutAuthentication(),
		)
	}
	return storage.NewClient(ctx)
}
