package assets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matteonot12/icecat-helper/pkg/httpclient"
)

// Fetcher retrieves the raw bytes of a remote asset (image or document).
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches assets over plain unauthenticated GET. Asset hosts are
// whatever URLs the catalog record supplies; there is no per-request timeout
// beyond the caller's context.
type HTTPFetcher struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewHTTPFetcher creates an asset fetcher.
func NewHTTPFetcher(logger *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: httpclient.New(httpclient.Config{Timeout: 0}),
		logger: logger,
	}
}

// Fetch downloads one asset and returns its raw bytes.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, err := f.client.GetBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch asset: %w", err)
	}

	f.logger.DebugContext(ctx, "asset fetched",
		slog.String("url", url),
		slog.Int("bytes", len(data)),
	)

	return data, nil
}
