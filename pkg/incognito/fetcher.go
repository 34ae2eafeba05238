package incognito

import "context"

// Fetcher retrieves the raw body for a URL. Implementations own transport,
// timeouts and retries; errors are passed to callers unchanged.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}
