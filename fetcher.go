package grail

import "context"

// Fetcher retrieves the body of a URL over the network.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// Non-success responses are reported as *StatusError.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases transport resources.
	Close() error
}
