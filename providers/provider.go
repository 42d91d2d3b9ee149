package providers

import (
	"context"
	"encoding/json"
)

// Result is a standardized search hit for a disc.
type Result struct {
	Link  string
	Image string
	// Raw is the provider payload that produced the hit, stored with the
	// disc as evidence.
	Raw json.RawMessage
}

// Searcher is the interface every disc search source implements. Returning
// (nil, nil) means the source had no usable hit for this disc.
type Searcher interface {
	// SearchDisc looks a release up by artist and title.
	SearchDisc(ctx context.Context, artist, title string) (*Result, error)

	// Name returns the unique source name (e.g. "spotify").
	Name() string
}
