// Package api provides typed access to the manufacturing operations
// resources: sites, areas, lines, machines, dispatch events, operator
// clocking, and production recording.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/leading2lean/lesgo/pkg/client"
	"github.com/leading2lean/lesgo/pkg/pagination"
)

// DefaultPageSize is the page size used for collection walks.
const DefaultPageSize = 100

// API is the typed resource surface on top of the HTTP client.
type API struct {
	client   *client.Client
	pageSize int
	logger   zerolog.Logger
}

// New creates a typed API on top of an existing client.
func New(c *client.Client) *API {
	return &API{
		client:   c,
		pageSize: DefaultPageSize,
		logger:   log.With().Str("component", "l2l-api").Logger(),
	}
}

// WithPageSize returns a copy of the API using the given page size for
// collection walks.
func (a *API) WithPageSize(size int) *API {
	cp := *a
	cp.pageSize = size
	return &cp
}

// decodeItem converts an opaque pagination item into a typed model.
func decodeItem(item pagination.Item, out any) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode item: %w", err)
	}
	return nil
}

// lastItem walks the resource and decodes the final element into out.
func (a *API) lastItem(ctx context.Context, resource string, query url.Values, out any) error {
	fetcher, err := pagination.NewLastItemFetcher(a.client, a.pageSize)
	if err != nil {
		return err
	}
	item, err := fetcher.FetchLast(ctx, resource, query)
	if err != nil {
		return err
	}
	return decodeItem(item, out)
}
