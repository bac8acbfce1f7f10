package pagination

import (
	"context"
	"net/url"
)

// Pager iterates through a collection resource using repeated page fetches.
// It maintains limit/offset state and stops when a short or empty page is
// returned.
type Pager struct {
	Fetcher  PageFetcher
	Resource string
	Query    url.Values
	Limit    int
	Offset   int
	Done     bool
}

// Next returns the next batch of items, or nil when iteration finishes.
func (p *Pager) Next(ctx context.Context) ([]Item, error) {
	if p.Done {
		return nil, nil
	}
	if p.Limit < 1 {
		return nil, ErrInvalidLimit
	}

	page, err := p.Fetcher.FetchPage(ctx, p.Resource, p.Query, p.Limit, p.Offset)
	if err != nil {
		return nil, &PageError{Resource: p.Resource, Offset: p.Offset, Err: err}
	}

	if len(page) == 0 {
		p.Done = true
		return nil, nil
	}
	if len(page) < p.Limit {
		p.Done = true
	}
	p.Offset += len(page)
	return page, nil
}

// All drains the pager and returns every remaining item.
func (p *Pager) All(ctx context.Context) ([]Item, error) {
	var items []Item
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			return items, nil
		}
		items = append(items, page...)
	}
}
