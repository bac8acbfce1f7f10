package api

import (
	"context"
	"net/url"
	"strconv"
)

// ListSites returns one page of sites.
func (a *API) ListSites(ctx context.Context, limit, offset int) ([]Site, error) {
	return listPage[Site](ctx, a, "sites", nil, limit, offset)
}

// ListAreas returns one page of a site's areas.
func (a *API) ListAreas(ctx context.Context, siteID, limit, offset int) ([]Area, error) {
	return listPage[Area](ctx, a, "areas", siteQuery(siteID), limit, offset)
}

// ListLines returns one page of a site's production lines.
func (a *API) ListLines(ctx context.Context, siteID, limit, offset int) ([]Line, error) {
	return listPage[Line](ctx, a, "lines", siteQuery(siteID), limit, offset)
}

// ListMachines returns one page of machines, optionally filtered by line code.
func (a *API) ListMachines(ctx context.Context, siteID int, lineCode string, limit, offset int) ([]Machine, error) {
	query := siteQuery(siteID)
	if lineCode != "" {
		query.Set("linecode", lineCode)
	}
	return listPage[Machine](ctx, a, "machines", query, limit, offset)
}

// LastLine returns the final line of a site's line collection, walking it
// page by page. Returns pagination.ErrNotFound when the site has no lines.
func (a *API) LastLine(ctx context.Context, siteID int) (*Line, error) {
	var line Line
	if err := a.lastItem(ctx, "lines", siteQuery(siteID), &line); err != nil {
		return nil, err
	}
	return &line, nil
}

// LastMachine returns the final machine of a line's machine collection.
func (a *API) LastMachine(ctx context.Context, siteID int, lineCode string) (*Machine, error) {
	query := siteQuery(siteID)
	if lineCode != "" {
		query.Set("linecode", lineCode)
	}

	var machine Machine
	if err := a.lastItem(ctx, "machines", query, &machine); err != nil {
		return nil, err
	}
	return &machine, nil
}

// listPage fetches one limit/offset page of a resource into typed models.
func listPage[T any](ctx context.Context, a *API, resource string, query url.Values, limit, offset int) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var items []T
	if err := a.client.GetJSON(ctx, resource, query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func siteQuery(siteID int) url.Values {
	return url.Values{"site": {strconv.Itoa(siteID)}}
}
