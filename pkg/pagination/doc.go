// Package pagination walks limit/offset collection resources of the API.
//
// The API slices collections with ?limit=N&offset=M query parameters and
// gives no total count upfront, so each request depends on the length of the
// previous page: a full page means there may be more, a short or empty page
// marks the end. That forces a sequential walk; parallel fan-out would need a
// known total.
//
// Example usage:
//
//	fetcher, err := pagination.NewLastItemFetcher(apiClient, 100)
//	last, err := fetcher.FetchLast(ctx, "lines", url.Values{"site": {"1"}})
//
// LastItemFetcher finds the final element of a filtered collection (for
// example the newest line of a site) without loading the whole collection
// into memory. Pager iterates all pages batch by batch.
package pagination
