package cache

import (
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached GET response by resource path and filter query.
type Key struct {
	Resource string
	Query    url.Values
}

// String returns the canonical Redis key. Query parameters are sorted so the
// same logical request always maps to the same key.
func (k Key) String() string {
	var b strings.Builder
	b.WriteString("l2l:cache:")
	b.WriteString(strings.Trim(k.Resource, "/"))

	if len(k.Query) == 0 {
		return b.String()
	}

	params := make([]string, 0, len(k.Query))
	for name, values := range k.Query {
		sorted := append([]string(nil), values...)
		sort.Strings(sorted)
		params = append(params, name+"="+strings.Join(sorted, ","))
	}
	sort.Strings(params)

	b.WriteString("?")
	b.WriteString(strings.Join(params, "&"))
	return b.String()
}
