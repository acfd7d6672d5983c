package view

import (
	"net/url"
	"strconv"
)

// ParamsFromQuery builds view params from a request query string. Only the
// named filter keys are honored; anything else in the query is ignored so
// pagination and sort keys never leak into field filters.
func ParamsFromQuery(q url.Values, filterKeys ...string) Params {
	p := Params{
		Search:   q.Get("search"),
		SortKey:  q.Get("sortKey"),
		SortDir:  Asc,
		Page:     1,
		PageSize: DefaultPageSize,
		Filters:  map[string]string{},
	}

	if q.Get("sortDir") == string(Desc) {
		p.SortDir = Desc
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("pageSize")); err == nil && v > 0 {
		p.PageSize = v
	}
	for _, key := range filterKeys {
		if v := q.Get(key); v != "" {
			p.Filters[key] = v
		}
	}

	return p
}
