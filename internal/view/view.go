// Package view implements the pure client-side list transform the dashboard
// relies on: filter, then sort, then paginate. It holds no state and never
// touches the network, so identical input always yields identical output.
package view

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

const (
	DefaultPageSize = 10
	// FilterAll is the field-filter value meaning "no restriction".
	FilterAll = "all"
)

// Params are the view parameters a list screen holds: free-text search,
// exact-match field filters, one sort key and direction, and the page window.
type Params struct {
	Search   string
	Filters  map[string]string
	SortKey  string
	SortDir  SortDir
	Page     int
	PageSize int
}

// Kind tags how a sort value compares.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTime
)

// Value is a sortable projection of one field of an item.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Time time.Time
}

func String(s string) Value { return Value{Kind: KindString, Str: s} }

func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// ParseNumber parses s as a float, falling back to zero on missing or
// malformed input.
func ParseNumber(s string) Value {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return Value{Kind: KindNumber, Num: f}
}

// Time compares by instant; the zero time sorts first (epoch-zero fallback
// for records missing a timestamp).
func Time(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

// Viewable is implemented by every record type that can back a list screen.
type Viewable interface {
	// SearchText returns the fields the free-text search matches against.
	SearchText() []string
	// FieldValue returns the item's value for an exact-match filter key.
	FieldValue(key string) string
	// SortValue returns the sortable projection for a sort key.
	SortValue(key string) Value
}

type Result[T Viewable] struct {
	PageItems  []T `json:"pageItems"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// Apply runs the filter → sort → paginate pipeline. Filtering and sorting
// always happen before the page slice. Sorting is stable, so ties keep the
// collection's incoming order. A page beyond the last yields empty items,
// never an error; resetting the page number is the caller's job.
func Apply[T Viewable](items []T, p Params) Result[T] {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}

	filtered := make([]T, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(p.Search))
	for _, item := range items {
		if !matchesSearch(item, search) {
			continue
		}
		if !matchesFilters(item, p.Filters) {
			continue
		}
		filtered = append(filtered, item)
	}

	if p.SortKey != "" {
		desc := p.SortDir == Desc
		sort.SliceStable(filtered, func(i, j int) bool {
			c := compare(filtered[i].SortValue(p.SortKey), filtered[j].SortValue(p.SortKey))
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	total := len(filtered)
	totalPages := (total + p.PageSize - 1) / p.PageSize

	start := (p.Page - 1) * p.PageSize
	if start >= total {
		return Result[T]{PageItems: []T{}, TotalCount: total, TotalPages: totalPages}
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}

	return Result[T]{PageItems: filtered[start:end], TotalCount: total, TotalPages: totalPages}
}

func matchesSearch[T Viewable](item T, search string) bool {
	if search == "" {
		return true
	}
	for _, field := range item.SearchText() {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func matchesFilters[T Viewable](item T, filters map[string]string) bool {
	for key, want := range filters {
		if want == "" || want == FilterAll {
			continue
		}
		if item.FieldValue(key) != want {
			return false
		}
	}
	return true
}

func compare(a, b Value) int {
	switch a.Kind {
	case KindNumber:
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		}
		return 0
	case KindTime:
		switch {
		case a.Time.Before(b.Time):
			return -1
		case a.Time.After(b.Time):
			return 1
		}
		return 0
	default:
		return strings.Compare(strings.ToLower(a.Str), strings.ToLower(b.Str))
	}
}
