// Package query implements the generic filter/sort/paginate pipeline used by
// the list endpoints.
package query

import (
	"sort"
	"strings"
	"time"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultPageSize applies when a caller asks for no page size.
const DefaultPageSize = 20

// Params describes one list request.
type Params struct {
	Search    string
	SortField string
	SortDir   Direction
	Page      int
	PageSize  int
}

// Schema declares which fields of T are searchable and sortable.
// Sortable accessors return ok=false for an absent value; absent values sort
// after all present values regardless of direction.
type Schema[T any] struct {
	Searchable []func(T) string
	Sortable   map[string]func(T) (any, bool)
}

// Result is the page slice plus the total filtered count, which callers use
// for page-count display.
type Result[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
}

// Apply runs filter, then sort, then pagination over items. The returned
// page is clamped into range, so the caller can never sit on an out-of-range
// page after the filter shrinks the collection.
func Apply[T any](items []T, p Params, s Schema[T]) Result[T] {
	filtered := filter(items, p.Search, s.Searchable)

	if p.SortField != "" {
		if accessor, ok := s.Sortable[p.SortField]; ok {
			sortItems(filtered, accessor, p.SortDir)
		}
	}

	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result[T]{Items: filtered[start:end], Total: len(filtered), Page: page}
}

func filter[T any](items []T, search string, fields []func(T) string) []T {
	if search == "" || len(fields) == 0 {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	needle := strings.ToLower(search)
	var out []T
	for _, item := range items {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func sortItems[T any](items []T, accessor func(T) (any, bool), dir Direction) {
	sort.SliceStable(items, func(i, j int) bool {
		a, aok := accessor(items[i])
		b, bok := accessor(items[j])
		// Nulls last, whatever the direction.
		if !aok || !bok {
			return aok && !bok
		}
		if dir == Desc {
			return less(b, a)
		}
		return less(a, b)
	})
}

// less compares two sort keys of the same dynamic type.
func less(a, b any) bool {
	switch av := a.(type) {
	case string:
		return strings.ToLower(av) < strings.ToLower(b.(string))
	case int:
		return av < b.(int)
	case float64:
		return av < b.(float64)
	case time.Time:
		return av.Before(b.(time.Time))
	}
	return false
}

// SortState tracks the single active sort key for a table view.
type SortState struct {
	Field string
	Dir   Direction
}

// Toggle applies a click on a column header: the same key flips direction,
// a new key resets to ascending.
func (s SortState) Toggle(field string) SortState {
	if s.Field == field {
		if s.Dir == Asc {
			return SortState{Field: field, Dir: Desc}
		}
		return SortState{Field: field, Dir: Asc}
	}
	return SortState{Field: field, Dir: Asc}
}
