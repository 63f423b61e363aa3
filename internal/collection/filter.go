// Package collection turns a fully fetched record set into what a list view
// should render, given live search text, filter selections and a page window.
// It is a pure in-memory transform with no backend interaction.
package collection

import "strings"

// All is the sentinel filter value meaning "unconstrained".
const All = "all"

// Fields designates which parts of a record participate in matching: the
// free-text fields searched by substring, and the named term fields an exact
// filter can constrain.
type Fields[T any] struct {
	Text  func(T) []string
	Terms map[string]func(T) string
}

// Filter returns the records matching the search text and every active
// filter, preserving their relative order. Matching is case-insensitive
// substring over the designated text fields; an empty search matches
// everything, as does the All sentinel for any filter.
func Filter[T any](records []T, fields Fields[T], search string, filters map[string]string) []T {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if !matchesSearch(rec, fields, needle) {
			continue
		}
		if !matchesFilters(rec, fields, filters) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Paginate slices the contiguous page window [(page-1)*size, page*size) out
// of records. It does not clamp: a page past the end yields an empty slice,
// and callers owning page state are responsible for resetting it.
func Paginate[T any](records []T, page, size int) []T {
	if page < 1 || size < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(records) {
		return nil
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// Apply combines Filter and Paginate, returning the visible slice for the
// requested page and the total filtered count.
func Apply[T any](records []T, fields Fields[T], search string, filters map[string]string, page, size int) ([]T, int) {
	filtered := Filter(records, fields, search, filters)
	return Paginate(filtered, page, size), len(filtered)
}

func matchesSearch[T any](rec T, fields Fields[T], needle string) bool {
	if needle == "" {
		return true
	}
	if fields.Text == nil {
		return false
	}
	for _, field := range fields.Text(rec) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](rec T, fields Fields[T], filters map[string]string) bool {
	for name, want := range filters {
		if want == "" || want == All {
			continue
		}
		get, ok := fields.Terms[name]
		if !ok {
			return false
		}
		if get(rec) != want {
			return false
		}
	}
	return true
}
