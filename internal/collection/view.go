package collection

// View is the stateful wrapper a list page holds: the full record set, the
// current search text and filter selections, and the page window. Changing
// the search or a filter resets the page to 1; replacing the records alone
// leaves it as-is.
type View[T any] struct {
	fields   Fields[T]
	records  []T
	search   string
	filters  map[string]string
	page     int
	pageSize int
}

// NewView creates a view with the given matching fields and page size.
func NewView[T any](fields Fields[T], pageSize int) *View[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &View[T]{
		fields:   fields,
		filters:  map[string]string{},
		page:     1,
		pageSize: pageSize,
	}
}

// SetRecords replaces the full record set, keeping the current page.
func (v *View[T]) SetRecords(records []T) {
	v.records = records
}

// SetSearch updates the search text, resetting to the first page on change.
func (v *View[T]) SetSearch(search string) {
	if search == v.search {
		return
	}
	v.search = search
	v.page = 1
}

// SetFilter sets a named filter value, resetting to the first page on change.
// The All sentinel (or an empty value) lifts the constraint.
func (v *View[T]) SetFilter(name, value string) {
	if v.filters[name] == value {
		return
	}
	v.filters[name] = value
	v.page = 1
}

// Page returns the current 1-based page number.
func (v *View[T]) Page() int { return v.page }

// SetPage jumps to a page. Out-of-range targets are ignored, mirroring the
// disabled navigation buttons at the list boundaries.
func (v *View[T]) SetPage(page int) {
	if page < 1 || page > v.TotalPages() {
		return
	}
	v.page = page
}

// NextPage advances one page unless already on the last.
func (v *View[T]) NextPage() { v.SetPage(v.page + 1) }

// PrevPage goes back one page unless already on the first.
func (v *View[T]) PrevPage() { v.SetPage(v.page - 1) }

// TotalPages returns the number of pages in the current filtered set, at
// least 1 so an empty set still renders a single empty page.
func (v *View[T]) TotalPages() int {
	n := len(v.Filtered())
	if n == 0 {
		return 1
	}
	return (n + v.pageSize - 1) / v.pageSize
}

// Filtered returns the full filtered set in source order.
func (v *View[T]) Filtered() []T {
	return Filter(v.records, v.fields, v.search, v.filters)
}

// Visible returns the slice for the current page and the total filtered count.
func (v *View[T]) Visible() ([]T, int) {
	filtered := v.Filtered()
	return Paginate(filtered, v.page, v.pageSize), len(filtered)
}

// CountBy tallies the filtered set by a named term field, for the quick
// stats row above the admin table.
func (v *View[T]) CountBy(term string) map[string]int {
	get, ok := v.fields.Terms[term]
	if !ok {
		return nil
	}
	counts := map[string]int{}
	for _, rec := range v.Filtered() {
		counts[get(rec)]++
	}
	return counts
}
