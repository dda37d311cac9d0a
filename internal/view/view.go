// Package view implements the client-side derived-view pipeline: search
// filter, sort, pagination, and selection over an in-memory lead
// collection. Everything here is pure value transformation, so the
// pipeline is testable without any UI or HTTP harness.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/leadstack/internal/models"
)

// SortOrder selects the direction of the name sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DefaultPageSize is the fixed page size of the lead table.
const DefaultPageSize = 10

// View is the ephemeral presentation state applied on top of the displayed
// lead collection.
type View struct {
	Search   string
	Sort     SortOrder
	Page     int
	PageSize int
}

// NewView returns the initial view: empty search, ascending, page 1.
func NewView() View {
	return View{Sort: SortAsc, Page: 1, PageSize: DefaultPageSize}
}

// Result is one derived page plus the totals the pager needs.
type Result struct {
	Items        []models.Lead
	Page         int
	TotalPages   int
	TotalMatched int
}

// Apply runs the filter → sort → paginate pipeline over leads. The input
// slice is not modified.
func (v View) Apply(leads []models.Lead) Result {
	matched := filterBySearch(leads, v.Search)
	sortByName(matched, v.Sort)

	pageSize := v.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := v.Page
	if page < 1 {
		page = 1
	}

	totalPages := (len(matched) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return Result{
		Items:        matched[start:end],
		Page:         page,
		TotalPages:   totalPages,
		TotalMatched: len(matched),
	}
}

// filterBySearch keeps leads whose name, location, or industry contains the
// search text, case-insensitively. An empty search matches everything.
func filterBySearch(leads []models.Lead, search string) []models.Lead {
	matched := make([]models.Lead, 0, len(leads))
	if search == "" {
		return append(matched, leads...)
	}

	needle := strings.ToLower(search)
	for _, lead := range leads {
		if strings.Contains(strings.ToLower(lead.Name), needle) ||
			strings.Contains(strings.ToLower(lead.Location), needle) ||
			strings.Contains(strings.ToLower(lead.Industry), needle) {
			matched = append(matched, lead)
		}
	}
	return matched
}

// sortByName stable-sorts in place by name with a locale-aware,
// case-insensitive collator, so accented names land next to their base
// letter instead of after "z". The collator is built per call; it is not
// safe for concurrent use.
func sortByName(leads []models.Lead, order SortOrder) {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(leads, func(i, j int) bool {
		cmp := c.CompareString(leads[i].Name, leads[j].Name)
		if order == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}
