// Package models defines the core domain entities for the lead manager.
package models

// Lead represents a single prospective-customer record.
//
// IDs are assigned by the store (sequential, starting at 1) and are unique
// within a store snapshot. EmailUnlocked/PhoneUnlocked are client-local
// overlay state: the canonical store always persists them as false.
type Lead struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Industry      string `json:"industry"`
	Location      string `json:"location"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
	EmailUnlocked bool   `json:"emailUnlocked"`
	PhoneUnlocked bool   `json:"phoneUnlocked"`
	IsImported    bool   `json:"isImported,omitempty"`
}

// SavedList is a named, frozen snapshot of a subset of leads.
// The embedded leads are copies, not references: later unlocks or edits to
// the source leads do not propagate into a saved list.
type SavedList struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Leads     []Lead `json:"leads"`
	CreatedAt int64  `json:"createdAt"`
}

// FilterCriteria is the matching criteria of a saved filter.
//
// Tags are collected and persisted but never consulted during matching:
// leads carry no tag attribute. The field is kept so filters written by
// older clients round-trip unchanged.
type FilterCriteria struct {
	Countries  []string `json:"countries"`
	Industries []string `json:"industries"`
	Tags       []string `json:"tags"`
}

// SavedFilter is a named set of matching criteria that can be re-applied to
// regenerate a displayed subset. Filters are client-only state: they are
// persisted through the local fallback path, never through the list store.
type SavedFilter struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Filters   FilterCriteria `json:"filters"`
	CreatedAt int64          `json:"createdAt"`
}

// AppState is the client-local state blob persisted as a single unit by the
// fallback persistence path (the analogue of the original single-key
// browser storage entry).
type AppState struct {
	SavedLists   []SavedList   `json:"savedLists"`
	SavedFilters []SavedFilter `json:"savedFilters"`
	Credits      int           `json:"credits"`
}
