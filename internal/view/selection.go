package view

import (
	"sort"

	"github.com/leadstack/internal/models"
)

// Selection is the set of selected lead ids. It is scoped to the whole
// dataset, not the current page, so selections survive pagination; callers
// clear it on list/filter context switches and after destructive actions.
//
// Selection is an immutable value: every transition returns a new
// Selection and leaves the receiver untouched.
type Selection struct {
	ids map[int]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{}
}

func (s Selection) clone() map[int]struct{} {
	ids := make(map[int]struct{}, len(s.ids)+1)
	for id := range s.ids {
		ids[id] = struct{}{}
	}
	return ids
}

// Toggle flips membership of a single id. Applying it twice restores the
// prior state.
func (s Selection) Toggle(id int) Selection {
	ids := s.clone()
	if _, ok := ids[id]; ok {
		delete(ids, id)
	} else {
		ids[id] = struct{}{}
	}
	return Selection{ids: ids}
}

// Add bulk-adds ids to the selection.
func (s Selection) Add(leadIDs ...int) Selection {
	ids := s.clone()
	for _, id := range leadIDs {
		ids[id] = struct{}{}
	}
	return Selection{ids: ids}
}

// Remove bulk-removes ids from the selection.
func (s Selection) Remove(leadIDs ...int) Selection {
	ids := s.clone()
	for _, id := range leadIDs {
		delete(ids, id)
	}
	return Selection{ids: ids}
}

// SelectAll replaces the selection with exactly the given leads. The caller
// passes the collection select-all should act on (current page, filtered
// set, or everything); the selection itself has no notion of the global
// dataset.
func (s Selection) SelectAll(leads []models.Lead) Selection {
	ids := make(map[int]struct{}, len(leads))
	for _, lead := range leads {
		ids[lead.ID] = struct{}{}
	}
	return Selection{ids: ids}
}

// Clear returns an empty selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// IsSelected reports membership of an id.
func (s Selection) IsSelected(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected ids.
func (s Selection) Count() int {
	return len(s.ids)
}

// IDs materializes the selection as a sorted slice.
func (s Selection) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Pick returns the members of leads that are selected, preserving the
// input order.
func (s Selection) Pick(leads []models.Lead) []models.Lead {
	picked := make([]models.Lead, 0, len(s.ids))
	for _, lead := range leads {
		if s.IsSelected(lead.ID) {
			picked = append(picked, lead)
		}
	}
	return picked
}

// AllSelected reports whether every lead in the given collection is
// selected. Used for the page-level select-all checkbox state.
func (s Selection) AllSelected(leads []models.Lead) bool {
	if len(leads) == 0 {
		return false
	}
	for _, lead := range leads {
		if !s.IsSelected(lead.ID) {
			return false
		}
	}
	return true
}
