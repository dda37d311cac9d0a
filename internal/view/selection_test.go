package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadstack/internal/models"
)

func TestSelection_ToggleIsIdempotentUnderDoubleApplication(t *testing.T) {
	s := NewSelection()

	once := s.Toggle(7)
	assert.True(t, once.IsSelected(7))
	assert.Equal(t, 1, once.Count())

	twice := once.Toggle(7)
	assert.False(t, twice.IsSelected(7))
	assert.Equal(t, 0, twice.Count())
}

func TestSelection_TransitionsDoNotMutateReceiver(t *testing.T) {
	base := NewSelection().Add(1, 2, 3)

	_ = base.Toggle(1)
	_ = base.Remove(2, 3)
	_ = base.Clear()

	assert.Equal(t, 3, base.Count())
	assert.Equal(t, []int{1, 2, 3}, base.IDs())
}

func TestSelection_SelectAllThenCount(t *testing.T) {
	leads := []models.Lead{{ID: 1}, {ID: 5}, {ID: 9}}

	s := NewSelection().Add(42).SelectAll(leads)
	assert.Equal(t, len(leads), s.Count())
	// SelectAll replaces: the previous membership is gone.
	assert.False(t, s.IsSelected(42))
	assert.Equal(t, []int{1, 5, 9}, s.IDs())
}

func TestSelection_DeselectAll(t *testing.T) {
	s := NewSelection().Add(1, 2, 3).Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.IDs())
}

func TestSelection_BulkAddRemove(t *testing.T) {
	s := NewSelection().Add(1, 2, 3, 4)
	s = s.Remove(2, 4)

	assert.Equal(t, []int{1, 3}, s.IDs())
}

func TestSelection_PickPreservesInputOrder(t *testing.T) {
	leads := []models.Lead{
		{ID: 3, Name: "c"},
		{ID: 1, Name: "a"},
		{ID: 2, Name: "b"},
	}

	s := NewSelection().Add(1, 3)
	picked := s.Pick(leads)

	assert.Equal(t, []string{"c", "a"}, names(picked))
}

func TestSelection_AllSelected(t *testing.T) {
	leads := []models.Lead{{ID: 1}, {ID: 2}}

	assert.False(t, NewSelection().AllSelected(leads))
	assert.False(t, NewSelection().Add(1).AllSelected(leads))
	assert.True(t, NewSelection().Add(1, 2).AllSelected(leads))
	assert.False(t, NewSelection().Add(1, 2).AllSelected(nil), "empty collection is never all-selected")
}

func TestSelection_SurvivesAcrossPages(t *testing.T) {
	// Selection is keyed by id only; paging the view does not affect it.
	all := make([]models.Lead, 30)
	for i := range all {
		all[i] = models.Lead{ID: i + 1, Name: "x"}
	}

	s := NewSelection().Add(1, 15, 30)

	v := NewView()
	v.Page = 2
	page := v.Apply(all)

	assert.Equal(t, 3, s.Count())
	assert.True(t, s.IsSelected(15))
	assert.NotEmpty(t, page.Items)
}
