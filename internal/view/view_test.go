package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadstack/internal/models"
)

func names(leads []models.Lead) []string {
	out := make([]string, len(leads))
	for i, l := range leads {
		out[i] = l.Name
	}
	return out
}

func TestApply_SortIsCaseInsensitive(t *testing.T) {
	leads := []models.Lead{
		{ID: 1, Name: "Bob"},
		{ID: 2, Name: "alice"},
	}

	res := NewView().Apply(leads)
	assert.Equal(t, []string{"alice", "Bob"}, names(res.Items))

	v := NewView()
	v.Sort = SortDesc
	res = v.Apply(leads)
	assert.Equal(t, []string{"Bob", "alice"}, names(res.Items))
}

func TestApply_SearchMatchesNameLocationIndustry(t *testing.T) {
	leads := []models.Lead{
		{ID: 1, Name: "Bob", Location: "USA", Industry: "Tech"},
		{ID: 2, Name: "alice", Location: "Germany", Industry: "Finance"},
		{ID: 3, Name: "Carol", Location: "Bolivia", Industry: "Retail"},
	}

	v := NewView()
	v.Search = "bo"
	res := v.Apply(leads)
	// "bo" matches Bob by name and Bolivia by location, not alice.
	assert.ElementsMatch(t, []string{"Bob", "Carol"}, names(res.Items))

	v.Search = "finance"
	res = v.Apply(leads)
	assert.Equal(t, []string{"alice"}, names(res.Items))

	v.Search = ""
	res = v.Apply(leads)
	assert.Equal(t, 3, res.TotalMatched)
}

func TestApply_Pagination(t *testing.T) {
	leads := make([]models.Lead, 0, 25)
	for i := 0; i < 25; i++ {
		leads = append(leads, models.Lead{ID: i + 1, Name: string(rune('a' + i))})
	}

	v := NewView()
	res := v.Apply(leads)
	assert.Len(t, res.Items, 10)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 25, res.TotalMatched)

	v.Page = 3
	res = v.Apply(leads)
	assert.Len(t, res.Items, 5)

	// A page past the end yields an empty page, not an error.
	v.Page = 9
	res = v.Apply(leads)
	assert.Empty(t, res.Items)
}

func TestApply_SortIsLocaleAware(t *testing.T) {
	leads := []models.Lead{
		{ID: 1, Name: "Mzz Corp"},
		{ID: 2, Name: "Müller"},
		{ID: 3, Name: "alice"},
	}

	// Byte-wise comparison would push "Müller" past "Mzz Corp"; collation
	// keeps ü next to u.
	res := NewView().Apply(leads)
	assert.Equal(t, []string{"alice", "Müller", "Mzz Corp"}, names(res.Items))
}

func TestApply_SortIsStable(t *testing.T) {
	leads := []models.Lead{
		{ID: 1, Name: "Same"},
		{ID: 2, Name: "same"},
		{ID: 3, Name: "SAME"},
	}

	res := NewView().Apply(leads)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{res.Items[0].ID, res.Items[1].ID, res.Items[2].ID})
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	leads := []models.Lead{
		{ID: 1, Name: "zeta"},
		{ID: 2, Name: "alpha"},
	}

	_ = NewView().Apply(leads)
	assert.Equal(t, "zeta", leads[0].Name, "pipeline must work on a copy")
}

func TestMatchesCriteria(t *testing.T) {
	lead := models.Lead{Name: "Alice", Location: "Germany", Industry: "Tech"}

	tests := []struct {
		name     string
		criteria models.FilterCriteria
		want     bool
	}{
		{"empty criteria match all", models.FilterCriteria{}, true},
		{"country match", models.FilterCriteria{Countries: []string{"Germany", "France"}}, true},
		{"country miss", models.FilterCriteria{Countries: []string{"France"}}, false},
		{"industry match", models.FilterCriteria{Industries: []string{"Tech"}}, true},
		{"and across categories", models.FilterCriteria{Countries: []string{"Germany"}, Industries: []string{"Finance"}}, false},
		{"both categories match", models.FilterCriteria{Countries: []string{"Germany"}, Industries: []string{"Tech"}}, true},
		{"tags are ignored", models.FilterCriteria{Tags: []string{"hot", "priority"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesCriteria(lead, tt.criteria))
		})
	}
}

func TestApplyCriteria(t *testing.T) {
	leads := []models.Lead{
		{ID: 1, Location: "Germany", Industry: "Tech"},
		{ID: 2, Location: "France", Industry: "Tech"},
		{ID: 3, Location: "Germany", Industry: "Retail"},
	}

	matched := ApplyCriteria(leads, models.FilterCriteria{
		Countries:  []string{"Germany"},
		Industries: []string{"Tech", "Retail"},
	})
	require.Len(t, matched, 2)
	assert.Equal(t, 1, matched[0].ID)
	assert.Equal(t, 3, matched[1].ID)
}
