package client

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/leadstack/internal/config"
	"github.com/leadstack/internal/csvcodec"
	apperrors "github.com/leadstack/internal/errors"
	"github.com/leadstack/internal/logging"
	"github.com/leadstack/internal/models"
	"github.com/leadstack/internal/view"
)

// Workspace is the client-side application state: the canonical lead
// snapshot, the displayed working subset, the derived-view parameters, the
// selection, the credit balance, and the saved lists and filters.
//
// Workspace is single-goroutine by design, mirroring the synchronous
// per-action update model of the original application. It is not safe for
// concurrent use.
type Workspace struct {
	api       *APIClient
	persister StatePersister
	costs     config.CreditsConfig
	logger    *logging.Logger
	rng       *rand.Rand

	allLeads  []models.Lead
	displayed []models.Lead

	viewState view.View
	selection view.Selection

	credits      int
	savedLists   []models.SavedList
	savedFilters []models.SavedFilter

	activeListID   string
	activeFilterID string
}

// NewWorkspace creates a workspace bound to an API client and a
// persistence port. The credit balance starts at the configured initial
// value until Load replaces it with persisted state.
func NewWorkspace(api *APIClient, persister StatePersister, costs config.CreditsConfig, logger *logging.Logger) *Workspace {
	return &Workspace{
		api:       api,
		persister: persister,
		costs:     costs,
		logger:    logger.WithField("component", "workspace"),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		viewState: view.NewView(),
		selection: view.NewSelection(),
		credits:   costs.InitialBalance,
	}
}

// Load fetches the canonical leads and restores persisted client state.
// The lead fetch happens once; everything afterwards works on the
// in-memory snapshot.
func (w *Workspace) Load(ctx context.Context) error {
	leads, err := w.api.GetLeads(ctx)
	if err != nil {
		return err
	}
	w.allLeads = leads
	w.displayed = append([]models.Lead(nil), leads...)

	state, err := w.persister.Load(ctx)
	if err != nil {
		w.logger.WithError(err).Warn("failed to load persisted state, starting fresh")
		return nil
	}

	w.savedLists = state.SavedLists
	if state.SavedFilters != nil {
		w.savedFilters = state.SavedFilters
	}
	if state.Credits != 0 {
		w.credits = state.Credits
	}

	return nil
}

// CurrentPage derives the visible page from the displayed subset.
func (w *Workspace) CurrentPage() view.Result {
	return w.viewState.Apply(w.displayed)
}

// SetSearch updates the search text and returns to the first page.
func (w *Workspace) SetSearch(search string) {
	w.viewState.Search = search
	w.viewState.Page = 1
}

// SetSortOrder updates the name-sort direction.
func (w *Workspace) SetSortOrder(order view.SortOrder) {
	w.viewState.Sort = order
}

// SetPage moves to the given page.
func (w *Workspace) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	w.viewState.Page = page
}

// Toggle flips selection of one lead.
func (w *Workspace) Toggle(leadID int) {
	w.selection = w.selection.Toggle(leadID)
}

// ToggleSelectAll flips selection of the given leads as a group: when all
// of them are already selected they are deselected, otherwise the missing
// ones are added. Leads outside the group are untouched, so select-all on
// one page never drops picks made on another. Callers pass the collection
// the checkbox acts on, typically the current page.
func (w *Workspace) ToggleSelectAll(leads []models.Lead) {
	ids := make([]int, 0, len(leads))
	for _, l := range leads {
		ids = append(ids, l.ID)
	}

	if w.selection.AllSelected(leads) {
		w.selection = w.selection.Remove(ids...)
	} else {
		w.selection = w.selection.Add(ids...)
	}
}

// IsSelected reports selection state of one lead.
func (w *Workspace) IsSelected(leadID int) bool {
	return w.selection.IsSelected(leadID)
}

// SelectedCount returns the number of selected leads.
func (w *Workspace) SelectedCount() int {
	return w.selection.Count()
}

// Credits returns the current credit balance.
func (w *Workspace) Credits() int {
	return w.credits
}

// SavedLists returns the saved lists. The slice is shared; callers must
// not mutate it.
func (w *Workspace) SavedLists() []models.SavedList {
	return w.savedLists
}

// SavedFilters returns the saved filters. The slice is shared; callers
// must not mutate it.
func (w *Workspace) SavedFilters() []models.SavedFilter {
	return w.savedFilters
}

// AllLeads returns the canonical snapshot.
func (w *Workspace) AllLeads() []models.Lead {
	return w.allLeads
}

// DisplayedLeads returns the current working subset.
func (w *Workspace) DisplayedLeads() []models.Lead {
	return w.displayed
}

// UnlockEmail reveals a lead's email for the configured credit cost. The
// flag flip is overlay state on the in-memory copies only; it is never
// written back to the canonical store.
func (w *Workspace) UnlockEmail(ctx context.Context, leadID int) error {
	return w.unlock(ctx, leadID, "unlock email", w.costs.UnlockEmail, func(l *models.Lead) {
		l.EmailUnlocked = true
	})
}

// UnlockPhone reveals a lead's phone for the configured credit cost.
func (w *Workspace) UnlockPhone(ctx context.Context, leadID int) error {
	return w.unlock(ctx, leadID, "unlock phone", w.costs.UnlockPhone, func(l *models.Lead) {
		l.PhoneUnlocked = true
	})
}

func (w *Workspace) unlock(ctx context.Context, leadID int, action string, cost int, apply func(*models.Lead)) error {
	if w.credits < cost {
		return apperrors.NewInsufficientCreditsError(action, cost, w.credits)
	}

	for i := range w.allLeads {
		if w.allLeads[i].ID == leadID {
			apply(&w.allLeads[i])
		}
	}
	for i := range w.displayed {
		if w.displayed[i].ID == leadID {
			apply(&w.displayed[i])
		}
	}

	w.credits -= cost
	w.persistState(ctx)
	return nil
}

// SaveSelectionAsList freezes the selected leads into a new named list.
// The snapshot is a copy: later unlocks or edits to the source leads do
// not propagate into the list. The selection is cleared afterwards.
func (w *Workspace) SaveSelectionAsList(ctx context.Context, name string) (models.SavedList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SavedList{}, fmt.Errorf("list name is required")
	}

	selected := w.selection.Pick(w.allLeads)
	if len(selected) == 0 {
		return models.SavedList{}, fmt.Errorf("no leads selected")
	}

	now := time.Now().UnixMilli()
	list := models.SavedList{
		ID:        strconv.FormatInt(now, 10),
		Name:      name,
		Leads:     selected,
		CreatedAt: now,
	}

	w.savedLists = append(w.savedLists, list)
	w.selection = w.selection.Clear()
	w.persistState(ctx)

	return list, nil
}

// UpdateList edits a saved list in place. The name is always updated; when
// a selection exists the list's leads are re-frozen from it and the
// creation time refreshed, and the selection is cleared. Without a
// selection the frozen leads stay as they are.
func (w *Workspace) UpdateList(ctx context.Context, listID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("list name is required")
	}

	for i := range w.savedLists {
		if w.savedLists[i].ID == listID {
			w.savedLists[i].Name = name
			if selected := w.selection.Pick(w.allLeads); len(selected) > 0 {
				w.savedLists[i].Leads = selected
				w.savedLists[i].CreatedAt = time.Now().UnixMilli()
				w.selection = w.selection.Clear()
			}
			w.persistState(ctx)
			return nil
		}
	}
	return fmt.Errorf("list %s not found", listID)
}

// ActivateList makes a saved list the displayed subset. The context switch
// resets pagination to the first page and clears the selection.
func (w *Workspace) ActivateList(listID string) error {
	for _, list := range w.savedLists {
		if list.ID == listID {
			w.displayed = append([]models.Lead(nil), list.Leads...)
			w.activeListID = listID
			w.activeFilterID = ""
			w.resetViewContext()
			return nil
		}
	}
	return fmt.Errorf("list %s not found", listID)
}

// DeleteList removes a saved list. Deleting the active list empties the
// displayed subset.
func (w *Workspace) DeleteList(ctx context.Context, listID string) error {
	kept := w.savedLists[:0]
	found := false
	for _, list := range w.savedLists {
		if list.ID == listID {
			found = true
			continue
		}
		kept = append(kept, list)
	}
	if !found {
		return fmt.Errorf("list %s not found", listID)
	}
	w.savedLists = kept

	if w.activeListID == listID {
		w.activeListID = ""
		w.displayed = []models.Lead{}
	}

	w.persistState(ctx)
	return nil
}

// SaveFilter records a new saved filter and applies it immediately.
// At least one criterion must be present. An empty name gets a dated
// default.
func (w *Workspace) SaveFilter(ctx context.Context, name string, criteria models.FilterCriteria) (models.SavedFilter, error) {
	if len(criteria.Countries) == 0 && len(criteria.Industries) == 0 && len(criteria.Tags) == 0 {
		return models.SavedFilter{}, fmt.Errorf("at least one filter criterion is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Filter " + time.Now().Format("2006-01-02")
	}

	now := time.Now().UnixMilli()
	filter := models.SavedFilter{
		ID:        strconv.FormatInt(now, 10),
		Name:      name,
		Filters:   criteria,
		CreatedAt: now,
	}
	w.savedFilters = append(w.savedFilters, filter)

	w.displayed = view.ApplyCriteria(w.allLeads, criteria)
	w.activeFilterID = filter.ID
	w.activeListID = ""
	w.resetViewContext()
	w.persistState(ctx)

	return filter, nil
}

// UpdateFilter replaces a saved filter's name and criteria in place and
// re-applies it to the canonical snapshot, making it the active context.
// An empty name gets the same dated default as SaveFilter.
func (w *Workspace) UpdateFilter(ctx context.Context, filterID, name string, criteria models.FilterCriteria) error {
	if len(criteria.Countries) == 0 && len(criteria.Industries) == 0 && len(criteria.Tags) == 0 {
		return fmt.Errorf("at least one filter criterion is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Filter " + time.Now().Format("2006-01-02")
	}

	for i := range w.savedFilters {
		if w.savedFilters[i].ID == filterID {
			w.savedFilters[i].Name = name
			w.savedFilters[i].Filters = criteria

			w.displayed = view.ApplyCriteria(w.allLeads, criteria)
			w.activeFilterID = filterID
			w.activeListID = ""
			w.resetViewContext()
			w.persistState(ctx)
			return nil
		}
	}
	return fmt.Errorf("filter %s not found", filterID)
}

// ActivateFilter re-derives the displayed subset from a saved filter's
// criteria against the full canonical snapshot.
func (w *Workspace) ActivateFilter(filterID string) error {
	for _, filter := range w.savedFilters {
		if filter.ID == filterID {
			w.displayed = view.ApplyCriteria(w.allLeads, filter.Filters)
			w.activeFilterID = filterID
			w.activeListID = ""
			w.resetViewContext()
			return nil
		}
	}
	return fmt.Errorf("filter %s not found", filterID)
}

// DeleteFilter removes a saved filter. Deleting the active filter empties
// the displayed subset.
func (w *Workspace) DeleteFilter(ctx context.Context, filterID string) error {
	kept := w.savedFilters[:0]
	found := false
	for _, filter := range w.savedFilters {
		if filter.ID == filterID {
			found = true
			continue
		}
		kept = append(kept, filter)
	}
	if !found {
		return fmt.Errorf("filter %s not found", filterID)
	}
	w.savedFilters = kept

	if w.activeFilterID == filterID {
		w.activeFilterID = ""
		w.displayed = []models.Lead{}
	}

	w.persistState(ctx)
	return nil
}

// ClearContext returns to the full canonical snapshot.
func (w *Workspace) ClearContext() {
	w.displayed = append([]models.Lead(nil), w.allLeads...)
	w.activeListID = ""
	w.activeFilterID = ""
	w.resetViewContext()
}

// resetViewContext applies the context-switch rules: back to page one,
// selection gone.
func (w *Workspace) resetViewContext() {
	w.viewState.Page = 1
	w.selection = w.selection.Clear()
}

// ExportSelectedCSV serializes the selected leads with locked contact
// fields masked, then clears the selection.
func (w *Workspace) ExportSelectedCSV() (string, error) {
	selected := w.selection.Pick(w.allLeads)
	if len(selected) == 0 {
		return "", fmt.Errorf("no leads selected for export")
	}

	content := csvcodec.SerializeForExport(selected)
	w.selection = w.selection.Clear()
	return content, nil
}

// ImportCSV parses user-supplied CSV content with import semantics, sends
// the decoded leads to the server, and reloads the canonical snapshot so
// the workspace sees the server-assigned ids.
func (w *Workspace) ImportCSV(ctx context.Context, content string) (int, error) {
	leads, err := csvcodec.ParseImport(content)
	if err != nil {
		return 0, apperrors.NewInvalidPayloadError(err.Error())
	}
	if len(leads) == 0 {
		return 0, apperrors.NewInvalidPayloadError("no valid leads found in the CSV file")
	}

	count, err := w.api.AddLeads(ctx, leads)
	if err != nil {
		return 0, err
	}

	refreshed, err := w.api.GetLeads(ctx)
	if err != nil {
		return count, err
	}
	w.allLeads = refreshed
	w.ClearContext()

	return count, nil
}

// GenerateLeads fabricates n pseudo-random leads for the configured credit
// cost. Generated leads exist only in the workspace; they are not sent to
// the canonical store.
func (w *Workspace) GenerateLeads(ctx context.Context, n int) ([]models.Lead, error) {
	cost := w.costs.GenerateLeads
	if w.credits < cost {
		return nil, apperrors.NewInsufficientCreditsError("generate leads", cost, w.credits)
	}

	maxID := 0
	for _, l := range w.allLeads {
		if l.ID > maxID {
			maxID = l.ID
		}
	}

	generated := make([]models.Lead, 0, n)
	for i := 0; i < n; i++ {
		maxID++
		generated = append(generated, models.Lead{
			ID:       maxID,
			Name:     pick(w.rng, generatedFirstNames) + " " + pick(w.rng, generatedLastNames),
			Industry: pick(w.rng, generatedIndustries),
			Location: pick(w.rng, generatedCountries),
			Email:    fmt.Sprintf("lead%d@example.com", w.rng.Intn(1_000_000)),
			Phone:    fmt.Sprintf("(%d) 555-%04d", 100+w.rng.Intn(900), w.rng.Intn(10000)),
			Website:  fmt.Sprintf("example%d.com", w.rng.Intn(1_000_000)),
		})
	}

	w.allLeads = append(w.allLeads, generated...)
	w.displayed = append(w.displayed, generated...)
	w.credits -= cost
	w.persistState(ctx)

	return generated, nil
}

// persistState pushes the client state through the persistence port. A
// failure is logged and surfaced nowhere: the port's fallback adapter has
// already kept the data locally.
func (w *Workspace) persistState(ctx context.Context) {
	state := &models.AppState{
		SavedLists:   w.savedLists,
		SavedFilters: w.savedFilters,
		Credits:      w.credits,
	}
	if err := w.persister.Save(ctx, state); err != nil {
		w.logger.WithError(err).Warn("failed to persist client state")
	}
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

var (
	generatedFirstNames = []string{"James", "Maria", "Wei", "Fatima", "Lucas", "Aisha", "Noah", "Priya", "Omar", "Elena"}
	generatedLastNames  = []string{"Smith", "Garcia", "Chen", "Khan", "Silva", "Okafor", "Müller", "Patel", "Hassan", "Novak"}
	generatedIndustries = []string{"Tech", "Finance", "Retail", "Manufacturing", "Healthcare", "Education"}
	generatedCountries  = []string{"USA", "Germany", "India", "Brazil", "Nigeria", "Japan"}
)
