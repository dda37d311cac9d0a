package client

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/leadstack/internal/logging"
	"github.com/leadstack/internal/models"
)

// StatePersister is the explicit persistence port for client-local state.
// It replaces the ambient browser-storage access of the original design
// with an injected capability, so the workspace never touches a concrete
// storage mechanism directly.
type StatePersister interface {
	Load(ctx context.Context) (*models.AppState, error)
	Save(ctx context.Context, state *models.AppState) error
}

// LocalFileStore persists the whole AppState as a single JSON blob at a
// fixed path. It is the local-fallback analogue of the original
// "leads-app-state" storage entry.
type LocalFileStore struct {
	path string
}

// NewLocalFileStore creates a local state store at path.
func NewLocalFileStore(path string) *LocalFileStore {
	return &LocalFileStore{path: path}
}

// Load reads the state blob. A missing or undecodable file yields a fresh
// zero state, never an error.
func (s *LocalFileStore) Load(ctx context.Context) (*models.AppState, error) {
	_ = ctx

	content, err := os.ReadFile(s.path)
	if err != nil {
		return &models.AppState{}, nil
	}

	var state models.AppState
	if err := json.Unmarshal(content, &state); err != nil {
		return &models.AppState{}, nil
	}
	return &state, nil
}

// Save overwrites the state blob.
func (s *LocalFileStore) Save(ctx context.Context, state *models.AppState) error {
	_ = ctx

	content, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, content, 0o644)
}

// FallbackPersister composes the remote list store with a local state
// store. Saved lists are authoritative on the server; saved filters and
// the credit balance only ever live in the local blob. When the network
// path fails, lists fall back to the local blob too, at the cost of
// consistency between the two paths.
type FallbackPersister struct {
	remote *APIClient
	local  StatePersister
	logger *logging.Logger
}

// NewFallbackPersister creates the remote-first persister.
func NewFallbackPersister(remote *APIClient, local StatePersister, logger *logging.Logger) *FallbackPersister {
	return &FallbackPersister{
		remote: remote,
		local:  local,
		logger: logger.WithField("component", "persistence"),
	}
}

// Load merges the local blob with the server's lists. Server lists win
// when reachable; otherwise the locally cached lists are kept.
func (p *FallbackPersister) Load(ctx context.Context) (*models.AppState, error) {
	state, err := p.local.Load(ctx)
	if err != nil {
		state = &models.AppState{}
	}

	lists, err := p.remote.GetLists(ctx)
	if err != nil {
		p.logger.WithError(err).Warn("failed to load lists from server, using local fallback")
		return state, nil
	}

	state.SavedLists = lists
	return state, nil
}

// Save writes the local blob, then pushes the lists to the server. A
// remote failure is reported to the caller but the edit is already safe in
// the local blob.
func (p *FallbackPersister) Save(ctx context.Context, state *models.AppState) error {
	if err := p.local.Save(ctx, state); err != nil {
		p.logger.WithError(err).Warn("failed to save local state blob")
	}

	if err := p.remote.SaveLists(ctx, state.SavedLists); err != nil {
		p.logger.WithError(err).Warn("failed to save lists to server, local fallback holds the data")
		return err
	}
	return nil
}
