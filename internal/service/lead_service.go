// Package service wires the stores together behind the operations the API
// layer exposes.
package service

import (
	"context"

	"github.com/leadstack/internal/logging"
	"github.com/leadstack/internal/models"
	"github.com/leadstack/internal/storage"
)

// LeadService fronts a LeadStore with an optional Redis snapshot cache.
// Cache failures are logged and degrade to the store; they never surface to
// the caller.
type LeadService struct {
	store  storage.LeadStore
	cache  *storage.LeadCache
	logger *logging.Logger
}

// NewLeadService creates a lead service. cache may be nil, in which case
// every read goes to the store.
func NewLeadService(store storage.LeadStore, cache *storage.LeadCache, logger *logging.Logger) *LeadService {
	return &LeadService{
		store:  store,
		cache:  cache,
		logger: logger.WithField("service", "leads"),
	}
}

// GetAll returns the full lead snapshot, cache-aside.
func (s *LeadService) GetAll(ctx context.Context) ([]models.Lead, error) {
	if s.cache != nil {
		leads, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("lead cache read failed, falling back to store")
		} else if ok {
			return leads, nil
		}
	}

	leads, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, leads); err != nil {
			s.logger.WithError(err).Warn("lead cache write failed")
		}
	}

	return leads, nil
}

// Append appends leads to the store and invalidates the snapshot cache.
func (s *LeadService) Append(ctx context.Context, leads []models.Lead) (int, error) {
	count, err := s.store.Append(ctx, leads)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.WithError(err).Warn("lead cache invalidation failed")
		}
	}

	return count, nil
}
