package storage

import (
	"context"

	apperrors "github.com/leadstack/internal/errors"
	"github.com/leadstack/internal/logging"
	"github.com/leadstack/internal/models"
)

// PostgresLeadStore implements LeadStore against a leads table. It mirrors
// the flat-file semantics: ids continue from the current max, unlock flags
// are always persisted false, and there is no update or delete.
//
// Unlike the file store, id assignment happens inside a transaction, so
// concurrent appends cannot hand out the same id. Beyond that it offers no
// extra guarantees over the file backend.
type PostgresLeadStore struct {
	db     *PostgresDB
	logger *logging.Logger
}

// NewPostgresLeadStore creates a lead store backed by Postgres.
func NewPostgresLeadStore(db *PostgresDB, logger *logging.Logger) *PostgresLeadStore {
	return &PostgresLeadStore{
		db:     db,
		logger: logger.WithField("store", "leads").WithField("backend", "postgres"),
	}
}

// GetAll returns every lead ordered by id.
func (s *PostgresLeadStore) GetAll(ctx context.Context) ([]models.Lead, error) {
	rows, err := s.db.Pool().Query(ctx, `
		SELECT id, name, industry, location, email, phone, website, is_imported
		FROM leads
		ORDER BY id`)
	if err != nil {
		return nil, apperrors.NewReadError("leads table", err)
	}
	defer rows.Close()

	leads := []models.Lead{}
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Industry, &l.Location, &l.Email, &l.Phone, &l.Website, &l.IsImported); err != nil {
			return nil, apperrors.NewReadError("leads table", err)
		}
		// Unlock flags are overlay state and are never persisted.
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewReadError("leads table", err)
	}

	return leads, nil
}

// Append inserts the leads with fresh sequential ids in input order.
func (s *PostgresLeadStore) Append(ctx context.Context, newLeads []models.Lead) (int, error) {
	tx, err := s.db.Pool().Begin(ctx)
	if err != nil {
		return 0, apperrors.NewWriteError("leads table", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var nextID int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM leads`).Scan(&nextID); err != nil {
		return 0, apperrors.NewReadError("leads table", err)
	}

	count := 0
	for _, lead := range newLeads {
		_, err := tx.Exec(ctx, `
			INSERT INTO leads (id, name, industry, location, email, phone, website, is_imported)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			nextID, lead.Name, lead.Industry, lead.Location, lead.Email, lead.Phone, lead.Website, lead.IsImported)
		if err != nil {
			return 0, apperrors.NewWriteError("leads table", err)
		}
		nextID++
		count++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, apperrors.NewWriteError("leads table", err)
	}

	s.logger.WithField("appended", count).Info("appended leads to store")
	return count, nil
}
