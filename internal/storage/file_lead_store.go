package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/leadstack/internal/csvcodec"
	apperrors "github.com/leadstack/internal/errors"
	"github.com/leadstack/internal/logging"
	"github.com/leadstack/internal/models"
)

// FileLeadStore is the CSV file-backed lead store. It performs one
// read-then-write per append with no locking: concurrent appends can
// interleave their read phases and lose rows. The single-writer deployment
// this serves accepts that.
type FileLeadStore struct {
	path   string
	logger *logging.Logger
}

// NewFileLeadStore creates a lead store backed by the CSV file at path.
func NewFileLeadStore(path string, logger *logging.Logger) *FileLeadStore {
	return &FileLeadStore{
		path:   path,
		logger: logger.WithField("store", "leads").WithField("path", path),
	}
}

// GetAll reads and decodes the backing CSV file.
func (s *FileLeadStore) GetAll(ctx context.Context) ([]models.Lead, error) {
	_ = ctx

	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Lead{}, nil
		}
		return nil, apperrors.NewReadError("leads file", err)
	}

	leads, err := csvcodec.Parse(string(content))
	if err != nil {
		// Malformed input degrades to an empty set rather than failing
		// the caller.
		s.logger.WithError(err).Warn("leads file could not be parsed, treating as empty")
		return []models.Lead{}, nil
	}

	return leads, nil
}

// Append implements the read-modify-write append described on LeadStore.
// The whole file is rewritten; a failure partway through the write can
// corrupt it, which is an accepted limitation of the flat-file store.
func (s *FileLeadStore) Append(ctx context.Context, newLeads []models.Lead) (int, error) {
	existing, err := s.readForAppend()
	if err != nil {
		return 0, err
	}

	nextID := maxLeadID(existing) + 1
	appended := make([]models.Lead, 0, len(newLeads))
	for _, lead := range newLeads {
		lead.ID = nextID
		nextID++
		lead.EmailUnlocked = false
		lead.PhoneUnlocked = false
		appended = append(appended, lead)
	}

	all := append(existing, appended...)
	content := csvcodec.Serialize(all)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return 0, apperrors.NewWriteError("leads file", err)
	}
	if err := os.WriteFile(s.path, []byte(content), 0o644); err != nil {
		return 0, apperrors.NewWriteError("leads file", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"appended": len(appended),
		"total":    len(all),
	}).Info("appended leads to store")

	return len(appended), nil
}

// readForAppend loads the current set, treating a missing file as an empty
// starting set. Any other read failure aborts the append so the original
// file is left untouched.
func (s *FileLeadStore) readForAppend() ([]models.Lead, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("leads file does not exist yet, starting fresh")
			return nil, nil
		}
		return nil, apperrors.NewReadError("leads file", err)
	}

	leads, err := csvcodec.Parse(string(content))
	if err != nil {
		if errors.Is(err, csvcodec.ErrHeaderOrDataMissing) || errors.Is(err, csvcodec.ErrHeaderMismatch) {
			s.logger.WithError(err).Warn("existing leads file unusable, starting fresh")
			return nil, nil
		}
		return nil, apperrors.NewReadError("leads file", err)
	}

	return leads, nil
}

func maxLeadID(leads []models.Lead) int {
	max := 0
	for _, l := range leads {
		if l.ID > max {
			max = l.ID
		}
	}
	return max
}
