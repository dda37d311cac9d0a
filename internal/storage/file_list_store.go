package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/leadstack/internal/errors"
	"github.com/leadstack/internal/logging"
	"github.com/leadstack/internal/models"
)

// listsFile is the on-disk shape of the lists store: the lists plus a
// last-updated stamp written on every replace.
type listsFile struct {
	Lists       []models.SavedList `json:"lists"`
	LastUpdated string             `json:"lastUpdated"`
}

// FileListStore is the JSON file-backed saved-list store.
type FileListStore struct {
	path   string
	logger *logging.Logger
}

// NewFileListStore creates a list store backed by the JSON file at path.
func NewFileListStore(path string, logger *logging.Logger) *FileListStore {
	return &FileListStore{
		path:   path,
		logger: logger.WithField("store", "lists").WithField("path", path),
	}
}

// GetAll reads and decodes the backing file. Absence and decode failure
// both degrade to an empty set; the store never reports a hard failure for
// "no data yet".
func (s *FileListStore) GetAll(ctx context.Context) ([]models.SavedList, error) {
	_ = ctx

	content, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("could not read lists file, starting with empty lists")
		}
		return []models.SavedList{}, nil
	}

	var data listsFile
	if err := json.Unmarshal(content, &data); err != nil {
		s.logger.WithError(err).Warn("could not decode lists file, starting with empty lists")
		return []models.SavedList{}, nil
	}

	if data.Lists == nil {
		return []models.SavedList{}, nil
	}
	return data.Lists, nil
}

// ReplaceAll overwrites the backing file wholesale. No optimistic
// concurrency token; the last writer wins.
func (s *FileListStore) ReplaceAll(ctx context.Context, lists []models.SavedList) error {
	_ = ctx

	if lists == nil {
		return apperrors.NewInvalidPayloadError("Invalid lists data")
	}

	data := listsFile{
		Lists:       lists,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}

	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return apperrors.NewWriteError("lists file", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperrors.NewWriteError("lists file", err)
	}
	if err := os.WriteFile(s.path, content, 0o644); err != nil {
		return apperrors.NewWriteError("lists file", err)
	}

	s.logger.WithField("count", len(lists)).Info("saved lists to store")
	return nil
}
