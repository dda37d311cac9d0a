// Package storage provides the file-backed canonical stores and their
// optional database and cache backends.
package storage

import (
	"context"

	"github.com/leadstack/internal/models"
)

// LeadStore is the canonical collection of leads. There is no update or
// delete: unlocking is client-local overlay state and is never persisted.
type LeadStore interface {
	// GetAll returns every lead in the store. A missing backing file or a
	// malformed header is "no leads yet", not an error.
	GetAll(ctx context.Context) ([]models.Lead, error)

	// Append assigns fresh sequential ids (continuing from the current
	// max) to the incoming leads in input order, clears their unlock
	// flags, persists the combined set, and returns the number of leads
	// appended. Incoming ids are ignored.
	Append(ctx context.Context, leads []models.Lead) (int, error)
}

// ListStore is the collection of saved lists. Every save is a wholesale
// snapshot replace; there is no per-list operation and the last writer
// wins.
type ListStore interface {
	// GetAll returns every saved list. A missing or undecodable backing
	// file is "no lists yet", not an error.
	GetAll(ctx context.Context) ([]models.SavedList, error)

	// ReplaceAll overwrites the stored lists with the given set. A nil
	// slice (a payload that was not an array) is rejected with
	// INVALID_PAYLOAD and performs no write; an empty slice is a valid
	// "delete everything" replace.
	ReplaceAll(ctx context.Context, lists []models.SavedList) error
}
