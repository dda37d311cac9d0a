package api

import (
	"fmt"
	"net/http"

	apperrors "github.com/leadstack/internal/errors"
	"github.com/leadstack/internal/models"
)

// saveListsRequest is the POST /api/lists body. Lists is a pointer so a
// missing or non-array field is distinguishable from a valid empty array.
type saveListsRequest struct {
	Lists *[]models.SavedList `json:"lists"`
}

// handleGetLists returns every saved list.
func (s *Server) handleGetLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.lists.GetAll(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to read lists")
		respondJSON(w, apperrors.GetHTTPStatusCode(err), map[string]interface{}{
			"success": false,
			"lists":   []models.SavedList{},
		})
		return
	}

	if lists == nil {
		lists = []models.SavedList{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"lists":   lists,
		"success": true,
	})
}

// handleSaveLists replaces the stored lists wholesale. An empty array is a
// valid replacement and clears the store.
func (s *Server) handleSaveLists(w http.ResponseWriter, r *http.Request) {
	var req saveListsRequest
	if err := parseJSONBody(r, &req); err != nil || req.Lists == nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid lists data",
		})
		return
	}

	if err := s.lists.ReplaceAll(r.Context(), *req.Lists); err != nil {
		s.logger.WithError(err).Error("failed to save lists")
		respondJSON(w, apperrors.GetHTTPStatusCode(err), map[string]interface{}{
			"success": false,
			"message": "Failed to save lists",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Successfully saved %d list(s)", len(*req.Lists)),
	})
}
