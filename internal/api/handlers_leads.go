package api

import (
	"fmt"
	"net/http"

	apperrors "github.com/leadstack/internal/errors"
	"github.com/leadstack/internal/models"
)

// addLeadsRequest is the POST /api/leads body.
type addLeadsRequest struct {
	Leads []models.Lead `json:"leads"`
}

// handleGetLeads returns the full canonical lead snapshot. A storage
// failure still answers with an empty leads array so the client can render
// an empty table instead of breaking.
func (s *Server) handleGetLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.leads.GetAll(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to read leads")
		respondJSON(w, apperrors.GetHTTPStatusCode(err), map[string]interface{}{
			"success": false,
			"leads":   []models.Lead{},
			"error":   "Failed to read leads data",
		})
		return
	}

	if leads == nil {
		leads = []models.Lead{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"leads":   leads,
		"success": true,
	})
}

// handleAddLeads appends the posted leads to the canonical store. Incoming
// ids are ignored; the store assigns the next free ones.
func (s *Server) handleAddLeads(w http.ResponseWriter, r *http.Request) {
	var req addLeadsRequest
	if err := parseJSONBody(r, &req); err != nil || len(req.Leads) == 0 {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "No leads provided",
		})
		return
	}

	count, err := s.leads.Append(r.Context(), req.Leads)
	if err != nil {
		s.logger.WithError(err).Error("failed to append leads")
		respondJSON(w, apperrors.GetHTTPStatusCode(err), map[string]interface{}{
			"success": false,
			"message": "Failed to save leads",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Successfully added %d leads to CSV", count),
		"count":   count,
	})
}
