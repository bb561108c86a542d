package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/venture-compass/internal/engine"
	"github.com/jonathan/venture-compass/internal/types"
)

// RecommendationsResponse is the payload for POST /recommendations
type RecommendationsResponse struct {
	CompanyID       string                 `json:"company_id"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Count           int                    `json:"count"`
}

// RelationshipsResponse is the payload for GET /steps/{id}/relationships
type RelationshipsResponse struct {
	StepID        string                   `json:"step_id"`
	Depth         int                      `json:"depth"`
	Relationships []types.StepRelationship `json:"relationships"`
	Count         int                      `json:"count"`
}

// PathResponse is the payload for POST /path
type PathResponse struct {
	CompanyID string                 `json:"company_id"`
	Path      []types.Recommendation `json:"path"`
	Count     int                    `json:"count"`
}

// handleRecommendations returns ranked step recommendations for a company
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "company_id", Message: "must be a valid UUID"})
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = engine.DefaultLimit
	}

	reqCtx := &types.RecommendationContext{
		FocusAreas:         req.FocusAreas,
		TimeConstraintDays: req.TimeConstraintDays,
	}
	for _, raw := range req.SelectedPhases {
		phaseID, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, &ErrValidation{Field: "selected_phases", Message: "must be valid UUIDs"})
			return
		}
		reqCtx.SelectedPhases = append(reqCtx.SelectedPhases, phaseID)
	}

	recs := s.engine.GetRecommendations(r.Context(), companyID, limit, reqCtx)
	s.jsonResponse(w, http.StatusOK, RecommendationsResponse{
		CompanyID:       companyID.String(),
		Recommendations: recs,
		Count:           len(recs),
	})
}

// handleStepRelationships returns the relationship graph around a step
func (s *Server) handleStepRelationships(w http.ResponseWriter, r *http.Request) {
	stepID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "id", Message: "must be a valid UUID"})
		return
	}

	depth := engine.DefaultDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		depth, err = strconv.Atoi(raw)
		if err != nil || depth < 1 {
			s.errorResponse(w, &ErrValidation{Field: "depth", Message: "must be an integer >= 1"})
			return
		}
	}

	edges := s.engine.GetStepRelationships(r.Context(), stepID, depth)
	s.jsonResponse(w, http.StatusOK, RelationshipsResponse{
		StepID:        stepID.String(),
		Depth:         depth,
		Relationships: edges,
		Count:         len(edges),
	})
}

// handleOptimizedPath returns a time-budgeted, dependency-respecting step sequence
func (s *Server) handleOptimizedPath(w http.ResponseWriter, r *http.Request) {
	var req types.OptimizedPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "company_id", Message: "must be a valid UUID"})
		return
	}

	maxSteps := req.MaxSteps
	if maxSteps == 0 {
		maxSteps = engine.DefaultMaxSteps
	}

	path := s.engine.GetOptimizedPath(r.Context(), companyID, engine.PathOptions{
		TimeConstraintDays: req.TimeConstraintDays,
		MaxSteps:           maxSteps,
	})
	s.jsonResponse(w, http.StatusOK, PathResponse{
		CompanyID: companyID.String(),
		Path:      path,
		Count:     len(path),
	})
}

// handleAssistantSuggestions returns LLM-generated guidance for a step
func (s *Server) handleAssistantSuggestions(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		s.errorResponse(w, &ErrAssistantUnavailable{})
		return
	}

	var req types.AssistantSuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	stepID, err := uuid.Parse(req.StepID)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "step_id", Message: "must be a valid UUID"})
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "company_id", Message: "must be a valid UUID"})
		return
	}

	guidance, err := s.assistant.StepGuidance(r.Context(), stepID, companyID)
	if err != nil {
		log.Printf("Assistant guidance failed: %v", err)
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, guidance)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response with the given status code
func (s *Server) jsonResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// errorResponse writes a JSON error response with the status mapped from the error type
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	s.jsonResponse(w, HTTPStatus(err), map[string]string{"error": err.Error()})
}
