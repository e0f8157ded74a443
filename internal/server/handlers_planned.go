package server

import (
	"net/http"
	"time"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/models"
)

// plannedRequest is the JSON payload for planned create/update.
type plannedRequest struct {
	AccountID     string     `json:"accountId"`
	Category      string     `json:"category"`
	Type          string     `json:"type"`
	Amount        float64    `json:"amount"`
	Description   string     `json:"description"`
	Recurrence    string     `json:"recurrence"`
	Schedule      string     `json:"schedule"`
	NextExecution time.Time  `json:"nextExecution"`
	EndDate       *time.Time `json:"endDate"`
	Status        string     `json:"status"`
}

func (req *plannedRequest) toModel(id string) *models.Planned {
	return &models.Planned{
		ID:            id,
		AccountID:     req.AccountID,
		Category:      models.MovementCategory(req.Category),
		Type:          models.MovementType(req.Type),
		Amount:        req.Amount,
		Description:   req.Description,
		Recurrence:    models.MovementRecurrence(req.Recurrence),
		Schedule:      req.Schedule,
		NextExecution: req.NextExecution,
		EndDate:       req.EndDate,
		Status:        models.MovementStatus(req.Status),
	}
}

// routePlannedCollection handles /api/planned.
func (s *Server) routePlannedCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		userID := common.ResolveUserID(r.Context())
		planned, err := s.app.PlannedService.ListPlannedForUser(r.Context(), userID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, planned)

	case http.MethodPost:
		var req plannedRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		planned, err := s.app.PlannedService.CreatePlanned(r.Context(), req.toModel(""))
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, planned)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routePlanned handles /api/planned/{id}.
func (s *Server) routePlanned(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/planned/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Planned id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		planned, err := s.app.PlannedService.GetPlanned(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, planned)

	case http.MethodPut:
		var req plannedRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		planned, err := s.app.PlannedService.UpdatePlanned(r.Context(), req.toModel(id))
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, planned)

	case http.MethodDelete:
		if err := s.app.PlannedService.DeletePlanned(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
