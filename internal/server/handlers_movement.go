package server

import (
	"net/http"
	"time"

	"github.com/beehive/dashboard/internal/models"
)

// movementRequest is the JSON payload for movement create/update.
type movementRequest struct {
	AccountID   string    `json:"accountId"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

func (req *movementRequest) toModel(id string) *models.Movement {
	return &models.Movement{
		ID:          id,
		AccountID:   req.AccountID,
		Category:    models.MovementCategory(req.Category),
		Type:        models.MovementType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		Status:      models.MovementStatus(req.Status),
	}
}

// routeMovementCollection handles /api/movements.
func (s *Server) routeMovementCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleMovementList(w, r)
	case http.MethodPost:
		s.handleMovementCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleMovementList handles GET /api/movements?accountId=&type=&status=&from=&to=.
func (s *Server) handleMovementList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	accountID := q.Get("accountId")
	if accountID == "" {
		WriteError(w, http.StatusBadRequest, "accountId query parameter is required")
		return
	}

	filter := models.MovementFilter{
		Type:   models.MovementType(q.Get("type")),
		Status: models.MovementStatus(q.Get("status")),
	}
	var ok bool
	if filter.From, ok = parseDateParam(w, q.Get("from"), "from"); !ok {
		return
	}
	if filter.To, ok = parseDateParam(w, q.Get("to"), "to"); !ok {
		return
	}

	movements, err := s.app.MovementService.FilterMovements(r.Context(), accountID, filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, movements)
}

// parseDateParam parses an optional date query parameter, accepting
// RFC 3339 or plain 2006-01-02 dates. Writes a 400 and returns false
// on a malformed value.
func parseDateParam(w http.ResponseWriter, value, name string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, true
		}
	}
	WriteError(w, http.StatusBadRequest, "Invalid "+name+" date: "+value)
	return nil, false
}

func (s *Server) handleMovementCreate(w http.ResponseWriter, r *http.Request) {
	var req movementRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	movement, err := s.app.MovementService.CreateMovement(r.Context(), req.toModel(""))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, movement)
}

// routeMovement handles /api/movements/{id}.
func (s *Server) routeMovement(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/movements/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Movement id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		movement, err := s.app.MovementService.GetMovement(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, movement)

	case http.MethodPut:
		var req movementRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		movement, err := s.app.MovementService.UpdateMovement(r.Context(), req.toModel(id))
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, movement)

	case http.MethodDelete:
		if err := s.app.MovementService.DeleteMovement(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
