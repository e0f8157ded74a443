package server

import (
	"net/http"
	"strings"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/models"
)

// accountRequest is the JSON payload for account create/update.
type accountRequest struct {
	Name     string  `json:"name"`
	IBAN     string  `json:"iban"`
	Balance  float64 `json:"balance"`
	Type     string  `json:"type"`
	Priority int     `json:"priority"`
}

// routeAccountCollection handles /api/accounts.
func (s *Server) routeAccountCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleAccountList(w, r)
	case http.MethodPost:
		s.handleAccountCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeAccount handles /api/accounts/{id} and its subresources.
func (s *Server) routeAccount(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/accounts/")
	switch {
	case strings.HasSuffix(rest, "/movements"):
		s.handleAccountMovements(w, r, strings.TrimSuffix(rest, "/movements"))
	case strings.HasSuffix(rest, "/planned"):
		s.handleAccountPlanned(w, r, strings.TrimSuffix(rest, "/planned"))
	default:
		s.handleAccountByID(w, r, rest)
	}
}

func (s *Server) handleAccountList(w http.ResponseWriter, r *http.Request) {
	userID := common.ResolveUserID(r.Context())
	accounts, err := s.app.AccountService.ListAccounts(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleAccountCreate(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	account, err := s.app.AccountService.CreateAccount(r.Context(), &models.Account{
		UserID:   common.ResolveUserID(r.Context()),
		Name:     req.Name,
		IBAN:     req.IBAN,
		Balance:  req.Balance,
		Type:     models.AccountType(req.Type),
		Priority: req.Priority,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, account)
}

func (s *Server) handleAccountByID(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Account id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		account, err := s.app.AccountService.GetAccount(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, account)

	case http.MethodPut:
		var req accountRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		account, err := s.app.AccountService.UpdateAccount(r.Context(), &models.Account{
			ID:       id,
			Name:     req.Name,
			IBAN:     req.IBAN,
			Type:     models.AccountType(req.Type),
			Priority: req.Priority,
		})
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, account)

	case http.MethodDelete:
		if err := s.app.AccountService.DeleteAccount(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleAccountMovements(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	movements, err := s.app.MovementService.ListMovements(r.Context(), accountID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, movements)
}

func (s *Server) handleAccountPlanned(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	planned, err := s.app.PlannedService.ListPlanned(r.Context(), accountID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, planned)
}
