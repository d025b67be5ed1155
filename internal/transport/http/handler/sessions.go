package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pcichat/accounts-api/internal/application/session"
	"github.com/pcichat/accounts-api/internal/domain"
	"github.com/pcichat/accounts-api/internal/transport/http/middleware"
)

// SessionHandler handles sign-in and current-session endpoints.
type SessionHandler struct {
	svc session.Service
}

func NewSessionHandler(svc session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req session.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, outcome := h.svc.Login(r.Context(), req)
	switch outcome {
	case domain.OutcomeSuccess:
		writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: result.Bearer, User: result.User})
	case domain.OutcomeFailed:
		// Rejected credentials, not a server fault.
		writeJSON(w, http.StatusUnauthorized, OutcomeEnvelope{
			Status: string(outcome), Error: "invalid credentials",
		})
	default:
		writeOutcome(w, outcome, http.StatusOK)
	}
}

func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.svc.GetCurrent(r.Context(), claims.Email)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
