package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pcichat/accounts-api/internal/application/registration"
)

// RegisterHandler exposes the two-phase registration flow on a single
// endpoint: a body with an otp field is a verification attempt, one without
// is an initial submission.
type RegisterHandler struct {
	svc registration.Service
}

func NewRegisterHandler(svc registration.Service) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.OTP != "" {
		outcome := h.svc.SubmitOTP(r.Context(), req.Email, req.OTP)
		writeOutcome(w, outcome, http.StatusCreated)
		return
	}

	outcome := h.svc.SubmitRegistration(r.Context(), req.Email, req.Password)
	writeOutcome(w, outcome, http.StatusOK)
}
