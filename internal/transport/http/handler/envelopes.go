package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pcichat/accounts-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OutcomeEnvelope wraps registration-flow responses. Status carries the
// machine-readable outcome; exactly one of Message/Error carries the
// human-readable text.
type OutcomeEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps login responses.
type AuthEnvelope struct {
	Bearer string       `json:"Bearer,omitempty"`
	User   *domain.User `json:"user,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeOutcome renders an outcome with its 1:1 HTTP status and message.
func writeOutcome(w http.ResponseWriter, o domain.Outcome, successStatus int) {
	status, ok := outcomeStatus(o, successStatus)
	env := OutcomeEnvelope{Status: string(o)}
	if ok {
		env.Message = o.Message()
	} else {
		env.Error = o.Message()
	}
	writeJSON(w, status, env)
}

func outcomeStatus(o domain.Outcome, successStatus int) (status int, success bool) {
	switch o {
	case domain.OutcomeOTPSent:
		return http.StatusOK, true
	case domain.OutcomeSuccess:
		return successStatus, true
	case domain.OutcomeInvalidData, domain.OutcomeInvalidEmailDomain:
		return http.StatusUnprocessableEntity, false
	case domain.OutcomeUserExists:
		return http.StatusConflict, false
	case domain.OutcomeInvalidOTP:
		return http.StatusUnauthorized, false
	case domain.OutcomeNotifyFailed:
		return http.StatusBadGateway, false
	default:
		return http.StatusInternalServerError, false
	}
}
