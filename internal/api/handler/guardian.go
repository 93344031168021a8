package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dadportal/dinojump-go/internal/api/apierr"
	apimiddleware "github.com/dadportal/dinojump-go/internal/api/middleware"
	"github.com/dadportal/dinojump-go/internal/api/request"
	"github.com/dadportal/dinojump-go/internal/api/response"
	"github.com/dadportal/dinojump-go/internal/services/guardian"
)

// GuardianHandler handles parent gate endpoints
type GuardianHandler struct {
	gate *guardian.Gate
}

// NewGuardianHandler creates a new guardian handler
func NewGuardianHandler(gate *guardian.Gate) *GuardianHandler {
	return &GuardianHandler{
		gate: gate,
	}
}

// Verify handles POST /api/v1/guardian/verify
func (h *GuardianHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.gate.Verify(r.Context(), req.PIN)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuardianVerifyFromSession(session))
}

// Lockout handles GET /api/v1/guardian/lockout
func (h *GuardianHandler) Lockout(w http.ResponseWriter, r *http.Request) {
	locked, err := h.gate.IsLockedOut(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	status := response.LockoutStatus{LockedOut: locked}
	if locked {
		remaining, err := h.gate.Remaining(r.Context())
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		status.RetryAfterSeconds = int(remaining.Seconds())
	}

	response.JSON(w, http.StatusOK, status)
}

// SetPIN handles PUT /api/v1/guardian/pin
// (guardian session required)
func (h *GuardianHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	var req request.SetPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	session := apimiddleware.MustGetSession(r.Context())
	if err := h.gate.ChangePIN(r.Context(), session.Token, req.NewPIN, req.ConfirmPIN); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Close handles POST /api/v1/guardian/close
// (guardian session required)
func (h *GuardianHandler) Close(w http.ResponseWriter, r *http.Request) {
	session := apimiddleware.MustGetSession(r.Context())
	h.gate.Close(session.Token)
	response.NoContent(w)
}
