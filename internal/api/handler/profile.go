package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dadportal/dinojump-go/internal/api/apierr"
	"github.com/dadportal/dinojump-go/internal/api/request"
	"github.com/dadportal/dinojump-go/internal/api/response"
	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/services/ledger"
)

// ProfileHandler handles player profile and run endpoints
type ProfileHandler struct {
	ledger *ledger.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(ledgerService *ledger.Service) *ProfileHandler {
	return &ProfileHandler{
		ledger: ledgerService,
	}
}

// playerID extracts the player path variable
func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["player"])
}

// Get handles GET /api/v1/players/{player}/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ledger.LoadProfile(r.Context(), playerID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileFromModel(profile))
}

// BeginRun handles POST /api/v1/players/{player}/runs
func (h *ProfileHandler) BeginRun(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.ledger.BeginRun(r.Context(), playerID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.BeginRunFromTicket(ticket))
}

// RecordScore handles POST /api/v1/players/{player}/scores
func (h *ProfileHandler) RecordScore(w http.ResponseWriter, r *http.Request) {
	var req request.RecordScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Score < 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("score must be non-negative"))
		return
	}

	profile, err := h.ledger.RecordScore(r.Context(), playerID(r), req.Score)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileFromModel(profile))
}

// ResetAttempts handles POST /api/v1/players/{player}/attempts/reset
// (guardian session required)
func (h *ProfileHandler) ResetAttempts(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ledger.ResetAttempts(r.Context(), playerID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileFromModel(profile))
}

// UpdateSettings handles PATCH /api/v1/players/{player}/settings
// (guardian session required)
func (h *ProfileHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.DailyLimit == nil && req.Difficulty == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("nothing to update"))
		return
	}

	update := ledger.SettingsUpdate{DailyLimit: req.DailyLimit}
	if req.Difficulty != nil {
		d := model.Difficulty(*req.Difficulty)
		update.Difficulty = &d
	}

	profile, err := h.ledger.UpdateSettings(r.Context(), playerID(r), update)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileFromModel(profile))
}
