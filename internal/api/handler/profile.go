package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nutriguide/nutriguide/internal/api/models"
	"github.com/nutriguide/nutriguide/internal/api/response"
	"github.com/nutriguide/nutriguide/internal/planner"
	"github.com/nutriguide/nutriguide/internal/profile"
)

// ProfileHandler handles user profile endpoints.
type ProfileHandler struct {
	profiles *profile.Service
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *profile.Service) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// UpsertProfile handles POST /v1/profile - store a profile and return its calorie plan.
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var input models.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	saved, err := h.profiles.Upsert(r.Context(), profile.FromInput(&input))
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, planner.ComputePlan(saved).ToAPI())
}

// GetProfile handles GET /v1/profile/{email} - get a profile with its calorie plan.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Get(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.ProfileWithPlan{
		Profile: p.ToAPI(),
		Plan:    planner.ComputePlan(p).ToAPI(),
	})
}
