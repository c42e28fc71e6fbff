package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/nutriguide/nutriguide/internal/api/models"
	"github.com/nutriguide/nutriguide/internal/api/response"
	"github.com/nutriguide/nutriguide/internal/dailylog"
)

// LogHandler handles daily log endpoints.
type LogHandler struct {
	logs *dailylog.Service
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logs *dailylog.Service) *LogHandler {
	return &LogHandler{logs: logs}
}

// GetLog handles GET /v1/log/{email}/{date} - get the log for a day.
func (h *LogHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	l, err := h.logs.GetLog(r.Context(), chi.URLParam(r, "email"), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, l.ToAPI())
}

// AddEntry handles POST /v1/log/entry - append a meal entry to a day's log.
// Responds 201 when the log was created by this entry and 200 otherwise.
func (h *LogHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req models.AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.logs.AddEntry(r.Context(), req.Email, req.Date, dailylog.EntryFromAPI(&req.Entry))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if result.Status == dailylog.StatusCreated {
		response.Created(w, r, "/v1/log/"+url.PathEscape(req.Email)+"/"+url.PathEscape(req.Date), models.EntryResult{
			Status: models.EntryStatusCreated,
			ID:     result.ID,
		})
		return
	}
	response.JSON(w, r, http.StatusOK, models.EntryResult{Status: models.EntryStatusUpdated})
}

// DeleteEntry handles DELETE /v1/log/entry - remove an entry by position.
func (h *LogHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if req.Index == nil {
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "index", Message: "is required"},
		})
		return
	}

	if _, err := h.logs.DeleteEntry(r.Context(), req.Email, req.Date, *req.Index); err != nil {
		writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.EntryResult{Status: models.EntryStatusDeleted})
}
