package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nutriguide/nutriguide/internal/api/response"
	"github.com/nutriguide/nutriguide/internal/catalog"
	"github.com/nutriguide/nutriguide/internal/dailylog"
	"github.com/nutriguide/nutriguide/internal/profile"
	"github.com/nutriguide/nutriguide/internal/store"
)

// writeError maps service errors to problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		profileErr *profile.ValidationError
		catalogErr *catalog.ValidationError
		logErr     *dailylog.ValidationError
	)

	switch {
	case errors.As(err, &profileErr):
		response.BadRequest(w, r, "validation failed", profileErr.Errors)
	case errors.As(err, &catalogErr):
		response.BadRequest(w, r, "validation failed", catalogErr.Errors)
	case errors.As(err, &logErr):
		response.BadRequest(w, r, "validation failed", logErr.Errors)
	case errors.Is(err, dailylog.ErrInvalidIndex):
		response.InvalidIndex(w, r, err.Error())
	case errors.Is(err, dailylog.ErrLogNotFound):
		response.NotFound(w, r, "daily log not found")
	case errors.Is(err, profile.ErrProfileNotFound):
		response.NotFound(w, r, "profile not found")
	case errors.Is(err, dailylog.ErrConflict):
		response.Conflict(w, r, "daily log is being modified concurrently, try again")
	case errors.Is(err, store.ErrUnavailable):
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("store unavailable")
		response.ServiceUnavailable(w, r, "store unavailable")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("unhandled service error")
		response.InternalError(w, r, "internal server error")
	}
}
