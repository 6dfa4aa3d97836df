// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentora/internal/modules/booking"
	"rentora/internal/modules/fleet"
	"rentora/internal/modules/location"
	"rentora/internal/modules/oneway"
	"rentora/internal/modules/pricing"
	"rentora/internal/modules/promo"
	"rentora/internal/modules/rate"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeDomainError maps module errors onto HTTP statuses. Resolution
// failures are 422 (the request was well-formed, the configuration cannot
// price it); configuration-integrity defects and losing transitions are
// 409.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrBadRequest),
		errors.Is(err, fleet.ErrBadRequest),
		errors.Is(err, rate.ErrBadRequest),
		errors.Is(err, oneway.ErrBadRequest),
		errors.Is(err, promo.ErrBadRequest),
		errors.Is(err, booking.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, fleet.ErrNotFound),
		errors.Is(err, rate.ErrNotFound),
		errors.Is(err, oneway.ErrNotFound),
		errors.Is(err, promo.ErrNotFound),
		errors.Is(err, location.ErrNotFound),
		errors.Is(err, booking.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, pricing.ErrNoRateAvailable),
		errors.Is(err, pricing.ErrNoTierForDuration),
		errors.Is(err, promo.ErrNotApplicable):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, pricing.ErrAmbiguousRateConfiguration),
		errors.Is(err, rate.ErrTierOverlap),
		errors.Is(err, rate.ErrDuplicateName),
		errors.Is(err, booking.ErrStatusConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
