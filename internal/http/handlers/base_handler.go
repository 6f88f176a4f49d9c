// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridemoto/internal/modules/booking"
	"ridemoto/internal/modules/geofence"
	"ridemoto/internal/modules/rating"
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

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrIncompleteProfile):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, booking.ErrActiveBooking),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrCannotCancelAssigned):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// writeGeofenceError maps dropoff validation failures. Rejections of the
// point itself are 422; a remote lookup that could not answer is 502
// because the client can retry the same point later.
func writeGeofenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, geofence.ErrOutsideServiceArea),
		errors.Is(err, geofence.ErrOnWater):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, geofence.ErrAddressLookupFailed):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusBadGateway, "dropoff validation failed")
	}
}

func writeRatingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rating.ErrOutOfRange):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, rating.ErrAlreadyRated), errors.Is(err, rating.ErrNotCompleted):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
