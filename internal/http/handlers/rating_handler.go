// README: Trip rating handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridemoto/internal/http/middleware"
	"ridemoto/internal/modules/booking"
	"ridemoto/internal/modules/rating"
	"ridemoto/internal/types"
)

type RatingHandler struct {
	bookings *booking.Service
	ratings  *rating.Service
}

func NewRatingHandler(bookings *booking.Service, ratings *rating.Service) *RatingHandler {
	return &RatingHandler{bookings: bookings, ratings: ratings}
}

type rateReq struct {
	Stars int `json:"stars"`
}

// Rate records the rider's one-time rating for a completed trip.
func (h *RatingHandler) Rate(c *gin.Context) {
	id := types.ID(c.Param("id"))
	b, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	if string(b.RiderID) != middleware.UID(c) {
		writeError(c, http.StatusForbidden, "not your booking")
		return
	}

	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.ratings.Rate(c.Request.Context(), id, req.Stars); err != nil {
		writeRatingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"rating": req.Stars})
}
