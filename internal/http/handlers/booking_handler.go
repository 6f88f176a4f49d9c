// README: Booking lifecycle handlers (create, progress, cancel, reconfirm).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridemoto/internal/http/middleware"
	"ridemoto/internal/modules/booking"
	"ridemoto/internal/modules/quote"
	"ridemoto/internal/observability"
	"ridemoto/internal/types"
)

type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: svc}
}

type createBookingReq struct {
	RiderName    string          `json:"rider_name"`
	RiderPhone   string          `json:"rider_phone"`
	Pickup       pointReq        `json:"pickup"`
	PickupLabel  string          `json:"pickup_label"`
	Dropoff      pointReq        `json:"dropoff"`
	DropoffLabel string          `json:"dropoff_label"`
	Quote        quote.FareQuote `json:"quote"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.bookings.Create(c.Request.Context(), booking.CreateCommand{
		RiderID:      types.ID(middleware.UID(c)),
		RiderName:    req.RiderName,
		RiderPhone:   req.RiderPhone,
		Pickup:       req.Pickup.point(),
		PickupLabel:  req.PickupLabel,
		Dropoff:      req.Dropoff.point(),
		DropoffLabel: req.DropoffLabel,
		Quote:        req.Quote,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	observability.BookingsCreated.Inc()
	writeJSON(c, http.StatusCreated, gin.H{"booking_id": id, "status": booking.StatusRequested})
}

func (h *BookingHandler) Current(c *gin.Context) {
	b, err := h.bookings.CurrentForRider(c.Request.Context(), types.ID(middleware.UID(c)))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	h.writeBooking(c, b)
}

func (h *BookingHandler) History(c *gin.Context) {
	list, err := h.bookings.HistoryForRider(c.Request.Context(), types.ID(middleware.UID(c)))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, b := range list {
		out = append(out, bookingView(b, false))
	}
	writeJSON(c, http.StatusOK, gin.H{"bookings": out})
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, ok := h.authorized(c)
	if !ok {
		return
	}
	h.writeBooking(c, b)
}

type assignDriverReq struct {
	DriverID string `json:"driver_id"`
}

// AssignDriver is called from the driver app when a driver takes the booking.
func (h *BookingHandler) AssignDriver(c *gin.Context) {
	if !middleware.HasRole(c, "driver") {
		writeError(c, http.StatusForbidden, "driver role required")
		return
	}
	var req assignDriverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.bookings.AssignDriver(c.Request.Context(), booking.AssignCommand{
		BookingID: types.ID(c.Param("id")),
		DriverID:  types.ID(req.DriverID),
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": booking.StatusAssigned})
}

func (h *BookingHandler) MarkPickedUp(c *gin.Context) {
	if !middleware.HasRole(c, "driver") {
		writeError(c, http.StatusForbidden, "driver role required")
		return
	}
	if err := h.bookings.MarkPickedUp(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": booking.StatusPickedUp})
}

func (h *BookingHandler) MarkDroppedOff(c *gin.Context) {
	if !middleware.HasRole(c, "driver") {
		writeError(c, http.StatusForbidden, "driver role required")
		return
	}
	if err := h.bookings.MarkDroppedOff(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeBookingError(c, err)
		return
	}
	observability.BookingsCompleted.Inc()
	writeJSON(c, http.StatusOK, gin.H{"status": booking.StatusCompleted})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	if _, ok := h.authorized(c); !ok {
		return
	}
	if err := h.bookings.Cancel(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeBookingError(c, err)
		return
	}
	observability.BookingsCancelled.Inc()
	writeJSON(c, http.StatusOK, gin.H{"status": booking.StatusCancelled})
}

type reconfirmReq struct {
	Confirm bool `json:"confirm"`
}

// Reconfirm records the rider's answer to the "still need a ride?" prompt.
// Declining cancels the booking.
func (h *BookingHandler) Reconfirm(c *gin.Context) {
	if _, ok := h.authorized(c); !ok {
		return
	}
	var req reconfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id := types.ID(c.Param("id"))
	if req.Confirm {
		if err := h.bookings.ConfirmInterest(c.Request.Context(), id); err != nil {
			writeBookingError(c, err)
			return
		}
		writeJSON(c, http.StatusOK, gin.H{"status": booking.StatusRequested})
		return
	}
	if err := h.bookings.DeclineInterest(c.Request.Context(), id); err != nil {
		writeBookingError(c, err)
		return
	}
	observability.BookingsCancelled.Inc()
	writeJSON(c, http.StatusOK, gin.H{"status": booking.StatusCancelled})
}

// authorized loads the booking and checks the caller may act on it: the
// rider who owns it, or any driver.
func (h *BookingHandler) authorized(c *gin.Context) (*booking.Booking, bool) {
	b, err := h.bookings.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeBookingError(c, err)
		return nil, false
	}
	if string(b.RiderID) != middleware.UID(c) && !middleware.HasRole(c, "driver") {
		writeError(c, http.StatusForbidden, "not your booking")
		return nil, false
	}
	return b, true
}

func (h *BookingHandler) writeBooking(c *gin.Context, b *booking.Booking) {
	writeJSON(c, http.StatusOK, bookingView(b, h.bookings.ReconfirmPending(b.ID)))
}

func bookingView(b *booking.Booking, reconfirmPending bool) gin.H {
	return gin.H{
		"booking":           b,
		"status":            b.Status(),
		"reconfirm_pending": reconfirmPending,
	}
}
