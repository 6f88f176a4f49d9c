// README: Booking status stream over WebSocket.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"ridemoto/internal/http/middleware"
	"ridemoto/internal/modules/booking"
	"ridemoto/internal/types"
)

// statusPollInterval is how often the stream re-reads the booking. The
// mobile clients previously subscribed to document snapshots directly;
// this keeps the same cadence of updates without a Firestore listener on
// every phone.
const statusPollInterval = 2 * time.Second

type EventsHandler struct {
	bookings *booking.Service
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewEventsHandler(svc *booking.Service, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		bookings: svc,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

type statusEvent struct {
	BookingID        types.ID       `json:"booking_id"`
	Status           booking.Status `json:"status"`
	DriverID         types.ID       `json:"driver_id,omitempty"`
	ReconfirmPending bool           `json:"reconfirm_pending"`
}

// Stream pushes the booking's status to the client whenever it changes.
// The connection closes when the booking disappears (cancelled) or the
// client goes away.
func (h *EventsHandler) Stream(c *gin.Context) {
	id := types.ID(c.Param("id"))
	b, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	if string(b.RiderID) != middleware.UID(c) && !middleware.HasRole(c, "driver") {
		writeError(c, http.StatusForbidden, "not your booking")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// drain client frames so close/ping handling keeps working
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	last := h.event(b)
	if err := conn.WriteJSON(last); err != nil {
		return
	}

	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}

		b, err := h.bookings.Get(c.Request.Context(), id)
		if errors.Is(err, booking.ErrNotFound) {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "booking gone"),
				time.Now().Add(time.Second))
			return
		}
		if err != nil {
			h.logger.Warn("status stream read failed", "booking_id", id, "err", err)
			continue
		}

		ev := h.event(b)
		if ev == last {
			continue
		}
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
		last = ev

		if ev.Status == booking.StatusCompleted {
			return
		}
	}
}

func (h *EventsHandler) event(b *booking.Booking) statusEvent {
	return statusEvent{
		BookingID:        b.ID,
		Status:           b.Status(),
		DriverID:         b.DriverID,
		ReconfirmPending: h.bookings.ReconfirmPending(b.ID),
	}
}
