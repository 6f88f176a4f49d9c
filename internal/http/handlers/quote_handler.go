// README: Quote, route, and place-search handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridemoto/internal/maps"
	"ridemoto/internal/modules/geofence"
	"ridemoto/internal/modules/quote"
	"ridemoto/internal/observability"
	"ridemoto/internal/types"
)

// QuoteService is the fare preview surface the handler depends on.
type QuoteService interface {
	Quote(ctx context.Context, origin, dropoff types.Point) (quote.FareQuote, error)
	Route(ctx context.Context, origin, dropoff types.Point) ([]types.Point, error)
}

// DestinationSearch finds candidate dropoff places by free-text query.
type DestinationSearch interface {
	SearchDestinations(ctx context.Context, query string) ([]maps.Place, error)
}

type QuoteHandler struct {
	quotes QuoteService
	fence  *geofence.Validator
	places DestinationSearch
}

func NewQuoteHandler(quotes QuoteService, fence *geofence.Validator, places DestinationSearch) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, fence: fence, places: places}
}

type pointReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p pointReq) point() types.Point {
	return types.Point{Lat: p.Lat, Lng: p.Lng}
}

type quoteReq struct {
	Pickup  pointReq `json:"pickup"`
	Dropoff pointReq `json:"dropoff"`
}

// Quote validates the dropoff against the service area and prices the trip.
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	address, err := h.fence.CheckDropoff(c.Request.Context(), req.Dropoff.point())
	if err != nil {
		observability.GeofenceRejects.Inc()
		writeGeofenceError(c, err)
		return
	}

	q, err := h.quotes.Quote(c.Request.Context(), req.Pickup.point(), req.Dropoff.point())
	if err != nil {
		writeError(c, http.StatusBadGateway, "route lookup failed")
		return
	}

	observability.QuotesServed.Inc()
	writeJSON(c, http.StatusOK, gin.H{
		"quote":           q,
		"dropoff_address": address,
	})
}

// Route returns the drivable path between two points as coordinates.
func (h *QuoteHandler) Route(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	path, err := h.quotes.Route(c.Request.Context(), req.Pickup.point(), req.Dropoff.point())
	if err != nil {
		writeError(c, http.StatusBadGateway, "route lookup failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"points": path})
}

// SearchPlaces handles destination autocomplete inside the service area.
func (h *QuoteHandler) SearchPlaces(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		writeError(c, http.StatusBadRequest, "missing query")
		return
	}
	results, err := h.places.SearchDestinations(c.Request.Context(), query)
	if err != nil {
		writeError(c, http.StatusBadGateway, "place search failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"results": results})
}
