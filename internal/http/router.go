// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ridemoto/internal/http/handlers"
	"ridemoto/internal/http/middleware"
	"ridemoto/internal/infra"
	"ridemoto/internal/modules/booking"
	"ridemoto/internal/modules/geofence"
	"ridemoto/internal/modules/rating"
)

type RouterDeps struct {
	Bookings *booking.Service
	Ratings  *rating.Service
	Quotes   handlers.QuoteService
	Places   handlers.DestinationSearch
	Fence    *geofence.Validator
	Verifier infra.TokenVerifier
	Logger   *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logging(deps.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.Auth(deps.Verifier))

	quoteHandler := handlers.NewQuoteHandler(deps.Quotes, deps.Fence, deps.Places)
	api.POST("/quotes", quoteHandler.Quote)
	api.POST("/routes", quoteHandler.Route)
	api.GET("/places/search", quoteHandler.SearchPlaces)

	bookingHandler := handlers.NewBookingHandler(deps.Bookings)
	api.POST("/bookings", bookingHandler.Create)
	api.GET("/bookings/current", bookingHandler.Current)
	api.GET("/bookings/history", bookingHandler.History)
	api.GET("/bookings/:id", bookingHandler.Get)
	api.POST("/bookings/:id/driver", bookingHandler.AssignDriver)
	api.POST("/bookings/:id/pickup", bookingHandler.MarkPickedUp)
	api.POST("/bookings/:id/dropoff", bookingHandler.MarkDroppedOff)
	api.DELETE("/bookings/:id", bookingHandler.Cancel)
	api.POST("/bookings/:id/reconfirm", bookingHandler.Reconfirm)

	ratingHandler := handlers.NewRatingHandler(deps.Bookings, deps.Ratings)
	api.POST("/bookings/:id/rating", ratingHandler.Rate)

	eventsHandler := handlers.NewEventsHandler(deps.Bookings, deps.Logger)
	api.GET("/bookings/:id/events", eventsHandler.Stream)

	return r
}
