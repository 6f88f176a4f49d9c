// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"ridemoto/internal/config"
	httptransport "ridemoto/internal/http"
	"ridemoto/internal/infra"
	"ridemoto/internal/logging"
	"ridemoto/internal/maps"
	"ridemoto/internal/modules/booking"
	"ridemoto/internal/modules/geofence"
	"ridemoto/internal/modules/pricing"
	"ridemoto/internal/modules/quote"
	"ridemoto/internal/modules/rating"
	"ridemoto/internal/observability"
	"ridemoto/internal/types"
	"ridemoto/internal/water"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.NewLogger(os.Getenv("RIDEMOTO_LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fb, err := infra.NewFirebase(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}
	fsClient, err := fb.Firestore(ctx)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	defer fsClient.Close()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = infra.NewRedis(cfg.Redis.Addr)
		defer redisClient.Close()
	}

	routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}
	geocodeSvc, err := maps.NewGeocodeService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	fenceCfg := geofence.Config{
		Center:   types.Point{Lat: cfg.Geofence.CenterLat, Lng: cfg.Geofence.CenterLng},
		RadiusKm: cfg.Geofence.RadiusKm,
	}
	placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey, fenceCfg.Center, fenceCfg.RadiusKm)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	waterClient := water.NewClient(cfg.Water.APIKey)
	if cfg.Water.Endpoint != "" {
		waterClient.Endpoint = cfg.Water.Endpoint
	}
	fence := geofence.NewValidator(fenceCfg, waterClient, geocodeSvc)

	pricingSvc := pricing.NewService(pricing.Rate{
		MinimumFare: cfg.Fare.MinimumFare,
		PerKm:       cfg.Fare.PerKm,
		FreeKm:      cfg.Fare.FreeKm,
		Currency:    "PHP",
	})
	quoteSvc := quote.NewService(routeSvc, pricingSvc, redisClient)

	reconfirm := booking.NewReconfirmRegistry(
		time.Duration(cfg.ReconfirmSeconds)*time.Second,
		func(id types.ID) {
			observability.ReconfirmPrompts.Inc()
			logger.Info("reconfirmation prompt", "booking_id", id)
		},
	)
	defer reconfirm.Stop()

	bookingStore := booking.NewFirestoreStore(fsClient)
	journal := booking.NewJournal(dbPool)
	bookingSvc := booking.NewService(bookingStore, journal, reconfirm)

	ratingStore := rating.NewFirestoreStore(fsClient)
	ratingSvc := rating.NewService(bookingSvc, ratingStore)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Bookings: bookingSvc,
		Ratings:  ratingSvc,
		Quotes:   quoteSvc,
		Places:   placesSvc,
		Fence:    fence,
		Verifier: fb,
		Logger:   logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
