// README: Handler tests for quote and dropoff validation mapping.
package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"ridemoto/internal/http/handlers"
	httpmiddleware "ridemoto/internal/http/middleware"
	"ridemoto/internal/maps"
	"ridemoto/internal/modules/geofence"
	"ridemoto/internal/modules/quote"
	"ridemoto/internal/types"
)

type fakeQuotes struct {
	q   quote.FareQuote
	err error
}

func (f *fakeQuotes) Quote(_ context.Context, _, _ types.Point) (quote.FareQuote, error) {
	return f.q, f.err
}

func (f *fakeQuotes) Route(_ context.Context, _, _ types.Point) ([]types.Point, error) {
	return []types.Point{{Lat: 16.04, Lng: 120.33}}, f.err
}

type fakeWater struct {
	water bool
	err   error
}

func (f *fakeWater) IsWater(_ context.Context, _ types.Point) (bool, error) {
	return f.water, f.err
}

type fakeGeocoder struct {
	addr maps.Address
	err  error
}

func (f *fakeGeocoder) ReverseGeocode(_ context.Context, _ types.Point) (maps.Address, error) {
	return f.addr, f.err
}

type fakePlaces struct {
	results []maps.Place
	err     error
}

func (f *fakePlaces) SearchDestinations(_ context.Context, _ string) ([]maps.Place, error) {
	return f.results, f.err
}

func buildQuoteRouter(quotes handlers.QuoteService, water geofence.WaterLookup, geocoder geofence.Geocoder, places handlers.DestinationSearch) *gin.Engine {
	gin.SetMode(gin.TestMode)
	fence := geofence.NewValidator(geofence.DefaultConfig(), water, geocoder)
	r := gin.New()
	r.Use(httpmiddleware.Auth(makeVerifier("rider1", "")))
	h := handlers.NewQuoteHandler(quotes, fence, places)
	r.POST("/api/quotes", h.Quote)
	r.POST("/api/routes", h.Route)
	r.GET("/api/places/search", h.SearchPlaces)
	return r
}

func landGeocoder() *fakeGeocoder {
	return &fakeGeocoder{addr: maps.Address{
		Formatted: "Dagupan City, Pangasinan",
		Components: []maps.AddressComponent{
			{LongName: "Dagupan City", Types: []string{"locality", "political"}},
		},
	}}
}

func quoteBody(dropLat, dropLng float64) map[string]any {
	return map[string]any{
		"pickup":  map[string]any{"lat": 16.0439, "lng": 120.3331},
		"dropoff": map[string]any{"lat": dropLat, "lng": dropLng},
	}
}

func TestQuote_OK(t *testing.T) {
	quotes := &fakeQuotes{q: quote.FareQuote{
		DistanceText:   "15.0 km",
		DurationText:   "27 min",
		Price:          types.Money{Amount: 350, Currency: "PHP"},
		DistanceMeters: 15000,
	}}
	r := buildQuoteRouter(quotes, &fakeWater{}, landGeocoder(), &fakePlaces{})

	w := doRequest(r, http.MethodPost, "/api/quotes", quoteBody(16.0219, 120.2307), "Bearer tok")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestQuote_OutsideServiceArea(t *testing.T) {
	r := buildQuoteRouter(&fakeQuotes{}, &fakeWater{}, landGeocoder(), &fakePlaces{})

	// Manila, roughly 200 km from the service-area center
	w := doRequest(r, http.MethodPost, "/api/quotes", quoteBody(14.5995, 120.9842), "Bearer tok")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestQuote_DropoffOnWater(t *testing.T) {
	r := buildQuoteRouter(&fakeQuotes{}, &fakeWater{water: true}, landGeocoder(), &fakePlaces{})

	w := doRequest(r, http.MethodPost, "/api/quotes", quoteBody(16.0219, 120.2307), "Bearer tok")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestQuote_WaterTaggedAddress(t *testing.T) {
	geocoder := &fakeGeocoder{addr: maps.Address{
		Formatted: "Lingayen Gulf",
		Components: []maps.AddressComponent{
			{LongName: "Lingayen Gulf", Types: []string{"natural_feature", "water"}},
		},
	}}
	r := buildQuoteRouter(&fakeQuotes{}, &fakeWater{}, geocoder, &fakePlaces{})

	w := doRequest(r, http.MethodPost, "/api/quotes", quoteBody(16.1, 120.25), "Bearer tok")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestQuote_GeocodeFailure(t *testing.T) {
	geocoder := &fakeGeocoder{err: errors.New("upstream down")}
	r := buildQuoteRouter(&fakeQuotes{}, &fakeWater{}, geocoder, &fakePlaces{})

	w := doRequest(r, http.MethodPost, "/api/quotes", quoteBody(16.0219, 120.2307), "Bearer tok")
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestQuote_WaterLookupFailure(t *testing.T) {
	r := buildQuoteRouter(&fakeQuotes{}, &fakeWater{err: errors.New("rapidapi timeout")}, landGeocoder(), &fakePlaces{})

	w := doRequest(r, http.MethodPost, "/api/quotes", quoteBody(16.0219, 120.2307), "Bearer tok")
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestRoute_OK(t *testing.T) {
	r := buildQuoteRouter(&fakeQuotes{}, &fakeWater{}, landGeocoder(), &fakePlaces{})

	w := doRequest(r, http.MethodPost, "/api/routes", quoteBody(16.0219, 120.2307), "Bearer tok")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSearchPlaces_MissingQuery(t *testing.T) {
	r := buildQuoteRouter(&fakeQuotes{}, &fakeWater{}, landGeocoder(), &fakePlaces{})

	w := doRequest(r, http.MethodGet, "/api/places/search", nil, "Bearer tok")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSearchPlaces_OK(t *testing.T) {
	places := &fakePlaces{results: []maps.Place{
		{Name: "CSI Lucao", Address: "Lucao District, Dagupan", PlaceID: "p1"},
	}}
	r := buildQuoteRouter(&fakeQuotes{}, &fakeWater{}, landGeocoder(), places)

	w := doRequest(r, http.MethodGet, "/api/places/search?q=csi", nil, "Bearer tok")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
