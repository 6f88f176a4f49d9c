// README: Handler tests for booking auth and error mapping.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"ridemoto/internal/http/handlers"
	httpmiddleware "ridemoto/internal/http/middleware"
	"ridemoto/internal/infra"
	"ridemoto/internal/modules/booking"
	"ridemoto/internal/modules/quote"
	"ridemoto/internal/types"
)

// stubTokenVerifier is a test double for infra.TokenVerifier.
type stubTokenVerifier struct {
	token *infra.FirebaseToken
	err   error
}

func (s *stubTokenVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.FirebaseToken, error) {
	return s.token, s.err
}

func makeVerifier(uid, role string) *stubTokenVerifier {
	claims := map[string]interface{}{}
	if role != "" {
		claims["role"] = role
	}
	return &stubTokenVerifier{token: &infra.FirebaseToken{UID: uid, Claims: claims}}
}

// memStore is an in-memory booking.Store for handler tests.
type memStore struct {
	mu   sync.Mutex
	docs map[types.ID]*booking.Booking
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[types.ID]*booking.Booking)}
}

func (m *memStore) Create(_ context.Context, b *booking.Booking) (types.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.docs[b.ID] = &cp
	return b.ID, nil
}

func (m *memStore) Get(_ context.Context, id types.ID) (*booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.docs[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) ActiveByRider(_ context.Context, riderID types.ID) (*booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.docs {
		if b.RiderID == riderID && !b.IsDroppedOff {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) SetDriver(_ context.Context, id types.ID, driverID types.ID) error {
	return m.mutate(id, func(b *booking.Booking) { b.DriverID = driverID })
}

func (m *memStore) SetPickedUp(_ context.Context, id types.ID) error {
	return m.mutate(id, func(b *booking.Booking) { b.IsPickedUp = true })
}

func (m *memStore) SetDroppedOff(_ context.Context, id types.ID) error {
	return m.mutate(id, func(b *booking.Booking) { b.IsDroppedOff = true })
}

func (m *memStore) Delete(_ context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

func (m *memStore) CompletedByRider(_ context.Context, riderID types.ID) ([]*booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*booking.Booking
	for _, b := range m.docs {
		if b.RiderID == riderID && b.IsDroppedOff {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) mutate(id types.ID, fn func(*booking.Booking)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.docs[id]
	if !ok {
		return booking.ErrNotFound
	}
	fn(b)
	return nil
}

// buildBookingRouter wires a minimal Gin engine with the auth middleware
// and the booking handler, mirroring the production routes.
func buildBookingRouter(verifier infra.TokenVerifier, store booking.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := booking.NewService(store, nil, nil)
	r := gin.New()
	r.Use(httpmiddleware.Auth(verifier))
	h := handlers.NewBookingHandler(svc)
	r.POST("/api/bookings", h.Create)
	r.GET("/api/bookings/current", h.Current)
	r.GET("/api/bookings/:id", h.Get)
	r.POST("/api/bookings/:id/driver", h.AssignDriver)
	r.POST("/api/bookings/:id/pickup", h.MarkPickedUp)
	r.POST("/api/bookings/:id/dropoff", h.MarkDroppedOff)
	r.DELETE("/api/bookings/:id", h.Cancel)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}, authHeader string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createBody() map[string]any {
	return map[string]any{
		"rider_name":    "Juan Dela Cruz",
		"rider_phone":   "+639171234567",
		"pickup":        map[string]any{"lat": 16.0439, "lng": 120.3331},
		"pickup_label":  "AB Fernandez Ave, Dagupan",
		"dropoff":       map[string]any{"lat": 16.0219, "lng": 120.2307},
		"dropoff_label": "Lingayen Capitol Compound",
		"quote": quote.FareQuote{
			DistanceText:   "12.4 km",
			DurationText:   "24 min",
			Price:          types.Money{Amount: 298, Currency: "PHP"},
			DistanceMeters: 12400,
		},
	}
}

func seedBooking(store *memStore, rider types.ID) types.ID {
	b := &booking.Booking{
		ID:           "seed01",
		RiderID:      rider,
		RiderName:    "Juan Dela Cruz",
		RiderPhone:   "+639171234567",
		PickupLabel:  "pickup",
		DropoffLabel: "dropoff",
	}
	_, _ = store.Create(context.Background(), b)
	return b.ID
}

func TestCreate_Unauthenticated(t *testing.T) {
	r := buildBookingRouter(&stubTokenVerifier{err: errors.New("no token")}, newMemStore())
	w := doRequest(r, http.MethodPost, "/api/bookings", createBody(), "Bearer badtoken")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestCreate_MissingBearer(t *testing.T) {
	r := buildBookingRouter(makeVerifier("rider1", ""), newMemStore())
	w := doRequest(r, http.MethodPost, "/api/bookings", createBody(), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestCreate_OK(t *testing.T) {
	r := buildBookingRouter(makeVerifier("rider1", ""), newMemStore())
	w := doRequest(r, http.MethodPost, "/api/bookings", createBody(), "Bearer tok")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["booking_id"] == "" {
		t.Error("response missing booking_id")
	}
	if resp["status"] != string(booking.StatusRequested) {
		t.Errorf("status = %v, want %s", resp["status"], booking.StatusRequested)
	}
}

func TestCreate_IncompleteProfile(t *testing.T) {
	r := buildBookingRouter(makeVerifier("rider1", ""), newMemStore())
	body := createBody()
	body["rider_phone"] = ""
	w := doRequest(r, http.MethodPost, "/api/bookings", body, "Bearer tok")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestCreate_SecondActiveBookingConflicts(t *testing.T) {
	store := newMemStore()
	r := buildBookingRouter(makeVerifier("rider1", ""), store)
	seedBooking(store, "rider1")

	w := doRequest(r, http.MethodPost, "/api/bookings", createBody(), "Bearer tok")
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestGet_OtherRidersBookingForbidden(t *testing.T) {
	store := newMemStore()
	id := seedBooking(store, "rider1")
	r := buildBookingRouter(makeVerifier("rider2", ""), store)

	w := doRequest(r, http.MethodGet, "/api/bookings/"+string(id), nil, "Bearer tok")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestGet_Unknown(t *testing.T) {
	r := buildBookingRouter(makeVerifier("rider1", ""), newMemStore())
	w := doRequest(r, http.MethodGet, "/api/bookings/missing", nil, "Bearer tok")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCurrent_NoActiveBooking(t *testing.T) {
	r := buildBookingRouter(makeVerifier("rider1", ""), newMemStore())
	w := doRequest(r, http.MethodGet, "/api/bookings/current", nil, "Bearer tok")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAssignDriver_RequiresDriverRole(t *testing.T) {
	store := newMemStore()
	id := seedBooking(store, "rider1")
	r := buildBookingRouter(makeVerifier("rider1", ""), store)

	w := doRequest(r, http.MethodPost, "/api/bookings/"+string(id)+"/driver",
		map[string]any{"driver_id": "d1"}, "Bearer tok")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestDropoffBeforePickupConflicts(t *testing.T) {
	store := newMemStore()
	id := seedBooking(store, "rider1")
	r := buildBookingRouter(makeVerifier("driver1", "driver"), store)

	w := doRequest(r, http.MethodPost, "/api/bookings/"+string(id)+"/driver",
		map[string]any{"driver_id": "driver1"}, "Bearer tok")
	if w.Code != http.StatusOK {
		t.Fatalf("assign: expected 200, got %d", w.Code)
	}
	w = doRequest(r, http.MethodPost, "/api/bookings/"+string(id)+"/dropoff", nil, "Bearer tok")
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestCancel_AssignedBookingConflicts(t *testing.T) {
	store := newMemStore()
	id := seedBooking(store, "rider1")
	driver := buildBookingRouter(makeVerifier("driver1", "driver"), store)
	rider := buildBookingRouter(makeVerifier("rider1", ""), store)

	w := doRequest(driver, http.MethodPost, "/api/bookings/"+string(id)+"/driver",
		map[string]any{"driver_id": "driver1"}, "Bearer tok")
	if w.Code != http.StatusOK {
		t.Fatalf("assign: expected 200, got %d", w.Code)
	}
	w = doRequest(rider, http.MethodDelete, "/api/bookings/"+string(id), nil, "Bearer tok")
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestCancel_RequestedBookingOK(t *testing.T) {
	store := newMemStore()
	id := seedBooking(store, "rider1")
	r := buildBookingRouter(makeVerifier("rider1", ""), store)

	w := doRequest(r, http.MethodDelete, "/api/bookings/"+string(id), nil, "Bearer tok")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = doRequest(r, http.MethodGet, "/api/bookings/"+string(id), nil, "Bearer tok")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after cancel, got %d", w.Code)
	}
}
