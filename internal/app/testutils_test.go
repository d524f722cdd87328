package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/theatre-booking-system/api"
	"github.com/metinatakli/theatre-booking-system/internal/booking"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
	"github.com/metinatakli/theatre-booking-system/internal/mailer"
	"github.com/metinatakli/theatre-booking-system/internal/mocks"
	"github.com/metinatakli/theatre-booking-system/internal/validator"
)

var testShowTime = time.Date(2025, time.March, 14, 19, 30, 0, 0, time.UTC)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config:         Config{Env: "test"},
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		userRepo:       &mocks.MockUserRepo{},
		mailer:         mailer.NewMockMailer(),
		sessionManager: scs.New(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// withBookingStore backs the performance and reservation repositories with
// an in-memory store and builds the booking services on top of it.
func withBookingStore(store *mocks.InMemoryBookingStore) func(*Application) {
	return func(a *Application) {
		a.performanceRepo = store
		a.reservationRepo = store.Reservations()
		a.catalog = booking.NewCatalog(store, a.logger)
		a.bookings = booking.NewManager(a.catalog, a.reservationRepo, a.logger)
	}
}

func newTestBookingStore() *mocks.InMemoryBookingStore {
	store := mocks.NewInMemoryBookingStore()

	store.AddPerformance(domain.Performance{
		ID:        1,
		PlayID:    1,
		PlayTitle: "Hamlet",
		HallID:    1,
		HallName:  "Main Stage",
		Hall:      domain.HallGeometry{Rows: 10, SeatsInRow: 10},
		ShowTime:  testShowTime,
	})
	store.AddPerformance(domain.Performance{
		ID:        2,
		PlayID:    2,
		PlayTitle: "The Seagull",
		HallID:    2,
		HallName:  "Chamber Hall",
		Hall:      domain.HallGeometry{Rows: 3, SeatsInRow: 4},
		ShowTime:  testShowTime.Add(24 * time.Hour),
	})

	return store
}

func setupTestSession(t *testing.T, app *Application, r *http.Request, userId int) *http.Request {
	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Errorf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)

	return r.WithContext(ctx)
}

// withUser puts an authenticated user id into the request context the same
// way requireAuthentication does.
func withUser(r *http.Request, userId int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), SessionKeyUserId, userId))
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader = http.NoBody

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}

		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return v
}

func ptr[T any](v T) *T {
	return &v
}
