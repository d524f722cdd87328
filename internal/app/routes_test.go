package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/metinatakli/theatre-booking-system/api"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
	"github.com/metinatakli/theatre-booking-system/internal/mocks"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type RoutesTestSuite struct {
	suite.Suite
	app    *Application
	store  *mocks.InMemoryBookingStore
	router http.Handler
}

func (s *RoutesTestSuite) SetupTest() {
	swagger, err := api.GetSwagger()
	s.Require().NoError(err)

	hash, err := bcrypt.GenerateFromPassword([]byte("Pass123!@#"), bcrypt.MinCost)
	s.Require().NoError(err)

	user := &domain.User{ID: 4, FirstName: "Olga", Email: "olga@example.com"}
	user.Password.Hash = hash

	s.store = newTestBookingStore()
	s.app = newTestApplication(withBookingStore(s.store), func(a *Application) {
		a.swagger = swagger
		a.userRepo = &mocks.MockUserRepo{
			GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				if email != user.Email {
					return nil, domain.ErrRecordNotFound
				}
				return user, nil
			},
			GetByIdFunc: func(ctx context.Context, id int) (*domain.User, error) {
				return user, nil
			},
		}
	})
	s.router = s.app.Routes()
}

func TestRoutesSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}

func (s *RoutesTestSuite) serve(method, url string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w, r := executeRequest(s.T(), method, url, body)
	for _, c := range cookies {
		r.AddCookie(c)
	}

	s.router.ServeHTTP(w, r)

	return w
}

func (s *RoutesTestSuite) login() *http.Cookie {
	w := s.serve(http.MethodPost, "/sessions", api.LoginRequest{Email: "olga@example.com", Password: "Pass123!@#"})
	s.Require().Equal(http.StatusNoContent, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == s.app.sessionManager.Cookie.Name {
			return c
		}
	}

	s.FailNow("no session cookie after login")
	return nil
}

func (s *RoutesTestSuite) TestPublicEndpoints() {
	for _, url := range []string{"/healthcheck", "/performances", "/performances/1", "/performances/1/seat-map", "/openapi.json"} {
		w := s.serve(http.MethodGet, url, nil)
		s.Equal(http.StatusOK, w.Code, url)
	}
}

func (s *RoutesTestSuite) TestSecuredEndpointsRequireSession() {
	tests := []struct {
		method string
		url    string
	}{
		{http.MethodGet, "/reservations"},
		{http.MethodPost, "/reservations"},
		{http.MethodGet, "/reservations/1"},
		{http.MethodPost, "/genres"},
		{http.MethodPost, "/actors"},
		{http.MethodPost, "/plays"},
		{http.MethodPost, "/theatre-halls"},
		{http.MethodPost, "/performances"},
	}

	for _, tt := range tests {
		w := s.serve(tt.method, tt.url, nil)

		s.Equal(http.StatusUnauthorized, w.Code, tt.url)
		s.Equal(ErrUnauthorized, decodeJSON[api.ErrorResponse](s.T(), w).Message)
	}
}

func (s *RoutesTestSuite) TestInvalidPathParameter() {
	w := s.serve(http.MethodGet, "/performances/abc", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid id parameter", decodeJSON[api.ErrorResponse](s.T(), w).Message)
}

func (s *RoutesTestSuite) TestUnknownRoute() {
	w := s.serve(http.MethodGet, "/concerts", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RoutesTestSuite) TestBookingFlow() {
	cookie := s.login()

	w := s.serve(http.MethodPost, "/reservations", api.CreateReservationRequest{
		Tickets: []api.TicketRequest{{PerformanceId: 2, Row: 3, Seat: 4}},
	}, cookie)
	s.Require().Equal(http.StatusCreated, w.Code)

	created := decodeJSON[api.ReservationResponse](s.T(), w)

	w = s.serve(http.MethodPost, "/reservations", api.CreateReservationRequest{
		Tickets: []api.TicketRequest{{PerformanceId: 2, Row: 3, Seat: 4}},
	}, cookie)
	s.Equal(http.StatusConflict, w.Code)

	w = s.serve(http.MethodGet, "/performances", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	performances := decodeJSON[api.PerformanceListResponse](s.T(), w)
	s.Equal(11, performances.Performances[1].TicketsAvailable)

	w = s.serve(http.MethodGet, fmt.Sprintf("/reservations/%d", created.Id), nil, cookie)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(created.Code, decodeJSON[api.ReservationResponse](s.T(), w).Code)

	s.app.wg.Wait()
}

func (s *RoutesTestSuite) TestRecoverPanic() {
	handler := s.app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w, r := executeRequest(s.T(), http.MethodGet, "/", nil)
	handler.ServeHTTP(w, r)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("close", w.Header().Get("Connection"))
}
