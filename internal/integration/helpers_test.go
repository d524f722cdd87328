package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"code":      {},
}

func prepareRequest(
	method,
	path string,
	body io.Reader,
	headers map[string]string,
	cookies []*http.Cookie) *http.Request {

	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}

		switch v := m[k].(type) {
		case map[string]any:
			cleanMap(v)
		case []any:
			for _, item := range v {
				if nested, ok := item.(map[string]any); ok {
					cleanMap(nested)
				}
			}
		}
	}
}

func truncateAll(t testing.TB, app *TestApp) {
	_, err := app.DB.Exec(context.Background(), `
		TRUNCATE tickets, reservations, performances, play_actors, play_genres,
			actors, genres, plays, theatre_halls, users
		RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)

	clearPerformanceCache(t, app)
	app.Mailer.Reset()
}

func clearPerformanceCache(t testing.TB, app *TestApp) {
	ctx := context.Background()

	iter := app.Redis.Scan(ctx, 0, "performance:*", 100).Iterator()
	for iter.Next(ctx) {
		require.NoError(t, app.Redis.Del(ctx, iter.Val()).Err())
	}
	require.NoError(t, iter.Err())
}

func createTestUser(t testing.TB, db *pgxpool.Pool, email string) int {
	user := domain.User{
		FirstName: TestUserFirstName,
		LastName:  TestUserLastName,
		Email:     email,
	}
	require.NoError(t, user.Password.Set(TestUserPassword))

	var id int
	err := db.QueryRow(context.Background(), `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, user.FirstName, user.LastName, user.Email, user.Password.Hash).Scan(&id)
	require.NoError(t, err)

	return id
}

// seedCatalog creates two halls, two plays and three performances:
// 1 is Hamlet on the Main Stage (10x10), 2 is The Seagull in the Chamber
// Hall (3x4) and 3 is Hamlet in the Chamber Hall.
func seedCatalog(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), `
		INSERT INTO theatre_halls (name, rows, seats_in_row) VALUES
			('Main Stage', 10, 10),
			('Chamber Hall', 3, 4);

		INSERT INTO plays (title, description) VALUES
			('Hamlet', 'The Prince of Denmark.'),
			('The Seagull', 'A play in four acts.');

		INSERT INTO genres (name) VALUES ('Tragedy'), ('Comedy');
		INSERT INTO play_genres (play_id, genre_id) VALUES (1, 1), (2, 2);

		INSERT INTO performances (play_id, theatre_hall_id, show_time) VALUES
			(1, 1, '2095-03-14 19:30:00+00'),
			(2, 2, '2095-03-15 19:30:00+00'),
			(1, 2, '2095-03-16 19:30:00+00');
	`)
	require.NoError(t, err)
}

// login opens a session for the given credentials and returns its cookies.
func login(t testing.TB, app *TestApp, email, password string) []*http.Cookie {
	body := `{"email": "` + email + `", "password": "` + password + `"}`
	req := prepareRequest(http.MethodPost, "/sessions", strings.NewReader(body), nil, nil)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "login must set a session cookie")

	return cookies
}

func countRows(t testing.TB, db *pgxpool.Pool, table string) int {
	var count int
	err := db.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count)
	require.NoError(t, err)

	return count
}
