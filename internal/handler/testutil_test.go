package handler_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Gakshith/finalproject/internal/catalog"
	"github.com/Gakshith/finalproject/internal/config"
	"github.com/Gakshith/finalproject/internal/handler"
	"github.com/Gakshith/finalproject/internal/repository"
	"github.com/Gakshith/finalproject/internal/router"
)

const testSecret = "test-secret"

// setupTestDB creates an in-memory SQLite database mirroring the MySQL
// schema used in production, constraints included.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?_loc=UTC")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ddl := []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			user_password TEXT NOT NULL,
			full_name TEXT,
			bio TEXT,
			profile_picture TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE movies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER REFERENCES users (id),
			external_id TEXT NOT NULL,
			title TEXT NOT NULL,
			year INTEGER,
			poster_url TEXT,
			overview TEXT,
			genres TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, external_id)
		)`,
		`CREATE TABLE reviews (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users (id),
			movie_id INTEGER NOT NULL REFERENCES movies (id),
			rating REAL NOT NULL,
			comment TEXT,
			likes INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP,
			UNIQUE (user_id, movie_id)
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create test schema: %v", err)
		}
	}
	return db
}

// testEnv wires the full application against an in-memory database and an
// optional mocked catalog endpoint.
type testEnv struct {
	e  *echo.Echo
	db *sql.DB
}

func newTestEnv(t *testing.T, catalogURL string) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	cfg := config.Config{
		Env:          "test",
		JWTSecret:    testSecret,
		AccessTTLMin: 60,
		BcryptCost:   bcrypt.MinCost,
	}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	reviews := repository.NewReviewRepo(db)

	cat := catalog.NewClientWithConfig(&catalog.ClientConfig{
		BaseURL:      catalogURL,
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
		APIKey:       "test-key",
		Timeout:      2 * time.Second,
		Logger:       log,
	})

	e := echo.New()
	router.Register(e,
		handler.NewAuthHandler(cfg, users, log),
		handler.NewMovieHandler(movies, reviews, cat, log),
		handler.NewReviewHandler(movies, reviews, log),
		cfg.JWTSecret, users)

	return &testEnv{e: e, db: db}
}

// do performs a request against the wired application. A non-empty token
// is sent as a bearer header; a non-nil body is JSON-encoded.
func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func (env *testEnv) signup(t *testing.T, username, email string) {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/signup", "", map[string]interface{}{
		"username": username,
		"email":    email,
		"password": "secret-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("signup %s: status = %d, body = %s", username, rec.Code, rec.Body.String())
	}
}

func (env *testEnv) login(t *testing.T, username string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/login", "", map[string]interface{}{
		"username": username,
		"password": "secret-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d, body = %s", username, rec.Code, rec.Body.String())
	}
	token, _ := decodeMap(t, rec)["access_token"].(string)
	if token == "" {
		t.Fatalf("login %s: empty access_token", username)
	}
	return token
}

// itoa renders a JSON-decoded numeric id for use in a path.
func itoa(v float64) string { return strconv.FormatInt(int64(v), 10) }

// fightClubServer returns a catalog stub that serves movie 550 and counts
// how many times it was hit.
func fightClubServer(hits *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"title": "Fight Club",
			"release_date": "1999-10-15",
			"poster_path": "/poster.jpg",
			"overview": "An insomniac office worker...",
			"genres": [{"name": "Drama"}]
		}`))
	}))
}
