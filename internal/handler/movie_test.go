package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAttachMovieFetchesOnceAndCaches(t *testing.T) {
	hits := 0
	srv := fightClubServer(&hits)
	defer srv.Close()

	env := newTestEnv(t, srv.URL)
	env.signup(t, "alice", "a@x.com")
	token := env.login(t, "alice")

	rec := env.do(t, http.MethodPost, "/movies/550", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("attach: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	first := decodeMap(t, rec)
	if first["external_id"] != "550" || first["title"] != "Fight Club" {
		t.Errorf("movie = %v", first)
	}
	if year, _ := first["year"].(float64); year != 1999 {
		t.Errorf("year = %v, want 1999", first["year"])
	}
	if first["genres"] != "Drama" {
		t.Errorf("genres = %v", first["genres"])
	}

	// second attach is idempotent: same row, no second upstream fetch
	rec = env.do(t, http.MethodPost, "/movies/550", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("re-attach: status = %d", rec.Code)
	}
	second := decodeMap(t, rec)
	if first["id"] != second["id"] {
		t.Errorf("ids differ across attaches: %v vs %v", first["id"], second["id"])
	}
	if hits != 1 {
		t.Errorf("catalog hits = %d, want 1", hits)
	}
}

func TestAttachMovieUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	env := newTestEnv(t, srv.URL)
	env.signup(t, "alice", "a@x.com")
	token := env.login(t, "alice")

	rec := env.do(t, http.MethodPost, "/movies/550", token, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if msg := decodeMap(t, rec)["error"]; msg != "failed to add movie" {
		t.Errorf("error = %v, want generic message without upstream detail", msg)
	}

	// no partial insert on fetch failure
	var count int
	if err := env.db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		t.Fatalf("count movies: %v", err)
	}
	if count != 0 {
		t.Errorf("movies rows = %d, want 0", count)
	}
}

func TestAttachMovieRejectsNonNumericID(t *testing.T) {
	env := newTestEnv(t, "")
	env.signup(t, "alice", "a@x.com")
	token := env.login(t, "alice")

	rec := env.do(t, http.MethodPost, "/movies/fight-club", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListReviewsRequiresOwnAttachment(t *testing.T) {
	hits := 0
	srv := fightClubServer(&hits)
	defer srv.Close()

	env := newTestEnv(t, srv.URL)
	env.signup(t, "alice", "a@x.com")
	env.signup(t, "bob", "b@x.com")
	alice := env.login(t, "alice")
	bob := env.login(t, "bob")

	if rec := env.do(t, http.MethodPost, "/movies/550", alice, nil); rec.Code != http.StatusOK {
		t.Fatalf("attach: status = %d", rec.Code)
	}

	// alice attached the movie, bob did not
	if rec := env.do(t, http.MethodGet, "/movies/550/reviews", alice, nil); rec.Code != http.StatusOK {
		t.Errorf("owner list: status = %d, want 200", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/movies/550/reviews", bob, nil); rec.Code != http.StatusNotFound {
		t.Errorf("non-owner list: status = %d, want 404", rec.Code)
	}
}
