package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Gakshith/finalproject/internal/utils"
)

func TestGuardMissingToken(t *testing.T) {
	env := newTestEnv(t, "")
	rec := env.do(t, http.MethodGet, "/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := decodeMap(t, rec)["error"]; msg != "not authenticated" {
		t.Errorf("error = %v, want 'not authenticated'", msg)
	}
}

func TestGuardRejectsBadTokensUniformly(t *testing.T) {
	env := newTestEnv(t, "")
	env.signup(t, "alice", "a@x.com")

	expired, err := utils.NewAccessToken(testSecret, "alice", -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	forged, err := utils.NewAccessToken("other-secret", "alice", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	// valid signature, but the subject resolves to no user row
	ghost, err := utils.NewAccessToken(testSecret, "ghost", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	for name, token := range map[string]string{
		"malformed":       "not.a.token",
		"expired":         expired.Token,
		"forged":          forged.Token,
		"unknown subject": ghost.Token,
	} {
		rec := env.do(t, http.MethodGet, "/me", token, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rec.Code)
			continue
		}
		if msg := decodeMap(t, rec)["error"]; msg != "invalid credentials" {
			t.Errorf("%s: error = %v, want 'invalid credentials'", name, msg)
		}
	}
}

func TestGuardQueryParamFallback(t *testing.T) {
	env := newTestEnv(t, "")
	env.signup(t, "alice", "a@x.com")
	token := env.login(t, "alice")

	req := httptest.NewRequest(http.MethodGet, "/me?token="+token, nil)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}
	if got := decodeMap(t, rec)["username"]; got != "alice" {
		t.Errorf("username = %v, want alice", got)
	}
}

func TestGuardHeaderTakesPrecedenceOverQuery(t *testing.T) {
	env := newTestEnv(t, "")
	env.signup(t, "alice", "a@x.com")
	token := env.login(t, "alice")

	// a bad header must not fall through to the valid query token
	req := httptest.NewRequest(http.MethodGet, "/me?token="+token, nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not.a.token")
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when the header token is invalid", rec.Code)
	}
}
