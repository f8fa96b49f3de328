package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/utils"
)

const testSecret = "test-secret"

func doAuthed(t *testing.T, authHeader string, mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/booking", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "PARTICIPANT", 5)
	if err != nil {
		t.Fatalf("token creation failed: %v", err)
	}

	rec, c := doAuthed(t, "Bearer "+at.Token, JWTAuth(testSecret))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	// sub comes back as float64 after JSON decoding of the claims.
	if sub, ok := c.Get("user_id").(float64); !ok || uint64(sub) != 7 {
		t.Fatalf("expected user_id 7 in context, got %v", c.Get("user_id"))
	}
	if role, _ := c.Get("role").(string); role != "PARTICIPANT" {
		t.Fatalf("expected role PARTICIPANT, got %v", c.Get("role"))
	}
}

func TestJWTAuthRejects(t *testing.T) {
	wrongSecret, err := utils.NewAccessToken("other-secret", 7, "PARTICIPANT", 5)
	if err != nil {
		t.Fatalf("token creation failed: %v", err)
	}
	expired, err := utils.NewAccessToken(testSecret, 7, "PARTICIPANT", -5)
	if err != nil {
		t.Fatalf("token creation failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abcdef"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + wrongSecret.Token},
		{"expired token", "Bearer " + expired.Token},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := doAuthed(t, tc.header, JWTAuth(testSecret))
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	run := func(role any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		if err := RequireRole("ADMIN")(next)(c); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		return rec
	}

	if rec := run("ADMIN"); rec.Code != http.StatusOK {
		t.Fatalf("ADMIN should pass, got %d", rec.Code)
	}
	if rec := run("PARTICIPANT"); rec.Code != http.StatusForbidden {
		t.Fatalf("PARTICIPANT should be forbidden, got %d", rec.Code)
	}
	if rec := run(nil); rec.Code != http.StatusForbidden {
		t.Fatalf("missing role should be forbidden, got %d", rec.Code)
	}
}
