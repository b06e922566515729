package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/config"
)

func newTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/bookings")
	return c
}

func TestCurrentUserIDClaimTypes(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"jwt numeric claim", float64(42), "42"},
		{"string", "7", "7"},
		{"uint64", uint64(9), "9"},
		{"int64", int64(13), "13"},
		{"int", 5, "5"},
		{"empty string", "", "anon"},
		{"unset", nil, "anon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext(t)
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			if got := currentUserID(c); got != tc.want {
				t.Errorf("currentUserID = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildRateKeyUsesAuthenticatedUser(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
	c := newTestContext(t)
	c.Set("user_id", float64(42)) // as stored by the JWT middleware

	if got, want := buildRateKey(cfg, c), "rl:user:42"; got != want {
		t.Errorf("key = %q, want %q", got, want)
	}
}

func TestBuildRateKeyAnonymousFallback(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user"}
	c := newTestContext(t)

	if got, want := buildRateKey(cfg, c), "rl:ip:192.0.2.1:user:anon"; got != want {
		t.Errorf("key = %q, want %q", got, want)
	}
}
