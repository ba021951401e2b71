package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/appointments/internal/core/domain"
	"github.com/medconnect/appointments/internal/pkg/session"
)

func signedToken(t *testing.T, secret, id string) string {
	t.Helper()
	token, err := session.Issue(secret, domain.Principal{ID: id, Email: id + "@example.com"}, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func runSession(t *testing.T, req *http.Request) (domain.Principal, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		got    domain.Principal
		found  bool
		called bool
	)
	handler := Session("secret")(func(c echo.Context) error {
		called = true
		got, found = ContextPrincipalResolver{}.CurrentPrincipal(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	return got, found
}

func TestSession_BearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "secret", "doc-1"))

	p, ok := runSession(t, req)
	if !ok || p.ID != "doc-1" || p.Email != "doc-1@example.com" {
		t.Fatalf("unexpected principal: %+v ok=%v", p, ok)
	}
}

func TestSession_Cookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: signedToken(t, "secret", "doc-2")})

	p, ok := runSession(t, req)
	if !ok || p.ID != "doc-2" {
		t.Fatalf("unexpected principal: %+v ok=%v", p, ok)
	}
}

func TestSession_AnonymousWhenMissingOrInvalid(t *testing.T) {
	cases := map[string]func(r *http.Request){
		"no credentials": func(*http.Request) {},
		"bad scheme":     func(r *http.Request) { r.Header.Set("Authorization", "Token abc") },
		"garbage token":  func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-token") },
		"wrong secret":   func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+signedToken(t, "other", "doc-1")) },
		"garbage cookie": func(r *http.Request) { r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "x"}) },
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			setup(req)
			if _, ok := runSession(t, req); ok {
				t.Fatalf("expected anonymous request")
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler := RequireAuth()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	ctx := domain.WithPrincipal(context.Background(), domain.Principal{ID: "doc-1"})
	req = httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec = httptest.NewRecorder()
	called := false
	handler = RequireAuth()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected authenticated request to pass, got %d", rec.Code)
	}
}
