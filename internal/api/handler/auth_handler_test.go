package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/appointments/internal/core/domain"
	"github.com/medconnect/appointments/internal/core/ports"
	"github.com/medconnect/appointments/internal/pkg/session"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "alice@example.com" || in.Role != domain.RoleDoctor || in.FullName != "Dr. Alice" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Email: in.Email, Role: in.Role, FullName: in.FullName, PasswordHash: "hash"}, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	req := jsonRequest(http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"secret1","full_name":"Dr. Alice","role":"doctor"}`)
	rec := httptest.NewRecorder()

	if err := handler.Register(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "u1" || user["role"] != "doctor" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	req := jsonRequest(http.MethodPost, "/auth/register", `{"email":"bob@example.com","password":"secret1"}`)
	rec := httptest.NewRecorder()

	_ = handler.Register(e.NewContext(req, rec))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	cases := map[string]string{
		"not json":       "not-json",
		"missing email":  `{"password":"secret1"}`,
		"bad email":      `{"email":"nope","password":"secret1"}`,
		"short password": `{"email":"bob@example.com","password":"abc"}`,
		"unknown role":   `{"email":"bob@example.com","password":"secret1","role":"admin"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{
				registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			handler := NewAuthHandler(stub, time.Hour, false)

			rec := httptest.NewRecorder()
			_ = handler.Register(e.NewContext(jsonRequest(http.MethodPost, "/auth/register", body), rec))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u1", Email: email, Role: domain.RoleDoctor}, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour, true)

	req := jsonRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret"}`)
	rec := httptest.NewRecorder()

	if err := handler.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != session.CookieName || cookie.Value != "token123" || !cookie.HttpOnly || !cookie.Secure || cookie.MaxAge != 3600 {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	req := jsonRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"bad"}`)
	rec := httptest.NewRecorder()

	_ = handler.Login(e.NewContext(req, rec))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie expected on failure")
	}
}

func TestAuthHandler_Login_StoreErrorPropagates(t *testing.T) {
	e := newTestEcho()
	storeErr := errors.New("connection reset")
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, storeErr
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	req := jsonRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"pwd"}`)
	if err := handler.Login(e.NewContext(req, httptest.NewRecorder())); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to reach the error handler, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	rec := httptest.NewRecorder()
	if err := handler.Logout(e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.CookieName || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", cookies)
	}
}
