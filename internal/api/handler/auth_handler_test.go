package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, phone, name string) (*ports.AuthResult, error)
	profileFn    func(ctx context.Context, userID string) (*domain.User, error)
	adminLoginFn func(ctx context.Context, username, password string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, phone, name string) (*ports.AuthResult, error) {
	return s.registerFn(ctx, phone, name)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	return s.adminLoginFn(ctx, username, password)
}

func (s *stubAuthService) ChangeAdminPassword(context.Context, string, string, string) error {
	return nil
}

func (s *stubAuthService) ChangeAdminUsername(context.Context, string, string, string) error {
	return nil
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, phone, name string) (*ports.AuthResult, error) {
			if phone != "9876543210" || name != "Asha" {
				t.Fatalf("unexpected args: %s %s", phone, name)
			}
			return &ports.AuthResult{Token: "tok", User: &domain.User{ID: "u1", Name: name}, IsNewUser: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register", `{"phone_number":"9876543210","name":"Asha"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" || resp["is_new_user"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register", "not-json")
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Register_ShortPhone(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register", `{"phone_number":"123","name":"Asha"}`)
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_AdminLogin_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		adminLoginFn: func(context.Context, string, string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/admin/login", `{"username":"admin","password":"wrong"}`)
	err := h.AdminLogin(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected credentials error passthrough, got %v", err)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodGet, "/auth/me", "")
	err := h.Me(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id %s", userID)
			}
			return &domain.User{ID: "u1", Name: "Asha"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set("user_id", "u1")
	c.Set("role", "user")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
