package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRBAC(t *testing.T) {
	tests := []struct {
		name     string
		role     any
		allowed  []string
		wantCode int
	}{
		{"admin allowed", "admin", []string{"admin"}, http.StatusOK},
		{"user allowed alongside admin", "user", []string{"admin", "user"}, http.StatusOK},
		{"user blocked from admin routes", "user", []string{"admin"}, http.StatusForbidden},
		{"unknown role blocked", "guest", []string{"admin", "user"}, http.StatusForbidden},
		{"missing role blocked", nil, []string{"admin"}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != nil {
				c.Set("role", tt.role)
			}

			handler := RBAC(tt.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}
