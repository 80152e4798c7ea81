package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=10"`
	Name        string `json:"name" validate:"required"`
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type changeUsernameRequest struct {
	NewUsername string `json:"new_username" validate:"required,min=3"`
	Password    string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates a user account, or logs in when the phone number is
// already registered.
//
// @Summary      Register or login by phone number
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Phone number and display name"
// @Success      200   {object}  ports.AuthResult
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), req.PhoneNumber, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// AdminLogin authenticates a console operator and returns a JWT.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Console credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.AdminLogin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (h *AuthHandler) ChangeAdminPassword(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangeAdminPassword(c.Request().Context(), adminID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (h *AuthHandler) ChangeAdminUsername(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req changeUsernameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangeAdminUsername(c.Request().Context(), adminID, req.NewUsername, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Username updated successfully"})
}
