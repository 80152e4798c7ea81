package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

const defaultLogLimit = 200

// AdminHandler covers the console: verification review, user management,
// point corrections, the expiry sweep trigger, and the audit log.
type AdminHandler struct {
	loyalty ports.LoyaltyService
	admin   ports.AdminService
	sweep   ports.SweepService
}

func NewAdminHandler(loyalty ports.LoyaltyService, admin ports.AdminService, sweep ports.SweepService) *AdminHandler {
	return &AdminHandler{loyalty: loyalty, admin: admin, sweep: sweep}
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type restorePointsRequest struct {
	Points int `json:"points" validate:"required,gt=0"`
}

// PendingVerifications lists unresolved student ID submissions.
func (h *AdminHandler) PendingVerifications(c echo.Context) error {
	items, err := h.loyalty.PendingVerifications(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ApproveVerification approves a submission. The response reports whether
// loyalty actually activated; the applicant may have aged out since applying.
func (h *AdminHandler) ApproveVerification(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.loyalty.Approve(c.Request().Context(), adminID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) RejectVerification(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.loyalty.Reject(c.Request().Context(), adminID, c.Param("id"), req.Reason); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Verification rejected"})
}

// Users lists accounts. The students query parameter narrows the listing:
// "true" for loyalty applicants, "false" for everyone else.
func (h *AdminHandler) Users(c echo.Context) error {
	filter := ports.UserFilter{}
	if v := c.QueryParam("students"); v != "" {
		students := v == "true"
		filter.Students = &students
	}

	users, err := h.admin.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.admin.DeleteUser(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}

func (h *AdminHandler) DisableLoyalty(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.admin.DisableLoyalty(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Loyalty disabled"})
}

func (h *AdminHandler) ResetPoints(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.admin.ResetPoints(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Points reset"})
}

func (h *AdminHandler) RestorePoints(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req restorePointsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.admin.RestorePoints(c.Request().Context(), adminID, c.Param("id"), req.Points); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Points restored"})
}

// CheckExpiry runs the loyalty expiry sweep on demand.
//
// @Summary      Trigger the loyalty expiry sweep
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int
// @Router       /admin/loyalty/check-expiry [post]
func (h *AdminHandler) CheckExpiry(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	expired, err := h.sweep.Run(c.Request().Context(), adminID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"expired_count": expired})
}

// ExpiryLogs returns audit entries from automatic and manual expiry runs.
func (h *AdminHandler) ExpiryLogs(c echo.Context) error {
	entries, err := h.sweep.ExpiryLogs(c.Request().Context(), queryLimit(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Logs returns the full audit trail, newest first.
func (h *AdminHandler) Logs(c echo.Context) error {
	entries, err := h.admin.Logs(c.Request().Context(), queryLimit(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.admin.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func queryLimit(c echo.Context) int {
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultLogLimit
}
