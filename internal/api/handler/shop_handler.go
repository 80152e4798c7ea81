package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

// ShopHandler serves shop configuration: settings, open/closed status,
// delivery location checks, coupons, closed days, and the about page.
type ShopHandler struct {
	catalog ports.CatalogService
}

func NewShopHandler(catalog ports.CatalogService) *ShopHandler {
	return &ShopHandler{catalog: catalog}
}

type settingsRequest struct {
	DeliveryCharge   float64 `json:"delivery_charge" validate:"gte=0"`
	DeliveryRadiusKm float64 `json:"delivery_radius_km" validate:"gt=0"`
	ShopName         string  `json:"shop_name" validate:"required"`
	ShopTagline      string  `json:"shop_tagline"`
	ShopLatitude     float64 `json:"shop_latitude" validate:"required"`
	ShopLongitude    float64 `json:"shop_longitude" validate:"required"`
	ShopAddress      string  `json:"shop_address"`
	PaymentInfo      string  `json:"payment_info"`
	WeeklyOffDay     int     `json:"weekly_off_day" validate:"gte=0,lte=6"` // time.Weekday: 0=Sunday
}

type couponRequest struct {
	Code       string  `json:"code" validate:"required"`
	Type       string  `json:"type" validate:"required,oneof=flat percentage"`
	Value      float64 `json:"value" validate:"required,gt=0"`
	MinOrder   float64 `json:"min_order" validate:"gte=0"`
	ExpiryDate string  `json:"expiry_date" validate:"required"` // YYYY-MM-DD
	UsageLimit int     `json:"usage_limit" validate:"required,gt=0"`
}

type closedDayRequest struct {
	Date string `json:"date" validate:"required"` // YYYY-MM-DD
}

type aboutRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Settings returns the shop configuration (defaults when unset).
func (h *ShopHandler) Settings(c echo.Context) error {
	cfg, err := h.catalog.Settings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *ShopHandler) UpdateSettings(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cfg := &domain.Settings{
		DeliveryCharge:   req.DeliveryCharge,
		DeliveryRadiusKm: req.DeliveryRadiusKm,
		ShopName:         req.ShopName,
		ShopTagline:      req.ShopTagline,
		ShopLatitude:     req.ShopLatitude,
		ShopLongitude:    req.ShopLongitude,
		ShopAddress:      req.ShopAddress,
		PaymentInfo:      req.PaymentInfo,
		WeeklyOffDay:     time.Weekday(req.WeeklyOffDay),
	}
	if err := h.catalog.UpdateSettings(c.Request().Context(), cfg); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

// Status reports whether the truck is open right now.
func (h *ShopHandler) Status(c echo.Context) error {
	status, err := h.catalog.ShopStatus(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

// ValidateLocation checks a delivery point against the shop's radius.
func (h *ShopHandler) ValidateLocation(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat is required")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lng is required")
	}

	check, err := h.catalog.ValidateLocation(c.Request().Context(), lat, lng)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, check)
}

// ValidateCoupon checks a code for the authenticated customer.
func (h *ShopHandler) ValidateCoupon(c echo.Context) error {
	coupon, err := h.catalog.ValidateCoupon(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coupon)
}

func (h *ShopHandler) CreateCoupon(c echo.Context) error {
	var req couponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	}

	coupon := &domain.Coupon{
		Code:     req.Code,
		Type:     domain.CouponType(req.Type),
		Value:    req.Value,
		MinOrder: req.MinOrder,
		// valid through the end of the stated day
		ExpiryDate: expiry.Add(24*time.Hour - time.Second),
		UsageLimit: req.UsageLimit,
	}
	if err := h.catalog.CreateCoupon(c.Request().Context(), coupon); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, coupon)
}

func (h *ShopHandler) ListCoupons(c echo.Context) error {
	coupons, err := h.catalog.ListCoupons(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coupons)
}

func (h *ShopHandler) SetCouponActive(c echo.Context) error {
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.catalog.SetCouponActive(c.Request().Context(), c.Param("id"), req.Active); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Coupon updated"})
}

func (h *ShopHandler) DeleteCoupon(c echo.Context) error {
	if err := h.catalog.DeleteCoupon(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Coupon deleted"})
}

func (h *ShopHandler) AddClosedDay(c echo.Context) error {
	var req closedDayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.catalog.AddClosedDay(c.Request().Context(), req.Date); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Closed day added"})
}

func (h *ShopHandler) ClosedDays(c echo.Context) error {
	days, err := h.catalog.ClosedDays(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, days)
}

func (h *ShopHandler) About(c echo.Context) error {
	about, err := h.catalog.About(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, about)
}

func (h *ShopHandler) UpdateAbout(c echo.Context) error {
	var req aboutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	about := &domain.AboutContent{Title: req.Title, Content: req.Content}
	if err := h.catalog.UpdateAbout(c.Request().Context(), about); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, about)
}
