package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

// MenuHandler serves the public menu and the admin menu CRUD.
type MenuHandler struct {
	catalog ports.CatalogService
}

func NewMenuHandler(catalog ports.CatalogService) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

type menuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Veg         bool    `json:"veg"`
	PrepTime    int     `json:"prep_time"`
	Available   bool    `json:"available"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
}

// List returns the public menu. Unavailable items are never exposed here;
// the admin console uses AdminList for the full catalog.
func (h *MenuHandler) List(c echo.Context) error {
	items, err := h.catalog.Menu(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// AdminList returns every menu item, hidden ones included.
func (h *MenuHandler) AdminList(c echo.Context) error {
	items, err := h.catalog.Menu(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) Create(c echo.Context) error {
	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item := &domain.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Veg:         req.Veg,
		PrepTime:    req.PrepTime,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}
	if err := h.catalog.CreateMenuItem(c.Request().Context(), item); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) Update(c echo.Context) error {
	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item := &domain.MenuItem{
		ID:          c.Param("id"),
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Veg:         req.Veg,
		PrepTime:    req.PrepTime,
		Available:   req.Available,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}
	if err := h.catalog.UpdateMenuItem(c.Request().Context(), item); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteMenuItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Menu item deleted"})
}
