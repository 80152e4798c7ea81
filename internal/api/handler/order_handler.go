package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

// OrderHandler places orders and serves order history; admins can list all
// orders and advance their status.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemRequest struct {
	MenuItemID string  `json:"menu_item_id" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	Price      float64 `json:"price" validate:"required,gt=0"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string             `json:"delivery_address" validate:"required"`
	Latitude        float64            `json:"latitude" validate:"required"`
	Longitude       float64            `json:"longitude" validate:"required"`
	CouponCode      string             `json:"coupon_code"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create places an order for the authenticated user.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Price:      it.Price,
		})
	}

	order, err := h.orders.Create(c.Request().Context(), userID, ports.CreateOrderInput{
		Items:           items,
		DeliveryAddress: req.DeliveryAddress,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		CouponCode:      req.CouponCode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// MyOrders returns the caller's orders, newest first.
func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.MyOrders(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get returns one of the caller's orders.
func (h *OrderHandler) Get(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// AdminList returns every order.
func (h *OrderHandler) AdminList(c echo.Context) error {
	orders, err := h.orders.AdminList(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus advances an order's fulfilment state.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.orders.UpdateStatus(c.Request().Context(), adminID, c.Param("id"), domain.OrderStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Order status updated"})
}
