package ports

import (
	"context"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
)

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	Items           []domain.OrderItem
	DeliveryAddress string
	Latitude        float64
	Longitude       float64
	CouponCode      string
}

// OrderService places and manages orders. Placement validates the delivery
// location against the shop's radius and applies coupon arithmetic.
type OrderService interface {
	Create(ctx context.Context, userID string, in CreateOrderInput) (*domain.Order, error)
	MyOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
	AdminList(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, adminID, orderID string, status domain.OrderStatus) error
}

// LocationCheck is the result of a delivery-radius validation.
type LocationCheck struct {
	WithinRadius      bool    `json:"within_radius"`
	DistanceKm        float64 `json:"distance_km"`
	DeliveryAvailable bool    `json:"delivery_available"`
	ShopAddress       string  `json:"shop_address"`
}

// ShopStatus reports whether the truck is open right now.
type ShopStatus struct {
	IsOpen  bool   `json:"is_open"`
	Message string `json:"message"`
}

// CatalogService covers menu, coupons, settings, closed days, and the
// about page.
type CatalogService interface {
	Menu(ctx context.Context, includeUnavailable bool) ([]*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, m *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, m *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error

	CreateCoupon(ctx context.Context, c *domain.Coupon) error
	ListCoupons(ctx context.Context) ([]*domain.Coupon, error)
	SetCouponActive(ctx context.Context, id string, active bool) error
	DeleteCoupon(ctx context.Context, id string) error
	// ValidateCoupon checks existence, expiry, and usage budget.
	ValidateCoupon(ctx context.Context, code string) (*domain.Coupon, error)

	Settings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, s *domain.Settings) error
	ShopStatus(ctx context.Context) (*ShopStatus, error)
	AddClosedDay(ctx context.Context, date string) error
	ClosedDays(ctx context.Context) ([]*domain.ClosedDay, error)
	About(ctx context.Context) (*domain.AboutContent, error)
	UpdateAbout(ctx context.Context, a *domain.AboutContent) error

	ValidateLocation(ctx context.Context, lat, lng float64) (*LocationCheck, error)
}
