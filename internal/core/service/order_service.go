package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

const orderListLimit = 1000

type orderService struct {
	orders   ports.OrderRepository
	menu     ports.MenuRepository
	coupons  ports.CouponRepository
	settings ports.SettingsRepository
	audit    ports.AuditRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewOrderService returns the order placement and management implementation.
func NewOrderService(
	orders ports.OrderRepository,
	menu ports.MenuRepository,
	coupons ports.CouponRepository,
	settings ports.SettingsRepository,
	audit ports.AuditRepository,
	logger zerolog.Logger,
) ports.OrderService {
	return &orderService{
		orders:   orders,
		menu:     menu,
		coupons:  coupons,
		settings: settings,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// Create validates the delivery location against the shop's radius, prices
// the items, applies an optional coupon, and persists the order.
func (s *orderService) Create(ctx context.Context, userID string, in ports.CreateOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.Validationf("order must contain at least one item")
	}

	cfg, err := shopSettings(ctx, s.settings)
	if err != nil {
		return nil, err
	}

	distance := distanceKm(cfg.ShopLatitude, cfg.ShopLongitude, in.Latitude, in.Longitude)
	if distance > cfg.DeliveryRadiusKm {
		return nil, domain.Validationf("Delivery not available. Location is beyond %.1fkm radius.", cfg.DeliveryRadiusKm)
	}

	total := 0.0
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, domain.Validationf("item quantity must be positive")
		}
		name := "Unknown Item"
		if mi, err := s.menu.FindByID(ctx, item.MenuItemID); err == nil {
			name = mi.Name
		}
		items = append(items, domain.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       name,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
		total += item.Price * float64(item.Quantity)
	}

	now := s.now().UTC()

	discount := 0.0
	if in.CouponCode != "" {
		coupon, err := s.coupons.FindByCode(ctx, in.CouponCode, true)
		switch {
		case err == nil:
			if coupon.Expired(now) {
				return nil, domain.Validationf("Coupon expired")
			}
			if coupon.Exhausted() {
				return nil, domain.Validationf("Coupon usage limit reached")
			}
			if total < coupon.MinOrder {
				return nil, domain.Validationf("Minimum order amount is ₹%.0f", coupon.MinOrder)
			}
			discount = coupon.Discount(total)
			if err := s.coupons.IncrementUsage(ctx, coupon.ID); err != nil {
				return nil, err
			}
		case !domain.IsNotFound(err):
			return nil, err
		}
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		DeliveryFee:     cfg.DeliveryCharge,
		Discount:        discount,
		FinalAmount:     total + cfg.DeliveryCharge - discount,
		DeliveryAddress: in.DeliveryAddress,
		Status:          domain.OrderPending,
		CreatedAt:       now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", userID).
		Float64("final_amount", order.FinalAmount).
		Msg("order placed")
	return order, nil
}

func (s *orderService) MyOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListForUser(ctx, userID, orderListLimit)
}

func (s *orderService) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.orders.FindForUser(ctx, orderID, userID)
}

func (s *orderService) AdminList(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.ListAll(ctx, orderListLimit)
}

func (s *orderService) UpdateStatus(ctx context.Context, adminID, orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return domain.Validationf("invalid order status %q", status)
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	if err := s.orders.SetStatus(ctx, orderID, status, now); err != nil {
		return err
	}

	entry := &domain.AuditEntry{
		ID:          uuid.NewString(),
		Action:      domain.ActionOrderStatusUpdated,
		UserID:      order.UserID,
		PerformedBy: adminID,
		Timestamp:   now,
		Details: map[string]any{
			"order_id":   orderID,
			"old_status": string(order.Status),
			"new_status": string(status),
		},
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("order_id", orderID).Msg("failed to append audit entry")
	}
	return nil
}

// shopSettings returns the stored configuration or the defaults when the
// admin has not saved one yet.
func shopSettings(ctx context.Context, repo ports.SettingsRepository) (*domain.Settings, error) {
	s, err := repo.Get(ctx)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.DefaultSettings(), nil
		}
		return nil, err
	}
	return s, nil
}

const earthRadiusKm = 6371

// distanceKm is the haversine great-circle distance between two points.
func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
