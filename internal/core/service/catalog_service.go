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

type catalogService struct {
	menu     ports.MenuRepository
	coupons  ports.CouponRepository
	settings ports.SettingsRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewCatalogService returns menu, coupon, and shop configuration management.
func NewCatalogService(
	menu ports.MenuRepository,
	coupons ports.CouponRepository,
	settings ports.SettingsRepository,
	logger zerolog.Logger,
) ports.CatalogService {
	return &catalogService{menu: menu, coupons: coupons, settings: settings, logger: logger, now: time.Now}
}

func (s *catalogService) Menu(ctx context.Context, includeUnavailable bool) ([]*domain.MenuItem, error) {
	return s.menu.List(ctx, !includeUnavailable)
}

func (s *catalogService) CreateMenuItem(ctx context.Context, m *domain.MenuItem) error {
	if m.Name == "" || m.Price <= 0 {
		return domain.Validationf("menu item needs a name and a positive price")
	}
	m.ID = uuid.NewString()
	m.Available = true
	return s.menu.Create(ctx, m)
}

func (s *catalogService) UpdateMenuItem(ctx context.Context, m *domain.MenuItem) error {
	return s.menu.Update(ctx, m)
}

func (s *catalogService) DeleteMenuItem(ctx context.Context, id string) error {
	return s.menu.Delete(ctx, id)
}

func (s *catalogService) CreateCoupon(ctx context.Context, c *domain.Coupon) error {
	if c.Code == "" || c.Value <= 0 || c.UsageLimit <= 0 {
		return domain.Validationf("coupon needs a code, a positive value, and a usage limit")
	}
	if _, err := s.coupons.FindByCode(ctx, c.Code, false); err == nil {
		return domain.Conflictf("coupon code %s already exists", c.Code)
	} else if !domain.IsNotFound(err) {
		return err
	}

	c.ID = uuid.NewString()
	c.UsedCount = 0
	c.Active = true
	return s.coupons.Create(ctx, c)
}

func (s *catalogService) ListCoupons(ctx context.Context) ([]*domain.Coupon, error) {
	return s.coupons.List(ctx)
}

func (s *catalogService) SetCouponActive(ctx context.Context, id string, active bool) error {
	return s.coupons.SetActive(ctx, id, active)
}

func (s *catalogService) DeleteCoupon(ctx context.Context, id string) error {
	return s.coupons.Delete(ctx, id)
}

func (s *catalogService) ValidateCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	coupon, err := s.coupons.FindByCode(ctx, code, true)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if coupon.Expired(now) {
		return nil, domain.Validationf("Coupon expired")
	}
	if coupon.Exhausted() {
		return nil, domain.Validationf("Coupon usage limit reached")
	}
	return coupon, nil
}

func (s *catalogService) Settings(ctx context.Context) (*domain.Settings, error) {
	return shopSettings(ctx, s.settings)
}

func (s *catalogService) UpdateSettings(ctx context.Context, cfg *domain.Settings) error {
	return s.settings.Update(ctx, cfg)
}

func (s *catalogService) ShopStatus(ctx context.Context) (*ports.ShopStatus, error) {
	cfg, err := shopSettings(ctx, s.settings)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if now.Weekday() == cfg.WeeklyOffDay {
		return &ports.ShopStatus{IsOpen: false, Message: "Closed (Weekly Off - " + cfg.WeeklyOffDay.String() + ")"}, nil
	}
	return &ports.ShopStatus{IsOpen: true, Message: "Open Now"}, nil
}

func (s *catalogService) AddClosedDay(ctx context.Context, date string) error {
	if _, err := time.Parse(dobLayout, date); err != nil {
		return domain.Validationf("Invalid date format. Use YYYY-MM-DD")
	}
	return s.settings.AddClosedDay(ctx, date)
}

func (s *catalogService) ClosedDays(ctx context.Context) ([]*domain.ClosedDay, error) {
	return s.settings.ListClosedDays(ctx)
}

func (s *catalogService) About(ctx context.Context) (*domain.AboutContent, error) {
	about, err := s.settings.GetAbout(ctx)
	if err != nil {
		if domain.IsNotFound(err) {
			return &domain.AboutContent{
				Title:   "About Our Shop",
				Content: "Welcome to our food shop! We serve delicious meals to college students.",
			}, nil
		}
		return nil, err
	}
	return about, nil
}

func (s *catalogService) UpdateAbout(ctx context.Context, a *domain.AboutContent) error {
	return s.settings.UpdateAbout(ctx, a)
}

func (s *catalogService) ValidateLocation(ctx context.Context, lat, lng float64) (*ports.LocationCheck, error) {
	cfg, err := shopSettings(ctx, s.settings)
	if err != nil {
		return nil, err
	}
	distance := distanceKm(cfg.ShopLatitude, cfg.ShopLongitude, lat, lng)
	within := distance <= cfg.DeliveryRadiusKm
	return &ports.LocationCheck{
		WithinRadius:      within,
		DistanceKm:        math.Round(distance*100) / 100,
		DeliveryAvailable: within,
		ShopAddress:       cfg.ShopAddress,
	}, nil
}
