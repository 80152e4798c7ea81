package ports

import (
	"context"
	"time"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
)

// AdminRepository persists console operator credentials.
type AdminRepository interface {
	Create(ctx context.Context, a *domain.AdminUser) error
	FindByID(ctx context.Context, id string) (*domain.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateUsername(ctx context.Context, id, username string) error
}

// MenuRepository persists menu items.
type MenuRepository interface {
	Create(ctx context.Context, m *domain.MenuItem) error
	FindByID(ctx context.Context, id string) (*domain.MenuItem, error)
	// List returns menu items; availableOnly filters out hidden items.
	List(ctx context.Context, availableOnly bool) ([]*domain.MenuItem, error)
	Update(ctx context.Context, m *domain.MenuItem) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository persists orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	// FindForUser returns the order only if it belongs to userID.
	FindForUser(ctx context.Context, id, userID string) (*domain.Order, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]*domain.Order, error)
	ListAll(ctx context.Context, limit int) ([]*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error
	CountSince(ctx context.Context, since time.Time) (int64, error)
	DeleteForUser(ctx context.Context, userID string) error
}

// CouponRepository persists discount codes.
type CouponRepository interface {
	Create(ctx context.Context, c *domain.Coupon) error
	FindByCode(ctx context.Context, code string, activeOnly bool) (*domain.Coupon, error)
	List(ctx context.Context) ([]*domain.Coupon, error)
	SetActive(ctx context.Context, id string, active bool) error
	// IncrementUsage atomically bumps used_count.
	IncrementUsage(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// SettingsRepository holds the single shop configuration document plus the
// ad-hoc closed days and about-page content.
type SettingsRepository interface {
	// Get returns the stored settings, or a NotFoundError when none saved yet.
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, s *domain.Settings) error
	AddClosedDay(ctx context.Context, date string) error
	ListClosedDays(ctx context.Context) ([]*domain.ClosedDay, error)
	GetAbout(ctx context.Context) (*domain.AboutContent, error)
	UpdateAbout(ctx context.Context, a *domain.AboutContent) error
}
