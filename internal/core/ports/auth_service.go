package ports

import (
	"context"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
)

// AuthResult carries a signed token and the authenticated user.
type AuthResult struct {
	Token     string       `json:"token"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// AuthService issues identities. Registering an existing phone number logs
// the user in instead of failing. Every authentication event stamps
// last_visit, re-checks loyalty eligibility, and runs the points decay check.
type AuthService interface {
	Register(ctx context.Context, phone, name string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)
	ChangeAdminPassword(ctx context.Context, adminID, current, next string) error
	ChangeAdminUsername(ctx context.Context, adminID, username, password string) error
}

// DashboardStats summarises the admin console landing page.
type DashboardStats struct {
	TotalUsers   int64 `json:"total_users"`
	ActiveUsers  int64 `json:"active_users"`
	OrdersToday  int64 `json:"orders_today"`
	PointsIssued int64 `json:"points_issued"`
}

// AdminService covers console operations on users and points.
type AdminService interface {
	ListUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	// DeleteUser removes the account and cascades to its bills, orders, and
	// verifications. Audit entries are retained.
	DeleteUser(ctx context.Context, adminID, userID string) error
	DisableLoyalty(ctx context.Context, adminID, userID string) error
	ResetPoints(ctx context.Context, adminID, userID string) error
	RestorePoints(ctx context.Context, adminID, userID string, points int) error
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Logs(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}
