package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

type adminService struct {
	users         ports.UserRepository
	bills         ports.BillRepository
	orders        ports.OrderRepository
	verifications ports.VerificationRepository
	audit         ports.AuditRepository
	logger        zerolog.Logger
	now           func() time.Time
}

// NewAdminService returns the console operations over users and points.
func NewAdminService(
	users ports.UserRepository,
	bills ports.BillRepository,
	orders ports.OrderRepository,
	verifications ports.VerificationRepository,
	audit ports.AuditRepository,
	logger zerolog.Logger,
) ports.AdminService {
	return &adminService{
		users:         users,
		bills:         bills,
		orders:        orders,
		verifications: verifications,
		audit:         audit,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *adminService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	return s.users.List(ctx, filter)
}

// DeleteUser removes the account and cascades to dependent records. Audit
// entries referencing the user are retained.
func (s *adminService) DeleteUser(ctx context.Context, adminID, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.bills.DeleteForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.orders.DeleteForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.verifications.DeleteForUser(ctx, userID); err != nil {
		return err
	}

	s.appendAudit(ctx, domain.ActionUserDeleted, userID, adminID, map[string]any{"user_name": user.Name})
	s.logger.Info().Str("user_id", userID).Str("admin_id", adminID).Msg("user deleted")
	return nil
}

func (s *adminService) DisableLoyalty(ctx context.Context, adminID, userID string) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.SetLoyaltyActive(ctx, userID, false); err != nil {
		return err
	}
	s.appendAudit(ctx, domain.ActionLoyaltyDisabled, userID, adminID, nil)
	return nil
}

func (s *adminService) ResetPoints(ctx context.Context, adminID, userID string) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.SetPoints(ctx, userID, 0); err != nil {
		return err
	}
	s.appendAudit(ctx, domain.ActionPointsReset, userID, adminID, nil)
	return nil
}

func (s *adminService) RestorePoints(ctx context.Context, adminID, userID string, points int) error {
	if points < 0 {
		return domain.Validationf("points must not be negative")
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.SetPoints(ctx, userID, points); err != nil {
		return err
	}
	s.appendAudit(ctx, domain.ActionPointsRestored, userID, adminID, map[string]any{"points": points})
	return nil
}

func (s *adminService) Dashboard(ctx context.Context) (*ports.DashboardStats, error) {
	total, err := s.users.Count(ctx, ports.UserFilter{})
	if err != nil {
		return nil, err
	}
	active, err := s.users.CountByVerificationStatus(ctx, domain.VerificationApproved)
	if err != nil {
		return nil, err
	}
	dayStart := s.now().UTC().Truncate(24 * time.Hour)
	ordersToday, err := s.orders.CountSince(ctx, dayStart)
	if err != nil {
		return nil, err
	}
	points, err := s.users.TotalPoints(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardStats{
		TotalUsers:   total,
		ActiveUsers:  active,
		OrdersToday:  ordersToday,
		PointsIssued: points,
	}, nil
}

func (s *adminService) Logs(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	return s.audit.List(ctx, ports.AuditFilter{Limit: limit})
}

func (s *adminService) appendAudit(ctx context.Context, action, userID, actor string, details map[string]any) {
	entry := &domain.AuditEntry{
		ID:          uuid.NewString(),
		Action:      action,
		UserID:      userID,
		PerformedBy: actor,
		Timestamp:   s.now().UTC(),
		Details:     details,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to append audit entry")
	}
}
