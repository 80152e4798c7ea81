package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thugozi/foodtruck-api/internal/api/metrics"
	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

type sweepService struct {
	users  ports.UserRepository
	audit  ports.AuditRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewSweepService returns the expiry sweep shared by the background
// scheduler and the on-demand admin trigger.
func NewSweepService(users ports.UserRepository, audit ports.AuditRepository, logger zerolog.Logger) ports.SweepService {
	return &sweepService{users: users, audit: audit, logger: logger, now: time.Now}
}

// Run re-evaluates every active-loyalty student and deactivates those aged
// out, writing one audit entry per deactivation. Actor is SystemActor for
// scheduled runs or the admin's id for manual ones.
func (s *sweepService) Run(ctx context.Context, actor string) (int, error) {
	start := s.now()
	now := start.UTC()

	students, err := s.users.ListActiveStudents(ctx)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, student := range students {
		if IsEligible(student.DOB, now) {
			continue
		}

		if err := s.users.SetLoyaltyActive(ctx, student.ID, false); err != nil {
			return expired, err
		}

		entry := &domain.AuditEntry{
			ID:          uuid.NewString(),
			Action:      domain.ActionLoyaltyAutoExpired,
			UserID:      student.ID,
			PerformedBy: actor,
			Timestamp:   now,
			Details: map[string]any{
				"reason":    "User turned 24",
				"user_name": student.Name,
				"dob":       student.DOB,
				"age":       AgeFromDOB(student.DOB, now),
			},
		}
		if err := s.audit.Append(ctx, entry); err != nil {
			s.logger.Warn().Err(err).Str("user_id", student.ID).Msg("failed to append expiry audit entry")
		}

		expired++
		metrics.LoyaltyExpiredTotal.Inc()
		s.logger.Info().
			Str("user_id", student.ID).
			Str("name", student.Name).
			Msg("loyalty auto-expired, user turned 24")
	}

	// Manual runs leave a trace entry even when no one expired.
	if actor != domain.SystemActor {
		entry := &domain.AuditEntry{
			ID:          uuid.NewString(),
			Action:      domain.ActionLoyaltyExpiryManualRun,
			PerformedBy: actor,
			Timestamp:   now,
			Details:     map[string]any{"expired_count": expired},
		}
		if err := s.audit.Append(ctx, entry); err != nil {
			s.logger.Warn().Err(err).Msg("failed to append manual sweep audit entry")
		}
	}

	metrics.SweepDuration.Observe(time.Since(start).Seconds())
	s.logger.Info().Int("checked", len(students)).Int("expired", expired).Msg("loyalty expiry sweep complete")
	return expired, nil
}

// ExpiryLogs returns expiry-related audit entries, newest first.
func (s *sweepService) ExpiryLogs(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	return s.audit.List(ctx, ports.AuditFilter{
		Actions: []string{domain.ActionLoyaltyAutoExpired, domain.ActionLoyaltyExpiryManualRun},
		Limit:   limit,
	})
}
