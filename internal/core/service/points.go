package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

// Reward tiers: [100, 200) earns one point, 200 and above earns two.
const (
	tierOneAmount = 100
	tierTwoAmount = 200
)

// missThreshold is how many missed open days zero a point balance.
const missThreshold = 3

// PointsLedger holds the accrual, daily-limit, and decay rules. It is called
// from the bill upload flow (ComputePoints) and from every authentication
// event (DecayCheck).
type PointsLedger struct {
	users    ports.UserRepository
	bills    ports.BillRepository
	settings ports.SettingsRepository
	marker   ports.DailyBillMarker
	logger   zerolog.Logger
}

func NewPointsLedger(
	users ports.UserRepository,
	bills ports.BillRepository,
	settings ports.SettingsRepository,
	marker ports.DailyBillMarker,
	logger zerolog.Logger,
) *PointsLedger {
	return &PointsLedger{users: users, bills: bills, settings: settings, marker: marker, logger: logger}
}

// ComputePoints validates that the user may earn a reward right now and
// returns the tier amount. It re-runs the expiry check for this single user
// because the age may have crossed 24 since the last sweep.
func (l *PointsLedger) ComputePoints(ctx context.Context, user *domain.User, amount float64, now time.Time) (int, error) {
	if !user.IsStudent || !user.LoyaltyActive {
		return 0, domain.Permissionf("Loyalty program not active for this account")
	}

	if !IsEligible(user.DOB, now) {
		if err := l.users.SetLoyaltyActive(ctx, user.ID, false); err != nil {
			return 0, err
		}
		user.LoyaltyActive = false
		l.logger.Info().Str("user_id", user.ID).Msg("loyalty disabled, user aged out")
		return 0, domain.Permissionf("You have aged out of the student loyalty program")
	}

	dayStart := now.UTC().Truncate(24 * time.Hour)

	// Advisory fast path; the store query below stays authoritative.
	if l.marker != nil {
		seen, err := l.marker.Seen(ctx, user.ID, dayStart)
		if err != nil {
			l.logger.Warn().Err(err).Str("user_id", user.ID).Msg("daily marker check failed, falling back to store")
		} else if seen {
			return 0, domain.Conflictf("Only one bill per day is allowed")
		}
	}

	exists, err := l.bills.ExistsForUserSince(ctx, user.ID, dayStart)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, domain.Conflictf("Only one bill per day is allowed")
	}

	return tierPoints(amount), nil
}

func tierPoints(amount float64) int {
	switch {
	case amount >= tierTwoAmount:
		return 2
	case amount >= tierOneAmount:
		return 1
	default:
		return 0
	}
}

// DecayCheck walks the calendar from the day after the user's last visit to
// now. Every day except the shop's weekly off day counts as a miss; at three
// misses the point balance is reset to zero and the walk stops. Admin-declared
// ad-hoc closed days are stored as data but do not reduce the miss count.
func (l *PointsLedger) DecayCheck(ctx context.Context, user *domain.User, now time.Time) error {
	if user.LastVisit == nil {
		return nil
	}

	offDay := l.weeklyOffDay(ctx)
	missed := 0
	for d := user.LastVisit.AddDate(0, 0, 1); d.Before(now); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == offDay {
			continue
		}
		missed++
		if missed >= missThreshold {
			if err := l.users.SetPoints(ctx, user.ID, 0); err != nil {
				return err
			}
			user.Points = 0
			l.logger.Info().Str("user_id", user.ID).Msg("points reset after missed open days")
			return nil
		}
	}
	return nil
}

func (l *PointsLedger) weeklyOffDay(ctx context.Context) time.Weekday {
	s, err := l.settings.Get(ctx)
	if err != nil {
		if !domain.IsNotFound(err) {
			l.logger.Warn().Err(err).Msg("settings unavailable, using default weekly off day")
		}
		return domain.DefaultSettings().WeeklyOffDay
	}
	return s.WeeklyOffDay
}
