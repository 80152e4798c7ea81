package ports

import (
	"context"
	"time"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
)

// UserFilter narrows a user listing. Students is a tri-state: nil = all,
// true = loyalty applicants only, false = everyone else.
type UserFilter struct {
	Students *bool
}

// UserRepository defines persistence for the users collection. Mutations are
// single-document atomic updates ($set / $inc); the store offers no
// multi-document transactions.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	// ListActiveStudents returns users with is_student=true, loyalty_active=true
	// and a non-empty DOB, the expiry sweep working set.
	ListActiveStudents(ctx context.Context) ([]*domain.User, error)

	// ApplyLoyalty marks the user a student applicant with the given college
	// and DOB, resetting verification to not_started and loyalty to inactive.
	ApplyLoyalty(ctx context.Context, id, college, dob string) error
	SetVerificationPending(ctx context.Context, id string) error
	// ApproveVerification sets verification_status=approved, loyalty_active as
	// given, and clears any rejection reason.
	ApproveVerification(ctx context.Context, id string, loyaltyActive bool) error
	RejectVerification(ctx context.Context, id, reason string) error
	SetLoyaltyActive(ctx context.Context, id string, active bool) error

	// AddPoints atomically increments the point balance and stamps last_visit.
	AddPoints(ctx context.Context, id string, points int, lastVisit time.Time) error
	SetPoints(ctx context.Context, id string, points int) error
	SetLastVisit(ctx context.Context, id string, t time.Time) error

	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter UserFilter) (int64, error)
	CountByVerificationStatus(ctx context.Context, status domain.VerificationStatus) (int64, error)
	TotalPoints(ctx context.Context) (int64, error)
}
