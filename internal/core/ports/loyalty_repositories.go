package ports

import (
	"context"
	"time"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
)

// VerificationRepository persists student ID submissions.
type VerificationRepository interface {
	Create(ctx context.Context, v *domain.StudentIDVerification) error
	FindByID(ctx context.Context, id string) (*domain.StudentIDVerification, error)
	ListPending(ctx context.Context) ([]*domain.StudentIDVerification, error)
	// DeletePendingForUser removes any not-yet-resolved submission so a new
	// upload supersedes it.
	DeletePendingForUser(ctx context.Context, userID string) error
	SetStatus(ctx context.Context, id string, status domain.SubmissionStatus, reason string) error
	DeleteForUser(ctx context.Context, userID string) error
}

// BillRepository persists the loyalty bill ledger.
type BillRepository interface {
	// Create inserts the bill. It returns a ConflictError when the bill number
	// already exists (backed by a unique index, closing the double-submit race).
	Create(ctx context.Context, b *domain.LoyaltyBill) error
	FindByBillNumber(ctx context.Context, billNumber string) (*domain.LoyaltyBill, error)
	// ExistsForUserSince reports whether the user has any bill with a
	// submission timestamp at or after since.
	ExistsForUserSince(ctx context.Context, userID string, since time.Time) (bool, error)
	// ListForUser returns the user's bills, newest first.
	ListForUser(ctx context.Context, userID string, limit int) ([]*domain.LoyaltyBill, error)
	DeleteForUser(ctx context.Context, userID string) error
}

// AuditFilter narrows an audit log query. Empty Actions means all kinds.
type AuditFilter struct {
	Actions []string
	Limit   int
}

// AuditRepository is the append-only trace log.
type AuditRepository interface {
	Append(ctx context.Context, e *domain.AuditEntry) error
	// List returns entries newest first.
	List(ctx context.Context, filter AuditFilter) ([]*domain.AuditEntry, error)
}
