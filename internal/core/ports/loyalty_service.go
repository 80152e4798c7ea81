package ports

import (
	"context"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
)

// OCRFeedback is the advisory result returned to the uploader after a
// student ID submission. The admin decision remains authoritative.
type OCRFeedback struct {
	DOBDetected bool  `json:"dob_detected"`
	DOBMatch    *bool `json:"dob_match"` // nil when either DOB is unknown
	Age         int   `json:"age"`
}

// UploadIDResult is the tolerant outcome of a student ID upload. Accepted is
// false for non-image payloads; that is reported as a structured failure, not
// an error.
type UploadIDResult struct {
	Accepted bool         `json:"success"`
	Message  string       `json:"message"`
	Feedback *OCRFeedback `json:"ocr_feedback,omitempty"`
}

// ApproveResult reports whether approval actually activated loyalty; a
// verification can be approved while the user has already aged out.
type ApproveResult struct {
	LoyaltyActive bool `json:"loyalty_active"`
}

// LoyaltyService orchestrates the student verification flow.
type LoyaltyService interface {
	// Apply registers the user as a student loyalty applicant.
	Apply(ctx context.Context, userID, college, dob string) error
	// UploadStudentID accepts an ID image, runs best-effort OCR, and queues
	// the submission for admin review.
	UploadStudentID(ctx context.Context, userID string, image []byte) (*UploadIDResult, error)
	Approve(ctx context.Context, adminID, verificationID string) (*ApproveResult, error)
	Reject(ctx context.Context, adminID, verificationID, reason string) error
	PendingVerifications(ctx context.Context) ([]*domain.StudentIDVerification, error)
}

// BillUploadResult is returned to the caller after a successful bill upload.
type BillUploadResult struct {
	PointsEarned int     `json:"points_earned"`
	BillNumber   string  `json:"bill_number"`
	Amount       float64 `json:"amount"`
}

// BillService orchestrates the bill loyalty flow.
type BillService interface {
	UploadBill(ctx context.Context, userID string, image []byte) (*BillUploadResult, error)
	Points(ctx context.Context, userID string) (int, error)
	// History returns the user's bills, newest first.
	History(ctx context.Context, userID string) ([]*domain.LoyaltyBill, error)
}

// SweepService re-evaluates every active-loyalty student and deactivates
// those aged out. Shared by the background scheduler (actor SystemActor) and
// the on-demand admin trigger (actor = admin id).
type SweepService interface {
	// Run returns the number of users deactivated.
	Run(ctx context.Context, actor string) (int, error)
	ExpiryLogs(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}
