package domain

import "time"

// Audit action kinds. Every loyalty-state-changing operation appends one.
const (
	ActionLoyaltyApplied          = "student_loyalty_applied"
	ActionStudentIDUploaded       = "student_id_uploaded"
	ActionVerificationApproved    = "verification_approved"
	ActionVerificationRejected    = "verification_rejected"
	ActionLoyaltyAutoExpired      = "loyalty_auto_expired"
	ActionLoyaltyExpiryManualRun  = "loyalty_expiry_manual_check"
	ActionLoyaltyDisabled         = "loyalty_disabled"
	ActionPointsReset             = "points_reset"
	ActionPointsRestored          = "points_restored"
	ActionUserDeleted             = "user_deleted"
	ActionOrderStatusUpdated      = "order_status_updated"
)

// AuditEntry is an append-only trace record. Entries are never mutated or
// deleted and outlive the user they reference.
type AuditEntry struct {
	ID          string         `json:"id" bson:"id"`
	Action      string         `json:"action" bson:"action"`
	UserID      string         `json:"user_id,omitempty" bson:"user_id,omitempty"` // empty for system-wide actions
	PerformedBy string         `json:"performed_by" bson:"performed_by"`           // admin id or SystemActor
	Timestamp   time.Time      `json:"timestamp" bson:"timestamp"`
	Details     map[string]any `json:"details,omitempty" bson:"details,omitempty"`
}
