package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SystemActor is the performed_by value for actions taken by the background
// scheduler rather than an authenticated admin.
const SystemActor = "system"

// VerificationStatus tracks a user's progress through the student loyalty
// verification flow.
type VerificationStatus string

const (
	VerificationNotApplied VerificationStatus = "not_applied"
	VerificationNotStarted VerificationStatus = "not_started"
	VerificationPending    VerificationStatus = "pending"
	VerificationApproved   VerificationStatus = "approved"
	VerificationRejected   VerificationStatus = "rejected"
)

// User is the long-lived aggregate, one record per phone number.
//
// Invariants: LoyaltyActive implies IsStudent and a DOB within the
// eligibility window; Points is never negative. Points are mutated only by
// bill uploads (increment) and the decay policy (reset to zero).
type User struct {
	ID                 string             `json:"id" bson:"id"`
	PhoneNumber        string             `json:"phone_number" bson:"phone_number"`
	Name               string             `json:"name" bson:"name"`
	College            string             `json:"college,omitempty" bson:"college,omitempty"`
	DOB                string             `json:"dob,omitempty" bson:"dob,omitempty"` // YYYY-MM-DD
	VerificationStatus VerificationStatus `json:"verification_status" bson:"verification_status"`
	IsStudent          bool               `json:"is_student" bson:"is_student"`
	LoyaltyActive      bool               `json:"loyalty_active" bson:"loyalty_active"`
	Points             int                `json:"points" bson:"points"`
	LastVisit          *time.Time         `json:"last_visit,omitempty" bson:"last_visit,omitempty"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	RejectionReason    string             `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
}

// AdminUser is a console operator credential.
type AdminUser struct {
	ID           string    `json:"id" bson:"id"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
