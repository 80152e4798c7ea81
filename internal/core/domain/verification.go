package domain

import "time"

// SubmissionStatus is the resolution state of an uploaded document
// (student ID verification or loyalty bill).
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// StudentIDVerification is one pending-or-resolved ID submission. At most one
// pending submission exists per user; a new upload supersedes the prior one.
// Only an admin approve/reject action mutates it after creation.
type StudentIDVerification struct {
	ID              string           `json:"id" bson:"id"`
	UserID          string           `json:"user_id" bson:"user_id"`
	UserName        string           `json:"user_name" bson:"user_name"`
	UserPhone       string           `json:"user_phone" bson:"user_phone"`
	ExtractedText   string           `json:"extracted_text" bson:"extracted_text"`
	DeclaredDOB     string           `json:"user_provided_dob" bson:"user_provided_dob"`
	OCRDOB          string           `json:"ocr_extracted_dob,omitempty" bson:"ocr_extracted_dob,omitempty"`
	DOBMatch        *bool            `json:"dob_match" bson:"dob_match"` // nil when either DOB is unknown
	ImageData       []byte           `json:"-" bson:"image_data"`
	Status          SubmissionStatus `json:"status" bson:"status"`
	CreatedAt       time.Time        `json:"created_at" bson:"created_at"`
	RejectionReason string           `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
}
