package domain

import "time"

// LoyaltyBill is one successfully parsed bill submission. BillNumber is
// globally unique across all users and acts as the dedup key. Records are
// auto-approved on successful extraction and immutable thereafter.
type LoyaltyBill struct {
	ID            string           `json:"id" bson:"id"`
	UserID        string           `json:"user_id" bson:"user_id"`
	BillNumber    string           `json:"bill_number" bson:"bill_number"`
	Amount        float64          `json:"amount" bson:"amount"`
	PointsEarned  int              `json:"points_earned" bson:"points_earned"`
	Date          time.Time        `json:"date" bson:"date"`
	Status        SubmissionStatus `json:"status" bson:"status"`
	ExtractedText string           `json:"extracted_text,omitempty" bson:"extracted_text,omitempty"`
}
