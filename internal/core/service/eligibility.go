package service

import "time"

const dobLayout = "2006-01-02"

// Loyalty eligibility window, inclusive on both bounds.
const (
	minEligibleAge = 17
	maxEligibleAge = 23
)

// AgeFromDOB computes age in whole years as of now; a birthday that has not
// yet occurred this year does not count. Returns 0 when dob is not a valid
// YYYY-MM-DD date. Callers must treat 0 as ineligible, never as a real age.
func AgeFromDOB(dob string, now time.Time) int {
	d, err := time.Parse(dobLayout, dob)
	if err != nil {
		return 0
	}
	age := now.Year() - d.Year()
	if now.Month() < d.Month() || (now.Month() == d.Month() && now.Day() < d.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// IsEligible reports whether the computed age falls inside the student
// loyalty window. Eligibility changes with the passage of time alone, so it
// is always recomputed, never cached.
func IsEligible(dob string, now time.Time) bool {
	age := AgeFromDOB(dob, now)
	return age >= minEligibleAge && age <= maxEligibleAge
}
