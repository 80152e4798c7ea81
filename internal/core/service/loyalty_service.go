package service

import (
	"bytes"
	"context"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thugozi/foodtruck-api/internal/api/metrics"
	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
	"github.com/thugozi/foodtruck-api/internal/ocr"
)

// minOCRTextLen is the shortest extracted text worth scanning for a DOB.
const minOCRTextLen = 10

type loyaltyService struct {
	users         ports.UserRepository
	verifications ports.VerificationRepository
	audit         ports.AuditRepository
	extractor     ports.TextExtractor
	logger        zerolog.Logger
	now           func() time.Time
}

// NewLoyaltyService returns the student verification flow implementation.
func NewLoyaltyService(
	users ports.UserRepository,
	verifications ports.VerificationRepository,
	audit ports.AuditRepository,
	extractor ports.TextExtractor,
	logger zerolog.Logger,
) ports.LoyaltyService {
	return &loyaltyService{
		users:         users,
		verifications: verifications,
		audit:         audit,
		extractor:     extractor,
		logger:        logger,
		now:           time.Now,
	}
}

// Apply registers the user as a student loyalty applicant. Re-application is
// rejected once student status is set; a rejected user resubmits by uploading
// a new ID instead.
func (s *loyaltyService) Apply(ctx context.Context, userID, college, dob string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsStudent {
		return domain.Conflictf("You have already applied for student loyalty")
	}

	if _, err := time.Parse(dobLayout, dob); err != nil {
		return domain.Validationf("Invalid date format. Use YYYY-MM-DD")
	}
	now := s.now().UTC()
	if !IsEligible(dob, now) {
		return domain.Validationf("Age must be between 17-23 years. Your age: %d", AgeFromDOB(dob, now))
	}

	if err := s.users.ApplyLoyalty(ctx, userID, college, dob); err != nil {
		return err
	}

	s.appendAudit(ctx, domain.ActionLoyaltyApplied, userID, userID, map[string]any{
		"college": college,
		"age":     AgeFromDOB(dob, now),
	})

	s.logger.Info().Str("user_id", userID).Str("college", college).Msg("student loyalty application started")
	return nil
}

// UploadStudentID accepts an ID image and queues it for admin review. A
// payload that does not decode as an image is reported as a structured
// failure, not an error; OCR failure degrades to manual review.
func (s *loyaltyService) UploadStudentID(ctx context.Context, userID string, image []byte) (*ports.UploadIDResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsStudent {
		return nil, domain.Validationf("Please apply for student loyalty first from your Profile page")
	}

	if _, err := imaging.Decode(bytes.NewReader(image)); err != nil {
		return &ports.UploadIDResult{
			Accepted: false,
			Message:  "Invalid image file. Please upload a valid image (JPG, PNG, etc.)",
		}, nil
	}

	now := s.now().UTC()

	text := s.extractor.ExtractText(ctx, image)
	ocrDOB := ""
	if len(text) >= minOCRTextLen {
		ocrDOB, _ = ocr.ParseDOB(text)
	}

	var dobMatch *bool
	if ocrDOB != "" && user.DOB != "" {
		match := ocrDOB == user.DOB
		dobMatch = &match
	}

	extractedText := text
	if extractedText == "" {
		extractedText = "OCR not available"
	}

	verification := &domain.StudentIDVerification{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		UserName:      user.Name,
		UserPhone:     user.PhoneNumber,
		ExtractedText: extractedText,
		DeclaredDOB:   user.DOB,
		OCRDOB:        ocrDOB,
		DOBMatch:      dobMatch,
		ImageData:     image,
		Status:        domain.SubmissionPending,
		CreatedAt:     now,
	}

	// At most one pending verification per user; this upload supersedes it.
	if err := s.verifications.DeletePendingForUser(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := s.verifications.Create(ctx, verification); err != nil {
		return nil, err
	}
	if err := s.users.SetVerificationPending(ctx, user.ID); err != nil {
		return nil, err
	}

	s.appendAudit(ctx, domain.ActionStudentIDUploaded, user.ID, user.ID, map[string]any{
		"ocr_dob": ocrDOB,
		"match":   dobMatch,
	})
	metrics.VerificationsTotal.WithLabelValues("uploaded").Inc()

	s.logger.Info().
		Str("user_id", user.ID).
		Bool("dob_detected", ocrDOB != "").
		Msg("student id uploaded")

	return &ports.UploadIDResult{
		Accepted: true,
		Message:  "Student ID uploaded successfully. Admin will review it shortly.",
		Feedback: &ports.OCRFeedback{
			DOBDetected: ocrDOB != "",
			DOBMatch:    dobMatch,
			Age:         AgeFromDOB(user.DOB, now),
		},
	}, nil
}

// Approve resolves a verification. Eligibility is recomputed from the user's
// stored DOB, not the OCR value; the verification can end up approved while
// loyalty stays inactive if the user has aged out since applying.
func (s *loyaltyService) Approve(ctx context.Context, adminID, verificationID string) (*ports.ApproveResult, error) {
	verification, err := s.verifications.FindByID(ctx, verificationID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, verification.UserID)
	if err != nil {
		return nil, err
	}

	eligible := user.DOB != "" && IsEligible(user.DOB, s.now().UTC())

	if err := s.verifications.SetStatus(ctx, verificationID, domain.SubmissionApproved, ""); err != nil {
		return nil, err
	}
	if err := s.users.ApproveVerification(ctx, user.ID, eligible); err != nil {
		return nil, err
	}

	s.appendAudit(ctx, domain.ActionVerificationApproved, user.ID, adminID, map[string]any{
		"verification_id":  verificationID,
		"loyalty_eligible": eligible,
	})
	metrics.VerificationsTotal.WithLabelValues("approved").Inc()

	s.logger.Info().
		Str("user_id", user.ID).
		Str("verification_id", verificationID).
		Bool("loyalty_active", eligible).
		Msg("verification approved")

	return &ports.ApproveResult{LoyaltyActive: eligible}, nil
}

func (s *loyaltyService) Reject(ctx context.Context, adminID, verificationID, reason string) error {
	verification, err := s.verifications.FindByID(ctx, verificationID)
	if err != nil {
		return err
	}

	userReason := reason
	if userReason == "" {
		userReason = "Student ID verification rejected by admin"
	}

	if err := s.verifications.SetStatus(ctx, verificationID, domain.SubmissionRejected, reason); err != nil {
		return err
	}
	if err := s.users.RejectVerification(ctx, verification.UserID, userReason); err != nil {
		return err
	}

	s.appendAudit(ctx, domain.ActionVerificationRejected, verification.UserID, adminID, map[string]any{
		"verification_id": verificationID,
		"reason":          reason,
	})
	metrics.VerificationsTotal.WithLabelValues("rejected").Inc()

	s.logger.Info().
		Str("user_id", verification.UserID).
		Str("verification_id", verificationID).
		Msg("verification rejected")
	return nil
}

func (s *loyaltyService) PendingVerifications(ctx context.Context) ([]*domain.StudentIDVerification, error) {
	return s.verifications.ListPending(ctx)
}

// appendAudit writes a trace entry; audit failure is logged, never fatal.
func (s *loyaltyService) appendAudit(ctx context.Context, action, userID, actor string, details map[string]any) {
	entry := &domain.AuditEntry{
		ID:          uuid.NewString(),
		Action:      action,
		UserID:      userID,
		PerformedBy: actor,
		Timestamp:   s.now().UTC(),
		Details:     details,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to append audit entry")
	}
}
