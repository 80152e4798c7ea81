package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thugozi/foodtruck-api/internal/api/metrics"
	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
	"github.com/thugozi/foodtruck-api/internal/ocr"
)

const billHistoryLimit = 100

type billService struct {
	users     ports.UserRepository
	bills     ports.BillRepository
	ledger    *PointsLedger
	extractor ports.TextExtractor
	marker    ports.DailyBillMarker
	logger    zerolog.Logger
	now       func() time.Time
}

// NewBillService returns the bill loyalty flow implementation.
func NewBillService(
	users ports.UserRepository,
	bills ports.BillRepository,
	ledger *PointsLedger,
	extractor ports.TextExtractor,
	marker ports.DailyBillMarker,
	logger zerolog.Logger,
) ports.BillService {
	return &billService{
		users:     users,
		bills:     bills,
		ledger:    ledger,
		extractor: extractor,
		marker:    marker,
		logger:    logger,
		now:       time.Now,
	}
}

// UploadBill extracts the bill fields, enforces global bill-number
// uniqueness and the ledger rules, then credits the points. Unlike ID upload
// there is no manual-review fallback: extraction failure rejects the upload.
func (s *billService) UploadBill(ctx context.Context, userID string, image []byte) (*ports.BillUploadResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	text := s.extractor.ExtractText(ctx, image)
	fields := ocr.ParseBill(text)
	if !fields.Complete() {
		metrics.BillsProcessedTotal.WithLabelValues("extraction_failed").Inc()
		return nil, domain.Validationf("Could not extract bill information. Please try with a clearer image.")
	}

	// Global dedup: the same receipt must not be claimed twice, even by a
	// different account. The unique index behind Create closes the race.
	if _, err := s.bills.FindByBillNumber(ctx, fields.BillNumber); err == nil {
		metrics.BillsProcessedTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.Conflictf("This bill has already been submitted")
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	now := s.now().UTC()
	points, err := s.ledger.ComputePoints(ctx, user, fields.Amount, now)
	if err != nil {
		metrics.BillsProcessedTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	bill := &domain.LoyaltyBill{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		BillNumber:    fields.BillNumber,
		Amount:        fields.Amount,
		PointsEarned:  points,
		Date:          now,
		Status:        domain.SubmissionApproved,
		ExtractedText: text,
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, err
	}

	if err := s.users.AddPoints(ctx, user.ID, points, now); err != nil {
		return nil, err
	}

	if s.marker != nil {
		if err := s.marker.Mark(ctx, user.ID, now); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to set daily bill marker")
		}
	}

	metrics.BillsProcessedTotal.WithLabelValues("approved").Inc()
	metrics.PointsAwardedTotal.Add(float64(points))

	s.logger.Info().
		Str("user_id", user.ID).
		Str("bill_number", fields.BillNumber).
		Float64("amount", fields.Amount).
		Int("points", points).
		Msg("bill approved")

	return &ports.BillUploadResult{
		PointsEarned: points,
		BillNumber:   fields.BillNumber,
		Amount:       fields.Amount,
	}, nil
}

func (s *billService) Points(ctx context.Context, userID string) (int, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Points, nil
}

func (s *billService) History(ctx context.Context, userID string) ([]*domain.LoyaltyBill, error) {
	return s.bills.ListForUser(ctx, userID, billHistoryLimit)
}
