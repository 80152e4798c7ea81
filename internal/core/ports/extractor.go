package ports

import (
	"context"
	"time"
)

// TextExtractor is the external OCR capability. Implementations absorb
// transport failures and timeouts, returning empty text instead of an error:
// extraction failure is non-fatal to every caller.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) string
}

// DailyBillMarker is an advisory fast-path for the one-bill-per-day rule.
// The store remains authoritative; marker failures are logged and ignored.
type DailyBillMarker interface {
	Seen(ctx context.Context, userID string, day time.Time) (bool, error)
	Mark(ctx context.Context, userID string, day time.Time) error
}
