package ports

import (
	"context"

	"github.com/sharebite/donation-system/internal/core/domain"
)

// Mailer abstracts the notification channel: one message out, success or
// failure back. No retry, no queue.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Geocoder abstracts forward geocoding. A nil result with a nil error means
// the address resolved to nothing; callers must treat errors and empty
// results alike as "no coordinates".
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.Coordinates, error)
}

// ClaimGuard is a best-effort mutual-exclusion check scoped per donation id,
// taken before the claim write path runs.
type ClaimGuard interface {
	// Acquire returns false when another claim already holds the guard for
	// this donation.
	Acquire(ctx context.Context, donationID string) (bool, error)
}
