package ports

import (
	"context"

	"github.com/sharebite/donation-system/internal/core/domain"
)

// DonationRepository defines persistence operations for donations.
type DonationRepository interface {
	// Create inserts a new donation and returns its store-assigned id.
	Create(ctx context.Context, d *domain.Donation) (string, error)
	// FindByID retrieves a donation by id. Returns domain.ErrDonationNotFound
	// when no document matches.
	FindByID(ctx context.Context, id string) (*domain.Donation, error)
	// FindUnclaimed returns all donations with claimed=false.
	FindUnclaimed(ctx context.Context) ([]*domain.Donation, error)
	// FindOlderThan returns all donations created strictly before cutoff
	// (milliseconds since epoch), claimed or not.
	FindOlderThan(ctx context.Context, cutoff int64) ([]*domain.Donation, error)
	// MarkClaimed flips the claimed flag to true only if it is currently
	// false. Returns domain.ErrDonationAlreadyClaimed when the conditional
	// update matches no document.
	MarkClaimed(ctx context.Context, id string) error
	// Delete removes a donation by id.
	Delete(ctx context.Context, id string) error
}

// ClaimRepository defines persistence operations for claim audit records.
// Claims are append-only: there is no update or delete.
type ClaimRepository interface {
	Create(ctx context.Context, c *domain.Claim) (string, error)
	FindByDonationID(ctx context.Context, donationID string) ([]*domain.Claim, error)
}

// UserRepository reads role-tagged identities. User records are owned by an
// external registration subsystem.
type UserRepository interface {
	// FindReceiverEmails returns the email addresses of all users carrying
	// the receiver role. Users without an email field are skipped.
	FindReceiverEmails(ctx context.Context) ([]string, error)
}
