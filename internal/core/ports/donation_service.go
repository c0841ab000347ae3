package ports

import (
	"context"

	"github.com/sharebite/donation-system/internal/core/domain"
)

// CreateDonationInput carries all caller-supplied donation fields. The id,
// timestamp and coordinates are assigned by the service.
type CreateDonationInput struct {
	Category        string
	FoodName        string
	GeocodeLocation string
	DisplayAddress  string
	Phone           string
	Count           int
	Note            string
	DonorEmail      string
}

// DonationResult is returned by the service after creating a donation.
type DonationResult struct {
	ID        string
	Timestamp int64
	// Geocoded is false when the address could not be resolved; creation
	// succeeds either way.
	Geocoded bool
}

// DonationService defines use-case operations for the donation lifecycle.
type DonationService interface {
	CreateDonation(ctx context.Context, input CreateDonationInput) (*DonationResult, error)
	ListUnclaimed(ctx context.Context) ([]*domain.Donation, error)
}

// ClaimDonationInput carries the receiver identity for a claim request.
type ClaimDonationInput struct {
	DonationID    string
	ReceiverName  string
	ReceiverEmail string
	ReceiverPhone string
}

// ClaimService arbitrates claims. ClaimDonation is the only operation that
// mutates a donation's claimed flag.
type ClaimService interface {
	ClaimDonation(ctx context.Context, input ClaimDonationInput) error
}

// AlertService performs the deferred notification and retention work. All
// methods absorb collaborator failures; nothing here reaches a caller.
type AlertService interface {
	// SendDonationAlert mails every receiver-role user about a new donation
	// and returns the number of successful sends.
	SendDonationAlert(ctx context.Context, d *domain.Donation) int
	// SendDonorClaimedMail tells the donor who claimed their item.
	SendDonorClaimedMail(ctx context.Context, d *domain.Donation, c *domain.Claim) error
	// SendReceiverClaimedMail confirms the claim to the receiver.
	SendReceiverClaimedMail(ctx context.Context, d *domain.Donation, c *domain.Claim) error
	// CleanupOldDonations purges donations older than the retention window
	// and returns the number deleted.
	CleanupOldDonations(ctx context.Context) (int, error)
}
