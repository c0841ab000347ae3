package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharebite/donation-system/internal/core/domain"
	"github.com/sharebite/donation-system/internal/core/ports"
)

type claimService struct {
	donations ports.DonationRepository
	claims    ports.ClaimRepository
	guard     ports.ClaimGuard
	queue     ports.TaskQueue
	log       zerolog.Logger
}

// NewClaimService returns a ClaimService implementation.
func NewClaimService(
	donations ports.DonationRepository,
	claims ports.ClaimRepository,
	guard ports.ClaimGuard,
	queue ports.TaskQueue,
	log zerolog.Logger,
) ports.ClaimService {
	return &claimService{
		donations: donations,
		claims:    claims,
		guard:     guard,
		queue:     queue,
		log:       log,
	}
}

// ClaimDonation arbitrates a claim. The claim record is written before the
// claimed flag flips, so a crash in between still leaves an audit trail. The
// flip itself is a conditional update: only one claimant can win it, every
// other concurrent attempt gets ErrDonationAlreadyClaimed.
func (s *claimService) ClaimDonation(ctx context.Context, input ports.ClaimDonationInput) error {
	// 1. The donation must exist and still be open.
	donation, err := s.donations.FindByID(ctx, input.DonationID)
	if err != nil {
		return err
	}
	if donation.Claimed {
		return domain.ErrDonationAlreadyClaimed
	}

	// 2. Per-donation guard. Refusal means another claim is in flight; a
	// guard backend failure only downgrades us to the conditional update.
	acquired, err := s.guard.Acquire(ctx, input.DonationID)
	if err != nil {
		s.log.Warn().Err(err).Str("donation_id", input.DonationID).Msg("claim guard unavailable, relying on conditional update")
	} else if !acquired {
		return domain.ErrDonationAlreadyClaimed
	}

	// 3. Append the audit record with a denormalized donation snapshot.
	claim := &domain.Claim{
		DonationID:    input.DonationID,
		ReceiverName:  input.ReceiverName,
		ReceiverEmail: input.ReceiverEmail,
		ReceiverPhone: input.ReceiverPhone,
		ClaimedAt:     time.Now().UnixMilli(),
		DonorEmail:    donation.DonorEmail,
		FoodName:      donation.FoodName,
		Location:      donation.DisplayAddress,
	}
	claimID, err := s.claims.Create(ctx, claim)
	if err != nil {
		return fmt.Errorf("claim donation: %w", err)
	}

	// 4. Flip claimed false→true. Losing the conditional update leaves the
	// claim record in place; claims are append-only audit data.
	if err := s.donations.MarkClaimed(ctx, input.DonationID); err != nil {
		s.log.Warn().Err(err).
			Str("donation_id", input.DonationID).
			Str("claim_id", claimID).
			Msg("claimed flag not updated")
		return err
	}

	// 5. Deferred notifications; failures never fail the claim.
	if donation.DonorEmail != "" {
		s.queue.Enqueue(ports.Task{Kind: ports.TaskDonorClaimedMail, Donation: donation, Claim: claim})
	}
	if claim.ReceiverEmail != "" {
		s.queue.Enqueue(ports.Task{Kind: ports.TaskReceiverClaimedMail, Donation: donation, Claim: claim})
	}

	s.log.Info().
		Str("donation_id", input.DonationID).
		Str("claim_id", claimID).
		Str("receiver", input.ReceiverName).
		Msg("donation claimed")

	return nil
}
