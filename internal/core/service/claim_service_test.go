package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sharebite/donation-system/internal/core/domain"
	"github.com/sharebite/donation-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubClaimRepo struct {
	created   []*domain.Claim
	createErr error
}

func (r *stubClaimRepo) Create(_ context.Context, c *domain.Claim) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	c.ID = primitive.NewObjectID()
	clone := *c
	r.created = append(r.created, &clone)
	return c.ID.Hex(), nil
}

func (r *stubClaimRepo) FindByDonationID(_ context.Context, donationID string) ([]*domain.Claim, error) {
	var out []*domain.Claim
	for _, c := range r.created {
		if c.DonationID == donationID {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubGuard struct {
	refused bool
	err     error
	asked   []string
}

func (g *stubGuard) Acquire(_ context.Context, donationID string) (bool, error) {
	g.asked = append(g.asked, donationID)
	if g.err != nil {
		return false, g.err
	}
	return !g.refused, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func seedDonation(repo *stubDonationRepo, claimed bool) *domain.Donation {
	d := &domain.Donation{
		ID:             primitive.NewObjectID(),
		Category:       "cooked",
		FoodName:       "Rice",
		DisplayAddress: "CP Block A",
		Phone:          "+91 98765",
		Count:          10,
		DonorEmail:     "donor@example.com",
		Claimed:        claimed,
		Timestamp:      time.Now().UnixMilli(),
	}
	repo.byID[d.ID.Hex()] = d
	return d
}

func claimInput(donationID string) ports.ClaimDonationInput {
	return ports.ClaimDonationInput{
		DonationID:    donationID,
		ReceiverName:  "Asha",
		ReceiverEmail: "asha@example.com",
		ReceiverPhone: "+91 11111",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestClaimService_Claim_Success(t *testing.T) {
	repo := newStubDonationRepo()
	claims := &stubClaimRepo{}
	queue := &stubQueue{}
	donation := seedDonation(repo, false)

	svc := NewClaimService(repo, claims, &stubGuard{}, queue, discardLogger)
	start := time.Now().UnixMilli()

	if err := svc.ClaimDonation(context.Background(), claimInput(donation.ID.Hex())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(claims.created) != 1 {
		t.Fatalf("expected exactly 1 claim record, got %d", len(claims.created))
	}
	c := claims.created[0]
	if c.DonationID != donation.ID.Hex() {
		t.Errorf("claim references wrong donation: %s", c.DonationID)
	}
	if c.DonorEmail != "donor@example.com" || c.FoodName != "Rice" || c.Location != "CP Block A" {
		t.Errorf("denormalized snapshot wrong: %+v", c)
	}
	if c.ClaimedAt < start {
		t.Errorf("claimed_at %d predates call start %d", c.ClaimedAt, start)
	}
	if !repo.byID[donation.ID.Hex()].Claimed {
		t.Error("donation claimed flag must be true after a successful claim")
	}
}

func TestClaimService_Claim_SchedulesDonorAndReceiverMails(t *testing.T) {
	repo := newStubDonationRepo()
	queue := &stubQueue{}
	donation := seedDonation(repo, false)

	svc := NewClaimService(repo, &stubClaimRepo{}, &stubGuard{}, queue, discardLogger)
	_ = svc.ClaimDonation(context.Background(), claimInput(donation.ID.Hex()))

	kinds := queue.kinds()
	if len(kinds) != 2 || kinds[0] != ports.TaskDonorClaimedMail || kinds[1] != ports.TaskReceiverClaimedMail {
		t.Fatalf("expected [donor_claimed_mail receiver_claimed_mail], got %v", kinds)
	}
	if queue.tasks[0].Claim == nil || queue.tasks[0].Donation == nil {
		t.Error("claim mail tasks must carry both donation and claim")
	}
}

func TestClaimService_Claim_NoDonorEmail_SkipsDonorMail(t *testing.T) {
	repo := newStubDonationRepo()
	queue := &stubQueue{}
	donation := seedDonation(repo, false)
	repo.byID[donation.ID.Hex()].DonorEmail = ""

	svc := NewClaimService(repo, &stubClaimRepo{}, &stubGuard{}, queue, discardLogger)
	if err := svc.ClaimDonation(context.Background(), claimInput(donation.ID.Hex())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	kinds := queue.kinds()
	if len(kinds) != 1 || kinds[0] != ports.TaskReceiverClaimedMail {
		t.Fatalf("expected only receiver mail, got %v", kinds)
	}
}

func TestClaimService_Claim_NotFound(t *testing.T) {
	repo := newStubDonationRepo()
	claims := &stubClaimRepo{}
	queue := &stubQueue{}

	svc := NewClaimService(repo, claims, &stubGuard{}, queue, discardLogger)
	err := svc.ClaimDonation(context.Background(), claimInput(primitive.NewObjectID().Hex()))

	if !errors.Is(err, domain.ErrDonationNotFound) {
		t.Fatalf("expected ErrDonationNotFound, got %v", err)
	}
	if len(claims.created) != 0 {
		t.Error("no claim record may be written for an unknown donation")
	}
	if len(queue.tasks) != 0 {
		t.Error("no notifications may be scheduled for an unknown donation")
	}
}

func TestClaimService_Claim_AlreadyClaimedFlag(t *testing.T) {
	repo := newStubDonationRepo()
	claims := &stubClaimRepo{}
	donation := seedDonation(repo, true)

	svc := NewClaimService(repo, claims, &stubGuard{}, &stubQueue{}, discardLogger)
	err := svc.ClaimDonation(context.Background(), claimInput(donation.ID.Hex()))

	if !errors.Is(err, domain.ErrDonationAlreadyClaimed) {
		t.Fatalf("expected ErrDonationAlreadyClaimed, got %v", err)
	}
	if len(claims.created) != 0 {
		t.Error("no claim record may be written for a claimed donation")
	}
}

func TestClaimService_Claim_GuardRefused(t *testing.T) {
	repo := newStubDonationRepo()
	claims := &stubClaimRepo{}
	donation := seedDonation(repo, false)

	svc := NewClaimService(repo, claims, &stubGuard{refused: true}, &stubQueue{}, discardLogger)
	err := svc.ClaimDonation(context.Background(), claimInput(donation.ID.Hex()))

	if !errors.Is(err, domain.ErrDonationAlreadyClaimed) {
		t.Fatalf("expected ErrDonationAlreadyClaimed when guard refuses, got %v", err)
	}
	if len(claims.created) != 0 {
		t.Error("guard refusal must happen before the claim write")
	}
}

func TestClaimService_Claim_GuardErrorIsNotFatal(t *testing.T) {
	repo := newStubDonationRepo()
	donation := seedDonation(repo, false)
	guard := &stubGuard{err: errors.New("redis down")}

	svc := NewClaimService(repo, &stubClaimRepo{}, guard, &stubQueue{}, discardLogger)
	if err := svc.ClaimDonation(context.Background(), claimInput(donation.ID.Hex())); err != nil {
		t.Fatalf("guard backend failure must not fail the claim, got %v", err)
	}
}

func TestClaimService_Claim_ConditionalUpdateLoses(t *testing.T) {
	repo := newStubDonationRepo()
	claims := &stubClaimRepo{}
	queue := &stubQueue{}
	donation := seedDonation(repo, false)
	repo.markErr = domain.ErrDonationAlreadyClaimed

	svc := NewClaimService(repo, claims, &stubGuard{}, queue, discardLogger)
	err := svc.ClaimDonation(context.Background(), claimInput(donation.ID.Hex()))

	if !errors.Is(err, domain.ErrDonationAlreadyClaimed) {
		t.Fatalf("expected ErrDonationAlreadyClaimed, got %v", err)
	}
	// The losing claim stays as an audit record; claims are append-only.
	if len(claims.created) != 1 {
		t.Errorf("expected the audit claim record to persist, got %d", len(claims.created))
	}
	if len(queue.tasks) != 0 {
		t.Error("no notifications may be scheduled for a lost claim race")
	}
}

func TestClaimService_Claim_ClaimWriteError(t *testing.T) {
	repo := newStubDonationRepo()
	claims := &stubClaimRepo{createErr: errors.New("db unavailable")}
	donation := seedDonation(repo, false)

	svc := NewClaimService(repo, claims, &stubGuard{}, &stubQueue{}, discardLogger)
	if err := svc.ClaimDonation(context.Background(), claimInput(donation.ID.Hex())); err == nil {
		t.Fatal("expected error when claim write fails")
	}
	if repo.byID[donation.ID.Hex()].Claimed {
		t.Error("claimed flag must not flip when the claim write fails")
	}
}
