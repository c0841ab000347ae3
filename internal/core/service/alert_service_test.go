package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sharebite/donation-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type sentMail struct {
	to      string
	subject string
	body    string
}

type stubMailer struct {
	sent    []sentMail
	failFor map[string]error // per-recipient failures
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type stubUserRepo struct {
	emails []string
	err    error
}

func (r *stubUserRepo) FindReceiverEmails(_ context.Context) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.emails, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testRetention = 48 * time.Hour

func newAlertSvc(users *stubUserRepo, donations *stubDonationRepo, mailer *stubMailer) *alertService {
	return NewAlertService(users, donations, mailer, testRetention, discardLogger).(*alertService)
}

func agedDonation(repo *stubDonationRepo, age time.Duration, claimed bool) *domain.Donation {
	d := &domain.Donation{
		ID:        primitive.NewObjectID(),
		FoodName:  "Rice",
		Claimed:   claimed,
		Timestamp: time.Now().Add(-age).UnixMilli(),
	}
	repo.byID[d.ID.Hex()] = d
	return d
}

// ---------------------------------------------------------------------------
// Broadcast alerting tests
// ---------------------------------------------------------------------------

func TestAlertService_Broadcast_SendsToAllReceivers(t *testing.T) {
	users := &stubUserRepo{emails: []string{"a@x.com", "b@x.com", "c@x.com"}}
	mailer := &stubMailer{}
	svc := newAlertSvc(users, newStubDonationRepo(), mailer)

	donation := &domain.Donation{
		FoodName:       "Rice",
		DisplayAddress: "CP Block A",
		Phone:          "+91 98765",
		Count:          10,
		Note:           "pick up before 8pm",
		Category:       "cooked",
	}
	sent := svc.SendDonationAlert(context.Background(), donation)

	if sent != 3 {
		t.Fatalf("expected 3 sends, got %d", sent)
	}
	if mailer.sent[0].subject != donationAlertSubject {
		t.Errorf("unexpected subject: %q", mailer.sent[0].subject)
	}
	body := mailer.sent[0].body
	for _, want := range []string{"Rice", "CP Block A", "+91 98765", "10 people", "pick up before 8pm", "cooked"} {
		if !strings.Contains(body, want) {
			t.Errorf("alert body missing %q", want)
		}
	}
}

func TestAlertService_Broadcast_EmptyAudienceIsNoop(t *testing.T) {
	mailer := &stubMailer{}
	svc := newAlertSvc(&stubUserRepo{}, newStubDonationRepo(), mailer)

	sent := svc.SendDonationAlert(context.Background(), &domain.Donation{FoodName: "Rice"})

	if sent != 0 {
		t.Fatalf("expected 0 sends, got %d", sent)
	}
	if len(mailer.sent) != 0 {
		t.Error("no mail may be sent with an empty audience")
	}
}

func TestAlertService_Broadcast_PerRecipientFailureContinues(t *testing.T) {
	users := &stubUserRepo{emails: []string{"a@x.com", "broken@x.com", "c@x.com"}}
	mailer := &stubMailer{failFor: map[string]error{"broken@x.com": errors.New("smtp 550")}}
	svc := newAlertSvc(users, newStubDonationRepo(), mailer)

	sent := svc.SendDonationAlert(context.Background(), &domain.Donation{FoodName: "Rice"})

	if sent != 2 {
		t.Fatalf("expected 2 successful sends, got %d", sent)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected remaining recipients to still receive mail, got %d", len(mailer.sent))
	}
}

func TestAlertService_Broadcast_AudienceQueryError(t *testing.T) {
	users := &stubUserRepo{err: errors.New("db unavailable")}
	mailer := &stubMailer{}
	svc := newAlertSvc(users, newStubDonationRepo(), mailer)

	if sent := svc.SendDonationAlert(context.Background(), &domain.Donation{}); sent != 0 {
		t.Fatalf("expected 0 sends on audience query failure, got %d", sent)
	}
}

func TestAlertService_Broadcast_NoteDefault(t *testing.T) {
	users := &stubUserRepo{emails: []string{"a@x.com"}}
	mailer := &stubMailer{}
	svc := newAlertSvc(users, newStubDonationRepo(), mailer)

	svc.SendDonationAlert(context.Background(), &domain.Donation{FoodName: "Rice"})

	if !strings.Contains(mailer.sent[0].body, "No additional notes") {
		t.Error("empty note must render as the default placeholder")
	}
}

// ---------------------------------------------------------------------------
// Claim mail tests
// ---------------------------------------------------------------------------

func TestAlertService_DonorClaimedMail(t *testing.T) {
	mailer := &stubMailer{}
	svc := newAlertSvc(&stubUserRepo{}, newStubDonationRepo(), mailer)

	donation := &domain.Donation{FoodName: "Rice", DonorEmail: "donor@example.com"}
	claim := &domain.Claim{ReceiverName: "Asha", ReceiverEmail: "asha@example.com", ReceiverPhone: "+91 11111"}

	if err := svc.SendDonorClaimedMail(context.Background(), donation, claim); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.sent[0].to != "donor@example.com" {
		t.Errorf("mail went to %q", mailer.sent[0].to)
	}
	if !strings.Contains(mailer.sent[0].subject, "'Rice' has been claimed") {
		t.Errorf("unexpected subject: %q", mailer.sent[0].subject)
	}
	for _, want := range []string{"Asha", "asha@example.com", "+91 11111"} {
		if !strings.Contains(mailer.sent[0].body, want) {
			t.Errorf("donor mail missing receiver contact %q", want)
		}
	}
}

func TestAlertService_ReceiverClaimedMail(t *testing.T) {
	mailer := &stubMailer{}
	svc := newAlertSvc(&stubUserRepo{}, newStubDonationRepo(), mailer)

	donation := &domain.Donation{
		FoodName:       "Rice",
		DisplayAddress: "CP Block A",
		Count:          10,
		Category:       "cooked",
		Phone:          "+91 98765",
		DonorEmail:     "donor@example.com",
	}
	claim := &domain.Claim{ReceiverName: "Asha", ReceiverEmail: "asha@example.com"}

	if err := svc.SendReceiverClaimedMail(context.Background(), donation, claim); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.sent[0].to != "asha@example.com" {
		t.Errorf("mail went to %q", mailer.sent[0].to)
	}
	for _, want := range []string{"Hello Asha", "+91 98765", "donor@example.com"} {
		if !strings.Contains(mailer.sent[0].body, want) {
			t.Errorf("receiver mail missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// Retention cleanup tests
// ---------------------------------------------------------------------------

func TestAlertService_Cleanup_DeletesOnlyAgedDonations(t *testing.T) {
	repo := newStubDonationRepo()
	svc := newAlertSvc(&stubUserRepo{}, repo, &stubMailer{})

	old := agedDonation(repo, 72*time.Hour, false)       // 3 days old, unclaimed
	oldClaimed := agedDonation(repo, 72*time.Hour, true) // claimed state is irrelevant
	fresh := agedDonation(repo, 24*time.Hour, false)     // 1 day old

	deleted, err := svc.CleanupOldDonations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deletions, got %d", deleted)
	}
	if _, gone := repo.byID[old.ID.Hex()]; gone {
		t.Error("aged unclaimed donation must be purged")
	}
	if _, gone := repo.byID[oldClaimed.ID.Hex()]; gone {
		t.Error("aged claimed donation must be purged too")
	}
	if _, kept := repo.byID[fresh.ID.Hex()]; !kept {
		t.Error("donation inside the retention window must be retained")
	}
}

func TestAlertService_Cleanup_SecondSweepDeletesNothing(t *testing.T) {
	repo := newStubDonationRepo()
	svc := newAlertSvc(&stubUserRepo{}, repo, &stubMailer{})
	agedDonation(repo, 72*time.Hour, false)

	first, _ := svc.CleanupOldDonations(context.Background())
	second, _ := svc.CleanupOldDonations(context.Background())

	if first != 1 {
		t.Fatalf("expected 1 deletion on first sweep, got %d", first)
	}
	if second != 0 {
		t.Fatalf("expected 0 deletions on immediate second sweep, got %d", second)
	}
}

func TestAlertService_Cleanup_PartialSweepOnDeleteError(t *testing.T) {
	repo := newStubDonationRepo()
	svc := newAlertSvc(&stubUserRepo{}, repo, &stubMailer{})
	agedDonation(repo, 72*time.Hour, false)
	agedDonation(repo, 96*time.Hour, false)
	repo.deleteErr = errors.New("db unavailable")

	deleted, err := svc.CleanupOldDonations(context.Background())
	if err != nil {
		t.Fatalf("delete errors are absorbed, got %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected 0 deletions when every delete fails, got %d", deleted)
	}
}

func TestAlertService_Cleanup_QueryError(t *testing.T) {
	repo := newStubDonationRepo()
	repo.findErr = errors.New("db unavailable")
	svc := newAlertSvc(&stubUserRepo{}, repo, &stubMailer{})

	if _, err := svc.CleanupOldDonations(context.Background()); err == nil {
		t.Fatal("expected error when the sweep query fails")
	}
}
