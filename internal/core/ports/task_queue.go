package ports

import "github.com/sharebite/donation-system/internal/core/domain"

// TaskKind identifies a background job type.
type TaskKind string

const (
	TaskDonationAlert       TaskKind = "donation_alert"
	TaskCleanup             TaskKind = "cleanup"
	TaskDonorClaimedMail    TaskKind = "donor_claimed_mail"
	TaskReceiverClaimedMail TaskKind = "receiver_claimed_mail"
)

// Task is a unit of deferred work scheduled after a request's response has
// been produced. Donation is set for all kinds except cleanup; Claim is set
// for the two claim-mail kinds.
type Task struct {
	Kind     TaskKind
	Donation *domain.Donation
	Claim    *domain.Claim
}

// ShardKey returns the value tasks are partitioned by, so work for the same
// donation is processed in order.
func (t Task) ShardKey() string {
	if t.Donation != nil {
		return t.Donation.ID.Hex()
	}
	return string(t.Kind)
}

// TaskQueue accepts fire-and-forget background tasks. Enqueued tasks carry
// no completion signal back to the caller.
type TaskQueue interface {
	Enqueue(task Task)
}
