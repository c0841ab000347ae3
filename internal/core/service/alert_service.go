package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharebite/donation-system/internal/core/domain"
	"github.com/sharebite/donation-system/internal/core/ports"
)

const donationAlertSubject = "🍽️ New Food Donation Available on ShareBite!"

// noteOrDefault substitutes the placeholder shown in mails when a donor left
// no note. The stored donation keeps the raw (possibly empty) value.
func noteOrDefault(note string) string {
	if note == "" {
		return "No additional notes"
	}
	return note
}

type alertService struct {
	users     ports.UserRepository
	donations ports.DonationRepository
	mailer    ports.Mailer
	retention time.Duration
	log       zerolog.Logger
}

// NewAlertService returns an AlertService implementation. retention is the
// age beyond which donations are purged regardless of claimed state.
func NewAlertService(
	users ports.UserRepository,
	donations ports.DonationRepository,
	mailer ports.Mailer,
	retention time.Duration,
	log zerolog.Logger,
) ports.AlertService {
	return &alertService{
		users:     users,
		donations: donations,
		mailer:    mailer,
		retention: retention,
		log:       log,
	}
}

// SendDonationAlert mails every receiver-role user about the new donation.
// Per-recipient failures are logged and skipped; the loop always runs to the
// end. Returns the number of successful sends.
func (s *alertService) SendDonationAlert(ctx context.Context, d *domain.Donation) int {
	emails, err := s.users.FindReceiverEmails(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch alert audience")
		return 0
	}
	if len(emails) == 0 {
		s.log.Info().Msg("no receivers registered, skipping donation alert")
		return 0
	}

	body := fmt.Sprintf(`Hello ShareBite Community!

A new food donation has been added to ShareBite:

🍽️ Food Item: %s
📍 Location: %s
📞 Contact: %s
👥 Serves: %d people
📝 Notes: %s
🍴 Category: %s
⏰ Added: %s

Please log in to ShareBite to claim this donation if you're interested.

Best regards,
ShareBite Team
`,
		d.FoodName,
		d.DisplayAddress,
		d.Phone,
		d.Count,
		noteOrDefault(d.Note),
		d.Category,
		time.Now().Format("2006-01-02 15:04:05"),
	)

	sent := 0
	for _, email := range emails {
		if err := s.mailer.Send(ctx, email, donationAlertSubject, body); err != nil {
			s.log.Warn().Err(err).Str("to", email).Msg("donation alert send failed")
			continue
		}
		sent++
	}

	s.log.Info().Int("sent", sent).Int("audience", len(emails)).Msg("donation alert broadcast finished")
	return sent
}

// SendDonorClaimedMail tells the donor who claimed their item and how to
// reach them.
func (s *alertService) SendDonorClaimedMail(ctx context.Context, d *domain.Donation, c *domain.Claim) error {
	subject := fmt.Sprintf("Your donation '%s' has been claimed!", d.FoodName)
	body := fmt.Sprintf(`Hello,

Your donation '%s' has been claimed by:
Name: %s
Email: %s
Phone: %s

The receiver will contact you soon to arrange pickup.

Thank you for your generosity!

- ShareBite Team
`,
		d.FoodName,
		c.ReceiverName,
		c.ReceiverEmail,
		c.ReceiverPhone,
	)

	if err := s.mailer.Send(ctx, d.DonorEmail, subject, body); err != nil {
		s.log.Warn().Err(err).Str("to", d.DonorEmail).Msg("donor claimed mail failed")
		return err
	}
	return nil
}

// SendReceiverClaimedMail confirms the claim to the receiver and restates
// the donation details plus donor contact info.
func (s *alertService) SendReceiverClaimedMail(ctx context.Context, d *domain.Donation, c *domain.Claim) error {
	subject := fmt.Sprintf("You have successfully claimed '%s' on ShareBite!", d.FoodName)
	body := fmt.Sprintf(`Hello %s,

Congratulations! You have successfully claimed the following donation on ShareBite:

🍽️ Food Item: %s
📍 Location: %s
👥 Serves: %d people
📝 Notes: %s
🍴 Category: %s

Please contact the donor as soon as possible to arrange pickup:
Donor Phone: %s
Donor Email: %s

Thank you for using ShareBite!

- ShareBite Team
`,
		c.ReceiverName,
		d.FoodName,
		d.DisplayAddress,
		d.Count,
		noteOrDefault(d.Note),
		d.Category,
		d.Phone,
		d.DonorEmail,
	)

	if err := s.mailer.Send(ctx, c.ReceiverEmail, subject, body); err != nil {
		s.log.Warn().Err(err).Str("to", c.ReceiverEmail).Msg("receiver claimed mail failed")
		return err
	}
	return nil
}

// CleanupOldDonations purges donations older than the retention window,
// claimed or not. A partial sweep is acceptable: deletions that succeeded
// before an error stay deleted.
func (s *alertService) CleanupOldDonations(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.retention).UnixMilli()

	old, err := s.donations.FindOlderThan(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to query old donations")
		return 0, err
	}

	deleted := 0
	for _, d := range old {
		if err := s.donations.Delete(ctx, d.ID.Hex()); err != nil {
			s.log.Warn().Err(err).Str("donation_id", d.ID.Hex()).Msg("failed to delete old donation")
			continue
		}
		deleted++
	}

	if deleted > 0 {
		s.log.Info().Int("deleted", deleted).Int64("cutoff", cutoff).Msg("retention sweep finished")
	}
	return deleted, nil
}
